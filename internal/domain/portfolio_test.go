package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestSeedPortfolio(t *testing.T) {
	p := SeedPortfolio()
	if p.ID != 1 {
		t.Errorf("ID = %d, want 1", p.ID)
	}
	if p.Name != "My Portfolio" {
		t.Errorf("Name = %q, want My Portfolio", p.Name)
	}
	if !p.Balance.Equal(decimal.NewFromInt(10000)) {
		t.Errorf("Balance = %s, want 10000", p.Balance)
	}
	if p.Assets == nil || len(p.Assets) != 0 {
		t.Errorf("Assets = %v, want empty non-nil slice", p.Assets)
	}
}

func TestPortfolioValidate(t *testing.T) {
	tests := []struct {
		name    string
		p       Portfolio
		wantErr bool
	}{
		{"valid", Portfolio{Name: "Main", Balance: decimal.NewFromInt(5)}, false},
		{"zero balance", Portfolio{Name: "Main"}, false},
		{"empty name", Portfolio{Name: "  ", Balance: decimal.NewFromInt(5)}, true},
		{"negative balance", Portfolio{Name: "Main", Balance: decimal.NewFromInt(-1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrValidation) {
				t.Errorf("error %v does not wrap ErrValidation", err)
			}
		})
	}
}

func TestTransactionValidate(t *testing.T) {
	valid := Transaction{
		AssetSymbol: "AAPL",
		Type:        TransactionBuy,
		Quantity:    decimal.NewFromInt(1),
		Price:       decimal.NewFromInt(150),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := valid
	bad.Type = "hold"
	if err := bad.Validate(); !errors.Is(err, ErrValidation) {
		t.Errorf("type hold: error = %v, want ErrValidation", err)
	}

	bad = valid
	bad.Quantity = decimal.Zero
	if err := bad.Validate(); !errors.Is(err, ErrValidation) {
		t.Errorf("zero quantity: error = %v, want ErrValidation", err)
	}
}
