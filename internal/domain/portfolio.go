package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrValidation marks input rejected before it reaches a store.
var ErrValidation = errors.New("validation failed")

// Portfolio is a named collection of holdings with a cash balance.
type Portfolio struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	Assets    []Asset         `json:"assets"`
	CreatedAt time.Time       `json:"created_at"`
}

// Validate reports whether p can be stored.
func (p Portfolio) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: portfolio name is required", ErrValidation)
	}
	if p.Balance.IsNegative() {
		return fmt.Errorf("%w: portfolio balance must not be negative", ErrValidation)
	}
	return nil
}

// SeedPortfolio is the record the dashboard starts with.
func SeedPortfolio() Portfolio {
	return Portfolio{
		ID:      1,
		Name:    "My Portfolio",
		Balance: decimal.NewFromInt(10000),
		Assets:  []Asset{},
	}
}

// TransactionType is either a buy or a sell.
type TransactionType string

const (
	TransactionBuy  TransactionType = "buy"
	TransactionSell TransactionType = "sell"
)

// Valid returns true for the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TransactionBuy || t == TransactionSell
}

// Transaction records a trade of an asset inside a portfolio.
type Transaction struct {
	ID          int             `json:"id"`
	PortfolioID int             `json:"portfolio_id"`
	AssetSymbol string          `json:"asset_symbol"`
	Type        TransactionType `json:"transaction_type"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Timestamp   time.Time       `json:"timestamp"`
}

// Validate reports whether t can be stored.
func (t Transaction) Validate() error {
	if !t.Type.Valid() {
		return fmt.Errorf("%w: unknown transaction type %q", ErrValidation, t.Type)
	}
	if strings.TrimSpace(t.AssetSymbol) == "" {
		return fmt.Errorf("%w: asset symbol is required", ErrValidation)
	}
	if !t.Quantity.IsPositive() {
		return fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	if t.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	return nil
}
