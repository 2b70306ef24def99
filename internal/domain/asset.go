package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Asset is a position held by a portfolio.
type Asset struct {
	ID            int             `json:"id"`
	PortfolioID   int             `json:"portfolio_id"`
	Symbol        string          `json:"symbol"`
	Quantity      decimal.Decimal `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	CurrentPrice  decimal.Decimal `json:"current_price"`
}

// Validate reports whether a can be stored.
func (a Asset) Validate() error {
	if strings.TrimSpace(a.Symbol) == "" {
		return fmt.Errorf("%w: asset symbol is required", ErrValidation)
	}
	if a.Quantity.IsNegative() {
		return fmt.Errorf("%w: quantity must not be negative", ErrValidation)
	}
	if a.PurchasePrice.IsNegative() || a.CurrentPrice.IsNegative() {
		return fmt.Errorf("%w: prices must not be negative", ErrValidation)
	}
	return nil
}

// MarketValue is quantity times current price.
func (a Asset) MarketValue() decimal.Decimal {
	return a.Quantity.Mul(a.CurrentPrice)
}

// CostBasis is quantity times purchase price.
func (a Asset) CostBasis() decimal.Decimal {
	return a.Quantity.Mul(a.PurchasePrice)
}

// UnrealizedGain is market value minus cost basis.
func (a Asset) UnrealizedGain() decimal.Decimal {
	return a.MarketValue().Sub(a.CostBasis())
}

// GainPercent returns the unrealized gain relative to cost basis, rounded to
// two places. Returns zero when the cost basis is zero.
func (a Asset) GainPercent() decimal.Decimal {
	basis := a.CostBasis()
	if basis.IsZero() {
		return decimal.Zero
	}
	return a.UnrealizedGain().Div(basis).Mul(decimal.NewFromInt(100)).Round(2)
}
