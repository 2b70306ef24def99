package portfolio

import (
	"context"
	"errors"

	"github.com/mtlprog/invest/internal/domain"
)

// ErrNotFound indicates that the requested portfolio or asset does not exist.
var ErrNotFound = errors.New("not found")

// Repository defines persistent storage for portfolios and their assets.
type Repository interface {
	ListPortfolios(ctx context.Context) ([]domain.Portfolio, error)
	GetPortfolio(ctx context.Context, id int) (domain.Portfolio, error)
	CreatePortfolio(ctx context.Context, p domain.Portfolio) (domain.Portfolio, error)
	// ListAssets returns assets of one portfolio, or of all portfolios when portfolioID is 0.
	ListAssets(ctx context.Context, portfolioID int) ([]domain.Asset, error)
	CreateAsset(ctx context.Context, a domain.Asset) (domain.Asset, error)
}
