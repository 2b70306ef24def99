package portfolio

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/mtlprog/invest/internal/domain"
)

// Service validates portfolio input and attaches assets to portfolios on read.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new portfolio Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// List returns all portfolios in id order, each with its assets.
func (s *Service) List(ctx context.Context) ([]domain.Portfolio, error) {
	portfolios, err := s.repo.ListPortfolios(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing portfolios: %w", err)
	}
	assets, err := s.repo.ListAssets(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("listing assets: %w", err)
	}

	byPortfolio := lo.GroupBy(assets, func(a domain.Asset) int { return a.PortfolioID })
	return lo.Map(portfolios, func(p domain.Portfolio, _ int) domain.Portfolio {
		p.Assets = withAssets(byPortfolio[p.ID])
		return p
	}), nil
}

// Get returns one portfolio with its assets.
func (s *Service) Get(ctx context.Context, id int) (domain.Portfolio, error) {
	p, err := s.repo.GetPortfolio(ctx, id)
	if err != nil {
		return domain.Portfolio{}, err
	}
	assets, err := s.repo.ListAssets(ctx, id)
	if err != nil {
		return domain.Portfolio{}, fmt.Errorf("listing assets of portfolio %d: %w", id, err)
	}
	p.Assets = withAssets(assets)
	return p, nil
}

// Create validates and stores p. The id and creation time are assigned here;
// client-supplied values for them are ignored.
func (s *Service) Create(ctx context.Context, p domain.Portfolio) (domain.Portfolio, error) {
	if err := p.Validate(); err != nil {
		return domain.Portfolio{}, err
	}
	p.ID = 0
	p.CreatedAt = s.now().UTC()

	created, err := s.repo.CreatePortfolio(ctx, p)
	if err != nil {
		return domain.Portfolio{}, fmt.Errorf("creating portfolio: %w", err)
	}
	created.Assets = []domain.Asset{}
	return created, nil
}

// ListAssets returns the assets of one portfolio, or all assets when portfolioID is 0.
func (s *Service) ListAssets(ctx context.Context, portfolioID int) ([]domain.Asset, error) {
	if portfolioID != 0 {
		if _, err := s.repo.GetPortfolio(ctx, portfolioID); err != nil {
			return nil, err
		}
	}
	assets, err := s.repo.ListAssets(ctx, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("listing assets: %w", err)
	}
	return withAssets(assets), nil
}

// CreateAsset validates and stores a. The owning portfolio must exist.
func (s *Service) CreateAsset(ctx context.Context, a domain.Asset) (domain.Asset, error) {
	if err := a.Validate(); err != nil {
		return domain.Asset{}, err
	}
	a.ID = 0
	return s.repo.CreateAsset(ctx, a)
}

func withAssets(assets []domain.Asset) []domain.Asset {
	if assets == nil {
		return []domain.Asset{}
	}
	return assets
}
