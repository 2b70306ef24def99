package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mtlprog/invest/internal/domain"
)

// PortfolioLister provides the portfolios to record.
type PortfolioLister interface {
	List(ctx context.Context) ([]domain.Portfolio, error)
}

// Service records and retrieves portfolio balance history.
type Service struct {
	portfolios PortfolioLister
	repo       Repository
	now        func() time.Time
}

// NewService creates a new snapshot Service.
func NewService(portfolios PortfolioLister, repo Repository) *Service {
	return &Service{portfolios: portfolios, repo: repo, now: time.Now}
}

// Record stores today's balance of every portfolio. A failure on one
// portfolio does not stop the others; all failures are returned joined.
func (s *Service) Record(ctx context.Context) error {
	portfolios, err := s.portfolios.List(ctx)
	if err != nil {
		return fmt.Errorf("listing portfolios: %w", err)
	}

	now := s.now().UTC()
	date := now.Truncate(24 * time.Hour)

	var errs []error
	for _, p := range portfolios {
		snap := Snapshot{PortfolioID: p.ID, Date: date, Balance: p.Balance, CreatedAt: now}
		if err := s.repo.Save(ctx, snap); err != nil {
			slog.Error("failed to record snapshot", "portfolio", p.ID, "error", err)
			errs = append(errs, fmt.Errorf("portfolio %d: %w", p.ID, err))
		}
	}
	return errors.Join(errs...)
}

// List retrieves recent snapshots of a portfolio.
func (s *Service) List(ctx context.Context, portfolioID int, limit int) ([]Snapshot, error) {
	return s.repo.List(ctx, portfolioID, ClampLimit(limit))
}
