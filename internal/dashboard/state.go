// Package dashboard holds the portfolio dashboard state and renders it.
package dashboard

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/mtlprog/invest/internal/domain"
)

// State is the dashboard's exclusively owned portfolio sequence.
type State struct {
	mu         sync.RWMutex
	portfolios []domain.Portfolio
}

// NewState returns a state seeded with the single default portfolio.
func NewState() *State {
	return &State{portfolios: []domain.Portfolio{domain.SeedPortfolio()}}
}

// Portfolios returns a copy of the current sequence.
func (s *State) Portfolios() []domain.Portfolio {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.portfolios)
}

// SetPortfolios replaces the whole sequence at once.
func (s *State) SetPortfolios(list []domain.Portfolio) {
	next := slices.Clone(list)
	s.mu.Lock()
	s.portfolios = next
	s.mu.Unlock()
}

// View renders the current sequence.
func (s *State) View() View {
	return Render(s.Portfolios())
}

// Source provides portfolios to load into the dashboard.
type Source interface {
	List(ctx context.Context) ([]domain.Portfolio, error)
}

// Load replaces the sequence with the portfolios from src. The state is left
// unchanged when src fails.
func (s *State) Load(ctx context.Context, src Source) error {
	list, err := src.List(ctx)
	if err != nil {
		return fmt.Errorf("loading dashboard portfolios: %w", err)
	}
	s.SetPortfolios(list)
	return nil
}
