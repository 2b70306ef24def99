package portfolio

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/mtlprog/invest/internal/domain"
)

// MemoryRepository implements Repository in process memory.
type MemoryRepository struct {
	mu         sync.RWMutex
	portfolios []domain.Portfolio
	assets     []domain.Asset
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// NewSampleRepository creates an in-memory repository holding the sample
// portfolios and assets served by the API out of the box.
func NewSampleRepository(now time.Time) *MemoryRepository {
	return &MemoryRepository{
		portfolios: []domain.Portfolio{
			{ID: 1, Name: "Main Portfolio", Balance: decimal.NewFromInt(50000), CreatedAt: now},
			{ID: 2, Name: "Growth Portfolio", Balance: decimal.NewFromInt(30000), CreatedAt: now},
		},
		assets: []domain.Asset{
			{ID: 1, PortfolioID: 1, Symbol: "AAPL", Quantity: decimal.NewFromInt(10), PurchasePrice: decimal.NewFromInt(150), CurrentPrice: decimal.NewFromInt(180)},
			{ID: 2, PortfolioID: 1, Symbol: "GOOGL", Quantity: decimal.NewFromInt(5), PurchasePrice: decimal.NewFromInt(2800), CurrentPrice: decimal.NewFromInt(3000)},
		},
	}
}

func (r *MemoryRepository) ListPortfolios(_ context.Context) ([]domain.Portfolio, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.portfolios), nil
}

func (r *MemoryRepository) GetPortfolio(_ context.Context, id int) (domain.Portfolio, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := lo.Find(r.portfolios, func(p domain.Portfolio) bool { return p.ID == id })
	if !ok {
		return domain.Portfolio{}, fmt.Errorf("portfolio %d: %w", id, ErrNotFound)
	}
	return p, nil
}

func (r *MemoryRepository) CreatePortfolio(_ context.Context, p domain.Portfolio) (domain.Portfolio, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = nextID(lo.Map(r.portfolios, func(p domain.Portfolio, _ int) int { return p.ID }))
	p.Assets = nil
	r.portfolios = append(r.portfolios, p)
	return p, nil
}

func (r *MemoryRepository) ListAssets(_ context.Context, portfolioID int) ([]domain.Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if portfolioID == 0 {
		return slices.Clone(r.assets), nil
	}
	return lo.Filter(r.assets, func(a domain.Asset, _ int) bool { return a.PortfolioID == portfolioID }), nil
}

func (r *MemoryRepository) CreateAsset(_ context.Context, a domain.Asset) (domain.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !lo.ContainsBy(r.portfolios, func(p domain.Portfolio) bool { return p.ID == a.PortfolioID }) {
		return domain.Asset{}, fmt.Errorf("portfolio %d: %w", a.PortfolioID, ErrNotFound)
	}
	a.ID = nextID(lo.Map(r.assets, func(a domain.Asset, _ int) int { return a.ID }))
	r.assets = append(r.assets, a)
	return a, nil
}

// nextID returns one past the largest id, so ids stay unique once rows are removed.
func nextID(ids []int) int {
	if len(ids) == 0 {
		return 1
	}
	return lo.Max(ids) + 1
}
