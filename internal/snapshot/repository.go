package snapshot

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const (
	defaultLimit = 30
	maxLimit     = 365
)

// Snapshot is one recorded balance of a portfolio on a given day.
type Snapshot struct {
	PortfolioID int             `json:"portfolio_id"`
	Date        time.Time       `json:"date"`
	Balance     decimal.Decimal `json:"balance"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Repository defines persistent storage for snapshots.
type Repository interface {
	// Save stores s, replacing any snapshot of the same portfolio and day.
	Save(ctx context.Context, s Snapshot) error
	// List returns up to limit snapshots of a portfolio, newest first.
	List(ctx context.Context, portfolioID int, limit int) ([]Snapshot, error)
}

// ClampLimit applies the default and the upper bound to a requested list size.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	return min(limit, maxLimit)
}

// MemoryRepository implements Repository in process memory.
type MemoryRepository struct {
	mu        sync.Mutex
	snapshots map[int][]Snapshot
}

// NewMemoryRepository creates an empty in-memory snapshot repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{snapshots: make(map[int][]Snapshot)}
}

func (r *MemoryRepository) Save(_ context.Context, s Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := lo.Reject(r.snapshots[s.PortfolioID], func(existing Snapshot, _ int) bool {
		return existing.Date.Equal(s.Date)
	})
	list = append(list, s)
	slices.SortFunc(list, func(a, b Snapshot) int { return b.Date.Compare(a.Date) })
	r.snapshots[s.PortfolioID] = list
	return nil
}

func (r *MemoryRepository) List(_ context.Context, portfolioID int, limit int) ([]Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.snapshots[portfolioID]
	n := min(ClampLimit(limit), len(list))
	return slices.Clone(list[:n]), nil
}

// PgRepository implements Repository with PostgreSQL.
type PgRepository struct {
	pool *pgxpool.Pool
}

// NewPgRepository creates a new PostgreSQL snapshot repository.
func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Save(ctx context.Context, s Snapshot) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO balance_snapshots (portfolio_id, snapshot_date, balance, created_at)
		 VALUES ($1, $2, $3::numeric, $4)
		 ON CONFLICT (portfolio_id, snapshot_date)
		 DO UPDATE SET balance = $3::numeric, created_at = $4`,
		s.PortfolioID, s.Date, s.Balance.String(), s.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}

func (r *PgRepository) List(ctx context.Context, portfolioID int, limit int) ([]Snapshot, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT portfolio_id, snapshot_date, balance::text, created_at
		 FROM balance_snapshots
		 WHERE portfolio_id = $1
		 ORDER BY snapshot_date DESC
		 LIMIT $2`, portfolioID, ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		var (
			s       Snapshot
			balance string
		)
		if err := rows.Scan(&s.PortfolioID, &s.Date, &balance, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		if s.Balance, err = decimal.NewFromString(balance); err != nil {
			return nil, fmt.Errorf("parsing snapshot balance: %w", err)
		}
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshots: %w", err)
	}
	return snapshots, nil
}
