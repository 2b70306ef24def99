package portfolio

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/mtlprog/invest/internal/domain"
)

// PgRepository implements Repository with PostgreSQL.
// NUMERIC columns travel as text to keep decimal precision.
type PgRepository struct {
	pool *pgxpool.Pool
}

// NewPgRepository creates a new PostgreSQL portfolio repository.
func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) ListPortfolios(ctx context.Context) ([]domain.Portfolio, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, balance::text, created_at FROM portfolios ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing portfolios: %w", err)
	}
	defer rows.Close()

	var portfolios []domain.Portfolio
	for rows.Next() {
		p, err := scanPortfolio(rows)
		if err != nil {
			return nil, err
		}
		portfolios = append(portfolios, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating portfolios: %w", err)
	}
	return portfolios, nil
}

func (r *PgRepository) GetPortfolio(ctx context.Context, id int) (domain.Portfolio, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, name, balance::text, created_at FROM portfolios WHERE id = $1`, id)
	p, err := scanPortfolio(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Portfolio{}, fmt.Errorf("portfolio %d: %w", id, ErrNotFound)
		}
		return domain.Portfolio{}, err
	}
	return p, nil
}

func (r *PgRepository) CreatePortfolio(ctx context.Context, p domain.Portfolio) (domain.Portfolio, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO portfolios (name, balance, created_at)
		 VALUES ($1, $2::numeric, $3)
		 RETURNING id`,
		p.Name, p.Balance.String(), p.CreatedAt).Scan(&p.ID)
	if err != nil {
		return domain.Portfolio{}, fmt.Errorf("creating portfolio: %w", err)
	}
	p.Assets = nil
	return p, nil
}

func (r *PgRepository) ListAssets(ctx context.Context, portfolioID int) ([]domain.Asset, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, portfolio_id, symbol, quantity::text, purchase_price::text, current_price::text
		 FROM assets
		 WHERE $1 = 0 OR portfolio_id = $1
		 ORDER BY id`, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("listing assets: %w", err)
	}
	defer rows.Close()

	var assets []domain.Asset
	for rows.Next() {
		var (
			a                      domain.Asset
			qty, purchase, current string
		)
		if err := rows.Scan(&a.ID, &a.PortfolioID, &a.Symbol, &qty, &purchase, &current); err != nil {
			return nil, fmt.Errorf("scanning asset: %w", err)
		}
		if a.Quantity, err = decimal.NewFromString(qty); err != nil {
			return nil, fmt.Errorf("parsing quantity of asset %d: %w", a.ID, err)
		}
		if a.PurchasePrice, err = decimal.NewFromString(purchase); err != nil {
			return nil, fmt.Errorf("parsing purchase price of asset %d: %w", a.ID, err)
		}
		if a.CurrentPrice, err = decimal.NewFromString(current); err != nil {
			return nil, fmt.Errorf("parsing current price of asset %d: %w", a.ID, err)
		}
		assets = append(assets, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assets: %w", err)
	}
	return assets, nil
}

func (r *PgRepository) CreateAsset(ctx context.Context, a domain.Asset) (domain.Asset, error) {
	if _, err := r.GetPortfolio(ctx, a.PortfolioID); err != nil {
		return domain.Asset{}, err
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO assets (portfolio_id, symbol, quantity, purchase_price, current_price)
		 VALUES ($1, $2, $3::numeric, $4::numeric, $5::numeric)
		 RETURNING id`,
		a.PortfolioID, a.Symbol, a.Quantity.String(), a.PurchasePrice.String(), a.CurrentPrice.String()).Scan(&a.ID)
	if err != nil {
		return domain.Asset{}, fmt.Errorf("creating asset: %w", err)
	}
	return a, nil
}

func scanPortfolio(row pgx.Row) (domain.Portfolio, error) {
	var (
		p         domain.Portfolio
		balance   string
		createdAt time.Time
	)
	if err := row.Scan(&p.ID, &p.Name, &balance, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Portfolio{}, err
		}
		return domain.Portfolio{}, fmt.Errorf("scanning portfolio: %w", err)
	}
	b, err := decimal.NewFromString(balance)
	if err != nil {
		return domain.Portfolio{}, fmt.Errorf("parsing balance of portfolio %d: %w", p.ID, err)
	}
	p.Balance = b
	p.CreatedAt = createdAt
	return p, nil
}
