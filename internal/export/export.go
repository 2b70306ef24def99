// Package export writes portfolios and assets to an XLSX workbook.
package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"

	"github.com/mtlprog/invest/internal/domain"
)

const (
	SheetPortfolios = "Portfolios"
	SheetAssets     = "Assets"
	dateLayout      = "2006-01-02 15:04:05"
)

var (
	portfolioHeader = []any{"ID", "Name", "Balance", "Created"}
	assetHeader     = []any{"ID", "Portfolio", "Symbol", "Quantity", "Purchase price", "Current price", "Market value"}
)

// Source provides the rows to export.
type Source interface {
	List(ctx context.Context) ([]domain.Portfolio, error)
	ListAssets(ctx context.Context, portfolioID int) ([]domain.Asset, error)
}

// Service builds workbooks from a Source.
type Service struct {
	source Source
}

// NewService creates a new export Service.
func NewService(source Source) *Service {
	return &Service{source: source}
}

// Write builds the workbook and writes it to w.
func (s *Service) Write(ctx context.Context, w io.Writer) error {
	portfolios, err := s.source.List(ctx)
	if err != nil {
		return fmt.Errorf("listing portfolios: %w", err)
	}
	assets, err := s.source.ListAssets(ctx, 0)
	if err != nil {
		return fmt.Errorf("listing assets: %w", err)
	}

	f, err := Workbook(portfolios, assets)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Error("failed to close workbook", "error", err)
		}
	}()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// Workbook lays out portfolios and assets on two sheets with a bold header row.
// Amounts are written as text to keep decimal precision.
func Workbook(portfolios []domain.Portfolio, assets []domain.Asset) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetPortfolios); err != nil {
		f.Close()
		return nil, fmt.Errorf("renaming default sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetAssets); err != nil {
		f.Close()
		return nil, fmt.Errorf("creating %s sheet: %w", SheetAssets, err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating header style: %w", err)
	}

	portfolioRows := lo.Map(portfolios, func(p domain.Portfolio, _ int) []any {
		created := ""
		if !p.CreatedAt.IsZero() {
			created = p.CreatedAt.UTC().Format(dateLayout)
		}
		return []any{p.ID, p.Name, p.Balance.String(), created}
	})
	if err := fillSheet(f, SheetPortfolios, portfolioHeader, portfolioRows, headerStyle); err != nil {
		f.Close()
		return nil, err
	}

	names := lo.SliceToMap(portfolios, func(p domain.Portfolio) (int, string) { return p.ID, p.Name })
	assetRows := lo.Map(assets, func(a domain.Asset, _ int) []any {
		return []any{
			a.ID,
			lo.ValueOr(names, a.PortfolioID, fmt.Sprintf("#%d", a.PortfolioID)),
			a.Symbol,
			a.Quantity.String(),
			a.PurchasePrice.String(),
			a.CurrentPrice.String(),
			a.MarketValue().String(),
		}
	})
	if err := fillSheet(f, SheetAssets, assetHeader, assetRows, headerStyle); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

func fillSheet(f *excelize.File, sheet string, header []any, rows [][]any, headerStyle int) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing %s header: %w", sheet, err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return fmt.Errorf("resolving %s header range: %w", sheet, err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("styling %s header: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("resolving %s row %d: %w", sheet, i+2, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}
