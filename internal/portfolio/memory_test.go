package portfolio

import (
	"context"
	"testing"

	"github.com/mtlprog/invest/internal/domain"
)

func TestMemoryRepositoryEmpty(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	p, err := repo.CreatePortfolio(ctx, domain.Portfolio{Name: "First"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != 1 {
		t.Errorf("ID = %d, want 1", p.ID)
	}

	assets, err := repo.ListAssets(ctx, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(assets) != 0 {
		t.Errorf("assets = %d, want 0", len(assets))
	}
}

func TestNextID(t *testing.T) {
	tests := []struct {
		ids  []int
		want int
	}{
		{nil, 1},
		{[]int{1, 2}, 3},
		{[]int{5, 2}, 6},
	}
	for _, tt := range tests {
		if got := nextID(tt.ids); got != tt.want {
			t.Errorf("nextID(%v) = %d, want %d", tt.ids, got, tt.want)
		}
	}
}

func TestMemoryRepositoryListIsCopy(t *testing.T) {
	repo := NewSampleRepository(fixedNow)
	ctx := context.Background()

	list, _ := repo.ListPortfolios(ctx)
	list[0].Name = "changed"

	again, _ := repo.ListPortfolios(ctx)
	if again[0].Name != "Main Portfolio" {
		t.Error("mutating the listed slice changed the repository")
	}
}
