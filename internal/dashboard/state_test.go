package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/mtlprog/invest/internal/domain"
)

func TestStatePortfoliosReturnsCopy(t *testing.T) {
	s := NewState()
	got := s.Portfolios()
	got[0].Name = "changed"

	if s.Portfolios()[0].Name != "My Portfolio" {
		t.Error("mutating the returned slice changed the state")
	}
}

func TestStateSetPortfoliosReplaces(t *testing.T) {
	s := NewState()
	next := []domain.Portfolio{portfolio(5, "Five", 5), portfolio(6, "Six", 6)}
	s.SetPortfolios(next)
	next[0].Name = "changed"

	got := s.Portfolios()
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Name != "Five" {
		t.Errorf("state aliased the caller's slice: %q", got[0].Name)
	}
}

func TestStateConcurrentAccess(t *testing.T) {
	s := NewState()
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.SetPortfolios([]domain.Portfolio{portfolio(i, "p", int64(i))})
		}()
		go func() {
			defer wg.Done()
			if n := len(s.View().Main.Dashboard.List.Cards); n != 1 {
				t.Errorf("cards = %d, want 1", n)
			}
		}()
	}
	wg.Wait()
}

type stubSource struct {
	list []domain.Portfolio
	err  error
}

func (s stubSource) List(_ context.Context) ([]domain.Portfolio, error) {
	return s.list, s.err
}

func TestStateLoad(t *testing.T) {
	s := NewState()
	err := s.Load(context.Background(), stubSource{list: []domain.Portfolio{portfolio(2, "Growth", 30000)}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := s.Portfolios()
	if len(got) != 1 || got[0].Name != "Growth" {
		t.Errorf("portfolios = %+v, want Growth only", got)
	}
}

func TestStateLoadFailureKeepsState(t *testing.T) {
	s := NewState()
	err := s.Load(context.Background(), stubSource{err: errors.New("boom")})
	if err == nil {
		t.Fatal("expected error")
	}
	got := s.Portfolios()
	if len(got) != 1 || got[0].Name != "My Portfolio" {
		t.Errorf("state changed after failed load: %+v", got)
	}
}
