// Package remote reads portfolios from a deployed investment platform API.
package remote

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/mtlprog/invest/internal/domain"
)

const portfoliosPath = "/api/portfolios"

// timestampLayouts are tried in order; the API emits naive ISO timestamps.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// Client fetches portfolios over HTTP.
type Client struct {
	client *resty.Client
}

// NewClient creates a client for the API rooted at baseURL. Rate limited and
// server error responses are retried up to maxRetries times.
func NewClient(baseURL string, timeout time.Duration, maxRetries int, retryWait time.Duration) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(maxRetries).
		SetRetryWaitTime(retryWait).
		SetRetryMaxWaitTime(8 * retryWait).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= http.StatusInternalServerError
		})
	return &Client{client: client}
}

type wirePortfolio struct {
	ID        *int            `json:"id"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt string          `json:"created_at"`
}

// List fetches all portfolios. Records without an id are numbered by position;
// records that fail validation are skipped.
func (c *Client) List(ctx context.Context) ([]domain.Portfolio, error) {
	var out []wirePortfolio
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetResult(&out).
		Get(portfoliosPath)
	if err != nil {
		return nil, fmt.Errorf("requesting portfolios: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("portfolios API HTTP %d: %s", resp.StatusCode(), resp.String())
	}

	slog.Debug("fetched remote portfolios", "count", len(out))

	return lo.FilterMap(out, func(w wirePortfolio, i int) (domain.Portfolio, bool) {
		p := domain.Portfolio{
			ID:        lo.FromPtrOr(w.ID, i+1),
			Name:      w.Name,
			Balance:   w.Balance,
			Assets:    []domain.Asset{},
			CreatedAt: parseTimestamp(w.CreatedAt),
		}
		if err := p.Validate(); err != nil {
			slog.Warn("skipping invalid remote portfolio", "id", p.ID, "error", err)
			return domain.Portfolio{}, false
		}
		return p, true
	}), nil
}

// parseTimestamp returns the zero time for empty or unrecognized input.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	slog.Warn("unrecognized timestamp from portfolios API", "value", s)
	return time.Time{}
}
