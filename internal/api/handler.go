package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mtlprog/invest/internal/dashboard"
	"github.com/mtlprog/invest/internal/domain"
	"github.com/mtlprog/invest/internal/export"
	"github.com/mtlprog/invest/internal/portfolio"
	"github.com/mtlprog/invest/internal/snapshot"
)

const (
	apiVersion  = "1.0.0"
	maxBodySize = 1 << 20
	xlsxType    = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Handler provides the HTTP endpoints of the investment platform.
type Handler struct {
	portfolios    *portfolio.Service
	snapshots     *snapshot.Service
	export        *export.Service
	dashboard     *dashboard.State
	liveDashboard bool
}

// NewHandler creates a new API handler.
func NewHandler(deps Deps) *Handler {
	return &Handler{
		portfolios:    deps.Portfolios,
		snapshots:     deps.Snapshots,
		export:        deps.Export,
		dashboard:     deps.Dashboard,
		liveDashboard: deps.LiveDashboard,
	}
}

// Dashboard handles GET / with the rendered portfolio dashboard.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := dashboard.WriteHTML(&buf, h.dashboard.View()); err != nil {
		slog.Error("failed to render dashboard", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		slog.Warn("failed to write dashboard", "error", err)
	}
}

// Root handles GET /api.
func (h *Handler) Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Investment Platform API", "version": apiVersion})
}

// Health handles GET /api/health.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "investment-platform-api"})
}

// ListPortfolios handles GET /api/portfolios.
func (h *Handler) ListPortfolios(w http.ResponseWriter, r *http.Request) {
	portfolios, err := h.portfolios.List(r.Context())
	if err != nil {
		slog.Error("failed to list portfolios", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, nonNil(portfolios))
}

// GetPortfolio handles GET /api/portfolios/{id}.
func (h *Handler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, err := h.portfolios.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, "failed to get portfolio", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// CreatePortfolio handles POST /api/portfolios.
func (h *Handler) CreatePortfolio(w http.ResponseWriter, r *http.Request) {
	var in domain.Portfolio
	if !decodeBody(w, r, &in) {
		return
	}
	created, err := h.portfolios.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, "failed to create portfolio", err)
		return
	}
	h.refreshDashboard(r)
	writeJSON(w, http.StatusOK, created)
}

// ListAssets handles GET /api/assets with an optional portfolio_id filter.
func (h *Handler) ListAssets(w http.ResponseWriter, r *http.Request) {
	portfolioID := 0
	if s := r.URL.Query().Get("portfolio_id"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid portfolio_id")
			return
		}
		portfolioID = n
	}
	assets, err := h.portfolios.ListAssets(r.Context(), portfolioID)
	if err != nil {
		writeServiceError(w, "failed to list assets", err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(assets))
}

// CreateAsset handles POST /api/assets.
func (h *Handler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var in domain.Asset
	if !decodeBody(w, r, &in) {
		return
	}
	created, err := h.portfolios.CreateAsset(r.Context(), in)
	if err != nil {
		writeServiceError(w, "failed to create asset", err)
		return
	}
	h.refreshDashboard(r)
	writeJSON(w, http.StatusOK, created)
}

// ListSnapshots handles GET /api/portfolios/{id}/snapshots.
func (h *Handler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = n
		}
	}
	if _, err := h.portfolios.Get(r.Context(), id); err != nil {
		writeServiceError(w, "failed to get portfolio", err)
		return
	}
	snaps, err := h.snapshots.List(r.Context(), id, limit)
	if err != nil {
		slog.Error("failed to list snapshots", "portfolio", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, nonNil(snaps))
}

// Export handles GET /api/export.xlsx.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.export.Write(r.Context(), &buf); err != nil {
		slog.Error("failed to export workbook", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to export")
		return
	}
	w.Header().Set("Content-Type", xlsxType)
	w.Header().Set("Content-Disposition", `attachment; filename="portfolios.xlsx"`)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Warn("failed to write workbook", "error", err)
	}
}

// refreshDashboard reloads the dashboard after a write. A failed reload keeps
// the previous state and does not fail the request.
func (h *Handler) refreshDashboard(r *http.Request) {
	if !h.liveDashboard {
		return
	}
	if err := h.dashboard.Load(r.Context(), h.portfolios); err != nil {
		slog.Warn("failed to refresh dashboard", "error", err)
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func writeServiceError(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, portfolio.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		slog.Error(msg, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		slog.Warn("failed to write HTTP response body", "error", err)
		return
	}
	_, _ = w.Write([]byte("\n"))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
