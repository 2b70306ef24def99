package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/mtlprog/invest/internal/dashboard"
	"github.com/mtlprog/invest/internal/export"
	"github.com/mtlprog/invest/internal/portfolio"
	"github.com/mtlprog/invest/internal/snapshot"
)

// Deps groups the services behind the HTTP routes.
type Deps struct {
	Portfolios *portfolio.Service
	Snapshots  *snapshot.Service
	Export     *export.Service
	Dashboard  *dashboard.State
	// LiveDashboard reloads the dashboard from Portfolios after each write.
	LiveDashboard bool
	AdminAPIKey   string
}

// NewServer creates an HTTP server with all routes configured.
func NewServer(port string, deps Deps) *http.Server {
	return &http.Server{
		Addr:         ":" + port,
		Handler:      NewRouter(deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// NewRouter builds the route table wrapped in CORS handling.
func NewRouter(deps Deps) http.Handler {
	handler := NewHandler(deps)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", handler.Dashboard)
	mux.HandleFunc("GET /api", handler.Root)
	mux.HandleFunc("GET /api/health", handler.Health)
	mux.HandleFunc("GET /api/portfolios", handler.ListPortfolios)
	mux.HandleFunc("GET /api/portfolios/{id}", handler.GetPortfolio)
	mux.HandleFunc("GET /api/portfolios/{id}/snapshots", handler.ListSnapshots)
	mux.HandleFunc("GET /api/assets", handler.ListAssets)
	mux.HandleFunc("GET /api/export.xlsx", handler.Export)

	for pattern, h := range map[string]http.HandlerFunc{
		"POST /api/portfolios": handler.CreatePortfolio,
		"POST /api/assets":     handler.CreateAsset,
	} {
		if deps.AdminAPIKey != "" {
			mux.Handle(pattern, requireAuth(deps.AdminAPIKey, h))
		} else {
			mux.Handle(pattern, h)
		}
	}

	return withCORS(mux)
}

func requireAuth(apiKey string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		token := strings.TrimPrefix(auth, "Bearer ")
		if !strings.HasPrefix(auth, "Bearer ") || subtle.ConstantTimeCompare([]byte(token), []byte(apiKey)) != 1 {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withCORS allows any origin and answers preflight requests directly.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
