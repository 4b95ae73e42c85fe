// Package web provides the JSON HTTP API of the inventory service.
package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/application"
	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/auth"
	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/config"
	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/jobs"
	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/tabular"
	"github.com/LaioBomfimDev/reability-sistema-patrimonial/internal/web/middleware"
)

// Enqueuer hands a parsed import to the background worker. *jobs.Client
// satisfies it.
type Enqueuer interface {
	EnqueueImport(ctx context.Context, p jobs.ImportPayload) (string, error)
}

// Deps are the collaborators of a Server. Queue may be nil, in which case
// async imports run inline.
type Deps struct {
	Config  *config.Config
	Service Inventory
	Gate    *auth.Gate
	Queue   Enqueuer
}

// Server is the HTTP server of the inventory API.
type Server struct {
	cfg     *config.Config
	svc     Inventory
	gate    *auth.Gate
	queue   Enqueuer
	router  *chi.Mux
	server  *http.Server
	limiter *middleware.RateLimiter
	imports *middleware.RateLimiter
}

// NewServer creates a Server with every route registered.
func NewServer(d Deps) *Server {
	s := &Server{
		cfg:    d.Config,
		svc:    d.Service,
		gate:   d.Gate,
		queue:  d.Queue,
		router: chi.NewRouter(),
	}
	if s.cfg == nil {
		s.cfg = &config.Config{}
	}

	perMinute, importPerMinute := 0, 0
	if s.cfg.Rate.Enabled {
		perMinute, importPerMinute = s.cfg.Rate.RequestsPerMinute, s.cfg.Rate.ImportLimit
	}
	s.limiter = middleware.NewRateLimiter(perMinute)
	s.imports = middleware.NewRateLimiter(importPerMinute)

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(middleware.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(middleware.Logger)
	s.router.Use(chimw.Recoverer)
	if s.cfg.Server.RequestTimeout > 0 {
		s.router.Use(chimw.Timeout(s.cfg.Server.RequestTimeout))
	}
	s.router.Use(s.securityHeaders)
	s.router.Use(s.limiter.Handler)
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(middleware.BearerAuth(s.gate))

			r.Post("/auth/logout", s.handleLogout)
			r.Get("/auth/me", s.handleMe)

			r.With(can(auth.AssetsRead)).Get("/catalog", s.handleCatalog)
			r.With(can(auth.AssetsRead)).Get("/locations", s.handleLocations)

			r.Route("/assets", func(r chi.Router) {
				r.With(can(auth.AssetsRead)).Get("/", s.handleListAssets)
				r.With(can(auth.AssetsRead)).Get("/recent", s.handleRecentAssets)
				r.With(can(auth.AssetsCreate)).Post("/", s.handleCreateAsset)
				r.With(can(auth.AssetsUpdate)).Post("/status", s.handleBatchStatus)

				r.Route("/{id}", func(r chi.Router) {
					r.With(can(auth.AssetsRead)).Get("/", s.handleGetAsset)
					r.With(can(auth.AssetsUpdate)).Put("/", s.handleUpdateAsset)
					r.With(can(auth.AssetsDelete)).Delete("/", s.handleDeleteAsset)
					r.With(can(auth.MovementsCreate)).Post("/move", s.handleMoveAsset)
					r.With(can(auth.MovementsRead)).Get("/movements", s.handleAssetMovements)
				})
			})

			r.With(can(auth.MovementsRead)).Get("/movements", s.handleListMovements)

			r.With(can(auth.ReportsExport)).Get("/export/assets", s.handleExportAssets)
			r.With(can(auth.ReportsExport)).Get("/export/movements", s.handleExportMovements)
			r.With(can(auth.ReportsRead)).Get("/reports/summary", s.handleSummary)
			r.With(can(auth.ReportsExport)).Get("/reports/{report}", s.handleReport)

			r.With(can(auth.AssetsCreate), s.imports.Handler).Post("/import/assets", s.handleImport)
			r.With(can(auth.AssetsRead)).Get("/import/templates/{name}", s.handleTemplate)

			r.With(can(auth.AdminSettings)).Get("/audit", s.handleAuditLog)
		})
	})
}

func can(p auth.Permission) func(http.Handler) http.Handler {
	return middleware.RequirePermission(p)
}

// Start begins listening for HTTP requests and blocks until the server
// stops. Idle rate limiter entries are swept until then.
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.limiter.Run(ctx)
	go s.imports.Run(ctx)

	slog.Info("http server listening", "addr", addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// newImporter returns an asset importer configured for uploads.
func (s *Server) newImporter() *tabular.Importer {
	return application.NewImporter(s.cfg.Import, s.cfg.Export)
}

// securityHeaders adds security headers to all responses.
func (s *Server) securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Cache-Control", "no-store")
		if s.cfg.Security.EnableCSP {
			h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		}
		next.ServeHTTP(w, r)
	})
}

// writeJSON encodes v as JSON with the given status.
// Encoding errors are only logged since the headers are already sent.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}

// writeFile sends an export artifact as an attachment.
func writeFile(w http.ResponseWriter, res tabular.Result) {
	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+res.Filename+`"`)
	w.Header().Set("X-Row-Count", strconv.Itoa(res.RowCount))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(res.Content); err != nil {
		slog.Warn("write export failed", "file", res.Filename, "error", err)
	}
}
