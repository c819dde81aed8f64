package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/vitrinecms/vitrine/internal/handler"
	"github.com/vitrinecms/vitrine/internal/openapi"
	"github.com/vitrinecms/vitrine/internal/server/middleware"
	"github.com/vitrinecms/vitrine/internal/service"
	"github.com/vitrinecms/vitrine/internal/stats"
	"github.com/vitrinecms/vitrine/internal/store"
	"github.com/vitrinecms/vitrine/internal/upload"
)

// Config holds the HTTP server configuration.
type Config struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration
	CORSOrigins     []string
	SecureCookies   bool
	ContactRPM      int // contact-form submissions per minute per IP
}

// DefaultConfig returns a Config with sensible production defaults.
func DefaultConfig() Config {
	return Config{
		Host:            "0.0.0.0",
		Port:            8080,
		ShutdownTimeout: 30 * time.Second,
		CORSOrigins:     []string{"*"},
		SecureCookies:   true,
		ContactRPM:      5,
	}
}

// Server is the top-level HTTP server for Vitrine. It owns the Chi router,
// the content store, the auth service, the view tracker, and the uploader.
type Server struct {
	cfg        Config
	router     chi.Router
	store      *store.Store
	authSvc    *service.AuthService
	tracker    *stats.Tracker
	uploader   *upload.Uploader
	httpServer *http.Server
	logger     *slog.Logger
}

// New creates a Server with all routes and middleware wired, ready to
// listen. Call ListenAndServe to start accepting connections.
func New(cfg Config, st *store.Store, authSvc *service.AuthService, tracker *stats.Tracker, uploader *upload.Uploader, logger *slog.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		store:    st,
		authSvc:  authSvc,
		tracker:  tracker,
		uploader: uploader,
		logger:   logger,
	}
	s.setupRouter()
	return s
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// --- Global middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(chimw.Compress(5))

	// --- Health checks (no auth required) ---
	r.Get("/healthz", s.handleHealthz)
	r.Get("/readyz", s.handleReadyz)

	// --- OpenAPI spec (no auth required) ---
	r.Get("/openapi.json", handler.NewOpenAPIHandler(openapi.Generate).Serve)

	// --- Uploaded images ---
	r.Handle("/uploads/*", http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(s.uploader.Dir()))))

	authHandler := handler.NewAuthHandler(s.authSvc, s.cfg.SecureCookies)
	contentHandler := handler.NewContentHandler(s.store)
	messageHandler := handler.NewMessageHandler(s.store)
	statsHandler := handler.NewStatsHandler(s.store, s.tracker)
	uploadHandler := handler.NewUploadHandler(s.uploader)

	r.Route("/api/v1", func(r chi.Router) {

		// Admin session and mutations
		r.Route("/admin", func(r chi.Router) {
			// Session endpoints are unauthenticated (login) or
			// self-authenticated (logout just clears the cookie).
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)

			// Everything else passes the authorization gate first. The gate
			// short-circuits with a 401 before any handler runs, so a failed
			// request can never reach the store.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin(s.authSvc.Codec()))

				r.Get("/me", authHandler.Me)
				r.Put("/stats", statsHandler.Put)
				r.Post("/upload", uploadHandler.Upload)

				r.Get("/{collection}", contentHandler.ListAdmin)
				r.Post("/{collection}", contentHandler.Create)
				r.Put("/{collection}/{id}", contentHandler.Update)
				r.Delete("/{collection}/{id}", contentHandler.Delete)
			})
		})

		// Public site reads
		r.Get("/stats", statsHandler.Get)
		r.Post("/stats/view", statsHandler.RecordView)
		r.With(middleware.RateLimit(s.cfg.ContactRPM)).
			Post("/messages", messageHandler.Submit)
		r.Get("/{collection}", contentHandler.List)
		r.Get("/{collection}/{id}", contentHandler.Get)
	})

	s.router = r
}

// handleHealthz is a liveness probe. Returns 200 if the process is running.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// handleReadyz is a readiness probe. Returns 200 when the content store is
// reachable, 503 otherwise.
func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	httpStatus := http.StatusOK
	if err := s.store.Ping(r.Context()); err != nil {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	json.NewEncoder(w).Encode(map[string]interface{}{"status": status})
}

// ListenAndServe starts the HTTP server and blocks until SIGINT or SIGTERM,
// then drains in-flight requests and flushes the view tracker.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server listen: %w", err)
	case <-ctx.Done():
		s.logger.Info("shutdown signal received, draining connections...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.tracker.Shutdown()
	s.logger.Info("server stopped")
	return nil
}

// Router returns the underlying Chi router, useful for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ServeHTTP implements http.Handler, delegating to the router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
