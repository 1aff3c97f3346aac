// Package web provides the HTTP server and JSON API for the dashboard.
//
// The API is a thin layer over internal/dataset: handlers translate query
// parameters into filter criteria, invoke the pure derivation functions,
// and encode the results. All display concerns (layout, charts) live in
// the frontend that consumes this API.
package web

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Jeet1922/movie-rec-dashboard/internal/config"
	"github.com/Jeet1922/movie-rec-dashboard/internal/history"
	"github.com/Jeet1922/movie-rec-dashboard/internal/logging"
	"github.com/Jeet1922/movie-rec-dashboard/internal/source"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
)

// Server is the HTTP server for the recommendation dashboard API.
type Server struct {
	cfg      *config.ServerConfig
	dataset  *config.DatasetConfig
	source   source.Source
	history  *history.Store
	router   *chi.Mux
	server   *http.Server
	validate *validator.Validate

	mu      sync.RWMutex
	session *session // nil until the first successful ingestion
}

// NewServer creates a Server wired to the given dataset source and
// optional ingestion history store.
func NewServer(cfg *config.Config, src source.Source, hist *history.Store) *Server {
	s := &Server{
		cfg:      &cfg.Server,
		dataset:  &cfg.Dataset,
		source:   src,
		history:  hist,
		router:   chi.NewRouter(),
		validate: validator.New(),
	}
	s.setupMiddleware(cfg)
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware(cfg *config.Config) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	s.router.Use(securityHeaders)

	if cfg.Rate.Enabled {
		limiter := newRateLimiter(cfg.Rate.RequestsPerMinute, time.Minute)
		s.router.Use(limiter.middleware)
	}
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/records", s.handleRecords)
		r.Get("/profiles", s.handleProfiles)
		r.Get("/users", s.handleUsers)
		r.Get("/genres", s.handleGenres)

		r.Get("/filter", s.handleFilter)
		r.Get("/export", s.handleExport)

		r.Get("/history", s.handleHistory)
		r.Post("/reload", s.handleReload)
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}
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

// securityHeaders adds baseline security headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// rateLimiter implements a simple token bucket per client IP.
type rateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     int
	window   time.Duration
}

type visitor struct {
	tokens    int
	lastReset time.Time
}

func newRateLimiter(rate int, window time.Duration) *rateLimiter {
	rl := &rateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate,
		window:   window,
	}
	go rl.cleanup()
	return rl
}

// cleanup removes stale visitor entries every minute.
func (rl *rateLimiter) cleanup() {
	for {
		time.Sleep(time.Minute)
		rl.mu.Lock()
		for ip, v := range rl.visitors {
			if time.Since(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	if !exists || time.Since(v.lastReset) > rl.window {
		rl.visitors[ip] = &visitor{tokens: rl.rate - 1, lastReset: time.Now()}
		return true
	}
	if v.tokens <= 0 {
		return false
	}
	v.tokens--
	return true
}

func (rl *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(r.RemoteAddr) {
			w.Header().Set("Retry-After", "60")
			writeError(w, r, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeError writes a JSON error response and logs it server-side with
// the request ID for correlation.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", message,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"error":%q}`, message)
}

// logError logs a handler error that cannot be reported to the client
// anymore (headers already sent).
func logError(r *http.Request, msg string, err error) {
	logging.FromContext(r.Context()).Error(msg, "path", r.URL.Path, "error", err)
}

// writeJSON encodes v and writes it to w.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).Error("json encode error", "error", err)
	}
}
