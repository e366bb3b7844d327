// Package server provides the HTTP API for resume parsing, alignment
// scoring and export.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/resume-aligner/internal/alignment"
	"github.com/jonathan/resume-aligner/internal/config"
	"github.com/jonathan/resume-aligner/internal/db"
	"github.com/jonathan/resume-aligner/internal/parsing"
	"github.com/jonathan/resume-aligner/internal/rendering"
	"github.com/jonathan/resume-aligner/internal/server/middleware"
	"github.com/jonathan/resume-aligner/internal/server/ratelimit"
	"github.com/jonathan/resume-aligner/internal/storage"
)

// ShutdownTimeout bounds graceful shutdown
const ShutdownTimeout = 30 * time.Second

// ProfileStore persists uploaded profiles. *db.DB implements it.
type ProfileStore interface {
	SaveProfile(ctx context.Context, kind, name string, payload any) (*db.Profile, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*db.Profile, error)
	ListProfiles(ctx context.Context, kind string, limit int) ([]db.Profile, error)
	DeleteProfile(ctx context.Context, id uuid.UUID) error
}

// Options are the server's dependencies. Config, Engine and Store are
// required; Profiles, JWT and Secrets enable the routes that need them.
type Options struct {
	Config    *config.Config
	Engine    *alignment.Engine
	Store     storage.Store
	Profiles  ProfileStore
	JobParser *parsing.JobParser
	JWT       *JWTService
	Secrets   *config.SecretConfig
	RateLimit *ratelimit.Config
	Logger    *slog.Logger
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	handler    http.Handler
	mux        *http.ServeMux

	cfg         *config.Config
	engine      *alignment.Engine
	store       storage.Store
	profiles    ProfileStore
	jobs        *parsing.JobParser
	exporter    *rendering.Exporter
	jwtService  *JWTService
	secrets     *config.SecretConfig
	rateLimiter *ratelimit.Limiter
	validate    *validator.Validate
	logger      *slog.Logger
	now         func() time.Time
}

// New creates a server from opts
func New(opts Options) (*Server, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("server: config is required")
	}
	if opts.Engine == nil {
		return nil, fmt.Errorf("server: alignment engine is required")
	}
	if opts.Store == nil {
		return nil, fmt.Errorf("server: file store is required")
	}
	if opts.Config.Auth.Required && opts.JWT == nil {
		return nil, fmt.Errorf("server: auth is required but no JWT service is configured")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	jobs := opts.JobParser
	if jobs == nil {
		jobs = &parsing.JobParser{Logger: logger}
	}
	secrets := opts.Secrets
	if secrets == nil {
		secrets = &config.SecretConfig{}
	}

	s := &Server{
		cfg:         opts.Config,
		engine:      opts.Engine,
		store:       opts.Store,
		profiles:    opts.Profiles,
		jobs:        jobs,
		exporter:    rendering.NewExporter(opts.Store, opts.Config.Server.ExportPDF, logger),
		jwtService:  opts.JWT,
		secrets:     secrets,
		rateLimiter: ratelimit.NewLimiter(opts.RateLimit),
		validate:    newValidator(),
		logger:      logger,
		now:         time.Now,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /parse/resume", s.handleParseResume)
	mux.HandleFunc("POST /parse/jd", s.handleParseJD)
	mux.HandleFunc("POST /align", s.handleAlign)
	mux.HandleFunc("POST /ats/check", s.handleATSCheck)
	mux.HandleFunc("POST /optimize", s.handleOptimize)

	mux.Handle("POST /export/resume", s.protect(s.handleExport))
	mux.Handle("POST /report", s.protect(s.handleReport))
	mux.Handle("POST /cover-letter", s.protect(s.handleCoverLetter))
	mux.HandleFunc("GET /files/{name}", s.handleFile)

	mux.Handle("POST /profile/save", s.protect(s.handleSaveProfile))
	mux.HandleFunc("GET /profiles", s.handleListProfiles)
	mux.HandleFunc("GET /profiles/{id}", s.handleGetProfile)
	mux.Handle("DELETE /profiles/{id}", s.protect(s.handleDeleteProfile))

	mux.HandleFunc("POST /auth/token", s.handleToken)

	s.mux = mux
	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", opts.Config.Server.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // exports may run pdflatex
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.Close()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	defer s.Close()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// Close releases background resources
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}

// protect requires a bearer token on h when auth is enabled
func (s *Server) protect(h http.HandlerFunc) http.Handler {
	if !s.cfg.Auth.Required || s.jwtService == nil {
		return h
	}
	return middleware.AuthMiddleware(s.jwtService.AsTokenValidator())(h)
}

// withCORS allows any origin, as the API is called from browser front ends
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}
		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		s.logger.Log(r.Context(), level, "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", rec.bytes,
			"duration", time.Since(start),
			"remote", r.RemoteAddr,
		)
	})
}

func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(extractClientID(r), s.routeKey(r), r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// unmatchedRoute is the rate-limit key shared by requests no route serves
const unmatchedRoute = "(unmatched)"

// routeKey returns the path of the registered pattern serving r, so
// "/profiles/a" and "/profiles/b" count against one "/profiles/{id}" bucket.
func (s *Server) routeKey(r *http.Request) string {
	_, pattern := s.mux.Handler(r)
	if pattern == "" {
		return unmatchedRoute
	}
	if _, path, ok := strings.Cut(pattern, " "); ok {
		return path
	}
	return pattern
}

// extractClientID identifies the caller by the IP in RemoteAddr
func extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}
	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.logger.Warn("rate limit exceeded", "limit", info.Limit, "retry_after", info.RetryAfter)
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

// newValidator reports request field names by their JSON tags
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
