// Package server provides the HTTP REST API for the resume builder.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/logging"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/wizard"
)

// DefaultHeartbeat is how often idle event streams receive a keep-alive.
const DefaultHeartbeat = 25 * time.Second

// ExportStore lists, fetches and deletes stored exports.
type ExportStore interface {
	ListExports(ctx context.Context, owner string, limit int) ([]db.ExportRecord, error)
	GetExport(ctx context.Context, id uuid.UUID) (*types.ExportArtifact, error)
	DeleteExport(ctx context.Context, id uuid.UUID) (bool, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer   *http.Server
	handler      http.Handler
	sessions     *SessionStore
	exports      ExportStore
	templatePath string
	rateLimiter  *ratelimit.Limiter
	jwtService   *JWTService
	logger       *slog.Logger
	heartbeat    time.Duration

	done      chan struct{}
	closeOnce sync.Once
}

// Config holds server configuration
type Config struct {
	Port       int
	SessionTTL time.Duration

	// Exporter runs when a session advances past its last step.
	Exporter wizard.Exporter
	// Exports enables the export history endpoints when set.
	Exports ExportStore
	// JWT enables bearer-token authentication when set.
	JWT            *config.JWTConfig
	RateLimit      *ratelimit.Config
	SessionOptions []wizard.Option
	TemplatePath   string
	Logger         *slog.Logger
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Port < 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	opts := append([]wizard.Option(nil), cfg.SessionOptions...)
	if cfg.Exporter != nil {
		opts = append(opts, wizard.WithExporter(cfg.Exporter))
	}

	s := &Server{
		sessions:     NewSessionStore(cfg.SessionTTL, opts...),
		exports:      cfg.Exports,
		templatePath: cfg.TemplatePath,
		rateLimiter:  ratelimit.NewLimiter(cfg.RateLimit),
		logger:       logger,
		heartbeat:    DefaultHeartbeat,
		done:         make(chan struct{}),
	}
	if cfg.JWT != nil {
		s.jwtService = NewJWTService(cfg.JWT)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	api := http.NewServeMux()

	// Sessions
	api.HandleFunc("POST /sessions", s.handleCreateSession)
	api.HandleFunc("GET /sessions/{id}", s.handleGetSession)
	api.HandleFunc("DELETE /sessions/{id}", s.handleDeleteSession)

	// Navigation
	api.HandleFunc("POST /sessions/{id}/next", s.handleNext)
	api.HandleFunc("POST /sessions/{id}/back", s.handleBack)
	api.HandleFunc("POST /sessions/{id}/advance", s.handleAdvance)
	api.HandleFunc("PUT /sessions/{id}/step", s.handleJump)

	// Edits
	api.HandleFunc("PATCH /sessions/{id}/personal", s.handleUpdatePersonal)
	api.HandleFunc("POST /sessions/{id}/skills", s.handleAddSkill)
	api.HandleFunc("DELETE /sessions/{id}/skills/{skill}", s.handleRemoveSkill)
	api.HandleFunc("GET /sessions/{id}/skills/suggested", s.handleSuggestedSkills)
	api.HandleFunc("POST /sessions/{id}/{section}", s.handleAddEntry)
	api.HandleFunc("GET /sessions/{id}/{section}/{entry_id}", s.handleGetEntry)
	api.HandleFunc("PATCH /sessions/{id}/{section}/{entry_id}", s.handleUpdateEntry)
	api.HandleFunc("DELETE /sessions/{id}/{section}/{entry_id}", s.handleRemoveEntry)

	// Derived views
	api.HandleFunc("GET /sessions/{id}/score", s.handleScore)
	api.HandleFunc("GET /sessions/{id}/preview", s.handlePreview)
	api.HandleFunc("GET /sessions/{id}/export.tex", s.handleExportTex)
	api.HandleFunc("GET /sessions/{id}/events", s.handleEvents)

	// Export history
	api.HandleFunc("GET /exports", s.handleListExports)
	api.HandleFunc("GET /exports/{id}", s.handleGetExport)
	api.HandleFunc("GET /exports/{id}/content", s.handleGetExportContent)
	api.HandleFunc("DELETE /exports/{id}", s.handleDeleteExport)

	var apiHandler http.Handler = api
	if s.jwtService != nil {
		apiHandler = middleware.AuthMiddleware(s.jwtService.AsTokenValidator())(api)
	}
	mux.Handle("/", apiHandler)

	s.handler = s.withLogging(s.withRateLimit(s.withCORS(mux)))
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	s.httpServer.RegisterOnShutdown(s.closeStreams)

	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Sessions returns the session store backing the API.
func (s *Server) Sessions() *SessionStore {
	return s.sessions
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	go s.sweepSessions(ctx)

	select {
	case err := <-errCh:
		s.Close()
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.Close()
	s.logger.Info("server stopped")
	return nil
}

// Close stops background work. It does not close the listener.
func (s *Server) Close() {
	s.closeStreams()
	s.rateLimiter.Stop()
}

func (s *Server) closeStreams() {
	s.closeOnce.Do(func() { close(s.done) })
}

// sweepSessions periodically drops idle sessions until ctx is done.
func (s *Server) sweepSessions(ctx context.Context) {
	interval := max(s.sessions.ttl/4, time.Second)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case <-ticker.C:
			if n := s.sessions.Sweep(); n > 0 {
				s.logger.Info("expired sessions removed", "count", n, "remaining", s.sessions.Len())
			}
		}
	}
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging tags each request with an ID and logs its outcome
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)
		r = r.WithContext(logging.WithRequestID(r.Context(), requestID))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.logger.Info("request completed",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
			"remote", r.RemoteAddr,
		)
	})
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wroteHeader = true
	return r.ResponseWriter.Write(b)
}

// Flush keeps event streams working through the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.sessions.Len(),
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", "error", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// writeError maps err to a status code and writes it. Internal errors are
// logged and hidden from the client.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logging.FromContext(r.Context(), s.logger).Error("request failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
		s.errorResponse(w, status, "internal server error")
		return
	}
	s.errorResponse(w, status, err.Error())
}

// extractClientID uses the IP address from RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds())
		if seconds < 1 {
			seconds = 1
		}
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	logging.FromContext(r.Context(), s.logger).Warn("rate limit exceeded",
		"client", s.extractClientID(r), "path", r.URL.Path, "limit", info.Limit)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
