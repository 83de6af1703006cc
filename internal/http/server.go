// Package http serves the JSON API over the ledger.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"zenledger/internal/cache"
	"zenledger/internal/core"
	"zenledger/internal/ledger"
	applog "zenledger/internal/log"
)

type Server struct {
	http.Server
	service     *ledger.Service
	settings    ledger.SettingsRepository
	exportName  func(time.Time) string
	rateLimiter *rateLimiter
	logger      *applog.Logger

	// Read caches, purged on every mutation.
	summaryCache *cache.LRUCache[[12]core.MonthlyStats]
	monthCache   *cache.LRUCache[monthResponse]
	cacheManager *cache.Manager

	shutdownOnce sync.Once
}

// Option tweaks server construction.
type Option func(*Server)

// WithExportFilename sets the filename generator for /api/export downloads.
func WithExportFilename(f func(time.Time) string) Option {
	return func(s *Server) { s.exportName = f }
}

// NewServer configures routes and caches, returning a ready-to-run server.
func NewServer(addr string, service *ledger.Service, settings ledger.SettingsRepository, opts ...Option) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		service:      service,
		settings:     settings,
		exportName:   func(t time.Time) string { return "zenledger_" + t.UTC().Format("2006-01-02") + ".json" },
		rateLimiter:  newRateLimiter(),
		logger:       applog.Component(applog.ComponentHTTP),
		summaryCache: cache.NewLRUCache[[12]core.MonthlyStats](50, 5*time.Minute),
		monthCache:   cache.NewLRUCache[monthResponse](200, 5*time.Minute),
		cacheManager: cache.NewManager(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.cacheManager.Register(s.summaryCache)
	s.cacheManager.Register(s.monthCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.HandleFunc("/api/summary", s.withMiddleware(s.handleSummary))
	mux.HandleFunc("/api/month", s.withMiddleware(s.handleMonth))
	mux.HandleFunc("/api/transactions", s.withMiddleware(s.handleTransactions))
	mux.HandleFunc("/api/transactions/", s.withMiddleware(s.handleTransactionByID))
	mux.HandleFunc("/api/settings", s.withMiddleware(s.handleSettings))
	mux.HandleFunc("/api/export", s.withMiddleware(s.handleExport))

	return s
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// invalidateViews drops all memoized reads. Called after each mutation so a
// view can never show state older than the last write.
func (s *Server) invalidateViews() {
	s.summaryCache.Purge()
	s.monthCache.Purge()
}

// withMiddleware adds security headers, rate limiting and request logging.
// The request-scoped logger carries the request id and is reachable from
// handlers via the context.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := r.Context()

		// Extract client IP (considering proxies)
		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestLog := applog.NewStructuredLogger(applog.FromContext(ctx))
		requestLog.LogHTTPStart(ctx, r, clientIP)

		// Rate limit mutations only; reads are cached and cheap.
		if (r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodDelete) && !s.rateLimiter.allow(clientIP) {
			applog.FromContext(ctx).WarnContext(ctx, "Rate limit exceeded",
				applog.FieldClientIP, clientIP,
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		requestLog.LogHTTPEnd(ctx, r, rw.statusCode, time.Since(start).Milliseconds(), clientIP)
	})

	withRequestID := applog.RequestIDMiddleware(func(*http.Request) string { return generateRequestID() })
	wrapped := applog.Middleware(s.logger)(withRequestID(handler))
	return wrapped.ServeHTTP
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// generateRequestID creates a unique request ID for tracing
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func cacheKey(year int, month time.Month) string {
	return strconv.Itoa(year) + "-" + strconv.Itoa(int(month))
}
