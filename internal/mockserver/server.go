package mockserver

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/yildizm/PneumoDetect/internal/logger"
	"github.com/yildizm/PneumoDetect/internal/media"
)

// Config configures the mock classification backend
type Config struct {
	Seed        int64         // 0 picks a time-based seed
	Latency     time.Duration // simulated inference delay
	MaxFileSize int64
}

// DefaultConfig mirrors the real service limits
func DefaultConfig() Config {
	return Config{
		Latency:     1500 * time.Millisecond,
		MaxFileSize: media.DefaultMaxFileSize,
	}
}

// Server is an in-memory stand-in for the classification service.
// Every upload is kept so history and image lookups work across requests.
type Server struct {
	config Config
	logger *logger.Logger
	now    func() time.Time
	newID  func() string

	mu      sync.RWMutex
	rng     *rand.Rand
	records []*record
}

// Option configures a Server
type Option func(*Server)

// WithLogger sets the request logger
func WithLogger(l *logger.Logger) Option {
	return func(s *Server) {
		s.logger = l.WithComponent("mockserver")
	}
}

// WithClock overrides the time source used for timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// WithIDGenerator overrides record id generation
func WithIDGenerator(newID func() string) Option {
	return func(s *Server) {
		s.newID = newID
	}
}

// New creates a mock server
func New(config Config, opts ...Option) *Server {
	if config.MaxFileSize <= 0 {
		config.MaxFileSize = media.DefaultMaxFileSize
	}
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Server{
		config: config,
		logger: logger.Discard(),
		now:    time.Now,
		newID:  uuid.NewString,
		// #nosec G404 - scores are simulated, not security sensitive
		rng: rand.New(rand.NewSource(seed)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP routes of the mock service
func (s *Server) Handler() http.Handler {
	mux := chi.NewRouter()
	mux.Use(middleware.Recoverer)
	mux.Use(s.logRequests)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Post("/analyze", s.wrap(s.handleAnalyze))
	mux.Get("/history", s.wrap(s.handleHistory))
	mux.Get("/images/{id}", s.wrap(s.handleImage))

	return mux
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Mock server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("mock server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down mock server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	return nil
}

// Len returns the number of stored analyses
func (s *Server) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// logRequests logs one line per request at debug level
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.DebugWithFields("%s %s", []logger.Field{
			logger.F("status", ww.Status()),
			logger.Duration(time.Since(start)),
		}, r.Method, r.URL.Path)
	})
}
