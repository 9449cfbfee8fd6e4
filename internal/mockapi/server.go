// Package mockapi serves a local stand-in for the remote joke API.
package mockapi

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tinytelemetry/chuckle/internal/model"
)

// Server serves jokes from a fixture catalogue over HTTP.
type Server struct {
	addr      string
	fixtures  *Fixtures
	logger    *zap.Logger
	pick      func(n int) int
	server    *http.Server
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time

	mu       sync.Mutex
	listener net.Listener
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPicker replaces the random index source used by /jokes/random.
// pick(n) must return a value in [0, n).
func WithPicker(pick func(n int) int) Option {
	return func(s *Server) { s.pick = pick }
}

// NewServer creates a mock API server listening on addr.
func NewServer(addr string, fixtures *Fixtures, opts ...Option) *Server {
	if addr == "" {
		addr = model.DefaultMockAddr
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		addr:     addr,
		fixtures: fixtures,
		logger:   zap.NewNop(),
		pick:     rand.IntN,
		ctx:      ctx,
		cancel:   cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.startTime = time.Now()
	return s
}

// Handler returns the routes without binding a listener.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger))

	r.GET("/api/health", s.handleHealth)
	r.GET("/jokes/random", s.handleRandom)
	r.GET("/jokes/categories", s.handleCategories)
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, notFound(c.Request.URL.Path, "Not Found"))
	})
	return r
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)
	s.server = &http.Server{
		Handler:           s.Handler(),
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("mockapi: listen %s: %w", s.addr, err)
	}
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	s.startTime = time.Now()
	s.logger.Info("mock api listening", zap.String("addr", listener.Addr().String()), zap.Int("jokes", s.fixtures.Len()))

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("mock api stopped", zap.Error(err))
		}
	}()
	return nil
}

// Addr is the bound listen address once started, otherwise the configured one.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"uptime":     time.Since(s.startTime).String(),
		"joke_count": s.fixtures.Len(),
	})
}

func (s *Server) handleRandom(c *gin.Context) {
	category, filtered := c.GetQuery("category")
	if filtered && !s.fixtures.HasCategory(category) {
		c.JSON(http.StatusNotFound, notFound(c.Request.URL.Path, fmt.Sprintf("No jokes for category \"%s\" found.", category)))
		return
	}

	jokes := s.fixtures.Jokes(category)
	if len(jokes) == 0 {
		c.JSON(http.StatusNotFound, notFound(c.Request.URL.Path, "No jokes found."))
		return
	}
	c.JSON(http.StatusOK, jokes[s.pick(len(jokes))])
}

func (s *Server) handleCategories(c *gin.Context) {
	c.JSON(http.StatusOK, s.fixtures.Categories())
}

// notFound mirrors the error body of the real API.
func notFound(path, message string) gin.H {
	return gin.H{
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		"status":    http.StatusNotFound,
		"error":     "Not Found",
		"message":   message,
		"path":      path,
	}
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", c.GetHeader("X-Request-Id")),
		)
	}
}
