// Package api serves the task list over HTTP.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/runoshun/twgate/internal/usecase"
)

const shutdownTimeout = 5 * time.Second

// Server is the twgate HTTP server.
// Fields are ordered to minimize memory padding.
type Server struct {
	list   *usecase.ListTasks
	logger *slog.Logger
	router *gin.Engine
}

// NewServer creates a server that answers task queries through list.
func NewServer(list *usecase.ListTasks, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	router := gin.New()

	s := &Server{
		list:   list,
		logger: logger,
		router: router,
	}

	router.Use(gin.Recovery(), s.requestLogger)
	router.HandleMethodNotAllowed = true
	router.NoMethod(s.handleUnsupportedMethod)

	router.GET("/healthz", s.handleHealth)

	api := router.Group("/api/v1")
	{
		// Every method reads; writes are not exposed over HTTP.
		for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete} {
			api.Handle(method, "/tasks", s.handleTasks)
		}
	}

	return s
}

// Handler returns the underlying http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// requestLogger logs each request at debug level.
func (s *Server) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.logger.Debug("request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"duration", time.Since(start),
	)
}
