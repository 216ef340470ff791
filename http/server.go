// Package http exposes the verification service over HTTP. It is a thin
// boundary adapter: requests are schema-validated, decoded into the
// fixed-size wire types, and handed to the service; nothing here holds
// state of its own.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	bridgeoracle "github.com/bridgeoracle/bridgeoracle-go"
)

// Server serves the verification API.
type Server struct {
	svc    *bridgeoracle.Service
	log    *zap.Logger
	engine *gin.Engine
	http   *http.Server
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger replaces the server logger.
func WithLogger(log *zap.Logger) ServerOption {
	return func(s *Server) { s.log = log }
}

// NewServer creates an HTTP server over the given verification service.
//
// Routes:
//
//	POST /v1/verify          state-mutating verification
//	POST /v1/admission/check stateless admission decision
//	GET  /v1/messages/:message  stored verification state
//	GET  /v1/health          liveness probe
func NewServer(svc *bridgeoracle.Service, opts ...ServerOption) *Server {
	s := &Server{
		svc: svc,
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	v1 := engine.Group("/v1")
	v1.POST("/verify", s.handleVerify)
	v1.POST("/admission/check", s.handleAdmissionCheck)
	v1.GET("/messages/:message", s.handleMessageState)
	v1.GET("/health", s.handleHealth)

	s.engine = engine
	return s
}

// Handler returns the underlying http.Handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	s.http = &http.Server{
		Addr:    addr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", zap.String("addr", addr))
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
