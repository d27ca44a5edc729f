// Package server exposes the GraphQL schema over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rhanlin/graphql-demo/internal/config"
	"github.com/rhanlin/graphql-demo/internal/graph"
)

const (
	// GraphQLPath serves the API (POST) and the playground (GET).
	GraphQLPath = "/graphql"
	// HealthPath answers liveness probes.
	HealthPath = "/healthz"

	shutdownTimeout = 5 * time.Second
)

// Server routes HTTP requests to a GraphQL executor.
type Server struct {
	exec   graph.Executor
	cfg    config.ServerConfig
	log    *zap.Logger
	engine *gin.Engine
}

// New creates a Server. The router is built immediately so Handler can be
// used without calling Run.
func New(exec graph.Executor, cfg config.ServerConfig, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	s := &Server{
		exec: exec,
		cfg:  cfg,
		log:  log,
	}
	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog(s.log))

	r.POST(GraphQLPath, s.handleGraphQL)
	if s.cfg.Playground {
		r.GET(GraphQLPath, gin.WrapH(playground.Handler("graphql-demo", GraphQLPath)))
	}
	r.GET(HealthPath, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// graphQLRequest is the standard GraphQL-over-HTTP request body.
type graphQLRequest struct {
	Query         string                 `json:"query" binding:"required"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

func (s *Server) handleGraphQL(c *gin.Context) {
	var req graphQLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"errors": []gin.H{{"message": fmt.Sprintf("invalid request body: %v", err)}},
		})
		return
	}

	ctx := c.Request.Context()
	resp := s.exec.Exec(ctx, req.Query, req.OperationName, req.Variables)

	for _, e := range resp.Errors {
		fields := []zap.Field{
			zap.String("request_id", requestIDFrom(ctx)),
			zap.String("message", e.Message),
		}
		if len(e.Path) > 0 {
			fields = append(fields, zap.Any("path", e.Path))
		}
		s.log.Warn("graphql error", fields...)
	}

	c.JSON(http.StatusOK, resp)
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.cfg.Addr(),
		Handler:      s.engine,
		ReadTimeout:  time.Duration(s.cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.cfg.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.cfg.IdleTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", server.Addr), zap.Bool("playground", s.cfg.Playground))
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		s.log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.log.Info("server stopped")
	}

	return nil
}
