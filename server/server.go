package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	ginlogrus "github.com/toorop/gin-logrus"

	"ntt-parser/config"
	"ntt-parser/parser"
	"ntt-parser/reference"
	"ntt-parser/store"
)

type Server struct {
	cfg    *config.Config
	log    *logrus.Logger
	parser *parser.Parser
	ref    *reference.Analyzer
	store  store.Store // nil when persistence is disabled
}

// New wires a server. st may be nil.
func New(cfg *config.Config, log *logrus.Logger, st store.Store) *Server {
	return &Server{
		cfg:    cfg,
		log:    log,
		parser: parser.New(parser.WithLogger(log)),
		ref:    reference.New(log),
		store:  st,
	}
}

// Handler builds the gin router with every route registered.
func (s *Server) Handler() *gin.Engine {
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", requestIDHeader)
	if len(s.cfg.Server.CORSOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = s.cfg.Server.CORSOrigins
	}

	router.Use(requestID(), ginlogrus.Logger(s.log), cors.New(corsConfig), gin.Recovery(), s.limitBody())

	router.GET("/healthz", s.health)
	router.POST("/tree", s.generateTree)
	router.POST("/tree/:language", s.generateLanguageTree)
	router.POST("/tokens", s.tokens)
	router.POST("/check", s.check)
	router.GET("/history", s.history)
	router.GET("/history/:id", s.historyRun)
	router.GET("/ws", s.websocket)

	return router
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.cfg.Server.ReadTimeout.Duration,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", srv.Addr).Info("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.log.Info("server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

const requestIDHeader = "X-Request-ID"

// requestID tags every request with an id, reusing the caller's when given.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *Server) limitBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		if n := s.cfg.Server.MaxBodyBytes; n > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"store":     s.store != nil,
		"reference": s.cfg.Reference.Enabled,
		"languages": append([]string{"ntt"}, reference.Languages()...),
	})
}
