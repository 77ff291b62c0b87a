// Package server exposes chart generation over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ukaji3/chazara-go/internal/config"
	"github.com/ukaji3/chazara-go/internal/logger"
	"github.com/ukaji3/chazara-go/pkg/chazara"
)

type Server struct {
	cfg    config.HTTPConfig
	gen    *chazara.Generator
	log    *logger.Logger
	engine *gin.Engine
	srv    *http.Server
}

// New wires the router. Routes:
//
//	GET  /healthz
//	GET  /api/tractates
//	GET  /api/corpora/:corpus
//	POST /api/charts
//	POST /api/create-excel
//	POST /api/create-pdf
func New(cfg config.HTTPConfig, gen *chazara.Generator, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	s := &Server{cfg: cfg, gen: gen, log: log}

	r := gin.New()
	r.Use(
		RequestID(),
		RequestLogger(log),
		Recover(log),
		CORS(cfg.CORSOrigins),
		BodyLimit(cfg.MaxRequestBytes),
	)

	r.GET("/healthz", s.health)
	api := r.Group("/api")
	api.GET("/tractates", s.tractates)
	api.GET("/corpora/:corpus", s.corpus)
	api.POST("/charts", s.createChart(""))
	api.POST("/create-excel", s.createChart("excel"))
	api.POST("/create-pdf", s.createChart("pdf"))

	s.engine = r
	s.srv = &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", "addr", s.cfg.Addr)
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		s.log.Info("http server shutting down")
		return s.srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
