package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"RangeScope/internal/config"
	"RangeScope/internal/model"
	"RangeScope/internal/scheduler"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Analyzer runs one volatility query end to end.
type Analyzer interface {
	Collect(ctx context.Context, q model.Query) (*model.VolatilityReport, error)
}

// HealthReporter exposes the provider probe status.
type HealthReporter interface {
	Status() scheduler.Status
}

// Server represents the HTTP front end.
type Server struct {
	cfg        *config.Config
	logger     *logrus.Logger
	router     *mux.Router
	handler    http.Handler
	httpServer *http.Server

	analyzer Analyzer
	health   HealthReporter
}

// NewServer creates a new server. health may be nil when the probe is disabled.
func NewServer(cfg *config.Config, logger *logrus.Logger, analyzer Analyzer, health HealthReporter) *Server {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	s := &Server{
		cfg:      cfg,
		logger:   logger,
		analyzer: analyzer,
		health:   health,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router = mux.NewRouter()
	s.router.Use(s.requestIDMiddleware)
	s.router.Use(s.loggingMiddleware)

	s.router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	s.router.HandleFunc("/", s.handleAnalyze).Methods(http.MethodPost)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	apiV1 := s.router.PathPrefix("/api/v1").Subrouter()
	apiV1.HandleFunc("/volatility", s.handleVolatilityAPI).Methods(http.MethodGet)

	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(s.logger),
		handlers.PrintRecoveryStack(true),
	)
	s.handler = ZstdMiddleware(recovery(s.router))
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler { return s.handler }

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := s.cfg.Addr()
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.handler,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	s.logger.WithField("address", addr).Info("Starting HTTP server")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return nil
}

// Stop gracefully stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	s.logger.Info("Stopping HTTP server")
	return s.httpServer.Shutdown(ctx)
}
