// Package server wires the handlers into a router and runs the HTTP server.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/alexliesenfeld/health"
	"github.com/gorilla/mux"
	"github.com/quickdrop/quickdrop/internal/config"
	"github.com/quickdrop/quickdrop/internal/handlers"
	"github.com/quickdrop/quickdrop/internal/storage"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

// Server is the file host's HTTP front end
type Server struct {
	config     *config.Config
	handler    http.Handler
	httpServer *http.Server
}

// New builds the request pipeline once from the configuration.
func New(cfg *config.Config, store storage.StorageInterface) (*Server, error) {
	h, err := handlers.New(cfg, store)
	if err != nil {
		return nil, fmt.Errorf("failed to create handlers: %w", err)
	}

	router := mux.NewRouter()
	router.Handle("/health", health.NewHandler(newHealthChecker(store))).Methods(http.MethodGet)
	router.HandleFunc("/", h.Index).Methods(http.MethodGet)
	router.HandleFunc("/", h.Upload).Methods(http.MethodPost)
	router.HandleFunc("/{filename}", h.Retrieve).Methods(http.MethodGet, http.MethodHead)

	// Wrapping the whole router also logs mux's own 404 and 405 replies.
	handler := handlers.LogRequests(router)
	if cfg.UseCORS {
		handler = cors.AllowAll().Handler(handler)
		logrus.Info("Permissive CORS enabled")
	}

	return &Server{
		config:  cfg,
		handler: handler,
		httpServer: &http.Server{
			Addr:    cfg.ListenAddr(),
			Handler: handler,
			// Bodies are unbounded so large uploads are not cut off mid-stream.
			ReadHeaderTimeout: 15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}, nil
}

// Handler returns the complete request pipeline
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until Shutdown is called. It returns nil after a clean shutdown.
func (s *Server) Start() error {
	logrus.Infof("HTTP server starting on %s (public URL %s)", s.httpServer.Addr, s.config.UserURL)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server failed: %w", err)
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func newHealthChecker(store storage.StorageInterface) health.Checker {
	return health.NewChecker(
		health.WithCacheDuration(1*time.Second),
		health.WithTimeout(5*time.Second),
		health.WithCheck(health.Check{
			Name: "storage",
			Check: func(ctx context.Context) error {
				return store.Ping()
			},
		}),
	)
}
