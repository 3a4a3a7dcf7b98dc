package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/collectarr/collectarr/internal/api/handlers"
	"github.com/collectarr/collectarr/internal/api/middleware"
	"github.com/collectarr/collectarr/internal/config"
	"github.com/collectarr/collectarr/internal/recommend"
	"github.com/collectarr/collectarr/internal/services/metadata"
	"github.com/collectarr/collectarr/internal/store"
	"github.com/sirupsen/logrus"
)

// Server represents the HTTP server
type Server struct {
	server *http.Server
	logger *logrus.Logger
}

// Deps are the collaborators the HTTP layer is wired with
type Deps struct {
	Records   store.RecordStore
	Profiles  *store.Profiles
	Metadata  *metadata.Client
	Debouncer *metadata.Debouncer
	Generator *recommend.Generator
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, deps Deps, logger *logrus.Logger) *Server {
	s := &Server{logger: logger}

	mux := http.NewServeMux()
	s.setupRoutes(mux, deps)

	s.server = &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      middleware.Logging(mux, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(mux *http.ServeMux, deps Deps) {
	healthHandler := handlers.NewHealthHandler(s.logger)
	mux.Handle("GET /health", healthHandler)

	statusHandler := handlers.NewStatusHandler(deps.Records, deps.Profiles, s.logger)
	mux.Handle("GET /status", statusHandler)

	mediaHandler := handlers.NewMediaHandler(deps.Records, deps.Profiles, s.logger)
	mux.HandleFunc("GET /api/media", mediaHandler.List)
	mux.HandleFunc("POST /api/media", mediaHandler.Create)
	mux.HandleFunc("GET /api/media/{id}", mediaHandler.Get)
	mux.HandleFunc("PUT /api/media/{id}", mediaHandler.Update)
	mux.HandleFunc("DELETE /api/media/{id}", mediaHandler.Delete)
	mux.HandleFunc("GET /api/search", mediaHandler.Search)

	profileHandler := handlers.NewProfileHandler(deps.Records, deps.Profiles, s.logger)
	mux.HandleFunc("GET /api/profiles", profileHandler.List)
	mux.HandleFunc("POST /api/profiles", profileHandler.Create)
	mux.HandleFunc("GET /api/profiles/current", profileHandler.Current)
	mux.HandleFunc("POST /api/profiles/{id}/activate", profileHandler.Activate)
	mux.HandleFunc("DELETE /api/profiles/{id}", profileHandler.Delete)
	mux.HandleFunc("POST /api/logout", profileHandler.Logout)
	mux.HandleFunc("POST /api/guest", profileHandler.Guest)

	recHandler := handlers.NewRecommendationHandler(deps.Records, deps.Profiles, deps.Generator, s.logger)
	mux.HandleFunc("GET /api/recommendations", recHandler.Generate)

	metadataHandler := handlers.NewMetadataHandler(deps.Metadata, deps.Debouncer, s.logger)
	mux.HandleFunc("GET /api/metadata/search", metadataHandler.Search)
	mux.HandleFunc("GET /api/metadata/suggest", metadataHandler.Suggest)

	transferHandler := handlers.NewTransferHandler(deps.Records, deps.Profiles, s.logger)
	mux.HandleFunc("GET /api/export", transferHandler.Export)
	mux.HandleFunc("POST /api/import", transferHandler.Import)
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	s.logger.WithField("addr", s.server.Addr).Info("Starting HTTP server")

	errChan := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}
