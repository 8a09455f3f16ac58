// Package server wires the application together: database, services,
// handlers, middleware and routes. It is the composition root — every
// dependency is constructed here and main.go stays a thin shell.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/codesplit/internal/auth"
	"github.com/sakif/codesplit/internal/config"
	"github.com/sakif/codesplit/internal/handler"
	"github.com/sakif/codesplit/internal/middleware"
	sqliteRepo "github.com/sakif/codesplit/internal/repository/sqlite"
	"github.com/sakif/codesplit/internal/service"
)

// Server owns the router and the database connection; the connection is
// closed during graceful shutdown so the WAL gets flushed.
type Server struct {
	router *chi.Mux
	cfg    *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New builds the full dependency graph. Each layer only sees the one below
// it: handlers get services, services get repository interfaces, and only
// this package knows the concrete sqlite.DB behind them.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		cfg:    cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}
	return s, nil
}

func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.cfg.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	github := auth.NewGitHubProvider(
		s.cfg.GitHub.ClientID,
		s.cfg.GitHub.ClientSecret,
		s.cfg.GitHub.CallbackURL,
	)

	// Services. The one sqlite.DB value implements every repository
	// interface, so it is passed once per dependency.
	userService := service.NewUserService(s.db, s.db, s.logger)
	projectService := service.NewProjectService(s.db, s.logger)
	communityService := service.NewCommunityService(s.db, s.db, s.db, s.logger)
	migrationService := service.NewMigrationService(s.db, s.logger)

	authHandler := handler.NewAuthHandler(github, tokens, userService, s.logger)
	projectHandler := handler.NewProjectHandler(projectService, s.logger)
	templateHandler := handler.NewTemplateHandler(projectService, s.logger)
	communityHandler := handler.NewCommunityHandler(communityService, s.logger)
	profileHandler := handler.NewProfileHandler(userService, communityService, s.logger)
	migrationHandler := handler.NewMigrationHandler(migrationService, s.logger)

	requireAuth := auth.RequireAuth(tokens)

	s.router.Route("/auth", func(r chi.Router) {
		r.Get("/github/login", authHandler.HandleGitHubLogin)
		r.Get("/github/callback", authHandler.HandleGitHubCallback)
		r.Post("/logout", authHandler.HandleLogout)
	})

	s.router.Route("/api", func(r chi.Router) {
		// Public reads. OptionalAuth still resolves the viewer's identity
		// when a session cookie is present, without gating anything.
		r.Group(func(r chi.Router) {
			r.Use(auth.OptionalAuth(tokens))

			r.Get("/templates", templateHandler.HandleList)
			r.Get("/templates/{id}", templateHandler.HandleGet)
			r.Get("/projects/{id}", projectHandler.HandleGet)
			r.Get("/projects/{id}/preview", projectHandler.HandlePreview)
			r.Get("/community", communityHandler.HandleList)
			r.Get("/community/user/{userID}", communityHandler.HandleListByUser)
			r.Post("/community/{id}/view", communityHandler.HandleView)
			r.Get("/profile/username/available", profileHandler.HandleUsernameAvailable)
			r.Get("/users/{username}", profileHandler.HandlePublicProfile)
		})

		// Authenticated surface.
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Get("/me", authHandler.HandleMe)

			r.Get("/projects", projectHandler.HandleList)
			r.Post("/projects", projectHandler.HandleSave)
			r.Put("/projects/{id}/rename", projectHandler.HandleRename)
			r.Post("/projects/{id}/duplicate", projectHandler.HandleDuplicate)
			r.Put("/projects/{id}/visibility", projectHandler.HandleVisibility)
			r.Put("/projects/{id}/featured", projectHandler.HandleFeatured)
			r.Delete("/projects/{id}", projectHandler.HandleDelete)

			r.Post("/templates/{id}/fork", templateHandler.HandleFork)

			r.Post("/community/{id}/publish", communityHandler.HandlePublish)
			r.Put("/community/{id}", communityHandler.HandleUpdatePublished)
			r.Post("/community/{id}/unpublish", communityHandler.HandleUnpublish)
			r.Post("/community/{id}/like", communityHandler.HandleToggleLike)
			r.Get("/community/{id}/liked", communityHandler.HandleHasLiked)

			r.Put("/profile", profileHandler.HandleUpdate)
			r.Put("/profile/username", profileHandler.HandleClaimUsername)

			r.Post("/migrate", migrationHandler.HandleMigrate)
		})
	})

	return nil
}

// Start runs the server until SIGINT/SIGTERM, then drains in-flight
// requests and closes the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.cfg.Port),
			slog.String("database", s.cfg.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
