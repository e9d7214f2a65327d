// Package server provides HTTP server initialization and lifecycle management.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"domainguard/src/app/http/handler"
	"domainguard/src/app/http/view"
	"domainguard/src/app/middleware"
	"domainguard/src/core/domain"
	"domainguard/src/core/ports"
	"domainguard/src/core/usecase"
	"domainguard/src/infra/config"
	"domainguard/src/infra/i18n"
	"domainguard/src/infra/logger"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	cfg    *config.Config
	log    *slog.Logger
	router *gin.Engine
	http   *http.Server

	store     ports.Store
	pages     *handler.Pages
	protector *middleware.Protector

	// Handlers
	healthHandler    *handler.HealthHandler
	domainHandler    *handler.DomainHandler
	removeDomainPage *handler.RemoveDomainPageHandler
}

// New creates a new Server with all dependencies wired up.
func New(cfg *config.Config, log *slog.Logger, store ports.Store, bundle *i18n.Bundle) *Server {
	// Set Gin mode based on log level
	if cfg.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router without default middleware
	router := gin.New()
	router.SetHTMLTemplate(view.Templates())

	// Create services
	healthService := usecase.NewHealthService(log, map[string]ports.HealthChecker{
		"database": store,
	})
	domainService := usecase.NewDomainService(store, logger.WithComponent(log, "domains"))

	guard := usecase.NewGuard(cfg.Auth.SignInURL, logger.WithComponent(log, "guard"))
	if cfg.Auth.SignInRedirectParam != "" {
		guard.SignInURLFor = usecase.SignInURLWithReturn(guard.SignInURL, cfg.Auth.SignInRedirectParam)
	}

	pages := handler.NewPages(bundle, handler.Site{
		ProfileURL: cfg.UI.ProfileURL,
		ScriptURL:  cfg.UI.ScriptURL,
	})

	s := &Server{
		cfg:              cfg,
		log:              log,
		router:           router,
		store:            store,
		pages:            pages,
		protector:        middleware.NewProtector(guard, pages),
		healthHandler:    handler.NewHealthHandler(healthService),
		domainHandler:    handler.NewDomainHandler(domainService),
		removeDomainPage: handler.NewRemoveDomainPageHandler(domainService, pages, log),
	}

	s.setupMiddleware()
	s.setupRoutes()
	s.setupHTTPServer()

	return s
}

// setupMiddleware configures global middleware.
func (s *Server) setupMiddleware() {
	// Order matters: Recovery should be first to catch all panics
	s.router.Use(middleware.Recovery(s.log, s.pages))
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.CORS(s.cfg.Server.AllowedOrigins))
	s.router.Use(middleware.Logging(s.log))
	s.router.Use(middleware.SessionAuth(s.store, s.cfg.Auth.SessionCookie, s.log, s.pages))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	read := s.protector.Require(usecase.Permission(domain.PermissionDomainsRead))
	manage := s.protector.Require(usecase.Permission(domain.PermissionDomainsManage))

	// Health check endpoints (no auth required)
	s.router.GET("/health", s.healthHandler.Health)
	s.router.GET("/health/detailed", s.healthHandler.DetailedHealth)

	// Pages
	org := s.router.Group("/organization")
	{
		org.GET("/domains/:id/remove", manage, s.removeDomainPage.Show)
		org.POST("/domains/:id/remove", manage, s.removeDomainPage.Remove)
	}

	// API v1 routes
	v1 := s.router.Group("/v1")
	{
		v1.GET("/me", s.protector.Require(nil), s.domainHandler.Me)

		v1.GET("/organization/domains", read, s.domainHandler.List)
		v1.GET("/organization/domains/:id", read, s.domainHandler.Get)
		v1.POST("/organization/domains", manage, s.domainHandler.Create)
		v1.DELETE("/organization/domains/:id", manage, s.domainHandler.Delete)
	}

	// Handle 404
	s.router.NoRoute(middleware.NotFound(s.pages))
}

// setupHTTPServer configures the underlying HTTP server.
func (s *Server) setupHTTPServer() {
	s.http = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}
}

// Run starts the HTTP server and blocks until shutdown.
// It handles graceful shutdown on SIGINT/SIGTERM.
func (s *Server) Run() error {
	// Channel to receive shutdown signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Channel to receive server errors
	errCh := make(chan error, 1)

	// Start server in goroutine
	go func() {
		s.log.Info("starting HTTP server",
			"addr", s.cfg.Server.Addr(),
		)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	// Wait for shutdown signal or error
	select {
	case sig := <-quit:
		s.log.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		return err
	}

	// Graceful shutdown
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	s.log.Info("shutting down server", "timeout", s.cfg.Server.ShutdownTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.log.Info("server stopped gracefully")
	return nil
}

// Router returns the Gin router for testing.
func (s *Server) Router() *gin.Engine {
	return s.router
}
