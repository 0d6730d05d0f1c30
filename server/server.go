// Package server implements the HTTP interface triggering ingestion rounds and notifications
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/cfptrack/pkg/domain"
	"github.com/umputun/cfptrack/pkg/feed"
	"github.com/umputun/cfptrack/pkg/notify"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/adapters.go -pkg mocks -skip-ensure -fmt goimports . AdapterRegistry
//go:generate moq -out mocks/scheduler.go -pkg mocks -skip-ensure -fmt goimports . Scheduler
//go:generate moq -out mocks/cfp_lister.go -pkg mocks -skip-ensure -fmt goimports . CFPLister

// Server represents HTTP server instance
type Server struct {
	config    ConfigProvider
	adapters  AdapterRegistry
	scheduler Scheduler
	cfps      CFPLister
	generator *feed.Generator
	version   string
	debug     bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// AdapterRegistry provides registered source names and their fetch state
type AdapterRegistry interface {
	Names() []string
	LastFetchTime(name string) (time.Time, bool)
}

// Scheduler runs ingestion and notification on demand
type Scheduler interface {
	TriggerIngestion() bool
	LastIngestion(ctx context.Context) (time.Time, bool, error)
	Notify(ctx context.Context, window time.Duration) (notify.NotifyResult, error)
}

// CFPLister provides recently stored CFPs
type CFPLister interface {
	ListCreatedSince(ctx context.Context, since time.Time) ([]domain.CFP, error)
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetBaseURL() string
}

// New initializes a new server instance
func New(cfg ConfigProvider, adapters AdapterRegistry, scheduler Scheduler, cfps CFPLister, version string, debug bool) *Server {
	s := &Server{
		config:    cfg,
		adapters:  adapters,
		scheduler: scheduler,
		cfps:      cfps,
		generator: feed.NewGenerator(cfg.GetBaseURL()),
		version:   version,
		debug:     debug,
		router:    routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	httpServer := s.httpServer
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("cfptrack", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(64 * 1024))
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.HandleFunc("GET /{$}", s.rootHandler)
	s.router.HandleFunc("GET /health", s.healthHandler)
	s.router.HandleFunc("GET /rss", s.rssFeedHandler)

	s.router.Mount("/ingestion").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("POST /ingest", s.ingestHandler)
		r.HandleFunc("GET /adapters", s.adaptersHandler)
		r.HandleFunc("GET /adapters/{name}/last-fetch", s.lastFetchHandler)
	})

	s.router.Mount("/notifications").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("POST /notify", s.notifyHandler)
	})
}
