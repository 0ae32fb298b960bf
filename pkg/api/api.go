// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/telekom/echoprobe/internal/logger"
)

const readHeaderTimeout = 5 * time.Second

//go:generate go tool moq -out api_moq.go . API
type API interface {
	// Run serves the registered routes until the context is canceled
	// or the server is shut down.
	Run(ctx context.Context) error
	// Shutdown gracefully stops the server.
	Shutdown(ctx context.Context) error
	// RegisterRoutes adds the routes to the router.
	// It must be called before Run.
	RegisterRoutes(ctx context.Context, routes ...Route) error
}

type api struct {
	server *http.Server
	router chi.Router
}

// Route is a handler bound to a method and path.
type Route struct {
	Path    string
	Method  string
	Handler http.HandlerFunc
}

// Config is the configuration of the HTTP API.
type Config struct {
	// ListeningAddress is the address the server listens on, e.g. ":8080"
	ListeningAddress string `yaml:"address" mapstructure:"address"`
}

// Validate checks that the listening address is set.
func (c *Config) Validate() error {
	if c.ListeningAddress == "" {
		return errors.New("api address must not be empty")
	}
	return nil
}

// New creates a new api
func New(cfg Config) API {
	r := chi.NewRouter()
	return &api{
		server: &http.Server{Addr: cfg.ListeningAddress, Handler: r, ReadHeaderTimeout: readHeaderTimeout},
		router: r,
	}
}

// Run serves the api
// Blocks until context is done
func (a *api) Run(ctx context.Context) error {
	ctx, cancel := logger.NewContextWithLogger(ctx)
	defer cancel()
	log := logger.FromContext(ctx)

	cErr := make(chan error, 1)
	log.InfoContext(ctx, "Serving API", "addr", a.server.Addr)
	go func() {
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.ErrorContext(ctx, "Failed to serve API", "error", err)
			cErr <- err
			return
		}
		cErr <- nil
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("failed serving API: %w", ctx.Err())
	case err := <-cErr:
		if err == nil {
			log.InfoContext(ctx, "API server closed")
		}
		return err
	}
}

// Shutdown gracefully shuts down the api server
func (a *api) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	err := a.server.Shutdown(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Failed to shutdown API server", "error", err)
		return fmt.Errorf("failed shutting down API: %w", errors.Join(err, ctx.Err()))
	}
	return nil
}

// RegisterRoutes sets up the default middleware and the given routes.
func (a *api) RegisterRoutes(ctx context.Context, routes ...Route) error {
	a.router.Use(logger.Middleware(ctx), middleware.Recoverer)
	for _, route := range routes {
		switch route.Method {
		case http.MethodGet, http.MethodHead:
			a.router.Method(route.Method, route.Path, route.Handler)
		default:
			return ErrInvalidRoute{Method: route.Method, Path: route.Path}
		}
	}

	a.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})
	return nil
}
