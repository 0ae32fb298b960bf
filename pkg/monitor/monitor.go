// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package monitor

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/telekom/echoprobe/internal/logger"
	"github.com/telekom/echoprobe/pkg/api"
	"github.com/telekom/echoprobe/pkg/checks"
	checkecho "github.com/telekom/echoprobe/pkg/checks/echo"
	"github.com/telekom/echoprobe/pkg/config"
	"github.com/telekom/echoprobe/pkg/metrics"
	"go.opentelemetry.io/otel/attribute"
)

const shutdownTimeout = time.Second * 30

// resultPath is the path the latest result is served at.
const resultPath = "/v1/result"

// Monitor periodically probes a single host and serves the results
type Monitor struct {
	// config is the startup configuration
	config *config.Config
	// version is reported in the OpenAPI document and traces
	version string
	// check probes the configured host
	check checks.Check
	// store holds the latest result of the check
	store *store
	// api serves the results and metrics
	api api.API
	// metrics is used to collect metrics
	metrics metrics.Provider
	// cResult receives the results of the check
	cResult chan checks.ResultDTO
	// cErr is used to handle non-recoverable errors of the components
	cErr chan error
	// cDone is used to signal that the monitor was shut down
	cDone chan struct{}
	// cause is the first component error that triggered the shutdown
	cause error
	// shutOnce is used to ensure that the shutdown function is only called once
	shutOnce sync.Once
}

// New creates a new monitor from the startup configuration
func New(cfg *config.Config, version string) *Monitor {
	return &Monitor{
		config:   cfg,
		version:  version,
		check:    checkecho.NewCheck(),
		store:    newStore(),
		api:      api.New(cfg.Api),
		metrics:  metrics.New(cfg.Telemetry, version, attribute.String("echoprobe.target", cfg.Probe.Host)),
		cResult:  make(chan checks.ResultDTO, 1),
		cErr:     make(chan error, 2),
		cDone:    make(chan struct{}, 1),
		shutOnce: sync.Once{},
	}
}

// Run starts the check and the API and blocks until the context is
// canceled or a component fails. It always returns an error wrapping
// [ErrFinalShutdown] and, if a component failed, its error.
func (m *Monitor) Run(ctx context.Context) error {
	ctx, cancel := logger.NewContextWithLogger(ctx)
	log := logger.FromContext(ctx)
	defer cancel()

	if err := m.setup(ctx); err != nil {
		return err
	}

	go func() {
		m.cErr <- m.api.Run(ctx)
	}()
	go func() {
		if err := m.check.Run(ctx, m.cResult); err != nil {
			m.cErr <- &ErrRunningCheck{Check: m.check, Err: err}
		}
	}()

	for {
		select {
		case res := <-m.cResult:
			m.store.Save(res)
			log.DebugContext(ctx, "Stored check result", "check", res.Name)
		case <-ctx.Done():
			m.shutdown(ctx)
		case err := <-m.cErr:
			if err != nil {
				log.ErrorContext(ctx, "Non-recoverable error in echoprobe component", "error", err)
				if m.cause == nil && ctx.Err() == nil {
					m.cause = err
				}
				m.shutdown(ctx)
			}
		case <-m.cDone:
			log.InfoContext(ctx, "Echoprobe was shut down")
			if m.cause != nil {
				return fmt.Errorf("%w: %w", ErrFinalShutdown, m.cause)
			}
			return ErrFinalShutdown
		}
	}
}

// setup initializes tracing, configures the check and registers
// its metrics and the API routes.
func (m *Monitor) setup(ctx context.Context) error {
	if err := m.metrics.InitTracing(ctx); err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}

	probe := m.config.Probe
	if err := m.check.UpdateConfig(&probe); err != nil {
		return fmt.Errorf("failed to configure check: %w", err)
	}

	registry := m.metrics.GetRegistry()
	for _, c := range m.check.GetMetricCollectors() {
		if err := registry.Register(c); err != nil {
			return fmt.Errorf("failed to register metrics of check %s: %w", m.check.Name(), err)
		}
	}
	if err := metrics.RegisterInstanceInfo(registry, m.config.Name, map[string]string{
		"version": m.version,
		"target":  probe.Host,
	}); err != nil {
		return fmt.Errorf("failed to register instance info: %w", err)
	}

	doc, err := api.NewOpenAPI(m.version, map[string]checks.Check{resultPath: m.check})
	if err != nil {
		return fmt.Errorf("failed to generate openapi document: %w", err)
	}

	return m.api.RegisterRoutes(ctx,
		api.Route{Path: resultPath, Method: http.MethodGet, Handler: m.handleResult},
		api.Route{Path: "/openapi", Method: http.MethodGet, Handler: handleOpenAPI(doc)},
		api.Route{Path: "/metrics", Method: http.MethodGet, Handler: handleMetrics(registry)},
	)
}

// shutdown shuts down the monitor and all managed components gracefully.
func (m *Monitor) shutdown(ctx context.Context) {
	errC := ctx.Err()
	log := logger.FromContext(ctx)
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	m.shutOnce.Do(func() {
		log.InfoContext(ctx, "Shutting down echoprobe")
		var sErrs ErrShutdown
		sErrs.errAPI = m.api.Shutdown(ctx)
		sErrs.errMetrics = m.metrics.Shutdown(ctx)
		m.check.Shutdown()

		if sErrs.HasError() {
			log.ErrorContext(ctx, "Failed to shutdown gracefully", "contextError", errC, "errors", sErrs)
		}

		// Signal that shutdown is complete
		m.cDone <- struct{}{}
	})
}
