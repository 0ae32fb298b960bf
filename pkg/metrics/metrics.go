// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/telekom/echoprobe/internal/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

var _ Provider = (*manager)(nil)

const serviceName = "echoprobe"

// Provider owns the prometheus registry and the tracer provider.
//
//go:generate go tool moq -out metrics_moq.go . Provider
type Provider interface {
	// GetRegistry returns the registry served at /metrics.
	GetRegistry() *prometheus.Registry
	// InitTracing installs the global tracer provider.
	InitTracing(ctx context.Context) error
	// Shutdown flushes and stops the tracer provider.
	Shutdown(ctx context.Context) error
}

type manager struct {
	config   Config
	version  string
	attrs    []attribute.KeyValue
	registry *prometheus.Registry
	tp       *sdktrace.TracerProvider
}

// New returns a Provider with the runtime collectors registered.
// The version and attrs are added to the trace resource.
//
//nolint:gocritic
func New(config Config, version string, attrs ...attribute.KeyValue) Provider {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &manager{
		config:   config,
		version:  version,
		attrs:    attrs,
		registry: registry,
	}
}

func (m *manager) GetRegistry() *prometheus.Registry {
	return m.registry
}

// InitTracing installs a tracer provider exporting with the configured exporter.
// Spans are created but dropped if the export is disabled.
func (m *manager) InitTracing(ctx context.Context) error {
	log := logger.FromContext(ctx)
	res, err := m.newResource(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Failed to create trace resource", "error", err)
		return fmt.Errorf("failed to create trace resource: %w", err)
	}

	exp := m.config.Exporter
	if !m.config.Enabled {
		exp = NOOP
	}
	exporter, err := exp.Create(ctx, &m.config)
	if err != nil {
		log.ErrorContext(ctx, "Failed to create span exporter", "exporter", exp, "error", err)
		return fmt.Errorf("failed to create span exporter: %w", err)
	}

	m.tp = sdktrace.NewTracerProvider(
		sdktrace.WithSampler(newSampler(m.config.SampleRatio)),
		sdktrace.WithBatcher(exporter,
			sdktrace.WithBatchTimeout(5*time.Second),
			sdktrace.WithMaxQueueSize(1000),
			sdktrace.WithMaxExportBatchSize(100),
		),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(m.tp)
	log.DebugContext(ctx, "Tracing initialized", "exporter", exp, "sampleRatio", m.config.SampleRatio)
	return nil
}

// newResource describes this echoprobe instance.
func (m *manager) newResource(ctx context.Context) (*resource.Resource, error) {
	attrs := append([]attribute.KeyValue{
		semconv.ServiceName(serviceName),
		semconv.ServiceVersion(m.version),
	}, m.attrs...)
	return resource.New(ctx,
		resource.WithHost(),
		resource.WithContainer(),
		resource.WithAttributes(attrs...),
	)
}

// newSampler samples the given share of root spans.
// Child spans follow the decision of their root.
func newSampler(ratio float64) sdktrace.Sampler {
	if ratio <= 0 || ratio >= 1 {
		return sdktrace.AlwaysSample()
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
}

func (m *manager) Shutdown(ctx context.Context) error {
	if m.tp == nil {
		return nil
	}
	if err := m.tp.Shutdown(ctx); err != nil {
		logger.FromContext(ctx).ErrorContext(ctx, "Failed to shutdown tracer provider", "error", err)
		return fmt.Errorf("failed to shutdown tracer provider: %w", err)
	}
	return nil
}
