// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package echo

import (
	"context"
	"errors"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/telekom/echoprobe/internal/echo"
	"github.com/telekom/echoprobe/internal/logger"
	"github.com/telekom/echoprobe/pkg/checks"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var _ checks.Check = (*Echo)(nil)

const CheckName = "echo"

// NewCheck returns an echo check that probes with the default client.
func NewCheck() checks.Check {
	return NewCheckWithClient(echo.NewClient())
}

// NewCheckWithClient returns an echo check that probes with the given client.
func NewCheckWithClient(client echo.Client) checks.Check {
	c := &Echo{
		CheckBase: checks.NewCheckBase(),
		config:    Config{Interval: DefaultInterval, Options: echo.DefaultOptions()},
		client:    client,
		metrics:   newMetrics(),
	}
	c.tracer = otel.Tracer(c.Name())
	return c
}

// Echo periodically probes a single host with ICMP echo requests.
type Echo struct {
	checks.CheckBase
	config  Config
	metrics metrics
	client  echo.Client
	tracer  trace.Tracer
}

// result is the data of a check result.
type result struct {
	echo.Result `json:",inline" yaml:",inline"`
	// State is the state the probe run ended in.
	State string `json:"state" yaml:"state"`
	// LossPercent is the share of attempts without a reply.
	LossPercent float64 `json:"lossPercent" yaml:"lossPercent"`
	// Error describes why the probe run failed.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Run runs the check in a loop sending results to the provided channel.
// The first probe run starts immediately.
func (e *Echo) Run(ctx context.Context, cResult chan checks.ResultDTO) error {
	ctx, cancel := logger.NewContextWithLogger(ctx)
	defer cancel()
	log := logger.FromContext(ctx)

	cfg := e.GetConfig().(*Config)
	log.InfoContext(ctx, "Starting echo check", "host", cfg.Host, "interval", cfg.Interval.String())
	timer := time.NewTimer(0)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			log.ErrorContext(ctx, "Context canceled", "error", ctx.Err())
			return ctx.Err()
		case <-e.DoneChan:
			return nil
		case <-timer.C:
			res := e.check(ctx)
			select {
			case cResult <- checks.ResultDTO{
				Name: e.Name(),
				Result: &checks.Result{
					Data:      res,
					Timestamp: time.Now().UTC(),
				},
			}:
			case <-ctx.Done():
				return ctx.Err()
			}
			log.DebugContext(ctx, "Successfully finished echo check run")
			timer.Reset(e.GetConfig().(*Config).Interval)
		}
	}
}

// GetConfig returns the current configuration of the check
func (e *Echo) GetConfig() checks.Runtime {
	e.Mu.Lock()
	defer e.Mu.Unlock()
	cfg := e.config
	return &cfg
}

// check performs one probe run and records its metrics.
func (e *Echo) check(ctx context.Context) result {
	log := logger.FromContext(ctx)
	ctx, span := e.tracer.Start(ctx, "echo.check")
	defer span.End()

	e.Mu.Lock()
	defer e.Mu.Unlock()

	span.SetAttributes(attribute.String("echo.target.host", e.config.Host))
	res, err := e.client.Probe(ctx, e.config.Host, &e.config.Options)
	e.metrics.Set(e.config.Host, res, err)

	out := result{Result: res, State: echo.StateOf(err).String(), LossPercent: res.LossPercent()}
	if err != nil {
		log.ErrorContext(ctx, "Failed to probe host", "host", e.config.Host, "error", err)
		span.SetStatus(codes.Error, "Failed to probe host")
		span.RecordError(err)
		out.Host = e.config.Host
		out.Error = err.Error()
	}
	return out
}

// Shutdown is called once when echoprobe shuts down
func (e *Echo) Shutdown() {
	e.DoneChan <- struct{}{}
	close(e.DoneChan)
}

// UpdateConfig is called once before the check is started.
// Metrics of a previously probed host are removed.
func (e *Echo) UpdateConfig(cfg checks.Runtime) error {
	c, ok := cfg.(*Config)
	if !ok {
		return checks.ErrConfigMismatch{
			Expected: CheckName,
			Current:  cfg.For(),
		}
	}
	if err := c.Validate(); err != nil {
		return err
	}

	e.Mu.Lock()
	defer e.Mu.Unlock()
	if e.config.Host != "" && e.config.Host != c.Host {
		var nf checks.ErrMetricNotFound
		if err := e.metrics.Remove(e.config.Host); err != nil && !errors.As(err, &nf) {
			return err
		}
	}
	e.config = *c
	return nil
}

// Schema returns an openapi3.SchemaRef of the result type returned by the check
func (e *Echo) Schema() (*openapi3.SchemaRef, error) {
	return checks.OpenapiFromPerfData(result{})
}

// GetMetricCollectors allows the check to provide prometheus metric collectors
func (e *Echo) GetMetricCollectors() []prometheus.Collector {
	return e.metrics.List()
}

// Name returns the name of the check
func (e *Echo) Name() string {
	return CheckName
}

// RemoveLabelledMetrics removes the metrics which have the passed
// target as a label
func (e *Echo) RemoveLabelledMetrics(target string) error {
	return e.metrics.Remove(target)
}
