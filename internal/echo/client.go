// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package echo

import (
	"context"
	"fmt"
	"net"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	_ Client   = (*genericClient)(nil)
	_ Resolver = (*net.Resolver)(nil)
)

// tracerName is the name of the OpenTelemetry tracer of the prober.
const tracerName = "echo"

// Client is able to probe a host with ICMP echo requests.
//
//go:generate go tool moq -out client_moq.go . Client
type Client interface {
	// Probe resolves host and sends opts.Attempts echo requests to it, one after another.
	// Returns a Result with one RTT slot per attempt, or an error if the run failed
	// to resolve the host, to open the socket or to send a request.
	// A missing reply is not an error.
	Probe(ctx context.Context, host string, opts *Options) (Result, error)
}

// Resolver looks up the addresses of a host.
//
//go:generate go tool moq -out resolver_moq.go . Resolver
type Resolver interface {
	LookupIP(ctx context.Context, network, host string) ([]net.IP, error)
}

type genericClient struct {
	// resolver resolves the probed host.
	resolver Resolver
	// open opens the socket of a run.
	open socketOpener
	// newID returns the echo identifier of a run.
	newID func() uint16
	// tracer creates the spans of runs and attempts.
	tracer trace.Tracer
}

// NewClient returns a [Client] that uses the default resolver.
func NewClient() Client {
	return NewClientWithResolver(net.DefaultResolver)
}

// NewClientWithResolver returns a [Client] that resolves hosts with r.
func NewClientWithResolver(r Resolver) Client {
	return &genericClient{
		resolver: r,
		open:     openSocket,
		newID:    newIdentifier,
		tracer:   otel.Tracer(tracerName),
	}
}

func (c *genericClient) Probe(ctx context.Context, host string, opts *Options) (Result, error) {
	if opts == nil {
		def := DefaultOptions()
		opts = &def
	}
	if err := opts.Validate(); err != nil {
		return Result{}, fmt.Errorf("invalid options: %w", err)
	}
	if host == "" {
		return Result{}, fmt.Errorf("%w: host cannot be empty", ErrResolution)
	}

	ctx, span := c.tracer.Start(ctx, "echo.probe", trace.WithAttributes(
		attribute.String("echo.target.host", host),
		attribute.Int("echo.attempts", opts.Attempts),
		attribute.Bool("echo.privileged", opts.Privileged),
	))
	defer span.End()

	r := c.newRun(host, *opts)
	res, err := r.execute(ctx)
	span.SetAttributes(attribute.String("echo.state", r.state.String()))
	if err != nil {
		return Result{}, err
	}

	span.SetAttributes(
		attribute.Int("echo.received", res.Received()),
		attribute.Float64("echo.distance_meters", res.Distance.Meters()),
	)
	span.SetStatus(codes.Ok, "")
	return res, nil
}

// newRun creates the run-scoped state of one probe run.
func (c *genericClient) newRun(host string, opts Options) *run {
	return &run{
		client: c,
		host:   host,
		opts:   opts,
		id:     c.newID(),
		state:  StateIdle,
	}
}
