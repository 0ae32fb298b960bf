// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package echo

import (
	"context"
	"fmt"
	"net/netip"
	"time"

	"github.com/telekom/echoprobe/internal/logger"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// run holds the state of a single probe run.
// It is owned by one goroutine and never shared.
type run struct {
	client *genericClient
	host   string
	opts   Options

	// id is the echo identifier, constant for the run.
	id uint16
	// seq is the sequence number of the last attempt.
	seq uint16
	// sock is exclusively owned by the run.
	sock  socket
	state State
}

// attempt is a single echo request and its reply.
type attempt struct {
	seq      uint16
	sent     time.Time
	received time.Time
}

// rtt returns the round-trip time of the attempt,
// or a missed RTT if no reply was received.
func (a attempt) rtt() RTT {
	if a.received.IsZero() {
		return RTT{}
	}
	return newRTT(a.received.Sub(a.sent))
}

func (r *run) setState(ctx context.Context, s State) {
	logger.FromContext(ctx).DebugContext(ctx, "Probe run state changed", "from", r.state.String(), "to", s.String())
	r.state = s
}

// execute resolves the host and runs all attempts.
func (r *run) execute(ctx context.Context) (Result, error) {
	log := logger.FromContext(ctx).With("host", r.host)
	ctx = logger.IntoContext(ctx, log)

	r.setState(ctx, StateResolving)
	addr, err := r.resolve(ctx)
	if err != nil {
		if isAbort(err) {
			r.setState(ctx, StateAborted)
		} else {
			r.setState(ctx, StateResolutionFailed)
		}
		return Result{}, err
	}

	sock, err := r.client.open(ctx, r.opts.Privileged)
	if err != nil {
		r.setState(ctx, StateFailed)
		return Result{}, wrapError(ctx, err, "failed to open socket")
	}
	r.sock = sock
	defer func() {
		if cerr := r.sock.Close(); cerr != nil {
			log.WarnContext(ctx, "Failed to close ICMP socket", "error", cerr)
		}
	}()

	r.setState(ctx, StateProbing)
	log.InfoContext(ctx, "Probing host", "addr", addr.String(), "attempts", r.opts.Attempts)

	res := Result{
		Host: r.host,
		Addr: addr.String(),
		RTTs: make([]RTT, r.opts.Attempts),
	}
	for i := range res.RTTs {
		if err := ctx.Err(); err != nil {
			r.setState(ctx, StateAborted)
			return Result{}, wrapError(ctx, err, "probe run aborted", "attempt", i+1)
		}

		rtt, err := r.attempt(ctx, addr)
		if err != nil {
			if isAbort(err) {
				r.setState(ctx, StateAborted)
			} else {
				r.setState(ctx, StateFailed)
			}
			return Result{}, err
		}
		res.RTTs[i] = rtt
	}

	if last, ok := res.LastReply(); ok {
		res.Distance = EstimateDistance(last, r.opts.SignalSpeed)
	}
	r.setState(ctx, StateCompleted)
	log.InfoContext(ctx, "Probe run completed",
		"received", res.Received(),
		"sent", len(res.RTTs),
		"distanceMeters", res.Distance.Meters(),
	)
	return res, nil
}

// resolve returns the first IPv4 address of the host.
func (r *run) resolve(ctx context.Context) (netip.Addr, error) {
	ips, err := r.client.resolver.LookupIP(ctx, "ip4", r.host)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return netip.Addr{}, wrapError(ctx, ctxErr, "probe run aborted")
	}
	if err != nil {
		return netip.Addr{}, wrapError(ctx, fmt.Errorf("%w: %w", ErrResolution, err), "failed to resolve host")
	}

	addr, ok := firstIPv4(ips)
	if !ok {
		return netip.Addr{}, wrapError(ctx, fmt.Errorf("%w: no IPv4 address found for %q", ErrResolution, r.host), "failed to resolve host")
	}
	return addr, nil
}

// attempt sends the next echo request and waits for its reply.
// A missing reply is returned as a missed RTT without error.
func (r *run) attempt(ctx context.Context, addr netip.Addr) (RTT, error) {
	log := logger.FromContext(ctx)
	r.seq++
	ctx, span := r.client.tracer.Start(ctx, "echo.attempt", trace.WithAttributes(
		attribute.Int("echo.seq", int(r.seq)),
		attribute.Stringer("echo.target.addr", addr),
	))
	defer span.End()

	req := newRequest(r.id)
	req.Seq = r.seq
	pkt := req.Marshal()

	a := attempt{seq: r.seq, sent: time.Now()}
	if err := r.sock.Send(pkt, addr); err != nil {
		return RTT{}, wrapError(ctx, fmt.Errorf("%w: %w", ErrSend, err), "failed to send echo request", "seq", a.seq)
	}

	waitCtx, cancel := context.WithTimeout(ctx, r.opts.Timeout)
	defer cancel()
	err := r.sock.Await(waitCtx, r.id, a.seq)
	if err == nil {
		a.received = time.Now()
	}
	// A wait cut short by the caller's context is not a missed reply.
	if ctxErr := ctx.Err(); err != nil && ctxErr != nil {
		return RTT{}, wrapError(ctx, ctxErr, "probe run aborted", "seq", a.seq)
	}

	switch {
	case err == nil:
		rtt := a.rtt()
		log.DebugContext(ctx, "Received echo reply", "seq", a.seq, "rtt", rtt.String())
		span.SetAttributes(attribute.Float64("echo.rtt_ms", rtt.Millis))
		return rtt, nil
	case isAbort(err):
		return RTT{}, wrapError(ctx, err, "probe run aborted", "seq", a.seq)
	case !IsFatal(err):
		log.WarnContext(ctx, "Echo reply timed out", "seq", a.seq, "timeout", r.opts.Timeout.String())
		span.AddEvent("echo reply timed out")
	default:
		log.ErrorContext(ctx, "Failed to receive echo reply", "seq", a.seq, "error", err)
		span.RecordError(err)
	}
	return a.rtt(), nil
}
