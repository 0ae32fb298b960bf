// Package echo provides an ICMP Echo prober that measures round-trip
// times to a single IPv4 host and derives a coarse one-way distance
// estimate from them.
//
// It exposes a [Client] for probing a host with configurable [Options].
// A probe run resolves the host once, opens one ICMP socket that is owned
// by the run, and then sends exactly [Options.Attempts] echo requests one
// after another. Every attempt waits for its matching echo reply for at
// most [Options.Timeout]; an attempt without a reply is recorded as a miss
// and the run continues.
//
// Key features:
//   - Echo requests built on an explicit byte buffer with the RFC 1071
//     checksum from the checksum package
//   - Raw ip4:icmp sockets, or unprivileged ICMP datagram sockets when
//     [Options.Privileged] is false
//   - Missed attempts kept as explicit slots in [Result.RTTs], never as zero latency
//   - Cancellation through the context interrupts the blocking read
//   - OpenTelemetry spans for the run and each attempt
//   - Mockable internals (socket, Resolver, Client) for unit testing
//
// Typical usage:
//
//	client := echo.NewClient()
//	opts := echo.DefaultOptions()
//	res, err := client.Probe(ctx, "example.com", &opts)
//	// res.RTTs holds one slot per attempt, res.Distance the estimate in meters
//
// The distance is (RTT / 2) × signal speed of the last answered attempt.
// It assumes a direct symmetric path and ignores queuing and processing
// delay, so it is an approximation and not a physical measurement.
package echo
