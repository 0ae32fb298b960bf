// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package echo

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"time"

	"github.com/telekom/echoprobe/internal/logger"
	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
	"golang.org/x/sys/unix"
)

// mtuSize is the size of the receive buffer.
const mtuSize = 1500

// protocolICMP is the IANA protocol number of ICMP for IPv4.
var protocolICMP = ipv4.ICMPTypeEchoReply.Protocol()

// socket sends echo requests and waits for their replies.
//
//go:generate go tool moq -out socket_moq.go . socket
type socket interface {
	// Send writes the marshalled echo request to dst.
	Send(b []byte, dst netip.Addr) error
	// Await blocks until the echo reply for id and seq arrives.
	// It returns [ErrReplyTimeout] once the context deadline passes
	// and the context error if the context is cancelled.
	Await(ctx context.Context, id, seq uint16) error
	// Close releases the socket.
	Close() error
}

// socketOpener opens the socket of a probe run.
type socketOpener func(ctx context.Context, privileged bool) (socket, error)

// icmpSocket is a [socket] backed by an [icmp.PacketConn].
type icmpSocket struct {
	conn *icmp.PacketConn
	// privileged is true for raw ip4:icmp sockets. Datagram sockets
	// get their identifier rewritten by the kernel, so replies are
	// matched by sequence number only.
	privileged bool
}

// openSocket opens a raw ICMP socket, or an ICMP datagram socket when
// privileged is false. A permission error is reported as [ErrSocket]
// with a hint on the missing privilege.
func openSocket(ctx context.Context, privileged bool) (socket, error) {
	log := logger.FromContext(ctx)
	network := "udp4"
	if privileged {
		network = "ip4:icmp"
	}

	conn, err := icmp.ListenPacket(network, "0.0.0.0")
	if err != nil {
		return nil, socketError(err, privileged)
	}

	log.DebugContext(ctx, "Opened ICMP socket", "network", network)
	return &icmpSocket{conn: conn, privileged: privileged}, nil
}

// socketError wraps err into [ErrSocket]. Permission errors carry a
// hint matching the kind of socket that was denied.
func socketError(err error, privileged bool) error {
	if !errors.Is(err, unix.EPERM) && !errors.Is(err, unix.EACCES) {
		return fmt.Errorf("%w: %w", ErrSocket, err)
	}
	hint := pingGroupHint
	if privileged {
		hint = privilegeHint
	}
	return fmt.Errorf("%w: %s: %w", ErrSocket, hint, err)
}

// Send writes b to dst.
func (s *icmpSocket) Send(b []byte, dst netip.Addr) error {
	var addr net.Addr = &net.UDPAddr{IP: dst.AsSlice()}
	if s.privileged {
		addr = &net.IPAddr{IP: dst.AsSlice()}
	}

	if _, err := s.conn.WriteTo(b, addr); err != nil {
		return fmt.Errorf("failed to write to ICMP socket: %w", err)
	}
	return nil
}

// Await reads from the socket until the matching echo reply arrives.
// Other ICMP messages, including our own requests on loopback, are skipped.
func (s *icmpSocket) Await(ctx context.Context, id, seq uint16) error {
	log := logger.FromContext(ctx)
	deadline, ok := ctx.Deadline()
	if !ok || deadline.IsZero() {
		return errors.New("no deadline set for echo reply")
	}

	if err := s.conn.SetReadDeadline(deadline); err != nil {
		return fmt.Errorf("failed to set read deadline: %w", err)
	}
	// Unblock the pending read as soon as the context is cancelled.
	stop := context.AfterFunc(ctx, func() {
		_ = s.conn.SetReadDeadline(time.Now())
	})
	defer stop()

	buf := make([]byte, mtuSize)
	for {
		n, src, err := s.conn.ReadFrom(buf)
		if err != nil {
			switch {
			case errors.Is(ctx.Err(), context.Canceled):
				return ctx.Err()
			case isTimeout(err):
				return ErrReplyTimeout
			default:
				return fmt.Errorf("failed to read from ICMP socket: %w", err)
			}
		}

		if !matchReply(buf[:n], id, seq, s.privileged) {
			log.DebugContext(ctx, "Received unrelated ICMP message, ignoring", "from", src, "bytes", n)
			continue
		}
		return nil
	}
}

// Close closes the underlying connection.
func (s *icmpSocket) Close() error {
	return s.conn.Close()
}

// matchReply reports whether b is the echo reply for id and seq.
// The identifier is only compared if matchID is true.
func matchReply(b []byte, id, seq uint16, matchID bool) bool {
	msg, err := icmp.ParseMessage(protocolICMP, b)
	if err != nil || msg.Type != ipv4.ICMPTypeEchoReply {
		return false
	}

	echo, ok := msg.Body.(*icmp.Echo)
	if !ok {
		return false
	}
	if matchID && echo.ID != int(id) {
		return false
	}
	return echo.Seq == int(seq)
}

// isTimeout reports whether err is a network timeout.
func isTimeout(err error) bool {
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}
