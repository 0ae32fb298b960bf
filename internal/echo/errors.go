// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package echo

import (
	"context"
	"errors"
)

var (
	// ErrResolution is returned when the host does not resolve to an IPv4 address.
	// No attempt is made and no result is produced.
	ErrResolution = errors.New("host resolution failed")
	// ErrSocket is returned when the ICMP socket cannot be opened.
	// This typically occurs when the process lacks the NET_RAW capability.
	ErrSocket = errors.New("cannot open ICMP socket")
	// ErrSend is returned when the transport rejects an echo request.
	ErrSend = errors.New("failed to send echo request")
	// ErrReplyTimeout is returned by a socket when no matching echo reply
	// arrived in time. It is handled per attempt and never ends a run.
	ErrReplyTimeout = errors.New("echo reply timed out")
)

const (
	// privilegeHint is attached to [ErrSocket] when a raw socket was denied.
	privilegeHint = "raw sockets require elevated privilege (root or CAP_NET_RAW); " +
		"run with privileges or disable privileged mode to use an unprivileged ICMP socket"
	// pingGroupHint is attached to [ErrSocket] when a datagram socket was denied.
	pingGroupHint = "unprivileged ICMP sockets are not allowed for the group of this process; " +
		"add it to the net.ipv4.ping_group_range sysctl or enable privileged mode"
)

// IsFatal reports whether err ends a probe run.
func IsFatal(err error) bool {
	return err != nil && !errors.Is(err, ErrReplyTimeout)
}

// isAbort reports whether err stems from the caller's context being
// cancelled or reaching its deadline. Per-attempt timeouts are
// reported as [ErrReplyTimeout] and never match.
func isAbort(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// StateOf returns the terminal state a probe run ends in when
// [Client.Probe] returns err.
func StateOf(err error) State {
	switch {
	case err == nil:
		return StateCompleted
	case errors.Is(err, ErrResolution):
		return StateResolutionFailed
	case isAbort(err):
		return StateAborted
	default:
		return StateFailed
	}
}
