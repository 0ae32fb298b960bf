// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package echo

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "no error", err: nil, want: false},
		{name: "reply timeout", err: ErrReplyTimeout, want: false},
		{name: "wrapped reply timeout", err: fmt.Errorf("attempt 2: %w", ErrReplyTimeout), want: false},
		{name: "resolution", err: fmt.Errorf("%w: no such host", ErrResolution), want: true},
		{name: "socket", err: fmt.Errorf("%w: %s", ErrSocket, privilegeHint), want: true},
		{name: "send", err: ErrSend, want: true},
		{name: "aborted", err: context.Canceled, want: true},
		{name: "unknown", err: errors.New("boom"), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFatal(tt.err); got != tt.want {
				t.Errorf("IsFatal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsAbort(t *testing.T) {
	if !isAbort(fmt.Errorf("probe run aborted: %w", context.Canceled)) {
		t.Error("isAbort() = false for a wrapped context.Canceled")
	}
	if !isAbort(fmt.Errorf("probe run aborted: %w", context.DeadlineExceeded)) {
		t.Error("isAbort() = false for an expired caller deadline")
	}
	if isAbort(ErrReplyTimeout) {
		t.Error("isAbort() = true for a missed reply")
	}
}

func TestStateOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want State
	}{
		{name: "success", err: nil, want: StateCompleted},
		{name: "resolution", err: fmt.Errorf("failed to resolve host: %w", ErrResolution), want: StateResolutionFailed},
		{name: "aborted", err: fmt.Errorf("probe run aborted: %w", context.Canceled), want: StateAborted},
		{name: "deadline exceeded", err: fmt.Errorf("probe run aborted: %w", context.DeadlineExceeded), want: StateAborted},
		{name: "socket", err: fmt.Errorf("failed to open socket: %w", ErrSocket), want: StateFailed},
		{name: "send", err: ErrSend, want: StateFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StateOf(tt.err); got != tt.want {
				t.Errorf("StateOf() = %v, want %v", got, tt.want)
			}
		})
	}
}
