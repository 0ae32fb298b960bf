// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package echo

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telekom/echoprobe/internal/echo"
	"github.com/telekom/echoprobe/pkg/checks"
)

func TestMetrics_Set(t *testing.T) {
	tests := []struct {
		name         string
		res          echo.Result
		err          error
		wantStatus   float64
		wantReplies  float64
		wantTimeouts float64
		wantLastRTT  float64
		wantDistance float64
	}{
		{
			name: "all replies",
			res: echo.Result{
				RTTs:     []echo.RTT{{Millis: 4, Valid: true}, {Millis: 10, Valid: true}},
				Distance: 900,
			},
			wantStatus:   1,
			wantReplies:  2,
			wantLastRTT:  10,
			wantDistance: 900,
		},
		{
			name: "partial loss",
			res: echo.Result{
				RTTs:     []echo.RTT{{Millis: 8, Valid: true}, {}, {}},
				Distance: 720,
			},
			wantStatus:   1,
			wantReplies:  1,
			wantTimeouts: 2,
			wantLastRTT:  8,
			wantDistance: 720,
		},
		{
			name:         "all timeouts",
			res:          echo.Result{RTTs: []echo.RTT{{}, {}}},
			wantStatus:   0,
			wantTimeouts: 2,
		},
		{
			name:       "failed run",
			err:        echo.ErrSocket,
			wantStatus: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMetrics()
			m.Set("example.com", tt.res, tt.err)

			assert.InDelta(t, tt.wantStatus, testutil.ToFloat64(m.status.WithLabelValues("example.com")), 1e-9)
			assert.InDelta(t, tt.wantReplies, testutil.ToFloat64(m.attempts.WithLabelValues("example.com", outcomeReply)), 1e-9)
			assert.InDelta(t, tt.wantTimeouts, testutil.ToFloat64(m.attempts.WithLabelValues("example.com", outcomeTimeout)), 1e-9)
			assert.InDelta(t, tt.wantLastRTT, testutil.ToFloat64(m.lastRTT.WithLabelValues("example.com")), 1e-9)
			assert.InDelta(t, tt.wantDistance, testutil.ToFloat64(m.distance.WithLabelValues("example.com")), 1e-9)
		})
	}
}

func TestMetrics_List(t *testing.T) {
	m := newMetrics()
	registry := prometheus.NewRegistry()
	for _, c := range m.List() {
		require.NoError(t, registry.Register(c))
	}
	assert.Len(t, m.List(), 5)
}

func TestMetrics_Remove(t *testing.T) {
	m := newMetrics()
	m.Set("example.com", echo.Result{RTTs: []echo.RTT{{Millis: 1, Valid: true}, {}}}, nil)
	m.Set("example.org", echo.Result{RTTs: []echo.RTT{{Millis: 2, Valid: true}}}, nil)

	require.NoError(t, m.Remove("example.com"))
	assert.Equal(t, 1, testutil.CollectAndCount(m.status))
	assert.Equal(t, 1, testutil.CollectAndCount(m.attempts))
	assert.Equal(t, 1, testutil.CollectAndCount(m.histogram))

	err := m.Remove("example.com")
	var nf checks.ErrMetricNotFound
	assert.True(t, errors.As(err, &nf))
}
