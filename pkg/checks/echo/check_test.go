// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package echo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telekom/echoprobe/internal/echo"
	"github.com/telekom/echoprobe/pkg/checks"
)

func TestCheck(t *testing.T) {
	cases := []struct {
		name    string
		res     echo.Result
		err     error
		want    result
		wantErr bool
	}{
		{
			name: "Success with one loss",
			res: echo.Result{
				Host:     "example.com",
				Addr:     "192.0.2.7",
				RTTs:     []echo.RTT{{Millis: 12, Valid: true}, {}, {Millis: 10, Valid: true}, {Millis: 11, Valid: true}},
				Distance: 990,
			},
			want: result{
				Result: echo.Result{
					Host:     "example.com",
					Addr:     "192.0.2.7",
					RTTs:     []echo.RTT{{Millis: 12, Valid: true}, {}, {Millis: 10, Valid: true}, {Millis: 11, Valid: true}},
					Distance: 990,
				},
				State:       "completed",
				LossPercent: 25,
			},
		},
		{
			name: "Resolution failure",
			err:  fmt.Errorf("failed to resolve host: %w", echo.ErrResolution),
			want: result{
				Result: echo.Result{Host: "example.com"},
				State:  "resolution failed",
				Error:  "failed to resolve host: host resolution failed",
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := newEcho(t, func(ctx context.Context, host string, opts *echo.Options) (echo.Result, error) {
				assert.Equal(t, "example.com", host)
				assert.Equal(t, 4, opts.Attempts)
				return c.res, c.err
			})

			res := e.check(t.Context())
			if !cmp.Equal(res, c.want) {
				diff := cmp.Diff(c.want, res)
				t.Errorf("unexpected result: -want +got\n%s", diff)
			}
		})
	}
}

func TestCheck_Run(t *testing.T) {
	e := newEcho(t, func(ctx context.Context, host string, opts *echo.Options) (echo.Result, error) {
		return echo.Result{Host: host, RTTs: []echo.RTT{{Millis: 1, Valid: true}}, Distance: 90}, nil
	})

	cResult := make(chan checks.ResultDTO, 1)
	done := make(chan error, 1)
	go func() { done <- e.Run(t.Context(), cResult) }()

	select {
	case dto := <-cResult:
		assert.Equal(t, CheckName, dto.Name)
		require.NotNil(t, dto.Result)
		data, ok := dto.Result.Data.(result)
		require.True(t, ok)
		assert.Equal(t, "completed", data.State)
		assert.False(t, dto.Result.Timestamp.IsZero())
	case <-time.After(5 * time.Second):
		t.Fatal("first probe run must start immediately")
	}

	e.Shutdown()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("check did not stop after shutdown")
	}
}

func TestCheck_RunCanceled(t *testing.T) {
	e := newEcho(t, func(ctx context.Context, host string, opts *echo.Options) (echo.Result, error) {
		return echo.Result{Host: host}, nil
	})

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	err := e.Run(ctx, make(chan checks.ResultDTO))
	assert.ErrorIs(t, err, context.Canceled)
}

type otherConfig struct{}

func (*otherConfig) For() string     { return "other" }
func (*otherConfig) Validate() error { return nil }

func TestCheck_UpdateConfig(t *testing.T) {
	e := newEcho(t, func(ctx context.Context, host string, opts *echo.Options) (echo.Result, error) {
		return echo.Result{Host: host, RTTs: []echo.RTT{{Millis: 1, Valid: true}}}, nil
	})
	e.check(t.Context())

	t.Run("mismatch", func(t *testing.T) {
		err := e.UpdateConfig(&otherConfig{})
		assert.Equal(t, checks.ErrConfigMismatch{Expected: CheckName, Current: "other"}, err)
	})

	t.Run("invalid", func(t *testing.T) {
		err := e.UpdateConfig(&Config{Host: "", Interval: time.Minute, Options: echo.DefaultOptions()})
		assert.ErrorAs(t, err, &checks.ErrInvalidConfig{})
		assert.Equal(t, "example.com", e.GetConfig().(*Config).Host)
	})

	t.Run("new host", func(t *testing.T) {
		cfg := &Config{Host: "example.org", Interval: time.Minute, Options: echo.DefaultOptions()}
		require.NoError(t, e.UpdateConfig(cfg))
		assert.Equal(t, cfg, e.GetConfig())
		assert.Error(t, e.RemoveLabelledMetrics("example.com"), "metrics of the old host must be gone")
	})
}

func TestCheck_Schema(t *testing.T) {
	e := newEcho(t, nil)
	schema, err := e.Schema()
	require.NoError(t, err)
	require.NotNil(t, schema.Value)
	assert.Contains(t, schema.Value.Properties, "data")
	assert.Len(t, e.GetMetricCollectors(), 5)
	assert.Equal(t, CheckName, e.Name())
}

func newEcho(t testing.TB, probe func(ctx context.Context, host string, opts *echo.Options) (echo.Result, error)) *Echo {
	t.Helper()
	c, ok := NewCheckWithClient(&echo.ClientMock{ProbeFunc: probe}).(*Echo)
	require.True(t, ok, "NewCheckWithClient should return an Echo check")
	c.config = Config{Host: "example.com", Interval: time.Minute, Options: echo.DefaultOptions()}
	return c
}
