// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telekom/echoprobe/internal/echo"
	"github.com/telekom/echoprobe/pkg/config"
)

func probeResult(host string) echo.Result {
	return echo.Result{
		Host:     host,
		Addr:     "192.0.2.1",
		RTTs:     []echo.RTT{{Millis: 10, Valid: true}, {}},
		Distance: echo.EstimateDistance(echo.RTT{Millis: 10, Valid: true}, echo.DefaultSignalSpeed),
	}
}

// execProbe runs the probe command with the given args and stdin.
func execProbe(t *testing.T, client echo.Client, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	var out, errOut bytes.Buffer
	cmd := newCmdProbe(client)
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err = cmd.ExecuteContext(t.Context())
	return out.String(), errOut.String(), err
}

func TestProbe(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		stdin    string
		wantHost string
		wantOpts echo.Options
		wantOut  string
	}{
		{
			name:     "host argument",
			args:     []string{"example.com"},
			wantHost: "example.com",
			wantOpts: echo.DefaultOptions(),
			wantOut:  "Ping statistics for example.com",
		},
		{
			name:     "host flag and options",
			args:     []string{"--host", "example.org", "-n", "2", "--signal-speed", "200", "--timeout", "500ms", "--privileged=false"},
			wantHost: "example.org",
			wantOpts: echo.Options{Attempts: 2, SignalSpeed: 200, Timeout: 500 * time.Millisecond, Privileged: false},
			wantOut:  "Ping statistics for example.org",
		},
		{
			name:     "prompted host",
			stdin:    "example.net\n",
			wantHost: "example.net",
			wantOpts: echo.DefaultOptions(),
			wantOut:  "Ping statistics for example.net",
		},
		{
			name:     "empty prompt selects the default host",
			stdin:    "\n",
			wantHost: config.DefaultHost,
			wantOpts: echo.DefaultOptions(),
			wantOut:  "Ping statistics for " + config.DefaultHost,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &echo.ClientMock{
				ProbeFunc: func(ctx context.Context, host string, opts *echo.Options) (echo.Result, error) {
					return probeResult(host), nil
				},
			}

			out, _, err := execProbe(t, client, tt.stdin, tt.args...)
			require.NoError(t, err)
			require.Len(t, client.ProbeCalls(), 1)
			call := client.ProbeCalls()[0]
			assert.Equal(t, tt.wantHost, call.Host)
			assert.Equal(t, tt.wantOpts, *call.Opts)
			assert.Contains(t, out, tt.wantOut)
		})
	}
}

func TestProbe_Prompt(t *testing.T) {
	client := &echo.ClientMock{
		ProbeFunc: func(ctx context.Context, host string, opts *echo.Options) (echo.Result, error) {
			return probeResult(host), nil
		},
	}

	_, stderr, err := execProbe(t, client, "")
	require.NoError(t, err)
	assert.Equal(t, hostPrompt, stderr)
	assert.Equal(t, config.DefaultHost, client.ProbeCalls()[0].Host)
}

func TestProbe_JSONAndDotFile(t *testing.T) {
	client := &echo.ClientMock{
		ProbeFunc: func(ctx context.Context, host string, opts *echo.Options) (echo.Result, error) {
			return probeResult(host), nil
		},
	}
	dot := filepath.Join(t.TempDir(), "network.dot")

	out, _, err := execProbe(t, client, "", "example.com", "-o", "json", "--dot-file", dot)
	require.NoError(t, err)

	var got struct {
		Host     string `json:"host"`
		Received int    `json:"received"`
		Distance struct {
			Meters float64 `json:"meters"`
		} `json:"distance"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "example.com", got.Host)
	assert.Equal(t, 1, got.Received)
	assert.InDelta(t, 900.0, got.Distance.Meters, 1e-9)

	b, err := os.ReadFile(dot)
	require.NoError(t, err)
	assert.Contains(t, string(b), "digraph")
}

func TestProbe_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		probeErr error
		wantErr  error
	}{
		{
			name:     "resolution failure",
			args:     []string{"this-host-does-not-exist.invalid"},
			probeErr: echo.ErrResolution,
			wantErr:  echo.ErrResolution,
		},
		{
			name:     "socket denied",
			args:     []string{"example.com"},
			probeErr: echo.ErrSocket,
			wantErr:  echo.ErrSocket,
		},
		{
			name:    "invalid attempts",
			args:    []string{"example.com", "-n", "0"},
			wantErr: config.ErrInvalidProbe,
		},
		{
			name:    "invalid output format",
			args:    []string{"example.com", "-o", "xml"},
			wantErr: config.ErrInvalidOutput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &echo.ClientMock{
				ProbeFunc: func(ctx context.Context, host string, opts *echo.Options) (echo.Result, error) {
					return echo.Result{}, tt.probeErr
				},
			}

			out, _, err := execProbe(t, client, "", tt.args...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
			assert.Empty(t, out, "no result must be printed")
		})
	}
}

func TestPromptHost(t *testing.T) {
	var out bytes.Buffer
	host, err := promptHost(strings.NewReader("  192.0.2.7  \nignored\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, "192.0.2.7", host)
	assert.Equal(t, hostPrompt, out.String())
}
