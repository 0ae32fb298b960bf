// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestNewLogger(t *testing.T) {
	t.Run("custom handler", func(t *testing.T) {
		var buf bytes.Buffer
		h := slog.NewJSONHandler(&buf, nil)

		log := NewLogger(h)
		assert.Same(t, h, log.Handler())
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv("LOG_FORMAT", "TEXT")
		t.Setenv("LOG_LEVEL", "ERROR")

		log := NewLogger()
		assert.IsType(t, &slog.TextHandler{}, log.Handler())
		assert.False(t, log.Enabled(t.Context(), slog.LevelWarn))
		assert.True(t, log.Enabled(t.Context(), slog.LevelError))
	})
}

func TestNewHandler(t *testing.T) {
	tests := []struct {
		name      string
		vars      map[string]string
		wantText  bool
		wantLevel slog.Level
	}{
		{name: "defaults", wantLevel: slog.LevelInfo},
		{name: "text debug", vars: map[string]string{"LOG_FORMAT": "text", "LOG_LEVEL": "debug"}, wantText: true, wantLevel: slog.LevelDebug},
		{name: "json warn", vars: map[string]string{"LOG_FORMAT": "JSON", "LOG_LEVEL": "WARN"}, wantLevel: slog.LevelWarn},
		{name: "unknown format", vars: map[string]string{"LOG_FORMAT": "xml"}, wantLevel: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandler(&bytes.Buffer{}, env(tt.vars))

			if tt.wantText {
				assert.IsType(t, &slog.TextHandler{}, h)
			} else {
				assert.IsType(t, &slog.JSONHandler{}, h)
			}
			assert.True(t, h.Enabled(t.Context(), tt.wantLevel))
			assert.False(t, h.Enabled(t.Context(), tt.wantLevel-1))
		})
	}
}

func TestGetLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":        slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"ERROR":   slog.LevelError,
		"WARN+2":  slog.LevelWarn + 2,
		"UNKNOWN": slog.LevelInfo,
	}

	for input, want := range tests {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, want, getLevel(input))
		})
	}
}

func TestFromContext(t *testing.T) {
	log := NewLogger(slog.NewTextHandler(&bytes.Buffer{}, nil))

	assert.Same(t, log, FromContext(IntoContext(t.Context(), log)))
	assert.NotNil(t, FromContext(t.Context()))
	assert.NotNil(t, FromContext(nil)) //nolint:staticcheck // nil contexts are tolerated
}

func TestNewContextWithLogger(t *testing.T) {
	log := NewLogger(slog.NewTextHandler(&bytes.Buffer{}, nil))
	parent := IntoContext(t.Context(), log)

	ctx, cancel := NewContextWithLogger(parent)
	assert.Same(t, log, FromContext(ctx))

	cancel()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.NoError(t, parent.Err(), "the parent must not be canceled")
}

func TestMiddleware(t *testing.T) {
	var buf bytes.Buffer
	ctx := IntoContext(t.Context(), NewLogger(slog.NewJSONHandler(&buf, nil)))

	handler := Middleware(ctx)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		FromContext(r.Context()).InfoContext(r.Context(), "served")
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/result", http.NoBody))

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &record))
	assert.Equal(t, "served", record["msg"])
	assert.Equal(t, http.MethodGet, record["method"])
	assert.Equal(t, "/v1/result", record["path"])
}
