// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
)

// logger is the context key of the logger
type logger struct{}

// NewLogger returns a logger writing with the first of the given handlers.
// Without handlers, the logger writes to stderr in the format and at the
// level selected by the LOG_FORMAT and LOG_LEVEL environment variables.
func NewLogger(h ...slog.Handler) *slog.Logger {
	if len(h) > 0 {
		return slog.New(h[0])
	}
	return slog.New(newHandler(os.Stderr, os.Getenv))
}

// NewContextWithLogger returns a cancelable child of parent carrying the logger of parent.
func NewContextWithLogger(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	return IntoContext(ctx, FromContext(parent)), cancel
}

// IntoContext returns a copy of ctx carrying log.
func IntoContext(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, logger{}, log)
}

// FromContext returns the logger carried by ctx.
// A new logger is returned if ctx is nil or carries none.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if log, ok := ctx.Value(logger{}).(*slog.Logger); ok {
			return log
		}
	}
	return NewLogger()
}

// Middleware injects the logger of ctx into every request context,
// annotated with the method and path of the request.
func Middleware(ctx context.Context) func(http.Handler) http.Handler {
	log := FromContext(ctx)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqLog := log.With("method", r.Method, "path", r.URL.Path)
			next.ServeHTTP(w, r.WithContext(IntoContext(r.Context(), reqLog)))
		})
	}
}

// newHandler returns a text handler if LOG_FORMAT is TEXT and a JSON handler otherwise.
func newHandler(w io.Writer, getenv func(string) string) slog.Handler {
	opts := &slog.HandlerOptions{
		AddSource: true,
		Level:     getLevel(getenv("LOG_LEVEL")),
	}

	if strings.EqualFold(getenv("LOG_FORMAT"), "TEXT") {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

// getLevel parses a level name like DEBUG or WARN+2.
// WARNING is accepted as WARN. Unknown names select INFO.
func getLevel(level string) slog.Level {
	if strings.EqualFold(level, "WARNING") {
		return slog.LevelWarn
	}

	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
