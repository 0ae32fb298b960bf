// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package echo

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"net"
	"net/netip"

	"github.com/telekom/echoprobe/internal/logger"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// newIdentifier returns a random echo identifier for a probe run.
func newIdentifier() uint16 {
	return uint16(rand.N(math.MaxUint16 + 1)) // #nosec G404,G115 // math.rand is fine here, the identifier only pairs replies
}

// firstIPv4 returns the first IPv4 address of ips.
func firstIPv4(ips []net.IP) (netip.Addr, bool) {
	for _, ip := range ips {
		addr, ok := netip.AddrFromSlice(ip)
		if !ok {
			continue
		}
		if addr = addr.Unmap(); addr.Is4() {
			return addr, true
		}
	}
	return netip.Addr{}, false
}

// wrapError wraps an error with a message and logs it.
// It also records the error in the current OpenTelemetry span.
// The args are passed to the logger as key-value pairs.
func wrapError(ctx context.Context, err error, msg string, args ...any) error {
	if err == nil {
		return nil
	}
	log := logger.FromContext(ctx)
	span := trace.SpanFromContext(ctx)
	caser := cases.Title(language.English)

	log.ErrorContext(ctx, caser.String(msg), append([]any{"error", err}, args...)...)
	span.SetStatus(codes.Error, msg)
	span.RecordError(err)
	return fmt.Errorf("%s: %w", msg, err)
}
