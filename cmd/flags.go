// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/spf13/pflag"
	"github.com/telekom/echoprobe/internal/echo"
)

// probeFlags maps the flags of a probe run to their config keys.
var probeFlags = map[string]string{
	"host":         "probe.host",
	"attempts":     "probe.attempts",
	"signal-speed": "probe.signalSpeed",
	"timeout":      "probe.timeout",
	"privileged":   "probe.privileged",
}

func addProbeFlags(fs *pflag.FlagSet) {
	fs.String("host", "", "host name or IPv4 address to probe")
	fs.IntP("attempts", "n", echo.DefaultAttempts, "number of echo requests to send")
	fs.Float64("signal-speed", echo.DefaultSignalSpeed, "signal propagation speed in meters per millisecond")
	fs.Duration("timeout", echo.DefaultTimeout, "time to wait for each echo reply")
	fs.Bool("privileged", true, "use a raw ICMP socket; set to false to use an unprivileged ICMP datagram socket")
}
