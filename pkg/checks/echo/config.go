// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package echo

import (
	"net"
	"strings"
	"time"

	"github.com/telekom/echoprobe/internal/echo"
	"github.com/telekom/echoprobe/pkg/checks"
)

// minInterval is the lower bound for the probing interval.
const minInterval = time.Second

// DefaultInterval is the probing interval used when none is configured.
const DefaultInterval = 30 * time.Second

// Config is the configuration for the echo check
type Config struct {
	// Host is the single host that is probed.
	Host string `json:"host" yaml:"host" mapstructure:"host"`
	// Interval is the interval at which to probe the host.
	Interval time.Duration `json:"interval" yaml:"interval" mapstructure:"interval"`
	// Options are the options of every probe run.
	echo.Options `json:",inline" yaml:",inline" mapstructure:",squash"`
}

func (c *Config) For() string {
	return CheckName
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Host) == "" {
		return checks.ErrInvalidConfig{CheckName: CheckName, Field: "probe.host", Reason: "must not be empty"}
	}
	if ip := net.ParseIP(c.Host); ip != nil && ip.To4() == nil {
		return checks.ErrInvalidConfig{CheckName: CheckName, Field: "probe.host", Reason: "only IPv4 addresses are supported"}
	}

	if c.Interval < minInterval {
		return checks.ErrInvalidConfig{CheckName: CheckName, Field: "probe.interval", Reason: "must be at least " + minInterval.String()}
	}

	if err := c.Options.Validate(); err != nil {
		return checks.ErrInvalidConfig{CheckName: CheckName, Field: "probe", Reason: err.Error()}
	}

	// A run must finish before the next one is due.
	if time.Duration(c.Attempts)*c.Timeout > c.Interval {
		return checks.ErrInvalidConfig{CheckName: CheckName, Field: "probe.timeout", Reason: "attempts times timeout must not exceed the interval"}
	}
	return nil
}
