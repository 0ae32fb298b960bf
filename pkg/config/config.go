// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"time"

	"github.com/telekom/echoprobe/internal/echo"
	"github.com/telekom/echoprobe/pkg/api"
	checkecho "github.com/telekom/echoprobe/pkg/checks/echo"
	"github.com/telekom/echoprobe/pkg/metrics"
	"github.com/telekom/echoprobe/pkg/report"
)

// DefaultHost is probed when no host is given.
const DefaultHost = "google.com"

type Config struct {
	// Name identifies this echoprobe instance in the instance info metric.
	Name string `yaml:"name" mapstructure:"name"`
	// Probe is the configuration of the probe runs
	Probe checkecho.Config `yaml:"probe" mapstructure:"probe"`
	// Output is the configuration of the presentation of a single run
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	// Api is the configuration for the api server
	Api api.Config `yaml:"api" mapstructure:"api"`
	// Telemetry is the configuration for the telemetry
	Telemetry metrics.Config `yaml:"telemetry" mapstructure:"telemetry"`
}

// OutputConfig is the configuration of the presentation layer
type OutputConfig struct {
	// Format is the format the result is printed in
	Format report.Format `yaml:"format" mapstructure:"format"`
	// DotFile is the path of the illustrative graph file.
	// No file is written if it is empty.
	DotFile string `yaml:"dotFile" mapstructure:"dotFile"`
}

// Default returns the configuration used for all unset keys.
func Default() Config {
	return Config{
		Probe: checkecho.Config{
			Interval: checkecho.DefaultInterval,
			Options:  echo.DefaultOptions(),
		},
		Output: OutputConfig{Format: report.Text},
		Api:    api.Config{ListeningAddress: ":8080"},
		Telemetry: metrics.Config{
			Exporter: metrics.NOOP,
		},
	}
}

// HasTelemetry returns true if the config has telemetry enabled
func (c *Config) HasTelemetry() bool {
	return c.Telemetry.Enabled
}

// HasDotFile returns true if the illustrative graph should be written
func (c *Config) HasDotFile() bool {
	return c.Output.DotFile != ""
}

// RunDuration returns the longest time a single probe run may take.
func (c *Config) RunDuration() time.Duration {
	return time.Duration(c.Probe.Attempts) * c.Probe.Timeout
}
