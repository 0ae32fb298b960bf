// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"context"
	"errors"
	"fmt"

	"github.com/telekom/echoprobe/internal/logger"
)

// Config configures the export of the probe traces.
type Config struct {
	// Enabled turns the export on. Spans are dropped if it is false.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// Exporter selects where spans are sent to.
	Exporter Exporter `yaml:"exporter" mapstructure:"exporter"`
	// Url is the collector endpoint of the otlp exporters.
	Url string `yaml:"url" mapstructure:"url"`
	// Token is sent as bearer token to the collector.
	Token string `yaml:"token" mapstructure:"token"`
	// SampleRatio is the share of probe runs that are traced.
	// 0 traces every run.
	SampleRatio float64 `yaml:"sampleRatio" mapstructure:"sampleRatio"`
	// TLS configures the connection to the collector.
	TLS TLSConfig `yaml:"tls" mapstructure:"tls"`
}

type TLSConfig struct {
	// Enabled uses TLS for the connection to the collector.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// CertPath is an optional CA bundle for collectors with private certificates.
	CertPath string `yaml:"certPath" mapstructure:"certPath"`
}

// Validate checks the config if the export is enabled.
func (c *Config) Validate(ctx context.Context) (err error) {
	if !c.Enabled {
		return nil
	}

	if vErr := c.Exporter.Validate(); vErr != nil {
		err = errors.Join(err, vErr)
	}
	if c.Exporter.IsExporting() && c.Url == "" {
		err = errors.Join(err, fmt.Errorf("exporter %q requires a collector url", c.Exporter))
	}
	if c.SampleRatio < 0 || c.SampleRatio > 1 {
		err = errors.Join(err, fmt.Errorf("sample ratio must be between 0 and 1, got %v", c.SampleRatio))
	}

	if err != nil {
		logger.FromContext(ctx).ErrorContext(ctx, "Invalid telemetry configuration", "error", err)
	}
	return err
}
