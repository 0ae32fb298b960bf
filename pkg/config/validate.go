// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/telekom/echoprobe/internal/logger"
)

// Validate validates the config of a single probe run.
// The host may be empty, it is asked for interactively.
func (c *Config) Validate(ctx context.Context) (err error) {
	log := logger.FromContext(ctx)
	if vErr := c.Probe.Options.Validate(); vErr != nil {
		log.ErrorContext(ctx, "The probe configuration is invalid", "error", vErr)
		err = errors.Join(err, fmt.Errorf("%w: %w", ErrInvalidProbe, vErr))
	}

	if vErr := c.Output.Format.Validate(); vErr != nil {
		log.ErrorContext(ctx, "The output configuration is invalid", "error", vErr)
		err = errors.Join(err, fmt.Errorf("%w: %w", ErrInvalidOutput, vErr))
	}

	if err != nil {
		return fmt.Errorf("validation of configuration failed: %w", err)
	}
	return nil
}

// ValidateServe validates the config of the serve command.
func (c *Config) ValidateServe(ctx context.Context) (err error) {
	log := logger.FromContext(ctx)
	if c.Name != "" && !isDNSName(c.Name) {
		log.ErrorContext(ctx, "The name of the instance must be DNS compliant", "name", c.Name)
		err = errors.Join(err, ErrInvalidName)
	}

	if vErr := c.Probe.Validate(); vErr != nil {
		log.ErrorContext(ctx, "The probe configuration is invalid", "error", vErr)
		err = errors.Join(err, fmt.Errorf("%w: %w", ErrInvalidProbe, vErr))
	}

	if c.HasTelemetry() {
		if vErr := c.Telemetry.Validate(ctx); vErr != nil {
			log.ErrorContext(ctx, "The telemetry configuration is invalid")
			err = errors.Join(err, vErr)
		}
	}

	if vErr := c.Api.Validate(); vErr != nil {
		log.ErrorContext(ctx, "The api configuration is invalid")
		err = errors.Join(err, vErr)
	}

	if err != nil {
		return fmt.Errorf("validation of configuration failed: %w", err)
	}
	return nil
}

var dnsName = regexp.MustCompile(`^([a-z0-9]([a-z0-9\-]{0,61}[a-z0-9])?\.)*[a-z0-9]([a-z0-9\-]{0,61}[a-z0-9])?$`)

// isDNSName checks if the given string is a valid DNS name
func isDNSName(s string) bool {
	return dnsName.MatchString(s)
}
