// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package checks

import (
	"fmt"
)

// ErrConfigMismatch is returned when a check receives the config of another check.
type ErrConfigMismatch struct {
	Expected string
	Current  string
}

func (e ErrConfigMismatch) Error() string {
	return fmt.Sprintf("check %q cannot be configured with a %q config", e.Expected, e.Current)
}

// ErrInvalidConfig is returned when a field of a check config is invalid.
type ErrInvalidConfig struct {
	CheckName string
	Field     string
	Reason    string
}

func (e ErrInvalidConfig) Error() string {
	return fmt.Sprintf("%s: invalid %s: %s", e.CheckName, e.Field, e.Reason)
}

// ErrMetricNotFound is returned when no series carries the label.
type ErrMetricNotFound struct {
	Label string
}

func (e ErrMetricNotFound) Error() string {
	return fmt.Sprintf("no metrics labelled %q", e.Label)
}
