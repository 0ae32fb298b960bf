// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package config

import "errors"

var (
	// ErrInvalidName is returned when the instance name is invalid
	ErrInvalidName = errors.New("invalid instance name")
	// ErrInvalidProbe is returned when the probe options are invalid
	ErrInvalidProbe = errors.New("invalid probe configuration")
	// ErrInvalidOutput is returned when the output configuration is invalid
	ErrInvalidOutput = errors.New("invalid output configuration")
)
