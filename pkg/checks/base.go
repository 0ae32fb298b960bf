// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package checks

import (
	"context"
	"sync"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/prometheus/client_golang/prometheus"
)

// Check is a periodic probe managed by the monitor.
//
//go:generate go tool moq -out base_moq.go . Check
type Check interface {
	// Run probes until ctx is done or Shutdown is called and sends every
	// result to cResult. A returned error stops echoprobe.
	Run(ctx context.Context, cResult chan ResultDTO) error
	// Shutdown stops a running check. It must be called at most once.
	Shutdown()
	// UpdateConfig validates and applies config. It is called before Run.
	UpdateConfig(config Runtime) error
	// GetConfig returns a copy of the applied config.
	GetConfig() Runtime
	// Name is the unique name of the check.
	Name() string
	// Schema describes the Data of the results of the check.
	Schema() (*openapi3.SchemaRef, error)
	// GetMetricCollectors returns the collectors to register.
	GetMetricCollectors() []prometheus.Collector
	// RemoveLabelledMetrics deletes all series labelled with target.
	RemoveLabelledMetrics(target string) error
}

// CheckBase holds the synchronization shared by all checks.
type CheckBase struct {
	// Mu guards the config of the check.
	Mu sync.Mutex
	// DoneChan receives a value when the check is shut down.
	DoneChan chan struct{}
}

// NewCheckBase returns a CheckBase whose shutdown never blocks.
func NewCheckBase() CheckBase {
	return CheckBase{DoneChan: make(chan struct{}, 1)}
}

// Runtime is the config of a check.
type Runtime interface {
	// For is the name of the check the config belongs to.
	For() string
	Validate() error
}

// Result is a single result of a check.
type Result struct {
	// Data is the check specific payload described by [Check.Schema].
	Data any `json:"data" yaml:"data"`
	// Timestamp is the UTC time the result was produced at.
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// ResultDTO carries a result together with the name of its check.
type ResultDTO struct {
	Name   string
	Result *Result
}
