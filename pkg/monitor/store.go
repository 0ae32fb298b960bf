// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package monitor

import (
	"sync"

	"github.com/telekom/echoprobe/pkg/checks"
)

// store keeps the latest result per check in memory.
type store struct {
	mu      sync.RWMutex
	results map[string]checks.Result
}

func newStore() *store {
	return &store{results: map[string]checks.Result{}}
}

// Save replaces the result of the check.
func (s *store) Save(res checks.ResultDTO) {
	if res.Result == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[res.Name] = *res.Result
}

// Get returns the latest result of the check.
func (s *store) Get(name string) (checks.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res, ok := s.results[name]
	return res, ok
}
