// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterInstanceInfo(t *testing.T) {
	tests := []struct {
		name       string
		metadata   map[string]string
		wantLabels map[string]string
	}{
		{
			name:     "with metadata",
			metadata: map[string]string{"version": "v1.2.3", "target": "example.com"},
			wantLabels: map[string]string{
				"instance_name": "probe-1",
				"version":       "v1.2.3",
				"target":        "example.com",
			},
		},
		{
			name:       "without metadata",
			metadata:   nil,
			wantLabels: map[string]string{"instance_name": "probe-1"},
		},
		{
			name:       "empty values",
			metadata:   map[string]string{"version": ""},
			wantLabels: map[string]string{"instance_name": "probe-1", "version": ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := prometheus.NewRegistry()
			require.NoError(t, RegisterInstanceInfo(registry, "probe-1", tt.metadata))

			families, err := registry.Gather()
			require.NoError(t, err)

			var found bool
			for _, mf := range families {
				if mf.GetName() != instanceInfoMetricName {
					continue
				}
				found = true
				require.Len(t, mf.GetMetric(), 1)
				m := mf.GetMetric()[0]
				assert.InDelta(t, 1.0, m.GetGauge().GetValue(), 1e-9)

				labels := map[string]string{}
				for _, lp := range m.GetLabel() {
					labels[lp.GetName()] = lp.GetValue()
				}
				for k, v := range tt.wantLabels {
					assert.Equal(t, v, labels[k], "label %q", k)
				}
			}
			assert.True(t, found, "%s not found in registry", instanceInfoMetricName)
		})
	}
}

func TestRegisterInstanceInfo_Twice(t *testing.T) {
	registry := prometheus.NewRegistry()
	require.NoError(t, RegisterInstanceInfo(registry, "probe-1", map[string]string{"version": "v1"}))
	assert.Error(t, RegisterInstanceInfo(registry, "probe-2", map[string]string{"version": "v2"}))
}
