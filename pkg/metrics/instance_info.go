// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"maps"
	"slices"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	instanceInfoMetricName = "echoprobe_instance_info"
	instanceInfoHelp       = "Metadata of this echoprobe instance. Emitted once per instance."
)

// RegisterInstanceInfo registers the echoprobe_instance_info info-style metric on the given registry.
// It sets the gauge to 1 with the label instance_name and one label per metadata key.
func RegisterInstanceInfo(registry *prometheus.Registry, instanceName string, metadata map[string]string) error {
	keys := slices.Sorted(maps.Keys(metadata))
	labels := append([]string{"instance_name"}, keys...)

	values := make([]string, 0, len(labels))
	values = append(values, instanceName)
	for _, k := range keys {
		values = append(values, metadata[k])
	}

	info := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: instanceInfoMetricName,
			Help: instanceInfoHelp,
		},
		labels,
	)
	info.WithLabelValues(values...).Set(1)
	return registry.Register(info)
}
