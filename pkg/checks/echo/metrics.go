// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package echo

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/telekom/echoprobe/internal/echo"
	"github.com/telekom/echoprobe/pkg/checks"
)

// Outcomes of a single attempt as used in the attempts metric.
const (
	outcomeReply   = "reply"
	outcomeTimeout = "timeout"
)

// metrics defines the metric collectors of the echo check
type metrics struct {
	status    *prometheus.GaugeVec
	lastRTT   *prometheus.GaugeVec
	distance  *prometheus.GaugeVec
	attempts  *prometheus.CounterVec
	histogram *prometheus.HistogramVec
}

// newMetrics initializes metric collectors of the echo check
func newMetrics() metrics {
	return metrics{
		status: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "echoprobe_probe_status",
				Help: "Specifies if the last probe run got at least one echo reply.",
			},
			[]string{"target"},
		),
		lastRTT: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "echoprobe_last_rtt_milliseconds",
				Help: "Round-trip time of the last echo reply of a probe run in milliseconds.",
			},
			[]string{"target"},
		),
		distance: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "echoprobe_distance_meters",
				Help: "Estimated one-way distance to the target in meters.",
			},
			[]string{"target"},
		),
		attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "echoprobe_attempts_total",
				Help: "Total number of echo requests sent to the target by outcome.",
			},
			[]string{"target", "outcome"},
		),
		histogram: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "echoprobe_rtt_milliseconds",
				Help:    "Histogram of echo round-trip times in milliseconds.",
				Buckets: []float64{1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
			},
			[]string{"target"},
		),
	}
}

// List returns all metric collectors
func (m *metrics) List() []prometheus.Collector {
	return []prometheus.Collector{
		m.status,
		m.lastRTT,
		m.distance,
		m.attempts,
		m.histogram,
	}
}

// Set records the outcome of one probe run.
// A failed run only resets the status of the target.
func (m *metrics) Set(target string, res echo.Result, err error) {
	if err != nil {
		m.status.WithLabelValues(target).Set(0)
		return
	}

	for _, rtt := range res.RTTs {
		if !rtt.Valid {
			m.attempts.WithLabelValues(target, outcomeTimeout).Inc()
			continue
		}
		m.attempts.WithLabelValues(target, outcomeReply).Inc()
		m.histogram.WithLabelValues(target).Observe(rtt.Millis)
	}

	last, ok := res.LastReply()
	if !ok {
		m.status.WithLabelValues(target).Set(0)
		return
	}
	m.status.WithLabelValues(target).Set(1)
	m.lastRTT.WithLabelValues(target).Set(last.Millis)
	m.distance.WithLabelValues(target).Set(res.Distance.Meters())
}

// Remove removes the metrics of one target
func (m *metrics) Remove(target string) error {
	if !m.status.DeleteLabelValues(target) {
		return checks.ErrMetricNotFound{Label: target}
	}

	m.lastRTT.DeleteLabelValues(target)
	m.distance.DeleteLabelValues(target)
	m.histogram.DeleteLabelValues(target)
	m.attempts.DeletePartialMatch(prometheus.Labels{"target": target})
	return nil
}
