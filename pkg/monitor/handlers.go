// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package monitor

import (
	"encoding/json"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/telekom/echoprobe/internal/logger"
	"gopkg.in/yaml.v3"
)

// handleResult writes the latest result of the check as JSON.
func (m *Monitor) handleResult(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	res, ok := m.store.Get(m.check.Name())
	if !ok {
		http.Error(w, "no result yet", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		log.ErrorContext(r.Context(), "Failed to encode result", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// handleOpenAPI serves the OpenAPI document as JSON,
// or as YAML if the format query parameter is yaml.
func handleOpenAPI(doc *openapi3.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var (
			b   []byte
			err error
		)
		if r.URL.Query().Get("format") == "yaml" {
			w.Header().Set("Content-Type", "application/yaml")
			b, err = yaml.Marshal(doc)
		} else {
			w.Header().Set("Content-Type", "application/json")
			b, err = json.Marshal(doc)
		}
		if err != nil {
			log.ErrorContext(r.Context(), "Failed to marshal openapi document", "error", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
		if _, err = w.Write(b); err != nil {
			log.ErrorContext(r.Context(), "Failed to write response", "error", err)
		}
	}
}

// handleMetrics serves the collectors of the registry.
func handleMetrics(registry *prometheus.Registry) http.HandlerFunc {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}).ServeHTTP
}
