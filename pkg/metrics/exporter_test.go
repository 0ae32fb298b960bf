// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExporter_Validate(t *testing.T) {
	tests := []struct {
		exporter  Exporter
		wantErr   bool
		exporting bool
	}{
		{exporter: HTTP, exporting: true},
		{exporter: GRPC, exporting: true},
		{exporter: STDOUT},
		{exporter: NOOP},
		{exporter: ""},
		{exporter: "kafka", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.exporter.String(), func(t *testing.T) {
			if err := tt.exporter.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Exporter.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			assert.Equal(t, tt.exporting, tt.exporter.IsExporting())
		})
	}
}

func TestExporter_Create(t *testing.T) {
	tests := []struct {
		name     string
		exporter Exporter
		config   Config
		wantErr  bool
	}{
		{name: "noop", exporter: NOOP},
		{name: "empty", exporter: ""},
		{name: "stdout", exporter: STDOUT},
		{name: "http", exporter: HTTP, config: Config{Url: "http://localhost:4318"}},
		{name: "grpc", exporter: GRPC, config: Config{Url: "http://localhost:4317", Token: "token"}},
		{
			name:     "grpc with system tls",
			exporter: GRPC,
			config:   Config{Url: "https://localhost:4317", TLS: TLSConfig{Enabled: true}},
		},
		{
			name:     "http with missing certificate",
			exporter: HTTP,
			config:   Config{Url: "https://localhost:4318", TLS: TLSConfig{Enabled: true, CertPath: "/does/not/exist.pem"}},
			wantErr:  true,
		},
		{name: "unsupported", exporter: "kafka", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp, err := tt.exporter.Create(t.Context(), &tt.config)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, exp)
			assert.NoError(t, exp.Shutdown(t.Context()))
		})
	}
}

func TestNewTLSConfig(t *testing.T) {
	t.Run("invalid pem", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cert.pem")
		require.NoError(t, os.WriteFile(path, []byte("not a certificate"), 0o600))

		_, err := newTLSConfig(path)
		assert.Error(t, err)
	})

	t.Run("no certificate", func(t *testing.T) {
		cfg, err := newTLSConfig("")
		require.NoError(t, err)
		assert.NotNil(t, cfg.RootCAs)
	})
}

func TestAuthHeaders(t *testing.T) {
	assert.Nil(t, authHeaders(""))
	assert.Equal(t, map[string]string{"Authorization": "Bearer secret"}, authHeaders("secret"))
}
