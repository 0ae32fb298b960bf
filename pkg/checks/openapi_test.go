// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type perfData struct {
	Host   string    `json:"host"`
	Millis []float64 `json:"millis"`
}

func TestOpenapiFromPerfData(t *testing.T) {
	schema, err := OpenapiFromPerfData(perfData{})
	require.NoError(t, err)
	require.NotNil(t, schema.Value)

	assert.Contains(t, schema.Value.Properties, "timestamp")
	data, ok := schema.Value.Properties["data"]
	require.True(t, ok, "data property must be present")
	require.NotNil(t, data.Value)
	assert.Contains(t, data.Value.Properties, "host")
	assert.Contains(t, data.Value.Properties, "millis")
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "config mismatch",
			err:  ErrConfigMismatch{Expected: "echo", Current: "dns"},
			want: `check "echo" cannot be configured with a "dns" config`,
		},
		{
			name: "invalid config",
			err:  ErrInvalidConfig{CheckName: "echo", Field: "echo.interval", Reason: "must be greater than 0"},
			want: "echo: invalid echo.interval: must be greater than 0",
		},
		{
			name: "metric not found",
			err:  ErrMetricNotFound{Label: "example.com"},
			want: `no metrics labelled "example.com"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, tt.err, tt.want)
		})
	}
}
