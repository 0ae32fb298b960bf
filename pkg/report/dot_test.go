// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telekom/echoprobe/internal/echo"
)

func TestEdgeRTTs(t *testing.T) {
	tests := []struct {
		name string
		rtts []echo.RTT
		want []string
	}{
		{
			name: "all replies",
			rtts: []echo.RTT{{Millis: 1, Valid: true}, {Millis: 2, Valid: true}, {Millis: 3, Valid: true}, {Millis: 4.5, Valid: true}},
			want: []string{"1 ms", "2 ms", "3 ms", "4.5 ms", "14.5 ms"},
		},
		{
			name: "last shown slot missed",
			rtts: []echo.RTT{{Millis: 1, Valid: true}, {Millis: 2, Valid: true}, {Millis: 3, Valid: true}, {}},
			want: []string{"1 ms", "2 ms", "3 ms", "timeout", "timeout"},
		},
		{
			name: "fewer attempts than edges",
			rtts: []echo.RTT{{Millis: 7, Valid: true}},
			want: []string{"7 ms", "timeout", "timeout", "timeout", "timeout"},
		},
		{
			name: "more attempts than edges",
			rtts: []echo.RTT{{Millis: 1, Valid: true}, {}, {Millis: 3, Valid: true}, {Millis: 4, Valid: true}, {Millis: 99, Valid: true}},
			want: []string{"1 ms", "timeout", "3 ms", "4 ms", "14 ms"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, edgeRTTs(tt.rtts))
		})
	}
}

func TestWriteDOT(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDOT(&buf, testResult()))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "// Illustrative topology"), "the file must state that the topology is not measured")
	assert.Contains(t, out, "digraph G {")
	assert.Contains(t, out, `destination [label="example.com (Destination)\n(192.0.2.7)"`)
	assert.Contains(t, out, `source -> router1 [label="TTL=64, RTT=12 ms", color=blue`)
	assert.Contains(t, out, `router1 -> router2 [label="TTL=63, RTT=timeout, Packet Loss=0%", color=green`)
	assert.Contains(t, out, `cloud -> destination [label="TTL=60, RTT=20 ms, Packet Loss=0%", color=red`)
	assert.Contains(t, out, `cloud -> destination [label="Latency=35ms"`)
	assert.Contains(t, out, `Distance to Target: 900 meters\n(0.9 kilometers)\n(2952.756 feet)`)
	assert.True(t, strings.HasSuffix(out, "}\n"))
	assert.Equal(t, strings.Count(out, "{"), strings.Count(out, "}"))
}

func TestWriteDOT_EscapesHost(t *testing.T) {
	res := testResult()
	res.Host = `odd"name\`

	var buf bytes.Buffer
	require.NoError(t, WriteDOT(&buf, res))
	assert.Contains(t, buf.String(), `destination [label="odd\"name\\ (Destination)\n(192.0.2.7)"`)
}

func TestWriteDOTFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ping_flow.dot")
	require.NoError(t, WriteDOTFile(path, testResult()))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "digraph G {")

	assert.Error(t, WriteDOTFile(filepath.Join(t.TempDir(), "missing", "ping_flow.dot"), testResult()))
}
