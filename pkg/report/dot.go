// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/telekom/echoprobe/internal/echo"
)

// dotHops is the number of RTT slots shown on the illustrative edges.
const dotHops = 4

// syntheticDelay is added to the last shown RTT for the final edge.
const syntheticDelay = 10.0

// hop is a node of the illustrative topology.
type hop struct {
	id, label, addr, shape, style, color string
	fontSize                             int
}

// topology is fixed. None of its routers or addresses are measured.
var topology = []hop{
	{id: "source", label: "Your Machine (Source)", addr: "192.168.1.10", shape: "box", style: "filled", color: "lightblue", fontSize: 12},
	{id: "router1", label: "Router 1 (ISP Gateway)", addr: "192.168.1.1", shape: "ellipse", style: "filled", color: "lightgray", fontSize: 10},
	{id: "router2", label: "Router 2 (Regional Router)", addr: "10.0.0.1", shape: "ellipse", style: "filled", color: "lightgray", fontSize: 10},
	{id: "router3", label: "Router 3 (ISP Backbone)", addr: "172.16.0.1", shape: "ellipse", style: "filled", color: "lightgray", fontSize: 10},
	{id: "cloud", label: "Cloud (Datacenter)", addr: "Cloud Provider IP", shape: "rect", style: "dashed", color: "lightgreen", fontSize: 10},
}

var (
	edgeColors    = []string{"blue", "green", "yellow", "orange", "red"}
	edgeLatencies = []int{20, 25, 30, 35}
)

// dotEscaper quotes text for use in a double-quoted DOT string.
var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// WriteDOT writes a Graphviz description of an illustrative route to the
// probed host. Only the RTT slots and the distance come from res.
func WriteDOT(w io.Writer, res echo.Result) error {
	tw := &textWriter{w: w}
	tw.println("// Illustrative topology: routers, addresses, TTLs, latencies and packet loss are not measured.")
	tw.println("// Only the edge RTTs and the distance are taken from the probe run.")
	tw.println("digraph G {")
	tw.println("    // Nodes")
	for _, h := range topology {
		tw.printf("    %s [label=\"%s\", shape=%s, style=%s, color=%s, fontsize=%d];\n",
			h.id, h.label+`\n(`+h.addr+")", h.shape, h.style, h.color, h.fontSize)
	}
	tw.printf("    destination [label=\"%s\", shape=box, style=filled, color=lightyellow, fontsize=12];\n",
		dotEscaper.Replace(res.Host)+` (Destination)\n(`+dotEscaper.Replace(res.Addr)+")")
	tw.println("")

	tw.println("    // Edges")
	labels := edgeRTTs(res.RTTs)
	nodes := append(nodeIDs(), "destination")
	for i := range len(nodes) - 1 {
		label := fmt.Sprintf("TTL=%d, RTT=%s", 64-i, labels[i])
		if i > 0 {
			label += ", Packet Loss=0%"
		}
		tw.printf("    %s -> %s [label=\"%s\", color=%s, penwidth=2, fontsize=10];\n",
			nodes[i], nodes[i+1], label, edgeColors[i])
	}
	tw.println("")

	tw.println("    // Latency per path")
	for i, latency := range edgeLatencies {
		tw.printf("    %s -> %s [label=\"Latency=%dms\", color=%s, style=dotted, fontsize=8];\n",
			nodes[i+1], nodes[i+2], latency, edgeColors[i])
	}
	tw.println("")

	d := res.Distance
	tw.println("    // Distance estimate")
	tw.printf("    distance [label=\"%s\", shape=plaintext, color=black, fontsize=10];\n",
		fmt.Sprintf(`Distance to Target: %s meters\n(%s kilometers)\n(%s feet)`,
			formatFloat(d.Meters()), formatFloat(d.Kilometers()), formatFloat(d.Feet())))
	tw.println("    source -> distance [style=dashed];")
	tw.println("}")
	return tw.err
}

// WriteDOTFile writes the illustrative route to the file at path.
func WriteDOTFile(path string, res echo.Result) (err error) {
	f, err := os.Create(path) // #nosec G304 // path is given by the user
	if err != nil {
		return fmt.Errorf("failed to create dot file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close dot file: %w", cerr)
		}
	}()
	return WriteDOT(f, res)
}

// edgeRTTs returns the labels of the five edges: the first four RTT
// slots and the last of them plus a synthetic delay.
func edgeRTTs(rtts []echo.RTT) []string {
	labels := make([]string, 0, dotHops+1)
	var last echo.RTT
	for i := range dotHops {
		last = echo.RTT{}
		if i < len(rtts) {
			last = rtts[i]
		}
		labels = append(labels, rttLabel(last))
	}
	if last.Valid {
		last.Millis += syntheticDelay
	}
	return append(labels, rttLabel(last))
}

func rttLabel(rtt echo.RTT) string {
	if !rtt.Valid {
		return "timeout"
	}
	return formatFloat(rtt.Millis) + " ms"
}

func nodeIDs() []string {
	ids := make([]string, 0, len(topology))
	for _, h := range topology {
		ids = append(ids, h.id)
	}
	return ids
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
