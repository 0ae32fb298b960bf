// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/telekom/echoprobe/internal/echo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// digits is the number of decimal places printed for distances.
const digits = 3

// WriteText prints the statistics of res. Missed attempts are
// printed as timeout. Colors are only used if w is a terminal.
func WriteText(w io.Writer, res echo.Result) error {
	r := lipgloss.NewRenderer(w)
	heading := r.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	missed := r.NewStyle().Foreground(lipgloss.Color("203"))
	p := message.NewPrinter(language.English)

	tw := &textWriter{w: w}
	tw.println(heading.Render(fmt.Sprintf("Ping statistics for %s (%s):", res.Host, res.Addr)))
	for i, rtt := range res.RTTs {
		if !rtt.Valid {
			tw.println("  " + missed.Render(fmt.Sprintf("seq=%d %s", i+1, rtt)))
			continue
		}
		tw.printf("  seq=%d time=%s\n", i+1, rtt)
	}

	tw.println(p.Sprintf("%d packets transmitted, %d received, %.1f%% packet loss",
		len(res.RTTs), res.Received(), res.LossPercent()))
	if stats, ok := res.Stats(); ok {
		tw.printf("rtt min/avg/max = %.3f/%.3f/%.3f ms\n", stats.Min, stats.Avg, stats.Max)
	}

	var first echo.RTT
	if len(res.RTTs) > 0 {
		first = res.RTTs[0]
	}
	tw.printf("Round-Trip Time (RTT): %s\n", first)
	if first.Valid {
		tw.printf("One-Way Time: %.3f ms\n", first.Millis/2)
	} else {
		tw.println("One-Way Time: timeout")
	}

	d := res.Distance
	tw.printf("Distance to Target (in kilometers): %s km\n", formatDistance(d.Kilometers()))
	tw.printf("Distance to Target (in meters): %s m\n", formatDistance(d.Meters()))
	tw.printf("Distance to Target (in feet): %s ft\n", formatDistance(d.Feet()))
	tw.printf("Distance to Target (in miles): %s miles\n", formatDistance(d.Miles()))
	return tw.err
}

// formatDistance rounds f to a fixed number of decimal places
// and groups the integer part by thousands.
func formatDistance(f float64) string {
	scale := math.Pow10(digits)
	return humanize.CommafWithDigits(math.Round(f*scale)/scale, digits)
}

// textWriter remembers the first write error.
type textWriter struct {
	w   io.Writer
	err error
}

func (t *textWriter) printf(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

func (t *textWriter) println(s string) {
	t.printf("%s\n", s)
}
