// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/telekom/echoprobe/internal/echo"
	"gopkg.in/yaml.v3"
)

// Format is the output format of a probe result.
type Format string

const (
	// Text prints human readable statistics.
	Text Format = "text"
	// JSON encodes the summary as JSON.
	JSON Format = "json"
	// YAML encodes the summary as YAML.
	YAML Format = "yaml"
)

var formats = []Format{Text, JSON, YAML}

func (f Format) String() string {
	return string(f)
}

// Validate checks that f is a supported format.
func (f Format) Validate() error {
	if !slices.Contains(formats, f) {
		return fmt.Errorf("unsupported output format %q, must be one of %v", f, formats)
	}
	return nil
}

// Summary is the encoded form of a probe result.
type Summary struct {
	Host        string      `json:"host" yaml:"host"`
	Addr        string      `json:"addr" yaml:"addr"`
	RTTs        []echo.RTT  `json:"rtts" yaml:"rtts"`
	Sent        int         `json:"sent" yaml:"sent"`
	Received    int         `json:"received" yaml:"received"`
	LossPercent float64     `json:"lossPercent" yaml:"lossPercent"`
	Stats       *echo.Stats `json:"stats,omitempty" yaml:"stats,omitempty"`
	Distance    Distance    `json:"distance" yaml:"distance"`
}

// Distance is the distance estimate in all supported units.
type Distance struct {
	Meters     float64 `json:"meters" yaml:"meters"`
	Kilometers float64 `json:"kilometers" yaml:"kilometers"`
	Feet       float64 `json:"feet" yaml:"feet"`
	Miles      float64 `json:"miles" yaml:"miles"`
}

// NewSummary summarizes res.
func NewSummary(res echo.Result) Summary {
	s := Summary{
		Host:        res.Host,
		Addr:        res.Addr,
		RTTs:        res.RTTs,
		Sent:        len(res.RTTs),
		Received:    res.Received(),
		LossPercent: res.LossPercent(),
		Distance: Distance{
			Meters:     res.Distance.Meters(),
			Kilometers: res.Distance.Kilometers(),
			Feet:       res.Distance.Feet(),
			Miles:      res.Distance.Miles(),
		},
	}
	if stats, ok := res.Stats(); ok {
		s.Stats = &stats
	}
	return s
}

// Write renders res to w in the given format.
func Write(w io.Writer, res echo.Result, f Format) error {
	switch f {
	case Text:
		return WriteText(w, res)
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(NewSummary(res))
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(NewSummary(res)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return f.Validate()
	}
}
