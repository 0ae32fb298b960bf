// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package echo

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/telekom/echoprobe/internal/checksum"
	"golang.org/x/net/ipv4"
)

const (
	// DefaultAttempts is the number of echo requests sent per run.
	DefaultAttempts = 4
	// DefaultSignalSpeed is the assumed propagation speed in meters per millisecond.
	DefaultSignalSpeed = 180.0
	// DefaultTimeout is the time to wait for each echo reply.
	DefaultTimeout = 2 * time.Second
)

// Options contains the configuration of a probe run.
type Options struct {
	// Attempts is the number of echo requests to send.
	Attempts int `json:"attempts" yaml:"attempts" mapstructure:"attempts"`
	// SignalSpeed is the propagation speed used for the distance estimate, in meters per millisecond.
	SignalSpeed float64 `json:"signalSpeed" yaml:"signalSpeed" mapstructure:"signalSpeed"`
	// Timeout is the time to wait for the reply of a single attempt.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
	// Privileged selects a raw ip4:icmp socket. If false, an unprivileged
	// ICMP datagram socket is used, which the kernel has to allow via
	// net.ipv4.ping_group_range.
	Privileged bool `json:"privileged" yaml:"privileged" mapstructure:"privileged"`
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		Attempts:    DefaultAttempts,
		SignalSpeed: DefaultSignalSpeed,
		Timeout:     DefaultTimeout,
		Privileged:  true,
	}
}

// Validate checks that the options can be used for a probe run.
func (o *Options) Validate() (err error) {
	if o.Attempts <= 0 || o.Attempts > math.MaxUint16 {
		err = errors.Join(err, fmt.Errorf("attempts must be between 1 and %d, got %d", math.MaxUint16, o.Attempts))
	}
	if o.SignalSpeed <= 0 || math.IsInf(o.SignalSpeed, 0) || math.IsNaN(o.SignalSpeed) {
		err = errors.Join(err, fmt.Errorf("signal speed must be a positive number, got %v", o.SignalSpeed))
	}
	if o.Timeout <= 0 {
		err = errors.Join(err, fmt.Errorf("timeout must be greater than 0, got %v", o.Timeout))
	}
	return err
}

// headerLen is the length of the ICMP echo header.
const headerLen = 8

// Request is an ICMP echo request header.
type Request struct {
	Type     uint8
	Code     uint8
	Checksum uint16
	ID       uint16
	Seq      uint16
}

// newRequest returns an echo request template for the given identifier.
func newRequest(id uint16) Request {
	return Request{
		Type: uint8(ipv4.ICMPTypeEcho),
		Code: 0,
		ID:   id,
	}
}

// Marshal returns the header in network byte order.
// The checksum field is zeroed, recomputed over the whole header
// and stored in r before the bytes are returned.
func (r *Request) Marshal() []byte {
	r.Checksum = 0
	b := make([]byte, headerLen)
	b[0] = r.Type
	b[1] = r.Code
	binary.BigEndian.PutUint16(b[4:6], r.ID)
	binary.BigEndian.PutUint16(b[6:8], r.Seq)

	r.Checksum = checksum.Sum(b)
	binary.BigEndian.PutUint16(b[2:4], r.Checksum)
	return b
}

// RTT is the round-trip time of a single attempt.
// Valid is false when the attempt got no reply.
type RTT struct {
	// Millis is the round-trip time in milliseconds.
	Millis float64 `json:"millis" yaml:"millis"`
	// Valid reports whether a reply was received.
	Valid bool `json:"valid" yaml:"valid"`
}

func newRTT(d time.Duration) RTT {
	return RTT{Millis: float64(d) / float64(time.Millisecond), Valid: true}
}

// Duration returns the round-trip time as a [time.Duration].
func (r RTT) Duration() time.Duration {
	if !r.Valid {
		return 0
	}
	return time.Duration(r.Millis * float64(time.Millisecond))
}

func (r RTT) String() string {
	if !r.Valid {
		return "timeout"
	}
	return strconv.FormatFloat(r.Millis, 'f', 3, 64) + " ms"
}

// Conversion factors used for [Distance].
const (
	metersPerKilometer = 1000
	feetPerMeter       = 3.28084
	metersPerMile      = 1609.34
)

// Distance is an estimated one-way distance in meters.
type Distance float64

// EstimateDistance returns the one-way distance covered in half of rtt
// at the given speed in meters per millisecond. A missed rtt yields 0.
func EstimateDistance(rtt RTT, speed float64) Distance {
	if !rtt.Valid {
		return 0
	}
	return Distance(rtt.Millis / 2 * speed)
}

// Meters returns the distance in meters.
func (d Distance) Meters() float64 { return float64(d) }

// Kilometers returns the distance in kilometers.
func (d Distance) Kilometers() float64 { return float64(d) / metersPerKilometer }

// Feet returns the distance in feet.
func (d Distance) Feet() float64 { return float64(d) * feetPerMeter }

// Miles returns the distance in miles.
func (d Distance) Miles() float64 { return float64(d) / metersPerMile }

// Result is the outcome of a probe run.
type Result struct {
	// Host is the host as given by the caller.
	Host string `json:"host" yaml:"host"`
	// Addr is the resolved IPv4 address.
	Addr string `json:"addr" yaml:"addr"`
	// RTTs holds one slot per attempt in the order they were sent.
	RTTs []RTT `json:"rtts" yaml:"rtts"`
	// Distance is estimated from the last attempt that got a reply.
	// It is 0 if no attempt got a reply.
	Distance Distance `json:"distanceMeters" yaml:"distanceMeters"`
}

// Received returns the number of attempts that got a reply.
func (r Result) Received() int {
	n := 0
	for _, rtt := range r.RTTs {
		if rtt.Valid {
			n++
		}
	}
	return n
}

// Missed returns the 1-based numbers of the attempts without a reply.
func (r Result) Missed() []int {
	missed := []int{}
	for i, rtt := range r.RTTs {
		if !rtt.Valid {
			missed = append(missed, i+1)
		}
	}
	return missed
}

// LossPercent returns the share of attempts without a reply in percent.
func (r Result) LossPercent() float64 {
	if len(r.RTTs) == 0 {
		return 0
	}
	return float64(len(r.RTTs)-r.Received()) / float64(len(r.RTTs)) * 100
}

// LastReply returns the RTT of the last attempt that got a reply.
func (r Result) LastReply() (RTT, bool) {
	for i := len(r.RTTs) - 1; i >= 0; i-- {
		if r.RTTs[i].Valid {
			return r.RTTs[i], true
		}
	}
	return RTT{}, false
}

// Stats summarizes the received round-trip times in milliseconds.
type Stats struct {
	Min float64 `json:"min" yaml:"min"`
	Avg float64 `json:"avg" yaml:"avg"`
	Max float64 `json:"max" yaml:"max"`
}

// Stats returns min, avg and max over the attempts that got a reply.
// The second return value is false if no attempt got a reply.
func (r Result) Stats() (Stats, bool) {
	var s Stats
	n := 0
	for _, rtt := range r.RTTs {
		if !rtt.Valid {
			continue
		}
		if n == 0 || rtt.Millis < s.Min {
			s.Min = rtt.Millis
		}
		if rtt.Millis > s.Max {
			s.Max = rtt.Millis
		}
		s.Avg += rtt.Millis
		n++
	}
	if n == 0 {
		return Stats{}, false
	}
	s.Avg /= float64(n)
	return s, true
}

// State is the state of a probe run.
type State int

const (
	StateIdle State = iota
	StateResolving
	StateResolutionFailed
	StateProbing
	StateCompleted
	StateFailed
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateResolving:
		return "resolving"
	case StateResolutionFailed:
		return "resolution failed"
	case StateProbing:
		return "probing"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Terminal reports whether a run in this state is finished.
func (s State) Terminal() bool {
	switch s {
	case StateResolutionFailed, StateCompleted, StateFailed, StateAborted:
		return true
	default:
		return false
	}
}
