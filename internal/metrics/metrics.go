// Package metrics accumulates per-frame statistics of a running simulation.
package metrics

import (
	"time"

	"github.com/san-kum/poitune/internal/dynamo"
)

// Metric observes every painted frame. Observe and Value are called from the goroutine
// that ticks the simulator.
type Metric interface {
	Name() string
	Observe(wall time.Duration, pos []dynamo.Positions)
	Value() float64
	Reset()
}

const defaultWindow = 60

// FrameRate is the mean frame rate over the last frames.
type FrameRate struct {
	deltas []time.Duration
	next   int
	full   bool
}

func NewFrameRate(window int) *FrameRate {
	if window <= 0 {
		window = defaultWindow
	}
	return &FrameRate{deltas: make([]time.Duration, window)}
}

func (f *FrameRate) Name() string { return "fps" }

func (f *FrameRate) Observe(wall time.Duration, _ []dynamo.Positions) {
	f.deltas[f.next] = wall
	f.next++
	if f.next == len(f.deltas) {
		f.next = 0
		f.full = true
	}
}

func (f *FrameRate) Value() float64 {
	n := f.next
	if f.full {
		n = len(f.deltas)
	}
	var total time.Duration
	for _, d := range f.deltas[:n] {
		total += d
	}
	if total <= 0 {
		return 0
	}
	return float64(n) / total.Seconds()
}

func (f *FrameRate) Reset() {
	f.next = 0
	f.full = false
}
