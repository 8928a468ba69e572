package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/san-kum/poitune/internal/dynamo"
)

func at(x, y float64) []dynamo.Positions {
	return []dynamo.Positions{{Poi: dynamo.Vec2{X: x, Y: y}}}
}

func TestFrameRate(t *testing.T) {
	m := NewFrameRate(4)
	if m.Value() != 0 {
		t.Error("expected 0 before any frame")
	}

	for i := 0; i < 3; i++ {
		m.Observe(20*time.Millisecond, nil)
	}
	if got := m.Value(); math.Abs(got-50) > 1e-9 {
		t.Errorf("fps = %v, want 50", got)
	}

	// the window forgets the slow frames
	for i := 0; i < 4; i++ {
		m.Observe(10*time.Millisecond, nil)
	}
	if got := m.Value(); math.Abs(got-100) > 1e-9 {
		t.Errorf("fps = %v, want 100", got)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected 0 after reset")
	}
}

func TestOnCanvas(t *testing.T) {
	m := NewOnCanvas(100, 50)
	if m.Value() != 1.0 {
		t.Error("expected 1.0 with no samples")
	}

	m.Observe(0, at(10, 10))
	m.Observe(0, at(100, 50))
	m.Observe(0, at(-1, 10))
	m.Observe(0, append(at(10, 10), at(10, 51)...))

	if got := m.Value(); got != 0.5 {
		t.Errorf("on canvas = %v, want 0.5", got)
	}

	m.Reset()
	if m.Value() != 1.0 {
		t.Error("expected 1.0 after reset")
	}
}

func TestTravel(t *testing.T) {
	m := NewTravel()
	m.Observe(0, at(0, 0))
	m.Observe(0, at(3, 4))
	m.Observe(0, nil)
	m.Observe(0, at(3, 0))

	if got := m.Value(); got != 9 {
		t.Errorf("travel = %v, want 9", got)
	}

	m.Reset()
	m.Observe(0, at(100, 100))
	if m.Value() != 0 {
		t.Error("the first frame after reset should not add distance")
	}
}
