package viz

import (
	"math"
	"sync"

	"github.com/san-kum/poitune/internal/config"
	"github.com/san-kum/poitune/internal/render"
)

// Surface maps the logical canvas onto a braille Canvas with a uniform scale, so
// circles stay round. Safe for concurrent use.
type Surface struct {
	mu     sync.Mutex
	canvas *Canvas
	scale  float64
	alpha  float64
}

// NewSurface builds a surface of cols x rows terminal cells.
func NewSurface(cols, rows int) *Surface {
	c := NewCanvas(cols, rows)
	dw, dh := c.Dots()
	return &Surface{
		canvas: c,
		scale:  math.Min(float64(dw)/config.CanvasWidth, float64(dh)/config.CanvasHeight),
		alpha:  1,
	}
}

func (s *Surface) Size() (float64, float64) {
	return config.CanvasWidth, config.CanvasHeight
}

func (s *Surface) SetGlobalAlpha(a float64) {
	s.mu.Lock()
	s.alpha = config.Clamp(a, 0, 1)
	s.mu.Unlock()
}

func (s *Surface) dot(v float64) int {
	return int(math.Floor(v * s.scale))
}

func (s *Surface) FillRect(x, y, w, h float64, c render.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()

	x0, y0 := s.dot(x), s.dot(y)
	x1, y1 := s.dot(x+w), s.dot(y+h)

	// a full-surface fill also covers the margin and sets the reference the dots
	// are compared against
	if x <= 0 && y <= 0 && x+w >= config.CanvasWidth && y+h >= config.CanvasHeight {
		s.canvas.Background = c
		x0, y0 = 0, 0
		x1, y1 = s.canvas.Dots()
	}
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			s.canvas.Blend(px, py, c, s.alpha)
		}
	}
}

func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c render.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.canvas.DrawLine(s.dot(x0), s.dot(y0), s.dot(x1), s.dot(y1), func(x, y int) {
		s.canvas.Blend(x, y, c, s.alpha)
	})
}

// FillCircle always covers at least the center dot.
func (s *Surface) FillCircle(x, y, r float64, c render.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cx, cy := x*s.scale, y*s.scale
	rr := r * s.scale
	s.canvas.Blend(int(math.Floor(cx)), int(math.Floor(cy)), c, s.alpha)

	for py := int(math.Floor(cy - rr)); py <= int(math.Ceil(cy+rr)); py++ {
		for px := int(math.Floor(cx - rr)); px <= int(math.Ceil(cx+rr)); px++ {
			dx, dy := float64(px)+0.5-cx, float64(py)+0.5-cy
			if dx*dx+dy*dy <= rr*rr {
				s.canvas.Blend(px, py, c, s.alpha)
			}
		}
	}
}

// Render returns the colored braille frame.
func (s *Surface) Render() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas.String()
}

// Plain returns the frame without color codes.
func (s *Surface) Plain() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas.Plain()
}
