package render

import (
	"github.com/lucasb-eyer/go-colorful"
)

type Color = colorful.Color

// Surface is a 2D drawing target in logical canvas units.
type Surface interface {
	Size() (w, h float64)
	// SetGlobalAlpha sets the opacity applied to every later draw call.
	SetGlobalAlpha(a float64)
	FillRect(x, y, w, h float64, c Color)
	StrokeLine(x0, y0, x1, y1, width float64, c Color)
	FillCircle(x, y, r float64, c Color)
}

// ParseColor parses a "#rrggbb" string.
func ParseColor(hex string) (Color, error) {
	return colorful.Hex(hex)
}

// Palette caches parsed colors. Hex strings that fail to parse map to the fallback.
type Palette struct {
	fallback Color
	cache    map[string]Color
}

func NewPalette(fallback Color) *Palette {
	return &Palette{fallback: fallback, cache: make(map[string]Color)}
}

func (p *Palette) Get(hex string) Color {
	if c, ok := p.cache[hex]; ok {
		return c
	}
	c, err := ParseColor(hex)
	if err != nil {
		c = p.fallback
	}
	p.cache[hex] = c
	return c
}
