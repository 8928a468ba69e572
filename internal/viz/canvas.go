package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// litThreshold is the RGB distance from the background at which a dot shows.
const litThreshold = 0.12

// Canvas is a color framebuffer at braille dot resolution. Each terminal cell covers
// 2x4 dots; a dot is drawn when its color stands out from the background.
type Canvas struct {
	Width, Height int
	Background    colorful.Color
	pix           []colorful.Color
}

func NewCanvas(w, h int) *Canvas {
	return &Canvas{
		Width:  w,
		Height: h,
		pix:    make([]colorful.Color, w*2*h*4),
	}
}

// Dots returns the canvas size in dots.
func (c *Canvas) Dots() (int, int) { return c.Width * 2, c.Height * 4 }

func (c *Canvas) index(x, y int) (int, bool) {
	dw, dh := c.Dots()
	if x < 0 || y < 0 || x >= dw || y >= dh {
		return 0, false
	}
	return y*dw + x, true
}

// Blend mixes col into the dot at (x, y) with weight alpha.
func (c *Canvas) Blend(x, y int, col colorful.Color, alpha float64) {
	i, ok := c.index(x, y)
	if !ok {
		return
	}
	if alpha >= 1 {
		c.pix[i] = col
		return
	}
	c.pix[i] = c.pix[i].BlendRgb(col, alpha)
}

func (c *Canvas) At(x, y int) colorful.Color {
	i, ok := c.index(x, y)
	if !ok {
		return c.Background
	}
	return c.pix[i]
}

// Lit reports whether the dot at (x, y) would be drawn.
func (c *Canvas) Lit(x, y int) bool {
	i, ok := c.index(x, y)
	return ok && c.pix[i].DistanceRgb(c.Background) > litThreshold
}

// Clear paints every dot with the background.
func (c *Canvas) Clear() {
	for i := range c.pix {
		c.pix[i] = c.Background
	}
}

// DrawLine plots a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// cell returns the braille rune for a cell and the color of its strongest dot.
func (c *Canvas) cell(col, row int) (rune, colorful.Color) {
	r := rune(brailleBlank)
	var best colorful.Color
	bestDist := -1.0

	for sy := 0; sy < 4; sy++ {
		for sx := 0; sx < 2; sx++ {
			x, y := col*2+sx, row*4+sy
			if !c.Lit(x, y) {
				continue
			}
			r |= rune(pixelMap[sy][sx])
			px := c.At(x, y)
			if d := px.DistanceRgb(c.Background); d > bestDist {
				best, bestDist = px, d
			}
		}
	}
	return r, best
}

// Plain renders the dots without color.
func (c *Canvas) Plain() string {
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			r, _ := c.cell(col, row)
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// String renders the dots, coloring runs of cells that share a color.
func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		var run strings.Builder
		runColor := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runColor == "" {
				b.WriteString(run.String())
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(runColor)).Render(run.String()))
			}
			run.Reset()
		}

		for col := 0; col < c.Width; col++ {
			r, px := c.cell(col, row)
			hex := ""
			if r != brailleBlank {
				hex = px.Clamped().Hex()
			}
			if hex != runColor && r != brailleBlank {
				flush()
				runColor = hex
			}
			run.WriteRune(r)
		}
		flush()
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
