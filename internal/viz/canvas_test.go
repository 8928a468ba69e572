package viz

import (
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

var white = colorful.Color{R: 1, G: 1, B: 1}

func TestCanvas_Blank(t *testing.T) {
	c := NewCanvas(3, 2)
	want := strings.Repeat(strings.Repeat("⠀", 3)+"\n", 2)
	if got := c.Plain(); got != want {
		t.Errorf("blank canvas = %q", got)
	}
}

func TestCanvas_DotBits(t *testing.T) {
	tests := []struct {
		x, y int
		want rune
	}{
		{0, 0, 0x2801},
		{1, 0, 0x2808},
		{0, 3, 0x2840},
		{1, 3, 0x2880},
	}

	for _, tt := range tests {
		c := NewCanvas(1, 1)
		c.Blend(tt.x, tt.y, white, 1)
		if got := []rune(c.Plain())[0]; got != tt.want {
			t.Errorf("dot (%d,%d) = %U, want %U", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestCanvas_BlendFades(t *testing.T) {
	c := NewCanvas(1, 1)
	c.Blend(0, 0, white, 1)

	for i := 0; i < 30; i++ {
		c.Blend(0, 0, c.Background, 0.2)
	}
	if c.Lit(0, 0) {
		t.Errorf("dot should have faded, color %s", c.At(0, 0).Hex())
	}
}

func TestCanvas_OutOfBounds(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Blend(-1, 0, white, 1)
	c.Blend(4, 0, white, 1)
	c.Blend(0, 8, white, 1)
	if strings.ContainsFunc(c.Plain(), func(r rune) bool { return r > 0x2800 }) {
		t.Error("out of range dots must be ignored")
	}
	if c.Lit(-1, -1) {
		t.Error("out of range dots are never lit")
	}
}

func TestCanvas_DrawLine(t *testing.T) {
	c := NewCanvas(4, 1)
	n := 0
	c.DrawLine(0, 0, 7, 3, func(x, y int) {
		c.Blend(x, y, white, 1)
		n++
	})
	if n != 8 {
		t.Errorf("expected 8 plotted dots, got %d", n)
	}
	if !c.Lit(0, 0) || !c.Lit(7, 3) {
		t.Error("line endpoints should be lit")
	}
}

func TestCanvas_StringColors(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Blend(0, 0, white, 1)
	if !strings.Contains(c.String(), "⠁") {
		t.Error("colored output should still contain the dot")
	}
}
