package viz

import (
	"testing"

	"github.com/san-kum/poitune/internal/config"
	"github.com/san-kum/poitune/internal/dynamo"
	"github.com/san-kum/poitune/internal/render"
)

func litCount(s *Surface) int {
	n := 0
	dw, dh := s.canvas.Dots()
	for y := 0; y < dh; y++ {
		for x := 0; x < dw; x++ {
			if s.canvas.Lit(x, y) {
				n++
			}
		}
	}
	return n
}

func paintedFrame(t *testing.T, afterimage float64) *Surface {
	t.Helper()

	s := NewSurface(40, 12)
	common := config.DefaultCommon()
	common.Grid.Show = false

	side := config.DefaultParams().Left
	comp := render.NewCompositor()
	comp.Clear(s, common)
	comp.Compose(s, common, []render.SideFrame{{Style: side.Style, Pos: dynamo.Derive(side.Rotation, 1)}})
	if litCount(s) == 0 {
		t.Fatal("the side should leave visible dots")
	}

	common.Afterimage = afterimage
	comp.Compose(s, common, nil)
	return s
}

func TestSurface_AfterimageZeroReplaces(t *testing.T) {
	if n := litCount(paintedFrame(t, 0)); n != 0 {
		t.Errorf("afterimage 0 should wipe the previous frame, %d dots left", n)
	}
}

func TestSurface_AfterimageOneKeeps(t *testing.T) {
	s := paintedFrame(t, 1)
	if litCount(s) == 0 {
		t.Error("afterimage 1 should keep the previous frame")
	}
}

func TestSurface_ScaleKeepsAspect(t *testing.T) {
	s := NewSurface(80, 24)
	dw, dh := s.canvas.Dots()
	if s.dot(config.CanvasWidth) > dw || s.dot(config.CanvasHeight) > dh {
		t.Error("the logical canvas must fit in the dot grid")
	}
	if s.dot(config.CanvasWidth) != dw && s.dot(config.CanvasHeight) != dh {
		t.Error("one axis should fill the dot grid")
	}
}

func TestSurface_GridVisible(t *testing.T) {
	s := NewSurface(40, 12)
	common := config.DefaultCommon()
	render.NewCompositor().Clear(s, common)

	if litCount(s) == 0 {
		t.Error("grid lines should be visible after a clear")
	}
	if s.Plain() == "" || s.Render() == "" {
		t.Error("render output should not be empty")
	}
}
