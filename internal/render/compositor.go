package render

import (
	"github.com/san-kum/poitune/internal/config"
	"github.com/san-kum/poitune/internal/dynamo"
)

// GridPitch is the spacing of grid hairlines in canvas units.
const GridPitch = 20.0

// SideFrame pairs a side's style with its freshly derived positions.
type SideFrame struct {
	Style config.Style
	Pos   dynamo.Positions
}

// Compositor paints frames. It keeps a color cache and is not safe for concurrent
// use; give each loop its own.
type Compositor struct {
	palette *Palette
}

func NewCompositor() *Compositor {
	return &Compositor{palette: NewPalette(Color{})}
}

// Clear paints the background at full opacity and draws the grid once. Hosts call it
// when a loop (re)starts.
func (c *Compositor) Clear(s Surface, common config.Common) {
	w, h := s.Size()
	s.SetGlobalAlpha(1)
	s.FillRect(0, 0, w, h, c.palette.Get(common.BackgroundColor))
	c.drawGrid(s, common.Grid)
}

// Compose paints one frame. The background goes down at opacity 1-afterimage before
// anything else, so earlier frames, grid included, fade instead of disappearing.
func (c *Compositor) Compose(s Surface, common config.Common, sides []SideFrame) {
	w, h := s.Size()

	s.SetGlobalAlpha(1 - config.Clamp(common.Afterimage, 0, 1))
	s.FillRect(0, 0, w, h, c.palette.Get(common.BackgroundColor))
	s.SetGlobalAlpha(1)

	c.drawGrid(s, common.Grid)

	for _, f := range sides {
		c.drawSide(s, f)
	}
}

func (c *Compositor) drawGrid(s Surface, g config.Grid) {
	if !g.Show {
		return
	}
	w, h := s.Size()
	col := c.palette.Get(g.Color)
	for x := 0.0; x <= w; x += GridPitch {
		s.StrokeLine(x+0.5, 0, x+0.5, h, 1, col)
	}
	for y := 0.0; y <= h; y += GridPitch {
		s.StrokeLine(0, y+0.5, w, y+0.5, 1, col)
	}
}

// drawSide order matters: segments first, then origin, hand and poi so the poi ends
// up on top.
func (c *Compositor) drawSide(s Surface, f SideFrame) {
	st, p := f.Style, f.Pos

	if st.SegmentVisible.Chain {
		s.StrokeLine(p.Origin.X, p.Origin.Y, p.Hand.X, p.Hand.Y, st.SegmentSize.Chain, c.palette.Get(st.SegmentColor.Chain))
	}
	if st.SegmentVisible.Arm {
		s.StrokeLine(p.Hand.X, p.Hand.Y, p.Poi.X, p.Poi.Y, st.SegmentSize.Arm, c.palette.Get(st.SegmentColor.Arm))
	}

	if st.ObjectVisible.Origin {
		s.FillCircle(p.Origin.X, p.Origin.Y, st.ObjectSize.Origin, c.palette.Get(st.ObjectColor.Origin))
	}
	if st.ObjectVisible.Hand {
		s.FillCircle(p.Hand.X, p.Hand.Y, st.ObjectSize.Hand, c.palette.Get(st.ObjectColor.Hand))
	}
	if st.ObjectVisible.Poi {
		s.FillCircle(p.Poi.X, p.Poi.Y, st.ObjectSize.Poi, c.palette.Get(st.ObjectColor.Poi))
	}
}
