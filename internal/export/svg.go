package export

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/san-kum/poitune/internal/analysis"
	"github.com/san-kum/poitune/internal/config"
	"github.com/san-kum/poitune/internal/render"
)

// Path is one poi trail to draw.
type Path struct {
	Color   string
	Samples []analysis.Sample
}

type SVGOptions struct {
	Title       string
	Width       int
	Height      int
	Background  string
	Grid        config.Grid
	StrokeWidth float64
	// Fit rescales the paths to fill the picture instead of keeping canvas units.
	Fit bool
}

// DefaultSVGOptions matches the on-screen canvas.
func DefaultSVGOptions() SVGOptions {
	c := config.DefaultCommon()
	return SVGOptions{
		Width:       int(config.CanvasWidth),
		Height:      int(config.CanvasHeight),
		Background:  c.BackgroundColor,
		Grid:        c.Grid,
		StrokeWidth: 1.5,
	}
}

type transform struct {
	sx, sy, ox, oy float64
}

func (t transform) apply(x, y float64) (int, int) {
	return int(math.Round((x-t.ox)*t.sx)), int(math.Round((y-t.oy)*t.sy))
}

func newTransform(paths []Path, opts SVGOptions) transform {
	t := transform{
		sx: float64(opts.Width) / config.CanvasWidth,
		sy: float64(opts.Height) / config.CanvasHeight,
	}
	if !opts.Fit {
		return t
	}

	var all []analysis.Sample
	for _, p := range paths {
		all = append(all, p.Samples...)
	}
	if len(all) == 0 {
		return t
	}

	b := analysis.PoiBounds(all)
	rangeX, rangeY := b.Width(), b.Height()
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	padX, padY := rangeX*0.1, rangeY*0.1

	// keep the aspect ratio so circles stay circles
	s := math.Min(float64(opts.Width)/(rangeX+2*padX), float64(opts.Height)/(rangeY+2*padY))
	return transform{
		sx: s,
		sy: s,
		ox: b.MinX - padX,
		oy: b.MinY - padY,
	}
}

// WriteSVG draws the poi trails of paths as polylines, with a dot where each trail
// ends.
func WriteSVG(w io.Writer, paths []Path, opts SVGOptions) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("export: invalid size %dx%d", opts.Width, opts.Height)
	}

	t := newTransform(paths, opts)
	pal := render.NewPalette(render.Color{R: 1, G: 1, B: 1})

	canvas := svg.New(w)
	canvas.Start(opts.Width, opts.Height)
	if opts.Title != "" {
		canvas.Title(opts.Title)
	}
	canvas.Rect(0, 0, opts.Width, opts.Height, "fill:"+pal.Get(opts.Background).Hex())

	if opts.Grid.Show && !opts.Fit {
		canvas.Gstyle(fmt.Sprintf("stroke:%s;stroke-width:1", pal.Get(opts.Grid.Color).Hex()))
		for x := 0.0; x <= config.CanvasWidth; x += render.GridPitch {
			x0, _ := t.apply(x, 0)
			canvas.Line(x0, 0, x0, opts.Height)
		}
		for y := 0.0; y <= config.CanvasHeight; y += render.GridPitch {
			_, y0 := t.apply(0, y)
			canvas.Line(0, y0, opts.Width, y0)
		}
		canvas.Gend()
	}

	for _, p := range paths {
		if len(p.Samples) == 0 {
			continue
		}
		color := pal.Get(p.Color).Hex()

		xs := make([]int, len(p.Samples))
		ys := make([]int, len(p.Samples))
		for i, s := range p.Samples {
			xs[i], ys[i] = t.apply(s.Poi.X, s.Poi.Y)
		}

		canvas.Polyline(xs, ys, fmt.Sprintf("fill:none;stroke:%s;stroke-width:%.1f", color, opts.StrokeWidth))

		last := len(xs) - 1
		canvas.Circle(xs[last], ys[last], 3, "fill:"+color)
	}

	canvas.End()
	return nil
}
