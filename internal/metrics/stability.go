package metrics

import (
	"time"

	"github.com/san-kum/poitune/internal/dynamo"
)

// OnCanvas is the fraction of frames in which every poi stayed inside the canvas.
type OnCanvas struct {
	width, height float64
	violations    int
	samples       int
}

func NewOnCanvas(width, height float64) *OnCanvas {
	return &OnCanvas{width: width, height: height}
}

func (o *OnCanvas) Name() string { return "on_canvas" }

func (o *OnCanvas) Observe(_ time.Duration, pos []dynamo.Positions) {
	o.samples++
	for _, p := range pos {
		if p.Poi.X < 0 || p.Poi.X > o.width || p.Poi.Y < 0 || p.Poi.Y > o.height {
			o.violations++
			break
		}
	}
}

func (o *OnCanvas) Value() float64 {
	if o.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(o.violations)/float64(o.samples)
}

func (o *OnCanvas) Reset() {
	o.violations = 0
	o.samples = 0
}
