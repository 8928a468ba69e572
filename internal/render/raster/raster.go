// Package raster implements render.Surface on an in-memory RGBA image.
package raster

import (
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tfriedel6/canvas"
	"github.com/tfriedel6/canvas/backend/softwarebackend"

	"github.com/san-kum/poitune/internal/render"
)

// Surface draws through a software canvas backend. Coordinates map one to one onto
// pixels.
type Surface struct {
	backend *softwarebackend.SoftwareBackend
	cv      *canvas.Canvas
	w, h    int
}

func New(w, h int) *Surface {
	b := softwarebackend.New(w, h)
	return &Surface{backend: b, cv: canvas.New(b), w: w, h: h}
}

func (s *Surface) Size() (float64, float64) {
	return float64(s.w), float64(s.h)
}

func (s *Surface) SetGlobalAlpha(a float64) {
	s.cv.SetGlobalAlpha(a)
}

func (s *Surface) FillRect(x, y, w, h float64, c render.Color) {
	s.cv.SetFillStyle(c.Hex())
	s.cv.FillRect(x, y, w, h)
}

func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c render.Color) {
	s.cv.SetStrokeStyle(c.Hex())
	s.cv.SetLineWidth(width)
	s.cv.BeginPath()
	s.cv.MoveTo(x0, y0)
	s.cv.LineTo(x1, y1)
	s.cv.Stroke()
}

func (s *Surface) FillCircle(x, y, r float64, c render.Color) {
	if r <= 0 {
		return
	}
	s.cv.SetFillStyle(c.Hex())
	s.cv.BeginPath()
	s.cv.Arc(x, y, r, 0, 2*math.Pi, false)
	s.cv.ClosePath()
	s.cv.Fill()
}

// Image returns the backing image. It is live: later draws change it.
func (s *Surface) Image() *image.RGBA {
	return s.backend.Image
}

// At returns the pixel at (x, y) as a color.
func (s *Surface) At(x, y int) render.Color {
	c, _ := colorful.MakeColor(s.backend.Image.At(x, y))
	return c
}

func (s *Surface) WritePNG(w io.Writer) error {
	return png.Encode(w, s.backend.Image)
}

// Frame copies the current image into a paletted frame for GIF output.
func (s *Surface) Frame() *image.Paletted {
	bounds := s.backend.Image.Bounds()
	p := image.NewPaletted(bounds, palette.Plan9)
	draw.FloydSteinberg.Draw(p, bounds, s.backend.Image, image.Point{})
	return p
}

// Recorder collects frames of a surface into an animated GIF.
type Recorder struct {
	anim  gif.GIF
	delay int
}

// NewRecorder returns a recorder that shows each frame for delayMs milliseconds.
func NewRecorder(delayMs int) *Recorder {
	d := delayMs / 10
	if d < 1 {
		d = 1
	}
	return &Recorder{delay: d}
}

func (r *Recorder) Capture(s *Surface) {
	r.anim.Image = append(r.anim.Image, s.Frame())
	r.anim.Delay = append(r.anim.Delay, r.delay)
}

func (r *Recorder) Len() int { return len(r.anim.Image) }

func (r *Recorder) Encode(w io.Writer) error {
	return gif.EncodeAll(w, &r.anim)
}
