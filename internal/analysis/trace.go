package analysis

import (
	"math"
	"strings"

	"github.com/san-kum/poitune/internal/config"
	"github.com/san-kum/poitune/internal/dynamo"
)

// Sample is one recorded position at simulated time T.
type Sample struct {
	T    float64
	Hand dynamo.Vec2
	Poi  dynamo.Vec2
}

// SampleSide records the side from its current angles over duration simulated time
// units, one sample every step. The side passed in is not modified.
func SampleSide(side config.Side, scale, duration, step float64) []Sample {
	if step <= 0 || duration < 0 {
		return nil
	}

	r := side.Rotation
	n := int(math.Floor(duration/step + integerTolerance))
	samples := make([]Sample, 0, n+1)

	for i := 0; i <= n; i++ {
		p := dynamo.Derive(r, scale)
		samples = append(samples, Sample{T: float64(i) * step, Hand: p.Hand, Poi: p.Poi})
		dynamo.Advance(&r, step)
	}

	return samples
}

// Bounds is the axis aligned box around a set of points.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

func (b Bounds) Width() float64  { return b.MaxX - b.MinX }
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// PoiBounds returns the box around the poi path.
func PoiBounds(samples []Sample) Bounds {
	if len(samples) == 0 {
		return Bounds{}
	}
	b := Bounds{
		MinX: samples[0].Poi.X, MaxX: samples[0].Poi.X,
		MinY: samples[0].Poi.Y, MaxY: samples[0].Poi.Y,
	}
	for _, s := range samples[1:] {
		b.MinX = math.Min(b.MinX, s.Poi.X)
		b.MaxX = math.Max(b.MaxX, s.Poi.X)
		b.MinY = math.Min(b.MinY, s.Poi.Y)
		b.MaxY = math.Max(b.MaxY, s.Poi.Y)
	}
	return b
}

// Series splits the poi path into x and y series for plotting.
func Series(samples []Sample) (xs, ys []float64) {
	xs = make([]float64, len(samples))
	ys = make([]float64, len(samples))
	for i, s := range samples {
		xs[i] = s.Poi.X
		ys[i] = s.Poi.Y
	}
	return xs, ys
}

// PathToASCII draws the poi path on a width x height character grid. Canvas y grows
// downwards, so rows are not flipped.
func PathToASCII(samples []Sample, width, height int) string {
	if len(samples) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	b := PoiBounds(samples)
	rangeX, rangeY := b.Width(), b.Height()
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	for _, s := range samples {
		col := int((s.Poi.X - b.MinX) / rangeX * float64(width-1))
		row := int((s.Poi.Y - b.MinY) / rangeY * float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			grid[row][col] = '•'
		}
	}

	var sb strings.Builder
	for _, row := range grid {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
