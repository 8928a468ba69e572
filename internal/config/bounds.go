package config

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Bounds is an inclusive range for a form field.
type Bounds struct {
	Min, Max float64
}

var (
	FPSBounds        = Bounds{Min: 1, Max: 240}
	AfterimageBounds = Bounds{Min: 0, Max: 1}
	SpeedRateBounds  = Bounds{Min: 0.1, Max: 10}
	ScaleBounds      = Bounds{Min: 0.1, Max: 10}
	Unbounded        = Bounds{Min: math.Inf(-1), Max: math.Inf(1)}
)

// Coerce maps NaN and infinities to 0, the value a blank form field reads as.
func Coerce(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Apply coerces v and clamps it into b.
func (b Bounds) Apply(v float64) float64 {
	return Clamp(Coerce(v), b.Min, b.Max)
}

// Degrees converts a form angle to the radians the store keeps.
func Degrees(deg float64) float64 {
	return Coerce(deg) * math.Pi / 180
}

func ToDegrees(rad float64) float64 {
	return rad / (math.Pi / 180)
}

func validHex(s, fallback string) string {
	if _, err := colorful.Hex(s); err != nil {
		return fallback
	}
	return s
}

// Sanitize brings every field into the range the integrator and compositor assume.
func (p *Params) Sanitize() {
	p.Left.Sanitize()
	p.Right.Sanitize()
	p.Common.Sanitize()
}

func (c *Common) Sanitize() {
	c.FPS = FPSBounds.Apply(c.FPS)
	c.Afterimage = AfterimageBounds.Apply(c.Afterimage)
	c.SpeedRate = SpeedRateBounds.Apply(c.SpeedRate)
	c.Scale = ScaleBounds.Apply(c.Scale)
	if c.NumberOfLocus != 1 {
		c.NumberOfLocus = 2
	}
	c.BackgroundColor = validHex(c.BackgroundColor, DefaultBackground)
	c.Grid.Color = validHex(c.Grid.Color, DefaultGridColor)
}

func (s *Side) Sanitize() {
	r := &s.Rotation
	for _, f := range []*float64{
		&r.RadiusHand, &r.RadiusPoi, &r.OmegaHand, &r.OmegaPoi,
		&r.AngleHand, &r.AnglePoi, &r.OriginX, &r.OriginY,
		&s.ObjectSize.Origin, &s.ObjectSize.Hand, &s.ObjectSize.Poi,
		&s.SegmentSize.Arm, &s.SegmentSize.Chain,
	} {
		*f = Coerce(*f)
	}

	def := DefaultStyle()
	s.ObjectColor.Origin = validHex(s.ObjectColor.Origin, def.ObjectColor.Origin)
	s.ObjectColor.Hand = validHex(s.ObjectColor.Hand, def.ObjectColor.Hand)
	s.ObjectColor.Poi = validHex(s.ObjectColor.Poi, def.ObjectColor.Poi)
	s.SegmentColor.Arm = validHex(s.SegmentColor.Arm, def.SegmentColor.Arm)
	s.SegmentColor.Chain = validHex(s.SegmentColor.Chain, def.SegmentColor.Chain)
}
