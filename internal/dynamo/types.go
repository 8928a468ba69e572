package dynamo

import (
	"math"
	"time"

	"github.com/san-kum/poitune/internal/config"
)

// TimeUnit is the wall time that makes up one simulated time unit at speedRate 1.
// Presets are tuned against it.
const TimeUnit = 500 * time.Millisecond

type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Norm() float64 {
	return math.Hypot(v.X, v.Y)
}

func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Positions are the derived canvas coordinates of one side.
type Positions struct {
	Origin Vec2
	Hand   Vec2
	Poi    Vec2
}

// SimDelta converts a wall-clock delta into simulated time units.
func SimDelta(wall time.Duration, speedRate float64) float64 {
	return float64(wall) / float64(TimeUnit) * speedRate
}

// Advance moves both phase accumulators by omega*dt. Omega is added to the radian
// accumulator as-is.
func Advance(r *config.Rotation, dt float64) {
	r.AngleHand += r.OmegaHand * dt
	r.AnglePoi += r.OmegaPoi * dt
}

// Derive computes positions for the current angles. Scale applies to the radii only,
// never to the origin.
func Derive(r config.Rotation, scale float64) Positions {
	origin := Vec2{r.OriginX, r.OriginY}

	sh, ch := math.Sincos(r.AngleHand)
	hand := Vec2{
		X: origin.X + ch*r.RadiusHand*scale,
		Y: origin.Y + sh*r.RadiusHand*scale,
	}

	sp, cp := math.Sincos(r.AnglePoi)
	poi := Vec2{
		X: hand.X + cp*r.RadiusPoi*scale,
		Y: hand.Y + sp*r.RadiusPoi*scale,
	}

	return Positions{Origin: origin, Hand: hand, Poi: poi}
}

// Step advances r by a wall delta and returns the new positions.
func Step(r *config.Rotation, wall time.Duration, c config.Common) Positions {
	Advance(r, SimDelta(wall, c.SpeedRate))
	return Derive(*r, c.Scale)
}
