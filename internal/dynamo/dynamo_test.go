package dynamo

import (
	"math"
	"testing"
	"time"

	"github.com/san-kum/poitune/internal/config"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestSimDelta(t *testing.T) {
	tests := []struct {
		wall  time.Duration
		speed float64
		want  float64
	}{
		{500 * time.Millisecond, 1, 1},
		{250 * time.Millisecond, 1, 0.5},
		{500 * time.Millisecond, 2, 2},
		{0, 5, 0},
		{time.Second, 0.1, 0.2},
	}

	for _, tt := range tests {
		if got := SimDelta(tt.wall, tt.speed); !near(got, tt.want) {
			t.Errorf("SimDelta(%v, %v) = %v, want %v", tt.wall, tt.speed, got, tt.want)
		}
	}
}

func TestAdvance_Monotonic(t *testing.T) {
	tests := []struct {
		name  string
		omega float64
		dir   float64
	}{
		{"positive", 1.5, 1},
		{"negative", -3, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := config.Rotation{OmegaHand: tt.omega, OmegaPoi: tt.omega}
			prev := r.AngleHand
			for i := 0; i < 1000; i++ {
				Advance(&r, 0.016)
				if (r.AngleHand-prev)*tt.dir <= 0 {
					t.Fatalf("step %d: angle moved from %v to %v", i, prev, r.AngleHand)
				}
				prev = r.AngleHand
			}
		})
	}
}

func TestAdvance_Unwrapped(t *testing.T) {
	r := config.Rotation{OmegaHand: 1, OmegaPoi: -3}
	for i := 0; i < 100; i++ {
		Advance(&r, 1)
	}
	if !near(r.AngleHand, 100) || !near(r.AnglePoi, -300) {
		t.Errorf("angles should accumulate without wrapping, got %v, %v", r.AngleHand, r.AnglePoi)
	}
}

func TestAdvance_ZeroOmega(t *testing.T) {
	r := config.Rotation{AngleHand: 0.7, AnglePoi: 0.2}
	Advance(&r, 10)
	if r.AngleHand != 0.7 || r.AnglePoi != 0.2 {
		t.Error("zero omega must not move the angles")
	}
}

func TestDerive_Compound(t *testing.T) {
	r := config.Rotation{RadiusHand: 10, RadiusPoi: 5}
	p := Derive(r, 1)

	if p.Origin != (Vec2{0, 0}) {
		t.Errorf("origin = %+v", p.Origin)
	}
	if !near(p.Hand.X, 10) || !near(p.Hand.Y, 0) {
		t.Errorf("hand = %+v, want (10, 0)", p.Hand)
	}
	if !near(p.Poi.X, 15) || !near(p.Poi.Y, 0) {
		t.Errorf("poi = %+v, want (15, 0)", p.Poi)
	}
}

func TestDerive_PoiOrbitsHand(t *testing.T) {
	r := config.Rotation{RadiusHand: 10, RadiusPoi: 5, AngleHand: math.Pi / 2, AnglePoi: math.Pi, OriginX: 100, OriginY: 50}
	p := Derive(r, 1)

	if !near(p.Hand.X, 100) || !near(p.Hand.Y, 60) {
		t.Errorf("hand = %+v, want (100, 60)", p.Hand)
	}
	if !near(p.Poi.X, 95) || !near(p.Poi.Y, 60) {
		t.Errorf("poi = %+v, want (95, 60)", p.Poi)
	}
	if !near(p.Poi.Sub(p.Hand).Norm(), 5) {
		t.Error("poi should stay radiusPoi away from the hand")
	}
}

func TestDerive_ScaleLinearity(t *testing.T) {
	r := config.Rotation{RadiusHand: 70, RadiusPoi: 40, AngleHand: 0.4, AnglePoi: -2.1, OriginX: 320, OriginY: 170}

	one := Derive(r, 1)
	two := Derive(r, 2)

	if two.Origin != one.Origin {
		t.Error("scale must not move the origin")
	}

	for _, pair := range [][2]Vec2{{one.Hand, two.Hand}, {one.Poi, two.Poi}} {
		d1 := pair[0].Sub(one.Origin)
		d2 := pair[1].Sub(two.Origin)
		if !near(d2.X, 2*d1.X) || !near(d2.Y, 2*d1.Y) {
			t.Errorf("displacement %+v is not twice %+v", d2, d1)
		}
	}
}

func TestStep(t *testing.T) {
	r := config.Rotation{RadiusHand: 10, RadiusPoi: 5, OmegaHand: math.Pi, OmegaPoi: 0}
	c := config.DefaultCommon()

	p := Step(&r, TimeUnit, c)

	if !near(r.AngleHand, math.Pi) {
		t.Errorf("angleHand = %v, want pi", r.AngleHand)
	}
	if !near(p.Hand.X, -10) || !near(p.Poi.X, -5) {
		t.Errorf("unexpected positions %+v", p)
	}
	if !p.Poi.IsValid() {
		t.Error("positions should be finite")
	}
}
