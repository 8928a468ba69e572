package analysis

import (
	"math"

	"github.com/san-kum/poitune/internal/config"
)

const integerTolerance = 1e-9

func asInt(v float64) (int, bool) {
	r := math.Round(v)
	if math.Abs(v-r) > integerTolerance {
		return 0, false
	}
	return int(r), true
}

func gcd(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func omegas(r config.Rotation) (h, p, g int, ok bool) {
	h, okH := asInt(r.OmegaHand)
	p, okP := asInt(r.OmegaPoi)
	if !okH || !okP {
		return 0, 0, 0, false
	}
	g = gcd(h, p)
	if g == 0 {
		return 0, 0, 0, false
	}
	return h, p, g, true
}

// Period returns the simulated time after which both angles are back where they
// started modulo 2π. It reports false for non-integer or all-zero velocities.
func Period(r config.Rotation) (float64, bool) {
	_, _, g, ok := omegas(r)
	if !ok {
		return 0, false
	}
	return 2 * math.Pi / float64(g), true
}

// Petals counts the lobes of the closed curve: |ωp - ωh| / gcd(ωh, ωp).
func Petals(r config.Rotation) (int, bool) {
	h, p, g, ok := omegas(r)
	if !ok {
		return 0, false
	}
	d := p - h
	if d < 0 {
		d = -d
	}
	return d / g, true
}
