package metrics

import (
	"time"

	"github.com/san-kum/poitune/internal/dynamo"
)

// Travel sums the distance covered by the first poi between frames, in canvas pixels.
type Travel struct {
	last  dynamo.Vec2
	seen  bool
	total float64
}

func NewTravel() *Travel {
	return &Travel{}
}

func (t *Travel) Name() string { return "travel" }

func (t *Travel) Observe(_ time.Duration, pos []dynamo.Positions) {
	if len(pos) == 0 {
		return
	}
	p := pos[0].Poi
	if t.seen {
		t.total += p.Sub(t.last).Norm()
	}
	t.last = p
	t.seen = true
}

func (t *Travel) Value() float64 {
	return t.total
}

func (t *Travel) Reset() {
	t.total = 0
	t.seen = false
}
