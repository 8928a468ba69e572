package sim

import (
	"context"
	"time"

	"github.com/san-kum/poitune/internal/config"
	"github.com/san-kum/poitune/internal/dynamo"
	"github.com/san-kum/poitune/internal/render"
)

// MaxFrameDelta caps the wall delta of a single tick so a stalled host does not
// make the figure jump.
const MaxFrameDelta = 250 * time.Millisecond

// ClampDelta bounds a wall delta to [0, MaxFrameDelta].
func ClampDelta(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	if d > MaxFrameDelta {
		return MaxFrameDelta
	}
	return d
}

// Simulator owns a private snapshot of the parameters and paints onto one surface.
// Every Tick integrates the active sides and composes a frame.
type Simulator struct {
	snap    config.Params
	surface render.Surface
	comp    *render.Compositor
	frames  []render.SideFrame
	ticks   int
}

// New clones p into the simulator's snapshot. Later edits to p do not reach it.
func New(p config.Params, surface render.Surface) (*Simulator, error) {
	if surface == nil {
		return nil, ErrNoSurface
	}
	return &Simulator{
		snap:    p,
		surface: surface,
		comp:    render.NewCompositor(),
		frames:  make([]render.SideFrame, 0, 2),
	}, nil
}

// Prime paints the background at full opacity and the grid once.
func (s *Simulator) Prime() {
	s.comp.Clear(s.surface, s.snap.Common)
}

// Tick advances the active sides by a wall delta and paints one frame. Inactive
// sides are neither advanced nor drawn.
func (s *Simulator) Tick(wall time.Duration) {
	wall = ClampDelta(wall)

	s.frames = s.frames[:0]
	for _, side := range s.snap.Active() {
		pos := dynamo.Step(&side.Rotation, wall, s.snap.Common)
		s.frames = append(s.frames, render.SideFrame{Style: side.Style, Pos: pos})
	}

	s.comp.Compose(s.surface, s.snap.Common, s.frames)
	s.ticks++
}

// Run primes the surface and ticks n times at a fixed wall delta. onFrame, if set,
// is called after every tick.
func (s *Simulator) Run(ctx context.Context, n int, wall time.Duration, onFrame func(*Simulator)) error {
	s.Prime()
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		s.Tick(wall)
		if onFrame != nil {
			onFrame(s)
		}
	}
	return nil
}

// Snapshot returns a copy of the live snapshot.
func (s *Simulator) Snapshot() config.Params { return s.snap }

// Positions derives the current positions of the active sides without advancing.
func (s *Simulator) Positions() []dynamo.Positions {
	active := s.snap.Active()
	out := make([]dynamo.Positions, len(active))
	for i, side := range active {
		out[i] = dynamo.Derive(side.Rotation, s.snap.Common.Scale)
	}
	return out
}

func (s *Simulator) Ticks() int { return s.ticks }

func (s *Simulator) Surface() render.Surface { return s.surface }
