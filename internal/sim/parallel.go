package sim

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/san-kum/poitune/internal/config"
	"github.com/san-kum/poitune/internal/render"
)

// GalleryEntry is one independent render job. Capture, if set, runs after every
// frame on the entry's goroutine.
type GalleryEntry struct {
	Name    string
	Params  config.Params
	Surface render.Surface
	Capture func(frame int)
}

// Gallery renders several entries concurrently, one goroutine and one surface each.
type Gallery struct {
	frames int
	delta  time.Duration
}

func NewGallery(frames int, delta time.Duration) *Gallery {
	return &Gallery{frames: frames, delta: delta}
}

// Run fails with ErrFrameDelta before rendering anything when the delta would be
// clamped by Tick.
func (g *Gallery) Run(ctx context.Context, entries []GalleryEntry) ([]*Simulator, error) {
	if g.delta <= 0 || g.delta > MaxFrameDelta {
		return nil, fmt.Errorf("%w: %v (max %v)", ErrFrameDelta, g.delta, MaxFrameDelta)
	}

	sims := make([]*Simulator, len(entries))
	errs := make([]error, len(entries))

	var wg sync.WaitGroup
	for i := range entries {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			e := entries[idx]
			s, err := New(e.Params, e.Surface)
			if err != nil {
				errs[idx] = &RenderError{Name: e.Name, Wrapped: err}
				return
			}

			frame := 0
			err = s.Run(ctx, g.frames, g.delta, func(*Simulator) {
				frame++
				if e.Capture != nil {
					e.Capture(frame)
				}
			})
			if err != nil {
				errs[idx] = &RenderError{Name: e.Name, Frame: frame, Wrapped: err}
				return
			}
			sims[idx] = s
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return sims, nil
}
