package sim

import (
	"context"
	"sync"

	"github.com/san-kum/poitune/internal/config"
	"github.com/san-kum/poitune/internal/render"
)

// Runner keeps at most one loop alive on a surface. Restart stops the current loop
// before a new one, built from a fresh snapshot, touches the surface.
type Runner struct {
	mu      sync.Mutex
	surface render.Surface
	opts    LoopOptions
	loop    *Loop
}

func NewRunner(surface render.Surface, opts LoopOptions) *Runner {
	return &Runner{surface: surface, opts: opts}
}

func (r *Runner) Restart(ctx context.Context, p config.Params) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.loop != nil {
		r.loop.Stop()
		r.loop = nil
	}

	s, err := New(p, r.surface)
	if err != nil {
		return err
	}
	for _, m := range r.opts.Metrics {
		m.Reset()
	}
	l := NewLoop(s, r.opts)
	if err := l.Start(ctx); err != nil {
		return err
	}
	r.loop = l
	return nil
}

func (r *Runner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.loop != nil {
		r.loop.Stop()
		r.loop = nil
	}
}

func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loop != nil
}
