package sim

import (
	"context"
	"io"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/san-kum/poitune/internal/metrics"
)

// LoopOptions configures a Loop. Zero values pick the real clock, a ticker at the
// snapshot's fps and a discarding logger.
type LoopOptions struct {
	Clock Clock
	// Ticks replaces the internal ticker when set.
	Ticks <-chan time.Time
	// OnFrame runs on the loop goroutine after every tick.
	OnFrame func(*Simulator)
	// Metrics observe every frame before OnFrame runs.
	Metrics []metrics.Metric
	Logger  *log.Logger
}

// Loop drives one Simulator from a single goroutine. A loop runs at most once:
// restarting means building a new Simulator from fresh parameters.
type Loop struct {
	sim     *Simulator
	clock   Clock
	ticks   <-chan time.Time
	onFrame func(*Simulator)
	metrics []metrics.Metric
	logger  *log.Logger

	stopChan chan struct{}
	stopOnce sync.Once
	done     chan struct{}
	wg       sync.WaitGroup
	started  atomic.Bool
	count    atomic.Int64
}

func NewLoop(s *Simulator, opts LoopOptions) *Loop {
	l := &Loop{
		sim:      s,
		clock:    opts.Clock,
		ticks:    opts.Ticks,
		onFrame:  opts.OnFrame,
		metrics:  opts.Metrics,
		logger:   opts.Logger,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
	if l.clock == nil {
		l.clock = SystemClock{}
	}
	if l.logger == nil {
		l.logger = log.New(io.Discard, "", 0)
	}
	return l
}

// Interval is the tick period for an advisory frame rate.
func Interval(fps float64) time.Duration {
	if fps <= 0 {
		fps = 1
	}
	return time.Duration(float64(time.Second) / fps)
}

// Start clears the surface and launches the tick goroutine. It returns
// ErrLoopRunning if the loop was started before.
func (l *Loop) Start(ctx context.Context) error {
	if !l.started.CompareAndSwap(false, true) {
		return ErrLoopRunning
	}

	var ticker *time.Ticker
	ticks := l.ticks
	if ticks == nil {
		ticker = time.NewTicker(Interval(l.sim.snap.Common.FPS))
		ticks = ticker.C
	}

	l.sim.Prime()
	l.wg.Add(1)
	go l.run(ctx, ticks, ticker, l.clock.Now())
	return nil
}

// Stop ends the loop and waits for the goroutine to exit. No tick fires after Stop
// returns. Safe to call more than once and on a loop that never started.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopChan)
	})
	l.wg.Wait()
}

// Done is closed once the tick goroutine has exited.
func (l *Loop) Done() <-chan struct{} { return l.done }

// Ticks reports how many frames were painted.
func (l *Loop) Ticks() int64 { return l.count.Load() }

func (l *Loop) run(ctx context.Context, ticks <-chan time.Time, ticker *time.Ticker, last time.Time) {
	defer l.wg.Done()
	defer close(l.done)
	if ticker != nil {
		defer ticker.Stop()
	}

	for {
		select {
		case <-l.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticks:
		}

		// a tick and a stop can be ready together
		select {
		case <-l.stopChan:
			return
		default:
		}

		now := l.clock.Now()
		dt := now.Sub(last)
		last = now

		l.sim.Tick(dt)
		n := l.count.Add(1)
		l.logger.Printf("frame %d dt=%v", n, dt)

		if len(l.metrics) > 0 {
			pos := l.sim.Positions()
			for _, m := range l.metrics {
				m.Observe(dt, pos)
			}
		}

		if l.onFrame != nil {
			l.onFrame(l.sim)
		}
	}
}
