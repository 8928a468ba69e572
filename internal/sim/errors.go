package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSurface is returned when a simulator is built without a drawing target.
	ErrNoSurface = errors.New("sim: render surface unavailable")

	// ErrLoopRunning is returned by Start on a loop that was already started.
	ErrLoopRunning = errors.New("sim: loop already started")

	// ErrFrameDelta is returned by Gallery.Run when the per-frame delta is not in
	// (0, MaxFrameDelta].
	ErrFrameDelta = errors.New("sim: frame delta out of range")
)

// RenderError tags an error with the gallery entry that produced it.
type RenderError struct {
	Name    string
	Frame   int
	Wrapped error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("sim: %s at frame %d: %v", e.Name, e.Frame, e.Wrapped)
}

func (e *RenderError) Unwrap() error {
	return e.Wrapped
}
