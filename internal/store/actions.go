package store

import (
	"github.com/san-kum/poitune/internal/config"
)

// Action is a single edit bound to a key in the interactive hosts.
type Action int

const (
	NextScenario Action = iota
	PrevScenario
	ToggleSync
	OneLocus
	TwoLoci
	ToggleGrid
	LongerAfterimage
	ShorterAfterimage
	Faster
	Slower
	GrowRadius
	ShrinkRadius
	Reset
)

const (
	RadiusStep     = 5.0
	AfterimageStep = 0.05
	SpeedFactor    = 1.25
)

// Do applies an action. Only scenario actions can fail.
func (s *Store) Do(a Action) error {
	switch a {
	case NextScenario:
		return s.stepScenario(1)
	case PrevScenario:
		return s.stepScenario(-1)
	case ToggleSync:
		s.SetSync(!s.Sync())
	case OneLocus, TwoLoci:
		n := 1
		if a == TwoLoci {
			n = 2
		}
		s.UpdateCommon(func(c *config.Common) { c.NumberOfLocus = n })
	case ToggleGrid:
		s.UpdateCommon(func(c *config.Common) { c.Grid.Show = !c.Grid.Show })
	case LongerAfterimage:
		s.UpdateCommon(func(c *config.Common) { c.Afterimage += AfterimageStep })
	case ShorterAfterimage:
		s.UpdateCommon(func(c *config.Common) { c.Afterimage -= AfterimageStep })
	case Faster:
		s.UpdateCommon(func(c *config.Common) { c.SpeedRate *= SpeedFactor })
	case Slower:
		s.UpdateCommon(func(c *config.Common) { c.SpeedRate /= SpeedFactor })
	case GrowRadius:
		s.UpdateLeft(func(l *config.Side) { l.Rotation.RadiusHand += RadiusStep })
	case ShrinkRadius:
		s.UpdateLeft(func(l *config.Side) { l.Rotation.RadiusHand -= RadiusStep })
	case Reset:
		s.Reset()
	}
	return nil
}

// stepScenario moves through the catalog from the current scenario, wrapping at
// both ends. Without a current scenario it starts before the first one.
func (s *Store) stepScenario(dir int) error {
	names := config.ListScenarios()
	cur := -1
	if dir < 0 {
		cur = 0
	}
	name := s.Scenario()
	for i, n := range names {
		if n == name {
			cur = i
		}
	}
	next := ((cur+dir)%len(names) + len(names)) % len(names)
	return s.ApplyScenario(names[next])
}
