// Package store holds the user-facing parameter set between loop restarts.
package store

import (
	"math"
	"sync"

	"github.com/san-kum/poitune/internal/config"
)

// Store is the single mutable copy of the parameters. Every write bumps the
// revision so hosts know when to rebuild their loop. Safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	params   config.Params
	scenario string
	rev      uint64
}

// New copies p, or the defaults when p is nil.
func New(p *config.Params) *Store {
	if p == nil {
		p = config.DefaultParams()
	}
	s := &Store{params: *p}
	s.params.Sanitize()
	return s
}

// Mirror returns the right side that sync derives from a left side: a verbatim copy
// with both angles shifted by π.
func Mirror(left config.Side) config.Side {
	right := left
	right.Rotation.AngleHand += math.Pi
	right.Rotation.AnglePoi += math.Pi
	return right
}

func (s *Store) Params() config.Params {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params
}

func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rev
}

// Scenario is the name of the last applied scenario, empty after Reset.
func (s *Store) Scenario() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scenario
}

func (s *Store) Sync() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params.Sync
}

// SetSync toggles mirroring. Existing sides are left as they are.
func (s *Store) SetSync(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.Sync = on
	s.rev++
}

// SetLeft commits a left side. With sync on, right is overwritten by its mirror.
func (s *Store) SetLeft(side config.Side) {
	s.UpdateLeft(func(l *config.Side) { *l = side })
}

// UpdateLeft edits the left side in place, then applies sync.
func (s *Store) UpdateLeft(fn func(*config.Side)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	left := s.params.Left
	fn(&left)
	left.Sanitize()

	s.params.Left = left
	if s.params.Sync {
		s.params.Right = Mirror(left)
	}
	s.rev++
}

// SetRight commits a right side. Right edits never reach left.
func (s *Store) SetRight(side config.Side) {
	s.UpdateRight(func(r *config.Side) { *r = side })
}

func (s *Store) UpdateRight(fn func(*config.Side)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	right := s.params.Right
	fn(&right)
	right.Sanitize()
	s.params.Right = right
	s.rev++
}

func (s *Store) SetCommon(c config.Common) {
	s.UpdateCommon(func(cur *config.Common) { *cur = c })
}

func (s *Store) UpdateCommon(fn func(*config.Common)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.params.Common
	fn(&c)
	c.Sanitize()
	s.params.Common = c
	s.rev++
}

// ApplyScenario replaces both sides, merges the scenario's common overrides and
// turns sync off.
func (s *Store) ApplyScenario(name string) error {
	sc, err := config.GetScenario(name)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.params.Left = sc.Left
	s.params.Right = sc.Right
	s.params.Common = sc.Common.Merge(s.params.Common)
	s.params.Common.Sanitize()
	s.params.Sync = false
	s.scenario = sc.Name
	s.rev++
	return nil
}

// Reset restores the defaults and turns sync off.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.params = *config.DefaultParams()
	s.scenario = ""
	s.rev++
}
