package watch

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/spaggo/internal/portal"
)

// Snapshot is the latest state seen by the watcher.
type Snapshot struct {
	Grades              []portal.Grade
	Primed              bool // a first successful fetch has set the baseline
	Checks              int
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline reports whether the portal has failed for multiple checks in a row.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store tracks which grade events have been seen.
type Store struct {
	mu       sync.RWMutex
	seen     map[int]struct{}
	snapshot Snapshot
}

// Update records the outcome of a check and returns grades not seen before.
// The first successful update only sets the baseline and returns nothing.
// When err is non-nil the previous grades are kept and the error recorded.
func (s *Store) Update(grades []portal.Grade, err error) []portal.Grade {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Checks++
	s.snapshot.LastUpdated = time.Now()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return nil
	}

	if s.seen == nil {
		s.seen = make(map[int]struct{}, len(grades))
	}
	var fresh []portal.Grade
	for _, g := range grades {
		if _, ok := s.seen[g.EvtID]; ok {
			continue
		}
		s.seen[g.EvtID] = struct{}{}
		if s.snapshot.Primed {
			fresh = append(fresh, g)
		}
	}

	s.snapshot.Grades = cloneGrades(grades)
	s.snapshot.Primed = true
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
	return fresh
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Grades = cloneGrades(s.snapshot.Grades)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneGrades(items []portal.Grade) []portal.Grade {
	if len(items) == 0 {
		return nil
	}
	dup := make([]portal.Grade, len(items))
	copy(dup, items)
	return dup
}
