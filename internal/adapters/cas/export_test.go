package cas

import "time"

// SetClock replaces the clock used to stamp markers.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}
