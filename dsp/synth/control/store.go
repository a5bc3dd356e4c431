package control

import "sync/atomic"

// Store publishes Params snapshots. Load never blocks or allocates; writers
// replace the whole snapshot. The zero value holds Defaults.
type Store struct {
	p atomic.Pointer[Params]
}

// NewStore returns a Store holding the normalized p.
func NewStore(p Params) *Store {
	s := &Store{}
	s.Store(p)
	return s
}

// Load returns the current snapshot.
func (s *Store) Load() Params {
	if p := s.p.Load(); p != nil {
		return *p
	}
	return Defaults()
}

// Store normalizes p and publishes it.
func (s *Store) Store(p Params) {
	p = p.Normalize()
	s.p.Store(&p)
}

// Update applies fn to a copy of the current snapshot and publishes the
// normalized result. Concurrent updates are retried so none is lost; fn
// may therefore run more than once.
func (s *Store) Update(fn func(*Params)) Params {
	for {
		old := s.p.Load()
		var next Params
		if old != nil {
			next = *old
		} else {
			next = Defaults()
		}
		fn(&next)
		next = next.Normalize()
		if s.p.CompareAndSwap(old, &next) {
			return next
		}
	}
}
