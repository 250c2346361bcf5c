package terrain

import "github.com/nstehr/blitz/blitz-core/model"

// Set is an insertion-ordered set of positions. Iteration order matters for
// tie-breaks, so nothing in the engine ranges over a bare map of positions.
// A nil *Set behaves as an empty set for reads.
type Set struct {
	index map[model.Position]struct{}
	order []model.Position
}

func NewSet(ps ...model.Position) *Set {
	s := &Set{index: make(map[model.Position]struct{}, len(ps))}
	for _, p := range ps {
		s.Add(p)
	}
	return s
}

// Add inserts p and reports whether it was newly added.
func (s *Set) Add(p model.Position) bool {
	if _, ok := s.index[p]; ok {
		return false
	}
	s.index[p] = struct{}{}
	s.order = append(s.order, p)
	return true
}

func (s *Set) Has(p model.Position) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[p]
	return ok
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Positions returns the members in insertion order.
func (s *Set) Positions() []model.Position {
	if s == nil {
		return nil
	}
	out := make([]model.Position, len(s.order))
	copy(out, s.order)
	return out
}

// Clone returns an independent copy; nil clones to an empty set.
func (s *Set) Clone() *Set {
	c := NewSet()
	if s != nil {
		for _, p := range s.order {
			c.Add(p)
		}
	}
	return c
}
