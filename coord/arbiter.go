package coord

import (
	"log/slog"
	"slices"

	"github.com/nstehr/blitz/blitz-core/model"
	"github.com/nstehr/blitz/blitz-core/terrain"
)

// Request is one unit's desired destination for this turn.
type Request struct {
	UnitID int
	From   model.Position
	To     model.Position
}

// Arbiter turns desired destinations into single-step moves that never
// collide. Requests are resolved one at a time in unit-ID order; each
// resolved path reserves the walkable tiles among its first few positions
// so later units route around it.
type Arbiter struct {
	prefix   int
	requests []Request
}

// NewArbiter creates an arbiter that looks at prefix positions of each
// resolved path (start included) when reserving.
func NewArbiter(prefix int) *Arbiter {
	if prefix < 2 {
		prefix = 2
	}
	return &Arbiter{prefix: prefix}
}

// Request records a desired destination. A second request for the same
// unit replaces the first.
func (a *Arbiter) Request(unitID int, from, to model.Position) {
	for i := range a.requests {
		if a.requests[i].UnitID == unitID {
			a.requests[i] = Request{UnitID: unitID, From: from, To: to}
			return
		}
	}
	a.requests = append(a.requests, Request{UnitID: unitID, From: from, To: to})
}

func (a *Arbiter) Len() int { return len(a.requests) }

// Resolve returns the next step for every request that has a free path.
// reserved seeds the restricted set with tiles already taken this turn
// (for example the next steps chosen through Claims). Units with no entry
// in the result are blocked and should idle.
func (a *Arbiter) Resolve(m model.GameMap, occ *terrain.Set, reserved []model.Position) map[int]model.Position {
	restricted := terrain.NewSet(reserved...)
	reqs := slices.Clone(a.requests)
	slices.SortFunc(reqs, func(x, y Request) int { return x.UnitID - y.UnitID })

	steps := make(map[int]model.Position, len(reqs))
	for _, r := range reqs {
		if r.From == r.To {
			continue
		}
		path, ok := terrain.PathAvoiding(m, occ, r.From, r.To, restricted)
		if !ok {
			slog.Debug("move blocked", "unit", r.UnitID, "from", r.From, "to", r.To)
			continue
		}
		next := path[1]
		if !terrain.Walkable(m, occ, next) {
			// Already next to a destination that cannot be stepped on.
			continue
		}
		// The start and a solid destination never take a step, so they stay
		// open as destinations for later requests.
		for _, p := range path[:min(a.prefix, len(path))] {
			if terrain.Walkable(m, occ, p) {
				restricted.Add(p)
			}
		}
		steps[r.UnitID] = next
	}
	return steps
}
