package rules

import (
	"log/slog"

	"github.com/nstehr/blitz/blitz-core/config"
	"github.com/nstehr/blitz/blitz-core/coord"
	"github.com/nstehr/blitz/blitz-core/model"
	"github.com/nstehr/blitz/blitz-core/terrain"
)

// Turn is the state shared by every unit decision within one turn. It is
// built fresh from each snapshot and mutated only by the sequential
// decision pass, in unit-ID order.
type Turn struct {
	Map      model.GameMap
	Crew     model.Crew
	Occupied *terrain.Set
	Tuning   config.Tuning

	Roster       []model.Unit // every controlled unit, by ID
	Gatherers    []model.Unit // by ID
	Transporters []model.Unit // by ID

	// Assignment maps transporter ID → gatherer ID.
	Assignment map[int]int

	surplus map[int]bool
	claimed *terrain.Set // mines and mining spots already targeted

	Chosen  *coord.Claims  // next steps taken by gatherers
	Arbiter *coord.Arbiter // destinations wanted by transporters
}

func newTurn(gm model.GameMessage, crew model.Crew, occ *terrain.Set, t config.Tuning) *Turn {
	turn := &Turn{
		Map:          gm.Map,
		Crew:         crew,
		Occupied:     occ,
		Tuning:       t,
		Roster:       crew.UnitsByID(),
		Gatherers:    crew.OfType(model.Miner),
		Transporters: crew.OfType(model.Cart),
		claimed:      terrain.NewSet(),
		Chosen:       coord.NewClaims(),
		Arbiter:      coord.NewArbiter(t.CorridorPrefix),
	}
	turn.Assignment = assignTransporters(turn.Gatherers, turn.Transporters)
	turn.surplus = make(map[int]bool)
	for _, u := range surplusGatherers(turn.Gatherers, turn.Transporters) {
		turn.surplus[u.ID] = true
	}
	return turn
}

// assignTransporters pairs transporters with gatherers round-robin by index,
// so when transporters outnumber gatherers several share one gatherer.
// With no gatherers the assignment is empty.
func assignTransporters(gatherers, transporters []model.Unit) map[int]int {
	out := make(map[int]int, len(transporters))
	if len(gatherers) == 0 {
		return out
	}
	for i, tr := range transporters {
		out[tr.ID] = gatherers[i%len(gatherers)].ID
	}
	return out
}

// surplusGatherers returns the gatherers no transporter can serve this
// turn: the last (gatherers - transporters) of the roster. They deliver to
// base themselves.
func surplusGatherers(gatherers, transporters []model.Unit) []model.Unit {
	n := max(len(gatherers)-len(transporters), 0)
	return gatherers[len(gatherers)-n:]
}

func (t *Turn) IsSurplus(id int) bool { return t.surplus[id] }

func (t *Turn) SurplusCount() int { return len(t.surplus) }

// AssignedGatherer resolves a transporter's gatherer. An assignment that
// points at a unit missing from the roster is treated as no assignment.
func (t *Turn) AssignedGatherer(transporterID int) (model.Unit, bool) {
	gid, ok := t.Assignment[transporterID]
	if !ok {
		return model.Unit{}, false
	}
	for _, g := range t.Gatherers {
		if g.ID == gid {
			return g, true
		}
	}
	slog.Warn("transporter assigned to missing gatherer", "transporter", transporterID, "gatherer", gid)
	return model.Unit{}, false
}

// TransportersFor returns the transporters assigned to a gatherer, by ID.
func (t *Turn) TransportersFor(gathererID int) []model.Unit {
	var out []model.Unit
	for _, tr := range t.Transporters {
		if gid, ok := t.Assignment[tr.ID]; ok && gid == gathererID {
			out = append(out, tr)
		}
	}
	return out
}

// Claim marks a mine or mining spot as taken for the rest of the turn.
func (t *Turn) Claim(p model.Position) { t.claimed.Add(p) }

func (t *Turn) IsClaimed(p model.Position) bool { return t.claimed.Has(p) }
