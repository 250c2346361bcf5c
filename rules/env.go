package rules

import (
	"github.com/nstehr/blitz/blitz-core/model"
	"github.com/nstehr/blitz/blitz-core/terrain"
)

// RuleEnv is everything one unit's rules may look at: the unit, its
// freshly built PathMap, and the shared turn. Its methods are callable
// from expr conditions.
type RuleEnv struct {
	Unit  model.Unit
	Paths *terrain.PathMap
	Turn  *Turn
}

func (e RuleEnv) Carried() int { return e.Unit.Blitzium }

func (e RuleEnv) IsSurplus() bool { return e.Turn.IsSurplus(e.Unit.ID) }

func (e RuleEnv) NextToBase() bool { return e.Paths.IsNeighboring(e.Turn.Crew.HomeBase) }

func (e RuleEnv) NextToMine() bool { return e.Paths.CanMineFrom(e.Unit.Position) }

func (e RuleEnv) GathererCount() int { return len(e.Turn.Gatherers) }

// HasAdjacentTransporter reports whether one of this gatherer's assigned
// transporters is standing next to it.
func (e RuleEnv) HasAdjacentTransporter() bool {
	_, ok := e.adjacentTransporter()
	return ok
}

// HasMineTarget reports whether a mining spot is still unclaimed.
func (e RuleEnv) HasMineTarget() bool {
	_, ok := e.mineTarget()
	return ok
}

func (e RuleEnv) HasAssignedGatherer() bool {
	_, ok := e.Turn.AssignedGatherer(e.Unit.ID)
	return ok
}

func (e RuleEnv) AssignedGathererReachable() bool {
	g, ok := e.Turn.AssignedGatherer(e.Unit.ID)
	return ok && e.Paths.Reachable(g.Position)
}

func (e RuleEnv) NextToAssignedGatherer() bool {
	g, ok := e.Turn.AssignedGatherer(e.Unit.ID)
	return ok && e.Paths.IsNeighboring(g.Position)
}

func (e RuleEnv) adjacentTransporter() (model.Unit, bool) {
	for _, tr := range e.Turn.TransportersFor(e.Unit.ID) {
		if e.Paths.IsNeighboring(tr.Position) {
			return tr, true
		}
	}
	return model.Unit{}, false
}

func (e RuleEnv) mineTarget() (model.Position, bool) {
	for _, p := range e.Paths.MineablePositions() {
		if !e.Turn.IsClaimed(p) {
			return p, true
		}
	}
	return model.Position{}, false
}

// moveToward issues an immediate single step toward dest, claiming the
// step so no later unit this turn takes the same tile. Anything that
// prevents a clean step (already there, no path, next to a solid target,
// tile taken) yields NONE.
func (e RuleEnv) moveToward(dest model.Position) model.UnitAction {
	if e.Unit.Position == dest {
		return model.Idle(e.Unit)
	}
	path, ok := e.Paths.PathTo(dest)
	if !ok {
		return model.Idle(e.Unit)
	}
	next := path[1]
	if !terrain.Walkable(e.Turn.Map, e.Turn.Occupied, next) {
		return model.Idle(e.Unit)
	}
	if !e.Turn.Chosen.Claim(next) {
		return model.Idle(e.Unit)
	}
	return model.Move(e.Unit, next)
}
