package rules

import (
	"log/slog"

	"github.com/nstehr/blitz/blitz-core/model"
)

func ActionIdle(env RuleEnv) model.UnitAction {
	return model.Idle(env.Unit)
}

func ActionDropAtBase(env RuleEnv) model.UnitAction {
	slog.Debug("dropping at base", "unit", env.Unit.ID, "cargo", env.Unit.Blitzium)
	return model.Drop(env.Unit, env.Turn.Crew.HomeBase)
}

func ActionReturnToBase(env RuleEnv) model.UnitAction {
	return env.moveToward(env.Turn.Crew.HomeBase)
}

func ActionFeedTransporter(env RuleEnv) model.UnitAction {
	tr, ok := env.adjacentTransporter()
	if !ok {
		return model.Idle(env.Unit)
	}
	slog.Debug("feeding transporter", "unit", env.Unit.ID, "transporter", tr.ID, "cargo", env.Unit.Blitzium)
	return model.Drop(env.Unit, tr.Position)
}

func ActionMine(env RuleEnv) model.UnitAction {
	mine, ok := env.Paths.AdjacentOfType(env.Unit.Position, model.Mine)
	if !ok {
		return model.Idle(env.Unit)
	}
	env.Turn.Claim(mine)
	return model.MineAt(env.Unit, mine)
}

// ActionSeekMine claims the nearest free mining spot and steps toward it.
// The spot stays claimed even if the step itself is blocked, so two
// gatherers never converge on the same spot.
func ActionSeekMine(env RuleEnv) model.UnitAction {
	spot, ok := env.mineTarget()
	if !ok {
		return model.Idle(env.Unit)
	}
	env.Turn.Claim(spot)
	return env.moveToward(spot)
}

// Transporter moves are requested here and resolved by the arbiter once
// every unit has decided; until then the unit's action is NONE.

func ActionRequestBase(env RuleEnv) model.UnitAction {
	env.Turn.Arbiter.Request(env.Unit.ID, env.Unit.Position, env.Turn.Crew.HomeBase)
	return model.Idle(env.Unit)
}

func ActionRequestOnlyGatherer(env RuleEnv) model.UnitAction {
	if len(env.Turn.Gatherers) == 0 {
		return model.Idle(env.Unit)
	}
	env.Turn.Arbiter.Request(env.Unit.ID, env.Unit.Position, env.Turn.Gatherers[0].Position)
	return model.Idle(env.Unit)
}

func ActionRequestAssignedGatherer(env RuleEnv) model.UnitAction {
	g, ok := env.Turn.AssignedGatherer(env.Unit.ID)
	if !ok {
		return model.Idle(env.Unit)
	}
	env.Turn.Arbiter.Request(env.Unit.ID, env.Unit.Position, g.Position)
	return model.Idle(env.Unit)
}
