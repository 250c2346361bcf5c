package rules

import (
	"fmt"

	"github.com/nstehr/blitz/blitz-core/config"
	"github.com/nstehr/blitz/blitz-core/model"
)

// CompileRoles generates the gatherer and transporter rule sets from the
// tuning thresholds. Conditions are built with fmt.Sprintf over integers
// only, so they always compile.
//
// Gatherer order: surplus delivery, feeding a transporter, mining in
// place, walking to a free mining spot, idling. Feeding outranks mining so
// a loaded gatherer hands off as soon as its transporter arrives.
func CompileRoles(t config.Tuning) []*Rule {
	g := t.Gatherer
	var rules []*Rule

	// --- Gatherer ---

	rules = append(rules, &Rule{
		Name:         "gatherer-surplus-drop",
		Priority:     1000,
		Role:         model.Miner,
		ConditionSrc: fmt.Sprintf(`IsSurplus() && Carried() > %d && NextToBase()`, g.SurplusDropMin),
		Action:       ActionDropAtBase,
	})

	rules = append(rules, &Rule{
		Name:         "gatherer-surplus-return",
		Priority:     990,
		Role:         model.Miner,
		ConditionSrc: fmt.Sprintf(`IsSurplus() && Carried() > %d`, g.SurplusDropMin),
		Action:       ActionReturnToBase,
	})

	rules = append(rules, &Rule{
		Name:         "gatherer-feed-transporter",
		Priority:     900,
		Role:         model.Miner,
		ConditionSrc: fmt.Sprintf(`Carried() >= %d && HasAdjacentTransporter()`, g.TransferMin),
		Action:       ActionFeedTransporter,
	})

	rules = append(rules, &Rule{
		Name:         "gatherer-mine",
		Priority:     800,
		Role:         model.Miner,
		ConditionSrc: fmt.Sprintf(`Carried() < %d && NextToMine()`, g.MineCap),
		Action:       ActionMine,
	})

	rules = append(rules, &Rule{
		Name:         "gatherer-seek-mine",
		Priority:     700,
		Role:         model.Miner,
		ConditionSrc: fmt.Sprintf(`Carried() < %d && !NextToMine() && HasMineTarget()`, g.TransferMin),
		Action:       ActionSeekMine,
	})

	rules = append(rules, &Rule{
		Name:         "gatherer-idle",
		Priority:     0,
		Role:         model.Miner,
		ConditionSrc: `true`,
		Action:       ActionIdle,
	})

	// --- Transporter ---
	// Transporter moves are requests; the arbiter turns them into steps
	// after every unit has decided.

	drop := t.Transporter.DropMin
	rules = append(rules, &Rule{
		Name:         "transporter-drop",
		Priority:     1000,
		Role:         model.Cart,
		ConditionSrc: fmt.Sprintf(`Carried() > %d && NextToBase()`, drop),
		Action:       ActionDropAtBase,
	})

	rules = append(rules, &Rule{
		Name:         "transporter-return",
		Priority:     990,
		Role:         model.Cart,
		ConditionSrc: fmt.Sprintf(`Carried() > %d`, drop),
		Action:       ActionRequestBase,
	})

	rules = append(rules, &Rule{
		Name:         "transporter-no-gatherers",
		Priority:     900,
		Role:         model.Cart,
		ConditionSrc: `GathererCount() == 0`,
		Action:       ActionIdle,
	})

	rules = append(rules, &Rule{
		Name:         "transporter-follow-only-gatherer",
		Priority:     890,
		Role:         model.Cart,
		ConditionSrc: `GathererCount() == 1`,
		Action:       ActionRequestOnlyGatherer,
	})

	// Waiting next to the gatherer instead of on top of it keeps the
	// mining spot free.
	rules = append(rules, &Rule{
		Name:         "transporter-wait",
		Priority:     800,
		Role:         model.Cart,
		ConditionSrc: `!HasAssignedGatherer() || !AssignedGathererReachable() || NextToAssignedGatherer()`,
		Action:       ActionIdle,
	})

	rules = append(rules, &Rule{
		Name:         "transporter-follow",
		Priority:     700,
		Role:         model.Cart,
		ConditionSrc: `HasAssignedGatherer()`,
		Action:       ActionRequestAssignedGatherer,
	})

	rules = append(rules, &Rule{
		Name:         "transporter-idle",
		Priority:     0,
		Role:         model.Cart,
		ConditionSrc: `true`,
		Action:       ActionIdle,
	})

	return rules
}

// DefaultRules compiles the role rules with default tuning.
func DefaultRules() []*Rule {
	return CompileRoles(config.Default())
}
