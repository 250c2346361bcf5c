package rules

import (
	"github.com/expr-lang/expr/vm"
	"github.com/nstehr/blitz/blitz-core/model"
)

// ActionFunc produces a unit's action once its rule's condition holds.
// It may record claims or move requests on the turn.
type ActionFunc func(env RuleEnv) model.UnitAction

// Rule is the atomic unit of role behaviour: a condition → action pair.
// For each unit the engine fires only the highest-priority rule of the
// unit's role whose condition holds.
type Rule struct {
	Name         string         // human-readable identifier
	Priority     int            // higher = evaluated first
	Role         model.UnitType // unit type the rule applies to
	ConditionSrc string         // expr source (preserved for logging)
	program      *vm.Program    // compiled bytecode
	Action       ActionFunc
}
