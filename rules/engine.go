package rules

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/nstehr/blitz/blitz-core/config"
	"github.com/nstehr/blitz/blitz-core/coord"
	"github.com/nstehr/blitz/blitz-core/model"
	"github.com/nstehr/blitz/blitz-core/terrain"
)

// ErrUnknownCrew is returned when the snapshot does not contain the crew
// it says we control.
var ErrUnknownCrew = errors.New("controlled crew not in snapshot")

// Engine runs the compiled role rules against a snapshot each turn and
// produces one action per controlled unit plus at most one purchase.
type Engine struct {
	mu     sync.RWMutex
	rules  []*Rule
	tuning config.Tuning
}

// NewEngine compiles all rule conditions into expr bytecode and sorts by priority.
func NewEngine(rules []*Rule, tuning config.Tuning) (*Engine, error) {
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, err
	}
	return &Engine{rules: compiled, tuning: tuning}, nil
}

// Evaluate decides the whole turn. Units are processed in ID order; each
// gets a PathMap rooted at its own position. The only error is a snapshot
// without our crew; every other problem degrades to NONE for that unit.
func (e *Engine) Evaluate(gm model.GameMessage) ([]model.Action, error) {
	e.mu.RLock()
	rules, tuning := e.rules, e.tuning
	e.mu.RUnlock()

	crew, ok := gm.MyCrew()
	if !ok {
		return nil, fmt.Errorf("crew %d: %w", gm.CrewID, ErrUnknownCrew)
	}

	occ := terrain.NewOccupancy(gm, tuning.EnemyBaseBuffer)
	turn := newTurn(gm, crew, occ, tuning)

	unitActions := make([]model.UnitAction, 0, len(turn.Roster))
	for _, u := range turn.Roster {
		env := RuleEnv{
			Unit:  u,
			Paths: terrain.BuildPathMap(gm.Map, occ, u.Position),
			Turn:  turn,
		}
		unitActions = append(unitActions, decide(rules, env))
	}

	steps := turn.Arbiter.Resolve(gm.Map, occ, turn.Chosen.Positions())
	for i, a := range unitActions {
		if next, ok := steps[a.UnitID]; ok {
			unitActions[i] = model.UnitAction{Kind: model.ActionMove, UnitID: a.UnitID, Target: next}
		}
	}

	actions := make([]model.Action, 0, len(unitActions)+1)
	for _, a := range unitActions {
		actions = append(actions, a)
	}

	// Our own gatherers stand on mining spots; those spots still count.
	homePaths := terrain.BuildPathMap(gm.Map, terrain.NewForeignOccupancy(gm, tuning.EnemyBaseBuffer), crew.HomeBase)
	buy, bought := coord.DecidePurchase(coord.PurchaseInput{
		Gatherers:       len(turn.Gatherers),
		Transporters:    len(turn.Transporters),
		Surplus:         turn.SurplusCount(),
		Balance:         crew.Blitzium,
		Prices:          crew.Prices,
		MaxGatherers:    tuning.Purchase.MaxGatherers,
		MaxTransporters: tuning.Purchase.MaxTransporters,
		MiningSlots:     len(homePaths.MineablePositions()),
	})
	if bought {
		actions = append(actions, model.BuyAction{UnitType: buy})
	}

	logTurn(gm, crew, turn, unitActions, buy)
	return actions, nil
}

// decide fires the highest-priority rule of the unit's role whose condition
// holds. Units with no matching rule (including unknown types) idle.
func decide(rules []*Rule, env RuleEnv) model.UnitAction {
	for _, r := range rules {
		if r.Role != env.Unit.Type {
			continue
		}

		result, err := vm.Run(r.program, env)
		if err != nil {
			slog.Warn("rule condition error", "rule", r.Name, "unit", env.Unit.ID, "error", err)
			continue
		}

		match, ok := result.(bool)
		if !ok || !match {
			continue
		}

		slog.Debug("rule fired", "rule", r.Name, "priority", r.Priority, "unit", env.Unit.ID)
		return r.Action(env)
	}
	return model.Idle(env.Unit)
}

// Retune installs a new tuning together with the role rules built from it.
// Turns already in flight finish with the old pair. If t is invalid or a
// rule fails to compile, the engine keeps what it had.
func (e *Engine) Retune(t config.Tuning) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("retune: %w", err)
	}
	compiled, err := compileRules(CompileRoles(t))
	if err != nil {
		return fmt.Errorf("retune: %w", err)
	}
	e.mu.Lock()
	e.rules = compiled
	e.tuning = t
	e.mu.Unlock()
	slog.Info("tuning applied", "rules", len(compiled), "corridor_prefix", t.CorridorPrefix, "enemy_base_buffer", t.EnemyBaseBuffer)
	return nil
}

func logTurn(gm model.GameMessage, crew model.Crew, turn *Turn, actions []model.UnitAction, buy model.UnitType) {
	kinds := make(map[model.ActionKind]int)
	for _, a := range actions {
		kinds[a.Kind]++
	}
	slog.Info("turn decided",
		"tick", gm.Tick,
		"crew", crew.Name,
		"blitzium", crew.Blitzium,
		"gatherers", len(turn.Gatherers),
		"transporters", len(turn.Transporters),
		"outlaws", crew.CountType(model.Outlaw),
		"surplus", turn.SurplusCount(),
		"moves", kinds[model.ActionMove],
		"mines", kinds[model.ActionMine],
		"drops", kinds[model.ActionDrop],
		"idle", kinds[model.ActionNone],
		"buy", buy,
	)
}

func compileRules(rules []*Rule) ([]*Rule, error) {
	for _, r := range rules {
		prog, err := expr.Compile(r.ConditionSrc, expr.Env(RuleEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", r.Name, err)
		}
		r.program = prog
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})
	return rules, nil
}
