package agent

import (
	"fmt"
	"slices"

	"github.com/nstehr/blitz/blitz-core/model"
)

// EventKind identifies something that changed between two consecutive turns.
type EventKind string

const (
	EventUnitLost       EventKind = "unit_lost"
	EventUnitJoined     EventKind = "unit_joined"
	EventDelivery       EventKind = "delivery"
	EventCrewEliminated EventKind = "crew_eliminated"
	EventTurnsSkipped   EventKind = "turns_skipped"
)

// Event is a notable change detected by diffing turn snapshots. They are only
// logged; decisions never depend on them.
type Event struct {
	Kind   EventKind
	Tick   int
	Detail string
}

// turnSnapshot captures the diffable fields of our view of a turn.
type turnSnapshot struct {
	tick     int
	found    bool
	units    map[int]model.UnitType
	balance  int
	opponent map[int]string // crew id → name, crews with at least one unit
}

func takeSnapshot(gm model.GameMessage) turnSnapshot {
	snap := turnSnapshot{
		tick:     gm.Tick,
		units:    make(map[int]model.UnitType),
		opponent: make(map[int]string),
	}
	if crew, ok := gm.MyCrew(); ok {
		snap.found = true
		snap.balance = crew.Blitzium
		for _, u := range crew.Units {
			snap.units[u.ID] = u.Type
		}
	}
	for _, c := range gm.Enemies() {
		if len(c.Units) > 0 {
			snap.opponent[c.ID] = c.Name
		}
	}
	return snap
}

// detectEvents compares cur against the previous snapshot. Returns nil if
// prev is nil (first turn) or either turn lacks our crew.
func detectEvents(gm model.GameMessage, cur turnSnapshot, prev *turnSnapshot) []Event {
	if prev == nil || !prev.found || !cur.found {
		return nil
	}

	var events []Event
	add := func(kind EventKind, format string, args ...any) {
		events = append(events, Event{Kind: kind, Tick: gm.Tick, Detail: fmt.Sprintf(format, args...)})
	}

	if gap := cur.tick - prev.tick; gap > 1 {
		add(EventTurnsSkipped, "%d turns missed (%d → %d)", gap-1, prev.tick, cur.tick)
	}

	for _, id := range sortedIDs(prev.units) {
		if _, ok := cur.units[id]; !ok {
			add(EventUnitLost, "%s %d gone", prev.units[id], id)
		}
	}
	for _, id := range sortedIDs(cur.units) {
		if _, ok := prev.units[id]; !ok {
			add(EventUnitJoined, "%s %d joined", cur.units[id], id)
		}
	}

	// Purchases lower the balance in the same turn a delivery raises it, so
	// only a net gain is reported.
	if gained := cur.balance - prev.balance; gained > 0 {
		add(EventDelivery, "balance %d → %d", prev.balance, cur.balance)
	}

	for _, id := range sortedIDs(prev.opponent) {
		if _, ok := cur.opponent[id]; !ok {
			add(EventCrewEliminated, "crew %s (%d) has no units left", prev.opponent[id], id)
		}
	}

	return events
}

func sortedIDs[V any](m map[int]V) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
