package rules

import (
	"testing"

	"github.com/nstehr/blitz/blitz-core/config"
	"github.com/nstehr/blitz/blitz-core/model"
	"github.com/nstehr/blitz/blitz-core/terrain"
)

func TestAssignTransportersRoundRobin(t *testing.T) {
	gatherers := []model.Unit{miner(1, 0, 0, 0), miner(2, 0, 0, 0)}
	transporters := []model.Unit{cart(5, 0, 0, 0), cart(6, 0, 0, 0), cart(7, 0, 0, 0)}

	got := assignTransporters(gatherers, transporters)
	want := map[int]int{5: 1, 6: 2, 7: 1}
	if len(got) != len(want) {
		t.Fatalf("assignment = %v, want %v", got, want)
	}
	for tr, g := range want {
		if got[tr] != g {
			t.Errorf("transporter %d → gatherer %d, want %d", tr, got[tr], g)
		}
	}
}

func TestAssignTransportersNoGatherers(t *testing.T) {
	got := assignTransporters(nil, []model.Unit{cart(5, 0, 0, 0)})
	if len(got) != 0 {
		t.Errorf("assignment = %v, want empty", got)
	}
}

func TestSurplusGatherersFromTail(t *testing.T) {
	gatherers := []model.Unit{miner(1, 0, 0, 0), miner(2, 0, 0, 0), miner(3, 0, 0, 0), miner(4, 0, 0, 0)}

	tests := []struct {
		transporters int
		wantIDs      []int
	}{
		{0, []int{1, 2, 3, 4}},
		{1, []int{2, 3, 4}},
		{3, []int{4}},
		{4, nil},
		{6, nil},
	}
	for _, tc := range tests {
		var trs []model.Unit
		for i := range tc.transporters {
			trs = append(trs, cart(10+i, 0, 0, 0))
		}
		got := surplusGatherers(gatherers, trs)
		if len(got) != len(tc.wantIDs) {
			t.Errorf("surplusGatherers(4 G, %d T) = %d units, want %d", tc.transporters, len(got), len(tc.wantIDs))
			continue
		}
		for i, u := range got {
			if u.ID != tc.wantIDs[i] {
				t.Errorf("surplusGatherers(4 G, %d T)[%d] = %d, want %d", tc.transporters, i, u.ID, tc.wantIDs[i])
			}
		}
	}
}

func TestTurnUsesIDOrderNotSnapshotOrder(t *testing.T) {
	m := model.ParseMap("...", "...", "...")
	gm := snapshot(m, pos(0, 0), 0, cart(9, 0, 0, 0), miner(3, 1, 1, 0), cart(4, 2, 2, 0), miner(2, 2, 0, 0))
	crew, _ := gm.MyCrew()
	turn := newTurn(gm, crew, terrain.NewOccupancy(gm, 0), config.Default())

	if got := turn.Roster[0].ID; got != 2 {
		t.Errorf("Roster[0] = %d, want 2", got)
	}
	// Sorted gatherers [2,3], transporters [4,9].
	if turn.Assignment[4] != 2 || turn.Assignment[9] != 3 {
		t.Errorf("assignment = %v, want 4→2 9→3", turn.Assignment)
	}
	if got := turn.TransportersFor(3); len(got) != 1 || got[0].ID != 9 {
		t.Errorf("TransportersFor(3) = %v, want [9]", got)
	}
}

func TestAssignedGathererMissing(t *testing.T) {
	m := model.ParseMap("...", "...", "...")
	gm := snapshot(m, pos(0, 0), 0, miner(1, 1, 1, 0), cart(2, 2, 2, 0))
	crew, _ := gm.MyCrew()
	turn := newTurn(gm, crew, terrain.NewOccupancy(gm, 0), config.Default())

	// Simulate an inconsistent snapshot: the assignment outlives its gatherer.
	turn.Assignment[2] = 77
	if _, ok := turn.AssignedGatherer(2); ok {
		t.Error("AssignedGatherer should treat a vanished gatherer as unassigned")
	}

	env := RuleEnv{Unit: turn.Transporters[0], Paths: terrain.BuildPathMap(m, turn.Occupied, pos(2, 2)), Turn: turn}
	if env.HasAssignedGatherer() || env.AssignedGathererReachable() || env.NextToAssignedGatherer() {
		t.Error("transporter helpers should all report false for a vanished gatherer")
	}
	if got := ActionRequestAssignedGatherer(env); got.Kind != model.ActionNone {
		t.Errorf("ActionRequestAssignedGatherer = %+v, want NONE", got)
	}
	if turn.Arbiter.Len() != 0 {
		t.Error("no move should be requested for a vanished gatherer")
	}
}
