package rules

import (
	"encoding/json"
	"testing"

	"pgregory.net/rapid"

	"github.com/nstehr/blitz/blitz-core/model"
	"github.com/nstehr/blitz/blitz-core/terrain"
)

func drawSnapshot(t *rapid.T) model.GameMessage {
	size := rapid.IntRange(3, 8).Draw(t, "size")
	kinds := rapid.SampledFrom([]model.TileType{model.Empty, model.Empty, model.Empty, model.Empty, model.Wall, model.Mine})
	tiles := make([][]model.TileType, size)
	for x := range tiles {
		tiles[x] = make([]model.TileType, size)
		for y := range tiles[x] {
			tiles[x][y] = kinds.Draw(t, "tile")
		}
	}
	m := model.GameMap{Tiles: tiles}

	spots := rapid.Permutation(m.Positions()).Draw(t, "spots")
	base := spots[0]
	m.Tiles[base.X][base.Y] = model.Base

	n := rapid.IntRange(0, min(8, len(spots)-1)).Draw(t, "units")
	types := rapid.SampledFrom([]model.UnitType{model.Miner, model.Miner, model.Cart, model.Outlaw})
	var units []model.Unit
	for i := range n {
		p := spots[i+1]
		m.Tiles[p.X][p.Y] = model.Empty
		units = append(units, model.Unit{
			ID:       rapid.IntRange(1, 1000).Draw(t, "id")*10 + i, // unique
			Type:     types.Draw(t, "type"),
			Position: p,
			Blitzium: rapid.IntRange(0, 60).Draw(t, "cargo"),
			CrewID:   1,
		})
	}
	return snapshot(m, base, rapid.IntRange(0, 200).Draw(t, "balance"), units...)
}

func TestEvaluateProperties(t *testing.T) {
	engine := newTestEngine(t)
	rapid.Check(t, func(t *rapid.T) {
		gm := drawSnapshot(t)
		crew, _ := gm.MyCrew()
		occ := terrain.NewOccupancy(gm, engine.tuning.EnemyBaseBuffer)

		first, err := engine.Evaluate(gm)
		if err != nil {
			t.Fatalf("Evaluate: %v", err)
		}
		second, err := engine.Evaluate(gm)
		if err != nil {
			t.Fatalf("Evaluate: %v", err)
		}
		a, _ := json.Marshal(first)
		b, _ := json.Marshal(second)
		if string(a) != string(b) {
			t.Fatalf("non-deterministic turn:\n%s\n%s", a, b)
		}

		seen := make(map[int]bool)
		targets := terrain.NewSet()
		buys := 0
		for _, act := range first {
			switch v := act.(type) {
			case model.BuyAction:
				buys++
			case model.UnitAction:
				if seen[v.UnitID] {
					t.Fatalf("unit %d acted twice", v.UnitID)
				}
				seen[v.UnitID] = true
				u, ok := crew.Unit(v.UnitID)
				if !ok {
					t.Fatalf("action for unknown unit %d", v.UnitID)
				}
				if v.Kind != model.ActionMove {
					continue
				}
				if !u.Position.Adjacent(v.Target) {
					t.Fatalf("unit %d moves %v → %v, not a single step", u.ID, u.Position, v.Target)
				}
				if !terrain.Walkable(gm.Map, occ, v.Target) {
					t.Fatalf("unit %d moves onto blocked %v", u.ID, v.Target)
				}
				if !targets.Add(v.Target) {
					t.Fatalf("two units move onto %v", v.Target)
				}
			}
		}
		if len(seen) != len(crew.Units) {
			t.Fatalf("%d unit actions for %d units", len(seen), len(crew.Units))
		}
		if buys > 1 {
			t.Fatalf("%d purchases in one turn", buys)
		}
	})
}
