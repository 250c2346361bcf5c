package terrain

import (
	"cmp"
	"slices"

	"github.com/nstehr/blitz/blitz-core/model"
)

// PathMap holds the shortest paths from one unit's position to every
// position it can reach this turn. It is built once by BuildPathMap and is
// read-only afterwards.
//
// A unit may only pass through walkable tiles, but a path may end one step
// onto anything: a mine, a base, or another unit. Those terminal tiles are
// recorded but never expanded, which is what lets "go next to X" queries
// work for mines and bases.
type PathMap struct {
	m      model.GameMap
	occ    *Set
	start  model.Position
	dist   []int // -1 = no path
	parent []int
}

// BuildPathMap runs a breadth-first search from start over m. Neighbours
// are visited west, north, east, south; among equal-length paths the first
// discovered in that order wins. Cost is O(cells).
func BuildPathMap(m model.GameMap, occ *Set, start model.Position) *PathMap {
	n := m.Size() * m.Size()
	pm := &PathMap{
		m:      m,
		occ:    occ,
		start:  start,
		dist:   make([]int, n),
		parent: make([]int, n),
	}
	for i := range pm.dist {
		pm.dist[i] = -1
		pm.parent[i] = -1
	}
	if !m.Exists(start) {
		return pm
	}

	si := m.Index(start)
	pm.dist[si] = 0
	queue := []model.Position{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		ci := m.Index(cur)

		for _, nb := range cur.Neighbors() {
			if !m.Exists(nb) {
				continue
			}
			ni := m.Index(nb)
			if pm.dist[ni] >= 0 {
				continue
			}
			pm.dist[ni] = pm.dist[ci] + 1
			pm.parent[ni] = ci
			if Walkable(m, occ, nb) {
				queue = append(queue, nb)
			}
		}
	}
	return pm
}

func (pm *PathMap) Start() model.Position { return pm.start }

// HasPath reports whether any path (walk-through or terminal) reaches p.
func (pm *PathMap) HasPath(p model.Position) bool {
	if p == pm.start {
		return true
	}
	if !pm.m.Exists(p) {
		return false
	}
	return pm.dist[pm.m.Index(p)] >= 0
}

// Reachable is stricter than HasPath: the destination must also be an
// empty tile, so a unit is never told to move onto a mine or base.
func (pm *PathMap) Reachable(p model.Position) bool {
	return pm.HasPath(p) && pm.m.Is(p, model.Empty)
}

// DistanceTo returns the number of steps to p; 0 for the start.
func (pm *PathMap) DistanceTo(p model.Position) (int, bool) {
	if p == pm.start {
		return 0, true
	}
	if !pm.HasPath(p) {
		return 0, false
	}
	return pm.dist[pm.m.Index(p)], true
}

// PathTo returns the path from the start to p, both inclusive.
func (pm *PathMap) PathTo(p model.Position) ([]model.Position, bool) {
	if p == pm.start {
		return []model.Position{pm.start}, true
	}
	if !pm.HasPath(p) {
		return nil, false
	}
	path := make([]model.Position, pm.dist[pm.m.Index(p)]+1)
	size := pm.m.Size()
	for i, idx := len(path)-1, pm.m.Index(p); i >= 0; i-- {
		path[i] = model.Position{X: idx / size, Y: idx % size}
		idx = pm.parent[idx]
	}
	return path, true
}

// Neighbors returns the on-map neighbours of p in the fixed order.
func (pm *PathMap) Neighbors(p model.Position) []model.Position {
	out := make([]model.Position, 0, 4)
	for _, nb := range p.Neighbors() {
		if pm.m.Exists(nb) {
			out = append(out, nb)
		}
	}
	return out
}

// IsNeighboring reports whether p is one step from the unit's start.
func (pm *PathMap) IsNeighboring(p model.Position) bool {
	return pm.m.Exists(p) && pm.start.Adjacent(p)
}

// PositionsOfType lists positions of tile type t that have a path, ordered by
// distance, then x, then y.
func (pm *PathMap) PositionsOfType(t model.TileType) []model.Position {
	var out []model.Position
	for _, p := range pm.m.Positions() {
		if pm.m.Is(p, t) && pm.HasPath(p) {
			out = append(out, p)
		}
	}
	pm.sortByDistance(out)
	return out
}

// ClosestPositionOfType returns the first of PositionsOfType(t).
func (pm *PathMap) ClosestPositionOfType(t model.TileType) (model.Position, bool) {
	ps := pm.PositionsOfType(t)
	if len(ps) == 0 {
		return model.Position{}, false
	}
	return ps[0], true
}

// MineablePositions lists the free standing spots next to a mine that the
// unit can walk to, nearest first. The unit's own tile is excluded since
// it is occupied by the unit itself; use CanMineFrom for that case.
func (pm *PathMap) MineablePositions() []model.Position {
	var out []model.Position
	for _, p := range pm.m.Positions() {
		if !pm.HasPath(p) || !Walkable(pm.m, pm.occ, p) {
			continue
		}
		if pm.CanMineFrom(p) {
			out = append(out, p)
		}
	}
	pm.sortByDistance(out)
	return out
}

// CanMineFrom reports whether a mine is adjacent to p.
func (pm *PathMap) CanMineFrom(p model.Position) bool {
	_, ok := pm.AdjacentOfType(p, model.Mine)
	return ok
}

// AdjacentOfType returns the first neighbour of p, in the fixed order, whose
// tile type is t.
func (pm *PathMap) AdjacentOfType(p model.Position, t model.TileType) (model.Position, bool) {
	for _, nb := range p.Neighbors() {
		if pm.m.Is(nb, t) {
			return nb, true
		}
	}
	return model.Position{}, false
}

func (pm *PathMap) sortByDistance(ps []model.Position) {
	slices.SortFunc(ps, func(a, b model.Position) int {
		da, _ := pm.DistanceTo(a)
		db, _ := pm.DistanceTo(b)
		return cmp.Or(cmp.Compare(da, db), cmp.Compare(a.X, b.X), cmp.Compare(a.Y, b.Y))
	})
}
