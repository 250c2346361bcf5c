package terrain

import "github.com/nstehr/blitz/blitz-core/model"

// PathAvoiding finds a shortest path from start to dest like BuildPathMap,
// but additionally treats every position in restricted as impassable, even
// as a final step. It does not consult any cached PathMap. A false result
// means no such path exists this turn.
func PathAvoiding(m model.GameMap, occ *Set, start, dest model.Position, restricted *Set) ([]model.Position, bool) {
	if start == dest {
		return []model.Position{start}, true
	}
	if !m.Exists(start) || !m.Exists(dest) || restricted.Has(dest) {
		return nil, false
	}

	n := m.Size() * m.Size()
	parent := make([]int, n)
	for i := range parent {
		parent[i] = -1
	}
	si := m.Index(start)
	parent[si] = si

	queue := []model.Position{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		ci := m.Index(cur)

		for _, nb := range cur.Neighbors() {
			if !m.Exists(nb) || restricted.Has(nb) {
				continue
			}
			ni := m.Index(nb)
			if parent[ni] >= 0 {
				continue
			}
			parent[ni] = ci
			if nb == dest {
				return unwind(m, parent, si, ni), true
			}
			if Walkable(m, occ, nb) {
				queue = append(queue, nb)
			}
		}
	}
	return nil, false
}

func unwind(m model.GameMap, parent []int, si, di int) []model.Position {
	size := m.Size()
	var rev []model.Position
	for idx := di; ; idx = parent[idx] {
		rev = append(rev, model.Position{X: idx / size, Y: idx % size})
		if idx == si {
			break
		}
	}
	path := make([]model.Position, len(rev))
	for i, p := range rev {
		path[len(rev)-1-i] = p
	}
	return path
}
