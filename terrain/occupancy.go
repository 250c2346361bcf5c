package terrain

import "github.com/nstehr/blitz/blitz-core/model"

// DefaultEnemyBaseBuffer is the half-width of the square kept clear around
// every enemy home base.
const DefaultEnemyBaseBuffer = 4

// NewOccupancy collects every position the BFS must not pass through this
// turn: each unit of each crew, plus a (2*buffer+1)-wide square around every
// enemy home base, clipped to the map. It is a snapshot of the turn start
// and never reflects moves decided during the turn.
func NewOccupancy(gm model.GameMessage, buffer int) *Set {
	return occupancy(gm, buffer, func(model.Crew) bool { return true })
}

// NewForeignOccupancy is NewOccupancy without our own crew's units. It
// answers questions about the terrain our units could use once they move,
// such as how many mining spots surround the home base.
func NewForeignOccupancy(gm model.GameMessage, buffer int) *Set {
	return occupancy(gm, buffer, func(c model.Crew) bool { return c.ID != gm.CrewID })
}

func occupancy(gm model.GameMessage, buffer int, include func(model.Crew) bool) *Set {
	occ := NewSet()
	for _, c := range gm.Crews {
		if !include(c) {
			continue
		}
		for _, u := range c.UnitsByID() {
			occ.Add(u.Position)
		}
	}
	if buffer < 0 {
		return occ
	}
	for _, c := range gm.Enemies() {
		for dx := -buffer; dx <= buffer; dx++ {
			for dy := -buffer; dy <= buffer; dy++ {
				p := c.HomeBase.Add(dx, dy)
				if gm.Map.Exists(p) {
					occ.Add(p)
				}
			}
		}
	}
	return occ
}

// Walkable reports whether a unit may pass through p: it must be an empty
// tile that nothing occupies.
func Walkable(m model.GameMap, occ *Set, p model.Position) bool {
	return m.Is(p, model.Empty) && !occ.Has(p)
}
