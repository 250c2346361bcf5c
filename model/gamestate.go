package model

import "slices"

// UnitType names a purchasable unit kind as the game server spells it.
type UnitType string

const (
	Miner  UnitType = "MINER"  // gatherer: mines and carries
	Cart   UnitType = "CART"   // transporter: ferries cargo to base
	Outlaw UnitType = "OUTLAW" // not controlled by the decision engine
)

// GameMessage is the full world snapshot for one turn. It is never
// mutated while a turn is being decided.
type GameMessage struct {
	Tick   int     `json:"tick"`
	CrewID int     `json:"crewId"`
	Map    GameMap `json:"map"`
	Crews  []Crew  `json:"crews"`
}

type Crew struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	HomeBase Position `json:"homeBase"`
	Units    []Unit   `json:"units"`
	Blitzium int      `json:"blitzium"`
	Prices   Prices   `json:"prices"`
}

type Prices struct {
	Miner  int `json:"MINER"`
	Cart   int `json:"CART"`
	Outlaw int `json:"OUTLAW"`
}

// Of returns the price of unit type t, or false for unknown types.
func (p Prices) Of(t UnitType) (int, bool) {
	switch t {
	case Miner:
		return p.Miner, true
	case Cart:
		return p.Cart, true
	case Outlaw:
		return p.Outlaw, true
	}
	return 0, false
}

type Unit struct {
	ID       int      `json:"id"`
	Type     UnitType `json:"type"`
	Position Position `json:"position"`
	Blitzium int      `json:"blitzium"`
	CrewID   int      `json:"crewId"`
}

// MyCrew returns the crew this engine controls.
func (g GameMessage) MyCrew() (Crew, bool) {
	for _, c := range g.Crews {
		if c.ID == g.CrewID {
			return c, true
		}
	}
	return Crew{}, false
}

// Enemies returns every crew other than the controlled one, in snapshot order.
func (g GameMessage) Enemies() []Crew {
	var out []Crew
	for _, c := range g.Crews {
		if c.ID != g.CrewID {
			out = append(out, c)
		}
	}
	return out
}

// UnitsByID returns a copy of the crew's units sorted by ID.
func (c Crew) UnitsByID() []Unit {
	units := slices.Clone(c.Units)
	slices.SortFunc(units, func(a, b Unit) int { return a.ID - b.ID })
	return units
}

// OfType returns the crew's units of type t sorted by ID.
func (c Crew) OfType(t UnitType) []Unit {
	var out []Unit
	for _, u := range c.UnitsByID() {
		if u.Type == t {
			out = append(out, u)
		}
	}
	return out
}

func (c Crew) CountType(t UnitType) int {
	n := 0
	for _, u := range c.Units {
		if u.Type == t {
			n++
		}
	}
	return n
}

// Unit looks up one of the crew's units by ID.
func (c Crew) Unit(id int) (Unit, bool) {
	for _, u := range c.Units {
		if u.ID == id {
			return u, true
		}
	}
	return Unit{}, false
}
