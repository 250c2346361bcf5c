package coord

import (
	"github.com/nstehr/blitz/blitz-core/model"
	"github.com/nstehr/blitz/blitz-core/terrain"
)

// Claims is the shared "chosen tiles" set for units that commit to their
// next step immediately. The first unit to claim a tile gets it; later
// units in the same turn idle instead of stepping onto it.
type Claims struct {
	chosen *terrain.Set
}

func NewClaims() *Claims {
	return &Claims{chosen: terrain.NewSet()}
}

// Claim reserves p and reports whether it was still free.
func (c *Claims) Claim(p model.Position) bool {
	return c.chosen.Add(p)
}

func (c *Claims) Claimed(p model.Position) bool {
	return c.chosen.Has(p)
}

// Positions returns the claimed tiles in claim order.
func (c *Claims) Positions() []model.Position {
	return c.chosen.Positions()
}
