package model

import "fmt"

// Position identifies a grid cell. Comparable, so it can key maps directly.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Neighbors returns the four orthogonal positions in a fixed order
// (west, north, east, south). The order drives BFS tie-breaks, so it must
// never change. Positions may fall off the map; callers filter with Exists.
func (p Position) Neighbors() [4]Position {
	return [4]Position{
		{X: p.X - 1, Y: p.Y},
		{X: p.X, Y: p.Y - 1},
		{X: p.X + 1, Y: p.Y},
		{X: p.X, Y: p.Y + 1},
	}
}

// Adjacent reports whether q is one orthogonal step from p.
func (p Position) Adjacent(q Position) bool {
	dx, dy := p.X-q.X, p.Y-q.Y
	return (dx == 0 && (dy == 1 || dy == -1)) || (dy == 0 && (dx == 1 || dx == -1))
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}
