package model

import (
	"fmt"
	"strings"
)

// TileType classifies a single map cell. Only Empty tiles can be walked
// through; mines and bases are interacted with from an adjacent tile.
type TileType byte

const (
	Empty TileType = 0
	Wall  TileType = 1
	Mine  TileType = 2
	Base  TileType = 3
)

var tileNames = [...]string{
	Empty: "EMPTY",
	Wall:  "WALL",
	Mine:  "MINE",
	Base:  "BASE",
}

func (t TileType) String() string {
	if int(t) < len(tileNames) {
		return tileNames[t]
	}
	return fmt.Sprintf("TileType(%d)", byte(t))
}

func (t TileType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes the server's tile names. Unknown names decode as
// Wall so they are never walked through or mined.
func (t *TileType) UnmarshalText(b []byte) error {
	s := strings.ToUpper(string(b))
	for i, name := range tileNames {
		if name == s {
			*t = TileType(i)
			return nil
		}
	}
	*t = Wall
	return nil
}

// GameMap is the static square map for one turn, indexed Tiles[x][y].
type GameMap struct {
	Tiles [][]TileType `json:"tiles"`
}

// Size returns the side length of the square map.
func (m GameMap) Size() int { return len(m.Tiles) }

// Exists reports whether p lies on the map.
func (m GameMap) Exists(p Position) bool {
	if p.X < 0 || p.X >= len(m.Tiles) {
		return false
	}
	return p.Y >= 0 && p.Y < len(m.Tiles) && p.Y < len(m.Tiles[p.X])
}

// TileTypeAt returns the tile at p. The bool is false for off-map
// positions; that is an ordinary answer, not an error.
func (m GameMap) TileTypeAt(p Position) (TileType, bool) {
	if !m.Exists(p) {
		return Wall, false
	}
	return m.Tiles[p.X][p.Y], true
}

// Is reports whether p exists and holds tile type t.
func (m GameMap) Is(p Position, t TileType) bool {
	tt, ok := m.TileTypeAt(p)
	return ok && tt == t
}

// Index maps an on-map position to a dense index in [0, Size()^2).
// Callers must check Exists first.
func (m GameMap) Index(p Position) int {
	return p.X*len(m.Tiles) + p.Y
}

// Positions lists every on-map position, x-major then y.
func (m GameMap) Positions() []Position {
	var out []Position
	for x := range m.Tiles {
		for y := range m.Tiles[x] {
			out = append(out, Position{X: x, Y: y})
		}
	}
	return out
}

// ParseMap builds a GameMap from rows of text, one character per tile:
// '.' empty, '#' wall, 'M' mine, 'B' base. rows[y][x] addresses (x, y).
func ParseMap(rows ...string) GameMap {
	size := len(rows)
	tiles := make([][]TileType, size)
	for x := range tiles {
		tiles[x] = make([]TileType, size)
	}
	for y, row := range rows {
		for x := 0; x < size && x < len(row); x++ {
			switch row[x] {
			case '#':
				tiles[x][y] = Wall
			case 'M':
				tiles[x][y] = Mine
			case 'B':
				tiles[x][y] = Base
			default:
				tiles[x][y] = Empty
			}
		}
	}
	return GameMap{Tiles: tiles}
}
