package terrain

import (
	"slices"
	"testing"

	"github.com/nstehr/blitz/blitz-core/model"
)

func TestPathAvoidingDetours(t *testing.T) {
	m := model.ParseMap(
		"....",
		"....",
		"....",
		"....",
	)
	start, dest := pos(0, 0), pos(3, 0)
	restricted := NewSet(pos(1, 0))

	path, ok := PathAvoiding(m, NewSet(start), start, dest, restricted)
	if !ok {
		t.Fatal("expected a detour path")
	}
	want := []model.Position{pos(0, 0), pos(0, 1), pos(1, 1), pos(2, 1), pos(2, 0), pos(3, 0)}
	if !slices.Equal(path, want) {
		t.Errorf("PathAvoiding = %v, want %v", path, want)
	}
}

func TestPathAvoidingBlocked(t *testing.T) {
	m := model.ParseMap(
		"...",
		"###",
		"...",
	)
	start := pos(0, 0)
	if _, ok := PathAvoiding(m, nil, start, pos(0, 2), nil); ok {
		t.Error("PathAvoiding found a path through a wall row")
	}
	if _, ok := PathAvoiding(m, nil, start, pos(2, 0), NewSet(pos(1, 0))); ok {
		t.Error("PathAvoiding found a path through a restricted tile")
	}
	if _, ok := PathAvoiding(m, nil, start, pos(1, 0), NewSet(pos(1, 0))); ok {
		t.Error("PathAvoiding ended on a restricted destination")
	}
	if _, ok := PathAvoiding(m, nil, start, pos(9, 9), nil); ok {
		t.Error("PathAvoiding reached an off-map destination")
	}
}

func TestPathAvoidingOccupiedDestination(t *testing.T) {
	m := model.ParseMap(
		"...",
		"...",
		"...",
	)
	start, dest := pos(0, 0), pos(2, 0)
	// The destination holds another unit; the path may end on it.
	path, ok := PathAvoiding(m, NewSet(start, dest), start, dest, nil)
	if !ok || len(path) != 3 {
		t.Errorf("PathAvoiding to occupied dest = %v,%v, want 3-step path", path, ok)
	}
}

func TestPathAvoidingSameTile(t *testing.T) {
	m := model.ParseMap("..", "..")
	path, ok := PathAvoiding(m, nil, pos(1, 1), pos(1, 1), nil)
	if !ok || !slices.Equal(path, []model.Position{pos(1, 1)}) {
		t.Errorf("PathAvoiding(start, start) = %v,%v", path, ok)
	}
}
