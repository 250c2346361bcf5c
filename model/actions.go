package model

import "encoding/json"

// ActionKind is what a unit does this turn.
type ActionKind string

const (
	ActionMove ActionKind = "MOVE"
	ActionMine ActionKind = "MINE"
	ActionDrop ActionKind = "DROP"
	ActionNone ActionKind = "NONE"
)

// Action is one entry of the turn reply: either a UnitAction or a BuyAction.
type Action interface {
	Type() string
}

type UnitAction struct {
	Kind   ActionKind `json:"action"`
	UnitID int        `json:"unitId"`
	Target Position   `json:"target"`
}

func (UnitAction) Type() string { return "UNIT" }

func (a UnitAction) MarshalJSON() ([]byte, error) {
	type alias UnitAction
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: a.Type(), alias: alias(a)})
}

type BuyAction struct {
	UnitType UnitType `json:"unitType"`
}

func (BuyAction) Type() string { return "BUY" }

func (a BuyAction) MarshalJSON() ([]byte, error) {
	type alias BuyAction
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: a.Type(), alias: alias(a)})
}

func Move(u Unit, to Position) UnitAction {
	return UnitAction{Kind: ActionMove, UnitID: u.ID, Target: to}
}

func MineAt(u Unit, at Position) UnitAction {
	return UnitAction{Kind: ActionMine, UnitID: u.ID, Target: at}
}

func Drop(u Unit, at Position) UnitAction {
	return UnitAction{Kind: ActionDrop, UnitID: u.ID, Target: at}
}

// Idle is the NONE action; its target is the unit's own position.
func Idle(u Unit) UnitAction {
	return UnitAction{Kind: ActionNone, UnitID: u.ID, Target: u.Position}
}
