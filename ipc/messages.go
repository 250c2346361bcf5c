package ipc

import "github.com/nstehr/blitz/blitz-core/model"

const (
	TypeHello   = "hello"
	TypeAck     = "ack"
	TypeTurn    = "turn"
	TypeActions = "actions"
)

type HelloMessage struct {
	Crew string `json:"crew"`
}

type AckMessage struct {
	Status string `json:"status"`
}

// ActionsMessage is the reply to a turn. Actions is never null on the wire.
type ActionsMessage struct {
	Tick    int            `json:"tick"`
	Actions []model.Action `json:"actions"`
}
