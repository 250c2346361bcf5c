package agent

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nstehr/blitz/blitz-core/ipc"
	"github.com/nstehr/blitz/blitz-core/model"
	"github.com/nstehr/blitz/blitz-core/rules"
)

// Agent owns the decision-making for a single crew session.
type Agent struct {
	Conn   *ipc.Connection
	Crew   string
	Engine *rules.Engine

	prev *turnSnapshot
}

func New(conn *ipc.Connection, engine *rules.Engine) *Agent {
	return &Agent{Conn: conn, Engine: engine}
}

// HandleHello completes the handshake so the runner knows the bot is ready.
func (a *Agent) HandleHello(env ipc.Envelope) (*ipc.Envelope, error) {
	var hello ipc.HelloMessage
	if err := json.Unmarshal(env.Data, &hello); err != nil {
		return nil, fmt.Errorf("unmarshal hello: %w", err)
	}

	a.Crew = hello.Crew
	if a.Conn != nil {
		a.Conn.Crew = hello.Crew
	}
	slog.Info("crew identified", "crew", a.Crew)

	ack, err := ipc.NewEnvelope(ipc.TypeAck, ipc.AckMessage{Status: "ok"})
	if err != nil {
		return nil, err
	}
	return &ack, nil
}

// HandleTurn always answers, even when the snapshot cannot be decided, so the
// runner never waits on us. A failed turn is an empty action list.
func (a *Agent) HandleTurn(env ipc.Envelope) (*ipc.Envelope, error) {
	var gm model.GameMessage
	if err := json.Unmarshal(env.Data, &gm); err != nil {
		slog.Error("unmarshal turn", "crew", a.Crew, "error", err)
		return a.reply(0, nil)
	}

	for _, ev := range a.observe(gm) {
		slog.Info("turn event", "crew", a.Crew, "kind", ev.Kind, "tick", ev.Tick, "detail", ev.Detail)
	}

	actions, err := a.Engine.Evaluate(gm)
	if err != nil {
		slog.Error("rule engine error", "crew", a.Crew, "tick", gm.Tick, "error", err)
		return a.reply(gm.Tick, nil)
	}
	return a.reply(gm.Tick, actions)
}

func (a *Agent) observe(gm model.GameMessage) []Event {
	cur := takeSnapshot(gm)
	events := detectEvents(gm, cur, a.prev)
	a.prev = &cur
	return events
}

func (a *Agent) reply(tick int, actions []model.Action) (*ipc.Envelope, error) {
	if actions == nil {
		actions = []model.Action{}
	}
	env, err := ipc.NewEnvelope(ipc.TypeActions, ipc.ActionsMessage{Tick: tick, Actions: actions})
	if err != nil {
		return nil, err
	}
	return &env, nil
}
