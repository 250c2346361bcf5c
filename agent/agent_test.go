package agent

import (
	"encoding/json"
	"testing"

	"github.com/nstehr/blitz/blitz-core/config"
	"github.com/nstehr/blitz/blitz-core/ipc"
	"github.com/nstehr/blitz/blitz-core/model"
	"github.com/nstehr/blitz/blitz-core/rules"
)

type wireAction struct {
	Type     string         `json:"type"`
	Action   string         `json:"action"`
	UnitID   int            `json:"unitId"`
	Target   model.Position `json:"target"`
	UnitType string         `json:"unitType"`
}

type wireActions struct {
	Tick    int          `json:"tick"`
	Actions []wireAction `json:"actions"`
}

func newTestAgent(t *testing.T) *Agent {
	t.Helper()
	engine, err := rules.NewEngine(rules.DefaultRules(), config.Default())
	if err != nil {
		t.Fatal(err)
	}
	return New(nil, engine)
}

func decodeReply(t *testing.T, env *ipc.Envelope) wireActions {
	t.Helper()
	if env == nil {
		t.Fatal("expected a reply")
	}
	if env.Type != ipc.TypeActions {
		t.Fatalf("reply type = %s, want %s", env.Type, ipc.TypeActions)
	}
	var msg wireActions
	if err := json.Unmarshal(env.Data, &msg); err != nil {
		t.Fatal(err)
	}
	if msg.Actions == nil {
		t.Fatalf("actions must be an array, got %s", env.Data)
	}
	return msg
}

func TestHandleHello(t *testing.T) {
	a := newTestAgent(t)
	env, _ := ipc.NewEnvelope(ipc.TypeHello, ipc.HelloMessage{Crew: "diggers"})

	resp, err := a.HandleHello(env)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Type != ipc.TypeAck || a.Crew != "diggers" {
		t.Errorf("reply %s, crew %q", resp.Type, a.Crew)
	}
}

func TestHandleTurnRepliesWithActions(t *testing.T) {
	a := newTestAgent(t)
	env, _ := ipc.NewEnvelope(ipc.TypeTurn, baseTurn(7))

	msg := decodeReply(t, mustHandle(t, a, env))
	if msg.Tick != 7 {
		t.Errorf("tick = %d, want 7", msg.Tick)
	}
	units := 0
	for _, act := range msg.Actions {
		if act.Type == "UNIT" {
			units++
		}
	}
	if units != 2 {
		t.Errorf("got %d unit actions, want 2: %+v", units, msg.Actions)
	}
}

func TestHandleTurnUnknownCrewRepliesEmpty(t *testing.T) {
	a := newTestAgent(t)
	gm := baseTurn(3)
	gm.CrewID = 42
	env, _ := ipc.NewEnvelope(ipc.TypeTurn, gm)

	msg := decodeReply(t, mustHandle(t, a, env))
	if msg.Tick != 3 || len(msg.Actions) != 0 {
		t.Errorf("reply = %+v, want tick 3 with no actions", msg)
	}
}

func TestHandleTurnMalformedRepliesEmpty(t *testing.T) {
	a := newTestAgent(t)
	env := ipc.Envelope{Type: ipc.TypeTurn, Data: json.RawMessage(`{"tick":"soon"}`)}

	msg := decodeReply(t, mustHandle(t, a, env))
	if len(msg.Actions) != 0 {
		t.Errorf("expected no actions, got %+v", msg.Actions)
	}
}

func TestHandleTurnTracksPreviousSnapshot(t *testing.T) {
	a := newTestAgent(t)
	first, _ := ipc.NewEnvelope(ipc.TypeTurn, baseTurn(1))
	mustHandle(t, a, first)
	if a.prev == nil || a.prev.tick != 1 {
		t.Fatalf("prev snapshot = %+v, want tick 1", a.prev)
	}

	gm := baseTurn(2)
	gm.Crews[0].Units = gm.Crews[0].Units[:1]
	if got := kinds(a.observe(gm)); got[EventUnitLost] != 1 {
		t.Errorf("events = %v, want one unit_lost", got)
	}
}

func mustHandle(t *testing.T, a *Agent, env ipc.Envelope) *ipc.Envelope {
	t.Helper()
	resp, err := a.HandleTurn(env)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}
