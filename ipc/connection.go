package ipc

import (
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// Handler answers one envelope. A nil envelope means no reply.
type Handler func(env Envelope) (*Envelope, error)

// Connection serves one game runner session. Envelopes are handled one at a
// time in arrival order. Crew is set by the hello handler once known.
type Connection struct {
	ID   uuid.UUID
	Crew string

	rw       io.ReadWriteCloser
	handlers map[string]Handler
	log      *slog.Logger
}

func NewConnection(rw io.ReadWriteCloser, handlers map[string]Handler) *Connection {
	if handlers == nil {
		handlers = make(map[string]Handler)
	}
	id := uuid.New()
	return &Connection{
		ID:       id,
		rw:       rw,
		handlers: handlers,
		log:      slog.With("conn", id.String()),
	}
}

func (c *Connection) RegisterHandler(msgType string, handler Handler) {
	c.handlers[msgType] = handler
}

func (c *Connection) Send(msgType string, data any) error {
	env, err := NewEnvelope(msgType, data)
	if err != nil {
		return err
	}
	return WriteEnvelope(c.rw, env)
}

// Close unblocks a pending ReadLoop.
func (c *Connection) Close() error {
	return c.rw.Close()
}

// ReadLoop serves envelopes until the stream ends or a reply cannot be
// written, then closes the stream.
func (c *Connection) ReadLoop() {
	defer c.rw.Close()

	for {
		env, err := ReadEnvelope(c.rw)
		if err != nil {
			c.log.Info("session ended", "crew", c.Crew, "error", err)
			return
		}
		if !c.dispatch(env) {
			return
		}
	}
}

// dispatch runs the handler for env and writes its reply. It reports false
// only when the stream is no longer writable.
func (c *Connection) dispatch(env Envelope) bool {
	handler, ok := c.handlers[env.Type]
	if !ok {
		c.log.Warn("unhandled message", "type", env.Type)
		return true
	}

	resp, err := handler(env)
	if err != nil {
		c.log.Error("handler failed", "type", env.Type, "crew", c.Crew, "error", err)
		return true
	}
	if resp == nil {
		return true
	}

	if err := WriteEnvelope(c.rw, *resp); err != nil {
		c.log.Error("reply failed", "type", resp.Type, "crew", c.Crew, "error", err)
		return false
	}
	c.log.Debug("replied", "type", resp.Type, "crew", c.Crew)
	return true
}
