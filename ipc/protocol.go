package ipc

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
)

// MaxFrame is the largest payload accepted in either direction.
const MaxFrame = 1 << 20

// Envelope frames every message exchanged with the game runner. Data stays
// raw until the handler for Type decodes it.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func NewEnvelope(msgType string, data any) (Envelope, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode %s: %w", msgType, err)
	}
	return Envelope{Type: msgType, Data: raw}, nil
}

// ReadEnvelope reads one frame: a uint32 little-endian payload length
// followed by the JSON envelope.
func ReadEnvelope(r io.Reader) (Envelope, error) {
	var size uint32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return Envelope{}, fmt.Errorf("read frame size: %w", err)
	}
	if size == 0 || size > MaxFrame {
		return Envelope{}, fmt.Errorf("invalid message length: %d", size)
	}

	payload := make([]byte, size)
	if _, err := io.ReadFull(r, payload); err != nil {
		return Envelope{}, fmt.Errorf("read frame body: %w", err)
	}

	var env Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	return env, nil
}

// WriteEnvelope writes env as a single frame. Header and body go out in one
// Write so concurrent writers on a stream never interleave partial frames.
func WriteEnvelope(w io.Writer, env Envelope) error {
	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}
	if len(payload) > MaxFrame {
		return fmt.Errorf("envelope too large: %d bytes", len(payload))
	}

	frame := binary.LittleEndian.AppendUint32(make([]byte, 0, 4+len(payload)), uint32(len(payload)))
	frame = append(frame, payload...)
	if _, err := w.Write(frame); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}
