package dispatch

import (
	"encoding/json"
	"time"

	"github.com/golang/snappy"
)

// MessageType represents the type of dispatch message
type MessageType uint8

const (
	// Control messages
	MsgHello MessageType = iota
	MsgShutdown

	// Work messages
	MsgAssignment
	MsgResult

	// Error messages
	MsgError
)

// Tags route messages over the transport.
const (
	TagControl = "ctl"
	TagWork    = "work"
)

// Message is the base dispatch message. Every message of a distributed
// run is stamped with the run's ID.
type Message struct {
	Type      MessageType `json:"type"`
	RunID     string      `json:"run_id"`
	Timestamp int64       `json:"timestamp"`
	Data      []byte      `json:"data,omitempty"`
}

// NewMessage creates a new message with the given type and data
func NewMessage(msgType MessageType, runID string, data any) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      msgType,
		RunID:     runID,
		Timestamp: time.Now().Unix(),
		Data:      dataBytes,
	}, nil
}

// Decode decodes message data into the provided interface
func (m *Message) Decode(v any) error {
	return json.Unmarshal(m.Data, v)
}

// Encode renders the message as a snappy-compressed JSON payload.
func (m *Message) Encode() ([]byte, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return snappy.Encode(nil, raw), nil
}

// DecodeMessage parses a snappy-compressed payload back into a Message.
func DecodeMessage(payload []byte) (*Message, error) {
	raw, err := snappy.Decode(nil, payload)
	if err != nil {
		return nil, opError("DecodeMessage", -1, ErrBadMessage)
	}
	var m Message
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, opError("DecodeMessage", -1, ErrBadMessage)
	}
	return &m, nil
}
