package stream

import (
	"encoding/json"
	"time"

	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
)

// EventType tells a subscriber whether an event carries a change or only
// confirms the connection is alive
type EventType string

const (
	EventTypeConnected EventType = "connected"
	EventTypeChange    EventType = "change"
	EventTypeKeepAlive EventType = "keepalive"
)

// Event is what a subscription yields. Payload is only set on change events.
type Event struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	Topic     string          `json:"topic"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

func newEvent(typ EventType, topic string, payload json.RawMessage) Event {
	return Event{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_EVENT),
		Type:      typ,
		Topic:     topic,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}
