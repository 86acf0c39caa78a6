package events

import "time"

// ProtocolVersion is bumped whenever the wire format changes incompatibly
const ProtocolVersion = 1

// EventType indicates what kind of change occurred
type EventType string

const (
	EventDatabaseChanged EventType = "db_changed"
	EventPing            EventType = "ping"
	EventPong            EventType = "pong"
)

// Message types on the wire
const (
	MessageEvent     = "event"
	MessageSubscribe = "subscribe"
	MessagePing      = "ping"
	MessagePong      = "pong"
)

// Event represents a database change notification
type Event struct {
	Type       EventType `json:"type"`
	PipelineID int       `json:"pipeline_id"`      // For filtering - which pipeline was modified, 0 = several
	Origin     string    `json:"origin,omitempty"` // Client that caused the change
	Timestamp  time.Time `json:"timestamp"`
	SequenceID int64     `json:"sequence_id"` // Assigned by the daemon, monotonically increasing
}

// SubscribeMessage is sent by clients to subscribe to specific pipeline updates
type SubscribeMessage struct {
	PipelineID int `json:"pipeline_id"` // 0 = all pipelines, >0 = specific pipeline
}

// Message wraps events and control messages for wire protocol
type Message struct {
	Version   int               `json:"version"`
	Type      string            `json:"type"`
	Event     *Event            `json:"event,omitempty"`
	Subscribe *SubscribeMessage `json:"subscribe,omitempty"`
}

// NotifyFunc is called by the client to surface connection state to a UI.
// level is one of "info", "warning" or "error".
type NotifyFunc func(level, message string)
