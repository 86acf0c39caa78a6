package state

import "sync"

// ConnectionStatus represents the board's connection to the live-update daemon
type ConnectionStatus int

const (
	Disconnected ConnectionStatus = iota
	Connected
	Reconnecting
)

// String returns a human-readable string representation of the connection status
func (cs ConnectionStatus) String() string {
	switch cs {
	case Connected:
		return "live"
	case Reconnecting:
		return "reconnecting"
	default:
		return "offline"
	}
}

// ConnectionState is written from the events client callback and read by the view
type ConnectionState struct {
	mu     sync.RWMutex
	status ConnectionStatus
}

// NewConnectionState creates a new ConnectionState with the given initial status
func NewConnectionState(initialStatus ConnectionStatus) *ConnectionState {
	return &ConnectionState{status: initialStatus}
}

// Status returns the current connection status
func (cs *ConnectionState) Status() ConnectionStatus {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.status
}

// SetStatus updates the connection status
func (cs *ConnectionState) SetStatus(status ConnectionStatus) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.status = status
}
