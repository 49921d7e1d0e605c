package core

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventPong answers a ping.
	EventPong EventKind = iota
	// EventClientUID delivers the generated connection identifier,
	// sent exactly once right after the connection is accepted.
	EventClientUID
	// EventSuccess acknowledges a processed command.
	EventSuccess
	// EventError reports a recoverable protocol error.
	EventError
	// EventRoomChanged carries a fresh snapshot of the client's room.
	EventRoomChanged
)

// Event is sent to clients to describe what happened in the system.
type Event struct {
	Kind      EventKind
	ClientUID string        // EventClientUID
	Err       *CoordError   // EventError
	Snapshot  *RoomSnapshot // EventRoomChanged
}

// ErrorEvent wraps a protocol error for delivery to one client.
func ErrorEvent(err *CoordError) *Event {
	return &Event{Kind: EventError, Err: err}
}

// RoomSnapshot is a read-only projection of a room's state, assembled
// under the room lock so the broadcast payload matches the state that
// produced it.
type RoomSnapshot struct {
	Clients                    []MemberSnapshot
	PageURL                    *string
	AllowStopDueToVideoLoading bool
}

// MemberSnapshot is one membership entry inside a RoomSnapshot.
type MemberSnapshot struct {
	Name  *string
	UID   string
	Owner bool
	Admin bool
}
