package core

import (
	"sync"

	"github.com/google/uuid"
)

// Client is one connection's identity and profile as seen by the core.
// The UID is generated at connection time and never changes; the profile
// (display name, current room id) is guarded by mu.
//
// Lock order: a client's mu is only ever acquired alone or nested inside
// a room lock (snapshot assembly reads member names). Never acquire a
// room or registry lock while holding a client lock.
type Client struct {
	UID string

	// Events is the outbound sink, drained by the connection's writer.
	// It is bounded; Deliver drops frames when the consumer lags.
	Events chan *Event

	mu     sync.Mutex
	name   *string
	roomID string
}

// NewClient constructs a client with a fresh uid and a bounded event queue.
func NewClient(buffer int) *Client {
	if buffer <= 0 {
		buffer = 64
	}
	return &Client{
		UID:    uuid.NewString(),
		Events: make(chan *Event, buffer),
	}
}

// Name returns the display name, or nil if it was never set.
func (c *Client) Name() *string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.name
}

// SetName updates the display name and reports the room the client is in,
// if any, so the caller can broadcast after releasing all locks.
func (c *Client) SetName(name string) (roomID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.name = &name
	return c.roomID
}

// RoomID returns the id of the joined room, or "" if not in a room.
func (c *Client) RoomID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roomID
}

// SetRoomID records the joined room; "" clears the reference.
func (c *Client) SetRoomID(roomID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roomID = roomID
}

// Deliver enqueues an event without blocking. Returns false if the
// client's queue is full and the event was dropped; the next room
// snapshot will resync a lagging consumer.
func (c *Client) Deliver(ev *Event) bool {
	select {
	case c.Events <- ev:
		return true
	default:
		return false
	}
}
