package core

import "sync"

// ClientRegistry is the process-wide set of connected clients.
type ClientRegistry struct {
	mu      sync.Mutex
	clients map[string]*Client
}

// NewClientRegistry constructs an empty client registry.
func NewClientRegistry() *ClientRegistry {
	return &ClientRegistry{clients: make(map[string]*Client)}
}

// Register inserts a client. UIDs are generated internally, so duplicate
// ids cannot occur.
func (cr *ClientRegistry) Register(c *Client) {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	cr.clients[c.UID] = c
}

// Unregister removes a client. Removing an absent client is a no-op.
func (cr *ClientRegistry) Unregister(c *Client) {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	delete(cr.clients, c.UID)
}

// Len returns the number of connected clients.
func (cr *ClientRegistry) Len() int {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	return len(cr.clients)
}

// RoomRegistry maps room ids to live rooms. Rooms are created on first
// join and reaped when their membership empties.
type RoomRegistry struct {
	mu    sync.Mutex
	rooms map[string]*Room
}

// NewRoomRegistry constructs an empty room registry.
func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{rooms: make(map[string]*Room)}
}

// Join seats client in the room named roomID, creating the room with
// client as owner+admin if it does not exist. Lookup and seating happen
// under the registry lock so two concurrent joins to the same unused id
// land in one room, and a join cannot interleave between the last
// member's departure and the empty-room reap. Reports whether the client
// ended up owning the room.
func (rr *RoomRegistry) Join(roomID string, client *Client) (room *Room, owner bool) {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	if room = rr.rooms[roomID]; room != nil {
		return room, room.AddMember(client)
	}
	room = NewRoomWithOwner(roomID, client)
	rr.rooms[roomID] = room
	return room, true
}

// Get returns the room for roomID, or nil.
func (rr *RoomRegistry) Get(roomID string) *Room {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	return rr.rooms[roomID]
}

// RemoveIfEmpty drops the registry entry only if the room's membership
// is still empty, guarding against a join that raced the last departure.
func (rr *RoomRegistry) RemoveIfEmpty(roomID string) (removed bool) {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	room := rr.rooms[roomID]
	if room == nil || !room.Empty() {
		return false
	}
	delete(rr.rooms, roomID)
	return true
}

// Len returns the number of live rooms.
func (rr *RoomRegistry) Len() int {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	return len(rr.rooms)
}
