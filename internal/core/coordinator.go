package core

import "github.com/rs/zerolog"

// minimum byte lengths accepted for display names and room ids
const (
	minNameLen   = 3
	minRoomIDLen = 3
)

// Coordinator owns the client and room registries and applies validated
// state transitions. Commands arrive sequentially per connection (the
// transport's read loop calls Dispatch synchronously); connections are
// dispatched concurrently.
//
// Lock order across the whole engine: registry -> room -> client. The
// only nested acquisitions are registry->room (RoomRegistry.Join,
// RemoveIfEmpty) and room->client (Room.Snapshot reading names). No lock
// is ever held across an event delivery.
type Coordinator struct {
	clients    *ClientRegistry
	rooms      *RoomRegistry
	log        zerolog.Logger
	sendBuffer int
}

// NewCoordinator builds a coordinator with empty registries.
func NewCoordinator(logger *zerolog.Logger, sendBuffer int) *Coordinator {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Coordinator{
		clients:    NewClientRegistry(),
		rooms:      NewRoomRegistry(),
		log:        *logger,
		sendBuffer: sendBuffer,
	}
}

// Connect creates and registers a client for a freshly accepted
// connection and enqueues its ClientUid frame, guaranteed to precede any
// command reply.
func (co *Coordinator) Connect() *Client {
	c := NewClient(co.sendBuffer)
	co.clients.Register(c)
	co.deliver(c, &Event{Kind: EventClientUID, ClientUID: c.UID})
	co.log.Debug().Str("client_uid", c.UID).Msg("client connected")
	return c
}

// Disconnect runs the quit-room effects without replying to the
// departing client, then removes it from the registry. Safe to call for
// clients that already quit their room.
func (co *Coordinator) Disconnect(c *Client) {
	if roomID := c.RoomID(); roomID != "" {
		co.leaveRoom(c, roomID)
	}
	co.clients.Unregister(c)
	co.log.Debug().Str("client_uid", c.UID).Msg("client disconnected")
}

// Dispatch applies one command for c and enqueues the reply and any
// broadcasts. It never fails the connection; every outcome is delivered
// as a frame.
func (co *Coordinator) Dispatch(c *Client, cmd Command) {
	switch cmd.Kind {
	case CommandPing:
		co.deliver(c, &Event{Kind: EventPong})
	case CommandChangeName:
		co.handleChangeName(c, cmd.Name)
	case CommandJoinRoom:
		co.handleJoinRoom(c, cmd.RoomID)
	case CommandChangeAdminStatus:
		co.handleChangeAdminStatus(c, cmd.TargetUID, cmd.Admin)
	case CommandQuitRoom:
		co.handleQuitRoom(c)
	default:
		co.fail(c, coordError(ErrKindJSON))
	}
}

func (co *Coordinator) handleChangeName(c *Client, name string) {
	if len(name) < minNameLen {
		co.fail(c, coordError(ErrKindNameTooShort))
		return
	}
	roomID := c.SetName(name)
	co.deliver(c, &Event{Kind: EventSuccess})
	if roomID == "" {
		return
	}
	if room := co.rooms.Get(roomID); room != nil {
		co.broadcast(room)
	}
}

func (co *Coordinator) handleJoinRoom(c *Client, roomID string) {
	if c.Name() == nil {
		co.fail(c, coordError(ErrKindNameNotSet))
		return
	}
	if len(roomID) < minRoomIDLen {
		co.fail(c, coordError(ErrKindRoomIDTooShort))
		return
	}

	// Joining while already in a room leaves the old room first, so the
	// client is never listed in two memberships.
	if current := c.RoomID(); current != "" {
		co.leaveRoom(c, current)
	}

	room, owner := co.rooms.Join(roomID, c)
	c.SetRoomID(roomID)
	co.deliver(c, &Event{Kind: EventSuccess})
	co.broadcast(room)
	co.log.Info().
		Str("client_uid", c.UID).
		Str("room_id", roomID).
		Bool("owner", owner).
		Msg("client joined room")
}

func (co *Coordinator) handleChangeAdminStatus(c *Client, targetUID string, admin bool) {
	roomID := c.RoomID()
	if roomID == "" {
		co.fail(c, coordError(ErrKindNotInAnyRoom))
		return
	}
	room := co.rooms.Get(roomID)
	if room == nil {
		co.fail(c, coordError(ErrKindNotInAnyRoom))
		return
	}
	if err := room.SetAdmin(c, targetUID, admin); err != nil {
		co.fail(c, err)
		return
	}
	co.deliver(c, &Event{Kind: EventSuccess})
	co.broadcast(room)
}

func (co *Coordinator) handleQuitRoom(c *Client) {
	roomID := c.RoomID()
	if roomID == "" {
		co.fail(c, coordError(ErrKindNotInAnyRoom))
		return
	}
	co.leaveRoom(c, roomID)
	co.deliver(c, &Event{Kind: EventSuccess})
}

// leaveRoom removes c from its room, transfers ownership, reaps the room
// if it emptied, and notifies the survivors. The client's room reference
// is cleared first so the membership list and the reference can only
// disagree in the direction RemoveMember tolerates.
func (co *Coordinator) leaveRoom(c *Client, roomID string) {
	c.SetRoomID("")
	room := co.rooms.Get(roomID)
	if room == nil {
		return
	}
	room.RemoveMember(c)
	if room.Empty() {
		if co.rooms.RemoveIfEmpty(roomID) {
			co.log.Info().Str("room_id", roomID).Msg("room removed")
		}
		return
	}
	co.broadcast(room)
}

// broadcast snapshots the room under its lock and delivers the result to
// the post-mutation membership after the lock is released. A full queue
// on one member never blocks delivery to the others.
func (co *Coordinator) broadcast(room *Room) {
	snap, recipients := room.Snapshot()
	ev := &Event{Kind: EventRoomChanged, Snapshot: snap}
	for _, member := range recipients {
		co.deliver(member, ev)
	}
}

func (co *Coordinator) fail(c *Client, err *CoordError) {
	co.deliver(c, ErrorEvent(err))
}

func (co *Coordinator) deliver(c *Client, ev *Event) {
	if !c.Deliver(ev) {
		co.log.Warn().
			Str("client_uid", c.UID).
			Int("event_kind", int(ev.Kind)).
			Msg("event dropped: client queue full")
	}
}
