package core

import "sync"

// Membership pairs a client with its per-room control flags.
type Membership struct {
	Client *Client
	Owner  bool
	Admin  bool
}

// CanControl reports whether this membership grants control rights.
func (m *Membership) CanControl() bool {
	return m.Owner || m.Admin
}

// Room groups clients sharing control state and page metadata. Members
// are kept in join order; the earliest remaining member inherits
// ownership when the owner leaves.
//
// Lock order: a room's mu may be acquired while holding the registry
// lock (join, RemoveIfEmpty) and may itself nest client locks (snapshot
// reads member names). The reverse orders are never used.
type Room struct {
	ID string

	mu                         sync.Mutex
	members                    []*Membership
	pageURL                    *string
	allowStopDueToVideoLoading bool
}

// NewRoom constructs an empty room.
func NewRoom(id string) *Room {
	return &Room{
		ID:                         id,
		allowStopDueToVideoLoading: true,
	}
}

// NewRoomWithOwner constructs a room seating client as owner and admin.
func NewRoomWithOwner(id string, client *Client) *Room {
	r := NewRoom(id)
	r.members = []*Membership{{Client: client, Owner: true, Admin: true}}
	return r
}

// AddMember appends a plain membership for client. If the room is
// currently empty (a join raced with the last member's departure, before
// the registry reaped the room) the client is seated as owner and admin
// instead, keeping the one-owner invariant. Returns the seated flags.
func (r *Room) AddMember(client *Client) (owner bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.members {
		if m.Client == client {
			return m.Owner
		}
	}
	owner = len(r.members) == 0
	r.members = append(r.members, &Membership{Client: client, Owner: owner, Admin: owner})
	return owner
}

// RemoveMember removes client's membership. Removing an absent client is
// a no-op; a disconnect can benignly race with an explicit quit. If the
// removed member owned the room and members remain, the earliest-joined
// remaining member becomes owner. Admin flags are untouched.
func (r *Room) RemoveMember(client *Client) (removed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, m := range r.members {
		if m.Client != client {
			continue
		}
		r.members = append(r.members[:i], r.members[i+1:]...)
		if m.Owner && len(r.members) > 0 {
			r.members[0].Owner = true
		}
		return true
	}
	return false
}

// SetAdmin flips target's admin flag on behalf of actor. The actor must
// own the room; a Forbidden failure aborts before any mutation.
func (r *Room) SetAdmin(actor *Client, targetUID string, admin bool) *CoordError {
	r.mu.Lock()
	defer r.mu.Unlock()

	var actorMember *Membership
	for _, m := range r.members {
		if m.Client == actor {
			actorMember = m
			break
		}
	}
	if actorMember == nil {
		return coordError(ErrKindNotInAnyRoom)
	}
	if !actorMember.Owner {
		return coordError(ErrKindForbidden)
	}

	for _, m := range r.members {
		if m.Client.UID == targetUID {
			m.Admin = admin
			return nil
		}
	}
	return coordError(ErrKindNoSuchClient)
}

// CanControl reports whether client may drive playback in this room.
func (r *Room) CanControl(client *Client) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.members {
		if m.Client == client {
			return m.CanControl()
		}
	}
	return false
}

// Empty reports whether the room has no members.
func (r *Room) Empty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members) == 0
}

// Len returns the current member count.
func (r *Room) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}

// Snapshot projects the current membership and metadata, and returns the
// members it covers so the caller can deliver the snapshot after all
// locks are released.
func (r *Room) Snapshot() (*RoomSnapshot, []*Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := &RoomSnapshot{
		Clients:                    make([]MemberSnapshot, 0, len(r.members)),
		PageURL:                    r.pageURL,
		AllowStopDueToVideoLoading: r.allowStopDueToVideoLoading,
	}
	recipients := make([]*Client, 0, len(r.members))
	for _, m := range r.members {
		snap.Clients = append(snap.Clients, MemberSnapshot{
			Name:  m.Client.Name(),
			UID:   m.Client.UID,
			Owner: m.Owner,
			Admin: m.Admin,
		})
		recipients = append(recipients, m.Client)
	}
	return snap, recipients
}
