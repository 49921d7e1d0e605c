package core

import (
	"testing"
	"time"
)

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

// nextEvent pops the next queued event, failing on an empty queue. Used
// where reply ordering matters.
func nextEvent(t *testing.T, ch <-chan *Event) *Event {
	t.Helper()

	select {
	case ev := <-ch:
		return ev
	default:
		t.Fatal("no event queued")
		return nil
	}
}

func noEvent(t *testing.T, ch <-chan *Event) {
	t.Helper()

	select {
	case ev := <-ch:
		t.Fatalf("unexpected event: %+v", ev)
	default:
	}
}

// seatClient connects a client, names it, and joins it to roomID,
// draining the resulting events.
func seatClient(t *testing.T, co *Coordinator, name, roomID string) *Client {
	t.Helper()

	c := co.Connect()
	mustEvent(t, c.Events, EventClientUID)

	co.Dispatch(c, Command{Kind: CommandChangeName, Name: name})
	mustEvent(t, c.Events, EventSuccess)

	co.Dispatch(c, Command{Kind: CommandJoinRoom, RoomID: roomID})
	mustEvent(t, c.Events, EventSuccess)
	mustEvent(t, c.Events, EventRoomChanged)

	return c
}

func findMember(t *testing.T, snap *RoomSnapshot, uid string) MemberSnapshot {
	t.Helper()

	for _, m := range snap.Clients {
		if m.UID == uid {
			return m
		}
	}
	t.Fatalf("member %s not in snapshot %+v", uid, snap)
	return MemberSnapshot{}
}
