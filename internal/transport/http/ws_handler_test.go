package http

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/Neisvestney/sent-sync-server/internal/config"
	"github.com/Neisvestney/sent-sync-server/internal/core"
	"github.com/Neisvestney/sent-sync-server/internal/proto"
)

type wireFrame struct {
	Type      string              `json:"type"`
	ClientUID string              `json:"clientUid"`
	Kind      string              `json:"kind"`
	Msg       *string             `json:"msg"`
	Data      *proto.RoomSnapshot `json:"data"`
}

func startTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := zerolog.Nop()
	cfg := config.Default()
	coord := core.NewCoordinator(&logger, cfg.SendBuffer)
	server := NewServer(coord, cfg, &logger)

	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func dial(t *testing.T, ctx context.Context, ts *httptest.Server) *websocket.Conn {
	t.Helper()

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "done") })
	return conn
}

func send(t *testing.T, ctx context.Context, conn *websocket.Conn, frame string) {
	t.Helper()

	if err := conn.Write(ctx, websocket.MessageText, []byte(frame)); err != nil {
		t.Fatalf("write %q: %v", frame, err)
	}
}

func readFrame(t *testing.T, ctx context.Context, conn *websocket.Conn) wireFrame {
	t.Helper()

	var frame wireFrame
	if err := wsjson.Read(ctx, conn, &frame); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	return frame
}

func expectType(t *testing.T, ctx context.Context, conn *websocket.Conn, frameType string) wireFrame {
	t.Helper()

	frame := readFrame(t, ctx, conn)
	if frame.Type != frameType {
		t.Fatalf("expected %s frame, got %+v", frameType, frame)
	}
	return frame
}

func TestHealthEndpoint(t *testing.T) {
	ts := startTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}

func TestWatchTogetherSession(t *testing.T) {
	ts := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	connA := dial(t, ctx, ts)
	uidA := expectType(t, ctx, connA, "ClientUid").ClientUID
	if uidA == "" {
		t.Fatal("ClientUid frame must carry the generated identifier")
	}

	send(t, ctx, connA, `{"type":"Ping"}`)
	expectType(t, ctx, connA, "Pong")

	// Malformed input is answered with a diagnostic and keeps the
	// connection open.
	send(t, ctx, connA, `this is not json`)
	errFrame := expectType(t, ctx, connA, "Error")
	if errFrame.Kind != "JsonError" || errFrame.Msg == nil {
		t.Fatalf("expected JsonError with diagnostic, got %+v", errFrame)
	}

	send(t, ctx, connA, `{"type":"JoinRoom","roomId":"movie-night"}`)
	if f := expectType(t, ctx, connA, "Error"); f.Kind != "ClientNameNotSet" {
		t.Fatalf("expected ClientNameNotSet, got %+v", f)
	}

	send(t, ctx, connA, `{"type":"ChangeName","newName":"Alice"}`)
	expectType(t, ctx, connA, "Success")

	send(t, ctx, connA, `{"type":"JoinRoom","roomId":"movie-night"}`)
	expectType(t, ctx, connA, "Success")
	snap := expectType(t, ctx, connA, "RoomChanged").Data
	if len(snap.Clients) != 1 || snap.Clients[0].UID != uidA || !snap.Clients[0].Owner || !snap.Clients[0].Admin {
		t.Fatalf("creator must be sole owner+admin, got %+v", snap.Clients)
	}

	connB := dial(t, ctx, ts)
	uidB := expectType(t, ctx, connB, "ClientUid").ClientUID

	send(t, ctx, connB, `{"type":"ChangeName","newName":"Bob"}`)
	expectType(t, ctx, connB, "Success")
	send(t, ctx, connB, `{"type":"JoinRoom","roomId":"movie-night"}`)
	expectType(t, ctx, connB, "Success")

	for _, conn := range []*websocket.Conn{connA, connB} {
		snap := expectType(t, ctx, conn, "RoomChanged").Data
		if len(snap.Clients) != 2 {
			t.Fatalf("expected 2 members, got %+v", snap.Clients)
		}
		if snap.Clients[0].UID != uidA || !snap.Clients[0].Owner {
			t.Fatalf("join order or ownership broken: %+v", snap.Clients)
		}
		if snap.Clients[1].UID != uidB || snap.Clients[1].Owner || snap.Clients[1].Admin {
			t.Fatalf("second joiner must be a plain member: %+v", snap.Clients)
		}
	}

	// Owner grants admin; both see the updated snapshot.
	send(t, ctx, connA, `{"type":"ChangeClientAdminStatus","clientUid":"`+uidB+`","admin":true}`)
	expectType(t, ctx, connA, "Success")
	for _, conn := range []*websocket.Conn{connA, connB} {
		snap := expectType(t, ctx, conn, "RoomChanged").Data
		if !snap.Clients[1].Admin || snap.Clients[1].Owner {
			t.Fatalf("expected admin grant for B, got %+v", snap.Clients)
		}
	}

	// Admin rights do not allow touching flags; only the owner may.
	send(t, ctx, connB, `{"type":"ChangeClientAdminStatus","clientUid":"`+uidA+`","admin":false}`)
	if f := expectType(t, ctx, connB, "Error"); f.Kind != "Forbidden" {
		t.Fatalf("expected Forbidden, got %+v", f)
	}

	// Owner disconnects; the survivor inherits ownership.
	connA.Close(websocket.StatusNormalClosure, "bye")
	snap = expectType(t, ctx, connB, "RoomChanged").Data
	if len(snap.Clients) != 1 || snap.Clients[0].UID != uidB || !snap.Clients[0].Owner {
		t.Fatalf("survivor must own the room, got %+v", snap.Clients)
	}
	if !snap.Clients[0].Admin {
		t.Fatalf("admin flag must survive the transfer, got %+v", snap.Clients)
	}
}

func TestQuitRoomOverWire(t *testing.T) {
	ts := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn := dial(t, ctx, ts)
	expectType(t, ctx, conn, "ClientUid")

	send(t, ctx, conn, `{"type":"ChangeName","newName":"Alice"}`)
	expectType(t, ctx, conn, "Success")
	send(t, ctx, conn, `{"type":"JoinRoom","roomId":"movie-night"}`)
	expectType(t, ctx, conn, "Success")
	expectType(t, ctx, conn, "RoomChanged")

	send(t, ctx, conn, `{"type":"QuitRoom"}`)
	expectType(t, ctx, conn, "Success")

	send(t, ctx, conn, `{"type":"QuitRoom"}`)
	if f := expectType(t, ctx, conn, "Error"); f.Kind != "ClientNotInAnyRoom" {
		t.Fatalf("expected ClientNotInAnyRoom, got %+v", f)
	}

	// The session is still operable after protocol errors.
	send(t, ctx, conn, `{"type":"Ping"}`)
	expectType(t, ctx, conn, "Pong")
}
