package proto

// Frames are JSON objects discriminated by a top-level "type" field with
// the variant's fields inlined next to it, e.g.
// {"type":"JoinRoom","roomId":"movie-night"}.

// Inbound frame types.
const (
	InboundTypePing                    = "Ping"
	InboundTypeChangeName              = "ChangeName"
	InboundTypeJoinRoom                = "JoinRoom"
	InboundTypeChangeClientAdminStatus = "ChangeClientAdminStatus"
	InboundTypeQuitRoom                = "QuitRoom"
)

// Outbound frame types.
const (
	OutboundTypePong        = "Pong"
	OutboundTypeClientUID   = "ClientUid"
	OutboundTypeSuccess     = "Success"
	OutboundTypeError       = "Error"
	OutboundTypeRoomChanged = "RoomChanged"
)

// Envelope extracts the discriminator so the full frame can be decoded
// into the matching variant struct.
type Envelope struct {
	Type string `json:"type"`
}

// ChangeNameFrame sets the client's display name.
type ChangeNameFrame struct {
	NewName string `json:"newName"`
}

// JoinRoomFrame joins or creates a room.
type JoinRoomFrame struct {
	RoomID string `json:"roomId"`
}

// ChangeClientAdminStatusFrame toggles another member's admin flag.
type ChangeClientAdminStatusFrame struct {
	ClientUID string `json:"clientUid"`
	Admin     bool   `json:"admin"`
}

// Outbound is the server-to-client frame. Exactly the fields of the
// selected variant are populated; the rest stay empty and are omitted.
type Outbound struct {
	Type      string        `json:"type"`
	ClientUID string        `json:"clientUid,omitempty"`
	Kind      string        `json:"kind,omitempty"`
	Msg       *string       `json:"msg,omitempty"`
	Data      *RoomSnapshot `json:"data,omitempty"`
}

// RoomSnapshot mirrors the room's membership and metadata for broadcast.
type RoomSnapshot struct {
	Clients                    []RoomClient `json:"clients"`
	PageURL                    *string      `json:"pageUrl"`
	AllowStopDueToVideoLoading bool         `json:"allowStopDueToVideoLoading"`
}

// RoomClient is one member entry in a RoomSnapshot.
type RoomClient struct {
	Name  *string `json:"name"`
	UID   string  `json:"uid"`
	Owner bool    `json:"owner"`
	Admin bool    `json:"admin"`
}
