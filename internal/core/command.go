package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandPing is a liveness probe answered with Pong.
	CommandPing CommandKind = iota
	// CommandChangeName sets the client's display name.
	CommandChangeName
	// CommandJoinRoom joins (or creates) a room.
	CommandJoinRoom
	// CommandChangeAdminStatus toggles another member's admin flag.
	CommandChangeAdminStatus
	// CommandQuitRoom leaves the current room.
	CommandQuitRoom
)

// Command represents an action requested by a client.
type Command struct {
	Kind      CommandKind
	Name      string // CommandChangeName
	RoomID    string // CommandJoinRoom
	TargetUID string // CommandChangeAdminStatus
	Admin     bool   // CommandChangeAdminStatus
}
