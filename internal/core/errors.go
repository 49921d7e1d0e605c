package core

// ErrorKind values are serialized verbatim into Error frames.
type ErrorKind string

const (
	ErrKindJSON           ErrorKind = "JsonError"
	ErrKindNotInAnyRoom   ErrorKind = "ClientNotInAnyRoom"
	ErrKindNameNotSet     ErrorKind = "ClientNameNotSet"
	ErrKindNameTooShort   ErrorKind = "ClientNameTooShort"
	ErrKindRoomIDTooShort ErrorKind = "RoomIdTooShort"
	ErrKindNoSuchClient   ErrorKind = "NoSuchClient"
	ErrKindForbidden      ErrorKind = "Forbidden"
)

// CoordError is a recoverable protocol error reported to the originating
// client only. It never terminates the connection.
type CoordError struct {
	Kind ErrorKind
	Msg  string
}

func (e *CoordError) Error() string {
	if e.Msg != "" {
		return string(e.Kind) + ": " + e.Msg
	}
	return string(e.Kind)
}

func coordError(kind ErrorKind) *CoordError {
	return &CoordError{Kind: kind}
}
