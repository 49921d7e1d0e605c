package http

import (
	"encoding/json"

	"github.com/Neisvestney/sent-sync-server/internal/core"
	"github.com/Neisvestney/sent-sync-server/internal/proto"
)

// decodeCommand turns a raw inbound text frame into a core command. Any
// decode failure is reported as a JsonError with a diagnostic; the
// connection stays open.
func decodeCommand(data []byte) (core.Command, *core.CoordError) {
	var env proto.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return core.Command{}, jsonError("invalid JSON: " + err.Error())
	}

	switch env.Type {
	case proto.InboundTypePing:
		return core.Command{Kind: core.CommandPing}, nil
	case proto.InboundTypeChangeName:
		var frame proto.ChangeNameFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			return core.Command{}, jsonError("invalid ChangeName frame: " + err.Error())
		}
		return core.Command{Kind: core.CommandChangeName, Name: frame.NewName}, nil
	case proto.InboundTypeJoinRoom:
		var frame proto.JoinRoomFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			return core.Command{}, jsonError("invalid JoinRoom frame: " + err.Error())
		}
		return core.Command{Kind: core.CommandJoinRoom, RoomID: frame.RoomID}, nil
	case proto.InboundTypeChangeClientAdminStatus:
		var frame proto.ChangeClientAdminStatusFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			return core.Command{}, jsonError("invalid ChangeClientAdminStatus frame: " + err.Error())
		}
		return core.Command{
			Kind:      core.CommandChangeAdminStatus,
			TargetUID: frame.ClientUID,
			Admin:     frame.Admin,
		}, nil
	case proto.InboundTypeQuitRoom:
		return core.Command{Kind: core.CommandQuitRoom}, nil
	default:
		return core.Command{}, jsonError("unknown message type: " + env.Type)
	}
}

func jsonError(msg string) *core.CoordError {
	return &core.CoordError{Kind: core.ErrKindJSON, Msg: msg}
}

// outboundFromEvent maps a core event onto its wire frame.
func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventPong:
		return proto.Outbound{Type: proto.OutboundTypePong}
	case core.EventClientUID:
		return proto.Outbound{Type: proto.OutboundTypeClientUID, ClientUID: event.ClientUID}
	case core.EventSuccess:
		return proto.Outbound{Type: proto.OutboundTypeSuccess}
	case core.EventError:
		out := proto.Outbound{Type: proto.OutboundTypeError}
		if event.Err != nil {
			out.Kind = string(event.Err.Kind)
			if event.Err.Msg != "" {
				msg := event.Err.Msg
				out.Msg = &msg
			}
		}
		return out
	case core.EventRoomChanged:
		return proto.Outbound{
			Type: proto.OutboundTypeRoomChanged,
			Data: snapshotToProto(event.Snapshot),
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeError, Kind: string(core.ErrKindJSON)}
	}
}

func snapshotToProto(snap *core.RoomSnapshot) *proto.RoomSnapshot {
	if snap == nil {
		return nil
	}
	out := &proto.RoomSnapshot{
		Clients:                    make([]proto.RoomClient, 0, len(snap.Clients)),
		PageURL:                    snap.PageURL,
		AllowStopDueToVideoLoading: snap.AllowStopDueToVideoLoading,
	}
	for _, member := range snap.Clients {
		out.Clients = append(out.Clients, proto.RoomClient{
			Name:  member.Name,
			UID:   member.UID,
			Owner: member.Owner,
			Admin: member.Admin,
		})
	}
	return out
}
