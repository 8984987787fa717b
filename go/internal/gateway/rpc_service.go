package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/mcdev12/salon/go/internal/rooms"
	"github.com/mcdev12/salon/go/internal/rpcapi"
)

// RoomService implements the RoomService Connect interface over the same
// room state the HTTP state routes expose
type RoomService struct {
	stateProvider StateProvider
}

// NewRoomService creates a new room state Connect service
func NewRoomService(provider StateProvider) *RoomService {
	return &RoomService{stateProvider: provider}
}

// Verify that RoomService implements the RoomServiceHandler interface
var _ rpcapi.RoomServiceHandler = (*RoomService)(nil)

// GetRoomState returns the snapshot of one room
func (s *RoomService) GetRoomState(ctx context.Context, req *connect.Request[rpcapi.GetRoomStateRequest]) (*connect.Response[rpcapi.GetRoomStateResponse], error) {
	roomID := strings.TrimSpace(req.Msg.RoomId)
	if roomID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("room_id is required"))
	}

	room, ok := s.stateProvider.Get(roomID)
	if !ok {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("room %q: %w", roomID, rooms.ErrRoomNotFound))
	}

	return connect.NewResponse(&rpcapi.GetRoomStateResponse{
		Room: s.snapshotToProto(room.Snapshot()),
	}), nil
}

// ListRooms returns the snapshot of every live room
func (s *RoomService) ListRooms(ctx context.Context, req *connect.Request[rpcapi.ListRoomsRequest]) (*connect.Response[rpcapi.ListRoomsResponse], error) {
	snaps := s.stateProvider.Snapshots()

	protoRooms := make([]*rpcapi.RoomState, 0, len(snaps))
	for _, snap := range snaps {
		protoRooms = append(protoRooms, s.snapshotToProto(snap))
	}

	return connect.NewResponse(&rpcapi.ListRoomsResponse{
		Rooms: protoRooms,
	}), nil
}

func (s *RoomService) snapshotToProto(snap rooms.Snapshot) *rpcapi.RoomState {
	return &rpcapi.RoomState{
		RoomId:       snap.RoomID,
		Fen:          snap.FEN,
		Seq:          snap.Seq,
		Outcome:      snap.Outcome,
		Participants: snap.Participants,
		LastActive:   snap.LastActive.UTC().Format(time.RFC3339Nano),
	}
}
