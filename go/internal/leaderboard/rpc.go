package leaderboard

import (
	"context"
	"time"

	"connectrpc.com/connect"
	"github.com/mcdev12/salon/go/internal/rpcapi"
)

// RPCService implements the LeaderboardService Connect interface
type RPCService struct {
	app LeaderboardApp
}

// NewRPCService creates a new leaderboard Connect service
func NewRPCService(app LeaderboardApp) *RPCService {
	return &RPCService{app: app}
}

// Verify that RPCService implements the LeaderboardServiceHandler interface
var _ rpcapi.LeaderboardServiceHandler = (*RPCService)(nil)

// GetLeaderboard returns the best results, limit defaulting as in App.Top
func (s *RPCService) GetLeaderboard(ctx context.Context, req *connect.Request[rpcapi.GetLeaderboardRequest]) (*connect.Response[rpcapi.GetLeaderboardResponse], error) {
	entries, err := s.app.Top(ctx, int(req.Msg.Limit))
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	protoEntries := make([]*rpcapi.LeaderboardEntry, 0, len(entries))
	for _, e := range entries {
		protoEntries = append(protoEntries, entryToProto(e))
	}

	return connect.NewResponse(&rpcapi.GetLeaderboardResponse{
		Entries: protoEntries,
	}), nil
}

func entryToProto(e Entry) *rpcapi.LeaderboardEntry {
	return &rpcapi.LeaderboardEntry{
		Name:      e.Name,
		Score:     int32(e.Score),
		Total:     int32(e.Total),
		Timestamp: e.Timestamp.UTC().Format(time.RFC3339Nano),
	}
}
