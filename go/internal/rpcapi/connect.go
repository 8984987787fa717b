package rpcapi

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const (
	// RoomServiceName is the fully-qualified name of the RoomService service.
	RoomServiceName = "salon.v1.RoomService"
	// LeaderboardServiceName is the fully-qualified name of the LeaderboardService service.
	LeaderboardServiceName = "salon.v1.LeaderboardService"
)

// Procedure paths, as used in the HTTP route
const (
	RoomServiceGetRoomStateProcedure          = "/salon.v1.RoomService/GetRoomState"
	RoomServiceListRoomsProcedure             = "/salon.v1.RoomService/ListRooms"
	LeaderboardServiceGetLeaderboardProcedure = "/salon.v1.LeaderboardService/GetLeaderboard"
)

// RoomServiceHandler is implemented by the room state service
type RoomServiceHandler interface {
	GetRoomState(context.Context, *connect.Request[GetRoomStateRequest]) (*connect.Response[GetRoomStateResponse], error)
	ListRooms(context.Context, *connect.Request[ListRoomsRequest]) (*connect.Response[ListRoomsResponse], error)
}

// LeaderboardServiceHandler is implemented by the leaderboard service
type LeaderboardServiceHandler interface {
	GetLeaderboard(context.Context, *connect.Request[GetLeaderboardRequest]) (*connect.Response[GetLeaderboardResponse], error)
}

// NewRoomServiceHandler builds an HTTP handler for svc and returns the path
// to mount it on.
func NewRoomServiceHandler(svc RoomServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	getRoomState := connect.NewUnaryHandler(
		RoomServiceGetRoomStateProcedure,
		svc.GetRoomState,
		handlerOptions(methodDescriptor("RoomService", "GetRoomState"), opts)...,
	)
	listRooms := connect.NewUnaryHandler(
		RoomServiceListRoomsProcedure,
		svc.ListRooms,
		handlerOptions(methodDescriptor("RoomService", "ListRooms"), opts)...,
	)
	return "/" + RoomServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case RoomServiceGetRoomStateProcedure:
			getRoomState.ServeHTTP(w, r)
		case RoomServiceListRoomsProcedure:
			listRooms.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// NewLeaderboardServiceHandler builds an HTTP handler for svc and returns
// the path to mount it on.
func NewLeaderboardServiceHandler(svc LeaderboardServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	getLeaderboard := connect.NewUnaryHandler(
		LeaderboardServiceGetLeaderboardProcedure,
		svc.GetLeaderboard,
		handlerOptions(methodDescriptor("LeaderboardService", "GetLeaderboard"), opts)...,
	)
	return "/" + LeaderboardServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case LeaderboardServiceGetLeaderboardProcedure:
			getLeaderboard.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

func handlerOptions(schema interface{}, opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{
		connect.WithSchema(schema),
		connect.WithCodec(JSONCodec{}),
	}, opts...)
}

// RoomServiceClient calls a RoomService
type RoomServiceClient struct {
	getRoomState *connect.Client[GetRoomStateRequest, GetRoomStateResponse]
	listRooms    *connect.Client[ListRoomsRequest, ListRoomsResponse]
}

// NewRoomServiceClient creates a client for the RoomService at baseURL
func NewRoomServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *RoomServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &RoomServiceClient{
		getRoomState: connect.NewClient[GetRoomStateRequest, GetRoomStateResponse](
			httpClient, baseURL+RoomServiceGetRoomStateProcedure, opts...),
		listRooms: connect.NewClient[ListRoomsRequest, ListRoomsResponse](
			httpClient, baseURL+RoomServiceListRoomsProcedure, opts...),
	}
}

// GetRoomState calls salon.v1.RoomService.GetRoomState
func (c *RoomServiceClient) GetRoomState(ctx context.Context, req *connect.Request[GetRoomStateRequest]) (*connect.Response[GetRoomStateResponse], error) {
	return c.getRoomState.CallUnary(ctx, req)
}

// ListRooms calls salon.v1.RoomService.ListRooms
func (c *RoomServiceClient) ListRooms(ctx context.Context, req *connect.Request[ListRoomsRequest]) (*connect.Response[ListRoomsResponse], error) {
	return c.listRooms.CallUnary(ctx, req)
}

// LeaderboardServiceClient calls a LeaderboardService
type LeaderboardServiceClient struct {
	getLeaderboard *connect.Client[GetLeaderboardRequest, GetLeaderboardResponse]
}

// NewLeaderboardServiceClient creates a client for the LeaderboardService at baseURL
func NewLeaderboardServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *LeaderboardServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	return &LeaderboardServiceClient{
		getLeaderboard: connect.NewClient[GetLeaderboardRequest, GetLeaderboardResponse](
			httpClient, baseURL+LeaderboardServiceGetLeaderboardProcedure, clientOptions(opts)...),
	}
}

// GetLeaderboard calls salon.v1.LeaderboardService.GetLeaderboard
func (c *LeaderboardServiceClient) GetLeaderboard(ctx context.Context, req *connect.Request[GetLeaderboardRequest]) (*connect.Response[GetLeaderboardResponse], error) {
	return c.getLeaderboard.CallUnary(ctx, req)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)
}
