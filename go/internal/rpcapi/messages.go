package rpcapi

// Messages of the salon.v1 schema. JSON names follow the proto3 JSON
// mapping of the registered descriptor; 64-bit integers travel as strings.

type GetRoomStateRequest struct {
	RoomId string `json:"roomId"`
}

type RoomState struct {
	RoomId       string   `json:"roomId"`
	Fen          string   `json:"fen"`
	Seq          uint64   `json:"seq,string"`
	Outcome      string   `json:"outcome"`
	Participants []string `json:"participants"`
	LastActive   string   `json:"lastActive"`
}

type GetRoomStateResponse struct {
	Room *RoomState `json:"room"`
}

type ListRoomsRequest struct{}

type ListRoomsResponse struct {
	Rooms []*RoomState `json:"rooms"`
}

type GetLeaderboardRequest struct {
	Limit int32 `json:"limit"`
}

type LeaderboardEntry struct {
	Name      string `json:"name"`
	Score     int32  `json:"score"`
	Total     int32  `json:"total"`
	Timestamp string `json:"timestamp"`
}

type GetLeaderboardResponse struct {
	Entries []*LeaderboardEntry `json:"entries"`
}
