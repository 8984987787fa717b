package rpcapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONCodec(t *testing.T) {
	codec := JSONCodec{}
	assert.Equal(t, "json", codec.Name())

	data, err := codec.Marshal(&RoomState{RoomId: "r1", Seq: 3, Participants: []string{"a"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"roomId":"r1","fen":"","seq":"3","outcome":"","participants":["a"],"lastActive":""}`, string(data))

	var back RoomState
	require.NoError(t, codec.Unmarshal(data, &back))
	assert.Equal(t, uint64(3), back.Seq)

	var empty GetRoomStateRequest
	assert.NoError(t, codec.Unmarshal(nil, &empty))
	assert.Error(t, codec.Unmarshal([]byte("{"), &empty))
}
