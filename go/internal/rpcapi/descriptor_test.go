package rpcapi

import (
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
)

func TestFile_RegistersServices(t *testing.T) {
	fd, err := File()
	require.NoError(t, err)
	assert.Equal(t, FileName, fd.Path())

	for _, name := range []string{RoomServiceName, LeaderboardServiceName} {
		d, err := protoregistry.GlobalFiles.FindDescriptorByName(protoreflect.FullName(name))
		require.NoError(t, err, name)
		_, ok := d.(protoreflect.ServiceDescriptor)
		assert.True(t, ok, "%s is not a service", name)
	}

	md := methodDescriptor("RoomService", "GetRoomState")
	assert.Equal(t, protoreflect.FullName("salon.v1.GetRoomStateRequest"), md.Input().FullName())
	assert.Equal(t, protoreflect.FullName("salon.v1.GetRoomStateResponse"), md.Output().FullName())

	// A second call returns the same registration
	again, err := File()
	require.NoError(t, err)
	assert.Same(t, fd, again)
}

func TestFile_ProceduresMatchSchema(t *testing.T) {
	procedures := map[string][2]string{
		RoomServiceGetRoomStateProcedure:          {"RoomService", "GetRoomState"},
		RoomServiceListRoomsProcedure:             {"RoomService", "ListRooms"},
		LeaderboardServiceGetLeaderboardProcedure: {"LeaderboardService", "GetLeaderboard"},
	}
	for procedure, sm := range procedures {
		md := methodDescriptor(sm[0], sm[1])
		want := "/" + string(md.Parent().FullName()) + "/" + string(md.Name())
		assert.Equal(t, want, procedure)
	}
}

// The Go messages must carry the JSON names the schema advertises
func TestMessages_JSONNamesMatchSchema(t *testing.T) {
	fd, err := File()
	require.NoError(t, err)

	messages := map[string]interface{}{
		"GetRoomStateRequest":    GetRoomStateRequest{},
		"RoomState":              RoomState{},
		"GetRoomStateResponse":   GetRoomStateResponse{},
		"ListRoomsRequest":       ListRoomsRequest{},
		"ListRoomsResponse":      ListRoomsResponse{},
		"GetLeaderboardRequest":  GetLeaderboardRequest{},
		"LeaderboardEntry":       LeaderboardEntry{},
		"GetLeaderboardResponse": GetLeaderboardResponse{},
	}
	require.Equal(t, fd.Messages().Len(), len(messages))

	for name, msg := range messages {
		md := fd.Messages().ByName(protoreflect.Name(name))
		require.NotNil(t, md, name)

		var want []string
		for i := 0; i < md.Fields().Len(); i++ {
			want = append(want, md.Fields().Get(i).JSONName())
		}

		var got []string
		typ := reflect.TypeOf(msg)
		for i := 0; i < typ.NumField(); i++ {
			tag, _, _ := strings.Cut(typ.Field(i).Tag.Get("json"), ",")
			got = append(got, tag)
		}

		sort.Strings(want)
		sort.Strings(got)
		assert.Equal(t, want, got, name)
	}
}
