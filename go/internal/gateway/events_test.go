package gateway

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		room    string
		want    string
		wantErr bool
	}{
		{name: "explicit", room: "r1", want: "r1"},
		{name: "trimmed", room: "  r1 ", want: "r1"},
		{name: "empty uses default", room: "", want: "lobby"},
		{name: "blank uses default", room: "   ", want: "lobby"},
		{name: "too long", room: strings.Repeat("x", MaxRoomIDLength+1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			join := JoinRequest{Room: tt.room}
			move := MoveRequest{Room: tt.room, UCI: "e2e4"}
			reset := ResetRequest{Room: tt.room}

			for _, err := range []error{join.Validate("lobby"), move.Validate("lobby"), reset.Validate("lobby")} {
				if tt.wantErr {
					assert.ErrorIs(t, err, ErrInvalidRequest)
				} else {
					assert.NoError(t, err)
				}
			}
			if !tt.wantErr {
				assert.Equal(t, tt.want, join.Room)
				assert.Equal(t, tt.want, move.Room)
				assert.Equal(t, tt.want, reset.Room)
			}
		})
	}
}

func TestNewRoomEvent(t *testing.T) {
	event, err := NewRoomEvent("r1", EventTypeMoveMade, MoveMadePayload{UCI: "e2e4", FEN: afterE4, Seq: 1, Outcome: "*"})
	require.NoError(t, err)

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, "r1", event.RoomID)
	assert.False(t, event.Timestamp.IsZero())

	payload, err := ParseEventPayload(event)
	require.NoError(t, err)
	assert.Equal(t, MoveMadePayload{UCI: "e2e4", FEN: afterE4, Seq: 1, Outcome: "*"}, payload)

	_, err = ParseEventPayload(&RoomEvent{Type: EventTypeJoinGame})
	assert.Error(t, err)
}

func TestAllowOrigins(t *testing.T) {
	check := AllowOrigins([]string{"http://localhost:3000"})

	req := func(origin string) bool {
		r := newOriginRequest(origin)
		return check(r)
	}
	assert.True(t, req("http://localhost:3000"))
	assert.True(t, req(""))
	assert.False(t, req("http://evil.example"))

	assert.True(t, AllowOrigins(nil)(newOriginRequest("http://anything")))
	assert.True(t, AllowOrigins([]string{"*"})(newOriginRequest("http://anything")))
}
