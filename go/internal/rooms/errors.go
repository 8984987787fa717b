package rooms

import "errors"

// ErrRoomNotFound is returned when an operation targets a room nobody has joined
var ErrRoomNotFound = errors.New("room not found")
