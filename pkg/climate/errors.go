package climate

import "errors"

var (
	// ErrRoomNotFound indicates the hub has not reported a room with that id
	ErrRoomNotFound = errors.New("room not found")

	// ErrTimeout indicates an operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrNotConnected indicates the hub link is down
	ErrNotConnected = errors.New("hub not connected")

	// ErrUnsupported indicates an operation the hub cannot perform
	ErrUnsupported = errors.New("operation not supported")

	// ErrValidation indicates a state payload failed schema validation
	ErrValidation = errors.New("validation error")

	// ErrOutOfRange indicates a setpoint outside the hub's accepted range
	ErrOutOfRange = errors.New("temperature out of range")
)
