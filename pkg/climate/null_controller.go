package climate

import "context"

// NullController is a no-op controller used when no hub is configured.
// It allows the API to run in limited mode without a reachable hub.
type NullController struct{}

// NewNullController creates a new NullController.
func NewNullController() *NullController {
	return &NullController{}
}

func (c *NullController) Initialize(ctx context.Context) error {
	return ErrNotConnected
}

func (c *NullController) ListRooms(ctx context.Context) ([]Room, error) {
	return []Room{}, nil
}

func (c *NullController) GetRoom(ctx context.Context, id int) (*Room, error) {
	return nil, ErrRoomNotFound
}

func (c *NullController) RenameRoom(ctx context.Context, id int, name string) error {
	return ErrNotConnected
}

func (c *NullController) PollRoom(ctx context.Context, id int) error {
	return ErrNotConnected
}

func (c *NullController) PollAll(ctx context.Context) error {
	return ErrNotConnected
}

func (c *NullController) SetPower(ctx context.Context, id int, on bool) error {
	return ErrNotConnected
}

func (c *NullController) SetMode(ctx context.Context, id int, mode Mode) error {
	return ErrNotConnected
}

func (c *NullController) SetTargetTemperature(ctx context.Context, id int, celsius float64) error {
	return ErrNotConnected
}

func (c *NullController) SetState(ctx context.Context, id int, state map[string]any) (*Room, error) {
	return nil, ErrNotConnected
}

func (c *NullController) IsConnected() bool {
	return false
}

func (c *NullController) Close() {}

// NullEventSubscriber is a no-op event subscriber used when no hub is configured.
type NullEventSubscriber struct{}

// NewNullEventSubscriber creates a new NullEventSubscriber.
func NewNullEventSubscriber() *NullEventSubscriber {
	return &NullEventSubscriber{}
}

func (s *NullEventSubscriber) Subscribe() chan Event {
	ch := make(chan Event)
	// Channel is never sent to; callers should check IsConnected() on the controller
	return ch
}

func (s *NullEventSubscriber) Unsubscribe(ch chan Event) {
	close(ch)
}
