package termowifi

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/diegogd/orkli-termowifi-hass-integration/pkg/climate"
)

// scriptedRead is one scripted Read result. Data and error can arrive
// together, as io.Reader permits.
type scriptedRead struct {
	data []byte
	err  error
}

// scriptedLink feeds the connector pre-arranged inbound reads and
// records everything written to it, plus every read deadline armed.
// Reads block until a scripted read arrives, the read side is closed
// (EOF), or the link itself is closed.
type scriptedLink struct {
	reads     chan scriptedRead
	closed    chan struct{}
	closeOnce sync.Once

	mu        sync.Mutex
	writes    [][]byte
	writeErr  error
	deadlines []time.Time
}

func newScriptedLink(chunks ...[]byte) *scriptedLink {
	l := &scriptedLink{
		reads:  make(chan scriptedRead, 16),
		closed: make(chan struct{}),
	}
	for _, c := range chunks {
		l.reads <- scriptedRead{data: c}
	}
	return l
}

// queueRead schedules the next Read result, data and error together.
func (l *scriptedLink) queueRead(data []byte, err error) {
	l.reads <- scriptedRead{data: data, err: err}
}

func (l *scriptedLink) Read(p []byte) (int, error) {
	select {
	case r, ok := <-l.reads:
		if !ok {
			return 0, io.EOF
		}
		return copy(p, r.data), r.err
	case <-l.closed:
		return 0, errors.New("link closed")
	}
}

func (l *scriptedLink) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.writeErr != nil {
		return 0, l.writeErr
	}
	l.writes = append(l.writes, append([]byte(nil), p...))
	return len(p), nil
}

func (l *scriptedLink) Close() error {
	l.closeOnce.Do(func() { close(l.closed) })
	return nil
}

func (l *scriptedLink) SetReadDeadline(t time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.deadlines = append(l.deadlines, t)
	return nil
}

func (l *scriptedLink) written() [][]byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([][]byte, len(l.writes))
	copy(out, l.writes)
	return out
}

func (l *scriptedLink) armedDeadlines() []time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]time.Time, len(l.deadlines))
	copy(out, l.deadlines)
	return out
}

func (l *scriptedLink) isClosed() bool {
	select {
	case <-l.closed:
		return true
	default:
		return false
	}
}

// scriptedDialer hands out links in order and records when each dial
// happened. Once the queue is empty every dial fails, simulating an
// unreachable hub.
type scriptedDialer struct {
	mu    sync.Mutex
	queue []Link
	times []time.Time
}

func (d *scriptedDialer) Dial(ctx context.Context) (Link, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.times = append(d.times, time.Now())
	if len(d.queue) == 0 {
		return nil, errors.New("hub unreachable")
	}
	l := d.queue[0]
	d.queue = d.queue[1:]
	return l, nil
}

func (d *scriptedDialer) Address() string { return "hub.test:5000" }

func (d *scriptedDialer) dialTimes() []time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]time.Time, len(d.times))
	copy(out, d.times)
	return out
}

func waitEvent(t *testing.T, ch chan climate.Event, eventType string) climate.Event {
	t.Helper()
	select {
	case evt := <-ch:
		if evt.Type != eventType {
			t.Fatalf("event type = %q, want %q", evt.Type, eventType)
		}
		return evt
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %s event", eventType)
	}
	return climate.Event{}
}

func waitUntil(t *testing.T, timeout time.Duration, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestConnectorDiscoverAndCommand(t *testing.T) {
	link := newScriptedLink(discoveryAnswer(1).Bytes())
	dialer := &scriptedDialer{queue: []Link{link}}

	c := NewConnector(dialer)
	defer c.Close()
	events := c.Subscribe()

	c.Start()

	evt := waitEvent(t, events, climate.EventRoomDiscovered)
	if evt.Room.ID != 1 {
		t.Fatalf("discovered room %d, want 1", evt.Room.ID)
	}
	if !c.IsConnected() {
		t.Error("connector must report connected after discovery")
	}

	ctx := context.Background()
	if err := c.SetTargetTemperature(ctx, 1, 22.0); err != nil {
		t.Fatalf("SetTargetTemperature: %v", err)
	}

	writes := link.written()
	want := []byte{0x3B, 0x01, 0xFE, 0x04, 0x06, 0x2C, 0x35}
	if len(writes) != commandRepeat {
		t.Fatalf("writes = %d, want %d", len(writes), commandRepeat)
	}
	for i, w := range writes {
		if !bytes.Equal(w, want) {
			t.Errorf("write %d = % 02X, want % 02X", i, w, want)
		}
	}

	room, err := c.GetRoom(ctx, 1)
	if err != nil {
		t.Fatalf("GetRoom: %v", err)
	}
	if room.Name != "Room 1" {
		t.Errorf("name = %q, want Room 1", room.Name)
	}
}

func TestConnectorInitializeSendsProbe(t *testing.T) {
	link := newScriptedLink()
	dialer := &scriptedDialer{queue: []Link{link}}

	c := NewConnector(dialer)
	defer c.Close()

	if err := c.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	writes := link.written()
	if len(writes) != discoveryRepeat {
		t.Fatalf("writes = %d, want %d", len(writes), discoveryRepeat)
	}
	probe := BuildDiscoveryProbe().Bytes()
	for i, w := range writes {
		if !bytes.Equal(w, probe) {
			t.Errorf("write %d = % 02X, want % 02X", i, w, probe)
		}
	}
}

// Frames arrive however TCP segments them; the connector must stitch
// them back together across read boundaries.
func TestConnectorReassemblesSplitFrames(t *testing.T) {
	id := discoveryAnswer(0).Bytes()
	report := []byte{0x3B, 0x01, 0x01, 0x04, 0x03, 0x21, 0x2A}

	link := newScriptedLink(
		id[:4],
		append(append([]byte(nil), id[4:]...), report...),
	)
	dialer := &scriptedDialer{queue: []Link{link}}

	c := NewConnector(dialer)
	defer c.Close()
	events := c.Subscribe()

	c.Start()

	waitEvent(t, events, climate.EventRoomDiscovered)
	evt := waitEvent(t, events, climate.EventRoomChanged)
	if evt.Room.MeasuredTemperature == nil || *evt.Room.MeasuredTemperature != 64.5 {
		t.Fatalf("measured = %v, want 64.5", evt.Room.MeasuredTemperature)
	}
}

func TestConnectorRoomGuards(t *testing.T) {
	c := NewConnector(&scriptedDialer{})
	defer c.Close()

	ctx := context.Background()

	if _, err := c.GetRoom(ctx, 0); !errors.Is(err, climate.ErrRoomNotFound) {
		t.Errorf("GetRoom err = %v, want ErrRoomNotFound", err)
	}
	if err := c.SetPower(ctx, 0, true); !errors.Is(err, climate.ErrRoomNotFound) {
		t.Errorf("SetPower err = %v, want ErrRoomNotFound", err)
	}
	if err := c.SetMode(ctx, 0, climate.ModeHeat); !errors.Is(err, climate.ErrRoomNotFound) {
		t.Errorf("SetMode err = %v, want ErrRoomNotFound", err)
	}
	if err := c.SetTargetTemperature(ctx, 0, 22.0); !errors.Is(err, climate.ErrRoomNotFound) {
		t.Errorf("SetTargetTemperature err = %v, want ErrRoomNotFound", err)
	}
	if err := c.PollRoom(ctx, 0); !errors.Is(err, climate.ErrRoomNotFound) {
		t.Errorf("PollRoom err = %v, want ErrRoomNotFound", err)
	}
	if err := c.RenameRoom(ctx, 0, "Kitchen"); !errors.Is(err, climate.ErrRoomNotFound) {
		t.Errorf("RenameRoom err = %v, want ErrRoomNotFound", err)
	}
	if _, err := c.SetState(ctx, 0, map[string]any{"power": "on"}); !errors.Is(err, climate.ErrRoomNotFound) {
		t.Errorf("SetState err = %v, want ErrRoomNotFound", err)
	}

	rooms, err := c.ListRooms(ctx)
	if err != nil {
		t.Fatalf("ListRooms: %v", err)
	}
	if len(rooms) != 0 {
		t.Errorf("rooms = %d, want 0", len(rooms))
	}
}

func TestConnectorSetState(t *testing.T) {
	link := newScriptedLink(discoveryAnswer(1).Bytes())
	dialer := &scriptedDialer{queue: []Link{link}}

	c := NewConnector(dialer)
	defer c.Close()
	events := c.Subscribe()
	c.Start()
	waitEvent(t, events, climate.EventRoomDiscovered)

	ctx := context.Background()
	room, err := c.SetState(ctx, 1, map[string]any{
		"power":              "on",
		"mode":               "cool",
		"target_temperature": 21.0,
	})
	if err != nil {
		t.Fatalf("SetState: %v", err)
	}
	if room == nil || room.ID != 1 {
		t.Fatalf("room = %+v, want id 1", room)
	}

	writes := link.written()
	wantFrames := [][]byte{
		{0x3B, 0x01, 0xFE, 0x04, 0x04, 0x03, 0x0A}, // power on
		{0x3B, 0x01, 0xFE, 0x04, 0x04, 0x03, 0x0A},
		{0x3B, 0x01, 0xFE, 0x04, 0x05, 0x03, 0x0B}, // mode cool
		{0x3B, 0x01, 0xFE, 0x04, 0x05, 0x03, 0x0B},
		{0x3B, 0x01, 0xFE, 0x04, 0x06, 0x2A, 0x33}, // setpoint 21.0
		{0x3B, 0x01, 0xFE, 0x04, 0x06, 0x2A, 0x33},
	}
	if len(writes) != len(wantFrames) {
		t.Fatalf("writes = %d, want %d", len(writes), len(wantFrames))
	}
	for i := range wantFrames {
		if !bytes.Equal(writes[i], wantFrames[i]) {
			t.Errorf("write %d = % 02X, want % 02X", i, writes[i], wantFrames[i])
		}
	}

	if _, err := c.SetState(ctx, 1, map[string]any{"power": "maybe"}); !errors.Is(err, climate.ErrValidation) {
		t.Errorf("bad power err = %v, want ErrValidation", err)
	}
	if _, err := c.SetState(ctx, 1, map[string]any{"target_temperature": "warm"}); !errors.Is(err, climate.ErrValidation) {
		t.Errorf("non-numeric setpoint err = %v, want ErrValidation", err)
	}
	if _, err := c.SetState(ctx, 1, map[string]any{"target_temperature": 50.0}); !errors.Is(err, climate.ErrOutOfRange) {
		t.Errorf("out of range setpoint err = %v, want ErrOutOfRange", err)
	}
	if got := len(link.written()); got != len(wantFrames) {
		t.Errorf("rejected states still wrote frames: %d writes", got)
	}
}

func TestConnectorSetTemperatureRange(t *testing.T) {
	link := newScriptedLink(discoveryAnswer(0).Bytes())
	dialer := &scriptedDialer{queue: []Link{link}}

	c := NewConnector(dialer)
	defer c.Close()
	events := c.Subscribe()
	c.Start()
	waitEvent(t, events, climate.EventRoomDiscovered)

	ctx := context.Background()
	for _, celsius := range []float64{14.5, 35.5, -10, 100} {
		if err := c.SetTargetTemperature(ctx, 0, celsius); !errors.Is(err, climate.ErrOutOfRange) {
			t.Errorf("SetTargetTemperature(%v) err = %v, want ErrOutOfRange", celsius, err)
		}
	}
	if got := len(link.written()); got != 0 {
		t.Errorf("rejected setpoints wrote %d frames", got)
	}

	// Boundary values pass.
	if err := c.SetTargetTemperature(ctx, 0, 15.0); err != nil {
		t.Errorf("SetTargetTemperature(15.0): %v", err)
	}
	if err := c.SetTargetTemperature(ctx, 0, 35.0); err != nil {
		t.Errorf("SetTargetTemperature(35.0): %v", err)
	}
}

func TestConnectorPollAll(t *testing.T) {
	link := newScriptedLink(
		discoveryAnswer(0).Bytes(),
		discoveryAnswer(2).Bytes(),
	)
	dialer := &scriptedDialer{queue: []Link{link}}

	c := NewConnector(dialer)
	defer c.Close()
	events := c.Subscribe()
	c.Start()
	waitEvent(t, events, climate.EventRoomDiscovered)
	waitEvent(t, events, climate.EventRoomDiscovered)

	if err := c.PollAll(context.Background()); err != nil {
		t.Fatalf("PollAll: %v", err)
	}

	writes := link.written()
	wantFrames := [][]byte{
		{0x3B, 0x01, 0xFE, 0x04, 0x03, 0x00, 0x06}, // poll room 0
		{0x3B, 0x01, 0xFE, 0x04, 0x0B, 0x00, 0x0E}, // poll room 2
	}
	if len(writes) != len(wantFrames) {
		t.Fatalf("writes = %d, want %d", len(writes), len(wantFrames))
	}
	for i := range wantFrames {
		if !bytes.Equal(writes[i], wantFrames[i]) {
			t.Errorf("write %d = % 02X, want % 02X", i, writes[i], wantFrames[i])
		}
	}
}

func TestConnectorCloseLifecycle(t *testing.T) {
	dialer := &scriptedDialer{}
	c := NewConnector(dialer)

	c.Close()
	c.Close()

	c.Start()
	time.Sleep(50 * time.Millisecond)
	if got := len(dialer.dialTimes()); got != 0 {
		t.Errorf("supervisor dialed %d times after Close", got)
	}

	if err := c.Initialize(context.Background()); !errors.Is(err, climate.ErrNotConnected) {
		t.Errorf("Initialize after Close err = %v, want ErrNotConnected", err)
	}
	if c.IsConnected() {
		t.Error("closed connector must not report connected")
	}
}

func TestConnectorSubscribeUnsubscribe(t *testing.T) {
	c := NewConnector(&scriptedDialer{})
	defer c.Close()

	ch := c.Subscribe()
	c.Unsubscribe(ch)

	if _, ok := <-ch; ok {
		t.Error("unsubscribed channel must be closed")
	}

	// A second unsubscribe of the same channel is a no-op.
	c.Unsubscribe(ch)
}

func TestConnectorReconnectsAfterLinkLoss(t *testing.T) {
	if testing.Short() {
		t.Skip("reconnect backoff takes seconds")
	}

	link1 := newScriptedLink(discoveryAnswer(0).Bytes())
	link2 := newScriptedLink()
	dialer := &scriptedDialer{queue: []Link{link1, link2}}

	c := NewConnector(dialer)
	defer c.Close()
	events := c.Subscribe()
	c.Start()
	waitEvent(t, events, climate.EventRoomDiscovered)

	// Hub drops the connection.
	close(link1.reads)

	waitUntil(t, 5*time.Second, "second dial", func() bool {
		return len(dialer.dialTimes()) >= 2
	})
	waitUntil(t, 2*time.Second, "reconnect", c.IsConnected)

	// Room state survives the reconnect.
	if _, err := c.GetRoom(context.Background(), 0); err != nil {
		t.Errorf("GetRoom after reconnect: %v", err)
	}
}

func TestConnectorDialBackoff(t *testing.T) {
	if testing.Short() {
		t.Skip("backoff measurement takes seconds")
	}

	dialer := &scriptedDialer{}
	c := NewConnector(dialer)
	c.Start()

	time.Sleep(3300 * time.Millisecond)
	c.Close()

	times := dialer.dialTimes()
	if len(times) < 3 {
		t.Fatalf("dial attempts = %d, want at least 3", len(times))
	}
	if gap := times[1].Sub(times[0]); gap < 900*time.Millisecond {
		t.Errorf("first retry after %v, want about 1s", gap)
	}
	if gap := times[2].Sub(times[1]); gap < 1900*time.Millisecond {
		t.Errorf("second retry after %v, want about 2s", gap)
	}
}

// A read that trips the watchdog deadline is a timeout, not a generic
// link error, and the deadline must be armed before the read.
func TestConnectorReadTimeoutClassified(t *testing.T) {
	link := newScriptedLink()
	link.queueRead(nil, os.ErrDeadlineExceeded)

	c := NewConnector(&scriptedDialer{})
	defer c.Close()

	err := c.readFrames(link)
	if !errors.Is(err, climate.ErrTimeout) {
		t.Fatalf("readFrames err = %v, want ErrTimeout", err)
	}

	deadlines := link.armedDeadlines()
	if len(deadlines) != 1 {
		t.Fatalf("armed deadlines = %d, want 1", len(deadlines))
	}
	lead := time.Until(deadlines[0])
	if lead < readWatchdog-time.Second || lead > readWatchdog+time.Second {
		t.Errorf("deadline armed %v ahead, want about %v", lead, readWatchdog)
	}
}

// io.Reader allows a failing Read to deliver bytes; frames riding the
// dying read must be dispatched before the error surfaces.
func TestConnectorConsumesFinalReadBytes(t *testing.T) {
	link := newScriptedLink()
	link.queueRead(discoveryAnswer(3).Bytes(), io.EOF)

	c := NewConnector(&scriptedDialer{})
	defer c.Close()
	events := c.Subscribe()

	if err := c.readFrames(link); !errors.Is(err, io.EOF) {
		t.Fatalf("readFrames err = %v, want io.EOF", err)
	}

	evt := waitEvent(t, events, climate.EventRoomDiscovered)
	if evt.Room.ID != 3 {
		t.Fatalf("discovered room %d, want 3", evt.Room.ID)
	}
}

// A hub silent past the watchdog counts as dead: the supervisor closes
// the link and redials after backoff. Every read re-arms a fresh
// deadline, and a room re-reported on the new link is not announced
// again.
func TestConnectorWatchdogTimeoutReconnect(t *testing.T) {
	if testing.Short() {
		t.Skip("reconnect backoff takes seconds")
	}

	start := time.Now()
	link1 := newScriptedLink(discoveryAnswer(0).Bytes())
	link2 := newScriptedLink(discoveryAnswer(0).Bytes())
	dialer := &scriptedDialer{queue: []Link{link1, link2}}

	c := NewConnector(dialer)
	defer c.Close()
	events := c.Subscribe()
	c.Start()
	waitEvent(t, events, climate.EventRoomDiscovered)

	// Watchdog fires on the silent link.
	failAt := time.Now()
	link1.queueRead(nil, os.ErrDeadlineExceeded)

	waitUntil(t, 5*time.Second, "second dial", func() bool {
		return len(dialer.dialTimes()) >= 2
	})
	waitUntil(t, 2*time.Second, "reconnect", c.IsConnected)

	if !link1.isClosed() {
		t.Error("timed-out link must be closed")
	}

	times := dialer.dialTimes()
	if gap := times[1].Sub(failAt); gap < 900*time.Millisecond {
		t.Errorf("redial after %v, want about 1s of backoff", gap)
	}

	for i, link := range []*scriptedLink{link1, link2} {
		for j, d := range link.armedDeadlines() {
			lead := d.Sub(start)
			if lead < readWatchdog-time.Second || lead > readWatchdog+10*time.Second {
				t.Errorf("link %d deadline %d armed %v ahead, want about %v",
					i+1, j, lead, readWatchdog)
			}
		}
	}

	// Room state survives the reconnect, and the re-reported room must
	// not be announced a second time.
	if _, err := c.GetRoom(context.Background(), 0); err != nil {
		t.Errorf("GetRoom after reconnect: %v", err)
	}
	select {
	case evt := <-events:
		t.Errorf("unexpected %s event after reconnect", evt.Type)
	case <-time.After(300 * time.Millisecond):
	}
}
