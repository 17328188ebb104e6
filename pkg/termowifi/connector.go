package termowifi

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/diegogd/orkli-termowifi-hass-integration/pkg/climate"
)

// Supervisor timing. The watchdog is 2.5x the default poll cadence: a
// healthy hub always has something to say within two polls.
const (
	connectTimeout = 10 * time.Second
	readWatchdog   = 150 * time.Second
	readChunkSize  = 1024

	initialBackoff = 1 * time.Second
	maxBackoff     = 60 * time.Second
)

// Send repetition counts. The link is lossy and the protocol has no
// acknowledgements; writing the same frame back-to-back is the only
// delivery mechanism, and every decode path tolerates duplicates.
const (
	commandRepeat   = 2
	discoveryRepeat = 2
	pollRepeat      = 1
)

// Supervisor connection states
type connState int

const (
	stateDisconnected connState = iota
	stateConnecting
	stateConnected
)

// Connector drives one Termowifi hub: it supervises the link with
// reconnect and backoff, reassembles the byte stream into frames,
// tracks per-room state, and issues redundant commands.
// It implements climate.Controller and climate.EventSubscriber.
type Connector struct {
	dialer Dialer

	// Live link handle, guarded by connMu. The supervisor and
	// connect-on-demand senders both dial through ensureConnected, so
	// only one dial is ever in flight.
	connMu sync.Mutex
	link   Link

	// Writes serialize here so repeated frames from concurrent senders
	// never interleave on the wire.
	writeMu sync.Mutex

	state   connState
	stateMu sync.RWMutex

	registry *registry

	subscribers   []chan climate.Event
	subscribersMu sync.Mutex

	// Supervisor lifecycle. dialCtx cancels an in-flight dial on Close.
	dialCtx    context.Context
	cancelDial context.CancelFunc
	stopChan   chan struct{}
	started    bool
	stopped    bool
	lifeMu     sync.Mutex
	wg         sync.WaitGroup
}

// NewConnector creates a connector for the hub behind dialer. The
// supervisor starts on the first Initialize or send.
func NewConnector(dialer Dialer) *Connector {
	c := &Connector{
		dialer:   dialer,
		stopChan: make(chan struct{}),
	}
	c.dialCtx, c.cancelDial = context.WithCancel(context.Background())
	c.registry = newRegistry(c.publishEvent)
	return c
}

// Start launches the link supervisor. Repeated calls are no-ops; the
// supervisor runs until Close.
func (c *Connector) Start() {
	c.lifeMu.Lock()
	defer c.lifeMu.Unlock()
	if c.started || c.stopped {
		return
	}
	c.started = true
	c.wg.Add(1)
	go c.supervise()
}

// supervise owns the read side of the link for the connector's
// lifetime: connect, pump frames, and on any failure reconnect with
// exponential backoff. Backoff resets on every successful connect.
func (c *Connector) supervise() {
	defer c.wg.Done()

	backoff := initialBackoff
	for {
		select {
		case <-c.stopChan:
			return
		default:
		}

		link, err := c.ensureConnected()
		if err != nil {
			if c.isStopped() {
				return
			}
			log.Error().Err(err).
				Str("hub", c.dialer.Address()).
				Dur("retry_in", backoff).
				Msg("Hub connection failed")
			if !c.sleep(backoff) {
				return
			}
			backoff = nextBackoff(backoff)
			continue
		}
		backoff = initialBackoff

		err = c.readFrames(link)
		c.dropLink(link)
		if c.isStopped() {
			return
		}
		log.Error().Err(err).
			Str("hub", c.dialer.Address()).
			Dur("retry_in", backoff).
			Msg("Hub link lost")
		if !c.sleep(backoff) {
			return
		}
		backoff = nextBackoff(backoff)
	}
}

func nextBackoff(d time.Duration) time.Duration {
	d *= 2
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}

// sleep waits for d unless the connector is closed first.
func (c *Connector) sleep(d time.Duration) bool {
	select {
	case <-time.After(d):
		return true
	case <-c.stopChan:
		return false
	}
}

func (c *Connector) isStopped() bool {
	select {
	case <-c.stopChan:
		return true
	default:
		return false
	}
}

// ensureConnected returns the live link, dialing under the connect lock
// if none exists. The dial is bounded by connectTimeout and aborted by
// Close.
func (c *Connector) ensureConnected() (Link, error) {
	c.connMu.Lock()
	defer c.connMu.Unlock()

	if c.link != nil {
		return c.link, nil
	}

	c.setState(stateConnecting)
	log.Debug().Str("hub", c.dialer.Address()).Msg("Connecting to hub")

	ctx, cancel := context.WithTimeout(c.dialCtx, connectTimeout)
	defer cancel()

	link, err := c.dialer.Dial(ctx)
	if err != nil {
		c.setState(stateDisconnected)
		return nil, err
	}

	c.link = link
	c.setState(stateConnected)
	log.Info().Str("hub", c.dialer.Address()).Msg("Connected to hub")
	return link, nil
}

// dropLink closes and clears the given link if it is still the current
// one. A sender may have re-dialed after a failure; its successor link
// must survive.
func (c *Connector) dropLink(link Link) {
	c.connMu.Lock()
	defer c.connMu.Unlock()

	if c.link != link {
		return
	}
	if c.link != nil {
		_ = c.link.Close()
		c.link = nil
	}
	c.setState(stateDisconnected)
}

// readFrames pumps the link until it fails, slicing the stream into
// fixed-size frames. The stream carries no delimiters or length
// prefixes; whole frames are consumed from the left and the remainder
// stays buffered. Each read is bounded by the watchdog deadline, and a
// link silent past the deadline counts as dead.
func (c *Connector) readFrames(link Link) error {
	buf := make([]byte, 0, 4*readChunkSize)
	chunk := make([]byte, readChunkSize)

	for {
		select {
		case <-c.stopChan:
			return errors.New("connector closed")
		default:
		}

		if err := link.SetReadDeadline(time.Now().Add(readWatchdog)); err != nil {
			return fmt.Errorf("set read deadline: %w", err)
		}

		n, err := link.Read(chunk)

		// A failing read may still deliver bytes; drain their frames
		// before acting on the error.
		if n > 0 {
			buf = append(buf, chunk[:n]...)

			off := 0
			for len(buf)-off >= FrameSize {
				var f Frame
				copy(f[:], buf[off:off+FrameSize])
				off += FrameSize
				c.registry.dispatch(f)
			}
			if off > 0 {
				// Shift the remainder left so the buffer never grows past
				// one chunk plus a partial frame.
				buf = buf[:copy(buf, buf[off:])]
			}
		}

		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				return fmt.Errorf("no data for %s: %w", readWatchdog, climate.ErrTimeout)
			}
			return err
		}
	}
}

// send writes a frame repeat times back-to-back, dialing on demand when
// no link is up. The protocol has no delivery acknowledgement: if the
// hub stays unreachable the frame is dropped with a warning and the
// caller sees no synchronous failure.
func (c *Connector) send(f Frame, repeat int) {
	c.Start()

	link, err := c.ensureConnected()
	if err != nil {
		log.Warn().Err(err).
			Str("frame", f.HexDump()).
			Msg("Cannot send frame: not connected")
		return
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	for i := 0; i < repeat; i++ {
		if _, err := link.Write(f.Bytes()); err != nil {
			log.Warn().Err(err).
				Str("frame", f.HexDump()).
				Msg("Frame write failed")
			return
		}
	}
	log.Debug().Str("frame", f.HexDump()).Int("repeat", repeat).Msg("Sent frame")
}

// setState must be called with connMu held (or from paths that own the
// lifecycle, like Close).
func (c *Connector) setState(s connState) {
	c.stateMu.Lock()
	c.state = s
	c.stateMu.Unlock()
}

// IsConnected reports whether the hub link is currently up.
func (c *Connector) IsConnected() bool {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.state == stateConnected
}

// Initialize starts the supervisor and broadcasts the discovery probe so
// the hub reports every room it manages. Each call re-probes, which is
// harmless: discovery repeats are consumed without duplicate events.
func (c *Connector) Initialize(ctx context.Context) error {
	if c.isStopped() {
		return climate.ErrNotConnected
	}
	c.Start()

	probe := BuildDiscoveryProbe()
	log.Debug().Str("frame", probe.HexDump()).Msg("Sending discovery probe")
	c.send(probe, discoveryRepeat)
	return nil
}

// ListRooms returns snapshots of all discovered rooms, ordered by id.
func (c *Connector) ListRooms(ctx context.Context) ([]climate.Room, error) {
	return c.registry.snapshotAll(), nil
}

// GetRoom returns a snapshot of a single room.
func (c *Connector) GetRoom(ctx context.Context, id int) (*climate.Room, error) {
	snap, ok := c.registry.snapshotOne(id)
	if !ok {
		return nil, climate.ErrRoomNotFound
	}
	return snap, nil
}

// RenameRoom changes a room's friendly name.
func (c *Connector) RenameRoom(ctx context.Context, id int, name string) error {
	if !c.registry.rename(id, name) {
		return climate.ErrRoomNotFound
	}
	log.Info().Int("room", id).Str("name", name).Msg("Room renamed")
	return nil
}

// PollRoom requests a fresh status report for one room.
func (c *Connector) PollRoom(ctx context.Context, id int) error {
	if _, ok := c.registry.snapshotOne(id); !ok {
		return climate.ErrRoomNotFound
	}
	c.send(BuildPoll(id), pollRepeat)
	return nil
}

// PollAll requests fresh status reports for every known room. Rooms are
// polled one at a time; the hub garbles replies under concurrent bursts.
func (c *Connector) PollAll(ctx context.Context) error {
	for _, id := range c.registry.ids() {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.send(BuildPoll(id), pollRepeat)
	}
	return nil
}

// SetPower switches a room's heating circuit on or off.
func (c *Connector) SetPower(ctx context.Context, id int, on bool) error {
	if _, ok := c.registry.snapshotOne(id); !ok {
		return climate.ErrRoomNotFound
	}
	c.send(BuildSwitch(id, on), commandRepeat)
	return nil
}

// SetMode switches a room between heat and cool operation.
func (c *Connector) SetMode(ctx context.Context, id int, mode climate.Mode) error {
	if _, ok := c.registry.snapshotOne(id); !ok {
		return climate.ErrRoomNotFound
	}
	c.send(BuildMode(id, mode), commandRepeat)
	return nil
}

// SetTargetTemperature sets a room's setpoint. The hub encodes
// out-of-range values silently, so the range check lives here.
func (c *Connector) SetTargetTemperature(ctx context.Context, id int, celsius float64) error {
	if _, ok := c.registry.snapshotOne(id); !ok {
		return climate.ErrRoomNotFound
	}
	if celsius < climate.MinTargetTemperature || celsius > climate.MaxTargetTemperature {
		return fmt.Errorf("%w: %.1f not in [%.1f, %.1f]",
			climate.ErrOutOfRange, celsius,
			climate.MinTargetTemperature, climate.MaxTargetTemperature)
	}
	c.send(BuildSetTemperature(id, celsius), commandRepeat)
	return nil
}

// SetState applies a generic state map. Keys are applied independently;
// the first failure stops the fan-out. Returns the room snapshot after
// the commands were issued (the hub's confirmations update it later).
func (c *Connector) SetState(ctx context.Context, id int, state map[string]any) (*climate.Room, error) {
	if _, ok := c.registry.snapshotOne(id); !ok {
		return nil, climate.ErrRoomNotFound
	}

	if v, ok := state[climate.StateKeyPower]; ok {
		power, err := climate.ParsePower(v)
		if err != nil {
			return nil, err
		}
		if err := c.SetPower(ctx, id, power == climate.PowerOn); err != nil {
			return nil, err
		}
	}
	if v, ok := state[climate.StateKeyMode]; ok {
		mode, err := climate.ParseMode(v)
		if err != nil {
			return nil, err
		}
		if err := c.SetMode(ctx, id, mode); err != nil {
			return nil, err
		}
	}
	if v, ok := state[climate.StateKeyTargetTemperature]; ok {
		celsius, okNum := v.(float64)
		if !okNum {
			return nil, fmt.Errorf("%w: target_temperature must be a number", climate.ErrValidation)
		}
		if err := c.SetTargetTemperature(ctx, id, celsius); err != nil {
			return nil, err
		}
	}

	snap, _ := c.registry.snapshotOne(id)
	return snap, nil
}

// Subscribe returns a channel receiving room events. Slow consumers drop
// events rather than stalling the dispatch path.
func (c *Connector) Subscribe() chan climate.Event {
	ch := make(chan climate.Event, 16)
	c.subscribersMu.Lock()
	c.subscribers = append(c.subscribers, ch)
	c.subscribersMu.Unlock()
	return ch
}

// Unsubscribe removes a subscription and closes its channel.
func (c *Connector) Unsubscribe(ch chan climate.Event) {
	c.subscribersMu.Lock()
	defer c.subscribersMu.Unlock()

	for i, sub := range c.subscribers {
		if sub == ch {
			c.subscribers = append(c.subscribers[:i], c.subscribers[i+1:]...)
			close(ch)
			return
		}
	}
}

// publishEvent fans an event out to all subscribers without blocking.
func (c *Connector) publishEvent(evt climate.Event) {
	c.subscribersMu.Lock()
	defer c.subscribersMu.Unlock()

	for _, ch := range c.subscribers {
		select {
		case ch <- evt:
		default:
		}
	}
}

// Close shuts the supervisor down and releases the link. Safe to call
// repeatedly, including before the link ever connected.
func (c *Connector) Close() {
	c.lifeMu.Lock()
	if c.stopped {
		c.lifeMu.Unlock()
		return
	}
	c.stopped = true
	close(c.stopChan)
	c.cancelDial()
	c.lifeMu.Unlock()

	// Closing the link unblocks an in-flight read immediately.
	c.connMu.Lock()
	if c.link != nil {
		_ = c.link.Close()
		c.link = nil
	}
	c.setState(stateDisconnected)
	c.connMu.Unlock()

	c.wg.Wait()
	log.Debug().Str("hub", c.dialer.Address()).Msg("Connector closed")
}
