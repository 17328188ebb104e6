package termowifi

import (
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/diegogd/orkli-termowifi-hass-integration/pkg/climate"
)

// registry owns the set of discovered rooms and routes inbound frames to
// them. Rooms are created exactly once per discovered id and never
// removed; the hub has no removal protocol.
type registry struct {
	mu    sync.RWMutex
	rooms map[int]*room

	// onEvent receives discovery and change events, wired by the connector.
	onEvent func(climate.Event)
}

func newRegistry(onEvent func(climate.Event)) *registry {
	return &registry{
		rooms:   make(map[int]*room),
		onEvent: onEvent,
	}
}

// dispatch routes one reassembled frame. Discovery gets first claim:
// discovery responses also carry a zero data byte, so offering rooms
// first would let the keep-alive guard swallow them.
func (g *registry) dispatch(f Frame) {
	class := Classify(f)
	switch class {
	case HeaderValidAnswer, HeaderValidConfirmation:
	case HeaderSendCommand:
		// The hub echoes commands back on the same stream.
		log.Debug().Str("frame", f.HexDump()).Msg("Acknowledged sent command")
		return
	default:
		log.Info().Str("frame", f.HexDump()).Msg("Discarded invalid frame")
		return
	}

	if g.tryDiscovery(f, class) {
		log.Debug().Str("frame", f.HexDump()).Msg("Processed discovery frame")
		return
	}

	if g.offerToRooms(f, class) {
		return
	}

	log.Warn().
		Uint8("cid", f.CID()).
		Uint8("data", f.Data()).
		Uint8("checksum", f.Checksum()).
		Msg("Unprocessed valid frame")
}

// tryDiscovery interprets hub room-identification responses. The
// checksum check runs for every answer/confirmation frame so anomalies
// get logged exactly once, before rooms see the frame.
func (g *registry) tryDiscovery(f Frame, class HeaderClass) bool {
	if !Validate(f, class) {
		log.Warn().Str("frame", f.HexDump()).Msg("Invalid frame checksum")
		return false
	}

	cid := f.CID()
	if cid < discoveryCIDMin || cid > discoveryCIDMax {
		return false
	}
	if f.Data() != 0x00 {
		log.Warn().Str("frame", f.HexDump()).Msg("Invalid room identification")
		return false
	}

	roomID := int(cid - discoveryCIDMin)

	g.mu.Lock()
	if _, ok := g.rooms[roomID]; ok {
		g.mu.Unlock()
		log.Debug().Int("room", roomID).Msg("Room reported again by hub")
		return true
	}
	rm := newRoom(roomID)
	g.rooms[roomID] = rm
	snap := rm.snapshot()
	g.mu.Unlock()

	log.Info().Int("room", roomID).Msg("Discovered new room")
	g.publish(climate.EventRoomDiscovered, snap)
	return true
}

// offerToRooms walks known rooms in ascending id order until one claims
// the frame. Addressing families are disjoint across rooms, so at most
// one room can decode a given frame; the order only pins down which room
// consumes keep-alives.
func (g *registry) offerToRooms(f Frame, class HeaderClass) bool {
	g.mu.Lock()

	ids := make([]int, 0, len(g.rooms))
	for id := range g.rooms {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		rm := g.rooms[id]
		claimed, changed := rm.apply(f, class)
		if !claimed {
			continue
		}
		var snap *climate.Room
		if changed {
			snap = rm.snapshot()
		}
		g.mu.Unlock()

		if snap != nil {
			g.publish(climate.EventRoomChanged, snap)
		}
		return true
	}

	g.mu.Unlock()
	return false
}

func (g *registry) publish(eventType string, room *climate.Room) {
	if g.onEvent == nil {
		return
	}
	g.onEvent(climate.Event{
		Type:      eventType,
		Room:      room,
		Timestamp: time.Now(),
	})
}

// snapshotAll returns copies of every known room, ordered by id.
func (g *registry) snapshotAll() []climate.Room {
	g.mu.RLock()
	defer g.mu.RUnlock()

	ids := make([]int, 0, len(g.rooms))
	for id := range g.rooms {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]climate.Room, 0, len(ids))
	for _, id := range ids {
		out = append(out, *g.rooms[id].snapshot())
	}
	return out
}

// snapshotOne returns a copy of a single room if the hub has reported it.
func (g *registry) snapshotOne(id int) (*climate.Room, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	rm, ok := g.rooms[id]
	if !ok {
		return nil, false
	}
	return rm.snapshot(), true
}

// rename updates a room's friendly name. A real change publishes a
// room_changed event so live feeds and the name store see it.
func (g *registry) rename(id int, name string) bool {
	g.mu.Lock()
	rm, ok := g.rooms[id]
	if !ok {
		g.mu.Unlock()
		return false
	}
	if rm.name == name {
		g.mu.Unlock()
		return true
	}
	rm.name = name
	snap := rm.snapshot()
	g.mu.Unlock()

	g.publish(climate.EventRoomChanged, snap)
	return true
}

// ids returns the known room ids in ascending order.
func (g *registry) ids() []int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	ids := make([]int, 0, len(g.rooms))
	for id := range g.rooms {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
