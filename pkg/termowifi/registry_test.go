package termowifi

import (
	"testing"

	"github.com/diegogd/orkli-termowifi-hass-integration/pkg/climate"
)

// eventCollector records published events for assertions. Dispatch is
// synchronous, so no locking is needed.
type eventCollector struct {
	events []climate.Event
}

func (c *eventCollector) record(evt climate.Event) {
	c.events = append(c.events, evt)
}

func (c *eventCollector) ofType(eventType string) []climate.Event {
	var out []climate.Event
	for _, evt := range c.events {
		if evt.Type == eventType {
			out = append(out, evt)
		}
	}
	return out
}

// discoveryAnswer builds the hub's room identification response.
func discoveryAnswer(roomID int) Frame {
	cid := byte(discoveryCIDMin + roomID)
	return Frame{0x3B, 0x01, 0x01, 0x04, cid, 0x00, Checksum(cid, 0x00, offsetValidAnswer)}
}

func TestRegistryDiscovery(t *testing.T) {
	col := &eventCollector{}
	g := newRegistry(col.record)

	// The hub sends every identification twice; each room must come out
	// exactly once.
	for roomID := 0; roomID < MaxRooms; roomID++ {
		g.dispatch(discoveryAnswer(roomID))
		g.dispatch(discoveryAnswer(roomID))
	}

	discovered := col.ofType(climate.EventRoomDiscovered)
	if len(discovered) != MaxRooms {
		t.Fatalf("discovered events = %d, want %d", len(discovered), MaxRooms)
	}

	rooms := g.snapshotAll()
	if len(rooms) != MaxRooms {
		t.Fatalf("rooms = %d, want %d", len(rooms), MaxRooms)
	}
	for i, rm := range rooms {
		if rm.ID != i {
			t.Errorf("rooms[%d].ID = %d, want %d", i, rm.ID, i)
		}
		if want := "Room " + string(rune('0'+i)); rm.Name != want {
			t.Errorf("rooms[%d].Name = %q, want %q", i, rm.Name, want)
		}
	}
}

func TestRegistryMeasuredTemperatureFlow(t *testing.T) {
	col := &eventCollector{}
	g := newRegistry(col.record)

	g.dispatch(discoveryAnswer(0))

	report := Frame{0x3B, 0x01, 0x01, 0x04, 0x03, 0x21, 0x2A}
	g.dispatch(report)

	changed := col.ofType(climate.EventRoomChanged)
	if len(changed) != 1 {
		t.Fatalf("changed events = %d, want 1", len(changed))
	}
	room := changed[0].Room
	if room.MeasuredTemperature == nil || *room.MeasuredTemperature != 64.5 {
		t.Fatalf("measured = %v, want 64.5", room.MeasuredTemperature)
	}

	// The hub repeats reports; the repeat must not publish again.
	g.dispatch(report)
	if got := len(col.ofType(climate.EventRoomChanged)); got != 1 {
		t.Errorf("changed events after repeat = %d, want 1", got)
	}
}

func TestRegistryKeepAliveConsumed(t *testing.T) {
	col := &eventCollector{}
	g := newRegistry(col.record)

	g.dispatch(discoveryAnswer(0))
	g.dispatch(discoveryAnswer(1))
	col.events = nil

	// Zero data with an arbitrary cid is the hub's idle chatter.
	g.dispatch(Frame{0x3B, 0x01, 0x01, 0x04, 0x07, 0x00, 0x0D})

	// Even a corrupted checksum does not stop keep-alive consumption.
	g.dispatch(Frame{0x3B, 0x01, 0x01, 0x04, 0x7F, 0x00, 0x00})

	if len(col.events) != 0 {
		t.Fatalf("events = %d, want 0", len(col.events))
	}
	for _, rm := range g.snapshotAll() {
		if rm.Power != nil || rm.Mode != nil || rm.TargetTemperature != nil ||
			rm.MeasuredTemperature != nil || rm.Humidity != nil {
			t.Errorf("room %d state touched by keep-alive", rm.ID)
		}
	}
}

func TestRegistryInvalidRoomIdentification(t *testing.T) {
	col := &eventCollector{}
	g := newRegistry(col.record)

	// Discovery-range cid with a nonzero data byte and a checksum that
	// still adds up. Not a legal identification, must not create a room.
	g.dispatch(Frame{0x3B, 0x01, 0x01, 0x04, 0x32, 0x05, 0x3D})

	if len(col.events) != 0 {
		t.Fatalf("events = %d, want 0", len(col.events))
	}
	if got := len(g.snapshotAll()); got != 0 {
		t.Fatalf("rooms = %d, want 0", got)
	}
}

func TestRegistryCorruptFrameIgnored(t *testing.T) {
	col := &eventCollector{}
	g := newRegistry(col.record)

	g.dispatch(discoveryAnswer(0))
	col.events = nil

	// Room 0 power frame with a wrong checksum.
	g.dispatch(Frame{0x3B, 0x01, 0x01, 0x04, 0x00, 0x03, 0xFF})

	if len(col.events) != 0 {
		t.Fatalf("events = %d, want 0", len(col.events))
	}
	rm, _ := g.snapshotOne(0)
	if rm.Power != nil {
		t.Errorf("power = %v, want unset", *rm.Power)
	}
}

func TestRegistryCommandEchoIgnored(t *testing.T) {
	col := &eventCollector{}
	g := newRegistry(col.record)

	g.dispatch(discoveryAnswer(0))
	col.events = nil

	// The hub echoes sent commands back on the same stream.
	g.dispatch(BuildSwitch(0, true))

	if len(col.events) != 0 {
		t.Fatalf("events = %d, want 0", len(col.events))
	}
	rm, _ := g.snapshotOne(0)
	if rm.Power != nil {
		t.Errorf("power = %v, want unset", *rm.Power)
	}
}

func TestRegistryForeignHeaderDiscarded(t *testing.T) {
	col := &eventCollector{}
	g := newRegistry(col.record)

	g.dispatch(Frame{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF, 0x00})
	g.dispatch(Frame{})

	if len(col.events) != 0 {
		t.Fatalf("events = %d, want 0", len(col.events))
	}
}

func TestRegistryUnknownRoomFrameUnclaimed(t *testing.T) {
	col := &eventCollector{}
	g := newRegistry(col.record)

	g.dispatch(discoveryAnswer(0))
	col.events = nil

	// A valid power report for room 2, which was never discovered.
	g.dispatch(Frame{0x3B, 0x01, 0x01, 0x04, 0x08, 0x03, 0x11})

	if len(col.events) != 0 {
		t.Fatalf("events = %d, want 0", len(col.events))
	}
	rm, _ := g.snapshotOne(0)
	if rm.Power != nil {
		t.Errorf("room 0 claimed a frame addressed to room 2")
	}
}

func TestRegistryConfirmationUpdatesRoom(t *testing.T) {
	col := &eventCollector{}
	g := newRegistry(col.record)

	g.dispatch(discoveryAnswer(1))
	col.events = nil

	// Power-on confirmation for room 1, checksum under the
	// confirmation offset.
	g.dispatch(Frame{0x3B, 0xFE, 0x01, 0x01, 0x04, 0x03, 0x07})

	changed := col.ofType(climate.EventRoomChanged)
	if len(changed) != 1 {
		t.Fatalf("changed events = %d, want 1", len(changed))
	}
	if changed[0].Room.Power == nil || *changed[0].Room.Power != climate.PowerOn {
		t.Errorf("power = %v, want on", changed[0].Room.Power)
	}
}

func TestRegistryRename(t *testing.T) {
	col := &eventCollector{}
	g := newRegistry(col.record)

	g.dispatch(discoveryAnswer(0))
	col.events = nil

	if !g.rename(0, "Kitchen") {
		t.Fatal("rename of known room failed")
	}
	rm, ok := g.snapshotOne(0)
	if !ok || rm.Name != "Kitchen" {
		t.Errorf("name = %q, want Kitchen", rm.Name)
	}

	changed := col.ofType(climate.EventRoomChanged)
	if len(changed) != 1 {
		t.Fatalf("changed events = %d, want 1", len(changed))
	}
	if changed[0].Room.Name != "Kitchen" {
		t.Errorf("event name = %q, want Kitchen", changed[0].Room.Name)
	}

	// Renaming to the current name is accepted but publishes nothing.
	if !g.rename(0, "Kitchen") {
		t.Error("same-name rename must succeed")
	}
	if got := len(col.ofType(climate.EventRoomChanged)); got != 1 {
		t.Errorf("changed events after same-name rename = %d, want 1", got)
	}

	if g.rename(4, "Attic") {
		t.Error("rename of unknown room must fail")
	}
}

func TestRegistrySnapshotOneMissing(t *testing.T) {
	g := newRegistry(nil)

	if _, ok := g.snapshotOne(0); ok {
		t.Error("snapshotOne must miss before discovery")
	}
}

func TestRegistryIDs(t *testing.T) {
	g := newRegistry(nil)

	g.dispatch(discoveryAnswer(3))
	g.dispatch(discoveryAnswer(0))
	g.dispatch(discoveryAnswer(2))

	ids := g.ids()
	want := []int{0, 2, 3}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids = %v, want %v", ids, want)
		}
	}
}
