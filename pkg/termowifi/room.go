package termowifi

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/diegogd/orkli-termowifi-hass-integration/pkg/climate"
)

// room tracks the decoded state of one hub room. Each field stays nil
// until the hub first reports it and is then overwritten by every newer
// valid decode, in stream order.
type room struct {
	id   int
	name string

	power      *climate.Power
	mode       *climate.Mode
	targetTemp *float64
	measured   *float64
	humidity   *int
}

func newRoom(id int) *room {
	return &room{
		id:   id,
		name: fmt.Sprintf("Room %d", id),
	}
}

// apply offers an answer or confirmation frame to this room. It reports
// whether the room claimed the frame and whether a stored value changed.
//
// A zero data byte is a keep-alive: the hub repeats it on the answer
// channel when nothing new happened, so it is consumed before any
// address or checksum matching. Every dispatch arm requires both the cid
// to match this room's addressing and the checksum to validate under the
// class offset; anything else is left for the next room.
func (r *room) apply(f Frame, class HeaderClass) (claimed, changed bool) {
	offset, ok := checksumOffset(class)
	if !ok {
		return false, false
	}

	cid, data := f.CID(), f.Data()

	if data == 0x00 {
		log.Debug().Int("room", r.id).Msg("Ignoring keep-alive frame")
		return true, false
	}

	valid := f.Checksum() == Checksum(cid, data, offset)
	base := byte(r.id * 4)

	switch {
	case cid == base+cidBasePower && valid:
		switch data {
		case wireOn:
			changed = r.setPower(climate.PowerOn)
		case wireOff:
			changed = r.setPower(climate.PowerOff)
		}
		log.Debug().Str("room", r.name).Str("class", class.String()).
			Uint8("cid", cid).Uint8("data", data).Msg("Power status")
	case cid == base+cidBaseMode && valid:
		switch data {
		case wireHeat:
			changed = r.setMode(climate.ModeHeat)
		case wireCool:
			changed = r.setMode(climate.ModeCool)
		}
		log.Debug().Str("room", r.name).Str("class", class.String()).
			Uint8("cid", cid).Uint8("data", data).Msg("Mode status")
	case cid == base+cidBaseTargetTemp && valid:
		changed = r.setTargetTemp(TemperatureFromValue(data))
		log.Debug().Str("room", r.name).Str("class", class.String()).
			Float64("celsius", *r.targetTemp).Msg("Target temperature")
	case cid == base+cidBaseInfo && valid:
		changed = r.setMeasured(AmbientFromValue(data))
		log.Debug().Str("room", r.name).Str("class", class.String()).
			Float64("celsius", *r.measured).Msg("Measured temperature")
	case cid == byte(r.id)+humidityCIDBase && valid:
		changed = r.setHumidity(HumidityFromValue(data))
		log.Debug().Str("room", r.name).Str("class", class.String()).
			Int("percent", *r.humidity).Msg("Humidity")
	default:
		return false, false
	}

	return true, changed
}

func (r *room) setPower(p climate.Power) bool {
	if r.power != nil && *r.power == p {
		return false
	}
	r.power = &p
	return true
}

func (r *room) setMode(m climate.Mode) bool {
	if r.mode != nil && *r.mode == m {
		return false
	}
	r.mode = &m
	return true
}

func (r *room) setTargetTemp(t float64) bool {
	if r.targetTemp != nil && *r.targetTemp == t {
		return false
	}
	r.targetTemp = &t
	return true
}

func (r *room) setMeasured(t float64) bool {
	if r.measured != nil && *r.measured == t {
		return false
	}
	r.measured = &t
	return true
}

func (r *room) setHumidity(h int) bool {
	if r.humidity != nil && *r.humidity == h {
		return false
	}
	r.humidity = &h
	return true
}

// snapshot returns an independent copy of the room for callers outside
// the registry lock.
func (r *room) snapshot() *climate.Room {
	s := &climate.Room{
		ID:   r.id,
		Name: r.name,
	}
	if r.power != nil {
		p := *r.power
		s.Power = &p
	}
	if r.mode != nil {
		m := *r.mode
		s.Mode = &m
	}
	if r.targetTemp != nil {
		t := *r.targetTemp
		s.TargetTemperature = &t
	}
	if r.measured != nil {
		t := *r.measured
		s.MeasuredTemperature = &t
	}
	if r.humidity != nil {
		h := *r.humidity
		s.Humidity = &h
	}
	return s
}
