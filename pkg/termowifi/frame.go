package termowifi

import (
	"fmt"
	"strings"

	"github.com/diegogd/orkli-termowifi-hass-integration/pkg/climate"
)

// Frame layout: 4-byte header, command id, data byte, checksum.
const (
	FrameSize  = 7
	headerSize = 4
)

// HeaderClass identifies the first four bytes of a frame.
type HeaderClass int

const (
	HeaderUnknown HeaderClass = iota
	HeaderSendCommand
	HeaderValidAnswer
	HeaderValidConfirmation
)

var (
	headerSendCommand       = [headerSize]byte{0x3B, 0x01, 0xFE, 0x04}
	headerValidAnswer       = [headerSize]byte{0x3B, 0x01, 0x01, 0x04}
	headerValidConfirmation = [headerSize]byte{0x3B, 0xFE, 0x01, 0x01}
)

// Checksum offsets per header class. Commands are built with +3 but
// answers validate against +6 and confirmations against +0. That
// asymmetry is what the hub does on the wire; normalizing it would break
// interoperability with real hardware.
const (
	offsetSendCommand       = 0x03
	offsetValidAnswer       = 0x06
	offsetValidConfirmation = 0x00
)

// Command id bases for the per-room command/info family, cid = base + room*4.
// Base 3 is the poll request outbound and the measured temperature inbound.
const (
	cidBasePower      = 0x00
	cidBaseMode       = 0x01
	cidBaseTargetTemp = 0x02
	cidBaseInfo       = 0x03
)

// Humidity reports use separate addressing: cid = room + humidityCIDBase.
const humidityCIDBase = 0x64

// Discovery responses carry cid in [discoveryCIDMin, discoveryCIDMax];
// the room id is the offset into that range.
const (
	discoveryCIDMin = 0x32
	discoveryCIDMax = 0x36
)

// MaxRooms is the number of rooms the hub can manage.
const MaxRooms = discoveryCIDMax - discoveryCIDMin + 1

// Wire encodings for power and mode, identical in both directions.
const (
	wireOn   = 0x03
	wireOff  = 0x02
	wireHeat = 0x02
	wireCool = 0x03
)

// Frame is one complete 7-byte protocol unit. Frames are values; once
// built they are never mutated, and a byte sequence shorter than
// FrameSize is buffered remainder, never a partial frame.
type Frame [FrameSize]byte

// CID returns the command id byte.
func (f Frame) CID() byte { return f[4] }

// Data returns the data byte.
func (f Frame) Data() byte { return f[5] }

// Checksum returns the trailing checksum byte.
func (f Frame) Checksum() byte { return f[6] }

// Bytes returns the frame as a slice for writing.
func (f Frame) Bytes() []byte { return f[:] }

// HexDump renders the frame as spaced uppercase hex, e.g.
// "3B 01 01 04 03 21 2A".
func (f Frame) HexDump() string {
	parts := make([]string, FrameSize)
	for i, b := range f {
		parts[i] = fmt.Sprintf("%02X", b)
	}
	return strings.Join(parts, " ")
}

func (h HeaderClass) String() string {
	switch h {
	case HeaderSendCommand:
		return "send_command"
	case HeaderValidAnswer:
		return "valid_answer"
	case HeaderValidConfirmation:
		return "valid_confirmation"
	}
	return "unknown"
}

// Checksum computes (cid + data + offset) mod 256.
func Checksum(cid, data, offset byte) byte {
	return cid + data + offset
}

// checksumOffset returns the validation offset for a header class.
func checksumOffset(class HeaderClass) (byte, bool) {
	switch class {
	case HeaderSendCommand:
		return offsetSendCommand, true
	case HeaderValidAnswer:
		return offsetValidAnswer, true
	case HeaderValidConfirmation:
		return offsetValidConfirmation, true
	}
	return 0, false
}

// Classify returns the header class of a frame, or HeaderUnknown for a
// foreign header. It never fails on garbage input.
func Classify(f Frame) HeaderClass {
	var h [headerSize]byte
	copy(h[:], f[:headerSize])
	switch h {
	case headerValidAnswer:
		return HeaderValidAnswer
	case headerValidConfirmation:
		return HeaderValidConfirmation
	case headerSendCommand:
		return HeaderSendCommand
	}
	return HeaderUnknown
}

// Validate reports whether the frame's checksum is consistent with the
// given header class. Unknown classes never validate.
func Validate(f Frame, class HeaderClass) bool {
	offset, ok := checksumOffset(class)
	if !ok {
		return false
	}
	return f.Checksum() == Checksum(f.CID(), f.Data(), offset)
}

func buildCommand(cid, data byte) Frame {
	var f Frame
	copy(f[:headerSize], headerSendCommand[:])
	f[4] = cid
	f[5] = data
	f[6] = Checksum(cid, data, offsetSendCommand)
	return f
}

// BuildSwitch builds the power on/off command for a room.
func BuildSwitch(roomID int, on bool) Frame {
	data := byte(wireOff)
	if on {
		data = wireOn
	}
	return buildCommand(byte(cidBasePower+roomID*4), data)
}

// BuildMode builds the heat/cool mode command for a room. Any mode other
// than cool encodes as heat.
func BuildMode(roomID int, mode climate.Mode) Frame {
	data := byte(wireHeat)
	if mode == climate.ModeCool {
		data = wireCool
	}
	return buildCommand(byte(cidBaseMode+roomID*4), data)
}

// BuildSetTemperature builds the setpoint command for a room. The
// temperature is encoded as-is; range validation happens upstream.
func BuildSetTemperature(roomID int, celsius float64) Frame {
	return buildCommand(byte(cidBaseTargetTemp+roomID*4), ValueFromTemperature(celsius))
}

// BuildPoll builds the status request for a room.
func BuildPoll(roomID int) Frame {
	return buildCommand(byte(cidBaseInfo+roomID*4), 0x00)
}

// BuildDiscoveryProbe builds the fixed broadcast probe 3B 01 FE 04 23 00 26
// that asks the hub to report every room it manages.
func BuildDiscoveryProbe() Frame {
	return buildCommand(0x23, 0x00)
}
