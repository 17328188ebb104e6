package termowifi

import "math"

// Raw byte conversions for the three value domains the hub reports.
// Setpoints and ambient readings are affine half-degree scales with
// different anchors; humidity is a linear 0-255 ramp.

// TemperatureFromValue converts a raw setpoint byte to degrees Celsius.
func TemperatureFromValue(v byte) float64 {
	return (float64(v)-30)*0.5 + 15
}

// ValueFromTemperature converts a setpoint in degrees Celsius to its raw
// byte. Input outside 15-35 encodes silently to an out-of-range byte;
// callers validate the range first.
func ValueFromTemperature(t float64) byte {
	return byte(math.Round((t-15)/0.5) + 30)
}

// AmbientFromValue converts a raw ambient reading to degrees Celsius.
// The scale runs downward: larger bytes mean colder rooms.
func AmbientFromValue(v byte) float64 {
	return 45.5 - (float64(v)-71)*0.5
}

// ValueFromAmbient converts an ambient temperature to its raw byte.
func ValueFromAmbient(t float64) byte {
	return byte(math.Round((45.5-t)/0.5) + 71)
}

// HumidityFromValue converts a raw humidity byte to a 0-100 percentage.
func HumidityFromValue(v byte) int {
	return int(v) * 100 / 255
}

// ValueFromHumidity converts a 0-100 percentage back to a raw byte.
// The percentage scale cannot resolve single raw units, so round-trips
// may drift by up to two.
func ValueFromHumidity(h int) byte {
	return byte(math.Round(float64(h) * 255.0 / 100.0))
}
