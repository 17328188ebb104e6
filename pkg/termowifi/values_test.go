package termowifi

import "testing"

func TestTemperatureFromValue(t *testing.T) {
	tests := []struct {
		name string
		raw  byte
		want float64
	}{
		{name: "scale floor", raw: 30, want: 15.0},
		{name: "scale ceiling", raw: 70, want: 35.0},
		{name: "midpoint", raw: 44, want: 22.0},
		{name: "half degree step", raw: 45, want: 22.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TemperatureFromValue(tt.raw); got != tt.want {
				t.Errorf("TemperatureFromValue(%d) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestValueFromTemperature(t *testing.T) {
	tests := []struct {
		name    string
		celsius float64
		want    byte
	}{
		{name: "scale floor", celsius: 15.0, want: 30},
		{name: "scale ceiling", celsius: 35.0, want: 70},
		{name: "midpoint", celsius: 22.0, want: 44},
		{name: "rounds up to nearest step", celsius: 22.3, want: 45},
		{name: "rounds down to nearest step", celsius: 22.2, want: 44},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValueFromTemperature(tt.celsius); got != tt.want {
				t.Errorf("ValueFromTemperature(%v) = %d, want %d", tt.celsius, got, tt.want)
			}
		})
	}
}

// Setpoint bytes survive a decode/encode round-trip exactly: the decoded
// temperature always lands on a half-degree step, and rounding maps each
// step back to its own byte.
func TestTemperatureRoundTrip(t *testing.T) {
	for v := 0; v < 256; v++ {
		raw := byte(v)
		if got := ValueFromTemperature(TemperatureFromValue(raw)); got != raw {
			t.Fatalf("round-trip of raw %d came back as %d", raw, got)
		}
	}
}

func TestAmbientFromValue(t *testing.T) {
	tests := []struct {
		name string
		raw  byte
		want float64
	}{
		{name: "anchor point", raw: 71, want: 45.5},
		{name: "warm reading", raw: 33, want: 64.5},
		{name: "cold reading", raw: 132, want: 15.0},
		{name: "room temperature", raw: 122, want: 20.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AmbientFromValue(tt.raw); got != tt.want {
				t.Errorf("AmbientFromValue(%d) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestAmbientRoundTrip(t *testing.T) {
	for v := 0; v < 256; v++ {
		raw := byte(v)
		if got := ValueFromAmbient(AmbientFromValue(raw)); got != raw {
			t.Fatalf("round-trip of raw %d came back as %d", raw, got)
		}
	}
}

func TestHumidityFromValue(t *testing.T) {
	tests := []struct {
		name string
		raw  byte
		want int
	}{
		{name: "dry floor", raw: 0, want: 0},
		{name: "saturated", raw: 255, want: 100},
		{name: "half scale", raw: 128, want: 50},
		{name: "truncates below half", raw: 127, want: 49},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HumidityFromValue(tt.raw); got != tt.want {
				t.Errorf("HumidityFromValue(%d) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

// The percentage scale has fewer steps than the raw scale, so humidity
// round-trips are lossy. The drift is bounded at two raw units.
func TestHumidityRoundTripDrift(t *testing.T) {
	for v := 0; v < 256; v++ {
		raw := byte(v)
		back := ValueFromHumidity(HumidityFromValue(raw))
		drift := int(raw) - int(back)
		if drift < 0 {
			drift = -drift
		}
		if drift > 2 {
			t.Fatalf("raw %d round-tripped to %d, drift %d exceeds 2", raw, back, drift)
		}
	}
}
