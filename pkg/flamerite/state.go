// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The emberctl authors

package flamerite

import "fmt"

// State is the last-known set of device attributes. The device session owns
// one State and replaces it wholesale whenever a status notification
// decodes successfully; intent setters update individual fields.
type State struct {
	IsPoweredOn     bool
	HeatMode        HeatMode
	Thermostat      int
	FlameBrightness int
	FuelBrightness  int
	FlameColor      Color
	FuelColor       Color
}

// NewState returns a state record with factory defaults: powered off, no
// heat, thermostat at the minimum, both channels at minimum brightness and
// lowest-intensity orange.
func NewState() State {
	return State{
		IsPoweredOn:     false,
		HeatMode:        HeatOff,
		Thermostat:      ThermostatMin,
		FlameBrightness: BrightnessMin,
		FuelBrightness:  BrightnessMin,
		FlameColor:      ColorOrange1,
		FuelColor:       ColorOrange1,
	}
}

// DecodeState parses a raw notification frame into a State.
//
// Asynchronous responses share the layout [0x20][length][payload...]; only
// QUERY_STATE responses, whose payload is exactly 7 bytes, decode to a
// state record. Anything else returns ErrMalformedFrame.
//
// Payload layout:
//
//	[0] power/heat code (0x0A off, 0x0B on/no heat, 0x0C low, 0x0D high)
//	[1] unused
//	[2] thermostat offset; add 16 for degrees Celsius
//	[3] flame brightness offset (0-9)
//	[4] fuel bed brightness offset (0-9)
//	[5] flame color code
//	[6] fuel bed color code
//
// Out-of-range raw bytes saturate to the nearest bound rather than failing.
// A code of 0x0B decodes to powered on with HeatOff: that is the device
// reporting "on, no heat output", not a decode defect.
func DecodeState(data []byte) (State, error) {
	if len(data) < 2 || data[0] != NotificationMarker {
		return State{}, ErrMalformedFrame
	}

	payload := data[2:]
	if len(payload) != StatusPayloadLength {
		return State{}, ErrMalformedFrame
	}

	s := State{}
	s.IsPoweredOn = payload[0] > 0x0A
	if s.IsPoweredOn {
		s.HeatMode = HeatMode(payload[0])
	} else {
		s.HeatMode = HeatOff
	}
	s.Thermostat = clamp(int(payload[2])+16, ThermostatMin, ThermostatMax)
	s.FlameBrightness = clamp(int(payload[3])+1, BrightnessMin, BrightnessMax)
	s.FuelBrightness = clamp(int(payload[4])+1, BrightnessMin, BrightnessMax)
	s.FlameColor = Color(clamp(int(payload[5]), int(ColorMin), int(ColorMax)))
	s.FuelColor = Color(clamp(int(payload[6]), int(ColorMin), int(ColorMax)))
	return s, nil
}

// SetThermostat stores a thermostat temperature, saturating to [16, 31].
func (s *State) SetThermostat(celsius int) {
	s.Thermostat = clamp(celsius, ThermostatMin, ThermostatMax)
}

// SetFlameBrightness stores a flame brightness level, saturating to [1, 10].
func (s *State) SetFlameBrightness(level int) {
	s.FlameBrightness = clamp(level, BrightnessMin, BrightnessMax)
}

// SetFuelBrightness stores a fuel bed brightness level, saturating to [1, 10].
func (s *State) SetFuelBrightness(level int) {
	s.FuelBrightness = clamp(level, BrightnessMin, BrightnessMax)
}

// SetFlameColor stores a flame color code, saturating to the valid range.
func (s *State) SetFlameColor(c Color) {
	s.FlameColor = Color(clamp(int(c), int(ColorMin), int(ColorMax)))
}

// SetFuelColor stores a fuel bed color code, saturating to the valid range.
func (s *State) SetFuelColor(c Color) {
	s.FuelColor = Color(clamp(int(c), int(ColorMin), int(ColorMax)))
}

func (s State) String() string {
	power := "OFF"
	if s.IsPoweredOn {
		power = "ON"
	}
	return fmt.Sprintf(
		"Status: %s, Heat Mode: %s, Thermostat: %dC, Flame Brightness: %d, Flame Color: %s, Fuel Brightness: %d, Fuel Color: %s",
		power, s.HeatMode, s.Thermostat, s.FlameBrightness, s.FlameColor, s.FuelBrightness, s.FuelColor,
	)
}

// clamp pins v to the inclusive range [min, max].
func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
