// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The emberctl authors

package flamerite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStateDefaults(t *testing.T) {
	s := NewState()

	assert.False(t, s.IsPoweredOn)
	assert.Equal(t, HeatOff, s.HeatMode)
	assert.Equal(t, ThermostatMin, s.Thermostat)
	assert.Equal(t, BrightnessMin, s.FlameBrightness)
	assert.Equal(t, BrightnessMin, s.FuelBrightness)
	assert.Equal(t, ColorOrange1, s.FlameColor)
	assert.Equal(t, ColorOrange1, s.FuelColor)
}

func TestDecodeState(t *testing.T) {
	tests := []struct {
		name  string
		frame []byte
		want  State
	}{
		{
			name:  "powered on, low heat, extremes on both channels",
			frame: []byte{0x20, 0x07, 0x0C, 0xA1, 0x00, 0x09, 0x09, 0x00, 0x18},
			want: State{
				IsPoweredOn:     true,
				HeatMode:        HeatLow,
				Thermostat:      16,
				FlameBrightness: 1,
				FuelBrightness:  10,
				FlameColor:      ColorOrange1,
				FuelColor:       ColorCycleOrangeOnly,
			},
		},
		{
			name:  "powered off",
			frame: []byte{0x20, 0x07, 0x0A, 0x00, 0x05, 0x04, 0x02, 0x04, 0x10},
			want: State{
				IsPoweredOn:     false,
				HeatMode:        HeatOff,
				Thermostat:      21,
				FlameBrightness: 5,
				FuelBrightness:  3,
				FlameColor:      ColorRed1,
				FuelColor:       ColorWhite1,
			},
		},
		{
			name:  "powered on with no heat output (code 0x0B)",
			frame: []byte{0x20, 0x07, 0x0B, 0x00, 0x0F, 0x09, 0x00, 0x14, 0x0C},
			want: State{
				IsPoweredOn:     true,
				HeatMode:        HeatOff,
				Thermostat:      31,
				FlameBrightness: 10,
				FuelBrightness:  1,
				FlameColor:      ColorCycle1,
				FuelColor:       ColorBlue1,
			},
		},
		{
			name:  "high heat",
			frame: []byte{0x20, 0x07, 0x0D, 0xFF, 0x07, 0x04, 0x04, 0x08, 0x08},
			want: State{
				IsPoweredOn:     true,
				HeatMode:        HeatHigh,
				Thermostat:      23,
				FlameBrightness: 5,
				FuelBrightness:  5,
				FlameColor:      ColorGreen1,
				FuelColor:       ColorGreen1,
			},
		},
		{
			name:  "out-of-range raw bytes saturate",
			frame: []byte{0x20, 0x07, 0x0C, 0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0x19},
			want: State{
				IsPoweredOn:     true,
				HeatMode:        HeatLow,
				Thermostat:      ThermostatMax,
				FlameBrightness: BrightnessMax,
				FuelBrightness:  BrightnessMax,
				FlameColor:      ColorCycleOrangeOnly,
				FuelColor:       ColorCycleOrangeOnly,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeState(tt.frame)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeStateMalformed(t *testing.T) {
	tests := []struct {
		name  string
		frame []byte
	}{
		{"empty", nil},
		{"marker only", []byte{0x20}},
		{"wrong marker", []byte{0x21, 0x07, 0x0C, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}},
		{"payload too short", []byte{0x20, 0x06, 0x0C, 0x00, 0x00, 0x00, 0x00, 0x00}},
		{"payload too long", []byte{0x20, 0x08, 0x0C, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}},
		{"header only", []byte{0x20, 0x07}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeState(tt.frame)
			assert.ErrorIs(t, err, ErrMalformedFrame)
			assert.Equal(t, State{}, got)
		})
	}
}

func TestDecodeStateRoundTrip(t *testing.T) {
	// Encode representative field combinations into a status frame and
	// check the decode reproduces them through the offset transforms.
	tests := []struct {
		code       byte
		powered    bool
		mode       HeatMode
		thermostat int
		flame      int
		fuel       int
		flameColor Color
		fuelColor  Color
	}{
		{0x0A, false, HeatOff, 16, 1, 1, ColorOrange1, ColorOrange1},
		{0x0B, true, HeatOff, 20, 3, 7, ColorRed3, ColorBlue2},
		{0x0C, true, HeatLow, 31, 10, 10, ColorCycle4, ColorWhite4},
		{0x0D, true, HeatHigh, 24, 6, 2, ColorGreen2, ColorCycleOrangeOnly},
	}

	for _, tt := range tests {
		frame := []byte{
			NotificationMarker, StatusPayloadLength,
			tt.code, 0x00,
			byte(tt.thermostat - 16),
			byte(tt.flame - 1),
			byte(tt.fuel - 1),
			byte(tt.flameColor),
			byte(tt.fuelColor),
		}

		got, err := DecodeState(frame)
		require.NoError(t, err)
		assert.Equal(t, tt.powered, got.IsPoweredOn)
		assert.Equal(t, tt.mode, got.HeatMode)
		assert.Equal(t, tt.thermostat, got.Thermostat)
		assert.Equal(t, tt.flame, got.FlameBrightness)
		assert.Equal(t, tt.fuel, got.FuelBrightness)
		assert.Equal(t, tt.flameColor, got.FlameColor)
		assert.Equal(t, tt.fuelColor, got.FuelColor)
	}
}

func TestStateClampedSetters(t *testing.T) {
	s := NewState()

	s.SetThermostat(0)
	assert.Equal(t, ThermostatMin, s.Thermostat)
	s.SetThermostat(100)
	assert.Equal(t, ThermostatMax, s.Thermostat)
	s.SetThermostat(22)
	assert.Equal(t, 22, s.Thermostat)

	s.SetFlameBrightness(0)
	assert.Equal(t, BrightnessMin, s.FlameBrightness)
	s.SetFlameBrightness(11)
	assert.Equal(t, BrightnessMax, s.FlameBrightness)

	s.SetFuelBrightness(-3)
	assert.Equal(t, BrightnessMin, s.FuelBrightness)
	s.SetFuelBrightness(7)
	assert.Equal(t, 7, s.FuelBrightness)

	s.SetFlameColor(Color(0xFF))
	assert.Equal(t, ColorCycleOrangeOnly, s.FlameColor)
	s.SetFuelColor(ColorBlue3)
	assert.Equal(t, ColorBlue3, s.FuelColor)
}

func TestStateString(t *testing.T) {
	s := NewState()
	s.IsPoweredOn = true
	s.HeatMode = HeatHigh
	s.Thermostat = 25

	str := s.String()
	assert.Contains(t, str, "Status: ON")
	assert.Contains(t, str, "Heat Mode: HIGH")
	assert.Contains(t, str, "Thermostat: 25C")
	assert.Contains(t, str, "Flame Color: ORANGE_1")
}
