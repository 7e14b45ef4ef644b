// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The emberctl authors

package flamerite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandBytes(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want []byte
	}{
		{"QUERY_STATE", NewQueryStateCommand(), []byte{0xA1, 0x01, 0x0A}},
		{"POWER_TOGGLE", NewPowerToggleCommand(), []byte{0xA1, 0x01, 0x00}},
		{"SET_HEAT_LOW", NewHeatLowCommand(), []byte{0xA1, 0x01, 0x01}},
		{"SET_HEAT_HIGH", NewHeatHighCommand(), []byte{0xA1, 0x01, 0x03}},
		{"FLAME_BRIGHTNESS_INC", NewFlameBrightnessIncCommand(), []byte{0xA1, 0x01, 0x04}},
		{"FLAME_BRIGHTNESS_DEC", NewFlameBrightnessDecCommand(), []byte{0xA1, 0x01, 0x05}},
		{"FUEL_BRIGHTNESS_INC", NewFuelBrightnessIncCommand(), []byte{0xA1, 0x01, 0x06}},
		{"FUEL_BRIGHTNESS_DEC", NewFuelBrightnessDecCommand(), []byte{0xA1, 0x01, 0x07}},
		{"SET_FLAME_COLOR", NewFlameColorCommand(ColorBlue2), []byte{0xC1, 0x01, 0x0D}},
		{"SET_FUEL_COLOR", NewFuelColorCommand(ColorCycleOrangeOnly), []byte{0xC2, 0x01, 0x18}},
		{"SET_THERMOSTAT", NewThermostatCommand(24), []byte{0xA2, 0x01, 0x18}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.cmd.Name())
			assert.Equal(t, tt.name, tt.cmd.String())
			assert.Equal(t, tt.want, tt.cmd.Bytes())
		})
	}
}

func TestThermostatCommandIsAbsolute(t *testing.T) {
	// The thermostat command carries the temperature verbatim, without the
	// +16 offset used by the status frame.
	assert.Equal(t, []byte{0xA2, 0x01, 0x10}, NewThermostatCommand(16).Bytes())
	assert.Equal(t, []byte{0xA2, 0x01, 0x1F}, NewThermostatCommand(31).Bytes())
}

func TestCommandBytesReturnsCopy(t *testing.T) {
	cmd := NewQueryStateCommand()
	b := cmd.Bytes()
	b[0] = 0xFF
	assert.Equal(t, []byte{0xA1, 0x01, 0x0A}, cmd.Bytes())
}
