// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The emberctl authors

package flamerite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeatModeString(t *testing.T) {
	assert.Equal(t, "OFF", HeatOff.String())
	assert.Equal(t, "LOW", HeatLow.String())
	assert.Equal(t, "HIGH", HeatHigh.String())
	assert.Equal(t, "UNKNOWN(0x42)", HeatMode(0x42).String())
}

func TestColorString(t *testing.T) {
	assert.Equal(t, "ORANGE_1", ColorOrange1.String())
	assert.Equal(t, "WHITE_4", ColorWhite4.String())
	assert.Equal(t, "CYCLE_ORANGE_ONLY", ColorCycleOrangeOnly.String())
	assert.Equal(t, "UNKNOWN(0x19)", Color(0x19).String())
}

func TestColorDescription(t *testing.T) {
	assert.Equal(t, "Orange (hue 1)", ColorOrange1.Description())
	assert.Equal(t, "Blue (hue 3)", ColorBlue3.Description())
	assert.Equal(t, "Cycle colors (variation 2)", ColorCycle2.Description())
	assert.Equal(t, "Cycle colors (orange hues)", ColorCycleOrangeOnly.Description())
	assert.Equal(t, "UNKNOWN(0xFF)", Color(0xFF).Description())
}

func TestParseHeatMode(t *testing.T) {
	tests := []struct {
		input string
		want  HeatMode
	}{
		{"OFF", HeatOff},
		{"low", HeatLow},
		{"High", HeatHigh},
		{" high ", HeatHigh},
	}
	for _, tt := range tests {
		got, err := ParseHeatMode(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}

	_, err := ParseHeatMode("MEDIUM")
	assert.Error(t, err)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		input string
		want  Color
	}{
		{"ORANGE_1", ColorOrange1},
		{"red_4", ColorRed4},
		{"Cycle_Orange_Only", ColorCycleOrangeOnly},
		{" white_2 ", ColorWhite2},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}

	_, err := ParseColor("PURPLE_1")
	assert.Error(t, err)
}

func TestColorNames(t *testing.T) {
	names := ColorNames()
	require.Len(t, names, 25)
	assert.Equal(t, "ORANGE_1", names[0])
	assert.Equal(t, "CYCLE_1", names[20])
	assert.Equal(t, "CYCLE_ORANGE_ONLY", names[24])
}
