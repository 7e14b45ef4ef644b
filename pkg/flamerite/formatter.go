// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The emberctl authors

package flamerite

import (
	"fmt"
	"sort"
	"strings"
)

// Display names are plain lookup tables built once, keyed by wire value.

var heatModeNames = map[HeatMode]string{
	HeatOff:  "OFF",
	HeatLow:  "LOW",
	HeatHigh: "HIGH",
}

var colorNames = map[Color]string{
	ColorOrange1: "ORANGE_1",
	ColorOrange2: "ORANGE_2",
	ColorOrange3: "ORANGE_3",
	ColorOrange4: "ORANGE_4",
	ColorRed1:    "RED_1",
	ColorRed2:    "RED_2",
	ColorRed3:    "RED_3",
	ColorRed4:    "RED_4",
	ColorGreen1:  "GREEN_1",
	ColorGreen2:  "GREEN_2",
	ColorGreen3:  "GREEN_3",
	ColorGreen4:  "GREEN_4",
	ColorBlue1:   "BLUE_1",
	ColorBlue2:   "BLUE_2",
	ColorBlue3:   "BLUE_3",
	ColorBlue4:   "BLUE_4",
	ColorWhite1:  "WHITE_1",
	ColorWhite2:  "WHITE_2",
	ColorWhite3:  "WHITE_3",
	ColorWhite4:  "WHITE_4",

	ColorCycle1:          "CYCLE_1",
	ColorCycle2:          "CYCLE_2",
	ColorCycle3:          "CYCLE_3",
	ColorCycle4:          "CYCLE_4",
	ColorCycleOrangeOnly: "CYCLE_ORANGE_ONLY",
}

// colorDescriptions are the human-readable variants shown by the CLI.
var colorDescriptions = map[Color]string{
	ColorCycle1:          "Cycle colors (variation 1)",
	ColorCycle2:          "Cycle colors (variation 2)",
	ColorCycle3:          "Cycle colors (variation 3)",
	ColorCycle4:          "Cycle colors (variation 4)",
	ColorCycleOrangeOnly: "Cycle colors (orange hues)",
}

func (m HeatMode) String() string {
	if name, ok := heatModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(0x%02X)", byte(m))
}

func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(0x%02X)", byte(c))
}

// Description returns a human-readable rendering of the color, e.g.
// "Orange (hue 2)" or "Cycle colors (orange hues)".
func (c Color) Description() string {
	if desc, ok := colorDescriptions[c]; ok {
		return desc
	}
	name, ok := colorNames[c]
	if !ok {
		return c.String()
	}
	palette, hue, _ := strings.Cut(name, "_")
	return fmt.Sprintf("%s%s (hue %s)", palette[:1], strings.ToLower(palette[1:]), hue)
}

// ParseHeatMode resolves a heat mode by canonical name. Matching is
// case-insensitive.
func ParseHeatMode(name string) (HeatMode, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for mode, modeName := range heatModeNames {
		if modeName == upper {
			return mode, nil
		}
	}
	return HeatOff, fmt.Errorf("unknown heat mode %q (expected OFF, LOW or HIGH)", name)
}

// ParseColor resolves a color by canonical name, e.g. "ORANGE_1" or
// "CYCLE_ORANGE_ONLY". Matching is case-insensitive.
func ParseColor(name string) (Color, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for color, colorName := range colorNames {
		if colorName == upper {
			return color, nil
		}
	}
	return ColorMin, fmt.Errorf("unknown color %q", name)
}

// ColorNames returns all canonical color names in wire-code order.
func ColorNames() []string {
	codes := make([]int, 0, len(colorNames))
	for c := range colorNames {
		codes = append(codes, int(c))
	}
	sort.Ints(codes)

	names := make([]string, len(codes))
	for i, code := range codes {
		names[i] = colorNames[Color(code)]
	}
	return names
}
