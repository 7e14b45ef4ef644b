// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The emberctl authors

package flamerite

// Command builder functions create Command values ready for transmission.
// Fixed commands are a static 3-byte sequence; the color and thermostat
// commands append a single parameter byte. Parameter values are expected to
// be range-validated by the caller (the session clamps before encoding).

// Command is an immutable command frame paired with its semantic name.
type Command struct {
	name string
	data []byte
}

// Name returns the command's semantic name, e.g. "QUERY_STATE".
func (c Command) Name() string {
	return c.name
}

// Bytes returns a copy of the wire bytes.
func (c Command) Bytes() []byte {
	out := make([]byte, len(c.data))
	copy(out, c.data)
	return out
}

func (c Command) String() string {
	return c.name
}

// NewQueryStateCommand requests a status notification on the response
// attribute.
func NewQueryStateCommand() Command {
	return Command{name: "QUERY_STATE", data: cmdQueryState}
}

// NewPowerToggleCommand flips the device power state. Toggling is stateful:
// send it only when the desired state differs from the cached one.
func NewPowerToggleCommand() Command {
	return Command{name: "POWER_TOGGLE", data: cmdPowerToggle}
}

// NewHeatLowCommand steps the heater between OFF and LOW: it steps up when
// the heater is off and back down when it is already on low.
func NewHeatLowCommand() Command {
	return Command{name: "SET_HEAT_LOW", data: cmdHeatLow}
}

// NewHeatHighCommand steps the heater between LOW and HIGH: it steps up
// from low and back down when it is already on high.
func NewHeatHighCommand() Command {
	return Command{name: "SET_HEAT_HIGH", data: cmdHeatHigh}
}

// NewFlameBrightnessIncCommand raises the flame brightness by one step.
func NewFlameBrightnessIncCommand() Command {
	return Command{name: "FLAME_BRIGHTNESS_INC", data: cmdFlameBrightnessInc}
}

// NewFlameBrightnessDecCommand lowers the flame brightness by one step.
func NewFlameBrightnessDecCommand() Command {
	return Command{name: "FLAME_BRIGHTNESS_DEC", data: cmdFlameBrightnessDec}
}

// NewFuelBrightnessIncCommand raises the fuel bed brightness by one step.
func NewFuelBrightnessIncCommand() Command {
	return Command{name: "FUEL_BRIGHTNESS_INC", data: cmdFuelBrightnessInc}
}

// NewFuelBrightnessDecCommand lowers the fuel bed brightness by one step.
func NewFuelBrightnessDecCommand() Command {
	return Command{name: "FUEL_BRIGHTNESS_DEC", data: cmdFuelBrightnessDec}
}

// NewFlameColorCommand sets the flame color to the given code.
func NewFlameColorCommand(c Color) Command {
	return Command{name: "SET_FLAME_COLOR", data: withParam(cmdSetFlameColor, byte(c))}
}

// NewFuelColorCommand sets the fuel bed color to the given code.
func NewFuelColorCommand(c Color) Command {
	return Command{name: "SET_FUEL_COLOR", data: withParam(cmdSetFuelColor, byte(c))}
}

// NewThermostatCommand sets the thermostat to an absolute temperature in
// degrees Celsius. Unlike the status frame, the wire value is not
// offset-encoded.
func NewThermostatCommand(celsius int) Command {
	return Command{name: "SET_THERMOSTAT", data: withParam(cmdSetThermostat, byte(celsius))}
}

func withParam(prefix []byte, param byte) []byte {
	data := make([]byte, 0, len(prefix)+1)
	data = append(data, prefix...)
	return append(data, param)
}
