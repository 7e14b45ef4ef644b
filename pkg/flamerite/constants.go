// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The emberctl authors

// Package flamerite provides a Go client for Flamerite NITRAFlame electric
// fireplaces, which expose a short fixed-format command protocol over a
// Bluetooth Low Energy GATT link.
//
// The package covers scanning for advertised devices, a connected device
// session with a locally cached state record, and the codec for the 9-byte
// status notification and the 3/4-byte command frames.
package flamerite

import "time"

// DeviceName is the product name carried in the advertised local name.
const DeviceName = "NITRAFlame"

// SupportedDeviceNames lists advertised local names recognised by the
// scanner. Matching is substring-based: vendors append unit suffixes.
var SupportedDeviceNames = []string{DeviceName}

// SupportedServiceUUIDs lists advertised service UUIDs recognised by the
// scanner. Some firmware revisions advertise the control service instead of
// a local name.
var SupportedServiceUUIDs = []string{"0000fff0-0000-1000-8000-00805f9b34fb"}

// GATT attribute UUIDs.
const (
	// Device Information service, read-only identity strings.
	AttrModelNumber      = "00002a24-0000-1000-8000-00805f9b34fb"
	AttrSerialNumber     = "00002a25-0000-1000-8000-00805f9b34fb"
	AttrFirmwareRevision = "00002a26-0000-1000-8000-00805f9b34fb"
	AttrHardwareRevision = "00002a27-0000-1000-8000-00805f9b34fb"
	AttrManufacturer     = "00002a29-0000-1000-8000-00805f9b34fb"

	// Control service. Commands are written to the request attribute;
	// the device answers asynchronously on the response attribute.
	AttrCommandRequest  = "0000fff1-0000-1000-8000-00805f9b34fb"
	AttrCommandResponse = "0000fff2-0000-1000-8000-00805f9b34fb"
)

// Status notification framing.
const (
	// NotificationMarker opens every asynchronous response frame.
	NotificationMarker = 0x20
	// StatusPayloadLength is the exact payload size of a QUERY_STATE
	// response. Other response types carry different lengths and are
	// ignored by the state decoder.
	StatusPayloadLength = 7
)

// DeviceResponseTimeout is the maximum time to wait for a status
// notification after sending a QUERY_STATE command.
const DeviceResponseTimeout = 5 * time.Second

// Valid ranges for device-reported values.
const (
	ThermostatMin = 16
	ThermostatMax = 31
	BrightnessMin = 1
	BrightnessMax = 10
)

// HeatMode is the heater output level. The wire values double as the
// power/heat code in the status frame: 0x0A reports powered off, 0x0B-0x0D
// report powered on with the corresponding heat output.
type HeatMode byte

// Heat modes.
const (
	HeatOff  HeatMode = 0x0B
	HeatLow  HeatMode = 0x0C
	HeatHigh HeatMode = 0x0D
)

// Color is a flame or fuel-bed color code. The device supports 5 palettes
// of 4 hues each with increasing intensity, 4 cycle variants that rotate
// through all palettes, and one cycle variant restricted to orange hues.
type Color byte

// Color codes.
const (
	ColorOrange1 Color = 0x00
	ColorOrange2 Color = 0x01
	ColorOrange3 Color = 0x02
	ColorOrange4 Color = 0x03
	ColorRed1    Color = 0x04
	ColorRed2    Color = 0x05
	ColorRed3    Color = 0x06
	ColorRed4    Color = 0x07
	ColorGreen1  Color = 0x08
	ColorGreen2  Color = 0x09
	ColorGreen3  Color = 0x0A
	ColorGreen4  Color = 0x0B
	ColorBlue1   Color = 0x0C
	ColorBlue2   Color = 0x0D
	ColorBlue3   Color = 0x0E
	ColorBlue4   Color = 0x0F
	ColorWhite1  Color = 0x10
	ColorWhite2  Color = 0x11
	ColorWhite3  Color = 0x12
	ColorWhite4  Color = 0x13

	ColorCycle1          Color = 0x14
	ColorCycle2          Color = 0x15
	ColorCycle3          Color = 0x16
	ColorCycle4          Color = 0x17
	ColorCycleOrangeOnly Color = 0x18
)

// Color code bounds.
const (
	ColorMin = ColorOrange1
	ColorMax = ColorCycleOrangeOnly
)

// Command prefixes. Three-byte commands are complete as-is; the color and
// thermostat prefixes take one trailing parameter byte.
var (
	cmdQueryState         = []byte{0xA1, 0x01, 0x0A}
	cmdPowerToggle        = []byte{0xA1, 0x01, 0x00}
	cmdHeatLow            = []byte{0xA1, 0x01, 0x01}
	cmdHeatHigh           = []byte{0xA1, 0x01, 0x03}
	cmdFlameBrightnessInc = []byte{0xA1, 0x01, 0x04}
	cmdFlameBrightnessDec = []byte{0xA1, 0x01, 0x05}
	cmdFuelBrightnessInc  = []byte{0xA1, 0x01, 0x06}
	cmdFuelBrightnessDec  = []byte{0xA1, 0x01, 0x07}
	cmdSetFlameColor      = []byte{0xC1, 0x01}
	cmdSetFuelColor       = []byte{0xC2, 0x01}
	cmdSetThermostat      = []byte{0xA2, 0x01}
)
