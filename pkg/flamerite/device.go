// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The emberctl authors

package flamerite

import (
	"bytes"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultRetryAttempts is the connection retry budget used when the caller
// has no preference.
const DefaultRetryAttempts = 4

// notificationBacklog bounds the raw-frame channel between the transport
// callback and the decode goroutine. Status frames are small and rare;
// overflow means the decoder is wedged and dropping is the right call.
const notificationBacklog = 16

// Device is a session with a single fireplace. It owns the connection
// lifecycle, translates high-level intents into command frames, and keeps a
// locally cached State refreshed by asynchronous status notifications.
//
// Methods are safe for concurrent use. Intent calls serialize on an
// operation lock for their whole command sequence, so two intents never
// interleave their frames on the wire. Decoded notifications replace the
// cached record wholesale on a dedicated goroutine.
type Device struct {
	transport Transport

	// connMu serializes connect attempts. It is only ever probed with
	// TryLock: a caller that finds an attempt in flight returns
	// immediately instead of queueing.
	connMu sync.Mutex

	// opMu serializes intent sequences and the QueryState wait.
	opMu sync.Mutex

	// stateMu guards the cached record, the query waiter, the connection
	// handle and the identity strings.
	stateMu     sync.RWMutex
	identity    *Identity
	conn        Connection
	state       State
	queryWaiter chan struct{}

	model        string
	serial       string
	manufacturer string
	firmwareRev  string
	hardwareRev  string

	connected atomic.Bool

	frames    chan []byte
	quit      chan struct{}
	closeOnce sync.Once

	responseTimeout time.Duration
}

// NewDevice creates a session for the given identity. The session starts
// disconnected; call Connect, or let the first intent connect implicitly.
func NewDevice(id *Identity, transport Transport) *Device {
	d := &Device{
		transport:       transport,
		identity:        id,
		state:           NewState(),
		frames:          make(chan []byte, notificationBacklog),
		quit:            make(chan struct{}),
		responseTimeout: DeviceResponseTimeout,
	}
	go d.processFrames()
	return d
}

// Connect opens the transport with a bounded retry budget, reads the static
// identity attributes, and subscribes to status notifications. It is a
// no-op when already connected or while another connect attempt is in
// flight (concurrent callers return immediately without waiting). Transport
// failure leaves the session disconnected.
func (d *Device) Connect(retryAttempts int) error {
	if d.connected.Load() {
		return nil
	}
	if !d.connMu.TryLock() {
		// Another caller is already connecting.
		return nil
	}
	defer d.connMu.Unlock()

	id := d.Identity()
	log.Debugf("Connecting to %s", id)

	conn, err := d.transport.Open(id, d.onDisconnected, retryAttempts)
	if err != nil {
		log.Errorf("Failed to connect to %s: %v", id, err)
		return fmt.Errorf("connect %s: %w", id.Address, err)
	}

	model, err := readIdentityString(conn, AttrModelNumber)
	if err == nil {
		var serial, manufacturer string
		if serial, err = readIdentityString(conn, AttrSerialNumber); err == nil {
			manufacturer, err = readIdentityString(conn, AttrManufacturer)
		}
		if err == nil {
			// Revision strings are absent on older firmware.
			firmwareRev, _ := readIdentityString(conn, AttrFirmwareRevision)
			hardwareRev, _ := readIdentityString(conn, AttrHardwareRevision)

			if err = conn.Subscribe(AttrCommandResponse, d.handleNotification); err == nil {
				d.stateMu.Lock()
				d.conn = conn
				d.model = model
				d.serial = serial
				d.manufacturer = manufacturer
				d.firmwareRev = firmwareRev
				d.hardwareRev = hardwareRev
				d.stateMu.Unlock()

				d.connected.Store(true)
				log.Infof("Connected to %s (Model: %s, Serial: %s, Manufacturer: %s)",
					id, model, serial, manufacturer)
				return nil
			}
		}
	}

	conn.Close()
	log.Errorf("Failed to initialize session with %s: %v", id, err)
	return fmt.Errorf("connect %s: %w", id.Address, err)
}

// Disconnect closes the transport. It is a no-op when not connected.
func (d *Device) Disconnect() error {
	if !d.connected.Load() {
		return nil
	}

	d.stateMu.Lock()
	conn := d.conn
	d.conn = nil
	d.stateMu.Unlock()

	d.connected.Store(false)
	if conn != nil {
		if err := conn.Close(); err != nil {
			return err
		}
	}
	log.Debugf("Disconnected from %s", d.Identity())
	return nil
}

// Close disconnects and stops the session's decode goroutine. The session
// cannot be reused afterwards.
func (d *Device) Close() error {
	err := d.Disconnect()
	d.closeOnce.Do(func() { close(d.quit) })
	return err
}

// Rebind points the session at a fresh advertisement handle for the same
// logical device, e.g. after it dropped off the air and was rediscovered.
func (d *Device) Rebind(id *Identity) {
	d.stateMu.Lock()
	d.identity = id
	d.stateMu.Unlock()
}

// onDisconnected handles transport-reported disconnection. The flag flips
// immediately; in-flight sends fail on their own.
func (d *Device) onDisconnected() {
	d.connected.Store(false)
	log.Warnf("Disconnected from %s", d.Identity())
}

// ensureConnected is the precondition helper invoked by every public
// operation: a single implicit connect attempt, then a typed error if the
// session is still down.
func (d *Device) ensureConnected() error {
	if d.connected.Load() {
		return nil
	}
	d.Connect(1)
	if !d.connected.Load() {
		return ErrNotConnected
	}
	return nil
}

// handleNotification runs on the transport's notification goroutine. It
// copies the frame into the bounded backlog and never blocks; the decode
// goroutine does the rest.
func (d *Device) handleNotification(data []byte) {
	frame := make([]byte, len(data))
	copy(frame, data)

	select {
	case d.frames <- frame:
	default:
		log.Debugf("Dropping notification, backlog full: % X", frame)
	}
}

// processFrames drains the notification backlog for the session lifetime.
// It is the only writer that applies decoded frames to the cached record.
func (d *Device) processFrames() {
	for {
		select {
		case <-d.quit:
			return
		case frame := <-d.frames:
			s, err := DecodeState(frame)
			if err != nil {
				// Non-status responses share the channel; skip them.
				continue
			}

			d.stateMu.Lock()
			d.state = s
			if d.queryWaiter != nil {
				close(d.queryWaiter)
				d.queryWaiter = nil
			}
			d.stateMu.Unlock()

			log.Debugf("Updated state: %s", s)
		}
	}
}

// QueryState asks the device for a status notification and waits for it to
// be applied, up to DeviceResponseTimeout. On timeout it returns
// ErrQueryTimeout and the previously cached state stays authoritative; a
// late notification may still arrive and be applied afterwards.
func (d *Device) QueryState() error {
	if err := d.ensureConnected(); err != nil {
		return err
	}

	d.opMu.Lock()
	defer d.opMu.Unlock()

	waiter := make(chan struct{})
	d.stateMu.Lock()
	d.queryWaiter = waiter
	d.stateMu.Unlock()

	if err := d.sendCommand(NewQueryStateCommand()); err != nil {
		d.clearWaiter(waiter)
		return err
	}

	select {
	case <-waiter:
		return nil
	case <-time.After(d.responseTimeout):
		d.clearWaiter(waiter)
		log.Errorf("Timeout waiting for state response from %s", d.Identity())
		return ErrQueryTimeout
	}
}

func (d *Device) clearWaiter(waiter chan struct{}) {
	d.stateMu.Lock()
	if d.queryWaiter == waiter {
		d.queryWaiter = nil
	}
	d.stateMu.Unlock()
}

// SetPoweredOn powers the device on or off. The hardware only understands a
// stateful toggle, so the command goes out only when the requested state
// differs from the cached one.
func (d *Device) SetPoweredOn(on bool) error {
	if err := d.ensureConnected(); err != nil {
		return err
	}

	d.opMu.Lock()
	defer d.opMu.Unlock()

	d.stateMu.Lock()
	old := d.state.IsPoweredOn
	d.state.IsPoweredOn = on
	d.stateMu.Unlock()

	if old == on {
		return nil
	}
	return d.sendCommand(NewPowerToggleCommand())
}

// SetHeatMode selects the heater output level. Heat selection is a step
// sequence on the hardware; the required commands are derived from the
// cached mode:
//
//	OFF  -> LOW:  SET_HEAT_LOW
//	OFF  -> HIGH: SET_HEAT_LOW, SET_HEAT_HIGH
//	LOW  -> OFF:  SET_HEAT_LOW   (low while already low steps off)
//	LOW  -> HIGH: SET_HEAT_HIGH
//	HIGH -> LOW:  SET_HEAT_HIGH  (high while already high steps down)
//	HIGH -> OFF:  SET_HEAT_HIGH, SET_HEAT_LOW
//
// Requesting any output while the device is powered off is rejected with
// ErrInvalidRequest; state and hardware stay untouched.
func (d *Device) SetHeatMode(mode HeatMode) error {
	if err := d.ensureConnected(); err != nil {
		return err
	}

	d.opMu.Lock()
	defer d.opMu.Unlock()

	d.stateMu.Lock()
	if !d.state.IsPoweredOn && mode != HeatOff {
		d.stateMu.Unlock()
		log.Warnf("Cannot set heat mode when device is powered off")
		return ErrInvalidRequest
	}
	old := d.state.HeatMode
	d.state.HeatMode = mode
	d.stateMu.Unlock()

	for _, cmd := range heatTransitionCommands(old, mode) {
		if err := d.sendCommand(cmd); err != nil {
			return err
		}
	}
	return nil
}

// heatTransitionCommands returns the step commands taking the heater from
// old to new. Identity transitions return nothing.
func heatTransitionCommands(old, new HeatMode) []Command {
	switch old {
	case HeatOff:
		switch new {
		case HeatLow:
			return []Command{NewHeatLowCommand()}
		case HeatHigh:
			return []Command{NewHeatLowCommand(), NewHeatHighCommand()}
		}
	case HeatLow:
		switch new {
		case HeatOff:
			return []Command{NewHeatLowCommand()}
		case HeatHigh:
			return []Command{NewHeatHighCommand()}
		}
	case HeatHigh:
		switch new {
		case HeatLow:
			return []Command{NewHeatHighCommand()}
		case HeatOff:
			return []Command{NewHeatHighCommand(), NewHeatLowCommand()}
		}
	}
	return nil
}

// SetThermostat sets the thermostat to an absolute temperature in degrees
// Celsius, saturating to [16, 31]. No command goes out when the clamped
// value matches the cached one.
func (d *Device) SetThermostat(celsius int) error {
	if err := d.ensureConnected(); err != nil {
		return err
	}

	d.opMu.Lock()
	defer d.opMu.Unlock()

	d.stateMu.Lock()
	old := d.state.Thermostat
	d.state.SetThermostat(celsius)
	target := d.state.Thermostat
	d.stateMu.Unlock()

	if target == old {
		return nil
	}
	return d.sendCommand(NewThermostatCommand(target))
}

// SetFlameColor sets the flame color, saturating to the valid code range.
func (d *Device) SetFlameColor(c Color) error {
	if err := d.ensureConnected(); err != nil {
		return err
	}

	d.opMu.Lock()
	defer d.opMu.Unlock()

	d.stateMu.Lock()
	old := d.state.FlameColor
	d.state.SetFlameColor(c)
	target := d.state.FlameColor
	d.stateMu.Unlock()

	if target == old {
		return nil
	}
	return d.sendCommand(NewFlameColorCommand(target))
}

// SetFuelColor sets the fuel bed color, saturating to the valid code range.
func (d *Device) SetFuelColor(c Color) error {
	if err := d.ensureConnected(); err != nil {
		return err
	}

	d.opMu.Lock()
	defer d.opMu.Unlock()

	d.stateMu.Lock()
	old := d.state.FuelColor
	d.state.SetFuelColor(c)
	target := d.state.FuelColor
	d.stateMu.Unlock()

	if target == old {
		return nil
	}
	return d.sendCommand(NewFuelColorCommand(target))
}

// SetFlameBrightness ramps the flame brightness to the clamped target. The
// device only supports stepping, so |target-old| increment or decrement
// commands go out. A failed step aborts the remainder of the ramp.
func (d *Device) SetFlameBrightness(level int) error {
	if err := d.ensureConnected(); err != nil {
		return err
	}

	d.opMu.Lock()
	defer d.opMu.Unlock()

	d.stateMu.Lock()
	old := d.state.FlameBrightness
	d.state.SetFlameBrightness(level)
	target := d.state.FlameBrightness
	d.stateMu.Unlock()

	return d.ramp(old, target, NewFlameBrightnessIncCommand(), NewFlameBrightnessDecCommand())
}

// SetFuelBrightness ramps the fuel bed brightness to the clamped target.
func (d *Device) SetFuelBrightness(level int) error {
	if err := d.ensureConnected(); err != nil {
		return err
	}

	d.opMu.Lock()
	defer d.opMu.Unlock()

	d.stateMu.Lock()
	old := d.state.FuelBrightness
	d.state.SetFuelBrightness(level)
	target := d.state.FuelBrightness
	d.stateMu.Unlock()

	return d.ramp(old, target, NewFuelBrightnessIncCommand(), NewFuelBrightnessDecCommand())
}

func (d *Device) ramp(old, target int, inc, dec Command) error {
	for v := old; v < target; v++ {
		if err := d.sendCommand(inc); err != nil {
			return err
		}
	}
	for v := old; v > target; v-- {
		if err := d.sendCommand(dec); err != nil {
			return err
		}
	}
	return nil
}

// SendRaw writes an arbitrary command frame to the request attribute. It
// bypasses the codec and the cached state; intended for protocol debugging.
func (d *Device) SendRaw(data []byte) error {
	if err := d.ensureConnected(); err != nil {
		return err
	}

	d.opMu.Lock()
	defer d.opMu.Unlock()
	return d.write(data, "RAW")
}

func (d *Device) sendCommand(cmd Command) error {
	return d.write(cmd.Bytes(), cmd.Name())
}

func (d *Device) write(data []byte, name string) error {
	d.stateMu.RLock()
	conn := d.conn
	d.stateMu.RUnlock()

	if conn == nil || !d.connected.Load() {
		return ErrNotConnected
	}
	if err := conn.WriteAttribute(AttrCommandRequest, data, true); err != nil {
		log.Errorf("Failed to send %s to %s: %v", name, d.Identity(), err)
		return fmt.Errorf("send %s: %w", name, err)
	}
	log.Debugf("Sent %s: % X", name, data)
	return nil
}

// IsConnected reports whether the session currently holds a live link.
func (d *Device) IsConnected() bool {
	return d.connected.Load()
}

// Identity returns the device handle the session is bound to.
func (d *Device) Identity() *Identity {
	d.stateMu.RLock()
	defer d.stateMu.RUnlock()
	return d.identity
}

// Address returns the peripheral address of the bound device.
func (d *Device) Address() string {
	return d.Identity().Address
}

// Name returns the advertised local name of the bound device.
func (d *Device) Name() string {
	return d.Identity().Name
}

// ModelNumber returns the model string read at connect time.
func (d *Device) ModelNumber() string {
	d.stateMu.RLock()
	defer d.stateMu.RUnlock()
	return d.model
}

// SerialNumber returns the serial string read at connect time.
func (d *Device) SerialNumber() string {
	d.stateMu.RLock()
	defer d.stateMu.RUnlock()
	return d.serial
}

// Manufacturer returns the manufacturer string read at connect time.
func (d *Device) Manufacturer() string {
	d.stateMu.RLock()
	defer d.stateMu.RUnlock()
	return d.manufacturer
}

// FirmwareRevision returns the firmware revision string, empty when the
// firmware does not expose one.
func (d *Device) FirmwareRevision() string {
	d.stateMu.RLock()
	defer d.stateMu.RUnlock()
	return d.firmwareRev
}

// HardwareRevision returns the hardware revision string, empty when the
// firmware does not expose one.
func (d *Device) HardwareRevision() string {
	d.stateMu.RLock()
	defer d.stateMu.RUnlock()
	return d.hardwareRev
}

// State returns a snapshot of the cached state record.
func (d *Device) State() State {
	d.stateMu.RLock()
	defer d.stateMu.RUnlock()
	return d.state
}

// IsPoweredOn reports the cached power state.
func (d *Device) IsPoweredOn() bool {
	return d.State().IsPoweredOn
}

// HeatMode returns the cached heat mode.
func (d *Device) HeatMode() HeatMode {
	return d.State().HeatMode
}

// Thermostat returns the cached thermostat temperature in degrees Celsius.
func (d *Device) Thermostat() int {
	return d.State().Thermostat
}

// FlameBrightness returns the cached flame brightness level.
func (d *Device) FlameBrightness() int {
	return d.State().FlameBrightness
}

// FuelBrightness returns the cached fuel bed brightness level.
func (d *Device) FuelBrightness() int {
	return d.State().FuelBrightness
}

// FlameColor returns the cached flame color.
func (d *Device) FlameColor() Color {
	return d.State().FlameColor
}

// FuelColor returns the cached fuel bed color.
func (d *Device) FuelColor() Color {
	return d.State().FuelColor
}

// readIdentityString reads a Device Information attribute as UTF-8 with
// trailing NUL padding trimmed.
func readIdentityString(conn Connection, uuid string) (string, error) {
	raw, err := conn.ReadAttribute(uuid)
	if err != nil {
		return "", err
	}
	return string(bytes.TrimRight(raw, "\x00")), nil
}
