// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The emberctl authors

package flamerite

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"tinygo.org/x/bluetooth"
)

// connectBackoffCap bounds the delay between connection attempts.
const connectBackoffCap = 30 * time.Second

// attributeReadBuffer sizes reads of Device Information strings.
const attributeReadBuffer = 64

// DefaultTransport is the BLE central used by Scan and by sessions that do
// not inject their own Transport.
var DefaultTransport = NewBLETransport()

// BLETransport implements Transport on the host's BLE adapter via
// tinygo.org/x/bluetooth.
type BLETransport struct {
	adapter *bluetooth.Adapter

	mu            sync.Mutex
	enabled       bool
	onDisconnects map[string]func()
}

// NewBLETransport wraps the default host adapter.
func NewBLETransport() *BLETransport {
	return &BLETransport{
		adapter:       bluetooth.DefaultAdapter,
		onDisconnects: make(map[string]func()),
	}
}

// enable powers the adapter once and installs the connect-event dispatcher
// that fans BlueZ disconnect events out to per-connection callbacks.
func (t *BLETransport) enable() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.enabled {
		return nil
	}

	if err := t.adapter.Enable(); err != nil {
		return fmt.Errorf("enable bluetooth adapter: %w", err)
	}

	t.adapter.SetConnectHandler(func(dev bluetooth.Device, connected bool) {
		if connected {
			return
		}
		t.mu.Lock()
		onDisconnect := t.onDisconnects[dev.Address.String()]
		t.mu.Unlock()
		if onDisconnect != nil {
			onDisconnect()
		}
	})

	t.enabled = true
	return nil
}

// Scan discovers supported fireplaces. See the package-level Scan.
func (t *BLETransport) Scan(timeout time.Duration, maxDevices int) ([]*Identity, error) {
	if err := t.enable(); err != nil {
		return nil, err
	}

	log.Debugf("Scanning for %s devices", DeviceName)
	collector := newScanCollector(maxDevices)

	timer := time.AfterFunc(timeout, func() {
		// Timeout elapsed; Scan below unblocks with what was found.
		t.adapter.StopScan()
	})
	defer timer.Stop()

	err := t.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
		if !matchesAdvertisement(result) {
			return
		}
		id := &Identity{Address: result.Address.String(), Name: result.LocalName()}
		added, complete := collector.offer(id)
		if added {
			log.Debugf("Found device: %s", id)
		}
		if complete {
			adapter.StopScan()
		}
	})
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	log.Debugf("Scan complete, found %d devices", len(collector.found))
	return collector.found, nil
}

// matchesAdvertisement applies the supported-device predicate: local name
// contains a supported product name, or the advertisement carries a
// supported service UUID.
func matchesAdvertisement(result bluetooth.ScanResult) bool {
	if isSupportedName(result.LocalName()) {
		return true
	}
	for _, raw := range SupportedServiceUUIDs {
		uuid, err := bluetooth.ParseUUID(raw)
		if err != nil {
			continue
		}
		if result.HasServiceUUID(uuid) {
			return true
		}
	}
	return false
}

// Open connects to the peripheral with a bounded retry budget and
// exponential backoff, then discovers the control and device-information
// attributes.
func (t *BLETransport) Open(id *Identity, onDisconnect func(), maxAttempts int) (Connection, error) {
	if err := t.enable(); err != nil {
		return nil, err
	}
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	mac, err := bluetooth.ParseMAC(id.Address)
	if err != nil {
		return nil, fmt.Errorf("parse address %q: %w", id.Address, err)
	}
	addr := bluetooth.Address{MACAddress: bluetooth.MACAddress{MAC: mac}}

	var dev bluetooth.Device
	backoff := time.Second
	for attempt := 1; ; attempt++ {
		dev, err = t.adapter.Connect(addr, bluetooth.ConnectionParams{})
		if err == nil {
			break
		}
		if attempt >= maxAttempts {
			return nil, fmt.Errorf("connect after %d attempt(s): %w", attempt, err)
		}
		log.Debugf("Connect attempt %d/%d to %s failed: %v", attempt, maxAttempts, id, err)
		time.Sleep(backoff)
		backoff *= 2
		if backoff > connectBackoffCap {
			backoff = connectBackoffCap
		}
	}

	conn := &bleConnection{
		transport: t,
		device:    dev,
		address:   id.Address,
		chars:     make(map[string]bluetooth.DeviceCharacteristic),
	}
	if err := conn.discover(); err != nil {
		dev.Disconnect()
		return nil, err
	}

	if onDisconnect != nil {
		t.mu.Lock()
		t.onDisconnects[id.Address] = onDisconnect
		t.mu.Unlock()
	}
	return conn, nil
}

// bleConnection is an open GATT link with its characteristics cached by
// UUID.
type bleConnection struct {
	transport *BLETransport
	device    bluetooth.Device
	address   string
	chars     map[string]bluetooth.DeviceCharacteristic
}

func (c *bleConnection) discover() error {
	services, err := c.device.DiscoverServices(nil)
	if err != nil {
		return fmt.Errorf("discover services: %w", err)
	}
	for _, service := range services {
		chars, err := service.DiscoverCharacteristics(nil)
		if err != nil {
			return fmt.Errorf("discover characteristics of %s: %w", service.UUID(), err)
		}
		for _, char := range chars {
			c.chars[strings.ToLower(char.UUID().String())] = char
		}
	}
	return nil
}

func (c *bleConnection) characteristic(uuid string) (bluetooth.DeviceCharacteristic, error) {
	char, ok := c.chars[strings.ToLower(uuid)]
	if !ok {
		return char, fmt.Errorf("attribute %s not found on %s", uuid, c.address)
	}
	return char, nil
}

func (c *bleConnection) ReadAttribute(uuid string) ([]byte, error) {
	char, err := c.characteristic(uuid)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, attributeReadBuffer)
	n, err := char.Read(buf)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", uuid, err)
	}
	return buf[:n], nil
}

func (c *bleConnection) WriteAttribute(uuid string, payload []byte, withResponse bool) error {
	char, err := c.characteristic(uuid)
	if err != nil {
		return err
	}
	if withResponse {
		_, err = char.Write(payload)
	} else {
		_, err = char.WriteWithoutResponse(payload)
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", uuid, err)
	}
	return nil
}

func (c *bleConnection) Subscribe(uuid string, onNotify func(data []byte)) error {
	char, err := c.characteristic(uuid)
	if err != nil {
		return err
	}
	if err := char.EnableNotifications(onNotify); err != nil {
		return fmt.Errorf("subscribe %s: %w", uuid, err)
	}
	return nil
}

func (c *bleConnection) Close() error {
	c.transport.mu.Lock()
	delete(c.transport.onDisconnects, c.address)
	c.transport.mu.Unlock()
	return c.device.Disconnect()
}
