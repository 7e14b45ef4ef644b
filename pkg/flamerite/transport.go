// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The emberctl authors

package flamerite

// Identity is an opaque handle to a discovered device: the peripheral
// address plus the advertised local name. Identities are produced by the
// scanner and owned by the caller; a session holds a reference and can be
// rebound when the same logical device reappears under a fresh handle.
type Identity struct {
	Address string
	Name    string
}

func (id *Identity) String() string {
	if id.Name == "" {
		return id.Address
	}
	return id.Name + " (" + id.Address + ")"
}

// Transport opens connections to a device. The production implementation
// is the BLE central (see NewBLETransport); tests substitute fakes.
type Transport interface {
	// Open establishes a connection with a bounded number of attempts.
	// onDisconnect fires once if the link later drops unexpectedly.
	Open(id *Identity, onDisconnect func(), maxAttempts int) (Connection, error)
}

// Connection is an open link to a device.
type Connection interface {
	// ReadAttribute reads the value of a readable attribute.
	ReadAttribute(uuid string) ([]byte, error)

	// WriteAttribute writes payload to a writable attribute. When
	// withResponse is true the write requests a delivery acknowledgement
	// and blocks until it arrives.
	WriteAttribute(uuid string, payload []byte, withResponse bool) error

	// Subscribe registers onNotify for notifications on the attribute.
	// The callback runs on the transport's notification goroutine and
	// must not block.
	Subscribe(uuid string, onNotify func(data []byte)) error

	// Close tears the connection down.
	Close() error
}
