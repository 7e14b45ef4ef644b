// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The emberctl authors

package cmd

import (
	"fmt"
	"os"

	"github.com/flamerite/emberctl/pkg/flamerite"
)

// resolveIdentity picks the target device: --address when given, otherwise
// the first device found by a scan.
func resolveIdentity() (*flamerite.Identity, error) {
	if deviceAddress != "" {
		return &flamerite.Identity{Address: deviceAddress}, nil
	}

	fmt.Fprintf(os.Stderr, "Scanning for %s devices...\n", flamerite.DeviceName)
	ids, err := flamerite.Scan(scanTimeout, 1)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no %s devices found (try --scan-timeout or --address)", flamerite.DeviceName)
	}
	return ids[0], nil
}

// acquireDevice returns a connected session with the resolved device.
// Callers own the session and must Close it.
func acquireDevice() (*flamerite.Device, error) {
	id, err := resolveIdentity()
	if err != nil {
		return nil, err
	}

	d := flamerite.NewDevice(id, flamerite.DefaultTransport)
	if err := d.Connect(retryAttempts); err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

// withDevice runs fn against a connected session whose cached state was
// refreshed by a query. Intents that depend on the current device state
// (heat stepping, brightness ramps, power toggling) need the fresh record.
func withDevice(fn func(d *flamerite.Device) error) error {
	d, err := acquireDevice()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.QueryState(); err != nil {
		return fmt.Errorf("query state: %w", err)
	}
	return fn(d)
}
