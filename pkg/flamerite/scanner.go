// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The emberctl authors

package flamerite

import (
	"strings"
	"time"
)

// Scan discovers supported fireplaces on the default BLE transport. It
// returns once maxDevices distinct matches are found or the timeout
// elapses, whichever comes first; an elapsed timeout is not an error and
// yields whatever was found. maxDevices <= 0 scans until the timeout.
func Scan(timeout time.Duration, maxDevices int) ([]*Identity, error) {
	return DefaultTransport.Scan(timeout, maxDevices)
}

// isSupportedName reports whether an advertised local name belongs to a
// supported device. Matching is substring-based: units advertise the
// product name with a per-unit suffix.
func isSupportedName(localName string) bool {
	if localName == "" {
		return false
	}
	for _, name := range SupportedDeviceNames {
		if strings.Contains(localName, name) {
			return true
		}
	}
	return false
}

// scanCollector accumulates scan matches, deduplicating by address and
// signalling completion once the requested number of devices is found.
type scanCollector struct {
	max   int
	seen  map[string]bool
	found []*Identity
}

func newScanCollector(max int) *scanCollector {
	return &scanCollector{
		max:  max,
		seen: make(map[string]bool),
	}
}

// offer records a candidate. added reports whether it was new; complete
// reports whether the collector has reached its target count.
func (c *scanCollector) offer(id *Identity) (added, complete bool) {
	if c.seen[id.Address] {
		return false, false
	}
	c.seen[id.Address] = true
	c.found = append(c.found, id)
	return true, c.max > 0 && len(c.found) >= c.max
}
