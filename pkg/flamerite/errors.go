// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The emberctl authors

package flamerite

import "errors"

// Error taxonomy. Transient link failures degrade the session rather than
// tearing it down: a fireplace BLE link is expected to be flaky and callers
// poll state instead of awaiting hard confirmations.
var (
	// ErrMalformedFrame reports a notification that fails the structural
	// checks of the status codec. Such frames are expected (the response
	// attribute also carries non-status replies) and are discarded.
	ErrMalformedFrame = errors.New("flamerite: malformed status frame")

	// ErrNotConnected reports that an operation found the session
	// disconnected and the implicit single-attempt reconnect failed.
	ErrNotConnected = errors.New("flamerite: device not connected")

	// ErrQueryTimeout reports that no status notification arrived within
	// DeviceResponseTimeout. The previously cached state remains valid.
	ErrQueryTimeout = errors.New("flamerite: timeout waiting for state response")

	// ErrInvalidRequest reports an intent the device cannot honour in its
	// current state, e.g. selecting a heat output while powered off.
	ErrInvalidRequest = errors.New("flamerite: request invalid in current device state")
)
