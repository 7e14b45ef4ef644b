// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The emberctl authors

package cmd

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/flamerite/emberctl/pkg/flamerite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unreachableTransport never connects; snapshots then reflect the default
// state record.
type unreachableTransport struct{}

func (unreachableTransport) Open(id *flamerite.Identity, onDisconnect func(), maxAttempts int) (flamerite.Connection, error) {
	return nil, errors.New("out of range")
}

func TestBridgeAuthorized(t *testing.T) {
	open := &bridgeServer{}
	locked := &bridgeServer{username: "ember", password: "s3cret"}

	withAuth := func(user, pass string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.SetBasicAuth(user, pass)
		return r
	}

	assert.True(t, open.authorized(httptest.NewRequest(http.MethodGet, "/", nil)))

	assert.True(t, locked.authorized(withAuth("ember", "s3cret")))
	assert.False(t, locked.authorized(withAuth("ember", "wrong")))
	assert.False(t, locked.authorized(withAuth("intruder", "s3cret")))
	assert.False(t, locked.authorized(httptest.NewRequest(http.MethodGet, "/", nil)))
}

func TestApplyIntentRejectsBadRequests(t *testing.T) {
	// All rejections happen before the session is touched.
	s := &bridgeServer{}

	tests := []struct {
		name   string
		intent intentMessage
	}{
		{"unknown op", intentMessage{Op: "reboot"}},
		{"bad heat mode", intentMessage{Op: "heat", Mode: "MEDIUM"}},
		{"thermostat below range", intentMessage{Op: "thermostat", Celsius: 10}},
		{"thermostat above range", intentMessage{Op: "thermostat", Celsius: 35}},
		{"flame brightness zero", intentMessage{Op: "flame-brightness", Level: 0}},
		{"fuel brightness above range", intentMessage{Op: "fuel-brightness", Level: 11}},
		{"bad flame color", intentMessage{Op: "flame-color", Color: "PURPLE_1"}},
		{"bad fuel color", intentMessage{Op: "fuel-color", Color: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, s.applyIntent(tt.intent))
		})
	}
}

func TestSnapshotJSON(t *testing.T) {
	d := flamerite.NewDevice(
		&flamerite.Identity{Address: "AA:BB:CC:DD:EE:FF", Name: "NITRAFlame"},
		unreachableTransport{},
	)
	defer d.Close()

	s := &bridgeServer{dev: d}
	raw, err := json.Marshal(s.snapshot())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "state", decoded["type"])
	assert.Equal(t, "AA:BB:CC:DD:EE:FF", decoded["address"])
	assert.Equal(t, false, decoded["connected"])
	assert.Equal(t, false, decoded["isPoweredOn"])
	assert.Equal(t, "OFF", decoded["heatMode"])
	assert.Equal(t, float64(flamerite.ThermostatMin), decoded["thermostat"])
	assert.Equal(t, "ORANGE_1", decoded["flameColor"])
}
