// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The emberctl authors

package cmd

import (
	"bufio"
	"crypto/subtle"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/flamerite/emberctl/pkg/flamerite"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	bridgeListen   string
	bridgeUsername string
	bridgeInterval time.Duration
)

var bridgeCmd = &cobra.Command{
	Use:   "bridge",
	Short: "Expose the fireplace over a WebSocket",
	Long: `Run a WebSocket bridge for local dashboards and automations.

Clients receive a JSON state snapshot on connect, on every interval tick,
and after each accepted intent. Intents are JSON messages:

  {"op":"power","on":true}
  {"op":"heat","mode":"LOW"}
  {"op":"thermostat","celsius":22}
  {"op":"flame-brightness","level":7}
  {"op":"fuel-brightness","level":3}
  {"op":"flame-color","color":"BLUE_2"}
  {"op":"fuel-color","color":"CYCLE_1"}
  {"op":"query"}

With --username, clients must authenticate via HTTP Basic auth. The
password is read from the EMBERCTL_BRIDGE_PASSWORD environment variable,
or prompted interactively if not set. A --password flag is intentionally
not provided to avoid leaking credentials in shell history.`,
	RunE: runBridge,
}

func init() {
	bridgeCmd.Flags().StringVar(&bridgeListen, "listen", "127.0.0.1:8867", "Listen address")
	bridgeCmd.Flags().StringVar(&bridgeUsername, "username", "", "Username for HTTP Basic auth (empty disables auth)")
	bridgeCmd.Flags().DurationVar(&bridgeInterval, "interval", 10*time.Second, "Snapshot push interval")
	rootCmd.AddCommand(bridgeCmd)
}

func runBridge(cmd *cobra.Command, args []string) error {
	password := ""
	if bridgeUsername != "" {
		var err error
		password, err = getBridgePassword()
		if err != nil {
			return err
		}
	}

	d, err := acquireDevice()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.QueryState(); err != nil {
		logrus.Warnf("Initial state query failed: %v", err)
	}

	srv := &bridgeServer{
		dev:      d,
		username: bridgeUsername,
		password: password,
		interval: bridgeInterval,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", srv.handleWS)

	logrus.Infof("Bridge listening on ws://%s (device %s)", bridgeListen, d.Identity())
	return http.ListenAndServe(bridgeListen, mux)
}

// getBridgePassword retrieves the bridge password from the environment or
// prompts the user.
func getBridgePassword() (string, error) {
	if pw := os.Getenv("EMBERCTL_BRIDGE_PASSWORD"); pw != "" {
		return pw, nil
	}

	fmt.Fprint(os.Stderr, "Bridge password: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		// Fallback to regular input if terminal functions fail
		reader := bufio.NewReader(os.Stdin)
		password, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(os.Stderr)
		return strings.TrimSpace(password), nil
	}

	fmt.Fprintln(os.Stderr)
	return string(passwordBytes), nil
}

// bridgeServer fans the session out to WebSocket clients.
type bridgeServer struct {
	dev      *flamerite.Device
	username string
	password string
	interval time.Duration

	upgrader websocket.Upgrader
}

// stateSnapshot is the JSON message pushed to clients.
type stateSnapshot struct {
	Type            string `json:"type"`
	Address         string `json:"address"`
	Name            string `json:"name,omitempty"`
	Connected       bool   `json:"connected"`
	IsPoweredOn     bool   `json:"isPoweredOn"`
	HeatMode        string `json:"heatMode"`
	Thermostat      int    `json:"thermostat"`
	FlameBrightness int    `json:"flameBrightness"`
	FuelBrightness  int    `json:"fuelBrightness"`
	FlameColor      string `json:"flameColor"`
	FuelColor       string `json:"fuelColor"`
}

// intentMessage is a client request to change the device state.
type intentMessage struct {
	Op      string `json:"op"`
	On      bool   `json:"on"`
	Mode    string `json:"mode"`
	Celsius int    `json:"celsius"`
	Level   int    `json:"level"`
	Color   string `json:"color"`
}

// errorMessage reports a rejected intent to the client.
type errorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

func (s *bridgeServer) snapshot() stateSnapshot {
	st := s.dev.State()
	id := s.dev.Identity()
	return stateSnapshot{
		Type:            "state",
		Address:         id.Address,
		Name:            id.Name,
		Connected:       s.dev.IsConnected(),
		IsPoweredOn:     st.IsPoweredOn,
		HeatMode:        st.HeatMode.String(),
		Thermostat:      st.Thermostat,
		FlameBrightness: st.FlameBrightness,
		FuelBrightness:  st.FuelBrightness,
		FlameColor:      st.FlameColor.String(),
		FuelColor:       st.FuelColor.String(),
	}
}

// authorized checks HTTP Basic credentials. With no username configured
// the bridge is open.
func (s *bridgeServer) authorized(r *http.Request) bool {
	if s.username == "" {
		return true
	}
	user, pass, ok := r.BasicAuth()
	if !ok {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(s.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(s.password)) == 1
	return userOK && passOK
}

// wsClient serializes writes to one WebSocket connection; gorilla permits
// only a single concurrent writer.
type wsClient struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsClient) send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

func (s *bridgeServer) handleWS(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		w.Header().Set("WWW-Authenticate", `Basic realm="emberctl"`)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.Warnf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()
	logrus.Infof("Bridge client connected: %s", r.RemoteAddr)

	client := &wsClient{conn: conn}
	push := make(chan struct{}, 1)
	done := make(chan struct{})
	defer close(done)

	go s.writeLoop(client, push, done)

	for {
		var intent intentMessage
		if err := conn.ReadJSON(&intent); err != nil {
			logrus.Infof("Bridge client disconnected: %s", r.RemoteAddr)
			return
		}

		if err := s.applyIntent(intent); err != nil {
			logrus.Warnf("Rejected intent %q from %s: %v", intent.Op, r.RemoteAddr, err)
			client.send(errorMessage{Type: "error", Error: err.Error()})
			continue
		}

		select {
		case push <- struct{}{}:
		default:
		}
	}
}

func (s *bridgeServer) writeLoop(client *wsClient, push <-chan struct{}, done <-chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	send := func() bool {
		return client.send(s.snapshot()) == nil
	}

	if !send() {
		return
	}
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			s.dev.QueryState()
			if !send() {
				return
			}
		case <-push:
			if !send() {
				return
			}
		}
	}
}

// applyIntent validates and executes a client intent against the session.
func (s *bridgeServer) applyIntent(intent intentMessage) error {
	switch intent.Op {
	case "query":
		return s.dev.QueryState()
	case "power":
		return s.dev.SetPoweredOn(intent.On)
	case "heat":
		mode, err := flamerite.ParseHeatMode(intent.Mode)
		if err != nil {
			return err
		}
		return s.dev.SetHeatMode(mode)
	case "thermostat":
		if intent.Celsius < flamerite.ThermostatMin || intent.Celsius > flamerite.ThermostatMax {
			return fmt.Errorf("thermostat %d out of range (%d-%d)",
				intent.Celsius, flamerite.ThermostatMin, flamerite.ThermostatMax)
		}
		return s.dev.SetThermostat(intent.Celsius)
	case "flame-brightness", "fuel-brightness":
		if intent.Level < flamerite.BrightnessMin || intent.Level > flamerite.BrightnessMax {
			return fmt.Errorf("brightness %d out of range (%d-%d)",
				intent.Level, flamerite.BrightnessMin, flamerite.BrightnessMax)
		}
		if intent.Op == "flame-brightness" {
			return s.dev.SetFlameBrightness(intent.Level)
		}
		return s.dev.SetFuelBrightness(intent.Level)
	case "flame-color", "fuel-color":
		color, err := flamerite.ParseColor(intent.Color)
		if err != nil {
			return err
		}
		if intent.Op == "flame-color" {
			return s.dev.SetFlameColor(color)
		}
		return s.dev.SetFuelColor(color)
	default:
		return fmt.Errorf("unknown op %q", intent.Op)
	}
}
