// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The emberctl authors

package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/flamerite/emberctl/pkg/flamerite"
)

//////////////////////////////////////////////////////////////
// Constants
//////////////////////////////////////////////////////////////

// refreshInterval is how often the TUI queries the device for a fresh
// status while idle.
const refreshInterval = 3 * time.Second

//////////////////////////////////////////////////////////////
// Key bindings
//////////////////////////////////////////////////////////////

type controlKeyMap struct {
	Power      key.Binding
	HeatUp     key.Binding
	HeatDown   key.Binding
	FlameUp    key.Binding
	FlameDown  key.Binding
	FuelUp     key.Binding
	FuelDown   key.Binding
	FlameColor key.Binding
	FuelColor  key.Binding
	TempUp     key.Binding
	TempDown   key.Binding
	Refresh    key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func (k controlKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Power, k.HeatUp, k.Refresh, k.Help, k.Quit}
}

func (k controlKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Power, k.HeatUp, k.HeatDown, k.Refresh},
		{k.FlameUp, k.FlameDown, k.FuelUp, k.FuelDown},
		{k.FlameColor, k.FuelColor, k.TempUp, k.TempDown},
		{k.Help, k.Quit},
	}
}

var controlKeys = controlKeyMap{
	Power:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "power")),
	HeatUp:     key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "heat up")),
	HeatDown:   key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "heat down")),
	FlameUp:    key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "flame brighter")),
	FlameDown:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "flame dimmer")),
	FuelUp:     key.NewBinding(key.WithKeys("}"), key.WithHelp("}", "fuel brighter")),
	FuelDown:   key.NewBinding(key.WithKeys("{"), key.WithHelp("{", "fuel dimmer")),
	FlameColor: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "next flame color")),
	FuelColor:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "next fuel color")),
	TempUp:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "thermostat up")),
	TempDown:   key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "thermostat down")),
	Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

//////////////////////////////////////////////////////////////
// Styles
//////////////////////////////////////////////////////////////

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(18)
	onStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("82"))
	offStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

//////////////////////////////////////////////////////////////
// Messages
//////////////////////////////////////////////////////////////

type connectedMsg struct{}

type connectFailedMsg struct{ err error }

type refreshDoneMsg struct{ err error }

type intentDoneMsg struct{ err error }

type refreshTickMsg time.Time

//////////////////////////////////////////////////////////////
// Model
//////////////////////////////////////////////////////////////

type controlModel struct {
	dev  *flamerite.Device
	keys controlKeyMap
	help help.Model
	spin spinner.Model

	connecting bool
	busy       bool
	lastErr    error
	width      int
	height     int
	quitting   bool
}

func newControlModel(d *flamerite.Device) controlModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))

	return controlModel{
		dev:        d,
		keys:       controlKeys,
		help:       help.New(),
		spin:       sp,
		connecting: true,
		width:      80,
		height:     24,
	}
}

//////////////////////////////////////////////////////////////
// Bubble Tea interface
//////////////////////////////////////////////////////////////

func (m controlModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.connectCmd())
}

func (m controlModel) connectCmd() tea.Cmd {
	return func() tea.Msg {
		if err := m.dev.Connect(retryAttempts); err != nil {
			return connectFailedMsg{err: err}
		}
		if err := m.dev.QueryState(); err != nil && !errors.Is(err, flamerite.ErrQueryTimeout) {
			return connectFailedMsg{err: err}
		}
		return connectedMsg{}
	}
}

func (m controlModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return refreshDoneMsg{err: m.dev.QueryState()}
	}
}

// intentCmd runs a device intent off the UI goroutine and refreshes the
// status afterwards. The session serializes intents internally.
func (m controlModel) intentCmd(fn func() error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(); err != nil {
			return intentDoneMsg{err: err}
		}
		return intentDoneMsg{err: m.dev.QueryState()}
	}
}

func refreshTickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return refreshTickMsg(t)
	})
}

func (m controlModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case spinner.TickMsg:
		if m.connecting || m.busy {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}

	case connectedMsg:
		m.connecting = false
		m.lastErr = nil
		return m, refreshTickCmd()

	case connectFailedMsg:
		m.connecting = false
		m.lastErr = msg.err

	case refreshTickMsg:
		if m.busy || m.connecting || !m.dev.IsConnected() {
			return m, refreshTickCmd()
		}
		return m, tea.Batch(m.refreshCmd(), refreshTickCmd())

	case refreshDoneMsg:
		m.lastErr = msg.err

	case intentDoneMsg:
		m.busy = false
		m.lastErr = msg.err
	}

	return m, nil
}

func (m controlModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	if m.connecting || m.busy {
		return m, nil
	}

	s := m.dev.State()

	var intent func() error
	switch {
	case key.Matches(msg, m.keys.Refresh):
		intent = m.dev.QueryState
	case key.Matches(msg, m.keys.Power):
		intent = func() error { return m.dev.SetPoweredOn(!s.IsPoweredOn) }
	case key.Matches(msg, m.keys.HeatUp):
		intent = func() error { return m.dev.SetHeatMode(heatStepUp(s.HeatMode)) }
	case key.Matches(msg, m.keys.HeatDown):
		intent = func() error { return m.dev.SetHeatMode(heatStepDown(s.HeatMode)) }
	case key.Matches(msg, m.keys.FlameUp):
		intent = func() error { return m.dev.SetFlameBrightness(s.FlameBrightness + 1) }
	case key.Matches(msg, m.keys.FlameDown):
		intent = func() error { return m.dev.SetFlameBrightness(s.FlameBrightness - 1) }
	case key.Matches(msg, m.keys.FuelUp):
		intent = func() error { return m.dev.SetFuelBrightness(s.FuelBrightness + 1) }
	case key.Matches(msg, m.keys.FuelDown):
		intent = func() error { return m.dev.SetFuelBrightness(s.FuelBrightness - 1) }
	case key.Matches(msg, m.keys.FlameColor):
		intent = func() error { return m.dev.SetFlameColor(nextColor(s.FlameColor)) }
	case key.Matches(msg, m.keys.FuelColor):
		intent = func() error { return m.dev.SetFuelColor(nextColor(s.FuelColor)) }
	case key.Matches(msg, m.keys.TempUp):
		intent = func() error { return m.dev.SetThermostat(s.Thermostat + 1) }
	case key.Matches(msg, m.keys.TempDown):
		intent = func() error { return m.dev.SetThermostat(s.Thermostat - 1) }
	default:
		return m, nil
	}

	m.busy = true
	return m, tea.Batch(m.spin.Tick, m.intentCmd(intent))
}

// heatStepUp cycles OFF -> LOW -> HIGH, saturating at HIGH.
func heatStepUp(mode flamerite.HeatMode) flamerite.HeatMode {
	switch mode {
	case flamerite.HeatOff:
		return flamerite.HeatLow
	default:
		return flamerite.HeatHigh
	}
}

// heatStepDown cycles HIGH -> LOW -> OFF, saturating at OFF.
func heatStepDown(mode flamerite.HeatMode) flamerite.HeatMode {
	switch mode {
	case flamerite.HeatHigh:
		return flamerite.HeatLow
	default:
		return flamerite.HeatOff
	}
}

// nextColor advances through the palette, wrapping after the last cycle
// variant.
func nextColor(c flamerite.Color) flamerite.Color {
	if c >= flamerite.ColorMax {
		return flamerite.ColorMin
	}
	return c + 1
}

//////////////////////////////////////////////////////////////
// View
//////////////////////////////////////////////////////////////

func (m controlModel) View() string {
	if m.quitting {
		return ""
	}

	title := titleStyle.Render("emberctl") + dimStyle.Render("  "+m.dev.Identity().String())

	if m.connecting {
		return fmt.Sprintf("\n %s\n\n %s Connecting...\n", title, m.spin.View())
	}

	var body string
	if !m.dev.IsConnected() && m.lastErr != nil {
		body = errStyle.Render(fmt.Sprintf("Connection failed: %v", m.lastErr)) +
			"\n\n" + dimStyle.Render("Press q to quit")
	} else {
		body = m.renderStatus()
	}

	footer := m.help.View(m.keys)
	if m.lastErr != nil && m.dev.IsConnected() {
		footer = errStyle.Render(fmt.Sprintf("error: %v", m.lastErr)) + "\n" + footer
	}
	if m.busy {
		footer = m.spin.View() + " working...\n" + footer
	}

	return fmt.Sprintf("\n %s\n\n%s\n\n%s\n", title, panelStyle.Render(body), footer)
}

func (m controlModel) renderStatus() string {
	s := m.dev.State()

	power := offStyle.Render("OFF")
	if s.IsPoweredOn {
		power = onStyle.Render("ON")
	}

	rows := []string{
		labelStyle.Render("Power") + power,
		labelStyle.Render("Heat") + s.HeatMode.String(),
		labelStyle.Render("Thermostat") + fmt.Sprintf("%dC", s.Thermostat),
		labelStyle.Render("Flame") + fmt.Sprintf("brightness %d/%d, %s", s.FlameBrightness, flamerite.BrightnessMax, s.FlameColor.Description()),
		labelStyle.Render("Fuel bed") + fmt.Sprintf("brightness %d/%d, %s", s.FuelBrightness, flamerite.BrightnessMax, s.FuelColor.Description()),
	}
	if model := m.dev.ModelNumber(); model != "" {
		rows = append(rows, "", dimStyle.Render(fmt.Sprintf("%s / %s / fw %s",
			model, m.dev.SerialNumber(), m.dev.FirmwareRevision())))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
