// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The emberctl authors

package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/flamerite/emberctl/pkg/flamerite"
	"github.com/spf13/cobra"
)

var controlCmd = &cobra.Command{
	Use:   "control",
	Short: "Interactive TUI for controlling a fireplace",
	Long: `Control a fireplace via an interactive terminal UI.

The TUI connects to the selected device, keeps its status refreshed with
periodic queries, and maps single keys to the device intents: power, heat
stepping, brightness, color cycling and thermostat nudges.

Key bindings are shown in the footer; press ? for the full list.`,
	RunE: runControl,
}

func init() {
	rootCmd.AddCommand(controlCmd)
}

func runControl(cmd *cobra.Command, args []string) error {
	id, err := resolveIdentity()
	if err != nil {
		return err
	}

	d := flamerite.NewDevice(id, flamerite.DefaultTransport)
	defer d.Close()

	p := tea.NewProgram(newControlModel(d), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
