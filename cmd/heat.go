// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The emberctl authors

package cmd

import (
	"errors"
	"fmt"

	"github.com/flamerite/emberctl/pkg/flamerite"
	"github.com/spf13/cobra"
)

var heatCmd = &cobra.Command{
	Use:   "heat off|low|high",
	Short: "Set the heater output level",
	Long: `Set the heater output level.

The hardware steps through heat levels rather than selecting them
directly, so the current state is queried first and the required step
sequence is derived from it. Heat can only be turned on while the
fireplace is powered on.`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"off", "low", "high"},
	RunE:      runHeat,
}

func init() {
	rootCmd.AddCommand(heatCmd)
}

func runHeat(cmd *cobra.Command, args []string) error {
	mode, err := flamerite.ParseHeatMode(args[0])
	if err != nil {
		return err
	}

	return withDevice(func(d *flamerite.Device) error {
		if err := d.SetHeatMode(mode); err != nil {
			if errors.Is(err, flamerite.ErrInvalidRequest) {
				return fmt.Errorf("cannot set heat while the fireplace is powered off")
			}
			return err
		}
		fmt.Printf("Heat mode set to %s\n", mode)
		return nil
	})
}
