// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The emberctl authors

package cmd

import (
	"fmt"
	"strconv"

	"github.com/flamerite/emberctl/pkg/flamerite"
	"github.com/spf13/cobra"
)

var flameBrightnessCmd = &cobra.Command{
	Use:   "flame-brightness LEVEL",
	Short: fmt.Sprintf("Set the flame brightness (%d-%d)", flamerite.BrightnessMin, flamerite.BrightnessMax),
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBrightness(args[0], "Flame", (*flamerite.Device).SetFlameBrightness)
	},
}

var fuelBrightnessCmd = &cobra.Command{
	Use:   "fuel-brightness LEVEL",
	Short: fmt.Sprintf("Set the fuel bed brightness (%d-%d)", flamerite.BrightnessMin, flamerite.BrightnessMax),
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBrightness(args[0], "Fuel bed", (*flamerite.Device).SetFuelBrightness)
	},
}

func init() {
	rootCmd.AddCommand(flameBrightnessCmd)
	rootCmd.AddCommand(fuelBrightnessCmd)
}

// runBrightness parses and applies a brightness level. The device only
// steps brightness one level at a time, so the session ramps from the
// queried level to the target.
func runBrightness(arg, label string, set func(*flamerite.Device, int) error) error {
	level, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("invalid brightness %q", arg)
	}
	if level < flamerite.BrightnessMin || level > flamerite.BrightnessMax {
		return fmt.Errorf("brightness %d out of range (%d-%d)", level, flamerite.BrightnessMin, flamerite.BrightnessMax)
	}

	return withDevice(func(d *flamerite.Device) error {
		if err := set(d, level); err != nil {
			return err
		}
		fmt.Printf("%s brightness set to %d\n", label, level)
		return nil
	})
}
