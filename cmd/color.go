// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The emberctl authors

package cmd

import (
	"fmt"

	"github.com/flamerite/emberctl/pkg/flamerite"
	"github.com/spf13/cobra"
)

var flameColorCmd = &cobra.Command{
	Use:   "flame-color NAME",
	Short: "Set the flame color",
	Long:  "Set the flame color by name. Run 'emberctl colors' for the palette.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runColor(args[0], "Flame", (*flamerite.Device).SetFlameColor)
	},
}

var fuelColorCmd = &cobra.Command{
	Use:   "fuel-color NAME",
	Short: "Set the fuel bed color",
	Long:  "Set the fuel bed color by name. Run 'emberctl colors' for the palette.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runColor(args[0], "Fuel bed", (*flamerite.Device).SetFuelColor)
	},
}

var colorsCmd = &cobra.Command{
	Use:   "colors",
	Short: "List the available colors",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range flamerite.ColorNames() {
			c, _ := flamerite.ParseColor(name)
			fmt.Printf("  %-18s %s\n", name, c.Description())
		}
	},
}

func init() {
	rootCmd.AddCommand(flameColorCmd)
	rootCmd.AddCommand(fuelColorCmd)
	rootCmd.AddCommand(colorsCmd)
}

func runColor(arg, label string, set func(*flamerite.Device, flamerite.Color) error) error {
	color, err := flamerite.ParseColor(arg)
	if err != nil {
		return err
	}

	return withDevice(func(d *flamerite.Device) error {
		if err := set(d, color); err != nil {
			return err
		}
		fmt.Printf("%s color set to %s\n", label, color)
		return nil
	})
}
