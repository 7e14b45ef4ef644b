// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The emberctl authors

package cmd

import (
	"fmt"

	"github.com/flamerite/emberctl/pkg/flamerite"
	"github.com/spf13/cobra"
)

var powerCmd = &cobra.Command{
	Use:       "power on|off",
	Short:     "Power the fireplace on or off",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"on", "off"},
	RunE:      runPower,
}

func init() {
	rootCmd.AddCommand(powerCmd)
}

func runPower(cmd *cobra.Command, args []string) error {
	on := args[0] == "on"

	return withDevice(func(d *flamerite.Device) error {
		if err := d.SetPoweredOn(on); err != nil {
			return err
		}
		fmt.Printf("Power set to %s\n", args[0])
		return nil
	})
}
