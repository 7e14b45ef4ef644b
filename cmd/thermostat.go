// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The emberctl authors

package cmd

import (
	"fmt"
	"strconv"

	"github.com/flamerite/emberctl/pkg/flamerite"
	"github.com/spf13/cobra"
)

var thermostatCmd = &cobra.Command{
	Use:   "thermostat TEMPERATURE",
	Short: fmt.Sprintf("Set the thermostat (%d-%d degrees Celsius)", flamerite.ThermostatMin, flamerite.ThermostatMax),
	Args:  cobra.ExactArgs(1),
	RunE:  runThermostat,
}

func init() {
	rootCmd.AddCommand(thermostatCmd)
}

func runThermostat(cmd *cobra.Command, args []string) error {
	celsius, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid temperature %q", args[0])
	}
	if celsius < flamerite.ThermostatMin || celsius > flamerite.ThermostatMax {
		return fmt.Errorf("temperature %d out of range (%d-%d)", celsius, flamerite.ThermostatMin, flamerite.ThermostatMax)
	}

	return withDevice(func(d *flamerite.Device) error {
		if err := d.SetThermostat(celsius); err != nil {
			return err
		}
		fmt.Printf("Thermostat set to %dC\n", celsius)
		return nil
	})
}
