// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The emberctl authors

package cmd

import (
	"fmt"

	"github.com/flamerite/emberctl/pkg/flamerite"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show device identity and current state",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	return withDevice(func(d *flamerite.Device) error {
		fmt.Printf("Device:       %s\n", d.Identity())
		fmt.Printf("Model:        %s\n", d.ModelNumber())
		fmt.Printf("Serial:       %s\n", d.SerialNumber())
		fmt.Printf("Manufacturer: %s\n", d.Manufacturer())
		if fw := d.FirmwareRevision(); fw != "" {
			fmt.Printf("Firmware:     %s\n", fw)
		}
		if hw := d.HardwareRevision(); hw != "" {
			fmt.Printf("Hardware:     %s\n", hw)
		}
		fmt.Println()
		fmt.Println(d.State())
		return nil
	})
}
