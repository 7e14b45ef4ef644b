// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The emberctl authors

package cmd

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var rawCmd = &cobra.Command{
	Use:   "raw HEXBYTES",
	Short: "Send a raw command frame",
	Long: `Send raw hex bytes to the command attribute, bypassing the codec.
Intended for protocol debugging.

Examples:
  emberctl raw a1010a        query state
  emberctl raw "a2 01 18"    thermostat to 24C`,
	Args: cobra.ExactArgs(1),
	RunE: runRaw,
}

func init() {
	rootCmd.AddCommand(rawCmd)
}

func runRaw(cmd *cobra.Command, args []string) error {
	cleaned := strings.NewReplacer(" ", "", ":", "").Replace(args[0])
	data, err := hex.DecodeString(cleaned)
	if err != nil {
		return fmt.Errorf("invalid hex %q: %w", args[0], err)
	}
	if len(data) == 0 {
		return fmt.Errorf("empty command")
	}

	d, err := acquireDevice()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.SendRaw(data); err != nil {
		return err
	}
	fmt.Printf("Sent % X\n", data)
	return nil
}
