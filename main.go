// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The emberctl authors
//
// Emberctl - Flamerite NITRAFlame fireplace controller
//
// A CLI tool for discovering and controlling Flamerite electric
// fireplaces over Bluetooth Low Energy.

package main

import (
	"os"

	"github.com/flamerite/emberctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
