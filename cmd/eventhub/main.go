// Copyright 2025 Vulntor Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package main

import (
	"os"

	"github.com/vulntor/eventhub/cmd/eventhub/commands"
)

// main runs the eventhub CLI. Exit codes:
//   - 0: success
//   - 1: general error
//   - 2: invalid input (scenario, configuration or handler)
//   - 3: scenario expectations failed
func main() {
	if err := commands.NewCommand().Execute(); err != nil {
		os.Exit(commands.ExitCode(err))
	}
}
