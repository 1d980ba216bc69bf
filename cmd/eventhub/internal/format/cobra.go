// Copyright 2025 Vulntor Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package format

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vulntor/eventhub/pkg/appctx"
)

// FromCommand builds a Formatter using cobra command output/error writers.
// Loaded configuration is used when present; explicitly set flags win.
func FromCommand(cmd *cobra.Command) Formatter {
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	outputMode := ModeTable
	quiet := false
	color := true

	if mgr, ok := appctx.Config(cmd.Context()); ok {
		cfg := mgr.Get()
		outputMode = ParseMode(cfg.Output.Mode)
		quiet = cfg.Output.Quiet
		color = !cfg.Output.NoColor
	}

	flags := cmd.Flags()
	if flag := flags.Lookup("output"); flag != nil && flag.Changed {
		outputMode = ParseMode(flag.Value.String())
	}
	if flag := flags.Lookup("quiet"); flag != nil && flag.Changed {
		if val, err := strconv.ParseBool(flag.Value.String()); err == nil {
			quiet = val
		}
	}
	if flag := flags.Lookup("no-color"); flag != nil && flag.Changed {
		if val, err := strconv.ParseBool(flag.Value.String()); err == nil {
			color = !val
		}
	}

	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	return New(stdout, stderr, outputMode, quiet, color)
}
