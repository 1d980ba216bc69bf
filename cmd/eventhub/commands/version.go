// Copyright 2025 Vulntor Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vulntor/eventhub/cmd/eventhub/internal/format"
	"github.com/vulntor/eventhub/pkg/scenario"
	"github.com/vulntor/eventhub/pkg/version"
)

func newVersionCommand() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if short {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), version.Version)
				return err
			}

			f := format.FromCommand(cmd)
			info := version.Get()
			if f.Mode() == format.ModeJSON {
				return f.PrintJSON(struct {
					version.Struct
					Scenarios string `json:"scenarioVersions"`
				}{info, scenario.SupportedVersions})
			}

			return f.PrintTable([]string{"field", "value"}, [][]string{
				{"version", info.Version},
				{"commit", info.Commit},
				{"built", info.BuildDate},
				{"go", info.GoVersion},
				{"platform", info.Platform},
				{"scenarios", scenario.SupportedVersions},
			})
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Print the version number only")
	return cmd
}
