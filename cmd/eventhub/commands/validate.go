// Copyright 2025 Vulntor Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vulntor/eventhub/cmd/eventhub/internal/format"
	"github.com/vulntor/eventhub/pkg/scenario"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "validate <scenario>",
		Short:   "Check a scenario file without running it",
		GroupID: "scenario",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := format.FromCommand(cmd)
			path := args[0]

			doc, err := scenario.Load(path)
			if err != nil {
				var verr *scenario.ValidationError
				if errors.As(err, &verr) && f.Mode() == format.ModeTable {
					rows := make([][]string, len(verr.Problems))
					for i, p := range verr.Problems {
						rows[i] = []string{fmt.Sprint(i + 1), p}
					}
					_ = f.PrintTable([]string{"#", "problem"}, rows)
				}
				return reportError(f, err)
			}

			if f.Mode() == format.ModeJSON {
				return f.PrintJSON(map[string]any{
					"success":  true,
					"scenario": doc.Name,
					"handlers": len(doc.Handlers),
					"steps":    len(doc.Steps),
				})
			}
			return f.PrintSummary(fmt.Sprintf("✓ %s is valid (%d handlers, %d steps)", doc.Name, len(doc.Handlers), len(doc.Steps)))
		},
	}
}
