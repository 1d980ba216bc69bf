// Copyright 2025 Vulntor Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/vulntor/eventhub/cmd/eventhub/internal/format"
	"github.com/vulntor/eventhub/pkg/appctx"
	"github.com/vulntor/eventhub/pkg/config"
	"github.com/vulntor/eventhub/pkg/logging"
	"github.com/vulntor/eventhub/pkg/paths"
)

const cliExecutable = "eventhub"

// NewCommand constructs the top-level eventhub CLI command, wiring global
// flags, configuration loading and logging setup.
func NewCommand() *cobra.Command {
	var (
		configFile     string
		verbosityCount int
	)

	cmd := &cobra.Command{
		Use:   cliExecutable,
		Short: "Replay event hub scenarios",
		Long: `eventhub replays declarative scenario files against an in-process event hub
and reports every registration, removal and handler invocation.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if configFile == "" {
				configFile = paths.ConfigFile()
			}

			manager := config.NewManager()
			if err := manager.Load(config.DefaultSources(configFile, cmd.Flags(), debug)...); err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			cfg := manager.Get()

			level := logging.VerbosityLevel(logging.ParseLevel(cfg.Log.Level), verbosityCount)
			logging.ConfigureGlobalLogging(level.String(), cfg.Log.Format)
			log.Debug().
				Str("config", configFile).
				Str("removal_mode", cfg.Hub.RemovalMode).
				Msg("configuration loaded")

			ctx := appctx.WithConfig(cmd.Context(), manager)
			ctx = appctx.WithLogger(ctx, logging.Component(cliExecutable))

			cmd.SetContext(ctx)
			if root := cmd.Root(); root != nil && root != cmd {
				root.SetContext(ctx)
			}
			return nil
		},
	}

	cmd.SilenceUsage = true

	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Configuration file path (default $XDG_CONFIG_HOME/eventhub/config.yaml)")
	cmd.PersistentFlags().CountVarP(&verbosityCount, "verbosity", "v", "Increase logging verbosity (repeatable)")

	config.BindFlags(cmd.PersistentFlags())

	cmd.AddGroup(&cobra.Group{ID: "scenario", Title: "Scenario Commands"})

	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newValidateCommand())
	cmd.AddCommand(newVersionCommand())

	return cmd
}

// reportError prints err as a JSON object in JSON output mode. Cobra prints
// the human-readable form to stderr once the command returns.
func reportError(f format.Formatter, err error) error {
	if err != nil && f.Mode() == format.ModeJSON {
		_ = f.PrintError(err)
	}
	return err
}

// currentConfig returns the configuration loaded by the root command, or
// the defaults when a subcommand runs on its own.
func currentConfig(cmd *cobra.Command) config.Config {
	if mgr, ok := appctx.Config(cmd.Context()); ok {
		return mgr.Get()
	}
	return config.DefaultConfig()
}
