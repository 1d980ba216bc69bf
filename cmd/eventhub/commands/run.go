// Copyright 2025 Vulntor Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"sync"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vulntor/eventhub/cmd/eventhub/internal/format"
	"github.com/vulntor/eventhub/pkg/appctx"
	"github.com/vulntor/eventhub/pkg/config"
	"github.com/vulntor/eventhub/pkg/metrics"
	"github.com/vulntor/eventhub/pkg/scenario"
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <scenario>",
		Short: "Replay a scenario file against a fresh hub",
		Long: `Replay a scenario file (YAML, TOML or JSON) against a fresh event hub.

The dispatch trace and a per-handler summary are printed after each run.
The command exits with status 3 when the scenario's expectations do not hold.`,
		GroupID: "scenario",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := newScenarioRun(cmd, args[0])
			if !r.cfg.Run.Watch {
				return r.once(cmd.Context())
			}
			return r.watch(cmd.Context())
		},
	}

	config.BindRunFlags(cmd.Flags())
	return cmd
}

// scenarioRun holds everything needed to replay one scenario file,
// possibly many times in watch mode.
type scenarioRun struct {
	path     string
	cfg      config.Config
	out      format.Formatter
	logger   zerolog.Logger
	runner   *scenario.Runner
	registry *prometheus.Registry

	mu sync.Mutex
}

func newScenarioRun(cmd *cobra.Command, path string) *scenarioRun {
	cfg := currentConfig(cmd)
	logger := appctx.Logger(cmd.Context()).With().Str("scenario_file", path).Logger()

	opts := []scenario.RunnerOption{
		scenario.WithRunnerLogger(logger),
		scenario.WithDefaultMode(cfg.RemovalMode()),
	}

	r := &scenarioRun{
		path:   path,
		cfg:    cfg,
		out:    format.FromCommand(cmd),
		logger: logger,
	}

	if cfg.Metrics.Enabled {
		r.registry = prometheus.NewRegistry()
		collector := metrics.NewCollector(cfg.Metrics.Namespace)
		if err := collector.Register(r.registry); err != nil {
			logger.Warn().Err(err).Msg("metrics disabled")
			r.registry = nil
		} else {
			opts = append(opts, scenario.WithHubObserver(collector))
		}
	}

	r.runner = scenario.NewRunner(opts...)
	return r
}

// once loads and replays the scenario a single time.
func (r *scenarioRun) once(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := scenario.Load(r.path)
	if err != nil {
		return reportError(r.out, err)
	}

	res, runErr := r.runner.Run(doc)
	if res == nil {
		return reportError(r.out, runErr)
	}

	if err := r.report(res); err != nil {
		return err
	}

	if r.cfg.Run.TraceFile != "" {
		if err := scenario.AppendTrace(ctx, r.cfg.Run.TraceFile, res); err != nil {
			return err
		}
		r.logger.Debug().Str("trace_file", r.cfg.Run.TraceFile).Str("run_id", res.RunID).Msg("trace appended")
	}
	if r.registry != nil && r.cfg.Metrics.File != "" {
		if err := metrics.WriteTextfile(r.cfg.Metrics.File, r.registry); err != nil {
			return err
		}
	}

	if runErr != nil {
		return runErr
	}
	return res.Err()
}

func (r *scenarioRun) report(res *scenario.Result) error {
	if r.out.Mode() == format.ModeJSON {
		return r.out.PrintJSON(res)
	}

	if err := r.out.PrintTrace(res.Entries); err != nil {
		return err
	}

	names := make([]string, 0, len(res.Calls))
	for name := range res.Calls {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{name, strconv.Itoa(res.Calls[name])})
	}
	if err := r.out.PrintTable([]string{"handler", "calls"}, rows); err != nil {
		return err
	}

	if r.registry != nil {
		samples, err := metrics.Gather(r.registry)
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(samples))
		for _, s := range samples {
			rows = append(rows, []string{s.Name, s.Labels, strconv.FormatFloat(s.Value, 'f', -1, 64)})
		}
		if err := r.out.PrintTable([]string{"metric", "labels", "value"}, rows); err != nil {
			return err
		}
	}

	status := "✓ passed"
	if !res.Passed() {
		status = fmt.Sprintf("✗ %d expectation(s) failed", len(res.Failures))
	}
	return r.out.PrintSummary(fmt.Sprintf("%s: %s (mode %s, %d errors, %d listeners left, run %s)",
		res.Scenario, status, res.Mode, res.Errors, res.Listeners, res.RunID))
}

// watch replays the scenario now and after every change to the file until
// the process is interrupted.
func (r *scenarioRun) watch(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	rerun := func() {
		if err := r.once(ctx); err != nil {
			r.logger.Info().Err(err).Msg("scenario run failed")
		}
	}

	w, err := scenario.NewWatcher(r.path, r.cfg.Run.Debounce, rerun, r.logger)
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	rerun()
	_ = r.out.PrintSummary(fmt.Sprintf("watching %s for changes (Ctrl+C to stop)", r.path))

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
