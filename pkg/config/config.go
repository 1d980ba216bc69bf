// Copyright 2025 Vulntor Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package config loads the eventhub CLI configuration from layered sources.
package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/vulntor/eventhub/pkg/eventhub"
)

// ErrInvalidConfig is returned when the merged configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Manager handles loading and accessing application configuration.
type Manager struct {
	koanfInstance *koanf.Koanf
	currentConfig Config
	mu            sync.RWMutex
}

// NewManager creates a Manager holding the default configuration.
func NewManager() *Manager {
	return &Manager{
		koanfInstance: koanf.New("."),
		currentConfig: DefaultConfig(),
	}
}

// DefaultConfig returns the baseline configuration used when no other
// source overrides a value.
func DefaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level:  "error",
			Format: "text",
		},
		Hub: HubConfig{
			RemovalMode: eventhub.RemovalLegacy.String(),
		},
		Output: OutputConfig{
			Mode: "table",
		},
		Run: RunConfig{
			Debounce: 100 * time.Millisecond,
		},
		Metrics: MetricsConfig{
			Namespace: "eventhub",
		},
	}
}

// Load loads every source in priority order (lowest first) and replaces the
// current configuration with the merged, validated result.
func (m *Manager) Load(sources ...ConfigSource) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sorted := make([]ConfigSource, len(sources))
	copy(sorted, sources)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority() < sorted[j].Priority()
	})

	k := koanf.New(".")
	for _, src := range sorted {
		if err := src.Load(k); err != nil {
			return fmt.Errorf("load %s: %w", src.Name(), err)
		}
	}

	var newCfg Config
	if err := k.UnmarshalWithConf("", &newCfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return fmt.Errorf("error unmarshaling final config: %w", err)
	}
	if err := validate(&newCfg); err != nil {
		return err
	}

	m.koanfInstance = k
	m.currentConfig = newCfg
	return nil
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentConfig
}

// Koanf returns the koanf instance of the last successful Load.
func (m *Manager) Koanf() *koanf.Koanf {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.koanfInstance
}

// RemovalMode returns the configured hub removal mode.
func (c Config) RemovalMode() eventhub.RemovalMode {
	mode, _ := eventhub.ParseRemovalMode(c.Hub.RemovalMode)
	return mode
}

func validate(cfg *Config) error {
	if _, err := eventhub.ParseRemovalMode(cfg.Hub.RemovalMode); err != nil {
		return fmt.Errorf("%w: hub.removal_mode: %v", ErrInvalidConfig, err)
	}

	cfg.Output.Mode = strings.ToLower(cfg.Output.Mode)
	switch cfg.Output.Mode {
	case "table", "json":
	default:
		return fmt.Errorf("%w: output.mode %q (must be 'table' or 'json')", ErrInvalidConfig, cfg.Output.Mode)
	}

	if cfg.Run.Debounce < 0 {
		return fmt.Errorf("%w: run.debounce must not be negative", ErrInvalidConfig)
	}
	return nil
}

// DefaultConfigAsMap converts DefaultConfig to the flat map consumed by
// koanf's confmap provider.
func DefaultConfigAsMap() map[string]interface{} {
	def := DefaultConfig()
	return map[string]interface{}{
		"log.level":  def.Log.Level,
		"log.format": def.Log.Format,

		"hub.removal_mode": def.Hub.RemovalMode,

		"output.mode":     def.Output.Mode,
		"output.no_color": def.Output.NoColor,
		"output.quiet":    def.Output.Quiet,

		"run.watch":      def.Run.Watch,
		"run.debounce":   def.Run.Debounce.String(),
		"run.trace_file": def.Run.TraceFile,

		"metrics.enabled":   def.Metrics.Enabled,
		"metrics.namespace": def.Metrics.Namespace,
		"metrics.file":      def.Metrics.File,
	}
}

// flagKeys maps command-line flag names to configuration keys. Flags not
// listed here are ignored by FlagSource.
var flagKeys = map[string]string{
	"log-level":    "log.level",
	"log-format":   "log.format",
	"removal-mode": "hub.removal_mode",
	"output":       "output.mode",
	"no-color":     "output.no_color",
	"quiet":        "output.quiet",
	"watch":        "run.watch",
	"debounce":     "run.debounce",
	"trace-file":   "run.trace_file",
	"metrics":      "metrics.enabled",
	"metrics-file": "metrics.file",
}

// BindFlags defines the global command-line flags that override
// configuration values.
func BindFlags(flags *pflag.FlagSet) {
	defaults := DefaultConfig()

	flags.String("log-level", defaults.Log.Level, "Log level (trace, debug, info, warn, error)")
	flags.String("log-format", defaults.Log.Format, "Log format (text, json)")
	flags.String("removal-mode", defaults.Hub.RemovalMode, "Hub removal semantics (legacy, scoped)")
	flags.StringP("output", "o", defaults.Output.Mode, "Output format (table, json)")
	flags.Bool("no-color", defaults.Output.NoColor, "Disable colored output")
	flags.BoolP("quiet", "q", defaults.Output.Quiet, "Suppress summary lines")
	flags.Bool("debug", false, "Enable debug logging")
}

// BindRunFlags defines the flags of the run command.
func BindRunFlags(flags *pflag.FlagSet) {
	defaults := DefaultConfig()

	flags.BoolP("watch", "w", defaults.Run.Watch, "Re-run the scenario whenever the file changes")
	flags.Duration("debounce", defaults.Run.Debounce, "Delay before re-running after a change")
	flags.String("trace-file", defaults.Run.TraceFile, "Append the dispatch trace as JSON lines to this file")
	flags.Bool("metrics", defaults.Metrics.Enabled, "Collect Prometheus metrics for the run")
	flags.String("metrics-file", defaults.Metrics.File, "Write collected metrics in text format to this file")
}
