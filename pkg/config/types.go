// Copyright 2025 Vulntor Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package config

import "time"

// Config is the root configuration structure for the eventhub CLI.
type Config struct {
	Log     LogConfig     `description:"Logging configuration" koanf:"log"`
	Hub     HubConfig     `description:"Hub configuration" koanf:"hub"`
	Output  OutputConfig  `description:"Output configuration" koanf:"output"`
	Run     RunConfig     `description:"Scenario run configuration" koanf:"run"`
	Metrics MetricsConfig `description:"Metrics configuration" koanf:"metrics"`
}

// LogConfig holds logging related configuration.
type LogConfig struct {
	Level  string `description:"Log level (trace, debug, info, warn, error)" koanf:"level"`
	Format string `description:"Log format: json | text" koanf:"format"`
}

// HubConfig holds defaults for hubs created by the CLI.
type HubConfig struct {
	RemovalMode string `description:"Removal semantics: legacy | scoped" koanf:"removal_mode"`
}

// OutputConfig controls how command results are printed.
type OutputConfig struct {
	Mode    string `description:"Output mode: table | json" koanf:"mode"`
	NoColor bool   `description:"Disable colored output" koanf:"no_color"`
	Quiet   bool   `description:"Suppress summary lines" koanf:"quiet"`
}

// RunConfig holds options for 'eventhub run'.
type RunConfig struct {
	Watch     bool          `description:"Re-run the scenario when the file changes" koanf:"watch"`
	Debounce  time.Duration `description:"Delay before re-running after a change" koanf:"debounce"`
	TraceFile string        `description:"Append the dispatch trace as JSON lines to this file" koanf:"trace_file"`
}

// MetricsConfig controls the Prometheus observer.
type MetricsConfig struct {
	Enabled   bool   `description:"Attach a Prometheus observer to scenario hubs" koanf:"enabled"`
	Namespace string `description:"Prometheus namespace" koanf:"namespace"`
	File      string `description:"Write metrics in text exposition format to this file" koanf:"file"`
}
