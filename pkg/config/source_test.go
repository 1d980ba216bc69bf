// Copyright 2025 Vulntor Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSource_Priority(t *testing.T) {
	src := &DefaultSource{}
	assert.Equal(t, 10, src.Priority())
	assert.Equal(t, "defaults", src.Name())
}

func TestDefaultSource_Load(t *testing.T) {
	k := koanf.New(".")
	require.NoError(t, (&DefaultSource{}).Load(k))

	assert.Equal(t, "error", k.String("log.level"))
	assert.Equal(t, "legacy", k.String("hub.removal_mode"))
	assert.Equal(t, "table", k.String("output.mode"))
}

func TestFileSource_Priority(t *testing.T) {
	src := &FileSource{Path: "/tmp/test.yaml"}
	assert.Equal(t, 20, src.Priority())
	assert.Equal(t, "file:/tmp/test.yaml", src.Name())
}

func TestFileSource_Load_EmptyPath(t *testing.T) {
	k := koanf.New(".")
	require.NoError(t, (&FileSource{}).Load(k), "Empty path should skip silently")
}

func TestFileSource_Load_NonExistentFile(t *testing.T) {
	k := koanf.New(".")
	src := &FileSource{Path: "/nonexistent/path/config.yaml"}
	require.NoError(t, src.Load(k), "Non-existent file should skip silently")
}

func TestFileSource_Load_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	configContent := `
log:
  level: warn
  format: json
metrics:
  enabled: true
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o644))

	k := koanf.New(".")
	require.NoError(t, (&FileSource{Path: configPath}).Load(k))

	assert.Equal(t, "warn", k.String("log.level"))
	assert.Equal(t, "json", k.String("log.format"))
	assert.True(t, k.Bool("metrics.enabled"))
}

func TestFileSource_Load_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("log: [unclosed"), 0o644))

	k := koanf.New(".")
	assert.Error(t, (&FileSource{Path: configPath}).Load(k))
}

func TestEnvSource_Priority(t *testing.T) {
	src := &EnvSource{}
	assert.Equal(t, 30, src.Priority())
	assert.Equal(t, "env", src.Name())
}

func TestEnvSource_Load(t *testing.T) {
	t.Setenv("EVENTHUB_LOG_LEVEL", "debug")
	t.Setenv("EVENTHUB_HUB_REMOVAL_MODE", "scoped")
	t.Setenv("EVENTHUB_RUN_TRACE_FILE", "/tmp/trace.jsonl")

	k := koanf.New(".")
	require.NoError(t, (&EnvSource{}).Load(k))

	assert.Equal(t, "debug", k.String("log.level"))
	assert.Equal(t, "scoped", k.String("hub.removal_mode"))
	assert.Equal(t, "/tmp/trace.jsonl", k.String("run.trace_file"))
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "log.level", envKey("EVENTHUB_", "EVENTHUB_LOG_LEVEL"))
	assert.Equal(t, "hub.removal_mode", envKey("EVENTHUB_", "EVENTHUB_HUB_REMOVAL_MODE"))
	assert.Equal(t, "metrics.enabled", envKey("X_", "X_METRICS_ENABLED"))
}

func TestFlagSource_Priority(t *testing.T) {
	src := &FlagSource{}
	assert.Equal(t, 40, src.Priority())
	assert.Equal(t, "flags", src.Name())
}

func TestFlagSource_Load_MapsFlagNames(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(flags)
	flags.Bool("unrelated", false, "")
	require.NoError(t, flags.Parse([]string{"--removal-mode=scoped", "--no-color", "--unrelated"}))

	k := koanf.New(".")
	require.NoError(t, (&DefaultSource{}).Load(k))
	require.NoError(t, (&FlagSource{Flags: flags}).Load(k))

	assert.Equal(t, "scoped", k.String("hub.removal_mode"))
	assert.True(t, k.Bool("output.no_color"))
	assert.False(t, k.Exists("unrelated"))
}

func TestFlagSource_Load_Debug(t *testing.T) {
	k := koanf.New(".")
	require.NoError(t, (&FlagSource{Debug: true}).Load(k))
	assert.Equal(t, "debug", k.String("log.level"))
}

func TestDefaultSources(t *testing.T) {
	sources := DefaultSources("/etc/eventhub.yaml", nil, false)
	require.Len(t, sources, 4)
	assert.Equal(t, "defaults", sources[0].Name())
	assert.Equal(t, "file:/etc/eventhub.yaml", sources[1].Name())
	assert.Equal(t, "env", sources[2].Name())
	assert.Equal(t, "flags", sources[3].Name())
}

func TestFlagSource_Load_RunFlags(t *testing.T) {
	flags := pflag.NewFlagSet("run", pflag.ContinueOnError)
	BindFlags(flags)
	BindRunFlags(flags)
	require.NoError(t, flags.Parse([]string{
		"-w", "--debounce=2s", "--trace-file", "out/trace.jsonl",
		"--metrics", "--metrics-file", "out/metrics.prom",
	}))

	manager := NewManager()
	require.NoError(t, manager.Load(DefaultSources("", flags, false)...))

	cfg := manager.Get()
	assert.True(t, cfg.Run.Watch)
	assert.Equal(t, 2*time.Second, cfg.Run.Debounce)
	assert.Equal(t, "out/trace.jsonl", cfg.Run.TraceFile)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "out/metrics.prom", cfg.Metrics.File)
}
