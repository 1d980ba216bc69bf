// Copyright 2025 Vulntor Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package logging

import (
	"bytes"
	stdLog "log"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestNewLoggerWithWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("test", zerolog.DebugLevel, &buf)

	logger.Debug().Msg("test debug message")
	assert.Contains(t, buf.String(), "test debug message")
	assert.Contains(t, buf.String(), `"component":"test"`)
	assert.Contains(t, buf.String(), `"level":"debug"`)
}

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("test", zerolog.InfoLevel, &buf)

	logger.Debug().Msg("debug message")
	assert.NotContains(t, buf.String(), "debug message")

	logger.Info().Msg("info message")
	assert.Contains(t, buf.String(), "info message")

	logger.Warn().Msg("warn message")
	assert.Contains(t, buf.String(), "warn message")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"":         zerolog.ErrorLevel,
		"debug":    zerolog.DebugLevel,
		"INFO":     zerolog.InfoLevel,
		"trace":    zerolog.TraceLevel,
		"bogus":    zerolog.ErrorLevel,
		"warn":     zerolog.WarnLevel,
		"disabled": zerolog.Disabled,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestVerbosityLevel(t *testing.T) {
	assert.Equal(t, zerolog.ErrorLevel, VerbosityLevel(zerolog.ErrorLevel, 0))
	assert.Equal(t, zerolog.InfoLevel, VerbosityLevel(zerolog.ErrorLevel, 1))
	assert.Equal(t, zerolog.DebugLevel, VerbosityLevel(zerolog.ErrorLevel, 2))
	assert.Equal(t, zerolog.TraceLevel, VerbosityLevel(zerolog.ErrorLevel, 5))
	assert.Equal(t, zerolog.DebugLevel, VerbosityLevel(zerolog.DebugLevel, 1), "never quieter than base")
}

func TestConfigureGlobal(t *testing.T) {
	prevLevel := zerolog.GlobalLevel()
	prevLogger := log.Logger
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(prevLevel)
		log.Logger = prevLogger
		SetLogWriter(zerolog.ConsoleWriter{Out: os.Stderr})
		stdLog.SetOutput(os.Stderr)
	})

	var buf bytes.Buffer
	SetLogWriter(&buf)
	ConfigureGlobal(zerolog.DebugLevel)

	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	componentLogger := Component("runner")
	componentLogger.Debug().Msg("from component")
	assert.Contains(t, buf.String(), `"component":"runner"`)

	stdLog.Print("from stdlog")
	assert.Contains(t, buf.String(), "from stdlog")
	assert.Contains(t, buf.String(), `"source":"stdlog"`)
}

func TestConfigureGlobalLogging(t *testing.T) {
	prevLevel := zerolog.GlobalLevel()
	prevLogger := log.Logger
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(prevLevel)
		log.Logger = prevLogger
	})

	level := ConfigureGlobalLogging("warn", "text")
	assert.Equal(t, zerolog.WarnLevel, level)
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}
