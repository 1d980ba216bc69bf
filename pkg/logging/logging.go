// Copyright 2025 Vulntor Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package logging configures zerolog for the eventhub CLI and builds
// component loggers for library consumers.
package logging

import (
	"io"
	stdLog "log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	writerMu  sync.RWMutex
	logWriter io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
)

func init() {
	zerolog.SetGlobalLevel(zerolog.ErrorLevel)
}

// ConfigureGlobalLogging sets the global zerolog level and writer from
// configuration values. format "json" writes raw JSON to stderr; anything
// else uses the console writer set with SetLogWriter.
func ConfigureGlobalLogging(levelStr, format string) zerolog.Level {
	level := ParseLevel(levelStr)

	w := getLogWriter()
	if strings.EqualFold(format, "json") {
		w = os.Stderr
	}
	configure(level, w)
	return level
}

// ConfigureGlobal sets the global level and logger using the current writer.
func ConfigureGlobal(level zerolog.Level) {
	configure(level, getLogWriter())
}

func configure(level zerolog.Level, w io.Writer) {
	zerolog.SetGlobalLevel(level)

	logContext := zerolog.New(w).With().Timestamp()
	if level <= zerolog.DebugLevel {
		logContext = logContext.Caller()
	}

	log.Logger = logContext.Logger().Level(level)
	zerolog.DefaultContextLogger = &log.Logger

	// Route the standard library logger through zerolog at debug level.
	stdLog.SetFlags(0)
	stdLog.SetOutput(stdLogWriter{logger: log.Logger})
}

// ParseLevel converts a level name to zerolog.Level. Empty or unknown names
// fall back to ErrorLevel.
func ParseLevel(levelString string) zerolog.Level {
	if levelString == "" {
		return zerolog.ErrorLevel
	}

	level, err := zerolog.ParseLevel(strings.ToLower(levelString))
	if err != nil || level == zerolog.NoLevel {
		log.Error().Err(err).
			Str("logLevel", levelString).
			Msg("Invalid log level provided. Defaulting to error level.")
		return zerolog.ErrorLevel
	}
	return level
}

// VerbosityLevel maps a repeated -v count onto a level no quieter than base:
// -v info, -vv debug, -vvv trace.
func VerbosityLevel(base zerolog.Level, count int) zerolog.Level {
	var level zerolog.Level
	switch {
	case count <= 0:
		return base
	case count == 1:
		level = zerolog.InfoLevel
	case count == 2:
		level = zerolog.DebugLevel
	default:
		level = zerolog.TraceLevel
	}
	if level < base {
		return level
	}
	return base
}

// NewLogger returns a logger tagged with component, writing to the
// configured writer.
func NewLogger(component string, level zerolog.Level) zerolog.Logger {
	return NewLoggerWithWriter(component, level, getLogWriter())
}

// NewLoggerWithWriter returns a JSON logger tagged with component.
func NewLoggerWithWriter(component string, level zerolog.Level, w io.Writer) zerolog.Logger {
	return zerolog.New(w).Level(level).With().
		Timestamp().
		Str("component", component).
		Logger()
}

// Component derives a logger tagged with component from the global logger.
func Component(component string) zerolog.Logger {
	return log.Logger.With().Str("component", component).Logger()
}

func getLogWriter() io.Writer {
	writerMu.RLock()
	defer writerMu.RUnlock()
	return logWriter
}

// SetLogWriter sets the writer used by ConfigureGlobal and NewLogger.
func SetLogWriter(w io.Writer) {
	writerMu.Lock()
	defer writerMu.Unlock()
	logWriter = w
}

// stdLogWriter forwards standard library log output to zerolog.
type stdLogWriter struct {
	logger zerolog.Logger
}

func (w stdLogWriter) Write(p []byte) (int, error) {
	w.logger.Debug().Str("source", "stdlog").Msg(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}
