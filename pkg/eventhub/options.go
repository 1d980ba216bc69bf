// Copyright 2025 Vulntor Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package eventhub

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// RemovalMode selects how Remove and Once match listeners.
type RemovalMode int

const (
	// RemovalLegacy: Remove(key, nil) drops listeners under key and all
	// wildcard listeners; Remove(key, h) drops every listener using h
	// regardless of key. Once invokes its handler without arguments and then
	// behaves like Remove(key, nil).
	RemovalLegacy RemovalMode = iota

	// RemovalScoped: Remove(key, nil) drops only listeners under key;
	// Remove(key, h) drops listeners under key that use h. Once forwards the
	// emitted arguments and removes only its own listener.
	RemovalScoped
)

// String returns the configuration name of m.
func (m RemovalMode) String() string {
	switch m {
	case RemovalLegacy:
		return "legacy"
	case RemovalScoped:
		return "scoped"
	default:
		return fmt.Sprintf("RemovalMode(%d)", int(m))
	}
}

// ParseRemovalMode converts "legacy" or "scoped" (case-insensitive) to a
// RemovalMode. An empty string selects RemovalLegacy.
func ParseRemovalMode(s string) (RemovalMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "legacy":
		return RemovalLegacy, nil
	case "scoped":
		return RemovalScoped, nil
	default:
		return RemovalLegacy, fmt.Errorf("invalid removal mode %q (must be 'legacy' or 'scoped')", s)
	}
}

// Observer receives notifications about registry changes and emissions.
// Callbacks run synchronously on the goroutine performing the operation and
// must not call back into the hub.
type Observer interface {
	// Registered is called after a listener is added. size is the
	// registry length afterwards.
	Registered(key string, size int)

	// Removed is called after a removal that dropped at least one listener.
	Removed(removed, size int)

	// Emitted is called when an emission completes or stops on a handler
	// error. It is not called when a handler panics.
	Emitted(key string, matched, invoked int, err error)
}

// Option configures a Hub.
type Option func(*options)

type options struct {
	logger   zerolog.Logger
	mode     RemovalMode
	observer Observer
}

func defaultOptions() options {
	return options{
		logger: zerolog.Nop(),
		mode:   RemovalLegacy,
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRemovalMode selects the removal semantics. Defaults to RemovalLegacy.
func WithRemovalMode(mode RemovalMode) Option {
	return func(o *options) {
		o.mode = mode
	}
}

// WithObserver attaches an Observer.
func WithObserver(observer Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}
