// Copyright 2025 Vulntor Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package scenario describes, validates and replays scripted sequences of
// hub operations. A scenario names a set of handlers with canned behaviour
// and a list of steps (registrations, removals, emissions); replaying it
// produces an ordered trace of every step and handler call.
package scenario

import "errors"

var (
	// ErrInvalidScenario is returned when a document fails validation.
	ErrInvalidScenario = errors.New("invalid scenario")

	// ErrUnsupportedFormat is returned for unknown file extensions.
	ErrUnsupportedFormat = errors.New("unsupported scenario format")

	// ErrIncompatibleVersion is returned when the document version does not
	// satisfy SupportedVersions.
	ErrIncompatibleVersion = errors.New("incompatible scenario version")

	// ErrUnknownHandler is returned when a step references an undeclared handler.
	ErrUnknownHandler = errors.New("unknown handler")

	// ErrHandlerFailed is returned by handlers with the "fail" action.
	ErrHandlerFailed = errors.New("handler failed")

	// ErrHandlerPanic wraps a panic raised by a handler with the "panic" action.
	ErrHandlerPanic = errors.New("handler panicked")

	// ErrExpectationFailed is returned when a run does not meet its expectations.
	ErrExpectationFailed = errors.New("expectation failed")
)

// SupportedVersions is the semver constraint scenario documents must satisfy.
const SupportedVersions = "^1.0.0"

// Handler actions.
const (
	ActionCount  = "count"
	ActionRecord = "record"
	ActionFail   = "fail"
	ActionPanic  = "panic"
)

// Step operations.
const (
	OpOn        = "on"
	OpOnAll     = "onAll"
	OpOnce      = "once"
	OpRemove    = "remove"
	OpRemoveAll = "removeAll"
	OpEmit      = "emit"
)

// Document is a parsed scenario file.
type Document struct {
	Version     string        `yaml:"version" toml:"version" json:"version" validate:"required"`
	Name        string        `yaml:"name" toml:"name" json:"name" validate:"required"`
	Description string        `yaml:"description,omitempty" toml:"description,omitempty" json:"description,omitempty"`
	Mode        string        `yaml:"mode,omitempty" toml:"mode,omitempty" json:"mode,omitempty" validate:"omitempty,oneof=legacy scoped"`
	StopOnError bool          `yaml:"stop_on_error,omitempty" toml:"stop_on_error,omitempty" json:"stop_on_error,omitempty"`
	Handlers    []HandlerSpec `yaml:"handlers" toml:"handlers" json:"handlers" validate:"required,min=1,unique=Name,dive"`
	Steps       []Step        `yaml:"steps" toml:"steps" json:"steps" validate:"required,min=1,dive"`
	Expect      *Expectation  `yaml:"expect,omitempty" toml:"expect,omitempty" json:"expect,omitempty"`
}

// HandlerSpec declares a named handler and what it does when called.
type HandlerSpec struct {
	Name    string `yaml:"name" toml:"name" json:"name" validate:"required,max=64"`
	Action  string `yaml:"action" toml:"action" json:"action" validate:"required,oneof=count record fail panic"`
	Message string `yaml:"message,omitempty" toml:"message,omitempty" json:"message,omitempty"`
}

// Step is a single hub operation.
type Step struct {
	Op      string `yaml:"op" toml:"op" json:"op" validate:"required,oneof=on onAll once remove removeAll emit"`
	Key     string `yaml:"key,omitempty" toml:"key,omitempty" json:"key,omitempty"`
	Handler string `yaml:"handler,omitempty" toml:"handler,omitempty" json:"handler,omitempty"`
	Args    []any  `yaml:"args,omitempty" toml:"args,omitempty" json:"args,omitempty"`
}

// Expectation is checked after all steps ran.
type Expectation struct {
	// Calls maps handler names to the exact number of invocations.
	Calls map[string]int `yaml:"calls,omitempty" toml:"calls,omitempty" json:"calls,omitempty" validate:"omitempty,dive,gte=0"`

	// Listening, when set, must equal the hub's IsListening after the run.
	Listening *bool `yaml:"listening,omitempty" toml:"listening,omitempty" json:"listening,omitempty"`

	// Errors, when set, is the exact number of failed emit steps.
	Errors *int `yaml:"errors,omitempty" toml:"errors,omitempty" json:"errors,omitempty" validate:"omitempty,gte=0"`
}
