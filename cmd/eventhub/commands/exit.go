// Copyright 2025 Vulntor Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package commands

import (
	"errors"

	"github.com/vulntor/eventhub/pkg/config"
	"github.com/vulntor/eventhub/pkg/eventhub"
	"github.com/vulntor/eventhub/pkg/scenario"
)

// Exit codes returned by the eventhub binary.
const (
	ExitOK                = 0
	ExitError             = 1
	ExitInvalidInput      = 2
	ExitExpectationFailed = 3
)

// ExitCode maps err onto the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case scenario.IsExpectationFailure(err):
		return ExitExpectationFailed
	case isInvalidInput(err):
		return ExitInvalidInput
	default:
		return ExitError
	}
}

func isInvalidInput(err error) bool {
	return errors.Is(err, scenario.ErrInvalidScenario) ||
		errors.Is(err, scenario.ErrUnsupportedFormat) ||
		errors.Is(err, scenario.ErrIncompatibleVersion) ||
		errors.Is(err, scenario.ErrUnknownHandler) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		eventhub.IsInvalidHandler(err)
}
