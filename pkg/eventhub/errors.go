// Copyright 2025 Vulntor Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package eventhub

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidHandler is returned by On, OnAll, Once and HandlerOf when
	// the supplied handler cannot be invoked.
	ErrInvalidHandler = errors.New("invalid event handler")

	// ErrArgumentMismatch is returned from a reflected handler when an
	// emitted argument cannot be converted to the parameter type.
	ErrArgumentMismatch = errors.New("argument mismatch")
)

// InvalidHandlerError reports the type of a value rejected as a handler.
type InvalidHandlerError struct {
	// Type is the Go type name of the rejected value.
	Type string
}

// Error implements the error interface.
func (e *InvalidHandlerError) Error() string {
	return fmt.Sprintf("event handler can't be of type '%s'", e.Type)
}

// Is allows errors.Is to match InvalidHandlerError with ErrInvalidHandler.
func (e *InvalidHandlerError) Is(target error) bool {
	return target == ErrInvalidHandler
}

// IsInvalidHandler checks if err is an invalid handler error.
func IsInvalidHandler(err error) bool {
	return errors.Is(err, ErrInvalidHandler)
}
