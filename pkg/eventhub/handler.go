// Copyright 2025 Vulntor Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package eventhub

import "fmt"

// Func is the signature of an event handler. args are the values passed to
// Emit, in order.
type Func func(args ...any) error

// Handler is an invocable event handler with a stable identity.
// Go functions are not comparable, so removal by handler compares *Handler
// pointers: keep the pointer returned by NewHandler to remove it later.
type Handler struct {
	fn   Func
	name string
}

// NewHandler wraps fn. A nil fn yields a handler that registration rejects.
func NewHandler(fn Func) *Handler {
	return &Handler{fn: fn}
}

// Named sets a label used in logs and traces and returns h.
func (h *Handler) Named(name string) *Handler {
	h.name = name
	return h
}

// Name returns the label set with Named, or a pointer-derived label.
func (h *Handler) Name() string {
	if h == nil {
		return "<nil>"
	}
	if h.name != "" {
		return h.name
	}
	return fmt.Sprintf("handler@%p", h)
}

// Call invokes the handler with args.
func (h *Handler) Call(args ...any) error {
	return h.fn(args...)
}

func validateHandler(h *Handler) error {
	if h == nil {
		return &InvalidHandlerError{Type: "nil"}
	}
	if h.fn == nil {
		return &InvalidHandlerError{Type: fmt.Sprintf("%T", h.fn)}
	}
	return nil
}
