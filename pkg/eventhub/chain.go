// Copyright 2025 Vulntor Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package eventhub

// Chain is a fluent view of a Hub. The first error is kept and every later
// call becomes a no-op; read it with Err.
//
//	err := hub.Chain().
//		On("save", onSave).
//		OnAll(audit).
//		Emit("save", doc).
//		Err()
type Chain[K comparable] struct {
	hub *Hub[K]
	err error
}

// Chain returns a fluent view of h.
func (h *Hub[K]) Chain() *Chain[K] {
	return &Chain[K]{hub: h}
}

// On calls Hub.On unless an earlier call failed.
func (c *Chain[K]) On(key K, handler *Handler) *Chain[K] {
	if c.err == nil {
		c.err = c.hub.On(key, handler)
	}
	return c
}

// OnAll calls Hub.OnAll unless an earlier call failed.
func (c *Chain[K]) OnAll(handler *Handler) *Chain[K] {
	if c.err == nil {
		c.err = c.hub.OnAll(handler)
	}
	return c
}

// Once calls Hub.Once unless an earlier call failed.
func (c *Chain[K]) Once(key K, handler *Handler) *Chain[K] {
	if c.err == nil {
		c.err = c.hub.Once(key, handler)
	}
	return c
}

// Remove calls Hub.Remove unless an earlier call failed.
func (c *Chain[K]) Remove(key K, handler *Handler) *Chain[K] {
	if c.err == nil {
		c.hub.Remove(key, handler)
	}
	return c
}

// RemoveAll calls Hub.RemoveAll unless an earlier call failed.
func (c *Chain[K]) RemoveAll(handler *Handler) *Chain[K] {
	if c.err == nil {
		c.hub.RemoveAll(handler)
	}
	return c
}

// Emit calls Hub.Emit unless an earlier call failed.
func (c *Chain[K]) Emit(key K, args ...any) *Chain[K] {
	if c.err == nil {
		c.err = c.hub.Emit(key, args...)
	}
	return c
}

// Err returns the first error encountered.
func (c *Chain[K]) Err() error {
	return c.err
}

// Hub returns the underlying hub.
func (c *Chain[K]) Hub() *Hub[K] {
	return c.hub
}
