// Copyright 2025 Vulntor Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package eventhub

import (
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Listener is a read-only view of a registered listener.
type Listener[K comparable] struct {
	// Key is the key the listener was registered under.
	Key Key[K]

	// Handler is the handler passed at registration.
	Handler *Handler

	// Once is true for listeners registered with Once.
	Once bool
}

// record is one registry entry. handler is the identity matched by removal
// and owner is the handler passed by the caller. They differ only for
// legacy Once listeners.
type record[K comparable] struct {
	id      uint64
	key     Key[K]
	handler *Handler
	owner   *Handler
	invoke  Func
	once    bool
}

// Hub is an ordered registry of listeners with synchronous dispatch.
// It is safe for concurrent use. Handlers are called without any lock held
// and may register, remove or emit re-entrantly.
type Hub[K comparable] struct {
	mu      sync.RWMutex
	records []record[K]
	nextID  uint64

	logger   zerolog.Logger
	mode     RemovalMode
	observer Observer
}

// New creates an empty hub.
func New[K comparable](opts ...Option) *Hub[K] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Hub[K]{
		logger:   o.logger.With().Str("component", "eventhub").Logger(),
		mode:     o.mode,
		observer: o.observer,
	}
}

// Mode returns the removal mode the hub was created with.
func (h *Hub[K]) Mode() RemovalMode {
	return h.mode
}

// On registers handler for key.
func (h *Hub[K]) On(key K, handler *Handler) error {
	if err := validateHandler(handler); err != nil {
		return err
	}
	h.add(Specific(key), handler, handler.fn, false)
	return nil
}

// OnAll registers handler for every key.
func (h *Hub[K]) OnAll(handler *Handler) error {
	if err := validateHandler(handler); err != nil {
		return err
	}
	h.add(Wildcard[K](), handler, handler.fn, false)
	return nil
}

// Once registers handler for key so that it runs for at most one emission.
//
// In RemovalLegacy mode the listener is an internal wrapper with its own
// identity, so Remove and RemoveAll with handler do not match it. The
// wrapper calls handler without arguments and, if it returns nil, removes
// every listener under key and every wildcard listener. When handler returns
// an error or panics nothing is removed and the listener fires again on the
// next emission.
//
// In RemovalScoped mode the emitted arguments are forwarded, the listener is
// matched by handler, and only this listener is removed, whatever the outcome.
func (h *Hub[K]) Once(key K, handler *Handler) error {
	if err := validateHandler(handler); err != nil {
		return err
	}

	var fired atomic.Bool
	h.mu.Lock()
	id := h.nextID
	if h.mode == RemovalScoped {
		invoke := func(args ...any) error {
			if !fired.CompareAndSwap(false, true) {
				return nil
			}
			defer h.removeID(id)
			return handler.Call(args...)
		}
		h.appendLocked(Specific(key), handler, handler, invoke, true)
		h.mu.Unlock()
		h.registered(Specific(key), handler, true)
		return nil
	}

	invoke := func(...any) error {
		if !fired.CompareAndSwap(false, true) {
			return nil
		}
		done := false
		defer func() {
			if !done {
				fired.Store(false)
			}
		}()
		if err := handler.Call(); err != nil {
			return err
		}
		done = true
		h.Remove(key, nil)
		return nil
	}
	wrapper := NewHandler(invoke).Named(handler.Name())
	h.appendLocked(Specific(key), wrapper, handler, invoke, true)
	h.mu.Unlock()

	h.registered(Specific(key), handler, true)
	return nil
}

// Remove removes listeners and returns h.
//
// RemovalLegacy: with a nil handler, listeners under key and all wildcard
// listeners are removed; with a non-nil handler, every listener using that
// handler is removed and key is ignored.
//
// RemovalScoped: listeners under key are removed, restricted to handler when
// it is non-nil.
func (h *Hub[K]) Remove(key K, handler *Handler) *Hub[K] {
	if h.mode == RemovalScoped {
		h.removeWhere(func(r record[K]) bool {
			return r.key.Is(key) && (handler == nil || r.handler == handler)
		})
		return h
	}

	h.removeWhere(func(r record[K]) bool {
		return (handler == nil && r.key.Matches(key)) || (handler != nil && r.handler == handler)
	})
	return h
}

// RemoveAll removes every listener using handler, whatever its key.
func (h *Hub[K]) RemoveAll(handler *Handler) *Hub[K] {
	if handler == nil {
		return h
	}
	h.removeWhere(func(r record[K]) bool {
		return r.handler == handler
	})
	return h
}

// Emit invokes, in registration order, every listener registered for key
// and every wildcard listener, passing args. The set of listeners is fixed
// when Emit is called: listeners removed during dispatch still run in this
// call and listeners added during dispatch do not.
//
// The first handler error stops dispatch and is returned unmodified.
func (h *Hub[K]) Emit(key K, args ...any) error {
	h.mu.RLock()
	matched := make([]record[K], 0, len(h.records))
	for _, r := range h.records {
		if r.key.Matches(key) {
			matched = append(matched, r)
		}
	}
	h.mu.RUnlock()

	for i, r := range matched {
		if err := r.invoke(args...); err != nil {
			h.logger.Debug().
				Err(err).
				Interface("key", key).
				Str("handler", r.owner.Name()).
				Int("invoked", i+1).
				Int("matched", len(matched)).
				Msg("handler failed, dispatch stopped")
			h.emitted(key, len(matched), i+1, err)
			return err
		}
	}

	h.emitted(key, len(matched), len(matched), nil)
	return nil
}

// IsListening reports whether any listener is registered.
func (h *Hub[K]) IsListening() bool {
	return h.Len() > 0
}

// Len returns the number of registered listeners.
func (h *Hub[K]) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.records)
}

// Listeners returns a snapshot of the registry in registration order.
func (h *Hub[K]) Listeners() []Listener[K] {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]Listener[K], len(h.records))
	for i, r := range h.records {
		out[i] = Listener[K]{Key: r.key, Handler: r.owner, Once: r.once}
	}
	return out
}

func (h *Hub[K]) add(key Key[K], handler *Handler, invoke Func, once bool) {
	h.mu.Lock()
	h.appendLocked(key, handler, handler, invoke, once)
	h.mu.Unlock()

	h.registered(key, handler, once)
}

// appendLocked must be called with h.mu held for writing.
func (h *Hub[K]) appendLocked(key Key[K], handler, owner *Handler, invoke Func, once bool) {
	h.records = append(h.records, record[K]{
		id:      h.nextID,
		key:     key,
		handler: handler,
		owner:   owner,
		invoke:  invoke,
		once:    once,
	})
	h.nextID++
}

func (h *Hub[K]) removeID(id uint64) {
	h.removeWhere(func(r record[K]) bool {
		return r.id == id
	})
}

// removeWhere filters the registry in place. Emit works on its own copy, so
// reusing the backing array does not disturb a dispatch in progress.
func (h *Hub[K]) removeWhere(drop func(record[K]) bool) {
	h.mu.Lock()
	kept := h.records[:0]
	for _, r := range h.records {
		if !drop(r) {
			kept = append(kept, r)
		}
	}
	removed := len(h.records) - len(kept)
	clear(h.records[len(kept):])
	h.records = kept
	size := len(kept)
	h.mu.Unlock()

	if removed == 0 {
		return
	}
	h.logger.Debug().Int("removed", removed).Int("listeners", size).Msg("listeners removed")
	if h.observer != nil {
		h.observer.Removed(removed, size)
	}
}

func (h *Hub[K]) registered(key Key[K], handler *Handler, once bool) {
	size := h.Len()
	h.logger.Debug().
		Str("key", key.String()).
		Str("handler", handler.Name()).
		Bool("once", once).
		Int("listeners", size).
		Msg("listener registered")
	if h.observer != nil {
		h.observer.Registered(key.String(), size)
	}
}

func (h *Hub[K]) emitted(key K, matched, invoked int, err error) {
	if h.observer != nil {
		h.observer.Emitted(Specific(key).String(), matched, invoked, err)
	}
}
