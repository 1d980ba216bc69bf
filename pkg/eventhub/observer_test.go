// Copyright 2025 Vulntor Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package eventhub_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vulntor/eventhub/pkg/eventhub"
)

type emission struct {
	key              string
	matched, invoked int
	err              error
}

type recordingObserver struct {
	registered []string
	sizes      []int
	removed    []int
	emissions  []emission
}

func (o *recordingObserver) Registered(key string, size int) {
	o.registered = append(o.registered, key)
	o.sizes = append(o.sizes, size)
}

func (o *recordingObserver) Removed(removed, size int) {
	o.removed = append(o.removed, removed)
}

func (o *recordingObserver) Emitted(key string, matched, invoked int, err error) {
	o.emissions = append(o.emissions, emission{key, matched, invoked, err})
}

func TestObserver(t *testing.T) {
	obs := &recordingObserver{}
	hub := eventhub.New[string](eventhub.WithObserver(obs))
	boom := errors.New("boom")
	ok := eventhub.NewHandler(func(...any) error { return nil })

	require.NoError(t, hub.On("a", ok))
	require.NoError(t, hub.OnAll(ok))
	require.NoError(t, hub.On("b", eventhub.NewHandler(func(...any) error { return boom })))
	require.NoError(t, hub.On("b", ok))

	require.NoError(t, hub.Emit("a"))
	require.ErrorIs(t, hub.Emit("b"), boom)
	hub.Remove("zzz", nil)
	hub.Remove("none", eventhub.NewHandler(func(...any) error { return nil }))

	assert.Equal(t, []string{"a", "*", "b", "b"}, obs.registered)
	assert.Equal(t, []int{1, 2, 3, 4}, obs.sizes)
	assert.Equal(t, []int{1}, obs.removed, "removals that drop nothing are not reported")
	require.Len(t, obs.emissions, 2)
	assert.Equal(t, emission{"a", 2, 2, nil}, obs.emissions[0])
	assert.Equal(t, emission{"b", 3, 2, boom}, obs.emissions[1])
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	hub := eventhub.New[string](eventhub.WithLogger(logger))

	h := eventhub.NewHandler(func(...any) error { return errors.New("boom") }).Named("failing")
	require.NoError(t, hub.On("e", h))
	require.Error(t, hub.Emit("e"))
	hub.Remove("e", nil)

	out := buf.String()
	assert.Contains(t, out, `"component":"eventhub"`)
	assert.Contains(t, out, "listener registered")
	assert.Contains(t, out, `"handler":"failing"`)
	assert.Contains(t, out, "handler failed, dispatch stopped")
	assert.Contains(t, out, "listeners removed")
}
