// Copyright 2025 Vulntor Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package metrics

import (
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vulntor/eventhub/pkg/eventhub"
)

func TestCollector_TracksHubActivity(t *testing.T) {
	c := NewCollector("test")
	hub := eventhub.New[string](eventhub.WithObserver(c))

	ok := eventhub.NewHandler(func(...any) error { return nil })
	fail := eventhub.NewHandler(func(...any) error { return errors.New("boom") })

	require.NoError(t, hub.On("a", ok))
	require.NoError(t, hub.OnAll(ok))
	require.NoError(t, hub.On("b", fail))

	require.NoError(t, hub.Emit("a"))
	require.Error(t, hub.Emit("b"))
	hub.RemoveAll(ok)

	assert.Equal(t, 3.0, testutil.ToFloat64(c.registrations))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.removals))
	assert.Equal(t, 4.0, testutil.ToFloat64(c.invocations))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.listeners))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.emits.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.emits.WithLabelValues("error")))
}

func TestCollector_UnmatchedEmit(t *testing.T) {
	c := NewCollector("test")
	hub := eventhub.New[string](eventhub.WithObserver(c))

	require.NoError(t, hub.Emit("nobody"))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.emits.WithLabelValues("unmatched")))
	assert.Zero(t, testutil.ToFloat64(c.invocations))
}

func TestCollector_Register(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector("eventhub")

	require.NoError(t, c.Register(reg))
	require.NoError(t, c.Register(reg), "registering twice is tolerated")

	c.Registered("e", 1)
	expected := `
# HELP eventhub_hub_listeners Number of registered listeners
# TYPE eventhub_hub_listeners gauge
eventhub_hub_listeners 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "eventhub_hub_listeners"))
}
