// Copyright 2025 Vulntor Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package scenario

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWatcher_DefaultDebounce(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "s.yaml"), 0, func() {}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, DefaultDebounce, w.debounceDelay)
	require.NoError(t, w.Close())
}

func TestWatcher_DebouncesChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: a\n"), 0o644))

	var calls atomic.Int32
	changed := make(chan struct{}, 8)
	w, err := NewWatcher(path, 50*time.Millisecond, func() {
		calls.Add(1)
		changed <- struct{}{}
	}, zerolog.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o644))
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("name: b\n"), 0o644))
	}

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("change callback not called")
	}
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load(), "rapid writes coalesce into one callback")

	cancel()
	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "missing", "s.yaml"), 0, func() {}, zerolog.Nop())
	require.NoError(t, err)
	defer w.Close()

	assert.Error(t, w.Start(context.Background()))
}
