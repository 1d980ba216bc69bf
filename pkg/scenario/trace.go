// Copyright 2025 Vulntor Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package scenario

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// ErrTraceLocked is returned when the trace file lock cannot be acquired
// before the context is done.
var ErrTraceLocked = errors.New("trace file is locked")

// traceLine is the JSON-lines record written by AppendTrace.
type traceLine struct {
	RunID    string `json:"run_id"`
	Scenario string `json:"scenario"`
	TraceEntry
}

// AppendTrace appends every entry of res to path as JSON lines. Concurrent
// writers (other runs, other processes) are serialized with an advisory
// lock on path + ".lock".
func AppendTrace(ctx context.Context, path string, res *Result) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create trace directory: %w", err)
		}
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLockContext(ctx, 25*time.Millisecond)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %v", ErrTraceLocked, err)
		}
		return fmt.Errorf("lock trace file: %w", err)
	}
	if !locked {
		return ErrTraceLocked
	}
	defer func() { _ = lock.Unlock() }()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open trace file: %w", err)
	}

	enc := json.NewEncoder(f)
	for _, e := range res.Entries {
		if err := enc.Encode(traceLine{RunID: res.RunID, Scenario: res.Scenario, TraceEntry: e}); err != nil {
			_ = f.Close()
			return fmt.Errorf("write trace: %w", err)
		}
	}
	return f.Close()
}

// ReadTrace reads JSON-lines entries written by AppendTrace, grouped by run ID
// in file order.
func ReadTrace(path string) (map[string][]TraceEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	runs := make(map[string][]TraceEntry)
	dec := json.NewDecoder(f)
	for dec.More() {
		var line traceLine
		if err := dec.Decode(&line); err != nil {
			return nil, fmt.Errorf("decode trace: %w", err)
		}
		runs[line.RunID] = append(runs[line.RunID], line.TraceEntry)
	}
	return runs, nil
}
