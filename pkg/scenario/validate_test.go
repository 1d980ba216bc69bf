// Copyright 2025 Vulntor Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDoc() *Document {
	return &Document{
		Version:  "1.0.0",
		Name:     "valid",
		Handlers: []HandlerSpec{{Name: "h", Action: ActionCount}},
		Steps: []Step{
			{Op: OpOn, Key: "e", Handler: "h"},
			{Op: OpEmit, Key: "e", Args: []any{1}},
		},
	}
}

func TestValidate_Valid(t *testing.T) {
	assert.NoError(t, Validate(validDoc()))
}

func TestValidate_Nil(t *testing.T) {
	assert.ErrorIs(t, Validate(nil), ErrInvalidScenario)
}

func TestValidate_Problems(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Document)
		want   string
	}{
		{"missing name", func(d *Document) { d.Name = "" }, "name is required"},
		{"no handlers", func(d *Document) { d.Handlers = nil }, "handlers is required"},
		{"bad action", func(d *Document) { d.Handlers[0].Action = "explode" }, "handlers[0].action must be one of"},
		{"duplicate handler", func(d *Document) {
			d.Handlers = append(d.Handlers, HandlerSpec{Name: "h", Action: ActionFail})
		}, "handlers must have unique name values"},
		{"bad op", func(d *Document) { d.Steps[0].Op = "subscribe" }, "steps[0].op must be one of"},
		{"bad mode", func(d *Document) { d.Mode = "strict" }, "mode must be one of"},
		{"on without handler", func(d *Document) { d.Steps[0].Handler = "" }, "steps[0] (on): handler is required"},
		{"emit with handler", func(d *Document) { d.Steps[1].Handler = "h" }, "steps[1] (emit): handler is not allowed"},
		{"onAll with key", func(d *Document) {
			d.Steps[0] = Step{Op: OpOnAll, Key: "e", Handler: "h"}
		}, "steps[0] (onAll): key is not allowed"},
		{"args on registration", func(d *Document) { d.Steps[0].Args = []any{1} }, "args are only allowed on emit"},
		{"unknown handler", func(d *Document) { d.Steps[0].Handler = "ghost" }, `unknown handler "ghost"`},
		{"unknown expectation", func(d *Document) {
			d.Expect = &Expectation{Calls: map[string]int{"ghost": 1}}
		}, `expect.calls: unknown handler "ghost"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validDoc()
			tt.mutate(doc)

			err := Validate(doc)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidScenario)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	doc := validDoc()
	doc.Name = ""
	doc.Steps[0].Handler = "ghost"

	err := Validate(doc)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Problems, 2)
}

func TestValidate_Version(t *testing.T) {
	tests := []struct {
		version string
		wantErr error
	}{
		{"1.0.0", nil},
		{"1.4.2", nil},
		{"v1.1", nil},
		{"2.0.0", ErrIncompatibleVersion},
		{"0.9.0", ErrIncompatibleVersion},
		{"latest", ErrInvalidScenario},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			doc := validDoc()
			doc.Version = tt.version
			err := Validate(doc)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
