// Copyright 2025 Vulntor Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"a.yaml", FormatYAML, false},
		{"a.YML", FormatYAML, false},
		{"dir/a.toml", FormatTOML, false},
		{"a.json", FormatJSON, false},
		{"a.xml", "", true},
		{"noext", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_YAML(t *testing.T) {
	doc, err := Load(filepath.Join("testdata", "basic.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "basic", doc.Name)
	require.Len(t, doc.Handlers, 3)
	require.Len(t, doc.Steps, 5)
	assert.Equal(t, OpOnAll, doc.Steps[1].Op)
	assert.Equal(t, []any{1, "two"}, doc.Steps[3].Args)
	require.NotNil(t, doc.Expect)
	require.NotNil(t, doc.Expect.Listening)
	assert.False(t, *doc.Expect.Listening)
	assert.Equal(t, 1, doc.Expect.Calls["first"])
}

func TestLoad_TOML(t *testing.T) {
	doc, err := Load(filepath.Join("testdata", "basic.toml"))
	require.NoError(t, err)

	assert.Equal(t, "basic-toml", doc.Name)
	assert.Equal(t, "scoped", doc.Mode)
	require.Len(t, doc.Steps, 4)
	assert.Equal(t, []any{"x"}, doc.Steps[3].Args)
	assert.Equal(t, 0, doc.Expect.Calls["counter"])
}

func TestLoad_JSON(t *testing.T) {
	doc, err := Load(filepath.Join("testdata", "basic.json"))
	require.NoError(t, err)

	assert.Equal(t, "basic-json", doc.Name)
	assert.Equal(t, "", doc.Steps[0].Key)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte("version: 1.0.0\nname: x\nbogus: true\n"), FormatYAML)
	assert.ErrorIs(t, err, ErrInvalidScenario)
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse(nil, FormatYAML)
	assert.ErrorIs(t, err, ErrInvalidScenario)
}

func TestParse_UnsupportedFormat(t *testing.T) {
	_, err := Parse([]byte("{}"), Format("xml"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
