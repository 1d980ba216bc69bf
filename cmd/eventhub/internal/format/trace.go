// Copyright 2025 Vulntor Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package format

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vulntor/eventhub/pkg/scenario"
	"github.com/vulntor/eventhub/pkg/stringutil"
)

// maxArgWidth bounds each rendered argument in a trace line.
const maxArgWidth = 40

var (
	stepStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")) // Cyan
	callStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))            // Green
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))             // Red
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))           // Gray
)

// PrintTrace writes one line per trace entry. Handler calls are indented
// under the step that caused them.
func (f *formatter) PrintTrace(entries []scenario.TraceEntry) error {
	if f.mode == ModeJSON {
		return f.PrintJSON(entries)
	}

	for _, e := range entries {
		if _, err := fmt.Fprintln(f.stdout, f.traceLine(e)); err != nil {
			return err
		}
	}
	return nil
}

func (f *formatter) traceLine(e scenario.TraceEntry) string {
	seq := fmt.Sprintf("%3d", e.Seq)

	var line string
	var style lipgloss.Style
	switch e.Kind {
	case scenario.KindStep:
		style = stepStyle
		line = fmt.Sprintf("step %d: %s", e.Step, describeStep(e))
	case scenario.KindCall:
		style = callStyle
		line = fmt.Sprintf("  -> %s%s", e.Handler, formatArgs(e.Args))
	case scenario.KindError:
		style = errorStyle
		line = fmt.Sprintf("  !! %s", stringutil.SingleLine(e.Error))
	default:
		style = dimStyle
		line = e.Kind
	}

	if !f.color {
		return seq + " " + line
	}
	return dimStyle.Render(seq) + " " + style.Render(line)
}

func describeStep(e scenario.TraceEntry) string {
	parts := []string{e.Op}
	if e.Op != scenario.OpOnAll && e.Op != scenario.OpRemoveAll {
		parts = append(parts, fmt.Sprintf("%q", e.Key))
	}
	if e.Handler != "" {
		parts = append(parts, e.Handler)
	}
	return strings.Join(parts, " ") + formatArgs(e.Args)
}

func formatArgs(args []any) string {
	if len(args) == 0 {
		return ""
	}
	items := make([]string, len(args))
	for i, a := range args {
		items[i] = stringutil.Ellipsis(fmt.Sprintf("%#v", a), maxArgWidth)
	}
	return "(" + strings.Join(items, ", ") + ")"
}
