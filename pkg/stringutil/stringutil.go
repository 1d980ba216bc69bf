// Copyright 2025 Vulntor Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package stringutil shortens values for single-line display.
package stringutil

import "strings"

const ellipsis = "..."

// SingleLine trims s and folds line breaks into spaces.
func SingleLine(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", "")
}

// Ellipsis returns SingleLine(s) cut to at most maxRunes runes, ending in
// "..." when cut. Limits of 3 or less truncate without the marker.
func Ellipsis(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}

	runes := []rune(SingleLine(s))
	if len(runes) <= maxRunes {
		return string(runes)
	}
	if maxRunes <= len(ellipsis) {
		return string(runes[:maxRunes])
	}
	return string(runes[:maxRunes-len(ellipsis)]) + ellipsis
}
