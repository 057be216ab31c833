// LlaqtaShield - Community Incident Reporting and Alert Mapping
// Copyright 2026 LlaqtaShield Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/llaqtashield/llaqtashield

// Package sanitize normalizes untrusted free-text input before it reaches
// validation and storage. It performs no HTML escaping; escaping is the
// document generator's job at render time.
package sanitize

import (
	"strings"
	"unicode"
)

// DefaultMaxLen is the bound applied by Default.
const DefaultMaxLen = 2048

// Clean collapses every run of whitespace to a single space, trims leading
// and trailing whitespace, and truncates the result to maxLen runes.
// Empty input yields the empty string. Pure function, never fails.
func Clean(s string, maxLen int) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inSpace = true
			continue
		}
		if inSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inSpace = false
		b.WriteRune(r)
	}

	out := b.String()
	if maxLen > 0 {
		runes := []rune(out)
		if len(runes) > maxLen {
			out = string(runes[:maxLen])
		}
	}
	return out
}

// Default applies Clean with DefaultMaxLen.
func Default(s string) string {
	return Clean(s, DefaultMaxLen)
}
