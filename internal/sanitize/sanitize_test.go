// LlaqtaShield - Community Incident Reporting and Alert Mapping
// Copyright 2026 LlaqtaShield Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/llaqtashield/llaqtashield

package sanitize

import (
	"strings"
	"testing"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"empty input", "", 100, ""},
		{"plain text unchanged", "robo en la esquina", 100, "robo en la esquina"},
		{"leading and trailing whitespace", "  hola  ", 100, "hola"},
		{"internal runs collapse", "a   b\t\tc\n\nd", 100, "a b c d"},
		{"whitespace only", " \t\n ", 100, ""},
		{"truncation", "abcdefghij", 4, "abcd"},
		{"truncation after collapse", "a    b    c", 3, "a b"},
		{"unicode whitespace", "a b", 100, "a b"},
		{"multibyte runes survive truncation", "ñandú corre", 5, "ñandú"},
		{"zero maxLen means unbounded", strings.Repeat("x", 3000), 0, strings.Repeat("x", 3000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("Clean(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestCleanNoInternalRuns(t *testing.T) {
	inputs := []string{
		"a  b", "a\tb", "\t\n  mixed \r\n whitespace  everywhere \t",
		"single", "", "   ",
	}
	for _, in := range inputs {
		got := Clean(in, DefaultMaxLen)
		if strings.Contains(got, "  ") {
			t.Errorf("Clean(%q) contains a run of whitespace: %q", in, got)
		}
		if got != strings.TrimSpace(got) {
			t.Errorf("Clean(%q) is not trimmed: %q", in, got)
		}
	}
}

func TestDefaultBoundsLength(t *testing.T) {
	long := strings.Repeat("a", DefaultMaxLen*2)
	got := Default(long)
	if len([]rune(got)) != DefaultMaxLen {
		t.Errorf("Default length = %d, want %d", len([]rune(got)), DefaultMaxLen)
	}
}
