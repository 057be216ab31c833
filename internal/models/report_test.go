// LlaqtaShield - Community Incident Reporting and Alert Mapping
// Copyright 2026 LlaqtaShield Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/llaqtashield/llaqtashield

package models

import "testing"

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Category
	}{
		{"exact match", "EMERGENCIA", CategoryEmergency},
		{"lowercase", "bullying", CategoryBullying},
		{"mixed case with spaces", "  Salud  ", CategoryHealth},
		{"multi-word category", "APOYO ADULTO MAYOR", CategoryElderSupport},
		{"empty defaults to other", "", CategoryOther},
		{"unknown defaults to other", "VANDALISMO", CategoryOther},
		{"whitespace only defaults to other", "   ", CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseCategory(tt.input); got != tt.want {
				t.Errorf("ParseCategory(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCategoryIsValid(t *testing.T) {
	for _, c := range Categories {
		if !c.IsValid() {
			t.Errorf("Category %q should be valid", c)
		}
	}

	if Category("INVENTED").IsValid() {
		t.Error("unknown category should not be valid")
	}
	if Category("").IsValid() {
		t.Error("empty category should not be valid")
	}
}

func TestParseCategoryAlwaysInClosedSet(t *testing.T) {
	inputs := []string{"", "x", "emergencia", "OTRO", "???", "robo a mano armada"}
	for _, in := range inputs {
		if !ParseCategory(in).IsValid() {
			t.Errorf("ParseCategory(%q) produced a value outside the closed set", in)
		}
	}
}
