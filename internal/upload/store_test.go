// LlaqtaShield - Community Incident Reporting and Alert Mapping
// Copyright 2026 LlaqtaShield Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/llaqtashield/llaqtashield

package upload

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

func TestAllowed(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		name     string
		filename string
		want     bool
	}{
		{"png", "photo.png", true},
		{"jpg", "photo.jpg", true},
		{"jpeg", "photo.jpeg", true},
		{"gif", "photo.gif", true},
		{"mixed case accepted", "evidence.PNG", true},
		{"executable rejected", "evidence.exe", false},
		{"no extension rejected", "evidence", false},
		{"trailing dot rejected", "evidence.", false},
		{"double extension uses last", "photo.png.exe", false},
		{"hidden file with allowed ext", ".hidden.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Allowed(tt.filename); got != tt.want {
				t.Errorf("Allowed(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestAcceptWritesFile(t *testing.T) {
	s := newTestStore(t)

	name, err := s.Accept(strings.NewReader("fake image bytes"), "scene.jpg")
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if strings.ContainsAny(name, `/\`) {
		t.Errorf("stored name %q contains a path separator", name)
	}
	if !strings.HasSuffix(name, "_scene.jpg") {
		t.Errorf("stored name %q should end with the secured original name", name)
	}

	data, err := os.ReadFile(filepath.Join(s.Dir(), name))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "fake image bytes" {
		t.Errorf("stored content = %q", data)
	}
}

func TestAcceptRejectsBeforeWriting(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Accept(strings.NewReader("payload"), "malware.exe")
	if !errors.Is(err, ErrDisallowedType) {
		t.Fatalf("err = %v, want ErrDisallowedType", err)
	}

	entries, err := os.ReadDir(s.Dir())
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("rejected upload left %d files behind", len(entries))
	}
}

func TestAcceptNoExtension(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Accept(strings.NewReader("x"), "noext"); !errors.Is(err, ErrNoExtension) {
		t.Fatalf("err = %v, want ErrNoExtension", err)
	}
}

func TestAcceptUniqueNamesSameInput(t *testing.T) {
	s := newTestStore(t)
	s.nowMillis = func() int64 { return 1700000000000 } // frozen clock

	a, err := s.Accept(strings.NewReader("one"), "same.png")
	if err != nil {
		t.Fatalf("first Accept: %v", err)
	}
	b, err := s.Accept(strings.NewReader("two"), "same.png")
	if err != nil {
		t.Fatalf("second Accept: %v", err)
	}
	if a == b {
		t.Errorf("same-millisecond uploads collided: %q", a)
	}
}

func TestSecureName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain name", "photo.png", "photo.png"},
		{"unix traversal", "../../etc/passwd", "passwd"},
		{"windows traversal", `..\..\boot.ini`, "boot.ini"},
		{"spaces become underscores", "my photo.png", "my_photo.png"},
		{"shell metacharacters", "a;b&c|d.png", "a_b_c_d.png"},
		{"leading dots trimmed", "...sneaky.png", "sneaky.png"},
		{"unicode flattened", "fotografía.png", "fotograf_a.png"},
		{"empty falls back", "", "file"},
		{"only separators falls back", "///", "file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SecureName(tt.input); got != tt.want {
				t.Errorf("SecureName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
