// LlaqtaShield - Community Incident Reporting and Alert Mapping
// Copyright 2026 LlaqtaShield Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/llaqtashield/llaqtashield

// Package upload validates and stores evidence images attached to incident
// reports.
//
// Validation is extension-based against a fixed allowlist; the request body
// size is capped independently at the transport layer before a file ever
// reaches this package. Stored names combine a millisecond timestamp, a short
// random fragment, and a secured version of the declared name, so concurrent
// submissions in the same millisecond cannot collide.
package upload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Validation errors. Both map to a client-side rejection (HTTP 400); any
// other error from Accept is a storage failure (HTTP 500).
var (
	ErrNoExtension    = errors.New("filename has no extension")
	ErrDisallowedType = errors.New("file type not allowed")
)

// DefaultAllowedExtensions is the evidence-image allowlist.
var DefaultAllowedExtensions = []string{"png", "jpg", "jpeg", "gif"}

// Store writes validated evidence images into a managed directory.
type Store struct {
	dir     string
	allowed map[string]struct{}

	// nowMillis is the timestamp source for generated names; overridable
	// in tests.
	nowMillis func() int64
}

// NewStore creates the upload directory if needed and returns a Store
// accepting the given extensions (DefaultAllowedExtensions when nil).
func NewStore(dir string, extensions []string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("upload directory is required")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}

	if extensions == nil {
		extensions = DefaultAllowedExtensions
	}
	allowed := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(ext)] = struct{}{}
	}

	return &Store{
		dir:       dir,
		allowed:   allowed,
		nowMillis: func() int64 { return time.Now().UnixMilli() },
	}, nil
}

// Dir returns the managed directory.
func (s *Store) Dir() string {
	return s.dir
}

// Allowed reports whether declaredName carries an allowed image extension.
// The comparison is case-insensitive; a name without any extension fails.
func (s *Store) Allowed(declaredName string) bool {
	return s.checkExtension(declaredName) == nil
}

func (s *Store) checkExtension(declaredName string) error {
	idx := strings.LastIndexByte(declaredName, '.')
	if idx < 0 || idx == len(declaredName)-1 {
		return ErrNoExtension
	}
	ext := strings.ToLower(declaredName[idx+1:])
	if _, ok := s.allowed[ext]; !ok {
		return ErrDisallowedType
	}
	return nil
}

// Accept validates declaredName, streams the content to disk under a
// generated collision-free filename, and returns the stored basename.
// On a write failure the partial file is removed and the error returned,
// so the caller can abort the submission before any database write.
func (s *Store) Accept(r io.Reader, declaredName string) (string, error) {
	if err := s.checkExtension(declaredName); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%d_%s_%s", s.nowMillis(), uuid.NewString()[:8], SecureName(declaredName))
	full := filepath.Join(s.dir, name)

	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create evidence file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(full)
		return "", fmt.Errorf("failed to write evidence file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(full)
		return "", fmt.Errorf("failed to flush evidence file: %w", err)
	}

	return name, nil
}

// SecureName reduces an untrusted filename to a safe basename: path
// separators are stripped, anything outside [A-Za-z0-9_.-] becomes an
// underscore, and leading dots/dashes/underscores are trimmed so the result
// can never traverse or hide. An empty result falls back to "file".
func SecureName(name string) string {
	// Drop any directory component, for both separator conventions.
	if idx := strings.LastIndexAny(name, `/\`); idx >= 0 {
		name = name[idx+1:]
	}

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	out := strings.TrimLeft(b.String(), "._-")
	if out == "" {
		return "file"
	}
	return out
}
