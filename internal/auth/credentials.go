// LlaqtaShield - Community Incident Reporting and Alert Mapping
// Copyright 2026 LlaqtaShield Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/llaqtashield/llaqtashield

// Package auth gates the administrative endpoints behind HTTP Basic Auth
// against an injected credential store.
//
// The default StaticStore is a fixed, small, exact-match credential set with
// no hashing and no expiry. That is a deliberately weak scheme suited only to
// low-stakes deployments; it is preserved as-is rather than silently
// strengthened. The CredentialStore interface exists precisely so a hardened
// implementation (HashedStore) can be swapped in without touching call
// sites. Authentication attempts are not rate limited; known gap.
package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// CredentialStore validates a username/password pair.
type CredentialStore interface {
	// Verify reports whether the pair matches a known credential.
	// A failed verification is a normal branch, not an error.
	Verify(username, password string) bool
}

// StaticStore is the exact-match credential set. Comparisons are
// constant-time per field so a probe cannot learn prefix lengths, but the
// passwords themselves are held in plain text.
type StaticStore struct {
	users map[string]string
}

// NewStaticStore builds a StaticStore from a username→password map.
// An empty map yields a store that rejects everything.
func NewStaticStore(users map[string]string) *StaticStore {
	copied := make(map[string]string, len(users))
	for u, p := range users {
		copied[u] = p
	}
	return &StaticStore{users: copied}
}

// Verify implements CredentialStore.
func (s *StaticStore) Verify(username, password string) bool {
	expected, ok := s.users[username]
	if !ok {
		// Burn a comparison anyway so unknown users cost the same.
		subtle.ConstantTimeCompare([]byte(password), []byte(password))
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(expected)) == 1
}

// HashedStore verifies against bcrypt password hashes. It is the hardened
// CredentialStore alternative; selecting it over StaticStore is a deployment
// decision, never automatic.
type HashedStore struct {
	hashes map[string][]byte
}

// NewHashedStore hashes every provided password at construction so requests
// never pay the hashing cost twice.
func NewHashedStore(users map[string]string) (*HashedStore, error) {
	hashes := make(map[string][]byte, len(users))
	for user, pass := range users {
		if pass == "" {
			return nil, fmt.Errorf("empty password for user %q", user)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(pass), 12)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password for %q: %w", user, err)
		}
		hashes[user] = hash
	}
	return &HashedStore{hashes: hashes}, nil
}

// Verify implements CredentialStore. bcrypt comparison is timing-safe by
// design.
func (s *HashedStore) Verify(username, password string) bool {
	hash, ok := s.hashes[username]
	if !ok {
		return false
	}
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}
