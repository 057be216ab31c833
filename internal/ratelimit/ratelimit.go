// LlaqtaShield - Community Incident Reporting and Alert Mapping
// Copyright 2026 LlaqtaShield Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/llaqtashield/llaqtashield

// Package ratelimit implements a per-client sliding-window rate limiter for
// the public submission and listing endpoints.
//
// The window is exact: every accepted request's timestamp is retained until
// it ages out, so a burst exactly at the limit boundary is permitted once the
// window has room again. Rejected requests are NOT recorded, meaning a client
// sitting at the limit does not push its own window forward by retrying; this
// is intended behavior, not an oversight.
//
// State is process-local and ephemeral. A restart forgets all windows, which
// briefly under-permits or over-permits; this is an acceptable-loss defense
// against abusive submission rates, not a security guarantee.
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Defaults matching the deployed configuration.
const (
	DefaultMaxRequests = 60
	DefaultWindow      = 60 * time.Second
)

// FallbackClientKey is used when neither a forwarded header nor a peer
// address is available.
const FallbackClientKey = "0.0.0.0"

// Limiter tracks request timestamps per client key inside a trailing window.
// The zero value is not usable; construct with New. A Limiter is owned by the
// service instance, not a package singleton, so tests get isolated state.
type Limiter struct {
	window time.Duration
	max    int

	mu      sync.Mutex
	windows map[string][]time.Time

	// now is the clock; overridable in tests.
	now func() time.Time
}

// New creates a Limiter allowing max requests per window. Non-positive
// arguments fall back to the defaults.
func New(max int, window time.Duration) *Limiter {
	if max <= 0 {
		max = DefaultMaxRequests
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Limiter{
		window:  window,
		max:     max,
		windows: make(map[string][]time.Time),
		now:     time.Now,
	}
}

// Allow reports whether a request from key may proceed. Expired timestamps
// are evicted first; if the surviving count has reached the limit the request
// is rejected and NOT recorded, otherwise the current time is appended and
// the request is accepted.
func (l *Limiter) Allow(key string) bool {
	now := l.now()
	cutoff := now.Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	window := l.windows[key]

	// Evict timestamps that fell out of the trailing window. Entries are
	// appended in order, so the survivors are a suffix.
	keep := 0
	for keep < len(window) && !window[keep].After(cutoff) {
		keep++
	}
	window = window[keep:]

	if len(window) >= l.max {
		l.windows[key] = window
		return false
	}

	l.windows[key] = append(window, now)
	return true
}

// Len returns the number of recorded timestamps currently inside the window
// for key. Intended for tests and introspection.
func (l *Limiter) Len(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows[key])
}

// Reset drops all tracked windows.
func (l *Limiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.windows = make(map[string][]time.Time)
}

// SetClock overrides the limiter's time source. Tests only.
func (l *Limiter) SetClock(now func() time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
}

// ClientKey derives the rate-limit key for a request: the first entry of
// X-Forwarded-For when present, else the host part of the peer address, else
// a fixed fallback. The forwarded header is trusted as-is, matching the
// deployment behind a single reverse proxy.
func ClientKey(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if r.RemoteAddr != "" {
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			return host
		}
		return r.RemoteAddr
	}
	return FallbackClientKey
}
