// LlaqtaShield - Community Incident Reporting and Alert Mapping
// Copyright 2026 LlaqtaShield Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/llaqtashield/llaqtashield

package auth

import (
	"net/http"

	"github.com/llaqtashield/llaqtashield/internal/logging"
)

// Realm is the Basic Auth realm presented on the challenge.
const Realm = "LlaqtaShield"

// RequireBasicAuth returns chi-compatible middleware that admits a request
// only when its Basic Auth credentials verify against store. Anything else
// gets a 401 challenge so the browser prompts for credentials.
func RequireBasicAuth(store CredentialStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if ok && store.Verify(username, password) {
				next.ServeHTTP(w, r)
				return
			}

			if ok {
				logging.Warn().
					Str("username", username).
					Str("path", r.URL.Path).
					Msg("Admin authentication failed")
			}

			w.Header().Set("WWW-Authenticate", `Basic realm="`+Realm+`", charset="UTF-8"`)
			http.Error(w, "Authentication required", http.StatusUnauthorized)
		})
	}
}
