// LlaqtaShield - Community Incident Reporting and Alert Mapping
// Copyright 2026 LlaqtaShield Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/llaqtashield/llaqtashield

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/llaqtashield/llaqtashield/internal/logging"
	"github.com/llaqtashield/llaqtashield/internal/models"
)

// respondJSON writes v as-is. Used where the response shape is part of the
// published contract (flat arrays, the submission result).
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Err(err).Msg("failed to encode response")
	}
}

// respondEnvelope wraps data in the standard success envelope.
func respondEnvelope(w http.ResponseWriter, status int, data interface{}) {
	respondJSON(w, status, models.APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	})
}

// respondError writes the standard error envelope.
func respondError(w http.ResponseWriter, status int, code, message string, details map[string]interface{}) {
	respondJSON(w, status, models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
		Error: &models.APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// queryInt reads an integer query parameter, falling back to def when the
// parameter is absent or unparsable.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

// routeParam reads a chi URL parameter.
func routeParam(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}
