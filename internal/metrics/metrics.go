// LlaqtaShield - Community Incident Reporting and Alert Mapping
// Copyright 2026 LlaqtaShield Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/llaqtashield/llaqtashield

// Package metrics exposes Prometheus collectors for the reporting service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	// Submission pipeline metrics
	ReportsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reports_submitted_total",
			Help: "Total number of successfully persisted reports",
		},
	)

	ReportsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reports_rejected_total",
			Help: "Total number of rejected report submissions",
		},
		[]string{"reason"}, // "validation", "rate_limit", "upload", "storage"
	)

	EvidenceBytesStored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "evidence_bytes_stored_total",
			Help: "Total bytes of evidence images written to disk",
		},
	)

	DocumentsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "documents_generated_total",
			Help: "Total number of report snapshot documents generated",
		},
	)

	RateLimitRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rate_limit_rejections_total",
			Help: "Total number of requests rejected by the sliding-window limiter",
		},
	)
)

// RecordAPIRequest records one completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordRejection counts one rejected submission by reason.
func RecordRejection(reason string) {
	ReportsRejected.WithLabelValues(reason).Inc()
}
