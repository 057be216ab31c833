// LlaqtaShield - Community Incident Reporting and Alert Mapping
// Copyright 2026 LlaqtaShield Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/llaqtashield/llaqtashield

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext bounds schema operations.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createSchema creates the reports table and its id sequence. Idempotent;
// runs on every startup.
func (db *DB) createSchema() error {
	ctx, cancel := schemaContext()
	defer cancel()

	queries := []string{
		`CREATE SEQUENCE IF NOT EXISTS reports_id_seq START 1`,

		// Reports are append-only: no update or delete path exists, so the
		// schema carries no updated_at or soft-delete columns.
		`CREATE TABLE IF NOT EXISTS reports (
			id BIGINT PRIMARY KEY DEFAULT nextval('reports_id_seq'),
			created_at TIMESTAMP NOT NULL,
			categoria VARCHAR NOT NULL,
			descripcion VARCHAR NOT NULL,
			direccion VARCHAR,
			lat DOUBLE,
			lng DOUBLE,
			telefono VARCHAR,
			anonimo BOOLEAN NOT NULL DEFAULT false,
			imagen_path VARCHAR
		)`,

		// Listing is always most-recent-first.
		`CREATE INDEX IF NOT EXISTS idx_reports_created_at ON reports (created_at DESC)`,
	}

	for _, query := range queries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}

	return nil
}
