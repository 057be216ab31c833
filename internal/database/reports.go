// LlaqtaShield - Community Incident Reporting and Alert Mapping
// Copyright 2026 LlaqtaShield Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/llaqtashield/llaqtashield

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/llaqtashield/llaqtashield/internal/models"
)

// InsertReport persists a report as a single atomic insert, stamping
// CreatedAt (UTC) and the store-assigned id onto the passed report. The
// returned id is monotonically increasing and immutable.
//
// Evidence files are written BEFORE this call by design: a storage failure
// must never leave a record referencing a missing file. The reverse (an
// orphan file after a failed insert) is an accepted tradeoff.
func (db *DB) InsertReport(ctx context.Context, report *models.Report) (int64, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	report.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO reports (
			created_at, categoria, descripcion, direccion,
			lat, lng, telefono, anonimo, imagen_path
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`

	var id int64
	err := db.conn.QueryRowContext(ctx, query,
		report.CreatedAt, string(report.Category), report.Description,
		nullString(report.Address), report.Lat, report.Lng,
		nullString(report.Phone), report.Anonymous, nullString(report.ImagePath),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert report: %w", err)
	}

	report.ID = id
	return id, nil
}

// ListReports returns at most limit reports, skipping offset, ordered
// most-recent-first. The id tiebreak keeps ordering deterministic for
// same-timestamp inserts. The upper bound of limit is intentionally left to
// the caller.
func (db *DB) ListReports(ctx context.Context, limit, offset int) ([]models.Report, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		SELECT id, created_at, categoria, descripcion, direccion,
		       lat, lng, telefono, anonimo, imagen_path
		FROM reports
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`

	rows, err := db.conn.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer logCloseError(rows, "rows")

	var reports []models.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reports: %w", err)
	}

	return reports, nil
}

// CountReports returns the total number of persisted reports.
func (db *DB) CountReports(ctx context.Context) (int64, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var count int64
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM reports`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count reports: %w", err)
	}
	return count, nil
}

// scanReport maps one row onto a models.Report, folding NULLs back to the
// zero values the JSON layer omits.
func scanReport(rows *sql.Rows) (models.Report, error) {
	var (
		report    models.Report
		category  string
		address   sql.NullString
		phone     sql.NullString
		imagePath sql.NullString
		lat       sql.NullFloat64
		lng       sql.NullFloat64
	)

	err := rows.Scan(
		&report.ID, &report.CreatedAt, &category, &report.Description,
		&address, &lat, &lng, &phone, &report.Anonymous, &imagePath,
	)
	if err != nil {
		return models.Report{}, err
	}

	report.Category = models.Category(category)
	report.Address = address.String
	report.Phone = phone.String
	report.ImagePath = imagePath.String
	if lat.Valid {
		report.Lat = &lat.Float64
	}
	if lng.Valid {
		report.Lng = &lng.Float64
	}
	report.CreatedAt = report.CreatedAt.UTC()

	return report, nil
}

// nullString maps "" to SQL NULL so optional text fields round-trip as
// absent rather than empty.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
