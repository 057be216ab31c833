// LlaqtaShield - Community Incident Reporting and Alert Mapping
// Copyright 2026 LlaqtaShield Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/llaqtashield/llaqtashield

// Package document renders an immutable, self-contained HTML snapshot of
// every submitted report and serves it back by exact filename.
//
// Every field is rendered through html/template, so stored content can never
// inject markup into the served document. Filenames carry second-granularity
// UTC timestamps; same-second collisions silently overwrite, which is
// accepted for the expected request rates.
package document

import (
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/llaqtashield/llaqtashield/internal/models"
	"github.com/llaqtashield/llaqtashield/internal/upload"
)

// ErrNotFound indicates no generated document exists under the requested name.
var ErrNotFound = errors.New("document not found")

// pageTemplate mirrors the report snapshot layout: a heading and one
// label/value row per field. Auto-escaping applies to every value.
var pageTemplate = template.Must(template.New("report").Parse(`<!doctype html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>Reporte — LlaqtaShield</title>
<style>
body{font-family:Arial;margin:28px;background:#fbfdfb;color:#07392f}
h1{color:#0b6b55;border-bottom:4px solid #dfe9e3;padding-bottom:8px}
.box{background:#fff;padding:16px;border-radius:8px;box-shadow:0 6px 18px rgba(3,19,14,.06)}
.lab{font-weight:700;color:#0b5f49}
</style>
</head>
<body>
<h1>Reporte generado — Sistema LlaqtaShield</h1>
<div class="box">
{{range .Rows}}<p><span class="lab">{{.Label}}:</span> {{.Value}}</p>
{{end}}</div>
</body>
</html>
`))

type row struct {
	Label string
	Value string
}

// Generator writes report snapshots into a managed directory.
type Generator struct {
	dir string

	// now is the filename timestamp source; overridable in tests.
	now func() time.Time
}

// New creates the document directory if needed and returns a Generator.
func New(dir string) (*Generator, error) {
	if dir == "" {
		return nil, fmt.Errorf("document directory is required")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create document directory %s: %w", dir, err)
	}
	return &Generator{dir: dir, now: time.Now}, nil
}

// Dir returns the managed directory.
func (g *Generator) Dir() string {
	return g.dir
}

// Render writes one new snapshot for report and returns the full path.
// The caller derives the public retrieval identifier from the basename.
func (g *Generator) Render(report models.Report) (string, error) {
	filename := fmt.Sprintf("reporte_%s.html", g.now().UTC().Format("2006-01-02_15-04-05"))
	full := filepath.Join(g.dir, filename)

	rows := []row{
		{"Fecha", report.CreatedAt.UTC().Format(time.RFC3339)},
		{"Categoría", string(report.Category)},
		{"Descripción", report.Description},
		{"Dirección", report.Address},
		{"Latitud", formatCoord(report.Lat)},
		{"Longitud", formatCoord(report.Lng)},
		{"Teléfono", report.Phone},
		{"Anónimo", strconv.FormatBool(report.Anonymous)},
		{"Imagen", report.ImagePath},
	}

	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("failed to create document file: %w", err)
	}

	if err := pageTemplate.Execute(f, struct{ Rows []row }{rows}); err != nil {
		_ = f.Close()
		_ = os.Remove(full)
		return "", fmt.Errorf("failed to render document: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(full)
		return "", fmt.Errorf("failed to flush document: %w", err)
	}

	return full, nil
}

// Open returns the generated document stored under basename. The name is
// re-secured before touching the filesystem, so a crafted identifier cannot
// escape the document directory.
func (g *Generator) Open(basename string) (*os.File, error) {
	safe := upload.SecureName(basename)
	f, err := os.Open(filepath.Join(g.dir, safe))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	return f, nil
}

func formatCoord(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
