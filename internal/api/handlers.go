// LlaqtaShield - Community Incident Reporting and Alert Mapping
// Copyright 2026 LlaqtaShield Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/llaqtashield/llaqtashield

package api

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/llaqtashield/llaqtashield/internal/config"
	"github.com/llaqtashield/llaqtashield/internal/document"
	"github.com/llaqtashield/llaqtashield/internal/logging"
	"github.com/llaqtashield/llaqtashield/internal/metrics"
	"github.com/llaqtashield/llaqtashield/internal/models"
	"github.com/llaqtashield/llaqtashield/internal/ratelimit"
	"github.com/llaqtashield/llaqtashield/internal/sanitize"
	"github.com/llaqtashield/llaqtashield/internal/upload"
	"github.com/llaqtashield/llaqtashield/internal/validation"
)

// ReportStore is the persistence surface the handlers need. Satisfied by
// *database.DB; narrowed to an interface so handler tests can run without
// an embedded database.
type ReportStore interface {
	InsertReport(ctx context.Context, report *models.Report) (int64, error)
	ListReports(ctx context.Context, limit, offset int) ([]models.Report, error)
	CountReports(ctx context.Context) (int64, error)
}

// Handler holds the dependencies behind the HTTP surface.
type Handler struct {
	cfg       *config.Config
	store     ReportStore
	uploads   *upload.Store
	documents *document.Generator
	limiter   *ratelimit.Limiter

	// jitter is the alert coordinate noise source; overridable in tests.
	jitter func() float64
}

// NewHandler wires a Handler from its collaborators.
func NewHandler(cfg *config.Config, store ReportStore, uploads *upload.Store, documents *document.Generator, limiter *ratelimit.Limiter) *Handler {
	return &Handler{
		cfg:       cfg,
		store:     store,
		uploads:   uploads,
		documents: documents,
		limiter:   limiter,
		jitter:    rand.Float64,
	}
}

// SlidingWindowLimit enforces the shared per-client submission budget.
// Rejected requests never advance the client's window.
func (h *Handler) SlidingWindowLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := ratelimit.ClientKey(r)
		if !h.limiter.Allow(key) {
			metrics.RateLimitRejections.Inc()
			logging.Warn().Str("client", key).Str("path", r.URL.Path).Msg("rate limit exceeded")
			respondError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// alertSeed is a fixed demo alert before jitter is applied.
type alertSeed struct {
	category    models.Category
	description string
	address     string
	lat, lng    float64
}

var alertSeeds = []alertSeed{
	{models.CategoryEmergency, "Robo", "Zona comercial", -9.93, -76.24},
	{models.CategoryElderSupport, "Ayuda requerida", "Av. Principal", -9.935, -76.23},
	{models.CategoryOther, "Reporte menor", "", -9.94, -76.25},
}

// Alertas returns the simulated map alerts with jittered coordinates so
// repeated requests do not stack markers.
func (h *Handler) Alertas(w http.ResponseWriter, r *http.Request) {
	delta := h.cfg.Alerts.JitterDelta
	alerts := make([]models.SimulatedAlert, len(alertSeeds))
	for i, seed := range alertSeeds {
		alerts[i] = models.SimulatedAlert{
			Category:    seed.category,
			Description: seed.description,
			Address:     seed.address,
			Lat:         seed.lat + (h.jitter()*delta*2 - delta),
			Lng:         seed.lng + (h.jitter()*delta*2 - delta),
		}
	}
	respondJSON(w, http.StatusOK, alerts)
}

// submissionRequest carries the validated fields of a report submission.
type submissionRequest struct {
	Descripcion string   `validate:"required,min=1,max=2048"`
	Lat         *float64 `validate:"omitempty,latitude"`
	Lng         *float64 `validate:"omitempty,longitude"`
}

// SubmitReport handles the multipart report form. Evidence is stored before
// the database insert: an orphaned file is acceptable, an orphaned record
// pointing at a missing file is not.
func (h *Handler) SubmitReport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.Uploads.MaxBytes)

	if err := r.ParseMultipartForm(h.cfg.Uploads.MaxBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			respondError(w, http.StatusRequestEntityTooLarge, "VALIDATION_ERROR", "request body too large", nil)
			metrics.RecordRejection("validation")
			return
		}
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "malformed multipart form", nil)
		metrics.RecordRejection("validation")
		return
	}

	report := models.Report{
		Category:    models.ParseCategory(sanitize.Default(r.FormValue("categoria"))),
		Description: sanitize.Default(r.FormValue("descripcion")),
		Address:     sanitize.Default(r.FormValue("direccion")),
		Phone:       sanitize.Default(r.FormValue("telefono")),
		Anonymous:   r.FormValue("anonimo") == "on",
	}
	report.Lat, report.Lng = parseCoordinates(r.FormValue("lat"), r.FormValue("lng"))

	req := submissionRequest{
		Descripcion: report.Description,
		Lat:         report.Lat,
		Lng:         report.Lng,
	}
	if err := validation.ValidateStruct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), err.Details())
		metrics.RecordRejection("validation")
		return
	}

	if done := h.acceptEvidence(w, r, &report); done {
		return
	}

	if _, err := h.store.InsertReport(r.Context(), &report); err != nil {
		logging.Err(err).Msg("failed to insert report")
		respondError(w, http.StatusInternalServerError, "STORAGE_ERROR", "DB error", nil)
		metrics.RecordRejection("storage")
		return
	}

	docPath, err := h.documents.Render(report)
	if err != nil {
		logging.Err(err).Int64("report_id", report.ID).Msg("failed to render report document")
		respondError(w, http.StatusInternalServerError, "STORAGE_ERROR", "document generation failed", nil)
		metrics.RecordRejection("storage")
		return
	}
	metrics.DocumentsGenerated.Inc()
	metrics.ReportsSubmitted.Inc()

	logging.Info().
		Int64("report_id", report.ID).
		Str("categoria", string(report.Category)).
		Bool("anonimo", report.Anonymous).
		Msg("report submitted")

	respondJSON(w, http.StatusCreated, models.SubmissionResult{
		Status:   "OK",
		ID:       report.ID,
		Document: "/reporte/" + filepath.Base(docPath),
	})
}

// acceptEvidence validates and stores the optional imagen file, filling
// report.ImagePath. Returns true when it already wrote an error response.
func (h *Handler) acceptEvidence(w http.ResponseWriter, r *http.Request, report *models.Report) bool {
	file, header, err := r.FormFile("imagen")
	if errors.Is(err, http.ErrMissingFile) {
		return false
	}
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "malformed upload", nil)
		metrics.RecordRejection("validation")
		return true
	}
	defer func() { _ = file.Close() }()

	if header.Filename == "" {
		return false
	}

	name, err := h.uploads.Accept(file, header.Filename)
	if err != nil {
		if errors.Is(err, upload.ErrDisallowedType) || errors.Is(err, upload.ErrNoExtension) {
			respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Archivo no permitido", nil)
			metrics.RecordRejection("upload")
			return true
		}
		logging.Err(err).Str("filename", header.Filename).Msg("failed to store evidence")
		respondError(w, http.StatusInternalServerError, "STORAGE_ERROR", "Error guardando imagen", nil)
		metrics.RecordRejection("upload")
		return true
	}

	report.ImagePath = h.cfg.Uploads.PublicPrefix + name
	metrics.EvidenceBytesStored.Add(float64(header.Size))
	return false
}

// listRequest bounds the public listing query.
type listRequest struct {
	Limit  int `validate:"gte=0"`
	Offset int `validate:"gte=0"`
}

// ListReports exports persisted reports, most recent first.
func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", h.cfg.API.DefaultListLimit)
	offset := queryInt(r, "offset", 0)

	req := listRequest{Limit: limit, Offset: offset}
	if err := validation.ValidateStruct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), err.Details())
		return
	}

	reports, err := h.store.ListReports(r.Context(), limit, offset)
	if err != nil {
		logging.Err(err).Msg("failed to list reports")
		respondError(w, http.StatusInternalServerError, "STORAGE_ERROR", "DB error", nil)
		return
	}
	respondJSON(w, http.StatusOK, reports)
}

// ServeDocument streams a previously generated report document.
func (h *Handler) ServeDocument(w http.ResponseWriter, r *http.Request) {
	filename := routeParam(r, "filename")

	f, err := h.documents.Open(filename)
	if err != nil {
		if errors.Is(err, document.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "document not found", nil)
			return
		}
		logging.Err(err).Str("filename", filename).Msg("failed to open document")
		respondError(w, http.StatusInternalServerError, "STORAGE_ERROR", "failed to open document", nil)
		return
	}
	defer func() { _ = f.Close() }()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, f); err != nil {
		logging.Err(err).Str("filename", filename).Msg("failed to stream document")
	}
}

// adminListing is the envelope payload of the admin panel.
type adminListing struct {
	Reports []models.Report `json:"reports"`
	Total   int64           `json:"total"`
}

// AdminReports returns the most recent reports plus the total count.
// Credentials are enforced by the route group, not here.
func (h *Handler) AdminReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.store.ListReports(r.Context(), h.cfg.API.AdminListLimit, 0)
	if err != nil {
		logging.Err(err).Msg("failed to list reports for admin")
		respondError(w, http.StatusInternalServerError, "STORAGE_ERROR", "DB error", nil)
		return
	}
	total, err := h.store.CountReports(r.Context())
	if err != nil {
		logging.Err(err).Msg("failed to count reports")
		respondError(w, http.StatusInternalServerError, "STORAGE_ERROR", "DB error", nil)
		return
	}
	respondEnvelope(w, http.StatusOK, adminListing{Reports: reports, Total: total})
}

// Health is a liveness probe.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondEnvelope(w, http.StatusOK, map[string]string{"state": "ok"})
}

// parseCoordinates converts the optional lat/lng form values. Any parse
// failure or out-of-range value degrades both to nil; coordinates are
// enrichment, never grounds for rejection.
func parseCoordinates(latRaw, lngRaw string) (*float64, *float64) {
	var lat, lng *float64
	if latRaw != "" {
		v, err := strconv.ParseFloat(latRaw, 64)
		if err != nil || v < -90 || v > 90 {
			return nil, nil
		}
		lat = &v
	}
	if lngRaw != "" {
		v, err := strconv.ParseFloat(lngRaw, 64)
		if err != nil || v < -180 || v > 180 {
			return nil, nil
		}
		lng = &v
	}
	return lat, lng
}
