// LlaqtaShield - Community Incident Reporting and Alert Mapping
// Copyright 2026 LlaqtaShield Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/llaqtashield/llaqtashield

// Package models defines the core data types shared across the application.
package models

import (
	"strings"
	"time"
)

// Category is the closed set of incident categories. Unknown or absent
// values always normalize to CategoryOther; a persisted report never
// carries a category outside this set.
type Category string

// Incident categories, matching the reporting form.
const (
	CategoryEmergency      Category = "EMERGENCIA"
	CategoryBullying       Category = "BULLYING"
	CategoryHealth         Category = "SALUD"
	CategoryInfrastructure Category = "INFRAESTRUCTURA"
	CategoryWeather        Category = "CLIMA"
	CategoryElderSupport   Category = "APOYO ADULTO MAYOR"
	CategoryAnimalAbuse    Category = "MALTRATO ANIMAL"
	CategoryArmedRobbery   Category = "ROBO A MANO ARMADA"
	CategoryOther          Category = "OTRO"
)

// Categories lists every valid category in form display order.
var Categories = []Category{
	CategoryEmergency,
	CategoryBullying,
	CategoryHealth,
	CategoryInfrastructure,
	CategoryWeather,
	CategoryElderSupport,
	CategoryAnimalAbuse,
	CategoryArmedRobbery,
	CategoryOther,
}

// ParseCategory normalizes raw form input to a member of the closed set.
// Case-insensitive; anything unrecognized maps to CategoryOther.
func ParseCategory(s string) Category {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for _, c := range Categories {
		if normalized == string(c) {
			return c
		}
	}
	return CategoryOther
}

// IsValid reports whether c is a member of the closed category set.
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Report is a durable incident record. The id is assigned by the store and
// immutable; records are append-only (no update or delete exists).
//
// Lat/Lng are optional enrichment: either may be present without the other,
// and parse failures upstream degrade to nil rather than rejecting the
// submission.
type Report struct {
	ID          int64     `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Category    Category  `json:"categoria"`
	Description string    `json:"descripcion"`
	Address     string    `json:"direccion,omitempty"`
	Lat         *float64  `json:"lat,omitempty"`
	Lng         *float64  `json:"lng,omitempty"`
	Phone       string    `json:"telefono,omitempty"`
	Anonymous   bool      `json:"anonimo"`
	ImagePath   string    `json:"imagen_path,omitempty"`
}

// SimulatedAlert is a non-persisted demo alert for the map view, with
// jittered coordinates so repeated requests do not stack markers.
type SimulatedAlert struct {
	Category    Category `json:"categoria"`
	Description string   `json:"descripcion"`
	Address     string   `json:"direccion"`
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
}
