// LlaqtaShield - Community Incident Reporting and Alert Mapping
// Copyright 2026 LlaqtaShield Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/llaqtashield/llaqtashield

package validation

import (
	"strings"
	"testing"
)

type submissionForm struct {
	Categoria   string   `validate:"required,categoria"`
	Descripcion string   `validate:"required,min=1,max=2048"`
	Lat         *float64 `validate:"omitempty,latitude"`
	Lng         *float64 `validate:"omitempty,longitude"`
}

type listQuery struct {
	Limit  int `validate:"gte=1,lte=500"`
	Offset int `validate:"gte=0"`
}

func TestValidateStructPasses(t *testing.T) {
	lat, lng := -13.52, -71.97
	form := submissionForm{
		Categoria:   "EMERGENCIA",
		Descripcion: "incendio en el mercado central",
		Lat:         &lat,
		Lng:         &lng,
	}
	if err := ValidateStruct(&form); err != nil {
		t.Fatalf("expected valid form, got: %v", err)
	}
}

func TestValidateStructUnknownCategory(t *testing.T) {
	form := submissionForm{Categoria: "INVENTADA", Descripcion: "algo"}
	err := ValidateStruct(&form)
	if err == nil {
		t.Fatal("expected validation error for unknown category")
	}
	if !strings.Contains(err.Error(), "not a recognized incident category") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestValidateStructMissingRequired(t *testing.T) {
	form := submissionForm{}
	err := ValidateStruct(&form)
	if err == nil {
		t.Fatal("expected validation error for empty form")
	}
	if len(err.Fields()) != 2 {
		t.Errorf("expected 2 field errors, got %d: %v", len(err.Fields()), err)
	}
}

func TestValidateStructCoordinateRange(t *testing.T) {
	lat := 91.0
	form := submissionForm{Categoria: "SALUD", Descripcion: "x", Lat: &lat}
	err := ValidateStruct(&form)
	if err == nil {
		t.Fatal("expected validation error for out-of-range latitude")
	}
	if !strings.Contains(err.Error(), "latitude") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestValidateStructListBounds(t *testing.T) {
	tests := []struct {
		name    string
		query   listQuery
		wantErr bool
	}{
		{"valid", listQuery{Limit: 200, Offset: 0}, false},
		{"limit too high", listQuery{Limit: 501, Offset: 0}, true},
		{"limit zero", listQuery{Limit: 0, Offset: 0}, true},
		{"negative offset", listQuery{Limit: 10, Offset: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.query)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStruct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRequestErrorDetails(t *testing.T) {
	err := ValidateStruct(&submissionForm{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	details := err.Details()
	fields, ok := details["fields"].([]map[string]interface{})
	if !ok {
		t.Fatalf("expected fields slice in details, got %T", details["fields"])
	}
	if len(fields) == 0 {
		t.Error("expected at least one field entry")
	}
}
