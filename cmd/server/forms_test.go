package main

import (
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/Simplici0/orchard.works/internal/model"
	"github.com/Simplici0/orchard.works/internal/store"
)

func TestParsePositiveNumbers(t *testing.T) {
	if v, err := parsePositiveFloat(" 0.25 ", "rate"); err != nil || v != 0.25 {
		t.Fatalf("parsePositiveFloat = %v, %v", v, err)
	}
	if v, err := parsePositiveInt("12", "trees"); err != nil || v != 12 {
		t.Fatalf("parsePositiveInt = %v, %v", v, err)
	}

	bad := []struct {
		name string
		fn   func() error
	}{
		{"float text", func() error { _, err := parsePositiveFloat("abc", "rate"); return err }},
		{"float zero", func() error { _, err := parsePositiveFloat("0", "rate"); return err }},
		{"float nan", func() error { _, err := parsePositiveFloat("NaN", "rate"); return err }},
		{"float inf", func() error { _, err := parsePositiveFloat("Inf", "rate"); return err }},
		{"float negative inf", func() error { _, err := parsePositiveFloat("-Infinity", "packet_weight"); return err }},
		{"float out of range", func() error { _, err := parsePositiveFloat("1e400", "packet_price"); return err }},
		{"int fractional", func() error { _, err := parsePositiveInt("2.5", "trees"); return err }},
		{"int negative", func() error { _, err := parsePositiveInt("-1", "trees"); return err }},
		{"int blank", func() error { _, err := parsePositiveInt("", "frequency"); return err }},
	}
	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fn(); err == nil {
				t.Fatalf("expected error")
			} else if !isUserError(err) {
				t.Fatalf("expected a user error, got %v", err)
			}
		})
	}
}

func TestParseCalculationForm(t *testing.T) {
	req := &http.Request{Form: url.Values{
		"fertilizer_id":    {"3"},
		"calculation_name": {"  Blok A "},
		"trees":            {"50"},
		"rate":             {"0.75"},
		"frequency":        {"3"},
	}}

	fields, err := parseCalculationForm(req)
	if err != nil {
		t.Fatalf("parseCalculationForm returned error: %v", err)
	}
	want := model.CalculationFields{FertilizerID: 3, Name: "Blok A", Trees: 50, Rate: 0.75, Frequency: 3}
	if fields != want {
		t.Fatalf("fields = %+v, want %+v", fields, want)
	}

	req.Form.Set("fertilizer_id", "x")
	if _, err := parseCalculationForm(req); err == nil {
		t.Fatalf("expected error for invalid fertilizer id")
	}
}

func TestIsUserError(t *testing.T) {
	if !isUserError(&model.FieldError{Field: "brand", Message: "is required"}) {
		t.Fatalf("field errors are user errors")
	}
	if !isUserError(store.ErrUnknownFertilizer) {
		t.Fatalf("unknown fertilizer is a user error")
	}
	if isUserError(errors.New("database is locked")) {
		t.Fatalf("generic errors are not user errors")
	}
}
