package model

import (
	"errors"
	"math"
	"testing"
)

func TestNewFertilizer_NormalizeDropsBlankNutrients(t *testing.T) {
	in := NewFertilizer{
		Brand:        "  Baja Hijau ",
		PacketWeight: 25,
		PacketPrice:  80,
		Nutrients:    map[string]float64{"Nitrogen (N)": 15, "Zinc (Zn)": 0, "Boron (B)": -2},
	}

	out := in.Normalize()
	if out.Brand != "Baja Hijau" {
		t.Fatalf("brand = %q", out.Brand)
	}
	if len(out.Nutrients) != 1 || out.Nutrients["Nitrogen (N)"] != 15 {
		t.Fatalf("unexpected nutrients: %v", out.Nutrients)
	}
	if err := out.Validate(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestNewFertilizer_ValidateRejects(t *testing.T) {
	tests := []struct {
		name  string
		in    NewFertilizer
		field string
	}{
		{"missing brand", NewFertilizer{PacketWeight: 1, PacketPrice: 1}, "brand"},
		{"zero weight", NewFertilizer{Brand: "X", PacketPrice: 1}, "packet_weight"},
		{"zero price", NewFertilizer{Brand: "X", PacketWeight: 1}, "packet_price"},
		{"infinite weight", NewFertilizer{Brand: "X", PacketWeight: math.Inf(1), PacketPrice: 1}, "packet_weight"},
		{"NaN price", NewFertilizer{Brand: "X", PacketWeight: 1, PacketPrice: math.NaN()}, "packet_price"},
		{"infinite nutrient", NewFertilizer{Brand: "X", PacketWeight: 1, PacketPrice: 1, Nutrients: map[string]float64{"Nitrogen (N)": math.Inf(1)}}, "nutrients"},
		{"unknown nutrient", NewFertilizer{Brand: "X", PacketWeight: 1, PacketPrice: 1, Nutrients: map[string]float64{"Gold (Au)": 3}}, "nutrients"},
		{"over 100 percent", NewFertilizer{Brand: "X", PacketWeight: 1, PacketPrice: 1, Nutrients: map[string]float64{"Nitrogen (N)": 101}}, "nutrients"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			var fieldErr *FieldError
			if !errors.As(err, &fieldErr) || fieldErr.Field != tt.field {
				t.Fatalf("expected field %q, got %v", tt.field, err)
			}
		})
	}
}

func TestCalculationFields_Validate(t *testing.T) {
	fields := CalculationFields{FertilizerID: 1, Name: "  Blok A ", Trees: 100, Rate: 0.5, Frequency: 4}
	if err := fields.Validate(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if fields.Name != "Blok A" {
		t.Fatalf("name was not trimmed: %q", fields.Name)
	}

	bad := []struct {
		name   string
		fields CalculationFields
		field  string
	}{
		{"zero rate", CalculationFields{FertilizerID: 1, Trees: 100, Rate: 0, Frequency: 4}, "rate"},
		{"infinite rate", CalculationFields{FertilizerID: 1, Trees: 100, Rate: math.Inf(1), Frequency: 4}, "rate"},
		{"NaN rate", CalculationFields{FertilizerID: 1, Trees: 100, Rate: math.NaN(), Frequency: 4}, "rate"},
		{"huge rate", CalculationFields{FertilizerID: 1, Trees: 100, Rate: 1e308, Frequency: 4}, "rate"},
		{"too many trees", CalculationFields{FertilizerID: 1, Trees: MaxTrees + 1, Rate: 1, Frequency: 4}, "trees"},
		{"too many applications", CalculationFields{FertilizerID: 1, Trees: 100, Rate: 1, Frequency: MaxFrequency + 1}, "frequency"},
	}
	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fields.Validate()
			var fieldErr *FieldError
			if !errors.As(err, &fieldErr) || fieldErr.Field != tt.field {
				t.Fatalf("expected field %q, got %v", tt.field, err)
			}
		})
	}

	atLimit := CalculationFields{FertilizerID: 1, Trees: MaxTrees, Rate: MaxRate, Frequency: MaxFrequency}
	if err := atLimit.Validate(); err != nil {
		t.Fatalf("limits must be accepted, got %v", err)
	}
}

func TestNutrientNamesFollowCanonicalOrder(t *testing.T) {
	f := Fertilizer{Nutrients: map[string]float64{"Potassium (K)": 10, "Nitrogen (N)": 15, "Boron (B)": 0.5}}

	got := f.NutrientNames()
	want := []string{"Nitrogen (N)", "Potassium (K)", "Boron (B)"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestNewLookup(t *testing.T) {
	lookup := NewLookup([]Fertilizer{{ID: 3, Brand: "A"}, {ID: 7, Brand: "B"}})
	if lookup[7].Brand != "B" {
		t.Fatalf("lookup[7] = %+v", lookup[7])
	}
	if _, ok := lookup[99]; ok {
		t.Fatalf("unexpected entry for id 99")
	}
}
