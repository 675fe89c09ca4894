package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Simplici0/orchard.works/internal/costing"
)

// ErrValidation is matched by every field validation error in this package.
var ErrValidation = errors.New("validation failed")

// FieldError reports which submitted field is unacceptable.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + " " + e.Message
}

func (e *FieldError) Is(target error) bool {
	return target == ErrValidation
}

// Nutrients accepted on a fertilizer label, in display order.
var Nutrients = []string{
	"Nitrogen (N)",
	"Phosphorus (P)",
	"Potassium (K)",
	"Calcium (Ca)",
	"Magnesium (Mg)",
	"Sulfur (S)",
	"Iron (Fe)",
	"Manganese (Mn)",
	"Zinc (Zn)",
	"Copper (Cu)",
	"Boron (B)",
	"Molybdenum (Mo)",
}

// IsKnownNutrient reports whether name is one of Nutrients.
func IsKnownNutrient(name string) bool {
	for _, n := range Nutrients {
		if n == name {
			return true
		}
	}
	return false
}

// Fertilizer is a catalog entry. Entries are not edited after creation.
type Fertilizer struct {
	ID           int64              `json:"id"`
	Brand        string             `json:"brand"`
	PacketWeight float64            `json:"packet_weight"`
	PacketPrice  float64            `json:"packet_price"`
	Nutrients    map[string]float64 `json:"nutrients"`
	CreatedAt    time.Time          `json:"created_at"`
}

// Product returns the inputs the cost calculator needs from this entry.
func (f Fertilizer) Product() costing.Product {
	return costing.Product{
		PacketWeight: f.PacketWeight,
		PacketPrice:  f.PacketPrice,
		Nutrients:    f.Nutrients,
	}
}

// NutrientNames lists declared nutrients in the canonical order.
func (f Fertilizer) NutrientNames() []string {
	names := make([]string, 0, len(f.Nutrients))
	for _, n := range Nutrients {
		if _, ok := f.Nutrients[n]; ok {
			names = append(names, n)
		}
	}
	return names
}

// NewFertilizer carries the admin submission for a catalog entry.
type NewFertilizer struct {
	Brand        string             `json:"brand"`
	PacketWeight float64            `json:"packet_weight"`
	PacketPrice  float64            `json:"packet_price"`
	Nutrients    map[string]float64 `json:"nutrients"`
}

// Normalize trims the brand and drops nutrients that were left blank or zero.
func (n NewFertilizer) Normalize() NewFertilizer {
	out := NewFertilizer{
		Brand:        strings.TrimSpace(n.Brand),
		PacketWeight: n.PacketWeight,
		PacketPrice:  n.PacketPrice,
		Nutrients:    make(map[string]float64, len(n.Nutrients)),
	}
	for name, pct := range n.Nutrients {
		if pct > 0 {
			out.Nutrients[name] = pct
		}
	}
	return out
}

// Validate checks a normalized submission.
func (n NewFertilizer) Validate() error {
	if n.Brand == "" {
		return &FieldError{Field: "brand", Message: "is required"}
	}
	if !isPositiveFinite(n.PacketWeight) {
		return &FieldError{Field: "packet_weight", Message: "must be a finite number greater than 0"}
	}
	if !isPositiveFinite(n.PacketPrice) {
		return &FieldError{Field: "packet_price", Message: "must be a finite number greater than 0"}
	}
	for name, pct := range n.Nutrients {
		if !IsKnownNutrient(name) {
			return &FieldError{Field: "nutrients", Message: fmt.Sprintf("contains unknown nutrient %q", name)}
		}
		if !(pct > 0) || pct > 100 {
			return &FieldError{Field: "nutrients", Message: fmt.Sprintf("%s must be between 0 and 100", name)}
		}
	}
	return nil
}

func isPositiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// Lookup indexes catalog entries by id.
type Lookup map[int64]Fertilizer

// NewLookup builds a Lookup from a catalog snapshot.
func NewLookup(entries []Fertilizer) Lookup {
	lookup := make(Lookup, len(entries))
	for _, e := range entries {
		lookup[e.ID] = e
	}
	return lookup
}
