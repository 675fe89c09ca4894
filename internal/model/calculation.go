package model

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Simplici0/orchard.works/internal/costing"
)

// Calculation is a saved scenario against one catalog entry. It references the
// entry by id only, so derived figures always follow the entry's current values.
type Calculation struct {
	ID           int64     `json:"id"`
	FertilizerID int64     `json:"fertilizer_id"`
	Name         string    `json:"calculation_name"`
	Trees        int       `json:"trees"`
	Rate         float64   `json:"rate"`
	Frequency    int       `json:"frequency"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Usage returns the inputs the cost calculator needs from this calculation.
func (c Calculation) Usage() costing.Usage {
	return costing.Usage{Trees: c.Trees, Rate: c.Rate, Frequency: c.Frequency}
}

// Fields returns the editable part of the calculation.
func (c Calculation) Fields() CalculationFields {
	return CalculationFields{
		FertilizerID: c.FertilizerID,
		Name:         c.Name,
		Trees:        c.Trees,
		Rate:         c.Rate,
		Frequency:    c.Frequency,
	}
}

// Upper bounds for a single orchard scenario.
const (
	MaxTrees     = 10_000_000
	MaxRate      = 10_000.0
	MaxFrequency = 366
)

// CalculationFields is what a user submits when creating or editing a calculation.
type CalculationFields struct {
	FertilizerID int64   `json:"fertilizer_id"`
	Name         string  `json:"calculation_name"`
	Trees        int     `json:"trees"`
	Rate         float64 `json:"rate"`
	Frequency    int     `json:"frequency"`
}

// Validate trims the name in place and checks the numeric inputs.
func (f *CalculationFields) Validate() error {
	f.Name = strings.TrimSpace(f.Name)
	if f.FertilizerID <= 0 {
		return &FieldError{Field: "fertilizer_id", Message: "is required"}
	}
	if f.Trees <= 0 {
		return &FieldError{Field: "trees", Message: "must be greater than 0"}
	}
	if f.Trees > MaxTrees {
		return &FieldError{Field: "trees", Message: fmt.Sprintf("must be at most %d", MaxTrees)}
	}
	if math.IsInf(f.Rate, 0) || !(f.Rate > 0) {
		return &FieldError{Field: "rate", Message: "must be greater than 0"}
	}
	if f.Rate > MaxRate {
		return &FieldError{Field: "rate", Message: fmt.Sprintf("must be at most %g", MaxRate)}
	}
	if f.Frequency <= 0 {
		return &FieldError{Field: "frequency", Message: "must be greater than 0"}
	}
	if f.Frequency > MaxFrequency {
		return &FieldError{Field: "frequency", Message: fmt.Sprintf("must be at most %d", MaxFrequency)}
	}
	return nil
}
