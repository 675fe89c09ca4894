package costing

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is matched by every error Compute returns.
var ErrInvalidInput = errors.New("invalid input")

// MaxPackets bounds the packet count so it always fits in an int and
// converts back to float64 without loss.
const MaxPackets = 1 << 53

// InputError names the input field that failed validation. Reason is empty
// for the usual "not a positive finite number" failure.
type InputError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InputError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid input: %s %s, got %v", e.Field, e.Reason, e.Value)
	}
	return fmt.Sprintf("invalid input: %s must be a positive number, got %v", e.Field, e.Value)
}

func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Product holds the catalog-side inputs: what one packet weighs, costs, and contains.
type Product struct {
	PacketWeight float64
	PacketPrice  float64
	Nutrients    map[string]float64
}

// Usage holds the calculation-side inputs for one orchard scenario.
type Usage struct {
	Trees     int
	Rate      float64
	Frequency int
}

// Result contains every figure derived from a product and a usage scenario.
type Result struct {
	TotalAnnualNeed      float64 `json:"total_annual_need"`
	PacketsAnnually      int     `json:"packets_annually"`
	TotalAnnualCost      float64 `json:"total_annual_cost"`
	AnnualCostPerTree    float64 `json:"annual_cost_per_tree"`
	PricePerKg           float64 `json:"price_per_kg"`
	TotalNutrientPercent float64 `json:"total_nutrient_percent"`
	// PricePerKgNutrient is nil when the product declares no nutrient content.
	PricePerKgNutrient *float64 `json:"price_per_kg_nutrient"`
}

// Compute derives annual need, packets, and costs for usage of product.
// Packets are always bought whole, so the packet count is a true ceiling.
// Inputs whose figures overflow fail with an *InputError instead of
// producing infinite or wrapped values.
func Compute(product Product, usage Usage) (Result, error) {
	if err := validate(product, usage); err != nil {
		return Result{}, err
	}

	trees := float64(usage.Trees)
	totalAnnualNeed := trees * usage.Rate * float64(usage.Frequency)
	if !isFinite(totalAnnualNeed) {
		return Result{}, &InputError{Field: "total_annual_need", Value: totalAnnualNeed, Reason: "is too large"}
	}

	packets := math.Ceil(totalAnnualNeed / product.PacketWeight)
	if !isFinite(packets) || packets > MaxPackets {
		return Result{}, &InputError{Field: "packets_annually", Value: packets, Reason: "is too large"}
	}
	packetsAnnually := int(packets)

	totalAnnualCost := packets * product.PacketPrice
	if !isFinite(totalAnnualCost) {
		return Result{}, &InputError{Field: "total_annual_cost", Value: totalAnnualCost, Reason: "is too large"}
	}
	annualCostPerTree := totalAnnualCost / trees

	pricePerKg := product.PacketPrice / product.PacketWeight
	if !isFinite(pricePerKg) {
		return Result{}, &InputError{Field: "price_per_kg", Value: pricePerKg, Reason: "is too large"}
	}

	totalNutrientPercent := SumNutrients(product.Nutrients)

	var pricePerKgNutrient *float64
	if len(product.Nutrients) > 0 && totalNutrientPercent > 0 {
		v := pricePerKg / (totalNutrientPercent / 100.0)
		if !isFinite(v) {
			return Result{}, &InputError{Field: "price_per_kg_nutrient", Value: v, Reason: "is too large"}
		}
		pricePerKgNutrient = &v
	}

	return Result{
		TotalAnnualNeed:      totalAnnualNeed,
		PacketsAnnually:      packetsAnnually,
		TotalAnnualCost:      totalAnnualCost,
		AnnualCostPerTree:    annualCostPerTree,
		PricePerKg:           pricePerKg,
		TotalNutrientPercent: totalNutrientPercent,
		PricePerKgNutrient:   pricePerKgNutrient,
	}, nil
}

// SumNutrients adds up nutrient percentages. Non-finite values count as zero.
func SumNutrients(nutrients map[string]float64) float64 {
	total := 0.0
	for _, v := range nutrients {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		total += v
	}
	return total
}

func validate(product Product, usage Usage) error {
	checks := []struct {
		field string
		value float64
	}{
		{"trees", float64(usage.Trees)},
		{"rate", usage.Rate},
		{"frequency", float64(usage.Frequency)},
		{"packet_weight", product.PacketWeight},
		{"packet_price", product.PacketPrice},
	}
	for _, c := range checks {
		if !isPositive(c.value) {
			return &InputError{Field: c.field, Value: c.value}
		}
	}
	return nil
}

func isPositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
