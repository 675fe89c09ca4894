package costing

import (
	"errors"
	"math"
	"testing"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func scenarioA() (Product, Usage) {
	return Product{PacketWeight: 25, PacketPrice: 80}, Usage{Trees: 100, Rate: 0.5, Frequency: 4}
}

func TestCompute_ScenarioA(t *testing.T) {
	product, usage := scenarioA()

	result, err := Compute(product, usage)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	nearlyEqual(t, "totalAnnualNeed", result.TotalAnnualNeed, 200)
	if result.PacketsAnnually != 8 {
		t.Fatalf("packetsAnnually = %d, want 8", result.PacketsAnnually)
	}
	nearlyEqual(t, "totalAnnualCost", result.TotalAnnualCost, 640)
	nearlyEqual(t, "annualCostPerTree", result.AnnualCostPerTree, 6.40)
	nearlyEqual(t, "pricePerKg", result.PricePerKg, 3.20)
	if result.PricePerKgNutrient != nil {
		t.Fatalf("expected no nutrient price without nutrients, got %v", *result.PricePerKgNutrient)
	}
}

func TestCompute_ScenarioB_NutrientPrice(t *testing.T) {
	product, usage := scenarioA()
	product.Nutrients = map[string]float64{"Nitrogen (N)": 15, "Potassium (K)": 10}

	result, err := Compute(product, usage)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	nearlyEqual(t, "totalNutrientPercent", result.TotalNutrientPercent, 25)
	if result.PricePerKgNutrient == nil {
		t.Fatalf("expected nutrient price to be present")
	}
	nearlyEqual(t, "pricePerKgNutrient", *result.PricePerKgNutrient, 12.80)
}

func TestCompute_ScenarioC_ExactDivision(t *testing.T) {
	result, err := Compute(Product{PacketWeight: 25, PacketPrice: 80}, Usage{Trees: 50, Rate: 1, Frequency: 1})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	nearlyEqual(t, "totalAnnualNeed", result.TotalAnnualNeed, 50)
	if result.PacketsAnnually != 2 {
		t.Fatalf("packetsAnnually = %d, want 2", result.PacketsAnnually)
	}
	nearlyEqual(t, "totalAnnualCost", result.TotalAnnualCost, 160)
}

func TestCompute_ScenarioD_PartialPacketRoundsUp(t *testing.T) {
	result, err := Compute(Product{PacketWeight: 25, PacketPrice: 80}, Usage{Trees: 10, Rate: 1, Frequency: 1})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	nearlyEqual(t, "totalAnnualNeed", result.TotalAnnualNeed, 10)
	if result.PacketsAnnually != 1 {
		t.Fatalf("packetsAnnually = %d, want 1", result.PacketsAnnually)
	}
	nearlyEqual(t, "totalAnnualCost", result.TotalAnnualCost, 80)
}

func TestCompute_NutrientPriceAbsent(t *testing.T) {
	tests := []struct {
		name      string
		nutrients map[string]float64
	}{
		{name: "nil map", nutrients: nil},
		{name: "empty map", nutrients: map[string]float64{}},
		{name: "all zero", nutrients: map[string]float64{"Nitrogen (N)": 0, "Zinc (Zn)": 0}},
		{name: "only non-finite", nutrients: map[string]float64{"Boron (B)": math.NaN()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product, usage := scenarioA()
			product.Nutrients = tt.nutrients

			result, err := Compute(product, usage)
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if result.PricePerKgNutrient != nil {
				t.Fatalf("expected nutrient price to be absent, got %v", *result.PricePerKgNutrient)
			}
		})
	}
}

func TestCompute_RejectsNonPositiveInputs(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		usage   Usage
		field   string
	}{
		{"zero trees", Product{PacketWeight: 25, PacketPrice: 80}, Usage{Trees: 0, Rate: 1, Frequency: 1}, "trees"},
		{"negative rate", Product{PacketWeight: 25, PacketPrice: 80}, Usage{Trees: 1, Rate: -1, Frequency: 1}, "rate"},
		{"NaN rate", Product{PacketWeight: 25, PacketPrice: 80}, Usage{Trees: 1, Rate: math.NaN(), Frequency: 1}, "rate"},
		{"zero frequency", Product{PacketWeight: 25, PacketPrice: 80}, Usage{Trees: 1, Rate: 1, Frequency: 0}, "frequency"},
		{"zero packet weight", Product{PacketWeight: 0, PacketPrice: 80}, Usage{Trees: 1, Rate: 1, Frequency: 1}, "packet_weight"},
		{"infinite packet weight", Product{PacketWeight: math.Inf(1), PacketPrice: 80}, Usage{Trees: 1, Rate: 1, Frequency: 1}, "packet_weight"},
		{"zero packet price", Product{PacketWeight: 25, PacketPrice: 0}, Usage{Trees: 1, Rate: 1, Frequency: 1}, "packet_price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(tt.product, tt.usage)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			var inputErr *InputError
			if !errors.As(err, &inputErr) {
				t.Fatalf("expected *InputError, got %T", err)
			}
			if inputErr.Field != tt.field {
				t.Fatalf("field = %q, want %q", inputErr.Field, tt.field)
			}
		})
	}
}

func TestCompute_RejectsOverflowingFigures(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		usage   Usage
		field   string
	}{
		{"need overflows", Product{PacketWeight: 25, PacketPrice: 80}, Usage{Trees: 100, Rate: 1e308, Frequency: 4}, "total_annual_need"},
		{"packets overflow", Product{PacketWeight: 1e-300, PacketPrice: 80}, Usage{Trees: 100, Rate: 1e10, Frequency: 4}, "packets_annually"},
		{"packets exceed int range", Product{PacketWeight: 1e-3, PacketPrice: 1}, Usage{Trees: 1, Rate: 1e20, Frequency: 1}, "packets_annually"},
		{"cost overflows", Product{PacketWeight: 1, PacketPrice: 1e300}, Usage{Trees: 1, Rate: 1e10, Frequency: 1}, "total_annual_cost"},
		{"price per kg overflows", Product{PacketWeight: 1e-10, PacketPrice: 1e300}, Usage{Trees: 1, Rate: 1e-20, Frequency: 1}, "price_per_kg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Compute(tt.product, tt.usage)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v (result %+v)", err, result)
			}
			var inputErr *InputError
			if !errors.As(err, &inputErr) || inputErr.Field != tt.field {
				t.Fatalf("expected *InputError on %q, got %v", tt.field, err)
			}
			if result != (Result{}) {
				t.Fatalf("expected zero result, got %+v", result)
			}
		})
	}
}

func TestCompute_PacketsMatchCeiling(t *testing.T) {
	weights := []float64{0.5, 1, 2.5, 10, 25, 50}
	rates := []float64{0.1, 0.25, 0.5, 1, 1.75, 3}
	for _, weight := range weights {
		for _, rate := range rates {
			for trees := 1; trees <= 120; trees += 17 {
				for frequency := 1; frequency <= 6; frequency++ {
					product := Product{PacketWeight: weight, PacketPrice: 42.5}
					usage := Usage{Trees: trees, Rate: rate, Frequency: frequency}

					result, err := Compute(product, usage)
					if err != nil {
						t.Fatalf("unexpected err: %v", err)
					}

					want := int(math.Ceil(float64(trees) * rate * float64(frequency) / weight))
					if result.PacketsAnnually != want {
						t.Fatalf("packets for %+v %+v = %d, want %d", product, usage, result.PacketsAnnually, want)
					}
					if result.PacketsAnnually < 1 {
						t.Fatalf("packets must be positive, got %d", result.PacketsAnnually)
					}
					if result.TotalAnnualCost != float64(result.PacketsAnnually)*product.PacketPrice {
						t.Fatalf("total cost %v is not packets x price", result.TotalAnnualCost)
					}
				}
			}
		}
	}
}

func TestCompute_IsIdempotent(t *testing.T) {
	product, usage := scenarioA()
	product.Nutrients = map[string]float64{"Nitrogen (N)": 15}

	first, err := Compute(product, usage)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	second, err := Compute(product, usage)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if first.TotalAnnualCost != second.TotalAnnualCost || first.PacketsAnnually != second.PacketsAnnually {
		t.Fatalf("results differ: %+v vs %+v", first, second)
	}
	if *first.PricePerKgNutrient != *second.PricePerKgNutrient {
		t.Fatalf("nutrient prices differ: %v vs %v", *first.PricePerKgNutrient, *second.PricePerKgNutrient)
	}
}

func TestCompute_CostIsMonotonic(t *testing.T) {
	product := Product{PacketWeight: 20, PacketPrice: 55}
	base := Usage{Trees: 30, Rate: 0.75, Frequency: 2}

	grow := map[string]func(Usage, int) Usage{
		"trees":     func(u Usage, i int) Usage { u.Trees += i; return u },
		"rate":      func(u Usage, i int) Usage { u.Rate += 0.3 * float64(i); return u },
		"frequency": func(u Usage, i int) Usage { u.Frequency += i; return u },
	}

	for name, next := range grow {
		t.Run(name, func(t *testing.T) {
			prev := -1.0
			for i := 0; i < 40; i++ {
				result, err := Compute(product, next(base, i))
				if err != nil {
					t.Fatalf("unexpected err: %v", err)
				}
				if result.TotalAnnualCost < prev {
					t.Fatalf("cost decreased at step %d: %v < %v", i, result.TotalAnnualCost, prev)
				}
				prev = result.TotalAnnualCost
			}
		})
	}
}

func TestFormatHelpers(t *testing.T) {
	if got := Fixed2(6.4); got != "6.40" {
		t.Fatalf("Fixed2(6.4) = %q", got)
	}
	if got := Fixed2(200); got != "200.00" {
		t.Fatalf("Fixed2(200) = %q", got)
	}
	if got := Money("RM", 12.8); got != "RM 12.80" {
		t.Fatalf("Money = %q", got)
	}
	if got := OptionalMoney("RM", nil); got != NotApplicable {
		t.Fatalf("OptionalMoney(nil) = %q", got)
	}
	if got := Fixed2(math.Inf(1)); got != NotApplicable {
		t.Fatalf("Fixed2(+Inf) = %q", got)
	}
	if got := Money("RM", math.NaN()); got != "RM "+NotApplicable {
		t.Fatalf("Money(NaN) = %q", got)
	}
}
