package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gocarina/gocsv"

	"github.com/Simplici0/orchard.works/internal/costing"
)

type csvRecord struct {
	ID                 int64  `csv:"id"`
	Name               string `csv:"calculation_name"`
	Brand              string `csv:"brand"`
	Trees              int    `csv:"trees"`
	Rate               string `csv:"rate_kg"`
	Frequency          int    `csv:"applications_per_year"`
	TotalAnnualNeed    string `csv:"total_need_kg"`
	PacketsAnnually    int    `csv:"packets_per_year"`
	TotalAnnualCost    string `csv:"total_annual_cost"`
	AnnualCostPerTree  string `csv:"annual_cost_per_tree"`
	PricePerKg         string `csv:"price_per_kg"`
	PricePerKgNutrient string `csv:"price_per_kg_nutrient"`
	CreatedAt          string `csv:"created_at"`
}

// WriteCSV writes rows as CSV with a header line. Monetary and weight
// figures use two decimals; an absent nutrient price is written as N/A.
func WriteCSV(w io.Writer, rows []Row) error {
	records := make([]csvRecord, 0, len(rows))
	for _, row := range rows {
		nutrientPrice := costing.NotApplicable
		if row.Result.PricePerKgNutrient != nil {
			nutrientPrice = costing.Fixed2(*row.Result.PricePerKgNutrient)
		}

		records = append(records, csvRecord{
			ID:                 row.Calculation.ID,
			Name:               row.Calculation.Name,
			Brand:              row.Fertilizer.Brand,
			Trees:              row.Calculation.Trees,
			Rate:               strconv.FormatFloat(row.Calculation.Rate, 'f', -1, 64),
			Frequency:          row.Calculation.Frequency,
			TotalAnnualNeed:    costing.Fixed2(row.Result.TotalAnnualNeed),
			PacketsAnnually:    row.Result.PacketsAnnually,
			TotalAnnualCost:    costing.Fixed2(row.Result.TotalAnnualCost),
			AnnualCostPerTree:  costing.Fixed2(row.Result.AnnualCostPerTree),
			PricePerKg:         costing.Fixed2(row.Result.PricePerKg),
			PricePerKgNutrient: nutrientPrice,
			CreatedAt:          row.Calculation.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		})
	}

	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("marshal calculations csv: %w", err)
	}
	return nil
}
