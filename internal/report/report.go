package report

import (
	"github.com/Simplici0/orchard.works/internal/costing"
	"github.com/Simplici0/orchard.works/internal/model"
)

// Row pairs a saved calculation with its catalog entry and derived figures.
type Row struct {
	Calculation model.Calculation
	Fertilizer  model.Fertilizer
	Result      costing.Result
}

// Skipped identifies a calculation left out of a report and why.
type Skipped struct {
	Calculation model.Calculation
	Reason      string
	Err         error
}

const (
	ReasonMissingFertilizer = "missing_fertilizer"
	ReasonInvalidInput      = "invalid_input"
)

// Report is the derived view over a set of saved calculations.
type Report struct {
	Rows    []Row
	Skipped []Skipped
}

// Orphaned counts calculations whose fertilizer is no longer in the catalog.
func (r Report) Orphaned() int {
	return r.count(ReasonMissingFertilizer)
}

// Invalid counts calculations the calculator rejected.
func (r Report) Invalid() int {
	return r.count(ReasonInvalidInput)
}

func (r Report) count(reason string) int {
	n := 0
	for _, s := range r.Skipped {
		if s.Reason == reason {
			n++
		}
	}
	return n
}

// Build derives a row for each calculation, preserving input order. A
// calculation whose fertilizer is absent from entries, or whose inputs the
// calculator rejects, is recorded in Skipped instead.
func Build(entries model.Lookup, calcs []model.Calculation) Report {
	rep := Report{Rows: make([]Row, 0, len(calcs))}
	for _, calc := range calcs {
		fert, ok := entries[calc.FertilizerID]
		if !ok {
			rep.Skipped = append(rep.Skipped, Skipped{Calculation: calc, Reason: ReasonMissingFertilizer})
			continue
		}

		result, err := costing.Compute(fert.Product(), calc.Usage())
		if err != nil {
			rep.Skipped = append(rep.Skipped, Skipped{Calculation: calc, Reason: ReasonInvalidInput, Err: err})
			continue
		}

		rep.Rows = append(rep.Rows, Row{Calculation: calc, Fertilizer: fert, Result: result})
	}
	return rep
}

// Derive computes the row for a single calculation.
func Derive(entries model.Lookup, calc model.Calculation) (Row, bool, error) {
	rep := Build(entries, []model.Calculation{calc})
	if len(rep.Rows) == 1 {
		return rep.Rows[0], true, nil
	}
	skipped := rep.Skipped[0]
	return Row{}, false, skipped.Err
}
