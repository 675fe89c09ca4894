package main

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/orchard.works/internal/model"
)

const nutrientFieldPrefix = "nutrient:"

// formError is a submitted value that could not be parsed.
type formError struct {
	msg string
}

func (e *formError) Error() string { return e.msg }

func formErrorf(format string, args ...any) error {
	return &formError{msg: fmt.Sprintf(format, args...)}
}

func parsePositiveFloat(raw, field string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, formErrorf("%s must be numeric", field)
	}
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, formErrorf("%s must be a finite number", field)
	}
	if !(value > 0) {
		return 0, formErrorf("%s must be greater than 0", field)
	}
	return value, nil
}

func parsePositiveInt(raw, field string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, formErrorf("%s must be a whole number", field)
	}
	if value <= 0 {
		return 0, formErrorf("%s must be greater than 0", field)
	}
	return value, nil
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func urlID(r *http.Request) (int64, bool) {
	return parseID(chi.URLParam(r, "id"))
}

// parseFertilizerForm reads the admin form. Nutrient inputs that are blank,
// non-numeric, or not above zero are left out, matching an unfilled field.
func parseFertilizerForm(r *http.Request) (model.NewFertilizer, error) {
	in := model.NewFertilizer{
		Brand:     strings.TrimSpace(r.FormValue("brand")),
		Nutrients: map[string]float64{},
	}
	if in.Brand == "" {
		return in, formErrorf("brand is required")
	}

	var err error
	if in.PacketWeight, err = parsePositiveFloat(r.FormValue("packet_weight"), "packet_weight"); err != nil {
		return in, err
	}
	if in.PacketPrice, err = parsePositiveFloat(r.FormValue("packet_price"), "packet_price"); err != nil {
		return in, err
	}

	for _, name := range model.Nutrients {
		raw := strings.TrimSpace(r.FormValue(nutrientFieldPrefix + name))
		if raw == "" {
			continue
		}
		pct, err := strconv.ParseFloat(raw, 64)
		if err != nil || !(pct > 0) {
			continue
		}
		in.Nutrients[name] = pct
	}

	return in, nil
}

func parseCalculationForm(r *http.Request) (model.CalculationFields, error) {
	fields := model.CalculationFields{
		Name: strings.TrimSpace(r.FormValue("calculation_name")),
	}

	id, ok := parseID(r.FormValue("fertilizer_id"))
	if !ok {
		return fields, formErrorf("fertilizer_id is invalid")
	}
	fields.FertilizerID = id

	var err error
	if fields.Trees, err = parsePositiveInt(r.FormValue("trees"), "trees"); err != nil {
		return fields, err
	}
	if fields.Rate, err = parsePositiveFloat(r.FormValue("rate"), "rate"); err != nil {
		return fields, err
	}
	if fields.Frequency, err = parsePositiveInt(r.FormValue("frequency"), "frequency"); err != nil {
		return fields, err
	}

	return fields, nil
}
