package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/Simplici0/orchard.works/internal/costing"
	"github.com/Simplici0/orchard.works/internal/model"
	"github.com/Simplici0/orchard.works/internal/report"
	"github.com/Simplici0/orchard.works/internal/store"
)

// calculationPayload is a saved calculation together with its derived figures.
// Result is null when the fertilizer is gone or the inputs cannot be costed.
type calculationPayload struct {
	model.Calculation
	Brand             string          `json:"brand,omitempty"`
	FertilizerMissing bool            `json:"fertilizer_missing"`
	Result            *costing.Result `json:"result"`
}

type calculationRequest struct {
	FertilizerID int64   `json:"fertilizer_id"`
	Name         string  `json:"calculation_name"`
	Trees        int     `json:"trees"`
	Rate         float64 `json:"rate"`
	Frequency    int     `json:"frequency"`
}

func (req calculationRequest) fields() model.CalculationFields {
	return model.CalculationFields{
		FertilizerID: req.FertilizerID,
		Name:         req.Name,
		Trees:        req.Trees,
		Rate:         req.Rate,
		Frequency:    req.Frequency,
	}
}

// writeJSON encodes v before writing the status, so an unencodable value
// becomes a 500 instead of a success status with an empty body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		zap.L().Error("failed to encode json response", zap.Int("status", status), zap.Error(err))
		status = http.StatusInternalServerError
		body = []byte(`{"error":"encode_failed"}`)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func writeJSONError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// writeStoreError maps store and validation failures onto a status and code.
func writeStoreError(w http.ResponseWriter, err error, failure string) {
	var fieldErr *model.FieldError
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, store.ErrUnknownFertilizer):
		writeJSONError(w, http.StatusUnprocessableEntity, "unknown_fertilizer")
	case errors.As(err, &fieldErr):
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":   "validation_failed",
			"field":   fieldErr.Field,
			"message": fieldErr.Message,
		})
	default:
		zap.L().Error(failure, zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, failure)
	}
}

func (s *server) apiListFertilizers(w http.ResponseWriter, r *http.Request) {
	entries, err := s.catalog.List(r.Context())
	if err != nil {
		writeStoreError(w, err, "list_failed")
		return
	}
	if entries == nil {
		entries = []model.Fertilizer{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"fertilizers": entries})
}

func (s *server) apiGetFertilizer(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid_id")
		return
	}

	fert, err := s.catalog.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "get_failed")
		return
	}
	writeJSON(w, http.StatusOK, fert)
}

func (s *server) apiCreateFertilizer(w http.ResponseWriter, r *http.Request) {
	var req model.NewFertilizer
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	id, err := s.catalog.Create(r.Context(), req)
	if err != nil {
		writeStoreError(w, err, "create_failed")
		return
	}

	fert, err := s.catalog.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "create_failed")
		return
	}
	writeJSON(w, http.StatusCreated, fert)
}

func (s *server) apiListCalculations(w http.ResponseWriter, r *http.Request) {
	entries, err := s.catalog.List(r.Context())
	if err != nil {
		writeStoreError(w, err, "list_failed")
		return
	}
	calcs, err := s.calcs.List(r.Context())
	if err != nil {
		writeStoreError(w, err, "list_failed")
		return
	}

	lookup := model.NewLookup(entries)
	rep := report.Build(lookup, calcs)
	s.recordReport(rep)

	writeJSON(w, http.StatusOK, map[string]any{"calculations": reportPayloads(lookup, calcs, rep)})
}

// reportPayloads lists every calculation in calcs order using the figures
// already derived in rep.
func reportPayloads(lookup model.Lookup, calcs []model.Calculation, rep report.Report) []calculationPayload {
	derived := make(map[int64]report.Row, len(rep.Rows))
	for _, row := range rep.Rows {
		derived[row.Calculation.ID] = row
	}

	payloads := make([]calculationPayload, 0, len(calcs))
	for _, calc := range calcs {
		payload := calculationPayload{Calculation: calc}
		if row, ok := derived[calc.ID]; ok {
			payload.Brand = row.Fertilizer.Brand
			payload.Result = &row.Result
		} else if fert, ok := lookup[calc.FertilizerID]; ok {
			payload.Brand = fert.Brand
		} else {
			payload.FertilizerMissing = true
		}
		payloads = append(payloads, payload)
	}
	return payloads
}

func (s *server) apiGetCalculation(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid_id")
		return
	}

	payload, err := s.loadCalculationPayload(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "get_failed")
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *server) apiCreateCalculation(w http.ResponseWriter, r *http.Request) {
	var req calculationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	id, err := s.calcs.Create(r.Context(), req.fields())
	if err != nil {
		writeStoreError(w, err, "create_failed")
		return
	}

	payload, err := s.loadCalculationPayload(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "create_failed")
		return
	}
	writeJSON(w, http.StatusCreated, payload)
}

func (s *server) apiUpdateCalculation(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid_id")
		return
	}

	var req calculationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	if err := s.calcs.Update(r.Context(), id, req.fields()); err != nil {
		writeStoreError(w, err, "update_failed")
		return
	}

	payload, err := s.loadCalculationPayload(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "update_failed")
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *server) apiDeleteCalculation(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid_id")
		return
	}

	if err := s.calcs.Delete(r.Context(), id); err != nil {
		writeStoreError(w, err, "delete_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) loadCalculationPayload(ctx context.Context, id int64) (calculationPayload, error) {
	calc, err := s.calcs.Get(ctx, id)
	if err != nil {
		return calculationPayload{}, err
	}

	lookup := model.Lookup{}
	fert, err := s.catalog.Get(ctx, calc.FertilizerID)
	switch {
	case err == nil:
		lookup[fert.ID] = fert
	case !errors.Is(err, store.ErrNotFound):
		return calculationPayload{}, err
	}

	payload := calculationPayload{Calculation: calc}
	row, ok, err := report.Derive(lookup, calc)
	switch {
	case ok:
		payload.Brand = row.Fertilizer.Brand
		payload.Result = &row.Result
	case err == nil:
		payload.FertilizerMissing = true
	default:
		payload.Brand = fert.Brand
	}
	return payload, nil
}
