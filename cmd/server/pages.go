package main

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Simplici0/orchard.works/internal/costing"
	"github.com/Simplici0/orchard.works/internal/i18n"
	"github.com/Simplici0/orchard.works/internal/model"
	"github.com/Simplici0/orchard.works/internal/report"
	"github.com/Simplici0/orchard.works/internal/store"
)

// successMessages maps ?success= codes to the message shown after a redirect.
var successMessages = map[string]string{
	"fertilizer_saved":    "Fertilizer saved to master list!",
	"calculation_saved":   "Calculation saved.",
	"calculation_deleted": "Calculation deleted.",
}

type baseViewData struct {
	Lang           string
	Currency       string
	ErrorMessage   string
	SuccessMessage string
}

type fertilizerView struct {
	ID           int64
	Brand        string
	PacketWeight string
	PacketPrice  string
	Nutrients    string
}

type calculationView struct {
	ID                 int64
	Name               string
	Brand              string
	Trees              int
	Rate               string
	Frequency          int
	TotalAnnualNeed    string
	PacketsAnnually    int
	TotalAnnualCost    string
	AnnualCostPerTree  string
	PricePerKg         string
	PricePerKgNutrient string
}

type homeViewData struct {
	baseViewData
	Fertilizers  []fertilizerView
	Calculations []calculationView
	Hidden       int
	Invalid      int
}

type adminFertilizersViewData struct {
	baseViewData
	Nutrients []string
}

type calculationFormViewData struct {
	baseViewData
	Title        string
	Action       string
	FertilizerID int64
	Fields       model.CalculationFields
}

func (s *server) baseView(r *http.Request) baseViewData {
	tr := translatorFrom(r, s.defaultLang)
	data := baseViewData{
		Lang:         tr.Code(),
		Currency:     s.currency,
		ErrorMessage: r.URL.Query().Get("error"),
	}
	if key, ok := successMessages[r.URL.Query().Get("success")]; ok {
		data.SuccessMessage = tr.T(key)
	}
	return data
}

func (s *server) handleHome(w http.ResponseWriter, r *http.Request) {
	entries, rep, err := s.loadReport(r.Context())
	if err != nil {
		zap.L().Error("failed to load calculations", zap.Error(err))
		http.Error(w, "failed to load calculations", http.StatusInternalServerError)
		return
	}

	tr := translatorFrom(r, s.defaultLang)
	s.renderTemplate(w, r, "home.html", homeViewData{
		baseViewData: s.baseView(r),
		Fertilizers:  fertilizerViews(entries),
		Calculations: calculationViews(tr, s.currency, rep.Rows),
		Hidden:       rep.Orphaned(),
		Invalid:      rep.Invalid(),
	})
}

func fertilizerViews(entries []model.Fertilizer) []fertilizerView {
	views := make([]fertilizerView, 0, len(entries))
	for _, e := range entries {
		views = append(views, fertilizerView{
			ID:           e.ID,
			Brand:        e.Brand,
			PacketWeight: strconv.FormatFloat(e.PacketWeight, 'f', -1, 64),
			PacketPrice:  costing.Fixed2(e.PacketPrice),
			Nutrients:    strings.Join(e.NutrientNames(), ", "),
		})
	}
	return views
}

func calculationViews(tr i18n.Translator, currency string, rows []report.Row) []calculationView {
	views := make([]calculationView, 0, len(rows))
	for _, row := range rows {
		name := row.Calculation.Name
		if name == "" {
			name = tr.T("Untitled Calculation")
		}

		nutrientPrice := ""
		if row.Result.PricePerKgNutrient != nil {
			nutrientPrice = costing.Money(currency, *row.Result.PricePerKgNutrient)
		}

		views = append(views, calculationView{
			ID:                 row.Calculation.ID,
			Name:               name,
			Brand:              row.Fertilizer.Brand,
			Trees:              row.Calculation.Trees,
			Rate:               strconv.FormatFloat(row.Calculation.Rate, 'f', -1, 64),
			Frequency:          row.Calculation.Frequency,
			TotalAnnualNeed:    costing.Fixed2(row.Result.TotalAnnualNeed),
			PacketsAnnually:    row.Result.PacketsAnnually,
			TotalAnnualCost:    costing.Money(currency, row.Result.TotalAnnualCost),
			AnnualCostPerTree:  costing.Money(currency, row.Result.AnnualCostPerTree),
			PricePerKg:         costing.Money(currency, row.Result.PricePerKg),
			PricePerKgNutrient: nutrientPrice,
		})
	}
	return views
}

func (s *server) handleAdminFertilizersForm(w http.ResponseWriter, r *http.Request) {
	s.renderTemplate(w, r, "admin_fertilizers.html", adminFertilizersViewData{
		baseViewData: s.baseView(r),
		Nutrients:    model.Nutrients,
	})
}

func (s *server) handleAdminFertilizersCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	tr := translatorFrom(r, s.defaultLang)

	in, err := parseFertilizerForm(r)
	if err == nil {
		_, err = s.catalog.Create(r.Context(), in)
	}
	if err != nil {
		if isUserError(err) {
			http.Redirect(w, r, "/admin/fertilizers?error="+url.QueryEscape(tr.T("Error saving fertilizer: %s", err.Error())), http.StatusSeeOther)
			return
		}
		zap.L().Error("failed to create fertilizer", zap.Error(err))
		http.Error(w, "failed to create fertilizer", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/?success=fertilizer_saved", http.StatusSeeOther)
}

func (s *server) handleCalculationNew(w http.ResponseWriter, r *http.Request) {
	fertID, ok := parseID(r.URL.Query().Get("fertilizer_id"))
	if !ok {
		http.Error(w, "invalid fertilizer id", http.StatusBadRequest)
		return
	}

	fert, err := s.catalog.Get(r.Context(), fertID)
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		zap.L().Error("failed to load fertilizer", zap.Int64("fertilizer_id", fertID), zap.Error(err))
		http.Error(w, "failed to load fertilizer", http.StatusInternalServerError)
		return
	}

	tr := translatorFrom(r, s.defaultLang)
	s.renderTemplate(w, r, "calculation_form.html", calculationFormViewData{
		baseViewData: s.baseView(r),
		Title:        tr.T("New Calculation with %s", fert.Brand),
		Action:       "/calculations",
		FertilizerID: fert.ID,
	})
}

func (s *server) handleCalculationEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		http.Error(w, "invalid calculation id", http.StatusBadRequest)
		return
	}

	calc, err := s.calcs.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		zap.L().Error("failed to load calculation", zap.Int64("calculation_id", id), zap.Error(err))
		http.Error(w, "failed to load calculation", http.StatusInternalServerError)
		return
	}

	tr := translatorFrom(r, s.defaultLang)
	name := calc.Name
	if name == "" {
		name = tr.T("Untitled Calculation")
	}
	s.renderTemplate(w, r, "calculation_form.html", calculationFormViewData{
		baseViewData: s.baseView(r),
		Title:        tr.T("Editing: %s", name),
		Action:       "/calculations/" + strconv.FormatInt(calc.ID, 10),
		FertilizerID: calc.FertilizerID,
		Fields:       calc.Fields(),
	})
}

func (s *server) handleCalculationCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	tr := translatorFrom(r, s.defaultLang)
	back := "/calculations/new?fertilizer_id=" + url.QueryEscape(r.FormValue("fertilizer_id"))

	fields, err := parseCalculationForm(r)
	if err == nil {
		_, err = s.calcs.Create(r.Context(), fields)
	}
	if err != nil {
		s.redirectCalculationError(w, r, tr, back, err)
		return
	}

	http.Redirect(w, r, "/?success=calculation_saved", http.StatusSeeOther)
}

func (s *server) handleCalculationUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		http.Error(w, "invalid calculation id", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	tr := translatorFrom(r, s.defaultLang)
	back := "/calculations/" + strconv.FormatInt(id, 10) + "/edit"

	fields, err := parseCalculationForm(r)
	if err == nil {
		err = s.calcs.Update(r.Context(), id, fields)
	}
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.redirectCalculationError(w, r, tr, back, err)
		return
	}

	http.Redirect(w, r, "/?success=calculation_saved", http.StatusSeeOther)
}

func (s *server) redirectCalculationError(w http.ResponseWriter, r *http.Request, tr i18n.Translator, back string, err error) {
	if !isUserError(err) {
		zap.L().Error("failed to save calculation", zap.Error(err))
		http.Error(w, "failed to save calculation", http.StatusInternalServerError)
		return
	}
	sep := "?"
	if strings.Contains(back, "?") {
		sep = "&"
	}
	http.Redirect(w, r, back+sep+"error="+url.QueryEscape(tr.T("Error saving calculation: %s", err.Error())), http.StatusSeeOther)
}

func (s *server) handleCalculationDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		http.Error(w, "invalid calculation id", http.StatusBadRequest)
		return
	}

	err := s.calcs.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		zap.L().Error("failed to delete calculation", zap.Int64("calculation_id", id), zap.Error(err))
		http.Error(w, "failed to delete calculation", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/?success=calculation_deleted", http.StatusSeeOther)
}

func (s *server) handleCalculationsExport(w http.ResponseWriter, r *http.Request) {
	_, rep, err := s.loadReport(r.Context())
	if err != nil {
		zap.L().Error("failed to load calculations", zap.Error(err))
		http.Error(w, "failed to load calculations", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="calculations.csv"`)
	if err := report.WriteCSV(w, rep.Rows); err != nil {
		zap.L().Error("failed to write calculations csv", zap.Error(err))
	}
}

// isUserError reports whether err stems from what the user submitted rather
// than from the database.
func isUserError(err error) bool {
	var formErr *formError
	return errors.As(err, &formErr) ||
		errors.Is(err, model.ErrValidation) ||
		errors.Is(err, store.ErrUnknownFertilizer)
}
