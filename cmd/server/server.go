package main

import (
	"context"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/Simplici0/orchard.works/internal/i18n"
	"github.com/Simplici0/orchard.works/internal/logging"
	"github.com/Simplici0/orchard.works/internal/metrics"
	"github.com/Simplici0/orchard.works/internal/model"
	"github.com/Simplici0/orchard.works/internal/report"
	"github.com/Simplici0/orchard.works/internal/store"
	"github.com/Simplici0/orchard.works/web"
)

type server struct {
	catalog     store.CatalogStore
	calcs       store.CalculationStore
	metrics     *metrics.Collector
	currency    string
	defaultLang language.Tag
}

type ctxKey int

const translatorKey ctxKey = iota

func (s *server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(logging.RequestLogger)
	r.Use(s.metrics.Middleware)
	r.Use(s.languageMiddleware)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.Static()))))
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", s.metrics.Handler())

	r.Get("/", s.handleHome)
	r.Get("/admin/fertilizers", s.handleAdminFertilizersForm)
	r.Post("/admin/fertilizers", s.handleAdminFertilizersCreate)
	r.Get("/calculations/new", s.handleCalculationNew)
	r.Post("/calculations", s.handleCalculationCreate)
	r.Get("/calculations/export.csv", s.handleCalculationsExport)
	r.Get("/calculations/{id}/edit", s.handleCalculationEdit)
	r.Post("/calculations/{id}", s.handleCalculationUpdate)
	r.Post("/calculations/{id}/delete", s.handleCalculationDelete)

	r.Route("/api", func(r chi.Router) {
		r.Get("/fertilizers", s.apiListFertilizers)
		r.Post("/fertilizers", s.apiCreateFertilizer)
		r.Get("/fertilizers/{id}", s.apiGetFertilizer)
		r.Get("/calculations", s.apiListCalculations)
		r.Post("/calculations", s.apiCreateCalculation)
		r.Get("/calculations/{id}", s.apiGetCalculation)
		r.Put("/calculations/{id}", s.apiUpdateCalculation)
		r.Delete("/calculations/{id}", s.apiDeleteCalculation)
	})

	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// languageMiddleware resolves the UI language and remembers an explicit
// ?lang= choice in a cookie.
func (s *server) languageMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tr := i18n.New(i18n.FromRequest(r, s.defaultLang))
		if r.URL.Query().Get("lang") != "" {
			http.SetCookie(w, &http.Cookie{
				Name:     i18n.CookieName,
				Value:    tr.Code(),
				Path:     "/",
				MaxAge:   365 * 24 * 60 * 60,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx := context.WithValue(r.Context(), translatorKey, tr)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func translatorFrom(r *http.Request, fallback language.Tag) i18n.Translator {
	if tr, ok := r.Context().Value(translatorKey).(i18n.Translator); ok {
		return tr
	}
	return i18n.New(fallback)
}

// loadReport reads a catalog snapshot and every calculation, then derives
// the rows to display. Skipped calculations are logged and counted.
func (s *server) loadReport(ctx context.Context) ([]model.Fertilizer, report.Report, error) {
	entries, err := s.catalog.List(ctx)
	if err != nil {
		return nil, report.Report{}, err
	}
	calcs, err := s.calcs.List(ctx)
	if err != nil {
		return nil, report.Report{}, err
	}

	rep := report.Build(model.NewLookup(entries), calcs)
	s.recordReport(rep)
	return entries, rep, nil
}

func (s *server) recordReport(rep report.Report) {
	s.metrics.RecordDerived(len(rep.Rows))
	for _, skipped := range rep.Skipped {
		s.metrics.RecordSkipped(skipped.Reason)
		zap.L().Warn("calculation skipped",
			zap.Int64("calculation_id", skipped.Calculation.ID),
			zap.Int64("fertilizer_id", skipped.Calculation.FertilizerID),
			zap.String("reason", skipped.Reason),
			zap.Error(skipped.Err),
		)
	}
}

func (s *server) renderTemplate(w http.ResponseWriter, r *http.Request, page string, data any) {
	tr := translatorFrom(r, s.defaultLang)
	templates, err := template.New("layout.html").Funcs(template.FuncMap{
		"t": tr.T,
	}).ParseFS(web.Templates(), "layout.html", page)
	if err != nil {
		zap.L().Error("failed to parse template", zap.String("page", page), zap.Error(err))
		http.Error(w, "failed to parse template", http.StatusInternalServerError)
		return
	}

	var buf strings.Builder
	if err := templates.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		zap.L().Error("failed to render template", zap.String("page", page), zap.Error(err))
		http.Error(w, "failed to render template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(buf.String()))
}
