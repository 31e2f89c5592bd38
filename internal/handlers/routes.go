package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Werneck0live/painel-contabil/internal/logging"
)

// NewRouter monta as rotas da API.
func NewRouter(h *CompanyHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.AccessLog)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.Health)
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		r.HandleFunc("/companies", h.Companies)
		r.Post("/companies/import", h.Import)
		r.Post("/companies/import/preview", h.ImportPreview)
		r.Get("/companies/export.csv", h.ExportCSV)
		r.HandleFunc("/companies/{id}", h.CompanyByID)

		r.Get("/dashboard", h.Dashboard)
		r.Get("/reports/financial", h.Financial)
		r.Get("/reports/financial.xlsx", h.FinancialXLSX)
	})
	return r
}
