package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	custommiddleware "github.com/mmeshcher/billed/internal/middleware"
	"github.com/mmeshcher/billed/internal/routes"
)

// SetupRouter настраивает HTTP-маршруты и middleware сервиса.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommiddleware.GzipMiddleware)
	r.Use(custommiddleware.Logger(h.logger))

	r.Get("/healthz", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Get(routes.Login, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, routes.Bills, http.StatusSeeOther)
	})

	r.Group(func(r chi.Router) {
		r.Use(h.authMiddleware.Middleware)

		r.Get(routes.Bills, h.Bills)
		r.Post(routes.NewBillClick, h.ClickNewBill)
		r.Get(routes.NewBill, h.NewBill)

		r.Get(routes.ExportXLSX, h.ExportXLSX)
		r.Get(routes.ExportPDF, h.ExportPDF)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}
