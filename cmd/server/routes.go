package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// routes sets up the HTTP router for the template studio API.
func (app *application) routes() http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// --- Handlers ---
	r.Get("/api/kinds", app.listKindsHandler)
	r.Get("/api/fields", app.listFieldsHandler)
	r.Get("/api/fields/{fieldID}", app.getFieldHandler)

	r.Route("/api/{kind}/templates", func(r chi.Router) {
		r.Get("/", app.listTemplatesHandler)
		r.Get("/{templateID}", app.getTemplateHandler)
		r.Post("/new", app.newTemplateHandler)
		r.Post("/save", app.saveTemplateHandler)
		r.Post("/reorder", app.reorderTemplateHandler)
		r.Post("/preset", app.applyPresetHandler)
		r.Post("/preview", app.previewTemplateHandler)
		r.Post("/{templateID}/active", app.setActiveHandler)
	})

	return r
}
