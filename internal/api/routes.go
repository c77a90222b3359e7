package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

func SetupRoutes(handler *Handler, requestsPerMinute int) *chi.Mux {
	r := chi.NewRouter()

	// Setup middleware
	for _, middleware := range SetupMiddleware() {
		r.Use(middleware)
	}

	// JSON content type
	r.Use(render.SetContentType(render.ContentTypeJSON))

	// Health check endpoint
	r.Get("/health", handler.HealthCheck)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/random", func(r chi.Router) {
			r.Get("/between", handler.RandomBetween)
			r.Get("/round", handler.RandomRound)
			r.Get("/percentage", handler.RandomPercentage)
			r.Get("/bool", handler.RandomBool)
		})

		r.Post("/ranges/select", handler.SelectRange)

		r.Route("/tables", func(r chi.Router) {
			r.Get("/", handler.ListTables)
			r.Post("/", handler.CreateTable)

			r.Route("/{tableId}", func(r chi.Router) {
				r.Get("/", handler.GetTable)
				r.Delete("/", handler.DeleteTable)
				r.Get("/rolls", handler.GetRolls)
				r.Get("/stats", handler.GetStats)

				// Rolls write to the log, so they are throttled
				r.With(RateLimitMiddleware(requestsPerMinute)).Post("/roll", handler.RollTable)
			})
		})
	})

	return r
}
