package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MountRoutes registers all API routes on the given chi router.
func MountRoutes(r chi.Router, h *Handlers) {
	r.Route("/api/v1", func(r chi.Router) {
		// Version
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"version":"0.1.0"}`))
		})

		// Agents
		r.Post("/agents", h.RegisterAgent)
		r.Get("/agents/{id}", h.GetAgent)
		r.Put("/agents/{id}/abilities/{dimension}", h.UpdateAbility)
		r.Post("/agents/{id}/badges/{badge}", h.AwardBadge)

		// Advisory projections
		r.Get("/agents/{id}/suggestions", h.GetSuggestions)
		r.Get("/agents/{id}/analysis", h.GetAnalysis)
		r.Get("/agents/{id}/goals", h.GetGoals)

		// Tasks
		r.Post("/tasks", h.CreateTask)
		r.Get("/tasks/{id}", h.GetTask)
		r.Post("/tasks/{id}/accept", h.AcceptTask)
		r.Post("/tasks/{id}/complete", h.CompleteTask)
		r.Get("/tasks/{id}/recommendations", h.RecommendAgents)

		// Reviews
		r.Post("/reviews", h.SubmitReview)

		// Read side
		r.Get("/leaderboard", h.GetLeaderboard)
		r.Get("/stats", h.GetStats)
		r.Get("/export", h.ExportState)
		r.Get("/badges", h.ListBadges)
		r.Get("/dimensions", h.ListDimensions)
	})
}
