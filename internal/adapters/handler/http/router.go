package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/johnlarkin1/are-you-going-out-tonight/internal/core/ports"
)

func NewHandler(voteHandler *VoteHandler, resultsHandler *ResultsHandler, resolver ports.IdentityResolver) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(CORS)

	routes := func(r chi.Router) {
		r.Get("/health", HealthCheck)

		r.Group(func(r chi.Router) {
			r.Use(Authenticator(resolver))
			r.Post("/vote", voteHandler.SubmitVote)
			r.Get("/results/{city}", resultsHandler.GetResults)
		})
	}

	// The mobile client calls /api/*; the bare paths stay for curl and probes.
	routes(r)
	r.Route("/api", routes)

	return r
}
