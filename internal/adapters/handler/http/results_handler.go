package http

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/johnlarkin1/are-you-going-out-tonight/internal/core/ports"
)

type ResultsHandler struct {
	service ports.VoteService
}

func NewResultsHandler(service ports.VoteService) *ResultsHandler {
	return &ResultsHandler{
		service: service,
	}
}

type resultsResponse struct {
	City       string `json:"city"`
	VoteDate   string `json:"vote_date"`
	YesCount   int64  `json:"yes_count"`
	NoCount    int64  `json:"no_count"`
	TotalVotes int64  `json:"total_votes"`
	YesPercent int    `json:"yes_percent"`
	NoPercent  int    `json:"no_percent"`
	UserVoted  bool   `json:"user_voted"`
	UserVote   *bool  `json:"user_vote"`
	ResetsAt   string `json:"resets_at"`
}

// GetResults godoc
// @Summary      Returns the aggregate snapshot for a city
// @Description  Yes/no counts, percentages, the caller's own vote and the next reset instant for the current vote day. There is no historical query.
// @Tags         votes
// @Produce      json
// @Success      200
// @Failure      400
// @Failure      401
// @Router       /results/{city} [get]
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "Missing or invalid credentials")
		return
	}

	city := chi.URLParam(r, "city")
	if unescaped, err := url.PathUnescape(city); err == nil {
		city = unescaped
	}
	if strings.TrimSpace(city) == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "City is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	results, err := h.service.Results(ctx, identity, city)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resultsResponse{
		City:       results.City,
		VoteDate:   results.VoteDay,
		YesCount:   results.Aggregate.YesCount,
		NoCount:    results.Aggregate.NoCount,
		TotalVotes: results.Aggregate.TotalVotes,
		YesPercent: results.YesPercent,
		NoPercent:  results.NoPercent,
		UserVoted:  results.UserVoted,
		UserVote:   results.UserVote,
		ResetsAt:   results.ResetsAt.UTC().Format(time.RFC3339),
	})
}
