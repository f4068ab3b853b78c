package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/johnlarkin1/are-you-going-out-tonight/internal/core/ports"
)

// storeTimeout bounds every storage round trip made on behalf of a request.
const storeTimeout = 5 * time.Second

type VoteHandler struct {
	service ports.VoteService
}

func NewVoteHandler(service ports.VoteService) *VoteHandler {
	return &VoteHandler{
		service: service,
	}
}

type voteRequest struct {
	City string `json:"city"`
	// Pointer so a missing or non-boolean value is distinguishable from false.
	Vote *bool `json:"vote"`
}

type voteResponse struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id"`
}

// SubmitVote godoc
// @Summary      Casts the caller's vote for a city
// @Description  Records one yes/no vote per caller per city per vote day. A second submission for the same day is rejected with ALREADY_VOTED.
// @Tags         votes
// @Accept       json
// @Success      201
// @Failure      400
// @Failure      401
// @Failure      409
// @Router       /vote [post]
func (h *VoteHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "Missing or invalid credentials")
		return
	}

	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid JSON")
		return
	}

	// Validate before touching storage.
	if strings.TrimSpace(req.City) == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "City is required")
		return
	}
	if req.Vote == nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Vote must be a boolean")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	id, err := h.service.Submit(ctx, ports.SubmitInput{
		Identity: identity,
		City:     req.City,
		Choice:   *req.Vote,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, voteResponse{Success: true, ID: id})
}
