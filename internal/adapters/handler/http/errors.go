package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/johnlarkin1/are-you-going-out-tonight/internal/core/domain"
)

// Machine-readable error codes the client branches on.
const (
	codeBadRequest   = "BAD_REQUEST"
	codeUnauthorized = "UNAUTHORIZED"
	codeAlreadyVoted = "ALREADY_VOTED"
	codeNetworkError = "NETWORK_ERROR"
	codeUnknown      = "UNKNOWN"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: message, Code: code})
}

// writeServiceError translates service and storage failures into the wire
// taxonomy. Raw storage errors never reach the client.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCity):
		writeError(w, http.StatusBadRequest, codeBadRequest, "City is required")
	case errors.Is(err, domain.ErrInvalidIdentity):
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "Missing or invalid identity")
	case errors.Is(err, domain.ErrAlreadyVoted):
		writeError(w, http.StatusConflict, codeAlreadyVoted, "Already voted today")
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, codeNetworkError, "Request timed out")
	default:
		log.Printf("unexpected error: %v", err)
		writeError(w, http.StatusInternalServerError, codeUnknown, "Internal server error")
	}
}
