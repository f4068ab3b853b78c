package http

import "net/http"

type healthResponse struct {
	Status string `json:"status"`
}

// HealthCheck requires no auth.
func HealthCheck(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}
