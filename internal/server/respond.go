package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

// errorResponse is the envelope for rejected and failed requests
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// clientError rejects a request before any extraction work
func (h *Handler) clientError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Message: message})
}

// serverError reports an internal failure. The raw error is logged;
// it reaches the client only when debug responses are enabled.
func (h *Handler) serverError(w http.ResponseWriter, message string, err error) {
	log.Printf("%s: %v", message, err)

	if h.cfg.IsDebug() && err != nil {
		message = fmt.Sprintf("%s: %v", message, err)
	}
	writeJSON(w, http.StatusInternalServerError, errorResponse{Message: message})
}
