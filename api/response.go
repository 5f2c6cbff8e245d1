// Package api exposes the REST surface over the story, user, and leaderboard
// services.
package api

import (
	"encoding/json"
	"net/http"
)

// APIResponse is the envelope every JSON endpoint writes.
type APIResponse struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data,omitempty"`
	Message    string `json:"message,omitempty"`
	Success    bool   `json:"success"`
}

// Pagination annotates list responses.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Count int `json:"count"`
}

// PagedData wraps a list plus its pagination block.
type PagedData struct {
	Items      any        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

func respond(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(APIResponse{
		StatusCode: status,
		Data:       data,
		Success:    status < http.StatusBadRequest,
	})
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(APIResponse{
		StatusCode: status,
		Message:    message,
		Success:    false,
	})
}
