package handler

import (
	"net/http"

	"gemrelay/internal/session"
)

type statusResponse struct {
	Status         string `json:"status"`
	ActiveSessions int    `json:"activeSessions"`
}

// Status reports liveness and the number of configured sessions.
func Status(sessions *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, statusResponse{
			Status:         "Server is running",
			ActiveSessions: sessions.Count(),
		})
	}
}
