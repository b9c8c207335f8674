package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"gemrelay/internal/metrics"
	"gemrelay/internal/probe"
	"gemrelay/internal/session"
)

type setupRequest struct {
	APIKey    string `json:"apiKey"`
	SessionID string `json:"sessionId"`
}

type setupResponse struct {
	Success bool   `json:"success"`
	Model   string `json:"model"`
	Message string `json:"message"`
}

// Setup validates the supplied credential by probing the candidate
// models and stores the session on success. Re-running setup for an
// existing session id overwrites it.
func Setup(sessions *session.Registry, prober *probe.Prober, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req setupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		if req.APIKey == "" {
			writeError(w, http.StatusBadRequest, "apiKey is required")
			return
		}
		if req.SessionID == "" {
			req.SessionID = session.DefaultID
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		model, err := prober.Probe(ctx, req.APIKey)
		if errors.Is(err, probe.ErrNoWorkingModel) {
			writeError(w, http.StatusBadRequest, "no working model found for this API key")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("setup failed: %v", err))
			return
		}

		sessions.Put(req.SessionID, req.APIKey, model)
		metrics.ActiveSessions.Set(float64(sessions.Count()))
		slog.Info("session configured", "session_id", req.SessionID, "model", model)

		writeJSON(w, setupResponse{
			Success: true,
			Model:   model,
			Message: "Setup complete. Using model: " + model,
		})
	}
}
