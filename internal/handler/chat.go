package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"gemrelay/internal/metrics"
	"gemrelay/internal/prompt"
	"gemrelay/internal/provider"
	"gemrelay/internal/session"
)

// Fixed sampling parameters for every generation call.
const (
	topP float32 = 0.8
	topK float32 = 40
)

const defaultTemperature = 0.5

type chatRequest struct {
	Message        string  `json:"message"`
	CustomPrompt   string  `json:"customPrompt"`
	ResponseLength int     `json:"responseLength"`
	Tone           string  `json:"tone"`
	Temperature    float64 `json:"temperature"`
	SessionID      string  `json:"sessionId"`
}

type chatResponse struct {
	Response  string `json:"response"`
	ModelUsed string `json:"modelUsed"`
}

// Chat forwards one completion request to the provider using the
// session's stored credential and model. Zero-valued style fields fall
// back to their defaults.
func Chat(sessions *session.Registry, p provider.Provider, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		if req.Message == "" {
			writeError(w, http.StatusBadRequest, "message is required")
			return
		}
		if req.SessionID == "" {
			req.SessionID = session.DefaultID
		}
		if req.Tone == "" {
			req.Tone = prompt.DefaultTone
		}
		if req.ResponseLength == 0 {
			req.ResponseLength = prompt.DefaultLength
		}
		if req.Temperature == 0 {
			req.Temperature = defaultTemperature
		}

		sess, ok := sessions.Get(req.SessionID)
		if !ok {
			writeError(w, http.StatusBadRequest, "session not set up. Call /api/setup first")
			return
		}

		instruction, err := prompt.Build(req.CustomPrompt, req.Tone, req.ResponseLength)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		params := provider.Params{
			SystemInstruction: instruction,
			Temperature:       provider.Ptr(float32(req.Temperature)),
			TopP:              provider.Ptr(topP),
			TopK:              provider.Ptr(topK),
			MaxOutputTokens:   prompt.MaxOutputTokens(req.ResponseLength),
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		start := time.Now()
		text, err := p.Generate(ctx, sess.APIKey, sess.Model, req.Message, params)
		metrics.ChatDuration.WithLabelValues(sess.Model).Observe(time.Since(start).Seconds())

		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("generation failed: %v", err))
			return
		}

		writeJSON(w, chatResponse{
			Response:  text,
			ModelUsed: sess.Model,
		})
	}
}
