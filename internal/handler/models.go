package handler

import (
	"net/http"

	"gemrelay/internal/prompt"
)

type modelsResponse struct {
	Models          []string `json:"models"`
	Tones           []string `json:"tones"`
	ResponseLengths []int    `json:"responseLengths"`
}

// Models exposes the candidate model list and the recognized style
// options so a client UI can populate its controls.
func Models(candidates []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, modelsResponse{
			Models:          candidates,
			Tones:           prompt.Tones(),
			ResponseLengths: prompt.Levels(),
		})
	}
}
