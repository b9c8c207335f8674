package probe

import (
	"context"
	"errors"
	"log/slog"

	"gemrelay/internal/metrics"
	"gemrelay/internal/provider"
)

// ErrNoWorkingModel means every candidate failed: the credential is
// invalid or no listed model is reachable with it.
var ErrNoWorkingModel = errors.New("no working model")

// probeMessage is the synthetic prompt sent to each candidate.
const probeMessage = "Test"

// Prober validates a credential by trying each candidate model in order
// and returning the first one that answers. Every attempt, including the
// failing ones, consumes provider-side quota against the key.
type Prober struct {
	Provider   provider.Provider
	Candidates []string
}

// Probe returns the first candidate model that completes a generation
// call with the given key. Per-candidate failures are logged and the next
// candidate is tried; this is the only fallback behavior in the system.
func (p *Prober) Probe(ctx context.Context, apiKey string) (string, error) {
	for _, model := range p.Candidates {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		_, err := p.Provider.Generate(ctx, apiKey, model, probeMessage, provider.Params{})
		if err != nil {
			slog.Warn("probe: candidate failed", "model", model, "error", err)
			metrics.ProbeAttempts.WithLabelValues(model, "error").Inc()
			continue
		}

		metrics.ProbeAttempts.WithLabelValues(model, "ok").Inc()
		slog.Info("probe: model selected", "model", model)
		return model, nil
	}
	return "", ErrNoWorkingModel
}
