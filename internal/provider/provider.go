package provider

import "context"

// Params carries the generation settings for a single call. Nil pointer
// fields leave the provider's own default in place.
type Params struct {
	SystemInstruction string
	Temperature       *float32
	TopP              *float32
	TopK              *float32
	MaxOutputTokens   int32
}

// Provider defines the contract for a generative-language backend.
// The credential travels with each call because it is session-scoped,
// not process-scoped.
type Provider interface {
	Generate(ctx context.Context, apiKey, model, message string, params Params) (string, error)
}

// Ptr returns a pointer to v, for filling optional Params fields inline.
func Ptr[T any](v T) *T {
	return &v
}
