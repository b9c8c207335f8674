package prompt

import (
	"errors"
	"fmt"
	"sort"
)

// DefaultBase is used when the caller supplies no custom prompt.
const DefaultBase = "You are a helpful assistant."

const (
	DefaultTone   = "professional"
	DefaultLength = 3

	// TokensPerLevel scales the provider's output budget: level × 200.
	TokensPerLevel = 200

	MinLength = 1
	MaxLength = 5
)

var (
	ErrUnknownTone   = errors.New("unknown tone")
	ErrInvalidLength = errors.New("responseLength out of range")
)

var toneInstructions = map[string]string{
	"professional": "Maintain a professional, business-appropriate tone.",
	"friendly":     "Respond in a warm, friendly tone. Be approachable.",
	"casual":       "Use a casual, conversational tone. Keep it relaxed.",
	"formal":       "Use formal language and a respectful, precise tone.",
	"enthusiastic": "Respond with energy and enthusiasm. Be upbeat.",
}

var lengthInstructions = map[int]string{
	1: "Keep response very brief - 1-2 sentences maximum.",
	2: "Keep response brief - about 1 short paragraph.",
	3: "Provide a moderate response - 2-3 paragraphs.",
	4: "Provide a detailed response - 3-4 paragraphs.",
	5: "Provide a very detailed, comprehensive response - 4 or more paragraphs.",
}

// Build assembles the system instruction sent alongside every chat message:
// base prompt, tone sentence, length sentence, joined by single spaces.
// Unknown tones and out-of-range lengths are rejected rather than silently
// concatenated.
func Build(custom, tone string, length int) (string, error) {
	base := DefaultBase
	if custom != "" {
		base = custom
	}

	toneSentence, ok := toneInstructions[tone]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTone, tone)
	}

	lengthSentence, ok := lengthInstructions[length]
	if !ok {
		return "", fmt.Errorf("%w: %d (must be %d-%d)", ErrInvalidLength, length, MinLength, MaxLength)
	}

	return base + " " + toneSentence + " " + lengthSentence, nil
}

// MaxOutputTokens returns the provider-side output budget for a length level.
func MaxOutputTokens(length int) int32 {
	return int32(length) * TokensPerLevel
}

// Tones lists the recognized tone names in stable order.
func Tones() []string {
	names := make([]string, 0, len(toneInstructions))
	for name := range toneInstructions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Levels lists the recognized response length levels in ascending order.
func Levels() []int {
	levels := make([]int, 0, len(lengthInstructions))
	for level := range lengthInstructions {
		levels = append(levels, level)
	}
	sort.Ints(levels)
	return levels
}
