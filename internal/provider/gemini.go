package provider

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"
)

// Gemini talks to the Google Gemini API. Clients are cached per API key
// so repeated calls for the same session reuse one client.
type Gemini struct {
	mu      sync.RWMutex
	clients map[string]*genai.Client
}

func NewGemini() *Gemini {
	return &Gemini{clients: make(map[string]*genai.Client)}
}

func (g *Gemini) client(ctx context.Context, apiKey string) (*genai.Client, error) {
	g.mu.RLock()
	client, ok := g.clients[apiKey]
	g.mu.RUnlock()
	if ok {
		return client, nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if client, ok := g.clients[apiKey]; ok {
		return client, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	g.clients[apiKey] = client
	return client, nil
}

func (g *Gemini) Generate(ctx context.Context, apiKey, model, message string, params Params) (string, error) {
	client, err := g.client(ctx, apiKey)
	if err != nil {
		return "", err
	}

	config := &genai.GenerateContentConfig{
		Temperature:     params.Temperature,
		TopP:            params.TopP,
		TopK:            params.TopK,
		MaxOutputTokens: params.MaxOutputTokens,
	}
	if params.SystemInstruction != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: params.SystemInstruction}},
		}
	}

	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(message), config)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: no valid candidates in response")
	}

	if part := resp.Candidates[0].Content.Parts[0]; part != nil && part.Text != "" {
		return part.Text, nil
	}
	return "", fmt.Errorf("gemini: response part was not text")
}
