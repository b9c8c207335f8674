package provider

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Call records one Generate invocation against the Mock.
type Call struct {
	APIKey  string
	Model   string
	Message string
	Params  Params
}

// Mock is a scripted in-memory Provider for tests and --mock mode.
// Models listed in Fail always error; everything else succeeds with Reply.
type Mock struct {
	Reply string
	Fail  map[string]string
	Delay time.Duration

	mu    sync.Mutex
	calls []Call
}

func (m *Mock) Generate(ctx context.Context, apiKey, model, message string, params Params) (string, error) {
	if m.Delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(m.Delay):
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, Call{APIKey: apiKey, Model: model, Message: message, Params: params})

	if msg, ok := m.Fail[model]; ok {
		return "", errors.New(msg)
	}
	if m.Reply != "" {
		return m.Reply, nil
	}
	return "mock response", nil
}

// SetFail replaces the set of failing models.
func (m *Mock) SetFail(fail map[string]string) {
	m.mu.Lock()
	m.Fail = fail
	m.mu.Unlock()
}

// Calls returns a copy of all recorded invocations.
func (m *Mock) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
