package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gemrelay/internal/probe"
	"gemrelay/internal/provider"
	"gemrelay/internal/session"
)

var testCandidates = []string{"gemini-2.0-flash", "gemini-1.5-flash", "gemini-1.5-pro"}

const testTimeout = 5 * time.Second

func postJSON(t *testing.T, h http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp errorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return resp.Error
}

func TestSetupMissingAPIKey(t *testing.T) {
	sessions := session.NewRegistry()
	mock := &provider.Mock{}
	h := Setup(sessions, &probe.Prober{Provider: mock, Candidates: testCandidates}, testTimeout)

	w := postJSON(t, h, "/api/setup", `{}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", w.Code, http.StatusBadRequest)
	}
	if msg := decodeError(t, w); !strings.Contains(msg, "apiKey") {
		t.Errorf("error: got %q, want mention of apiKey", msg)
	}
	if n := mock.CallCount(); n != 0 {
		t.Errorf("provider calls: got %d, want 0", n)
	}
}

func TestSetupInvalidJSON(t *testing.T) {
	sessions := session.NewRegistry()
	h := Setup(sessions, &probe.Prober{Provider: &provider.Mock{}, Candidates: testCandidates}, testTimeout)

	w := postJSON(t, h, "/api/setup", `{not json`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestSetupSuccess(t *testing.T) {
	sessions := session.NewRegistry()
	h := Setup(sessions, &probe.Prober{Provider: &provider.Mock{}, Candidates: testCandidates}, testTimeout)

	w := postJSON(t, h, "/api/setup", `{"apiKey":"sk-test","sessionId":"alice"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (%s)", w.Code, http.StatusOK, w.Body.String())
	}

	var resp setupResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success {
		t.Error("success: got false")
	}
	if resp.Model != "gemini-2.0-flash" {
		t.Errorf("model: got %q, want %q", resp.Model, "gemini-2.0-flash")
	}

	s, ok := sessions.Get("alice")
	if !ok {
		t.Fatal("session not stored")
	}
	if s.APIKey != "sk-test" || s.Model != "gemini-2.0-flash" {
		t.Errorf("stored session: got {%q %q}", s.APIKey, s.Model)
	}
}

func TestSetupDefaultSessionID(t *testing.T) {
	sessions := session.NewRegistry()
	h := Setup(sessions, &probe.Prober{Provider: &provider.Mock{}, Candidates: testCandidates}, testTimeout)

	postJSON(t, h, "/api/setup", `{"apiKey":"sk-test"}`)

	if _, ok := sessions.Get(session.DefaultID); !ok {
		t.Error("session not stored under default id")
	}
}

func TestSetupThirdCandidateWins(t *testing.T) {
	sessions := session.NewRegistry()
	mock := &provider.Mock{Fail: map[string]string{
		"gemini-2.0-flash": "not found",
		"gemini-1.5-flash": "not found",
	}}
	h := Setup(sessions, &probe.Prober{Provider: mock, Candidates: testCandidates}, testTimeout)

	w := postJSON(t, h, "/api/setup", `{"apiKey":"sk-test"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d (%s)", w.Code, w.Body.String())
	}
	if n := mock.CallCount(); n != 3 {
		t.Errorf("probe calls: got %d, want 3", n)
	}
	s, _ := sessions.Get(session.DefaultID)
	if s.Model != "gemini-1.5-pro" {
		t.Errorf("stored model: got %q, want %q", s.Model, "gemini-1.5-pro")
	}
}

func TestSetupNoWorkingModel(t *testing.T) {
	sessions := session.NewRegistry()
	mock := &provider.Mock{Fail: map[string]string{
		"gemini-2.0-flash": "invalid key",
		"gemini-1.5-flash": "invalid key",
		"gemini-1.5-pro":   "invalid key",
	}}
	h := Setup(sessions, &probe.Prober{Provider: mock, Candidates: testCandidates}, testTimeout)

	w := postJSON(t, h, "/api/setup", `{"apiKey":"bad-key"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", w.Code, http.StatusBadRequest)
	}
	if n := sessions.Count(); n != 0 {
		t.Errorf("sessions stored after failed setup: got %d, want 0", n)
	}
}

func TestChatMissingMessage(t *testing.T) {
	sessions := session.NewRegistry()
	mock := &provider.Mock{}
	h := Chat(sessions, mock, testTimeout)

	w := postJSON(t, h, "/api/chat", `{}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", w.Code, http.StatusBadRequest)
	}
	if n := mock.CallCount(); n != 0 {
		t.Errorf("provider calls: got %d, want 0", n)
	}
}

func TestChatSessionNotSetUp(t *testing.T) {
	sessions := session.NewRegistry()
	mock := &provider.Mock{}
	h := Chat(sessions, mock, testTimeout)

	w := postJSON(t, h, "/api/chat", `{"message":"hello"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", w.Code, http.StatusBadRequest)
	}
	if msg := decodeError(t, w); !strings.Contains(msg, "setup") {
		t.Errorf("error: got %q, want mention of setup", msg)
	}
	if n := mock.CallCount(); n != 0 {
		t.Errorf("provider calls for unknown session: got %d, want 0", n)
	}
}

func TestChatDefaults(t *testing.T) {
	sessions := session.NewRegistry()
	sessions.Put("default", "sk-test", "gemini-2.0-flash")
	mock := &provider.Mock{Reply: "generated text"}
	h := Chat(sessions, mock, testTimeout)

	w := postJSON(t, h, "/api/chat", `{"message":"hello"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d (%s)", w.Code, w.Body.String())
	}

	var resp chatResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Response != "generated text" {
		t.Errorf("response: got %q", resp.Response)
	}
	if resp.ModelUsed != "gemini-2.0-flash" {
		t.Errorf("modelUsed: got %q", resp.ModelUsed)
	}

	calls := mock.Calls()
	if len(calls) != 1 {
		t.Fatalf("calls: got %d, want 1", len(calls))
	}
	c := calls[0]
	if c.APIKey != "sk-test" || c.Model != "gemini-2.0-flash" || c.Message != "hello" {
		t.Errorf("call: got %+v", c)
	}
	p := c.Params
	if p.Temperature == nil || *p.Temperature != 0.5 {
		t.Errorf("temperature: got %v, want 0.5", p.Temperature)
	}
	if p.TopP == nil || *p.TopP != 0.8 {
		t.Errorf("topP: got %v, want 0.8", p.TopP)
	}
	if p.TopK == nil || *p.TopK != 40 {
		t.Errorf("topK: got %v, want 40", p.TopK)
	}
	if p.MaxOutputTokens != 600 {
		t.Errorf("maxOutputTokens: got %d, want 600", p.MaxOutputTokens)
	}
	wantInstruction := "You are a helpful assistant. Maintain a professional, business-appropriate tone. Provide a moderate response - 2-3 paragraphs."
	if p.SystemInstruction != wantInstruction {
		t.Errorf("instruction:\n got %q\nwant %q", p.SystemInstruction, wantInstruction)
	}
}

func TestChatStyleParameters(t *testing.T) {
	sessions := session.NewRegistry()
	sessions.Put("default", "sk-test", "gemini-1.5-pro")
	mock := &provider.Mock{}
	h := Chat(sessions, mock, testTimeout)

	w := postJSON(t, h, "/api/chat",
		`{"message":"hi","tone":"friendly","responseLength":2,"temperature":0.9,"customPrompt":"You are a poet."}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d (%s)", w.Code, w.Body.String())
	}

	p := mock.Calls()[0].Params
	want := "You are a poet. Respond in a warm, friendly tone. Be approachable. Keep response brief - about 1 short paragraph."
	if p.SystemInstruction != want {
		t.Errorf("instruction:\n got %q\nwant %q", p.SystemInstruction, want)
	}
	if p.MaxOutputTokens != 400 {
		t.Errorf("maxOutputTokens: got %d, want 400", p.MaxOutputTokens)
	}
	if p.Temperature == nil || *p.Temperature != 0.9 {
		t.Errorf("temperature: got %v, want 0.9", p.Temperature)
	}
}

func TestChatUnknownTone(t *testing.T) {
	sessions := session.NewRegistry()
	sessions.Put("default", "sk-test", "gemini-pro")
	mock := &provider.Mock{}
	h := Chat(sessions, mock, testTimeout)

	w := postJSON(t, h, "/api/chat", `{"message":"hi","tone":"sarcastic"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", w.Code, http.StatusBadRequest)
	}
	if n := mock.CallCount(); n != 0 {
		t.Errorf("provider calls: got %d, want 0", n)
	}
}

func TestChatLengthOutOfRange(t *testing.T) {
	sessions := session.NewRegistry()
	sessions.Put("default", "sk-test", "gemini-pro")
	h := Chat(sessions, &provider.Mock{}, testTimeout)

	w := postJSON(t, h, "/api/chat", `{"message":"hi","responseLength":9}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestChatProviderError(t *testing.T) {
	sessions := session.NewRegistry()
	sessions.Put("default", "sk-test", "gemini-pro")
	mock := &provider.Mock{Fail: map[string]string{"gemini-pro": "upstream exploded"}}
	h := Chat(sessions, mock, testTimeout)

	w := postJSON(t, h, "/api/chat", `{"message":"hi"}`)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want %d", w.Code, http.StatusInternalServerError)
	}
	if msg := decodeError(t, w); !strings.Contains(msg, "upstream exploded") {
		t.Errorf("error: got %q, want upstream text echoed", msg)
	}
}

func TestStatus(t *testing.T) {
	sessions := session.NewRegistry()
	sessions.Put("a", "k1", "gemini-pro")
	sessions.Put("b", "k2", "gemini-pro")

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	w := httptest.NewRecorder()
	Status(sessions).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var resp statusResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "Server is running" {
		t.Errorf("status field: got %q", resp.Status)
	}
	if resp.ActiveSessions != 2 {
		t.Errorf("activeSessions: got %d, want 2", resp.ActiveSessions)
	}
}

func TestModels(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/models", nil)
	w := httptest.NewRecorder()
	Models(testCandidates).ServeHTTP(w, req)

	var resp modelsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Models) != 3 {
		t.Errorf("models: got %v", resp.Models)
	}
	if len(resp.Tones) != 5 {
		t.Errorf("tones: got %v", resp.Tones)
	}
	if len(resp.ResponseLengths) != 5 || resp.ResponseLengths[0] != 1 || resp.ResponseLengths[4] != 5 {
		t.Errorf("responseLengths: got %v", resp.ResponseLengths)
	}
}
