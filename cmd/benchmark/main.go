package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"
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

type chatRequest struct {
	Message        string  `json:"message"`
	ResponseLength int     `json:"responseLength"`
	Tone           string  `json:"tone"`
	Temperature    float64 `json:"temperature"`
	SessionID      string  `json:"sessionId"`
}

type chatResponse struct {
	Response  string `json:"response"`
	ModelUsed string `json:"modelUsed"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type result struct {
	Sample   string
	Length   int
	Run      int
	WallMs   int64
	OutChars int
	Error    string
}

func main() {
	url := flag.String("url", "http://localhost:8080", "API base URL")
	serverKey := flag.String("api-key", "", "server API key (optional, X-API-Key)")
	geminiKey := flag.String("gemini-key", os.Getenv("GEMINI_API_KEY"), "Gemini API key used for setup")
	runs := flag.Int("runs", 3, "number of runs per sample and length")
	tone := flag.String("tone", "professional", "tone for all requests")
	lengths := flag.String("lengths", "1,3,5", "comma-separated response length levels")
	flag.Parse()

	if *geminiKey == "" {
		fmt.Fprintln(os.Stderr, "missing Gemini API key: pass --gemini-key or set GEMINI_API_KEY")
		os.Exit(1)
	}

	baseURL := strings.TrimRight(*url, "/")
	client := &http.Client{Timeout: 180 * time.Second}
	sessionID := fmt.Sprintf("bench-%d", time.Now().Unix())

	model, err := runSetup(client, baseURL, *serverKey, *geminiKey, sessionID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "setup failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Benchmarking against %s using model %s (tone=%s, %d runs)\n", baseURL, model, *tone, *runs)

	var results []result
	var failures int
	for _, sample := range Samples {
		for _, level := range parseLengths(*lengths) {
			for run := 1; run <= *runs; run++ {
				fmt.Printf("  Running %s len=%d (run %d/%d)...", sample.Name, level, run, *runs)
				r := benchmark(client, baseURL, *serverKey, sessionID, sample, *tone, level, run)
				results = append(results, r)
				if r.Error != "" {
					fmt.Printf(" FAILED (%s)\n", r.Error)
					failures++
				} else {
					fmt.Printf(" %dms\n", r.WallMs)
				}
			}
		}
	}

	fmt.Println()
	printSummary(results)

	if failures > 0 {
		os.Exit(1)
	}
}

func runSetup(client *http.Client, baseURL, serverKey, geminiKey, sessionID string) (string, error) {
	body, err := json.Marshal(setupRequest{APIKey: geminiKey, SessionID: sessionID})
	if err != nil {
		return "", err
	}

	resp, err := do(client, baseURL+"/api/setup", serverKey, body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var er errorResponse
		json.NewDecoder(resp.Body).Decode(&er)
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, er.Error)
	}

	var sr setupResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return "", err
	}
	return sr.Model, nil
}

func benchmark(client *http.Client, baseURL, serverKey, sessionID string, sample Sample, tone string, level, run int) result {
	r := result{Sample: sample.Name, Length: level, Run: run}

	body, err := json.Marshal(chatRequest{
		Message:        sample.Message,
		ResponseLength: level,
		Tone:           tone,
		Temperature:    0.5,
		SessionID:      sessionID,
	})
	if err != nil {
		r.Error = err.Error()
		return r
	}

	start := time.Now()
	resp, err := do(client, baseURL+"/api/chat", serverKey, body)
	r.WallMs = time.Since(start).Milliseconds()
	if err != nil {
		r.Error = err.Error()
		return r
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var er errorResponse
		json.NewDecoder(resp.Body).Decode(&er)
		r.Error = fmt.Sprintf("status %d: %s", resp.StatusCode, er.Error)
		return r
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		r.Error = err.Error()
		return r
	}
	r.OutChars = len(cr.Response)
	return r
}

func do(client *http.Client, url, serverKey string, body []byte) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if serverKey != "" {
		req.Header.Set("X-API-Key", serverKey)
	}
	return client.Do(req)
}

func parseLengths(s string) []int {
	var levels []int
	for _, part := range strings.Split(s, ",") {
		var level int
		if _, err := fmt.Sscanf(strings.TrimSpace(part), "%d", &level); err == nil {
			levels = append(levels, level)
		}
	}
	if len(levels) == 0 {
		levels = []int{3}
	}
	sort.Ints(levels)
	return levels
}

func printSummary(results []result) {
	type bucket struct {
		total int64
		chars int
		n     int
	}
	buckets := make(map[int]*bucket)
	for _, r := range results {
		if r.Error != "" {
			continue
		}
		b := buckets[r.Length]
		if b == nil {
			b = &bucket{}
			buckets[r.Length] = b
		}
		b.total += r.WallMs
		b.chars += r.OutChars
		b.n++
	}

	var levels []int
	for level := range buckets {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	fmt.Println("Level  AvgMs  AvgOutChars")
	for _, level := range levels {
		b := buckets[level]
		fmt.Printf("%5d  %5d  %11d\n", level, b.total/int64(b.n), b.chars/b.n)
	}
}
