package main

// Sample is one chat message used for benchmarking.
type Sample struct {
	Name    string
	Message string
}

// Samples covers short factual questions through longer open-ended
// prompts, so latency can be compared across output budgets.
var Samples = []Sample{
	{
		Name:    "factual",
		Message: "What is the difference between a goroutine and an OS thread?",
	},
	{
		Name:    "howto",
		Message: "How do I set up a reverse proxy with nginx for a service running on port 8080? Include the config snippet.",
	},
	{
		Name:    "explain",
		Message: "Explain how HTTP keep-alive connections work and why they matter for API latency. Assume the reader knows basic networking.",
	},
	{
		Name:    "openended",
		Message: "I'm designing a small REST API for a todo app. Walk me through the endpoints you would define, the status codes each should return, and how you would handle validation errors consistently across all of them.",
	},
}
