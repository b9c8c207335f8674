package prompt

import (
	"errors"
	"strings"
	"testing"
)

func TestBuildFriendlyBrief(t *testing.T) {
	got, err := Build("", "friendly", 2)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := "You are a helpful assistant. Respond in a warm, friendly tone. Be approachable. Keep response brief - about 1 short paragraph."
	if got != want {
		t.Errorf("instruction:\n got %q\nwant %q", got, want)
	}
}

func TestBuildCustomPrompt(t *testing.T) {
	got, err := Build("You are a pirate.", "professional", 3)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !strings.HasPrefix(got, "You are a pirate. ") {
		t.Errorf("custom base not used: %q", got)
	}
	if strings.Contains(got, DefaultBase) {
		t.Errorf("default base should be replaced: %q", got)
	}
}

func TestBuildAllTonesAndLevels(t *testing.T) {
	for _, tone := range Tones() {
		for _, level := range Levels() {
			if _, err := Build("", tone, level); err != nil {
				t.Errorf("Build(%q, %d): %v", tone, level, err)
			}
		}
	}
}

func TestBuildUnknownTone(t *testing.T) {
	_, err := Build("", "sarcastic", 3)
	if !errors.Is(err, ErrUnknownTone) {
		t.Errorf("got %v, want ErrUnknownTone", err)
	}
}

func TestBuildLengthOutOfRange(t *testing.T) {
	for _, level := range []int{0, -1, 6, 100} {
		_, err := Build("", "professional", level)
		if !errors.Is(err, ErrInvalidLength) {
			t.Errorf("Build(level=%d): got %v, want ErrInvalidLength", level, err)
		}
	}
}

func TestMaxOutputTokens(t *testing.T) {
	tests := []struct {
		level int
		want  int32
	}{
		{1, 200},
		{2, 400},
		{3, 600},
		{4, 800},
		{5, 1000},
	}

	for _, tt := range tests {
		if got := MaxOutputTokens(tt.level); got != tt.want {
			t.Errorf("MaxOutputTokens(%d): got %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestTonesIncludeDefault(t *testing.T) {
	for _, tone := range Tones() {
		if tone == DefaultTone {
			return
		}
	}
	t.Errorf("Tones() missing default %q", DefaultTone)
}
