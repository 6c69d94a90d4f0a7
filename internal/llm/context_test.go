package llm

import (
	"strings"
	"testing"
)

func TestEstimateTokens(t *testing.T) {
	if got := EstimateTokens(""); got != 0 {
		t.Fatalf("empty: got %d", got)
	}
	if got := EstimateTokens("abcde"); got != 2 {
		t.Fatalf("5 bytes: got %d, want 2", got)
	}
}

func TestContextWindow(t *testing.T) {
	cases := map[string]int{
		"gpt-4o-mini":                           128_000,
		"accounts/fireworks/models/gpt-oss-20b": 131_072,
		"gpt-3.5-turbo-instruct":                4_096,
		"mystery":                               8192,
		"":                                      8192,
	}
	for model, want := range cases {
		if got := ContextWindow(model); got != want {
			t.Fatalf("ContextWindow(%q)=%d, want %d", model, got, want)
		}
	}
}

func TestFitsInContext(t *testing.T) {
	if !FitsInContext("gpt-4o-mini", EstimateTokens("short note")) {
		t.Fatalf("short prompt should fit")
	}
	huge := strings.Repeat("x", 4*8192)
	if FitsInContext("mystery", EstimateTokens(huge)) {
		t.Fatalf("oversized prompt should not fit")
	}
}
