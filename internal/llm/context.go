package llm

import (
	"math"
	"path"
	"strings"
)

// EstimateTokens approximates the token count of s at about four bytes per
// token, rounded up.
func EstimateTokens(s string) int {
	if len(s) == 0 {
		return 0
	}
	return int(math.Ceil(float64(len(s)) / 4.0))
}

// contextWindows are rough input limits for model names seen with both
// providers. Fireworks names are matched on their last path segment.
var contextWindows = map[string]int{
	"gpt-4o":        128_000,
	"gpt-4o-mini":   128_000,
	"gpt-4.1":       1_000_000,
	"gpt-4.1-mini":  1_000_000,
	"gpt-4-turbo":   128_000,
	"gpt-3.5-turbo": 16_384,
	"gpt-oss-20b":   131_072,
	"gpt-oss-120b":  131_072,
}

// ContextWindow returns the estimated context size of model. Unknown models
// get a conservative 8192.
func ContextWindow(model string) int {
	name := strings.ToLower(strings.TrimSpace(model))
	name = path.Base(name)
	if v, ok := contextWindows[name]; ok {
		return v
	}
	switch {
	case strings.HasPrefix(name, "gpt-5"), strings.HasPrefix(name, "o3"), strings.HasPrefix(name, "o4"):
		return 200_000
	case strings.HasSuffix(name, "128k"), strings.Contains(name, "-mini"):
		return 128_000
	case IsLegacyModel(name):
		return 4_096
	}
	return 8192
}

// FitsInContext reports whether a prompt of promptTokens leaves room for the
// title in model's context window.
func FitsInContext(model string, promptTokens int) bool {
	return ContextWindow(model)-MaxOutputTokens-promptTokens > 0
}
