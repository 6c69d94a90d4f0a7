package settings

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hyperifyio/autotitle/internal/template"
)

// Provider selects which completion backend is active.
type Provider string

const (
	// OpenAI is the chat/completions style backend (OpenAI or compatible).
	OpenAI Provider = "openai"
	// Fireworks is the stateless responses style backend.
	Fireworks Provider = "fireworks"
)

// ParseProvider maps user input onto a Provider.
func ParseProvider(s string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(OpenAI):
		return OpenAI, nil
	case string(Fireworks):
		return Fireworks, nil
	default:
		return "", fmt.Errorf("unknown provider %q (want %q or %q)", s, OpenAI, Fireworks)
	}
}

// Settings is the persisted configuration record. Every field always holds a
// value; unset credentials are empty strings.
type Settings struct {
	Provider        Provider `json:"provider"`
	OpenAIAPIKey    string   `json:"openAiApiKey"`
	OpenAIModel     string   `json:"openAiModel"`
	FireworksAPIKey string   `json:"fireworksApiKey"`
	FireworksModel  string   `json:"fireworksModel"`
	CustomPrompt    string   `json:"customPrompt"`

	// OpenAIBaseURL points the OpenAI client at a compatible server; empty
	// means the public endpoint.
	OpenAIBaseURL string `json:"openAiBaseUrl"`
	// OpenAIReasoningEffort is forwarded on chat requests when non-empty.
	OpenAIReasoningEffort string `json:"openAiReasoningEffort"`
}

const (
	defaultOpenAIModel    = "gpt-4o-mini"
	defaultFireworksModel = "accounts/fireworks/models/gpt-oss-20b"
)

// Defaults returns the baseline record used on first launch and as the
// merge base for persisted data.
func Defaults() Settings {
	return Settings{
		Provider:       OpenAI,
		OpenAIModel:    defaultOpenAIModel,
		FireworksModel: defaultFireworksModel,
	}
}

// Merge decodes a persisted blob over Defaults. Keys missing from raw keep
// their default value. An empty blob yields Defaults.
func Merge(raw []byte) (Settings, error) {
	s := Defaults()
	if len(strings.TrimSpace(string(raw))) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		return Defaults(), fmt.Errorf("parse settings: %w", err)
	}
	if s.Provider == "" {
		s.Provider = OpenAI
	}
	return s, nil
}

// Prompt returns the custom prompt, or the built-in template when the custom
// prompt is blank.
func (s Settings) Prompt() string {
	if strings.TrimSpace(s.CustomPrompt) == "" {
		return template.DefaultTemplate
	}
	return s.CustomPrompt
}
