package app

import "strings"

// Config holds runtime configuration for the application. String fields left
// empty keep the value from the persisted settings record.
type Config struct {
	// Documents to title, in processing order.
	Documents []string
	// SettingsPath is the persisted settings file; empty selects the per-user default.
	SettingsPath string

	// Provider selection and credentials
	Provider              string
	OpenAIAPIKey          string
	OpenAIModel           string
	OpenAIBaseURL         string
	OpenAIReasoningEffort string
	FireworksAPIKey       string
	FireworksModel        string
	// FireworksURL overrides the responses endpoint (tests, local stub).
	FireworksURL string

	// Prompt replaces the custom prompt, PromptFile names a file holding it
	// and PromptPreset selects a built-in one. The three form one layer slot:
	// a lower layer fills none of them once any is set.
	Prompt       string
	PromptFile   string
	PromptPreset string

	// Behavior
	DryRun    bool
	Verbose   bool
	Save      bool
	Preflight bool

	// Run report outputs
	ReportPath    string
	ReportPDFPath string
}

// promptSet reports whether a higher layer already chose the prompt.
func (c *Config) promptSet() bool {
	return strings.TrimSpace(c.Prompt) != "" ||
		strings.TrimSpace(c.PromptFile) != "" ||
		strings.TrimSpace(c.PromptPreset) != ""
}
