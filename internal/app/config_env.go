package app

import (
	"os"
	"strings"
)

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}

	setString := func(dst *string, keys ...string) {
		if *dst != "" {
			return
		}
		for _, k := range keys {
			if v := strings.TrimSpace(os.Getenv(k)); v != "" {
				*dst = v
				return
			}
		}
	}
	setString(&cfg.SettingsPath, "AUTOTITLE_SETTINGS")
	setString(&cfg.Provider, "AUTOTITLE_PROVIDER")
	setString(&cfg.OpenAIAPIKey, "OPENAI_API_KEY")
	setString(&cfg.OpenAIModel, "OPENAI_MODEL")
	setString(&cfg.OpenAIBaseURL, "OPENAI_BASE_URL", "LLM_BASE_URL")
	setString(&cfg.OpenAIReasoningEffort, "OPENAI_REASONING_EFFORT")
	setString(&cfg.FireworksAPIKey, "FIREWORKS_API_KEY")
	setString(&cfg.FireworksModel, "FIREWORKS_MODEL")
	setString(&cfg.FireworksURL, "FIREWORKS_URL")
	if !cfg.promptSet() {
		setString(&cfg.Prompt, "AUTOTITLE_PROMPT")
		setString(&cfg.PromptPreset, "AUTOTITLE_PRESET")
	}
	setString(&cfg.ReportPath, "AUTOTITLE_REPORT")

	setBool := func(dst *bool, envKey string) {
		if *dst {
			return
		}
		switch strings.ToLower(strings.TrimSpace(os.Getenv(envKey))) {
		case "1", "true", "yes", "on":
			*dst = true
		}
	}
	setBool(&cfg.DryRun, "DRY_RUN")
	setBool(&cfg.Verbose, "VERBOSE")
	setBool(&cfg.Preflight, "PREFLIGHT")
}
