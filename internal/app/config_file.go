package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"github.com/hyperifyio/autotitle/internal/settings"
	"github.com/hyperifyio/autotitle/internal/template"
)

// FileConfig represents the single-file configuration schema.
type FileConfig struct {
	Settings string `yaml:"settings" json:"settings"`
	Provider string `yaml:"provider" json:"provider"`

	OpenAI struct {
		Key             string `yaml:"key" json:"key"`
		Model           string `yaml:"model" json:"model"`
		BaseURL         string `yaml:"base" json:"base"`
		ReasoningEffort string `yaml:"reasoningEffort" json:"reasoningEffort"`
	} `yaml:"openai" json:"openai"`

	Fireworks struct {
		Key   string `yaml:"key" json:"key"`
		Model string `yaml:"model" json:"model"`
		URL   string `yaml:"url" json:"url"`
	} `yaml:"fireworks" json:"fireworks"`

	Prompt struct {
		Custom string `yaml:"custom" json:"custom"`
		Preset string `yaml:"preset" json:"preset"`
		File   string `yaml:"file" json:"file"`
	} `yaml:"prompt" json:"prompt"`

	DryRun    bool `yaml:"dryRun" json:"dryRun"`
	Verbose   bool `yaml:"verbose" json:"verbose"`
	Preflight bool `yaml:"preflight" json:"preflight"`

	Report struct {
		Markdown string `yaml:"markdown" json:"markdown"`
		PDF      string `yaml:"pdf" json:"pdf"`
	} `yaml:"report" json:"report"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	// A prompt file is resolved relative to the config file.
	if p := strings.TrimSpace(fc.Prompt.File); p != "" && fc.Prompt.Custom == "" {
		if !filepath.IsAbs(p) {
			p = filepath.Join(filepath.Dir(path), p)
		}
		body, err := os.ReadFile(p)
		if err != nil {
			return fc, fmt.Errorf("read prompt file: %w", err)
		}
		fc.Prompt.Custom = string(body)
	}
	return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any fields
// that are currently unset. Flags and env are applied first, so the file only
// supplies defaults.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	setString := func(dst *string, v string) {
		if *dst == "" && v != "" {
			*dst = v
		}
	}
	setString(&cfg.SettingsPath, fc.Settings)
	setString(&cfg.Provider, fc.Provider)
	setString(&cfg.OpenAIAPIKey, fc.OpenAI.Key)
	setString(&cfg.OpenAIModel, fc.OpenAI.Model)
	setString(&cfg.OpenAIBaseURL, fc.OpenAI.BaseURL)
	setString(&cfg.OpenAIReasoningEffort, fc.OpenAI.ReasoningEffort)
	setString(&cfg.FireworksAPIKey, fc.Fireworks.Key)
	setString(&cfg.FireworksModel, fc.Fireworks.Model)
	setString(&cfg.FireworksURL, fc.Fireworks.URL)
	if !cfg.promptSet() {
		setString(&cfg.Prompt, fc.Prompt.Custom)
		setString(&cfg.PromptPreset, fc.Prompt.Preset)
	}
	setString(&cfg.ReportPath, fc.Report.Markdown)
	setString(&cfg.ReportPDFPath, fc.Report.PDF)

	if !cfg.DryRun && fc.DryRun {
		cfg.DryRun = true
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
	if !cfg.Preflight && fc.Preflight {
		cfg.Preflight = true
	}
}

// ValidateConfig performs minimal validation of runtime settings. A save-only
// run may omit documents.
func ValidateConfig(cfg Config) error {
	if len(cfg.Documents) == 0 && !cfg.Save {
		return errors.New("config: at least one document path is required")
	}
	for _, d := range cfg.Documents {
		if strings.TrimSpace(d) == "" {
			return errors.New("config: empty document path")
		}
	}
	if strings.TrimSpace(cfg.Prompt) != "" && strings.TrimSpace(cfg.PromptFile) != "" {
		return errors.New("config: -prompt and -prompt.file are mutually exclusive")
	}
	if strings.TrimSpace(cfg.Provider) != "" {
		if _, err := settings.ParseProvider(cfg.Provider); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	if p := strings.TrimSpace(cfg.PromptPreset); p != "" {
		if _, ok := template.GetPreset(p); !ok {
			return fmt.Errorf("config: unknown prompt preset %q", p)
		}
	}
	return nil
}

// LoadPromptFile reads cfg.PromptFile into cfg.Prompt. Call it after
// ValidateConfig so that an inline prompt is never silently replaced.
func LoadPromptFile(cfg *Config) error {
	p := strings.TrimSpace(cfg.PromptFile)
	if p == "" {
		return nil
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return fmt.Errorf("read prompt file: %w", err)
	}
	cfg.Prompt = string(b)
	cfg.PromptFile = ""
	return nil
}

// applyOverrides layers non-empty runtime values onto the persisted settings.
func applyOverrides(s settings.Settings, cfg Config) (settings.Settings, error) {
	if v := strings.TrimSpace(cfg.Provider); v != "" {
		p, err := settings.ParseProvider(v)
		if err != nil {
			return s, err
		}
		s.Provider = p
	}
	override := func(dst *string, v string) {
		if strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	override(&s.OpenAIAPIKey, cfg.OpenAIAPIKey)
	override(&s.OpenAIModel, cfg.OpenAIModel)
	override(&s.OpenAIBaseURL, cfg.OpenAIBaseURL)
	override(&s.OpenAIReasoningEffort, cfg.OpenAIReasoningEffort)
	override(&s.FireworksAPIKey, cfg.FireworksAPIKey)
	override(&s.FireworksModel, cfg.FireworksModel)
	if p := strings.TrimSpace(cfg.PromptPreset); p != "" {
		preset, ok := template.GetPreset(p)
		if !ok {
			return s, fmt.Errorf("unknown prompt preset %q", p)
		}
		s.CustomPrompt = preset.Prompt
	}
	if strings.TrimSpace(cfg.Prompt) != "" {
		s.CustomPrompt = cfg.Prompt
	}
	return s, nil
}
