package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperifyio/autotitle/internal/settings"
	"github.com/hyperifyio/autotitle/internal/template"
)

func TestLoadConfigFile_YAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "prompt.txt"), []byte("Title: {{content}}"), 0o600))
	path := filepath.Join(dir, "autotitle.yaml")
	body := `provider: fireworks
openai:
  model: gpt-4o
fireworks:
  key: fw-file
  url: http://localhost:8081/inference/v1/responses
prompt:
  file: prompt.txt
dryRun: true
report:
  markdown: out/report.md
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	fc, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fireworks", fc.Provider)
	assert.Equal(t, "gpt-4o", fc.OpenAI.Model)
	assert.Equal(t, "fw-file", fc.Fireworks.Key)
	assert.Equal(t, "Title: {{content}}", fc.Prompt.Custom)
	assert.True(t, fc.DryRun)
	assert.Equal(t, "out/report.md", fc.Report.Markdown)
}

func TestLoadConfigFile_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autotitle.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"provider":"openai","openai":{"key":"sk-json"}}`), 0o600))

	fc, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-json", fc.OpenAI.Key)
}

func TestLoadConfigFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"provider":`), 0o600))
	_, err := LoadConfigFile(path)
	assert.Error(t, err)
}

func TestApplyFileConfig_OnlyFillsUnset(t *testing.T) {
	var fc FileConfig
	fc.Provider = "fireworks"
	fc.OpenAI.Model = "gpt-file"
	fc.Fireworks.Key = "fw-file"
	fc.Verbose = true

	cfg := Config{OpenAIModel: "gpt-flag"}
	ApplyFileConfig(&cfg, fc)
	assert.Equal(t, "fireworks", cfg.Provider)
	assert.Equal(t, "gpt-flag", cfg.OpenAIModel)
	assert.Equal(t, "fw-file", cfg.FireworksAPIKey)
	assert.True(t, cfg.Verbose)
}

func TestValidateConfig(t *testing.T) {
	assert.Error(t, ValidateConfig(Config{}))
	assert.NoError(t, ValidateConfig(Config{Save: true}))
	assert.NoError(t, ValidateConfig(Config{Documents: []string{"a.md"}}))
	assert.Error(t, ValidateConfig(Config{Documents: []string{" "}}))
	assert.Error(t, ValidateConfig(Config{Documents: []string{"a.md"}, Provider: "anthropic"}))
	assert.Error(t, ValidateConfig(Config{Documents: []string{"a.md"}, PromptPreset: "haiku"}))
	assert.NoError(t, ValidateConfig(Config{Documents: []string{"a.md"}, PromptPreset: "short"}))
}

func TestApplyOverrides(t *testing.T) {
	base := settings.Defaults()
	base.OpenAIAPIKey = "sk-stored"

	s, err := applyOverrides(base, Config{Provider: "fireworks", FireworksAPIKey: " fw ", PromptPreset: "concise"})
	require.NoError(t, err)
	assert.Equal(t, settings.Fireworks, s.Provider)
	assert.Equal(t, "fw", s.FireworksAPIKey)
	assert.Equal(t, "sk-stored", s.OpenAIAPIKey)
	preset, _ := template.GetPreset("concise")
	assert.Equal(t, preset.Prompt, s.CustomPrompt)

	// An explicit prompt beats the preset.
	s, err = applyOverrides(base, Config{PromptPreset: "concise", Prompt: "Name it: {{content}}"})
	require.NoError(t, err)
	assert.Equal(t, "Name it: {{content}}", s.CustomPrompt)

	_, err = applyOverrides(base, Config{Provider: "bogus"})
	assert.Error(t, err)
}

// A preset chosen by flag is not displaced by a custom prompt from a lower layer.
func TestPromptSlot_FlagPresetBeatsLowerCustomPrompt(t *testing.T) {
	t.Setenv("AUTOTITLE_PROMPT", "ENV PROMPT {{content}}")
	t.Setenv("AUTOTITLE_PRESET", "")
	var fc FileConfig
	fc.Prompt.Custom = "FILE PROMPT {{content}}"

	cfg := Config{PromptPreset: "concise"}
	ApplyEnvToConfig(&cfg)
	ApplyFileConfig(&cfg, fc)
	assert.Empty(t, cfg.Prompt)

	s, err := applyOverrides(settings.Defaults(), cfg)
	require.NoError(t, err)
	preset, _ := template.GetPreset("concise")
	assert.Equal(t, preset.Prompt, s.CustomPrompt)
}

// An env preset wins over a custom prompt from the config file.
func TestPromptSlot_EnvPresetBeatsFileCustomPrompt(t *testing.T) {
	t.Setenv("AUTOTITLE_PROMPT", "")
	t.Setenv("AUTOTITLE_PRESET", "keywords")
	var fc FileConfig
	fc.Prompt.Custom = "FILE PROMPT {{content}}"

	var cfg Config
	ApplyEnvToConfig(&cfg)
	ApplyFileConfig(&cfg, fc)
	assert.Equal(t, "keywords", cfg.PromptPreset)
	assert.Empty(t, cfg.Prompt)
}

// A prompt file set by flag keeps the env prompt out.
func TestPromptSlot_PromptFileBlocksEnv(t *testing.T) {
	t.Setenv("AUTOTITLE_PROMPT", "ENV PROMPT {{content}}")
	cfg := Config{PromptFile: "prompt.txt"}
	ApplyEnvToConfig(&cfg)
	assert.Empty(t, cfg.Prompt)
}

func TestValidateConfig_PromptAndPromptFileExclusive(t *testing.T) {
	err := ValidateConfig(Config{Documents: []string{"a.md"}, Prompt: "x {{content}}", PromptFile: "p.txt"})
	assert.Error(t, err)
}

func TestLoadPromptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.txt")
	require.NoError(t, os.WriteFile(path, []byte("From file: {{content}}"), 0o600))

	cfg := Config{PromptFile: path}
	require.NoError(t, LoadPromptFile(&cfg))
	assert.Equal(t, "From file: {{content}}", cfg.Prompt)
	assert.Empty(t, cfg.PromptFile)

	cfg = Config{PromptFile: filepath.Join(t.TempDir(), "missing.txt")}
	assert.Error(t, LoadPromptFile(&cfg))
}
