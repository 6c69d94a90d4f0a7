// Package title renders the prompt, asks the active provider for a title,
// sanitizes the answer and renames the document.
package title

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/autotitle/internal/llm"
	"github.com/hyperifyio/autotitle/internal/settings"
	"github.com/hyperifyio/autotitle/internal/template"
	"github.com/hyperifyio/autotitle/internal/vault"
)

// ErrEmptyTitle indicates the provider answer sanitized to nothing.
var ErrEmptyTitle = errors.New("model returned an empty title")

// Vault reads and renames documents.
type Vault interface {
	Read(ctx context.Context, doc vault.Document) (string, error)
	Rename(ctx context.Context, doc vault.Document, target string) error
}

// SettingsSource returns the current settings record. It is consulted once
// per document.
type SettingsSource interface {
	Settings() settings.Settings
}

// SettingsFunc adapts a function to SettingsSource.
type SettingsFunc func() settings.Settings

// Settings implements SettingsSource.
func (f SettingsFunc) Settings() settings.Settings { return f() }

// Resolver picks the active provider for a settings record.
type Resolver interface {
	Resolve(s settings.Settings) (llm.Provider, llm.Options, error)
}

// Outcome records what happened to one document.
type Outcome struct {
	Document vault.Document
	// Provider is the active provider name, empty when the document failed
	// before settings were read.
	Provider string
	Title    string
	NewPath  string
	Err      error
}

// Generator runs the title pipeline for documents.
type Generator struct {
	Settings  SettingsSource
	Providers Resolver
	Vault     Vault
	Notifier  Notifier
	// DryRun computes titles and targets without renaming.
	DryRun bool
}

func (g *Generator) notifier() Notifier {
	if g.Notifier == nil {
		return nopNotifier{}
	}
	return g.Notifier
}

// GenerateTitle runs the pipeline for a single document whose text is
// content. Failures are logged and reported through the notifier exactly
// once; they are returned in the Outcome for bookkeeping only. The progress
// status is released on every path.
func (g *Generator) GenerateTitle(ctx context.Context, doc vault.Document, content string) (out Outcome) {
	out.Document = doc
	release := g.notifier().Status(fmt.Sprintf("Generating title for %s…", doc.Name()))
	defer release()
	defer func() {
		if r := recover(); r != nil {
			out.Err = fmt.Errorf("unexpected failure: %v", r)
		}
		if out.Err != nil {
			g.reportFailure(doc, out.Provider, out.Err)
		}
	}()

	out.Title, out.NewPath, out.Err = g.generate(ctx, doc, content, &out.Provider)
	return out
}

// generate records the provider name in *providerName as soon as it is known
// so that failures can be attributed.
func (g *Generator) generate(ctx context.Context, doc vault.Document, content string, providerName *string) (string, string, error) {
	s := g.Settings.Settings()
	*providerName = string(s.Provider)
	prompt := template.Render(s.Prompt(), content)

	if s.Provider == settings.OpenAI && strings.TrimSpace(s.OpenAIAPIKey) == "" {
		return "", "", &llm.ConfigError{Setting: "openAiApiKey"}
	}
	provider, opts, err := g.Providers.Resolve(s)
	if err != nil {
		return "", "", err
	}
	*providerName = provider.Name()

	if n := llm.EstimateTokens(prompt); !llm.FitsInContext(opts.Model, n) {
		// The prompt is still sent unmodified.
		log.Warn().Str("path", doc.Path).Str("model", opts.Model).Int("est_tokens", n).Msg("prompt may exceed model context")
	}
	raw, err := provider.Complete(ctx, prompt, opts)
	if err != nil {
		return "", "", err
	}
	name := Sanitize(raw)
	if name == "" {
		return "", "", fmt.Errorf("%s: %w", provider.Name(), ErrEmptyTitle)
	}

	target := vault.TargetPath(doc.Path, name)
	if g.DryRun {
		log.Info().Str("path", doc.Path).Str("target", target).Msg("dry run: would rename")
		return name, target, nil
	}
	if err := g.Vault.Rename(ctx, doc, target); err != nil {
		return name, "", err
	}
	log.Info().Str("provider", provider.Name()).Str("from", doc.Path).Str("to", target).Msg("renamed")
	return name, target, nil
}

func (g *Generator) reportFailure(doc vault.Document, provider string, err error) {
	ev := log.Error().Err(err).Str("path", doc.Path)
	if provider != "" {
		ev = ev.Str("provider", provider)
	}
	ev.Msg("title generation failed")
	g.notifier().Notice(fmt.Sprintf("Title generation failed for %s: %v", doc.Name(), err))
}
