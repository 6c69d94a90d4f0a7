package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/autotitle/internal/llm"
	"github.com/hyperifyio/autotitle/internal/settings"
	"github.com/hyperifyio/autotitle/internal/title"
	"github.com/hyperifyio/autotitle/internal/vault"
)

// App wires the settings store, both providers, the vault and the notifier
// for one process.
type App struct {
	cfg        Config
	store      settings.Store
	httpClient *http.Client
	providers  *llm.Registry
	vault      *vault.FileVault
	notifier   title.Notifier

	mu      sync.RWMutex
	current settings.Settings
}

// ErrDocumentsFailed is returned by Run when at least one document could not
// be titled. Per the exit code policy this maps to exit status 2.
var ErrDocumentsFailed = errors.New("some documents failed")

// New loads the persisted settings, applies runtime overrides and builds the
// providers. With cfg.Save the overridden settings are persisted.
func New(ctx context.Context, cfg Config) (*App, error) {
	path := strings.TrimSpace(cfg.SettingsPath)
	if path == "" {
		path = settings.DefaultPath()
	}
	store := settings.NewJSONStore(path)
	s, err := store.Load()
	if err != nil {
		// An unreadable or corrupt record is not fatal; Load returned defaults.
		log.Warn().Err(err).Str("path", path).Msg("settings unreadable; using defaults")
	}
	s, err = applyOverrides(s, cfg)
	if err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}

	hc := newHTTPClient()
	a := &App{
		cfg:        cfg,
		store:      store,
		httpClient: hc,
		providers: &llm.Registry{
			OpenAI:    llm.NewOpenAI(hc, s.OpenAIAPIKey, s.OpenAIBaseURL),
			Fireworks: llm.NewFireworks(hc, cfg.FireworksURL),
		},
		vault:    vault.NewFileVault(),
		notifier: newConsoleNotifier(os.Stderr),
		current:  s,
	}

	if cfg.Save {
		if err := a.SaveSettings(s); err != nil {
			return nil, err
		}
		log.Info().Str("path", path).Msg("settings saved")
	}

	if cfg.Preflight {
		a.preflight(ctx)
	}
	return a, nil
}

// preflight lists models on the OpenAI-compatible endpoint. It is
// best-effort and never fails startup.
func (a *App) preflight(ctx context.Context) {
	s := a.Settings()
	if s.Provider != settings.OpenAI || strings.TrimSpace(s.OpenAIAPIKey) == "" {
		log.Debug().Str("provider", string(s.Provider)).Msg("preflight skipped")
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	models, err := a.providers.OpenAI.ListModels(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("LLM model list failed; continuing")
		return
	}
	if len(models.Models) == 0 {
		log.Warn().Msg("LLM returned zero models")
		return
	}
	found := false
	for _, m := range models.Models {
		if m.ID == s.OpenAIModel {
			found = true
			break
		}
	}
	log.Info().Int("count", len(models.Models)).Bool("model_listed", found).Msg("LLM models available")
}

// Settings returns the current settings record.
func (a *App) Settings() settings.Settings {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.current
}

// SaveSettings persists s, makes it current and refreshes the OpenAI handle
// so the next request uses the new credential.
func (a *App) SaveSettings(s settings.Settings) error {
	if err := a.store.Save(s); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	a.mu.Lock()
	a.current = s
	a.mu.Unlock()
	a.providers.OpenAI.Refresh(s.OpenAIAPIKey, s.OpenAIBaseURL)
	return nil
}

// Run titles every configured document one at a time and writes the run
// report when one is requested.
func (a *App) Run(ctx context.Context) error {
	if len(a.cfg.Documents) == 0 {
		log.Info().Msg("no documents to title")
		return nil
	}
	docs := make([]vault.Document, 0, len(a.cfg.Documents))
	for _, p := range a.cfg.Documents {
		docs = append(docs, vault.Document{Path: p})
	}

	g := &title.Generator{
		Settings:  a,
		Providers: a.providers,
		Vault:     a.vault,
		Notifier:  a.notifier,
		DryRun:    a.cfg.DryRun,
	}
	outcomes := g.GenerateTitles(ctx, docs)
	sum := summarize(outcomes)
	log.Info().Int("documents", sum.Total).Int("renamed", sum.Renamed).Int("failed", sum.Failed).Bool("dry_run", a.cfg.DryRun).Msg("run complete")

	if a.cfg.ReportPath != "" || a.cfg.ReportPDFPath != "" {
		md := buildReport(a.Settings(), outcomes, a.cfg.DryRun, time.Now())
		if err := writeReports(a.cfg, md); err != nil {
			log.Warn().Err(err).Msg("report not written")
		}
	}

	if sum.Failed > 0 {
		return fmt.Errorf("%d of %d: %w", sum.Failed, sum.Total, ErrDocumentsFailed)
	}
	return nil
}

// Close releases idle connections.
func (a *App) Close() {
	if a.httpClient != nil {
		a.httpClient.CloseIdleConnections()
	}
}
