package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/autotitle/internal/app"
	"github.com/hyperifyio/autotitle/internal/template"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	})

	var (
		cfg         app.Config
		configPath  string
		listPresets bool
		showVersion bool
	)

	flag.StringVar(&configPath, "config", os.Getenv("AUTOTITLE_CONFIG"), "Path to YAML or JSON config file")
	flag.StringVar(&cfg.SettingsPath, "settings", "", "Path to the persisted settings file (default: per-user config dir)")
	flag.StringVar(&cfg.Provider, "provider", "", "Provider: openai or fireworks")
	flag.StringVar(&cfg.OpenAIAPIKey, "openai.key", "", "OpenAI API key")
	flag.StringVar(&cfg.OpenAIModel, "openai.model", "", "OpenAI model name")
	flag.StringVar(&cfg.OpenAIBaseURL, "openai.base", "", "OpenAI-compatible base URL")
	flag.StringVar(&cfg.OpenAIReasoningEffort, "openai.reasoningEffort", "", "Reasoning effort for chat models (low, medium, high)")
	flag.StringVar(&cfg.FireworksAPIKey, "fireworks.key", "", "Fireworks API key")
	flag.StringVar(&cfg.FireworksModel, "fireworks.model", "", "Fireworks model name")
	flag.StringVar(&cfg.FireworksURL, "fireworks.url", "", "Fireworks responses endpoint")
	flag.StringVar(&cfg.Prompt, "prompt", "", "Custom prompt template; {{content}} is replaced with the note text")
	flag.StringVar(&cfg.PromptFile, "prompt.file", "", "Path to file containing the prompt template (exclusive with -prompt)")
	flag.StringVar(&cfg.PromptPreset, "prompt.preset", "", "Built-in prompt preset (see -prompt.list)")
	flag.BoolVar(&listPresets, "prompt.list", false, "List built-in prompt presets and exit")
	flag.BoolVar(&cfg.DryRun, "dry-run", false, "Generate titles without renaming")
	flag.BoolVar(&cfg.Save, "save", false, "Persist provider, credential and prompt overrides to the settings file")
	flag.BoolVar(&cfg.Preflight, "preflight", false, "List models on the OpenAI endpoint before running")
	flag.StringVar(&cfg.ReportPath, "report", "", "Write a Markdown run report to this path")
	flag.StringVar(&cfg.ReportPDFPath, "report.pdf", "", "Also render the run report to PDF at this path")
	flag.BoolVar(&cfg.Verbose, "v", false, "Verbose logging")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <document>...\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Println(app.VersionString())
		return
	}
	if listPresets {
		for _, p := range template.Presets() {
			fmt.Printf("%-12s %s\n", p.Name, p.Description)
		}
		return
	}

	// Precedence: flags > env (.env files included) > config file > stored settings.
	if err := app.LoadEnvFiles(".env", ".env.local"); err != nil {
		log.Error().Err(err).Msg("load env files")
		os.Exit(1)
	}
	app.ApplyEnvToConfig(&cfg)
	if strings.TrimSpace(configPath) != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("path", configPath).Msg("load config file")
			os.Exit(1)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	cfg.Documents = flag.Args()

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := app.ValidateConfig(cfg); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		flag.Usage()
		os.Exit(1)
	}
	if err := app.LoadPromptFile(&cfg); err != nil {
		log.Error().Err(err).Msg("load prompt")
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		// Exit code policy: 2 when some documents failed, 1 for startup errors.
		if errors.Is(err, app.ErrDocumentsFailed) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(cfg app.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer a.Close()

	return a.Run(ctx)
}
