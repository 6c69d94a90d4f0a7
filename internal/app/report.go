package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hyperifyio/autotitle/internal/settings"
	"github.com/hyperifyio/autotitle/internal/title"
)

// runSummary counts outcomes of one run.
type runSummary struct {
	Total   int
	Renamed int
	Failed  int
}

func summarize(outcomes []title.Outcome) runSummary {
	s := runSummary{Total: len(outcomes)}
	for _, o := range outcomes {
		if o.Err != nil {
			s.Failed++
		} else {
			s.Renamed++
		}
	}
	return s
}

// buildReport renders the Markdown run report. API keys never appear in it.
func buildReport(s settings.Settings, outcomes []title.Outcome, dryRun bool, now time.Time) string {
	sum := summarize(outcomes)
	model := s.OpenAIModel
	if s.Provider == settings.Fireworks {
		model = s.FireworksModel
	}

	var b strings.Builder
	b.WriteString("# Title generation report\n\n")
	fmt.Fprintf(&b, "Date: %s\n\n", now.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "Provider: %s (model %s)\n\n", s.Provider, model)
	if dryRun {
		b.WriteString("Mode: dry run, nothing was renamed\n\n")
	}
	verb := "Renamed"
	if dryRun {
		verb = "Would rename"
	}
	fmt.Fprintf(&b, "Documents: %d. %s: %d. Failed: %d.\n\n", sum.Total, verb, sum.Renamed, sum.Failed)

	if len(outcomes) > 0 {
		b.WriteString("## Documents\n\n")
		b.WriteString("| # | Document | Result |\n")
		b.WriteString("|---|----------|--------|\n")
		for i, o := range outcomes {
			result := ""
			if o.Err != nil {
				result = "failed: " + o.Err.Error()
			} else {
				result = "`" + filepath.Base(o.NewPath) + "`"
			}
			fmt.Fprintf(&b, "| %d | %s | %s |\n", i+1, tableCell(o.Document.Name()+o.Document.Ext()), tableCell(result))
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n")
	b.WriteString(VersionString())
	b.WriteString("\n")
	return b.String()
}

// tableCell keeps a value on one Markdown table row.
func tableCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

// writeReports writes the Markdown and optional PDF report.
func writeReports(cfg Config, md string) error {
	if p := strings.TrimSpace(cfg.ReportPath); p != "" {
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return fmt.Errorf("report dir: %w", err)
		}
		if err := os.WriteFile(p, []byte(md), 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	if p := strings.TrimSpace(cfg.ReportPDFPath); p != "" {
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return fmt.Errorf("report dir: %w", err)
		}
		if err := writeReportPDF(md, p); err != nil {
			return fmt.Errorf("write pdf report: %w", err)
		}
	}
	return nil
}
