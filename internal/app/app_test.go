package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperifyio/autotitle/internal/settings"
)

// llmStub serves the OpenAI chat endpoint and the Fireworks responses
// endpoint with a canned title, recording every request.
type llmStub struct {
	mu     sync.Mutex
	title  string
	paths  []string
	authz  []string
	bodies []map[string]any
}

func (s *llmStub) server(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		s.mu.Lock()
		s.paths = append(s.paths, r.URL.Path)
		s.authz = append(s.authz, r.Header.Get("Authorization"))
		s.bodies = append(s.bodies, body)
		s.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/chat/completions":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"choices": []map[string]any{
					{"message": map[string]string{"role": "assistant", "content": s.title}},
				},
			})
		case "/inference/v1/responses":
			_ = json.NewEncoder(w).Encode(map[string]any{"output_text": s.title})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func (s *llmStub) requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.paths)
}

func writeDoc(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func newTestApp(t *testing.T, cfg Config) (*App, *bytes.Buffer) {
	t.Helper()
	if cfg.SettingsPath == "" {
		cfg.SettingsPath = filepath.Join(t.TempDir(), "settings.json")
	}
	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(a.Close)
	var buf bytes.Buffer
	a.notifier = &consoleNotifier{w: &buf}
	return a, &buf
}

func TestRun_OpenAIRenamesAndWritesReport(t *testing.T) {
	stub := &llmStub{title: `"Trip: Plan"`}
	srv := stub.server(t)
	dir := t.TempDir()
	doc := writeDoc(t, dir, "Untitled.md", "Pack water and snacks for the hike.")
	report := filepath.Join(dir, "out", "report.md")

	a, _ := newTestApp(t, Config{
		Documents:     []string{doc},
		OpenAIAPIKey:  "sk-test",
		OpenAIBaseURL: srv.URL + "/v1",
		ReportPath:    report,
	})
	require.NoError(t, a.Run(context.Background()))

	_, err := os.Stat(filepath.Join(dir, "Trip Plan.md"))
	assert.NoError(t, err)
	_, err = os.Stat(doc)
	assert.True(t, os.IsNotExist(err))

	require.Equal(t, 1, stub.requests())
	assert.Equal(t, "/v1/chat/completions", stub.paths[0])
	assert.Equal(t, "Bearer sk-test", stub.authz[0])

	md, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Contains(t, string(md), "`Trip Plan.md`")
	assert.NotContains(t, string(md), "sk-test")
}

func TestRun_FireworksContinuesPastFailure(t *testing.T) {
	stub := &llmStub{title: "Grocery List"}
	srv := stub.server(t)
	dir := t.TempDir()
	missing := filepath.Join(dir, "gone.md")
	doc := writeDoc(t, dir, "note.md", "milk, eggs, bread")

	a, notices := newTestApp(t, Config{
		Documents:       []string{missing, doc},
		Provider:        "fireworks",
		FireworksAPIKey: "fw-test",
		FireworksURL:    srv.URL + "/inference/v1/responses",
	})
	err := a.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDocumentsFailed))

	_, err = os.Stat(filepath.Join(dir, "Grocery List.md"))
	assert.NoError(t, err)
	assert.Contains(t, notices.String(), "Title generation failed for gone")

	require.Equal(t, 1, stub.requests())
	assert.Equal(t, false, stub.bodies[0]["store"])
	assert.Equal(t, "Bearer fw-test", stub.authz[0])
}

func TestRun_MissingKeyMakesNoRequest(t *testing.T) {
	stub := &llmStub{title: "Never"}
	srv := stub.server(t)
	dir := t.TempDir()
	doc := writeDoc(t, dir, "a.md", "text")

	a, notices := newTestApp(t, Config{
		Documents:     []string{doc},
		OpenAIBaseURL: srv.URL + "/v1",
	})
	err := a.Run(context.Background())
	assert.True(t, errors.Is(err, ErrDocumentsFailed))
	assert.Equal(t, 0, stub.requests())
	assert.Contains(t, notices.String(), "openAiApiKey")
	_, err = os.Stat(doc)
	assert.NoError(t, err)
}

func TestRun_DryRunLeavesFiles(t *testing.T) {
	stub := &llmStub{title: "Renamed"}
	srv := stub.server(t)
	dir := t.TempDir()
	doc := writeDoc(t, dir, "a.md", "text")

	a, _ := newTestApp(t, Config{
		Documents:     []string{doc},
		OpenAIAPIKey:  "sk",
		OpenAIBaseURL: srv.URL + "/v1",
		DryRun:        true,
	})
	require.NoError(t, a.Run(context.Background()))
	_, err := os.Stat(doc)
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "Renamed.md"))
	assert.True(t, os.IsNotExist(err))
}

// Saving settings refreshes the OpenAI credential for the next request.
func TestSaveSettings_RefreshesCredential(t *testing.T) {
	stub := &llmStub{title: "Fresh"}
	srv := stub.server(t)
	dir := t.TempDir()
	settingsPath := filepath.Join(dir, "cfg", "settings.json")
	doc := writeDoc(t, dir, "a.md", "text")

	a, _ := newTestApp(t, Config{
		Documents:     []string{doc},
		SettingsPath:  settingsPath,
		OpenAIAPIKey:  "sk-old",
		OpenAIBaseURL: srv.URL + "/v1",
		Save:          true,
	})
	stored, err := settings.NewJSONStore(settingsPath).Load()
	require.NoError(t, err)
	assert.Equal(t, "sk-old", stored.OpenAIAPIKey)

	s := a.Settings()
	s.OpenAIAPIKey = "sk-new"
	require.NoError(t, a.SaveSettings(s))
	require.NoError(t, a.Run(context.Background()))

	require.Equal(t, 1, stub.requests())
	assert.Equal(t, "Bearer sk-new", stub.authz[0])
	raw, err := os.ReadFile(settingsPath)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(raw), "sk-new"))
}

func TestNew_InvalidProviderOverride(t *testing.T) {
	_, err := New(context.Background(), Config{
		SettingsPath: filepath.Join(t.TempDir(), "s.json"),
		Provider:     "nope",
	})
	assert.Error(t, err)
}
