package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAI is the chat/completions style provider. It owns a single long-lived
// SDK handle whose credential changes only through Refresh.
type OpenAI struct {
	httpClient *http.Client

	mu      sync.RWMutex
	client  Client
	apiKey  string
	baseURL string
}

// NewOpenAI builds the provider with an initial credential. httpClient may be
// nil, in which case the SDK default is used.
func NewOpenAI(httpClient *http.Client, apiKey, baseURL string) *OpenAI {
	p := &OpenAI{httpClient: httpClient}
	p.Refresh(apiKey, baseURL)
	return p
}

// NewOpenAIWithClient wraps an existing client. Refresh replaces it with a
// real SDK client.
func NewOpenAIWithClient(c Client) *OpenAI {
	return &OpenAI{client: c}
}

// Refresh rebuilds the SDK handle for a new credential or base URL. It is
// called whenever settings are saved.
func (p *OpenAI) Refresh(apiKey, baseURL string) {
	cfg := openai.DefaultConfig(strings.TrimSpace(apiKey))
	if b := strings.TrimSpace(baseURL); b != "" {
		cfg.BaseURL = b
	}
	if p.httpClient != nil {
		cfg.HTTPClient = p.httpClient
	}
	c := openai.NewClientWithConfig(cfg)

	p.mu.Lock()
	p.client = c
	p.apiKey = strings.TrimSpace(apiKey)
	p.baseURL = strings.TrimSpace(baseURL)
	p.mu.Unlock()
	log.Debug().Str("base_url", cfg.BaseURL).Bool("has_key", apiKey != "").Msg("openai client refreshed")
}

func (p *OpenAI) handle() Client {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.client
}

// Name implements Provider.
func (p *OpenAI) Name() string { return "openai" }

// legacyFamilies are model name prefixes of pre-chat completion models.
var legacyFamilies = []string{"davinci", "curie", "babbage", "ada"}

// IsLegacyModel reports whether model should be sent to the single-prompt
// completions endpoint rather than the chat endpoint. The check is a
// substring heuristic over the model name.
func IsLegacyModel(model string) bool {
	m := strings.ToLower(strings.TrimSpace(model))
	if strings.Contains(m, "instruct") || strings.HasPrefix(m, "text-") {
		return true
	}
	for _, f := range legacyFamilies {
		if strings.HasPrefix(m, f) {
			return true
		}
	}
	return false
}

// Complete sends prompt to the legacy completions endpoint or the chat
// endpoint depending on the model name. A missing choice yields "".
func (p *OpenAI) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	c := p.handle()
	if c == nil {
		return "", &ProviderError{Provider: p.Name(), Err: errors.New("client not initialized")}
	}
	if IsLegacyModel(opts.Model) {
		return p.completeLegacy(ctx, c, prompt, opts)
	}
	return p.completeChat(ctx, c, prompt, opts)
}

func (p *OpenAI) completeLegacy(ctx context.Context, c Client, prompt string, opts Options) (string, error) {
	req := openai.CompletionRequest{
		Model:       opts.Model,
		Prompt:      prompt,
		MaxTokens:   MaxOutputTokens,
		Temperature: Temperature,
		N:           1,
	}
	log.Debug().Str("model", opts.Model).Msg("openai legacy completion")
	resp, err := c.CreateCompletion(ctx, req)
	if err != nil {
		return "", p.wrap(err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Text, nil
}

func (p *OpenAI) completeChat(ctx context.Context, c Client, prompt string, opts Options) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: opts.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxCompletionTokens: MaxOutputTokens,
		Temperature:         Temperature,
		N:                   1,
		ReasoningEffort:     strings.TrimSpace(opts.ReasoningEffort),
	}
	log.Debug().Str("model", opts.Model).Msg("openai chat completion")
	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", p.wrap(err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// ListModels implements ModelLister when the underlying client supports it.
func (p *OpenAI) ListModels(ctx context.Context) (openai.ModelsList, error) {
	lister, ok := p.handle().(ModelLister)
	if !ok {
		return openai.ModelsList{}, errors.New("model listing not supported")
	}
	list, err := lister.ListModels(ctx)
	if err != nil {
		return list, p.wrap(err)
	}
	return list, nil
}

// wrap converts SDK errors into a ProviderError, keeping the HTTP status when
// the SDK exposes one.
func (p *OpenAI) wrap(err error) error {
	pe := &ProviderError{Provider: p.Name(), Err: err}
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		pe.StatusCode = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		pe.StatusCode = reqErr.HTTPStatusCode
	}
	return pe
}
