package llm

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const (
	// MaxOutputTokens caps every completion; titles are short.
	MaxOutputTokens = 50
	// Temperature is the sampling temperature sent to every provider.
	Temperature = 0.6
)

// Options carries the per-request provider settings resolved from the
// current settings record.
type Options struct {
	APIKey string
	Model  string
	// ReasoningEffort is forwarded on chat requests when non-empty.
	ReasoningEffort string
}

// Provider turns a rendered prompt into raw completion text. Implementations
// isolate their endpoint selection and response parsing.
type Provider interface {
	Name() string
	Complete(ctx context.Context, prompt string, opts Options) (string, error)
}

// Client is the subset of *openai.Client used by the OpenAI provider. It
// mirrors the SDK methods so that any OpenAI-compatible backend or a test
// double can be adapted.
type Client interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
	CreateCompletion(ctx context.Context, request openai.CompletionRequest) (openai.CompletionResponse, error)
}

// ModelLister is an optional capability that allows listing available models.
// Callers should use a type assertion to detect availability.
type ModelLister interface {
	ListModels(ctx context.Context) (openai.ModelsList, error)
}

// ConfigError reports a setting the user has to fill in before a title can
// be generated. No network call is made when it is returned.
type ConfigError struct {
	Setting string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s is not set", e.Setting)
}

// ProviderError wraps a failed provider call. StatusCode and Body are set
// when the provider answered with a non-success HTTP status.
type ProviderError struct {
	Provider   string
	StatusCode int
	Body       string
	Err        error
}

func (e *ProviderError) Error() string {
	var b strings.Builder
	b.WriteString(e.Provider)
	b.WriteString(": ")
	if e.StatusCode != 0 {
		b.WriteString(fmt.Sprintf("HTTP %d", e.StatusCode))
		if body := strings.TrimSpace(e.Body); body != "" {
			b.WriteString(": ")
			b.WriteString(body)
		}
		if e.Err != nil {
			b.WriteString(": ")
		}
	}
	if e.Err != nil {
		b.WriteString(e.Err.Error())
	}
	if e.StatusCode == 0 && e.Err == nil {
		b.WriteString("request failed")
	}
	return b.String()
}

func (e *ProviderError) Unwrap() error { return e.Err }
