package llm

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

// FireworksEndpoint is the stateless responses endpoint.
const FireworksEndpoint = "https://api.fireworks.ai/inference/v1/responses"

// Fireworks is the stateless responses style provider. Every request is sent
// with store=false so the provider keeps nothing server-side.
type Fireworks struct {
	endpoint string
	client   *resty.Client
}

// NewFireworks builds the provider. An empty endpoint selects
// FireworksEndpoint; httpClient may be nil.
func NewFireworks(httpClient *http.Client, endpoint string) *Fireworks {
	var c *resty.Client
	if httpClient != nil {
		c = resty.NewWithClient(httpClient)
	} else {
		c = resty.New()
	}
	c.SetRetryCount(0).
		SetLogger(restyLogger{}).
		SetHeader("Content-Type", "application/json")
	if strings.TrimSpace(endpoint) == "" {
		endpoint = FireworksEndpoint
	}
	return &Fireworks{endpoint: endpoint, client: c}
}

// Name implements Provider.
func (f *Fireworks) Name() string { return "fireworks" }

// Endpoint returns the URL requests are posted to.
func (f *Fireworks) Endpoint() string { return f.endpoint }

// responsesRequest is the request body. Store has no omitempty so that false
// is always serialized.
type responsesRequest struct {
	Model           string  `json:"model"`
	Input           string  `json:"input"`
	MaxOutputTokens int     `json:"max_output_tokens"`
	Temperature     float64 `json:"temperature"`
	Store           bool    `json:"store"`
}

// Complete posts prompt as a single input string and extracts the output
// text. Unexpected response shapes yield "" rather than an error.
func (f *Fireworks) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return "", &ConfigError{Setting: "fireworksApiKey"}
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		return "", &ConfigError{Setting: "fireworksModel"}
	}

	body := responsesRequest{
		Model:           model,
		Input:           prompt,
		MaxOutputTokens: MaxOutputTokens,
		Temperature:     Temperature,
		Store:           false,
	}
	log.Debug().Str("model", model).Str("endpoint", f.endpoint).Msg("fireworks response request")
	resp, err := f.client.R().
		SetContext(ctx).
		SetAuthToken(apiKey).
		SetBody(body).
		Post(f.endpoint)
	if err != nil {
		pe := &ProviderError{Provider: f.Name(), Err: err}
		if resp != nil && resp.StatusCode() != 0 && !resp.IsSuccess() {
			pe.StatusCode = resp.StatusCode()
		}
		return "", pe
	}
	if !resp.IsSuccess() {
		return "", &ProviderError{
			Provider:   f.Name(),
			StatusCode: resp.StatusCode(),
			Body:       string(resp.Body()),
		}
	}
	text, ok := ExtractOutputText(resp.Body())
	if !ok {
		log.Debug().Int("bytes", len(resp.Body())).Msg("fireworks response had no output text")
	}
	return text, nil
}

// ExtractOutputText reads the completion text from a responses body. It
// prefers the top-level output_text string and falls back to the first
// content text of the last output item. Any structural mismatch returns
// ("", false).
func ExtractOutputText(body []byte) (string, bool) {
	if !gjson.ValidBytes(body) {
		return "", false
	}
	if r := gjson.GetBytes(body, "output_text"); r.Type == gjson.String {
		return r.Str, true
	}
	out := gjson.GetBytes(body, "output")
	if !out.IsArray() {
		return "", false
	}
	items := out.Array()
	if len(items) == 0 {
		return "", false
	}
	content := items[len(items)-1].Get("content")
	if !content.IsArray() {
		return "", false
	}
	first := content.Get("0.text")
	if first.Type != gjson.String {
		return "", false
	}
	return first.Str, true
}

// restyLogger routes resty's internal messages through zerolog.
type restyLogger struct{}

func (restyLogger) Errorf(format string, v ...interface{}) { log.Error().Msgf(format, v...) }
func (restyLogger) Warnf(format string, v ...interface{})  { log.Warn().Msgf(format, v...) }
func (restyLogger) Debugf(format string, v ...interface{}) { log.Debug().Msgf(format, v...) }
