package llm

import (
	"fmt"

	"github.com/hyperifyio/autotitle/internal/settings"
)

// Registry holds one instance of each provider variant and picks the active
// one from the current settings.
type Registry struct {
	OpenAI    *OpenAI
	Fireworks *Fireworks
}

// Resolve returns the provider selected by s together with the options it
// needs. It performs no network I/O.
func (r *Registry) Resolve(s settings.Settings) (Provider, Options, error) {
	switch s.Provider {
	case settings.OpenAI:
		if r.OpenAI == nil {
			return nil, Options{}, fmt.Errorf("provider %q is not configured", s.Provider)
		}
		return r.OpenAI, Options{
			APIKey:          s.OpenAIAPIKey,
			Model:           s.OpenAIModel,
			ReasoningEffort: s.OpenAIReasoningEffort,
		}, nil
	case settings.Fireworks:
		if r.Fireworks == nil {
			return nil, Options{}, fmt.Errorf("provider %q is not configured", s.Provider)
		}
		return r.Fireworks, Options{
			APIKey: s.FireworksAPIKey,
			Model:  s.FireworksModel,
		}, nil
	default:
		return nil, Options{}, &ConfigError{Setting: "provider"}
	}
}
