// backend/src/ai/factory.go
package ai

import (
	"fmt"
	"strings"
)

// NewProvider builds the provider named in cfg.Provider. The empty string
// and "auto" run the priority selector; explicit names bypass it.
func NewProvider(cfg Config) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderAuto:
		return autoSelect(cfg)
	case ProviderGemini:
		return NewGeminiProvider(cfg), nil
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg), nil
	case ProviderMock:
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("ai: unsupported provider %q", cfg.Provider)
	}
}

// autoSelect instantiates providers in fixed priority order, Gemini then
// OpenAI, and adopts the first whose availability check succeeds. No
// credentials anywhere is a configuration error.
func autoSelect(cfg Config) (Provider, error) {
	if g := NewGeminiProvider(cfg); g.Available() {
		return g, nil
	}
	if o := NewOpenAIProvider(cfg); o.Available() {
		return o, nil
	}
	return nil, ErrNoCredentials
}
