package summarizer

import (
	"context"
	"fmt"

	"github.com/kolsha/yousum/internal/config"
)

// NewFromConfig builds the Summarizer selected by cfg.Provider.
// The provider API key is assumed validated by config.Load; an unknown
// provider is still rejected here so the factory never returns nil silently.
func NewFromConfig(ctx context.Context, cfg *config.Config) (Summarizer, error) {
	providerConfig := Config{
		Prompt:  cfg.SummaryPrompt,
		Timeout: cfg.SummarizerTimeout,
	}

	switch cfg.Provider {
	case config.ProviderGemini:
		return NewGemini(ctx, cfg.GeminiAPIKey, providerConfig)
	case config.ProviderOpenAI:
		return NewOpenAI(cfg.OpenAIAPIKey, providerConfig)
	case config.ProviderClaude:
		return NewClaude(cfg.AnthropicAPIKey, providerConfig)
	case config.ProviderNoOp:
		return NewNoOp(), nil
	default:
		return nil, fmt.Errorf("unknown summarizer provider %q", cfg.Provider)
	}
}
