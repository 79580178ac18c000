package summarizer

import (
	"fmt"
	"time"
)

// Config holds the parameters shared by all summarization providers.
type Config struct {
	// Prompt is the instruction sent alongside the video reference.
	Prompt string

	// Model is the provider-specific model identifier.
	Model string

	// MaxTokens caps the provider response where the API requires it.
	MaxTokens int

	// Timeout is the maximum duration for a single summarization API call.
	Timeout time.Duration
}

// Default models per provider.
const (
	defaultGeminiModel = "models/gemini-2.5-flash"
	defaultOpenAIModel = "gpt-4o-mini"

	defaultMaxTokens = 2048
)

// Validate checks the configuration and returns an error if invalid.
func (c Config) Validate() error {
	if c.Prompt == "" {
		return fmt.Errorf("prompt cannot be empty")
	}
	if c.Model == "" {
		return fmt.Errorf("model cannot be empty")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive, got %d", c.MaxTokens)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	return nil
}

// withDefaults fills unset fields with provider defaults.
func (c Config) withDefaults(model string) Config {
	if c.Model == "" {
		c.Model = model
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = defaultMaxTokens
	}
	if c.Timeout == 0 {
		c.Timeout = 60 * time.Second
	}
	return c
}
