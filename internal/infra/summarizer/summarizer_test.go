package summarizer_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolsha/yousum/internal/config"
	"github.com/kolsha/yousum/internal/infra/summarizer"
)

func TestNoOp_SummarizeVideo(t *testing.T) {
	s := summarizer.NewNoOp()

	summary, err := s.SummarizeVideo(context.Background(), "https://youtu.be/dQw4w9WgXcQ")

	require.NoError(t, err)
	assert.Contains(t, summary, "https://youtu.be/dQw4w9WgXcQ")
}

func TestConfig_Validate(t *testing.T) {
	valid := summarizer.Config{
		Prompt:    "summarize this",
		Model:     "some-model",
		MaxTokens: 1024,
		Timeout:   time.Minute,
	}

	tests := []struct {
		name    string
		mutate  func(*summarizer.Config)
		wantErr string
	}{
		{name: "valid config", mutate: func(c *summarizer.Config) {}},
		{
			name:    "empty prompt",
			mutate:  func(c *summarizer.Config) { c.Prompt = "" },
			wantErr: "prompt",
		},
		{
			name:    "empty model",
			mutate:  func(c *summarizer.Config) { c.Model = "" },
			wantErr: "model",
		},
		{
			name:    "non-positive max tokens",
			mutate:  func(c *summarizer.Config) { c.MaxTokens = 0 },
			wantErr: "max tokens",
		},
		{
			name:    "non-positive timeout",
			mutate:  func(c *summarizer.Config) { c.Timeout = 0 },
			wantErr: "timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewOpenAI_RejectsEmptyPrompt(t *testing.T) {
	_, err := summarizer.NewOpenAI("key", summarizer.Config{})
	assert.Error(t, err)
}

func TestNewFromConfig(t *testing.T) {
	t.Run("noop provider", func(t *testing.T) {
		cfg := &config.Config{
			Provider:          config.ProviderNoOp,
			SummaryPrompt:     "summarize",
			SummarizerTimeout: time.Minute,
		}

		s, err := summarizer.NewFromConfig(context.Background(), cfg)
		require.NoError(t, err)
		assert.IsType(t, &summarizer.NoOp{}, s)
	})

	t.Run("openai provider", func(t *testing.T) {
		cfg := &config.Config{
			Provider:          config.ProviderOpenAI,
			OpenAIAPIKey:      "key",
			SummaryPrompt:     "summarize",
			SummarizerTimeout: time.Minute,
		}

		s, err := summarizer.NewFromConfig(context.Background(), cfg)
		require.NoError(t, err)
		assert.IsType(t, &summarizer.OpenAI{}, s)
	})

	t.Run("claude provider", func(t *testing.T) {
		cfg := &config.Config{
			Provider:          config.ProviderClaude,
			AnthropicAPIKey:   "key",
			SummaryPrompt:     "summarize",
			SummarizerTimeout: time.Minute,
		}

		s, err := summarizer.NewFromConfig(context.Background(), cfg)
		require.NoError(t, err)
		assert.IsType(t, &summarizer.Claude{}, s)
	})

	t.Run("unknown provider", func(t *testing.T) {
		cfg := &config.Config{Provider: "bard", SummaryPrompt: "summarize"}

		_, err := summarizer.NewFromConfig(context.Background(), cfg)
		assert.Error(t, err)
	})
}
