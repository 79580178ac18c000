package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sony/gobreaker"

	"github.com/kolsha/yousum/internal/resilience/circuitbreaker"
	"github.com/kolsha/yousum/internal/resilience/retry"
	"github.com/kolsha/yousum/internal/utils/text"
)

// Claude implements the Summarizer interface using Anthropic's Claude API.
// Like the OpenAI provider it has no video input, so the video URL travels
// inside the prompt. Includes circuit breaker and retry logic.
type Claude struct {
	client          anthropic.Client
	circuitBreaker  *circuitbreaker.CircuitBreaker
	retryConfig     retry.Config
	config          Config
	metricsRecorder SummaryMetricsRecorder
}

// NewClaude creates a new Claude summarizer with the given API key.
// It automatically configures circuit breaker, retry logic and metrics recording.
func NewClaude(apiKey string, config Config) (*Claude, error) {
	config = config.withDefaults(string(anthropic.ModelClaudeSonnet4_5_20250929))
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid claude configuration: %w", err)
	}

	slog.Info("Initialized Claude summarizer",
		slog.String("model", config.Model),
		slog.Duration("timeout", config.Timeout))

	return &Claude{
		client:          anthropic.NewClient(option.WithAPIKey(apiKey)),
		circuitBreaker:  circuitbreaker.New(circuitbreaker.ClaudeAPIConfig()),
		retryConfig:     retry.AIAPIConfig(),
		config:          config,
		metricsRecorder: NewPrometheusSummaryMetrics(),
	}, nil
}

// SummarizeVideo generates a summary of the video behind videoURL.
// It uses circuit breaker and retry logic for improved reliability.
func (c *Claude) SummarizeVideo(ctx context.Context, videoURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	var result string

	retryErr := retry.WithBackoff(ctx, c.retryConfig, func() error {
		cbResult, err := c.circuitBreaker.Execute(func() (interface{}, error) {
			return c.doSummarize(ctx, videoURL)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("claude api circuit breaker open, request rejected",
					slog.String("service", "claude-api"),
					slog.String("state", c.circuitBreaker.State().String()))
				return fmt.Errorf("claude api unavailable: circuit breaker open")
			}
			return err
		}

		result = cbResult.(string)
		return nil
	})

	if retryErr != nil {
		return "", fmt.Errorf("claude summarize failed after retries: %w", retryErr)
	}

	return result, nil
}

// doSummarize performs the actual API call without retry or circuit breaker.
func (c *Claude) doSummarize(ctx context.Context, videoURL string) (string, error) {
	slog.InfoContext(ctx, "Starting video summarization",
		slog.String("provider", "claude"),
		slog.String("video_url", videoURL),
		slog.String("model", c.config.Model))

	start := time.Now()

	prompt := fmt.Sprintf("%s\n\nVideo: %s", c.config.Prompt, videoURL)

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.config.Model),
		MaxTokens: int64(c.config.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(prompt),
			),
		},
	})

	duration := time.Since(start)
	c.metricsRecorder.RecordDuration(duration)

	if err != nil {
		c.metricsRecorder.RecordFailure()
		slog.ErrorContext(ctx, "Video summarization failed",
			slog.String("provider", "claude"),
			slog.String("video_url", videoURL),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("claude api error: %w", err)
	}

	// Safety check to prevent panic on array access
	if len(message.Content) == 0 {
		c.metricsRecorder.RecordFailure()
		slog.ErrorContext(ctx, "Claude API returned empty response",
			slog.Duration("duration", duration))
		return "", fmt.Errorf("claude api returned empty response")
	}

	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		c.metricsRecorder.RecordFailure()
		return "", fmt.Errorf("claude api returned unexpected content type")
	}

	summary := textBlock.Text
	c.metricsRecorder.RecordSuccess()
	c.metricsRecorder.RecordLength(text.CountRunes(summary))

	slog.InfoContext(ctx, "Video summarization completed",
		slog.String("provider", "claude"),
		slog.Int("summary_length", text.CountRunes(summary)),
		slog.Duration("duration", duration))

	return summary, nil
}
