package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"github.com/kolsha/yousum/internal/resilience/circuitbreaker"
	"github.com/kolsha/yousum/internal/resilience/retry"
	"github.com/kolsha/yousum/internal/utils/text"
)

// OpenAI implements the Summarizer interface using OpenAI's chat API.
// Unlike Gemini it has no video-understanding input, so the video URL is
// embedded in the prompt and the model works from whatever it knows about
// the video. Includes circuit breaker and retry logic.
type OpenAI struct {
	client          *openai.Client
	circuitBreaker  *circuitbreaker.CircuitBreaker
	retryConfig     retry.Config
	config          Config
	metricsRecorder SummaryMetricsRecorder
}

// NewOpenAI creates a new OpenAI summarizer with the given API key.
// It automatically configures circuit breaker, retry logic and metrics recording.
func NewOpenAI(apiKey string, config Config) (*OpenAI, error) {
	config = config.withDefaults(defaultOpenAIModel)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid openai configuration: %w", err)
	}

	slog.Info("Initialized OpenAI summarizer",
		slog.String("model", config.Model),
		slog.Duration("timeout", config.Timeout))

	return &OpenAI{
		client:          openai.NewClient(apiKey),
		circuitBreaker:  circuitbreaker.New(circuitbreaker.OpenAIAPIConfig()),
		retryConfig:     retry.AIAPIConfig(),
		config:          config,
		metricsRecorder: NewPrometheusSummaryMetrics(),
	}, nil
}

// SummarizeVideo generates a summary of the video behind videoURL.
// It uses circuit breaker and retry logic for improved reliability.
func (o *OpenAI) SummarizeVideo(ctx context.Context, videoURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.config.Timeout)
	defer cancel()

	var result string

	retryErr := retry.WithBackoff(ctx, o.retryConfig, func() error {
		cbResult, err := o.circuitBreaker.Execute(func() (interface{}, error) {
			return o.doSummarize(ctx, videoURL)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("openai api circuit breaker open, request rejected",
					slog.String("service", "openai-api"),
					slog.String("state", o.circuitBreaker.State().String()))
				return fmt.Errorf("openai api unavailable: circuit breaker open")
			}
			return err
		}

		result = cbResult.(string)
		return nil
	})

	if retryErr != nil {
		return "", fmt.Errorf("openai summarize failed after retries: %w", retryErr)
	}

	return result, nil
}

// buildPrompt embeds the video URL into the configured instruction.
func (o *OpenAI) buildPrompt(videoURL string) string {
	return fmt.Sprintf("%s\n\nVideo: %s", o.config.Prompt, videoURL)
}

// doSummarize performs the actual API call without retry or circuit breaker.
func (o *OpenAI) doSummarize(ctx context.Context, videoURL string) (string, error) {
	slog.InfoContext(ctx, "Starting video summarization",
		slog.String("provider", "openai"),
		slog.String("video_url", videoURL),
		slog.String("model", o.config.Model))

	start := time.Now()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     o.config.Model,
		MaxTokens: o.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: o.buildPrompt(videoURL),
		}},
	})

	duration := time.Since(start)
	o.metricsRecorder.RecordDuration(duration)

	if err != nil {
		o.metricsRecorder.RecordFailure()
		slog.ErrorContext(ctx, "Video summarization failed",
			slog.String("provider", "openai"),
			slog.String("video_url", videoURL),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("openai api error: %w", err)
	}

	// Safety check to prevent panic on array access
	if len(resp.Choices) == 0 {
		o.metricsRecorder.RecordFailure()
		slog.ErrorContext(ctx, "OpenAI API returned empty response",
			slog.Duration("duration", duration))
		return "", fmt.Errorf("openai api returned empty response")
	}

	summary := resp.Choices[0].Message.Content
	o.metricsRecorder.RecordSuccess()
	o.metricsRecorder.RecordLength(text.CountRunes(summary))

	slog.InfoContext(ctx, "Video summarization completed",
		slog.String("provider", "openai"),
		slog.Int("summary_length", text.CountRunes(summary)),
		slog.Duration("duration", duration))

	return summary, nil
}
