package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
	"google.golang.org/genai"

	"github.com/kolsha/yousum/internal/resilience/circuitbreaker"
	"github.com/kolsha/yousum/internal/resilience/retry"
	"github.com/kolsha/yousum/internal/utils/text"
)

// Gemini implements the Summarizer interface using Google's Gemini API.
// It is the only provider with native video understanding: the video URL is
// passed as file data, so Gemini summarizes the actual video content rather
// than guessing from the link. Includes circuit breaker and retry logic.
type Gemini struct {
	client          *genai.Client
	circuitBreaker  *circuitbreaker.CircuitBreaker
	retryConfig     retry.Config
	config          Config
	metricsRecorder SummaryMetricsRecorder
}

// NewGemini creates a new Gemini summarizer with the given API key.
// It automatically configures circuit breaker, retry logic and metrics recording.
func NewGemini(ctx context.Context, apiKey string, config Config) (*Gemini, error) {
	config = config.withDefaults(defaultGeminiModel)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid gemini configuration: %w", err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	slog.Info("Initialized Gemini summarizer",
		slog.String("model", config.Model),
		slog.Duration("timeout", config.Timeout))

	return &Gemini{
		client:          client,
		circuitBreaker:  circuitbreaker.New(circuitbreaker.GeminiAPIConfig()),
		retryConfig:     retry.AIAPIConfig(),
		config:          config,
		metricsRecorder: NewPrometheusSummaryMetrics(),
	}, nil
}

// SummarizeVideo generates a summary of the video behind videoURL.
// It uses circuit breaker and retry logic for improved reliability.
func (g *Gemini) SummarizeVideo(ctx context.Context, videoURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.config.Timeout)
	defer cancel()

	var result string

	retryErr := retry.WithBackoff(ctx, g.retryConfig, func() error {
		cbResult, err := g.circuitBreaker.Execute(func() (interface{}, error) {
			return g.doSummarize(ctx, videoURL)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("gemini api circuit breaker open, request rejected",
					slog.String("service", "gemini-api"),
					slog.String("state", g.circuitBreaker.State().String()))
				return fmt.Errorf("gemini api unavailable: circuit breaker open")
			}
			return err
		}

		result = cbResult.(string)
		return nil
	})

	if retryErr != nil {
		return "", fmt.Errorf("gemini summarize failed after retries: %w", retryErr)
	}

	return result, nil
}

// doSummarize performs the actual API call without retry or circuit breaker.
func (g *Gemini) doSummarize(ctx context.Context, videoURL string) (string, error) {
	slog.InfoContext(ctx, "Starting video summarization",
		slog.String("provider", "gemini"),
		slog.String("video_url", videoURL),
		slog.String("model", g.config.Model))

	start := time.Now()

	contents := []*genai.Content{{
		Parts: []*genai.Part{
			{FileData: &genai.FileData{FileURI: videoURL}},
			{Text: g.config.Prompt},
		},
	}}

	resp, err := g.client.Models.GenerateContent(ctx, g.config.Model, contents, nil)

	duration := time.Since(start)
	g.metricsRecorder.RecordDuration(duration)

	if err != nil {
		g.metricsRecorder.RecordFailure()
		slog.ErrorContext(ctx, "Video summarization failed",
			slog.String("provider", "gemini"),
			slog.String("video_url", videoURL),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("gemini api error: %w", err)
	}

	summary := resp.Text()
	if summary == "" {
		g.metricsRecorder.RecordFailure()
		slog.ErrorContext(ctx, "Gemini API returned empty response",
			slog.String("video_url", videoURL),
			slog.Duration("duration", duration))
		return "", fmt.Errorf("gemini api returned empty response")
	}

	g.metricsRecorder.RecordSuccess()
	g.metricsRecorder.RecordLength(text.CountRunes(summary))

	slog.InfoContext(ctx, "Video summarization completed",
		slog.String("provider", "gemini"),
		slog.Int("summary_length", text.CountRunes(summary)),
		slog.Duration("duration", duration))

	return summary, nil
}
