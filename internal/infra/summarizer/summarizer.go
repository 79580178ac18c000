// Package summarizer provides AI-powered video summarization implementations.
// It includes adapters for the Gemini, OpenAI and Claude APIs with reliability
// patterns (retry, circuit breaking) and observability through structured
// logging and Prometheus metrics.
package summarizer

import "context"

// Summarizer converts a video URL into natural-language summary text.
// Implementations must treat provider failures as values: a failed call
// returns an error and never panics, so the caller can degrade to a
// user-visible apology and keep serving.
type Summarizer interface {
	// SummarizeVideo generates a summary for the video behind videoURL.
	// The returned text is unformatted; message formatting and chunking are
	// the caller's concern.
	SummarizeVideo(ctx context.Context, videoURL string) (string, error)
}
