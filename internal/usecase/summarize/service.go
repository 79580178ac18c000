// Package summarize orchestrates the path from an incoming message text to
// the chunked summary replies: extract the video link, call the summarizer,
// format the result and split it to fit the transport's message limit.
package summarize

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kolsha/yousum/internal/domain/entity"
	"github.com/kolsha/yousum/internal/infra/summarizer"
	"github.com/kolsha/yousum/internal/utils/text"
)

// summaryHeader prefixes the first chunk of every delivered summary.
const summaryHeader = "📹 *Video Summary:*\n\n"

// Service turns message text into deliverable summary chunks.
type Service struct {
	summarizer summarizer.Summarizer
	maxLength  int
	logger     *slog.Logger
}

// NewService creates a summarize service. maxLength caps each returned chunk
// in runes and must be positive.
func NewService(s summarizer.Summarizer, maxLength int, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		summarizer: s,
		maxLength:  maxLength,
		logger:     logger,
	}
}

// ExtractLink finds the first video link in the message text.
// Returns entity.ErrNoVideoLink when the text contains none.
func (s *Service) ExtractLink(messageText string) (entity.VideoLink, error) {
	return entity.ExtractVideoLink(messageText)
}

// Summarize fetches a summary for the linked video and splits it into chunks
// that each fit within the configured message length. The first chunk carries
// the summary header.
func (s *Service) Summarize(ctx context.Context, link entity.VideoLink) ([]string, error) {
	s.logger.Info("summarizing video",
		slog.String("video_id", link.ID),
		slog.String("url", link.URL))

	summary, err := s.summarizer.SummarizeVideo(ctx, link.URL)
	if err != nil {
		return nil, fmt.Errorf("summarize video %s: %w", link.ID, err)
	}

	summary = strings.TrimSpace(summary)
	if summary == "" {
		return nil, fmt.Errorf("summarize video %s: %w", link.ID, entity.ErrEmptySummary)
	}

	chunks := text.SplitMessage(summaryHeader+summary, s.maxLength)

	s.logger.Info("summary ready",
		slog.String("video_id", link.ID),
		slog.Int("length", text.CountRunes(summary)),
		slog.Int("chunks", len(chunks)))

	return chunks, nil
}
