package summarizer

import (
	"context"
	"fmt"
)

// NoOp is a summarizer that returns a canned summary without calling any API.
// This is useful for development and testing when summarization is not needed.
type NoOp struct{}

// NewNoOp creates a new NoOp summarizer.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// SummarizeVideo returns a fixed placeholder summary referencing the URL.
func (n *NoOp) SummarizeVideo(_ context.Context, videoURL string) (string, error) {
	return fmt.Sprintf("Summary unavailable in development mode for %s.", videoURL), nil
}
