package telegram

import (
	"context"
	"errors"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolsha/yousum/internal/resilience/retry"
)

func TestClassifyError_MapsAPIErrors(t *testing.T) {
	apiErr := &tgbotapi.Error{Code: 429, Message: "Too Many Requests"}

	got := classifyError(apiErr)

	var httpErr *retry.HTTPError
	require.ErrorAs(t, got, &httpErr)
	assert.Equal(t, 429, httpErr.StatusCode)
	assert.True(t, retry.IsRetryable(got))
}

func TestClassifyError_ClientErrorsNotRetryable(t *testing.T) {
	apiErr := &tgbotapi.Error{Code: 400, Message: "Bad Request: chat not found"}

	got := classifyError(apiErr)

	assert.False(t, retry.IsRetryable(got))
}

func TestClassifyError_PassesThroughOtherErrors(t *testing.T) {
	plain := errors.New("connection reset")

	assert.Equal(t, plain, classifyError(plain))
}

func TestRateLimiter_AllowsBurst(t *testing.T) {
	limiter := NewRateLimiter(1.0, 3)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, limiter.Allow(ctx))
	}

	// Burst capacity should admit all three without waiting for refills.
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestRateLimiter_RespectsContextCancellation(t *testing.T) {
	limiter := NewRateLimiter(0.001, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	// Drain the single burst token, then the next wait must abort with ctx.
	require.NoError(t, limiter.Allow(context.Background()))
	err := limiter.Allow(ctx)

	assert.Error(t, err)
}
