package logging_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolsha/yousum/internal/observability/logging"
)

func TestNewLogger(t *testing.T) {
	logger := logging.NewLogger()
	require.NotNil(t, logger)
}

func TestNewLogger_DebugLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")

	logger := logging.NewLogger()
	require.NotNil(t, logger)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))
}

func TestWithLogger_RoundTrip(t *testing.T) {
	logger := logging.NewTextLogger()
	ctx := logging.WithLogger(context.Background(), logger)

	assert.Same(t, logger, logging.FromContext(ctx))
}

func TestFromContext_MissingLoggerReturnsDefault(t *testing.T) {
	logger := logging.FromContext(context.Background())
	assert.NotNil(t, logger)
}

func TestWithUpdateID(t *testing.T) {
	logger := logging.NewTextLogger()
	assert.NotNil(t, logging.WithUpdateID(logger, 12345))
}
