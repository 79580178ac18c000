// Command bot runs the video summary Telegram bot: it long-polls for
// updates, summarizes linked videos through the configured AI provider and
// replies with the summary split into Telegram-sized chunks.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/kolsha/yousum/internal/config"
	handlerTelegram "github.com/kolsha/yousum/internal/handler/telegram"
	"github.com/kolsha/yousum/internal/handler/telegram/auth"
	"github.com/kolsha/yousum/internal/infra/summarizer"
	infraTelegram "github.com/kolsha/yousum/internal/infra/telegram"
	"github.com/kolsha/yousum/internal/observability/logging"
	"github.com/kolsha/yousum/internal/usecase/summarize"
)

func main() {
	// A missing .env file is fine; real deployments configure the
	// environment directly.
	_ = godotenv.Load()

	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, cfg); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("bot terminated", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("bot stopped")
}

func run(ctx context.Context, logger *slog.Logger, cfg *config.Config) error {
	sum, err := summarizer.NewFromConfig(ctx, cfg)
	if err != nil {
		return err
	}
	logger.Info("summarizer initialized", slog.String("provider", cfg.Provider))

	bot, err := infraTelegram.NewBot(cfg.BotToken, cfg.TelegramDebug)
	if err != nil {
		return err
	}

	gate := auth.NewChatGate(cfg.AllowedChatIDs)
	service := summarize.NewService(sum, cfg.MaxMessageLength, logger)
	handler := handlerTelegram.NewHandler(
		bot,
		gate,
		service,
		cfg.Messages,
		handlerTelegram.NewPrometheusUpdateMetrics(),
		logger,
	)

	var ready atomic.Bool
	startMetricsServer(ctx, logger, cfg.MetricsPort, ready.Load)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		updates := bot.Updates()
		ready.Store(true)
		logger.Info("update loop started",
			slog.Int("max_message_length", cfg.MaxMessageLength),
			slog.Int("allowed_chats", gate.Size()))
		return handler.Run(groupCtx, updates)
	})

	group.Go(func() error {
		<-groupCtx.Done()
		bot.StopPolling()
		return nil
	})

	return group.Wait()
}
