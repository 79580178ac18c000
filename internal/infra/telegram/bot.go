// Package telegram adapts the Telegram Bot API for the update handler.
// Outbound calls are rate limited and retried; inbound updates arrive over
// the Bot API's long-polling channel.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"github.com/kolsha/yousum/internal/resilience/retry"
)

// updatePollTimeout is the long-poll timeout in seconds for GetUpdates.
const updatePollTimeout = 30

// Bot wraps the Telegram Bot API client with rate limiting and retry logic.
type Bot struct {
	api         *tgbotapi.BotAPI
	rateLimiter *RateLimiter
	retryConfig retry.Config
}

// NewBot creates a Bot authenticated with the given token.
// The constructor performs a getMe call, so an invalid token fails here
// rather than on the first send.
func NewBot(token string, debug bool) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	api.Debug = debug

	slog.Info("Telegram bot authorized", slog.String("username", api.Self.UserName))

	return &Bot{
		api: api,
		// Bot API allows ~1 msg/s per chat; bursts cover the
		// multi-chunk deliveries of a single long summary.
		rateLimiter: NewRateLimiter(1.0, 5),
		retryConfig: retry.TelegramAPIConfig(),
	}, nil
}

// Updates returns the long-polling update channel.
func (b *Bot) Updates() tgbotapi.UpdatesChannel {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = updatePollTimeout
	return b.api.GetUpdatesChan(u)
}

// StopPolling terminates the long-polling loop; the Updates channel closes
// after in-flight requests finish.
func (b *Bot) StopPolling() {
	b.api.StopReceivingUpdates()
}

// SendText sends a plain-text message to the chat. A non-zero replyTo makes
// the message a reply. Returns the sent message's ID.
func (b *Bot) SendText(ctx context.Context, chatID int64, replyTo int, text string) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyToMessageID = replyTo
	return b.send(ctx, chatID, msg)
}

// SendMarkdown sends a Markdown-formatted message to the chat.
func (b *Bot) SendMarkdown(ctx context.Context, chatID int64, replyTo int, text string) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyToMessageID = replyTo
	msg.ParseMode = tgbotapi.ModeMarkdown
	return b.send(ctx, chatID, msg)
}

// EditMarkdown replaces the text of a previously sent message.
func (b *Bot) EditMarkdown(ctx context.Context, chatID int64, messageID int, text string) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeMarkdown

	_, err := b.send(ctx, chatID, edit)
	return err
}

// send delivers one API call through the rate limiter and retry layer.
// Every delivery is traced with a generated request ID.
func (b *Bot) send(ctx context.Context, chatID int64, c tgbotapi.Chattable) (int, error) {
	requestID := uuid.New().String()

	if err := b.rateLimiter.Allow(ctx); err != nil {
		return 0, fmt.Errorf("rate limiter: %w", err)
	}

	var messageID int
	err := retry.WithBackoff(ctx, b.retryConfig, func() error {
		sent, sendErr := b.api.Send(c)
		if sendErr != nil {
			return classifyError(sendErr)
		}
		messageID = sent.MessageID
		return nil
	})

	if err != nil {
		slog.Error("telegram send failed",
			slog.String("request_id", requestID),
			slog.Int64("chat_id", chatID),
			slog.Any("error", err))
		return 0, fmt.Errorf("telegram send: %w", err)
	}

	slog.Debug("telegram send succeeded",
		slog.String("request_id", requestID),
		slog.Int64("chat_id", chatID),
		slog.Int("message_id", messageID))
	return messageID, nil
}

// classifyError maps Bot API errors onto the retry package's HTTPError so
// flood control (429) and server errors are retried while client errors
// fail immediately.
func classifyError(err error) error {
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) && apiErr.Code != 0 {
		return &retry.HTTPError{StatusCode: apiErr.Code, Message: apiErr.Message}
	}
	return err
}
