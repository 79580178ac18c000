// Package telegram contains the bot's update handler. It receives Telegram
// updates, enforces the chat allow-list and drives the summarization flow,
// replying with the chunked summary or an apology when the provider fails.
package telegram

import (
	"context"
	"errors"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/kolsha/yousum/internal/config"
	"github.com/kolsha/yousum/internal/domain/entity"
	"github.com/kolsha/yousum/internal/handler/telegram/auth"
	"github.com/kolsha/yousum/internal/observability/logging"
	"github.com/kolsha/yousum/internal/usecase/summarize"
)

// Messenger sends and edits chat messages. Implemented by the Bot API
// transport; faked in tests.
type Messenger interface {
	// SendText sends a plain-text message. A non-zero replyTo makes it a reply.
	SendText(ctx context.Context, chatID int64, replyTo int, text string) (int, error)

	// SendMarkdown sends a Markdown-formatted message.
	SendMarkdown(ctx context.Context, chatID int64, replyTo int, text string) (int, error)

	// EditMarkdown replaces the text of a previously sent message.
	EditMarkdown(ctx context.Context, chatID int64, messageID int, text string) error
}

// Handler processes incoming Telegram updates one at a time.
// A failure while handling one update is logged and never stops the loop.
type Handler struct {
	messenger Messenger
	gate      *auth.ChatGate
	service   *summarize.Service
	messages  config.Messages
	metrics   UpdateMetricsRecorder
	logger    *slog.Logger
}

// NewHandler creates an update handler. A nil metrics recorder disables
// metric recording; a nil logger falls back to slog.Default.
func NewHandler(
	messenger Messenger,
	gate *auth.ChatGate,
	service *summarize.Service,
	messages config.Messages,
	metrics UpdateMetricsRecorder,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		messenger: messenger,
		gate:      gate,
		service:   service,
		messages:  messages,
		metrics:   metrics,
		logger:    logger,
	}
}

// Run consumes updates until the channel closes or the context is canceled.
func (h *Handler) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.HandleUpdate(ctx, update)
		}
	}
}

// HandleUpdate processes a single update. Updates without a message
// (edits, channel posts, callback queries) are ignored.
func (h *Handler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil {
		return
	}

	if h.metrics != nil {
		h.metrics.RecordUpdate()
	}

	logger := logging.WithUpdateID(h.logger, update.UpdateID).With(
		slog.Int64("chat_id", msg.Chat.ID))

	if msg.IsCommand() {
		h.handleCommand(ctx, logger, msg)
		return
	}

	h.handleMessage(ctx, logger, msg)
}

// handleCommand answers bot commands. Only /start is recognized; other
// commands are ignored rather than answered with the no-link hint.
func (h *Handler) handleCommand(ctx context.Context, logger *slog.Logger, msg *tgbotapi.Message) {
	if msg.Command() != "start" {
		return
	}

	reply := h.messages.Greeting
	if !h.gate.IsAllowed(msg.Chat.ID) {
		h.recordRejection(logger, RejectionUnauthorized)
		reply = h.messages.Placeholder
	}

	if _, err := h.messenger.SendText(ctx, msg.Chat.ID, 0, reply); err != nil {
		logger.Error("failed to answer /start", slog.Any("error", err))
	}
}

// handleMessage runs the summarization flow for a regular text message.
func (h *Handler) handleMessage(ctx context.Context, logger *slog.Logger, msg *tgbotapi.Message) {
	if msg.Text == "" {
		return
	}

	if !h.gate.IsAllowed(msg.Chat.ID) {
		h.recordRejection(logger, RejectionUnauthorized)
		if _, err := h.messenger.SendText(ctx, msg.Chat.ID, msg.MessageID, h.messages.Placeholder); err != nil {
			logger.Error("failed to send access placeholder", slog.Any("error", err))
		}
		return
	}

	link, err := h.service.ExtractLink(msg.Text)
	if err != nil {
		h.recordRejection(logger, RejectionNoLink)
		if _, sendErr := h.messenger.SendText(ctx, msg.Chat.ID, msg.MessageID, h.messages.NoLink); sendErr != nil {
			logger.Error("failed to send no-link reply", slog.Any("error", sendErr))
		}
		return
	}

	logger = logger.With(slog.String("video_id", link.ID))

	processingID, err := h.messenger.SendText(ctx, msg.Chat.ID, msg.MessageID, h.messages.Processing)
	if err != nil {
		logger.Error("failed to send processing message", slog.Any("error", err))
		return
	}

	chunks, err := h.service.Summarize(ctx, link)
	if err != nil {
		logger.Error("summarization failed", slog.Any("error", err))
		h.deliverFailure(ctx, logger, msg.Chat.ID, processingID, err)
		return
	}

	h.deliverSummary(ctx, logger, msg.Chat.ID, processingID, chunks)
}

// deliverSummary edits the first chunk into the processing message and sends
// the remaining chunks as fresh messages.
func (h *Handler) deliverSummary(ctx context.Context, logger *slog.Logger, chatID int64, processingID int, chunks []string) {
	if err := h.messenger.EditMarkdown(ctx, chatID, processingID, chunks[0]); err != nil {
		logger.Error("failed to edit in first summary chunk", slog.Any("error", err))
		return
	}

	sent := 1
	for _, chunk := range chunks[1:] {
		if _, err := h.messenger.SendMarkdown(ctx, chatID, 0, chunk); err != nil {
			logger.Error("failed to send summary chunk",
				slog.Int("chunk", sent),
				slog.Any("error", err))
			break
		}
		sent++
	}

	if h.metrics != nil {
		h.metrics.RecordChunksSent(sent)
	}
	logger.Info("summary delivered", slog.Int("chunks", sent))
}

// deliverFailure replaces the processing message with the apology matching
// the failure: an empty provider response gets the unavailable text, any
// other error the generic failure text. The bot keeps serving either way.
func (h *Handler) deliverFailure(ctx context.Context, logger *slog.Logger, chatID int64, processingID int, summarizeErr error) {
	reply := h.messages.Failure
	if errors.Is(summarizeErr, entity.ErrEmptySummary) {
		reply = h.messages.SummaryUnavailable
	}

	if err := h.messenger.EditMarkdown(ctx, chatID, processingID, reply); err != nil {
		logger.Error("failed to deliver failure reply", slog.Any("error", err))
	}
}

func (h *Handler) recordRejection(logger *slog.Logger, reason string) {
	if h.metrics != nil {
		h.metrics.RecordRejection(reason)
	}
	logger.Info("update rejected", slog.String("reason", reason))
}
