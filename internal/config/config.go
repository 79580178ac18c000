// Package config loads the bot's process-wide configuration from environment
// variables once at startup. The resulting Config is immutable and passed
// explicitly to the components that need it; nothing reads ambient globals
// after initialization.
package config

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/kolsha/yousum/internal/utils/text"
	pkgconfig "github.com/kolsha/yousum/pkg/config"
)

// Supported summarization providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderClaude = "claude"
	ProviderNoOp   = "noop"
)

const (
	// defaultAllowedChatIDs bootstraps the allow-list with the owner's chat
	// when TELEGRAM_CHAT_IDS is not configured.
	defaultAllowedChatIDs = "287129494"

	// telegramMessageCeiling is the Bot API's hard maximum message size.
	// MaxMessageLength must stay strictly below it to leave formatting headroom.
	telegramMessageCeiling = 4096

	defaultSummarizerTimeout = 60 * time.Second
	defaultMetricsPort       = 9090

	defaultSummaryPrompt = "Write a comprehensive summary of this video " +
		"(do not limit yourself in size, but try to stay within 100-300 words). " +
		"Include all key information, comparisons, quotes and conclusions. " +
		"Support the material with recent research on the topic where relevant."
)

// Config holds all runtime configuration for the bot.
type Config struct {
	// BotToken authenticates against the Telegram Bot API. Required.
	BotToken string

	// TelegramDebug enables verbose Bot API client logging.
	TelegramDebug bool

	// Provider selects the summarization backend: gemini, openai, claude or noop.
	Provider string

	// GeminiAPIKey, OpenAIAPIKey and AnthropicAPIKey authenticate the
	// respective providers. Only the key for the selected provider is required.
	GeminiAPIKey    string
	OpenAIAPIKey    string
	AnthropicAPIKey string

	// SummaryPrompt is the instruction sent to the provider alongside the video.
	SummaryPrompt string

	// AllowedChatIDs is the conversation allow-list. An empty list means
	// every chat is permitted (the allow-all back-compat rule).
	AllowedChatIDs []int64

	// MaxMessageLength caps outbound message chunks, in runes.
	// Always in (0, telegramMessageCeiling).
	MaxMessageLength int

	// SummarizerTimeout bounds a single summarization API call.
	SummarizerTimeout time.Duration

	// MetricsPort is the listen port for the metrics and health endpoints.
	MetricsPort int

	// Messages holds all user-visible reply texts.
	Messages Messages
}

// Load reads configuration from the environment and validates it.
// Missing required values (bot token, provider API key) are returned as
// errors so the caller can fail fast before serving. Malformed optional
// values fall back to defaults with a logged warning.
func Load() (*Config, error) {
	cfg := &Config{
		BotToken:          pkgconfig.GetEnvString("TELEGRAM_BOT_TOKEN", ""),
		TelegramDebug:     pkgconfig.GetEnvBool("TELEGRAM_DEBUG", false),
		Provider:          strings.ToLower(pkgconfig.GetEnvString("SUMMARIZER_PROVIDER", ProviderGemini)),
		GeminiAPIKey:      pkgconfig.GetEnvString("GEMINI_API_KEY", ""),
		OpenAIAPIKey:      pkgconfig.GetEnvString("OPENAI_API_KEY", ""),
		AnthropicAPIKey:   pkgconfig.GetEnvString("ANTHROPIC_API_KEY", ""),
		SummaryPrompt:     pkgconfig.GetEnvString("SUMMARY_PROMPT", defaultSummaryPrompt),
		MaxMessageLength:  pkgconfig.GetEnvInt("MAX_MESSAGE_LENGTH", text.DefaultMaxMessageLength),
		SummarizerTimeout: pkgconfig.GetEnvDuration("SUMMARIZER_TIMEOUT", defaultSummarizerTimeout),
		MetricsPort:       pkgconfig.GetEnvInt("METRICS_PORT", defaultMetricsPort),
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	if err := validateProviderKey(cfg); err != nil {
		return nil, err
	}

	if cfg.MaxMessageLength <= 0 || cfg.MaxMessageLength >= telegramMessageCeiling {
		slog.Warn("MAX_MESSAGE_LENGTH outside valid range, using default",
			slog.Int("value", cfg.MaxMessageLength),
			slog.Int("ceiling", telegramMessageCeiling),
			slog.Int("default", text.DefaultMaxMessageLength))
		cfg.MaxMessageLength = text.DefaultMaxMessageLength
	}

	cfg.AllowedChatIDs = loadAllowedChatIDs()

	messages, err := LoadMessages()
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}
	cfg.Messages = messages

	return cfg, nil
}

// validateProviderKey ensures the API key for the selected provider is present.
func validateProviderKey(cfg *Config) error {
	switch cfg.Provider {
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for provider %q", cfg.Provider)
		}
	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for provider %q", cfg.Provider)
		}
	case ProviderClaude:
		if cfg.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required for provider %q", cfg.Provider)
		}
	case ProviderNoOp:
		// No credentials needed.
	default:
		return fmt.Errorf("unknown SUMMARIZER_PROVIDER %q", cfg.Provider)
	}
	return nil
}

// loadAllowedChatIDs reads TELEGRAM_CHAT_IDS and parses it. A parse failure
// on any entry discards the entire configured list and falls back to
// allow-all, logged as a warning. This mirrors the historical behavior the
// allow-all rule exists for.
func loadAllowedChatIDs() []int64 {
	raw := pkgconfig.GetEnvString("TELEGRAM_CHAT_IDS", defaultAllowedChatIDs)

	ids, err := ParseChatIDs(raw)
	if err != nil {
		slog.Warn("invalid TELEGRAM_CHAT_IDS format, allowing all chats",
			slog.String("value", raw),
			slog.String("error", err.Error()))
		return nil
	}
	return ids
}

// ParseChatIDs parses a comma-separated list of chat identifiers.
// Entries are trimmed of whitespace; empty entries are skipped. Any entry
// that fails to parse as an integer invalidates the whole list.
func ParseChatIDs(raw string) ([]int64, error) {
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		id, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse chat id %q: %w", trimmed, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
