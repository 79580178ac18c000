package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolsha/yousum/internal/config"
)

// setRequiredEnv configures the minimum environment for Load to succeed.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("GEMINI_API_KEY", "test-key")
}

func TestLoad_RequiresBotToken(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("GEMINI_API_KEY", "test-key")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TELEGRAM_BOT_TOKEN")
}

func TestLoad_RequiresProviderKey(t *testing.T) {
	tests := []struct {
		provider string
		wantKey  string
	}{
		{provider: "gemini", wantKey: "GEMINI_API_KEY"},
		{provider: "openai", wantKey: "OPENAI_API_KEY"},
		{provider: "claude", wantKey: "ANTHROPIC_API_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
			t.Setenv("SUMMARIZER_PROVIDER", tt.provider)
			t.Setenv("GEMINI_API_KEY", "")
			t.Setenv("OPENAI_API_KEY", "")
			t.Setenv("ANTHROPIC_API_KEY", "")

			_, err := config.Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantKey)
		})
	}
}

func TestLoad_NoOpProviderNeedsNoKey(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("SUMMARIZER_PROVIDER", "noop")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.ProviderNoOp, cfg.Provider)
}

func TestLoad_UnknownProvider(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("SUMMARIZER_PROVIDER", "bard")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUMMARIZER_PROVIDER")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.ProviderGemini, cfg.Provider)
	assert.Equal(t, 4000, cfg.MaxMessageLength)
	assert.Equal(t, 60*time.Second, cfg.SummarizerTimeout)
	assert.Equal(t, 9090, cfg.MetricsPort)
	assert.NotEmpty(t, cfg.SummaryPrompt)
	assert.Equal(t, []int64{287129494}, cfg.AllowedChatIDs)
	assert.NotEmpty(t, cfg.Messages.Placeholder)
}

func TestLoad_ChatIDList(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TELEGRAM_CHAT_IDS", "42, -100123456789 ,7")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, []int64{42, -100123456789, 7}, cfg.AllowedChatIDs)
}

func TestLoad_MalformedChatIDsFallsBackToAllowAll(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TELEGRAM_CHAT_IDS", "42,abc,7")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.AllowedChatIDs, "malformed list must discard all entries")
}

func TestLoad_MaxMessageLengthBounds(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{name: "valid custom value", value: "3000", want: 3000},
		{name: "zero falls back", value: "0", want: 4000},
		{name: "negative falls back", value: "-5", want: 4000},
		{name: "at transport ceiling falls back", value: "4096", want: 4000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv("MAX_MESSAGE_LENGTH", tt.value)

			cfg, err := config.Load()
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.MaxMessageLength)
		})
	}
}

func TestLoad_PlaceholderOverride(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PLACEHOLDER_MESSAGE", "custom denial text")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "custom denial text", cfg.Messages.Placeholder)
}

func TestParseChatIDs(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []int64
		wantErr bool
	}{
		{name: "single id", input: "42", want: []int64{42}},
		{name: "multiple with spaces", input: " 1 , 2 ,3", want: []int64{1, 2, 3}},
		{name: "empty entries skipped", input: "1,,2,", want: []int64{1, 2}},
		{name: "empty string", input: "", want: []int64{}},
		{name: "non-numeric entry", input: "1,two", wantErr: true},
		{name: "float entry", input: "1.5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := config.ParseChatIDs(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadMessages_YAMLOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "messages.yaml")
	yamlContent := "greeting: \"hi there\"\nno_link: \"links only please\"\n"
	require.NoError(t, writeFile(path, yamlContent))

	t.Setenv("MESSAGES_FILE", path)

	messages, err := config.LoadMessages()
	require.NoError(t, err)

	assert.Equal(t, "hi there", messages.Greeting)
	assert.Equal(t, "links only please", messages.NoLink)
	// Untouched fields keep their defaults.
	assert.Equal(t, config.DefaultMessages().Processing, messages.Processing)
}

func TestLoadMessages_MissingFileErrors(t *testing.T) {
	t.Setenv("MESSAGES_FILE", filepath.Join(t.TempDir(), "does-not-exist.yaml"))

	_, err := config.LoadMessages()
	assert.Error(t, err)
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o600)
}

func TestLoadMessages_InvalidYAMLErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "messages.yaml")
	require.NoError(t, writeFile(path, "greeting: [unclosed"))

	t.Setenv("MESSAGES_FILE", path)

	_, err := config.LoadMessages()
	assert.Error(t, err)
}
