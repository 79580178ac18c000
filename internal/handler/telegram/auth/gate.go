// Package auth decides which Telegram chats may use the bot.
package auth

import "log/slog"

// ChatGate is the conversation allow-list. It is built once at startup from
// configuration and is read-only afterwards, so it is safe to share across
// concurrently handled updates without synchronization.
//
// An empty gate permits every chat. This is the deliberate allow-all
// back-compat rule: deployments that predate the allow-list keep working
// without configuration, and a discarded malformed list degrades to open
// access rather than locking everyone out.
type ChatGate struct {
	allowed map[int64]struct{}
}

// NewChatGate creates a gate from the configured chat IDs.
// Duplicate IDs are collapsed; a nil or empty slice produces an allow-all gate.
func NewChatGate(chatIDs []int64) *ChatGate {
	gate := &ChatGate{}
	if len(chatIDs) == 0 {
		slog.Info("chat allow-list empty, all chats permitted")
		return gate
	}

	gate.allowed = make(map[int64]struct{}, len(chatIDs))
	for _, id := range chatIDs {
		gate.allowed[id] = struct{}{}
	}

	slog.Info("chat allow-list configured", slog.Int("chats", len(gate.allowed)))
	return gate
}

// IsAllowed reports whether the chat may use the bot.
func (g *ChatGate) IsAllowed(chatID int64) bool {
	if len(g.allowed) == 0 {
		return true
	}
	_, ok := g.allowed[chatID]
	return ok
}

// Size returns the number of explicitly allowed chats; zero means allow-all.
func (g *ChatGate) Size() int {
	return len(g.allowed)
}
