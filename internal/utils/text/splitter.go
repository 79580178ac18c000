package text

import (
	"strings"
	"unicode"
)

// DefaultMaxMessageLength is the default chunk size for outbound messages.
// It is deliberately below Telegram's hard ceiling of 4096 characters to
// leave headroom for Markdown formatting added by the delivery layer.
const DefaultMaxMessageLength = 4000

// SplitMessage splits text into an ordered sequence of chunks, each at most
// maxLength runes long, preferring natural break points.
//
// If the text already fits within maxLength it is returned unchanged as the
// sole chunk. Otherwise a prefix is carved off the remaining text on each
// iteration: at the last newline inside the window if one exists, else at
// the last space, else with a hard cut exactly at maxLength. A hard cut can
// land mid-word; that is accepted behavior. Emitted chunks are right-trimmed
// and the remainder is left-trimmed, so a chunk that trims to nothing (runs
// of consecutive separators) is dropped. Whatever remains at the end is
// appended as the final chunk.
//
// Guarantees for maxLength > 0 (precondition, not checked):
//   - every chunk is non-empty and at most maxLength runes long
//   - chunk order follows input order
//   - identical input always produces identical output
//
// The scan is rune-based, so multi-byte characters are never torn apart,
// though a hard cut may still separate combining sequences.
func SplitMessage(text string, maxLength int) []string {
	remaining := []rune(text)
	if len(remaining) <= maxLength {
		return []string{text}
	}

	var chunks []string

	for len(remaining) > maxLength {
		window := remaining[:maxLength]

		// Prefer a newline, then a word boundary, then a hard cut.
		splitPos := lastIndexRune(window, '\n')
		if splitPos == -1 {
			splitPos = lastIndexRune(window, ' ')
		}
		if splitPos == -1 {
			splitPos = maxLength
		}

		chunk := strings.TrimRightFunc(string(remaining[:splitPos]), unicode.IsSpace)
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		// The separator stays with the remainder and is consumed by the
		// left trim, so the remainder strictly shrinks every iteration.
		remaining = []rune(strings.TrimLeftFunc(string(remaining[splitPos:]), unicode.IsSpace))
	}

	if len(remaining) > 0 {
		chunks = append(chunks, string(remaining))
	}

	return chunks
}

// lastIndexRune returns the index of the last occurrence of r in runes,
// or -1 if r is not present.
func lastIndexRune(runes []rune, r rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == r {
			return i
		}
	}
	return -1
}
