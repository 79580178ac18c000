// Package text provides utilities for text processing and manipulation.
// It includes rune-aware counting and message splitting helpers shared by
// the summarization providers and the Telegram delivery path.
package text

// CountRunes counts the number of Unicode characters (runes) in the given text.
// This function correctly handles multi-byte characters including Japanese,
// Cyrillic, emoji, and other Unicode characters by counting runes instead of bytes.
//
// Examples:
//
//	CountRunes("hello")     // returns 5 (ASCII text)
//	CountRunes("привет")    // returns 6 (Cyrillic text)
//	CountRunes("hello世界")  // returns 7 (mixed text)
//	CountRunes("")          // returns 0 (empty string)
func CountRunes(text string) int {
	return len([]rune(text))
}
