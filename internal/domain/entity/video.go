// Package entity contains the domain types of the bot: video links extracted
// from inbound chat messages and the errors shared across layers.
package entity

import (
	"regexp"
	"strings"
)

// videoIDLength is the exact length of a YouTube video identifier.
const videoIDLength = 11

// videoLinkPattern recognizes the two accepted YouTube host forms with an
// optional scheme and optional www prefix. The capture group is the video
// identifier: exactly 11 characters from [A-Za-z0-9_-], case-sensitive.
var videoLinkPattern = regexp.MustCompile(
	`(?:https?://)?(?:www\.)?(?:youtube\.com/watch\?v=|youtu\.be/)([A-Za-z0-9_-]{11})`)

// isIDChar reports whether b belongs to the video identifier alphabet.
func isIDChar(b byte) bool {
	return b == '-' || b == '_' ||
		(b >= '0' && b <= '9') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= 'a' && b <= 'z')
}

// VideoLink is a normalized, scheme-prefixed YouTube link extracted from
// free-form message text.
type VideoLink struct {
	// URL is the fully qualified link, always carrying a scheme.
	URL string

	// ID is the 11-character video identifier.
	ID string
}

// ExtractVideoLink finds the first (leftmost) YouTube link in text and
// returns it with an https:// scheme prepended when the original match was
// schemeless. Identifiers shorter or longer than 11 characters do not match:
// the character following the identifier must be outside the identifier
// alphabet (RE2 offers no lookahead, so this is checked explicitly).
//
// Returns ErrNoVideoLink when text contains no recognizable link. This is a
// pure function with no side effects.
func ExtractVideoLink(text string) (VideoLink, error) {
	pos := 0
	for pos < len(text) {
		loc := videoLinkPattern.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			break
		}

		matchStart, matchEnd := pos+loc[0], pos+loc[1]
		idStart, idEnd := pos+loc[2], pos+loc[3]

		// Reject identifiers that continue past 11 characters.
		if matchEnd < len(text) && isIDChar(text[matchEnd]) {
			pos = matchEnd
			continue
		}

		url := text[matchStart:matchEnd]
		if !strings.HasPrefix(url, "http") {
			url = "https://" + url
		}

		return VideoLink{URL: url, ID: text[idStart:idEnd]}, nil
	}

	return VideoLink{}, ErrNoVideoLink
}

// HasVideoLink reports whether text contains a recognizable YouTube link.
func HasVideoLink(text string) bool {
	_, err := ExtractVideoLink(text)
	return err == nil
}
