package telegram

import (
	"strings"
	"unicode/utf8"
)

// SplitMessage splits text into chunks that fit within MaxMessageLength.
// Each cut prefers the last sentence end within the limit, then the last
// line break, and falls back to a hard cut. Leading whitespace is trimmed
// from the remainder after each cut.
func SplitMessage(text string) []string {
	if len(text) <= MaxMessageLength {
		return []string{text}
	}

	var parts []string
	for len(text) > MaxMessageLength {
		cut := splitPoint(text)
		parts = append(parts, text[:cut])
		text = strings.TrimLeft(text[cut:], " \t\r\n")
	}
	if text != "" {
		parts = append(parts, text)
	}
	return parts
}

// splitPoint returns the byte offset to cut text at, at most
// MaxMessageLength and never inside a multi-byte rune.
func splitPoint(text string) int {
	window := text[:MaxMessageLength]

	if i := strings.LastIndexByte(window, '.'); i >= 0 {
		return i + 1
	}
	if i := strings.LastIndexByte(window, '\n'); i >= 0 {
		return i + 1
	}

	cut := MaxMessageLength
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return cut
}
