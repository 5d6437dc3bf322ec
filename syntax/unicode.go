package syntax

import (
	"unicode"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/runenames"
)

// IsNewline returns true if the character is a newline character.
func IsNewline(c rune) bool {
	switch c {
	// Line Feed, Vertical Tab, Form Feed, Carriage Return.
	case '\n', '\x0B', '\x0C', '\r':
		return true
	// Next Line, Line Separator, Paragraph Separator.
	case '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// IsSpace returns true if the character is whitespace. Lua only recognizes
// ASCII whitespace in source text, but unicode.IsSpace is kept for
// compatibility with dialects (and embedded host strings) that tolerate a
// wider set in trivia positions.
func IsSpace(c rune) bool {
	return c == ' ' || c == '\t' || IsNewline(c) || unicode.IsSpace(c)
}

// IsIDStart returns true if the character can start a Lua identifier:
// ASCII letters and underscore, per the Lua manual's lexical conventions.
func IsIDStart(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

// IsIDContinue returns true if the character can continue a Lua
// identifier: ASCII letters, digits, and underscore.
func IsIDContinue(c rune) bool {
	return IsIDStart(c) || (c >= '0' && c <= '9')
}

// IsIdent returns true if the string is a valid Lua identifier.
func IsIdent(s string) bool {
	if len(s) == 0 {
		return false
	}
	runes := []rune(s)
	if !IsIDStart(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if !IsIDContinue(r) {
			return false
		}
	}
	return true
}

// RuneName returns a human-presentable name for a rune, used when the
// lexer reports an "unexpected character" diagnostic (LOLP0004) so the
// message can say what the character actually is instead of printing a
// possibly-invisible byte.
func RuneName(c rune) string {
	if name := runenames.Name(c); name != "" {
		return name
	}
	return "unknown character"
}

// CountGraphemes returns the number of user-perceived characters
// (grapheme clusters) in s. Used by Lexer.Column and LineIndex (source.go)
// to report accurate column positions for text involving combining
// sequences, emoji, and other multi-rune clusters that a naive rune count
// would over-count.
func CountGraphemes(s string) int {
	n := 0
	state := -1
	for len(s) > 0 {
		_, remaining, _, newState := uniseg.FirstGraphemeClusterInString(s, state)
		s = remaining
		state = newState
		n++
	}
	return n
}
