// Package chat implements the inline markup used by command replies.
//
// Markup is the classic ampersand colour code language: "&c" switches to red,
// "&l" to bold, "&r" resets. Hosts decide how to render it (ANSI, plain text,
// or a structured chat payload); this package only builds and strips it.
package chat

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Colour and style codes.
const (
	Black       = "&0"
	DarkBlue    = "&1"
	DarkGreen   = "&2"
	DarkAqua    = "&3"
	DarkRed     = "&4"
	DarkPurple  = "&5"
	Gold        = "&6"
	Gray        = "&7"
	DarkGray    = "&8"
	Blue        = "&9"
	Green       = "&a"
	Aqua        = "&b"
	Red         = "&c"
	LightPurple = "&d"
	Yellow      = "&e"
	White       = "&f"

	Obfuscated    = "&k"
	Bold          = "&l"
	Strikethrough = "&m"
	Underline     = "&n"
	Italic        = "&o"
	Reset         = "&r"
)

var (
	codePattern        = regexp.MustCompile(`(?i)&[0-9a-fk-or]`)
	placeholderPattern = regexp.MustCompile(`\{(\d+)\}`)
)

// Format substitutes {0}, {1}, ... placeholders with args. Placeholders
// without a matching argument are left untouched.
func Format(template string, args ...any) string {
	if len(args) == 0 {
		return template
	}
	return placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		idx, err := strconv.Atoi(match[1 : len(match)-1])
		if err != nil || idx >= len(args) {
			return match
		}
		return fmt.Sprint(args[idx])
	})
}

// Strip removes every markup code from s.
func Strip(s string) string {
	return codePattern.ReplaceAllString(s, "")
}

// IsCode reports whether c is a valid code character following '&'.
func IsCode(c byte) bool {
	switch {
	case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'k' && c <= 'o', c == 'r':
		return true
	case c >= 'A' && c <= 'F', c >= 'K' && c <= 'O', c == 'R':
		return true
	}
	return false
}

// Lines splits a multi-line description into lines, dropping a trailing
// empty line.
func Lines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// ErrorLine decorates text as an error reply.
func ErrorLine(text string) string {
	return Red + "Error: " + DarkRed + text
}
