package console

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// shellMeta are characters with shell meaning that a command line keeps
// literal. Markup uses '&' so it must never reach the lexer as an operator.
const shellMeta = "&#;|<>()$`!"

var (
	shield   *strings.Replacer
	unshield *strings.Replacer
)

func init() {
	var in, out []string
	for i, c := range shellMeta {
		placeholder := string(rune(0xE000 + i))
		in = append(in, string(c), placeholder)
		out = append(out, placeholder, string(c))
	}
	shield = strings.NewReplacer(in...)
	unshield = strings.NewReplacer(out...)
}

// Tokenize splits a command line into arguments with shell-style quoting.
// Single and double quotes group words and backslash escapes a character;
// there is no expansion, so operators and '$' stay literal.
func Tokenize(line string) ([]string, error) {
	parser := syntax.NewParser(
		syntax.Variant(syntax.LangBash),
		syntax.KeepComments(false),
	)

	var tokens []string
	err := parser.Words(strings.NewReader(shield.Replace(line)), func(w *syntax.Word) bool {
		tokens = append(tokens, unshield.Replace(wordToString(w)))
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse command line: %w", err)
	}
	return tokens, nil
}

// wordToString converts a syntax.Word to its literal value.
func wordToString(word *syntax.Word) string {
	var sb strings.Builder
	for _, part := range word.Parts {
		switch p := part.(type) {
		case *syntax.Lit:
			sb.WriteString(unescape(p.Value, ""))
		case *syntax.SglQuoted:
			sb.WriteString(p.Value)
		case *syntax.DblQuoted:
			for _, qp := range p.Parts {
				if lit, ok := qp.(*syntax.Lit); ok {
					sb.WriteString(unescape(lit.Value, "\"\\"))
				}
			}
		}
	}
	return sb.String()
}

// unescape removes backslashes. When only is non-empty, a backslash is
// removed only before one of its characters.
func unescape(s, only string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && (only == "" || strings.IndexByte(only, s[i+1]) >= 0) {
			i++
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}
