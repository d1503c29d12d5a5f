// Package template resolves variable references in the prompt macro
// language: {{ expr }} expressions and {% for %} / {% if %} / {% elif %} /
// {% set %} tags. Parsing is best-effort and never fails; malformed or
// unterminated constructs are skipped.
package template

import "strings"

// TokenKind classifies a lexed template token.
type TokenKind int

const (
	// TokenText is literal text between constructs.
	TokenText TokenKind = iota
	// TokenExpr is the inside of a {{ }} expression.
	TokenExpr
	// TokenTag is the inside of a {% %} statement tag.
	TokenTag
)

// Token is one lexed unit. Content holds the trimmed inner text for expr and
// tag tokens, the raw text for text tokens. Raw preserves the original
// substring including delimiters.
type Token struct {
	Kind    TokenKind
	Content string
	Raw     string
}

// Tokenize splits a template into a flat token stream. A construct is only
// recognized when its closer appears before the next opening delimiter;
// anything malformed or unterminated falls through as text.
func Tokenize(tpl string) []Token {
	var tokens []Token
	emitText := func(s string) {
		if s != "" {
			tokens = append(tokens, Token{Kind: TokenText, Content: s, Raw: s})
		}
	}

	for len(tpl) > 0 {
		open, kind := nextOpen(tpl)
		if open < 0 {
			emitText(tpl)
			break
		}

		closer := "}}"
		if kind == TokenTag {
			closer = "%}"
		}
		rest := tpl[open+2:]
		end := strings.Index(rest, closer)
		reopen, _ := nextOpen(rest)

		if reopen >= 0 && (end < 0 || reopen < end) {
			// Another construct opens before this one closes; treat the
			// prefix as text and resume at the inner opener.
			emitText(tpl[:open+2+reopen])
			tpl = tpl[open+2+reopen:]
			continue
		}
		if end < 0 {
			// Unterminated, the remainder is plain text.
			emitText(tpl)
			break
		}

		emitText(tpl[:open])
		raw := tpl[open : open+2+end+2]
		inner := strings.TrimSpace(rest[:end])
		tokens = append(tokens, Token{Kind: kind, Content: inner, Raw: raw})
		tpl = tpl[open+2+end+2:]
	}
	return tokens
}

// nextOpen finds the first "{{" or "{%" and reports which.
func nextOpen(s string) (int, TokenKind) {
	for i := 0; ; {
		j := strings.IndexByte(s[i:], '{')
		if j < 0 || i+j+1 >= len(s) {
			return -1, TokenText
		}
		switch s[i+j+1] {
		case '{':
			return i + j, TokenExpr
		case '%':
			return i + j, TokenTag
		}
		i += j + 1
	}
}
