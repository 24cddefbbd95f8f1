// Package tokenize provides a lossless SQL tokenizer for completion.
//
// The tokenizer never fails: every byte of the input belongs to exactly one
// token, so offsets can be mapped back to the editor buffer.
package tokenize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenType identifies the lexical class of a token.
type TokenType string

const (
	TokenKeyword     TokenType = "keyword"
	TokenIdentifier  TokenType = "identifier"
	TokenPunctuation TokenType = "punctuation"
	TokenLiteral     TokenType = "literal"
	TokenWhitespace  TokenType = "whitespace"
	TokenComment     TokenType = "comment"
)

// Token represents a single token with its byte span in the source text.
// End is exclusive.
type Token struct {
	Start int       `json:"start"`
	End   int       `json:"end"`
	Text  string    `json:"text"`
	Type  TokenType `json:"type"`
}

// IsTrivia reports whether the token carries no syntax (whitespace or comment).
func (t Token) IsTrivia() bool {
	return t.Type == TokenWhitespace || t.Type == TokenComment
}

// IsWord reports whether the token is an identifier or a keyword.
func (t Token) IsWord() bool {
	return t.Type == TokenIdentifier || t.Type == TokenKeyword
}

// IsQuoted reports whether the token is a quoted identifier.
func (t Token) IsQuoted() bool {
	if t.Type != TokenIdentifier || t.Text == "" {
		return false
	}
	_, ok := closingQuote(t.Text[0])
	return ok
}

// Is reports whether the token is the punctuation text p.
func (t Token) Is(p string) bool {
	return t.Type == TokenPunctuation && t.Text == p
}

// IsKeyword reports whether the token is one of the given keywords.
// Keywords must be passed in upper case.
func (t Token) IsKeyword(keywords ...string) bool {
	if t.Type != TokenKeyword {
		return false
	}
	upper := strings.ToUpper(t.Text)
	for _, kw := range keywords {
		if upper == kw {
			return true
		}
	}
	return false
}

// Upper returns the token text in upper case.
func (t Token) Upper() string {
	return strings.ToUpper(t.Text)
}

// Name returns the identifier name with surrounding quotes removed.
// Doubled closing quotes inside the name are collapsed.
func (t Token) Name() string {
	if !t.IsQuoted() {
		return t.Text
	}
	closing, _ := closingQuote(t.Text[0])
	inner := t.Text[1:]
	if strings.HasSuffix(inner, string(closing)) {
		inner = inner[:len(inner)-1]
	}
	return strings.ReplaceAll(inner, string(closing)+string(closing), string(closing))
}

// operators lists multi-character punctuation, longest first.
var operators = []string{"<=>", "<=", ">=", "<>", "!=", "||", "::", "->"}

// Tokenize splits text into tokens covering the whole input.
func Tokenize(text string) []Token {
	if text == "" {
		return nil
	}

	var tokens []Token
	pos := 0
	for pos < len(text) {
		end, typ := scanToken(text, pos)
		tok := Token{Start: pos, End: end, Text: text[pos:end], Type: typ}
		if typ == TokenIdentifier && !tok.IsQuoted() && IsKeyword(tok.Text) {
			tok.Type = TokenKeyword
		}
		tokens = append(tokens, tok)
		pos = end
	}
	return tokens
}

// scanToken returns the end offset and type of the token starting at pos.
func scanToken(text string, pos int) (int, TokenType) {
	r, size := utf8.DecodeRuneInString(text[pos:])
	c := text[pos]

	switch {
	case unicode.IsSpace(r):
		end := pos + size
		for end < len(text) {
			r, size := utf8.DecodeRuneInString(text[end:])
			if !unicode.IsSpace(r) {
				break
			}
			end += size
		}
		return end, TokenWhitespace

	case strings.HasPrefix(text[pos:], "--"):
		end := strings.IndexByte(text[pos:], '\n')
		if end == -1 {
			return len(text), TokenComment
		}
		return pos + end, TokenComment

	case strings.HasPrefix(text[pos:], "/*"):
		end := strings.Index(text[pos+2:], "*/")
		if end == -1 {
			return len(text), TokenComment
		}
		return pos + 2 + end + 2, TokenComment

	case c == '\'':
		return scanQuoted(text, pos, '\''), TokenLiteral

	case c == '"' || c == '`':
		closing, _ := closingQuote(c)
		return scanQuoted(text, pos, closing), TokenIdentifier

	case isDigit(c) || (c == '.' && pos+1 < len(text) && isDigit(text[pos+1])):
		return scanNumber(text, pos), TokenLiteral

	case isIdentStart(r):
		end := pos + size
		for end < len(text) {
			r, size := utf8.DecodeRuneInString(text[end:])
			if !isIdentPart(r) {
				break
			}
			end += size
		}
		return end, TokenIdentifier
	}

	for _, op := range operators {
		if strings.HasPrefix(text[pos:], op) {
			return pos + len(op), TokenPunctuation
		}
	}

	// Anything else, including invalid UTF-8, is a single-rune punctuation token.
	return pos + size, TokenPunctuation
}

// scanQuoted scans a quoted run starting at pos. A doubled closing quote is an
// escaped quote. Unterminated runs extend to the end of the input.
func scanQuoted(text string, pos int, closing byte) int {
	i := pos + 1
	for i < len(text) {
		if text[i] == closing {
			if i+1 < len(text) && text[i+1] == closing {
				i += 2
				continue
			}
			return i + 1
		}
		i++
	}
	return len(text)
}

// scanNumber scans digits with an optional fraction and exponent.
func scanNumber(text string, pos int) int {
	i := pos
	for i < len(text) && isDigit(text[i]) {
		i++
	}
	if i < len(text) && text[i] == '.' {
		i++
		for i < len(text) && isDigit(text[i]) {
			i++
		}
	}
	if i < len(text) && (text[i] == 'e' || text[i] == 'E') {
		j := i + 1
		if j < len(text) && (text[j] == '+' || text[j] == '-') {
			j++
		}
		if j < len(text) && isDigit(text[j]) {
			i = j
			for i < len(text) && isDigit(text[i]) {
				i++
			}
		}
	}
	return i
}

func closingQuote(c byte) (byte, bool) {
	switch c {
	case '"':
		return '"', true
	case '`':
		return '`', true
	}
	return 0, false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
