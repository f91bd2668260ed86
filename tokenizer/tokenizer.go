// Package tokenizer turns source text into a flat sequence of classified
// tokens. Scanning never fails: text that no rule recognizes becomes an
// Invalid token running up to the next whitespace.
package tokenizer

import (
	"strconv"
	"strings"
)

// Tokenizer consumes tokens from the front of a source string.
type Tokenizer struct {
	text   string
	offset int
	line   int
	column int
}

// New returns a Tokenizer positioned at the start of text.
func New(text string) *Tokenizer {
	return &Tokenizer{text: text, line: 1, column: 1}
}

// Tokenize scans the whole text.
func Tokenize(text string) []Token {
	t := New(text)
	var tokens []Token
	for !t.IsEmpty() {
		tokens = append(tokens, t.Next())
	}
	return tokens
}

// IsEmpty reports whether only whitespace remains.
func (t *Tokenizer) IsEmpty() bool {
	t.skipWhitespace()
	return t.offset >= len(t.text)
}

// Next returns the next token, or a None token once the input is exhausted.
func (t *Tokenizer) Next() Token {
	if t.IsEmpty() {
		return Token{Kind: None, Pos: t.pos()}
	}

	rest := t.text[t.offset:]
	for _, r := range rules {
		if m := r.re.FindString(rest); m != "" {
			return t.emit(r.kind, m)
		}
	}

	end := strings.IndexAny(rest, whitespace)
	if end < 0 {
		end = len(rest)
	}
	return t.emit(Invalid, rest[:end])
}

func (t *Tokenizer) emit(kind Kind, text string) Token {
	tok := Token{Kind: kind, Value: text, Text: text, Pos: t.pos(), Len: len(text)}

	switch kind {
	case Integer:
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			// out of int64 range
			tok.Kind = Invalid
		} else {
			tok.Value = v
		}
	case Float:
		v, err := strconv.ParseFloat(strings.TrimSuffix(text, "f"), 64)
		if err != nil {
			tok.Kind = Invalid
		} else {
			tok.Value = v
		}
	}

	t.advance(text)
	return tok
}

func (t *Tokenizer) pos() Position {
	return Position{Offset: t.offset, Line: t.line, Column: t.column}
}

func (t *Tokenizer) skipWhitespace() {
	for t.offset < len(t.text) && isWhitespace(t.text[t.offset]) {
		t.advance(t.text[t.offset : t.offset+1])
	}
}

func (t *Tokenizer) advance(consumed string) {
	for _, r := range consumed {
		if r == '\n' {
			t.line++
			t.column = 1
		} else {
			t.column++
		}
	}
	t.offset += len(consumed)
}
