package tokenizer

import "regexp"

// rule matches one token kind at the start of the remaining text.
type rule struct {
	kind Kind
	re   *regexp.Regexp
}

// rules are tried in order and the first match wins, so the order is part of
// the grammar: keywords shadow identifiers and the malformed-number pattern
// shadows integer literals.
var rules = []rule{
	{Keyword, regexp.MustCompile(`^(?:int|float|bool|char|string|void|auto|func|return|if|else|while|for|do|break|continue|const|let|struct|null)\b`)},
	{Delimiter, regexp.MustCompile(`^[;,]`)},
	{Parenthesis, regexp.MustCompile(`^[(){}\[\]]`)},
	// 12adn, 0x1F, 3fx; a lone trailing f is the float suffix and stays valid.
	{Invalid, regexp.MustCompile(`^[0-9]+(?:[A-Za-eg-z_][0-9A-Za-z_]*|f[0-9A-Za-z_]+)`)},
	{Operator, regexp.MustCompile(`^(?:\+\+|--|\+=|-=|\*=|/=|%=|&=|\|=|\^=|@=|==|!=|<=|>=|&&|\|\||[-+*/%^@!|&=<>])`)},
	{Boolean, regexp.MustCompile(`^(?:true|false)\b`)},
	{Float, regexp.MustCompile(`^(?:[0-9]+\.[0-9]*f?|\.[0-9]+f?|[0-9]+f)`)},
	{Integer, regexp.MustCompile(`^[0-9]+`)},
	{String, regexp.MustCompile(`^"(?:[^"\\]|\\.)*"`)},
	{Identifier, regexp.MustCompile(`^[A-Za-z_][0-9A-Za-z_]*`)},
}

const whitespace = " \n\t\r"

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\n' || b == '\t' || b == '\r'
}
