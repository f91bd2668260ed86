package tokenizer

import (
	"encoding/json"
	"fmt"
)

// Kind identifies the lexical category of a token.
type Kind int

const (
	None Kind = iota
	Boolean
	Integer
	Float
	String
	Delimiter
	Operator
	Parenthesis
	Identifier
	Keyword
	Invalid
)

func (k Kind) String() string {
	switch k {
	case None:
		return "NONE"
	case Boolean:
		return "BOOLEAN"
	case Integer:
		return "INTEGER"
	case Float:
		return "FLOAT"
	case String:
		return "STRING"
	case Delimiter:
		return "DELIMITER"
	case Operator:
		return "OPERATOR"
	case Parenthesis:
		return "PARENTHESIS"
	case Identifier:
		return "IDENTIFIER"
	case Keyword:
		return "KEYWORD"
	case Invalid:
		return "INVALID"
	default:
		return "UNKNOWN"
	}
}

// Position identifies where a token starts in the source text.
type Position struct {
	Offset int `json:"offset" yaml:"offset"` // byte offset (0-based)
	Line   int `json:"line" yaml:"line"`     // line number (1-based)
	Column int `json:"column" yaml:"column"` // column in runes (1-based)
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is one classified lexeme. Value holds an int64 for Integer, a float64
// for Float and the raw matched text for every other kind.
type Token struct {
	Kind  Kind
	Value any
	Text  string
	Pos   Position
	Len   int
}

// Is reports whether the token has the given kind and raw text.
func (t Token) Is(kind Kind, text string) bool {
	return t.Kind == kind && t.Text == text
}

// Int returns the decoded integer value and whether the token holds one.
func (t Token) Int() (int64, bool) {
	v, ok := t.Value.(int64)
	return v, ok
}

// Float returns the decoded float value and whether the token holds one.
func (t Token) Float() (float64, bool) {
	v, ok := t.Value.(float64)
	return v, ok
}

func (t Token) String() string {
	if t.Kind == None {
		return "NONE"
	}
	return fmt.Sprintf("%s(%s)", t.Kind, t.Text)
}

// Map returns the token's JSON-like projection.
func (t Token) Map() map[string]any {
	return map[string]any{
		"type":   t.Kind.String(),
		"value":  t.Value,
		"offset": t.Pos.Offset,
		"line":   t.Pos.Line,
		"column": t.Pos.Column,
	}
}

func (t Token) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Map())
}
