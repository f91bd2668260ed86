package treenode

import (
	"encoding/json"

	"ntt-parser/tokenizer"
)

// Atomic wraps exactly one token. An Invalid token makes the node invalid.
type Atomic struct {
	Token tokenizer.Token
	status
}

func NewAtomic(tok tokenizer.Token) *Atomic {
	a := &Atomic{Token: tok}
	if tok.Kind == tokenizer.Invalid {
		a.err = errInvalidToken(tok.Text)
	}
	return a
}

func (a *Atomic) Kind() Kind { return KindAtomic }
func (a *Atomic) Len() int   { return 1 }

// Child returns the atom itself for index 0.
func (a *Atomic) Child(i int) Node {
	checkIndex(i, 1)
	return a
}

func (a *Atomic) Compress() {}
func (a *Atomic) Parse()    {}

func (a *Atomic) Pos() tokenizer.Position { return a.Token.Pos }

func (a *Atomic) Map() map[string]any {
	return map[string]any{
		"type":  KindAtomic.String(),
		"token": a.Token.Map(),
		"error": a.errorValue(),
	}
}

func (a *Atomic) MarshalJSON() ([]byte, error) { return json.Marshal(a.Map()) }

func (a *Atomic) node() {}

// isToken reports whether n is an atom holding a token of kind with text.
func isToken(n Node, kind tokenizer.Kind, text string) bool {
	a, ok := n.(*Atomic)
	return ok && a.Token.Is(kind, text)
}

// Invalid marks a required child that could not be located.
type Invalid struct{}

func (v *Invalid) Kind() Kind { return KindInvalid }
func (v *Invalid) Len() int   { return 0 }

func (v *Invalid) Child(i int) Node {
	checkIndex(i, 0)
	return nil
}

func (v *Invalid) Compress() {}
func (v *Invalid) Parse()    {}

func (v *Invalid) Valid() bool     { return false }
func (v *Invalid) Err() error      { return errInvalidNode() }
func (v *Invalid) Message() string { return errInvalidNode().Message }

func (v *Invalid) Pos() tokenizer.Position { return tokenizer.Position{} }

func (v *Invalid) Map() map[string]any {
	return map[string]any{
		"type":  KindInvalid.String(),
		"error": v.Message(),
	}
}

func (v *Invalid) MarshalJSON() ([]byte, error) { return json.Marshal(v.Map()) }

func (v *Invalid) node() {}

// orInvalid substitutes the placeholder for a missing node.
func orInvalid(n Node) Node {
	if n == nil {
		return &Invalid{}
	}
	return n
}
