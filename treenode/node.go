// Package treenode holds the syntax tree: a closed set of node variants plus
// the passes that build it. Compress groups bracketed runs into blocks, Parse
// folds operators by precedence and segments statements. Both passes recover
// from malformed input by attaching a SyntaxError to the smallest enclosing
// node instead of failing.
package treenode

import (
	"errors"
	"fmt"

	"ntt-parser/tokenizer"
)

// Kind is the structural type of a node.
type Kind int

const (
	KindAtomic Kind = iota
	KindProgram
	KindExpression
	KindBlock
	KindIndexBlock
	KindStatement
	KindOperation
	KindUnaryOperation
	KindIfStatement
	KindInvalid
)

func (k Kind) String() string {
	switch k {
	case KindAtomic:
		return "Atomic"
	case KindProgram:
		return "Program"
	case KindExpression:
		return "Expression"
	case KindBlock:
		return "Block"
	case KindIndexBlock:
		return "IndexBlock"
	case KindStatement:
		return "Statement"
	case KindOperation:
		return "Operation"
	case KindUnaryOperation:
		return "UnaryOperation"
	case KindIfStatement:
		return "IfStatement"
	case KindInvalid:
		return "Invalid"
	default:
		return "Unknown"
	}
}

// IsBlock reports whether nodes of this kind own an ordered child sequence.
func (k Kind) IsBlock() bool {
	return k >= KindProgram && k <= KindStatement
}

// ErrChildIndex is wrapped by the panic raised when a node is indexed past
// its child count. It signals a caller bug, never a problem in the source.
var ErrChildIndex = errors.New("treenode: child index out of range")

// Node is implemented by *Atomic, *Block, *Operation, *UnaryOperation,
// *IfStatement and *Invalid only.
type Node interface {
	Kind() Kind
	Len() int
	// Child panics with ErrChildIndex when i is not in [0, Len()).
	Child(i int) Node

	// Compress groups bracketed runs into blocks. Idempotent.
	Compress()
	// Parse folds operators and segments statements. Idempotent.
	Parse()

	// Valid reports whether this node's own error is unset. Descendants may
	// still be invalid.
	Valid() bool
	Err() error
	Message() string

	// Pos is the position of the node's first token, zero if it has none.
	Pos() tokenizer.Position

	// Map returns the JSON-like projection of the subtree.
	Map() map[string]any

	node()
}

func checkIndex(i, n int) {
	if i < 0 || i >= n {
		panic(fmt.Errorf("%w: %d not in [0:%d)", ErrChildIndex, i, n))
	}
}

// status is embedded by every variant that can carry an error.
type status struct {
	err *SyntaxError
}

func (s *status) Valid() bool { return s.err == nil }

func (s *status) Err() error {
	if s.err == nil {
		return nil
	}
	return s.err
}

func (s *status) Message() string {
	if s.err == nil {
		return ""
	}
	return s.err.Message
}

// errorValue is the "error" field of the projection: the message or nil.
func (s *status) errorValue() any {
	if s.err == nil {
		return nil
	}
	return s.err.Message
}

func mapAll(nodes []Node) []any {
	out := make([]any, len(nodes))
	for i, n := range nodes {
		out[i] = n.Map()
	}
	return out
}

// firstPos returns the first known position among nodes.
func firstPos(nodes ...Node) tokenizer.Position {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if p := n.Pos(); p.Line > 0 {
			return p
		}
	}
	return tokenizer.Position{}
}
