package treenode

import (
	"encoding/json"

	"ntt-parser/tokenizer"
)

// Operation applies a binary operator. A side that could not be resolved
// holds an *Invalid and the error names it.
type Operation struct {
	Operator tokenizer.Token
	Left     Node
	Right    Node
	status
}

// NewOperation builds the node from whatever operands were found; nil marks
// a missing side.
func NewOperation(op tokenizer.Token, left, right Node) *Operation {
	o := &Operation{Operator: op, Left: orInvalid(left), Right: orInvalid(right)}
	o.err = errOperands(op.Text, left != nil, right != nil)
	return o
}

func (o *Operation) Kind() Kind { return KindOperation }
func (o *Operation) Len() int   { return 2 }

func (o *Operation) Child(i int) Node {
	checkIndex(i, 2)
	if i == 0 {
		return o.Left
	}
	return o.Right
}

func (o *Operation) Compress() {
	o.Left.Compress()
	o.Right.Compress()
}

func (o *Operation) Parse() {
	o.Left.Parse()
	o.Right.Parse()
}

func (o *Operation) Pos() tokenizer.Position {
	if p := o.Left.Pos(); p.Line > 0 {
		return p
	}
	return o.Operator.Pos
}

func (o *Operation) Map() map[string]any {
	return map[string]any{
		"type":     KindOperation.String(),
		"operator": o.Operator.Text,
		"left":     o.Left.Map(),
		"right":    o.Right.Map(),
		"error":    o.errorValue(),
	}
}

func (o *Operation) MarshalJSON() ([]byte, error) { return json.Marshal(o.Map()) }

func (o *Operation) node() {}

// UnaryOperation applies a prefix operator to one operand.
type UnaryOperation struct {
	Operator tokenizer.Token
	Operand  Node
	status
}

func NewUnaryOperation(op tokenizer.Token, operand Node) *UnaryOperation {
	u := &UnaryOperation{Operator: op, Operand: orInvalid(operand)}
	if operand == nil {
		u.err = errOperand(op.Text)
	}
	return u
}

func (u *UnaryOperation) Kind() Kind { return KindUnaryOperation }
func (u *UnaryOperation) Len() int   { return 1 }

func (u *UnaryOperation) Child(i int) Node {
	checkIndex(i, 1)
	return u.Operand
}

func (u *UnaryOperation) Compress() { u.Operand.Compress() }
func (u *UnaryOperation) Parse()    { u.Operand.Parse() }

func (u *UnaryOperation) Pos() tokenizer.Position { return u.Operator.Pos }

func (u *UnaryOperation) Map() map[string]any {
	return map[string]any{
		"type":     KindUnaryOperation.String(),
		"operator": u.Operator.Text,
		"operand":  u.Operand.Map(),
		"error":    u.errorValue(),
	}
}

func (u *UnaryOperation) MarshalJSON() ([]byte, error) { return json.Marshal(u.Map()) }

func (u *UnaryOperation) node() {}
