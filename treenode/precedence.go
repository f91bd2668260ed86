package treenode

import (
	"fmt"
	"slices"

	"ntt-parser/tokenizer"
)

// rung is one level of the precedence ladder.
type rung struct {
	unary bool
	ops   map[string]bool
}

func ops(list ...string) map[string]bool {
	m := make(map[string]bool, len(list))
	for _, op := range list {
		m[op] = true
	}
	return m
}

// ladder runs from tightest to loosest binding. ^ binds tighter than * and /,
// and comparisons sit between the additive operators and assignment.
var ladder = []rung{
	{unary: true, ops: ops("|", "!")},
	{ops: ops("^")},
	{ops: ops("*", "/")},
	{ops: ops("+", "-")},
	{ops: ops("<", "<=", ">", ">=", "==", "!=")},
	{ops: ops("+=", "-=", "*=", "/=", "%=")},
	{ops: ops("=")},
}

// foldOperators applies every rung to a fixed point.
func foldOperators(nodes []Node) []Node {
	for _, r := range ladder {
		// A productive pass consumes at least one operator atom.
		for pass := 0; ; pass++ {
			if pass > len(nodes) {
				panic(fmt.Sprintf("treenode: operator folding did not settle after %d passes", pass))
			}
			var changed bool
			if r.unary {
				nodes, changed = foldUnary(nodes, r.ops)
			} else {
				nodes, changed = foldBinary(nodes, r.ops)
			}
			if !changed {
				break
			}
		}
	}
	return nodes
}

// foldBinary sweeps left to right. The left operand is the last node already
// emitted, so a run of same-level operators associates to the left.
func foldBinary(src []Node, set map[string]bool) ([]Node, bool) {
	out := make([]Node, 0, len(src))
	changed := false

	for i := 0; i < len(src); i++ {
		op, ok := operatorIn(src[i], set)
		if !ok {
			out = append(out, src[i])
			continue
		}

		var left, right Node
		if len(out) > 0 && isOperand(out[len(out)-1]) {
			left = parseOperand(out[len(out)-1])
		}
		if i+1 < len(src) && isOperand(src[i+1]) {
			right = parseOperand(src[i+1])
		}

		folded := NewOperation(op, left, right)
		if left != nil {
			out[len(out)-1] = folded
		} else {
			out = append(out, folded)
		}
		if right != nil {
			i++
		}
		changed = true
	}
	return out, changed
}

// foldUnary sweeps right to left so that `!!x` nests as `!(!x)`: the operand
// is the node emitted just before, which is the one to the operator's right.
func foldUnary(src []Node, set map[string]bool) ([]Node, bool) {
	rev := make([]Node, 0, len(src))
	changed := false

	for i := len(src) - 1; i >= 0; i-- {
		op, ok := operatorIn(src[i], set)
		if !ok {
			rev = append(rev, src[i])
			continue
		}

		var operand Node
		if len(rev) > 0 && isOperand(rev[len(rev)-1]) {
			operand = parseOperand(rev[len(rev)-1])
		}

		folded := NewUnaryOperation(op, operand)
		if operand != nil {
			rev[len(rev)-1] = folded
		} else {
			rev = append(rev, folded)
		}
		changed = true
	}

	slices.Reverse(rev)
	return rev, changed
}

// parseOperand resolves a parenthesized operand before it is folded in.
// Operations are built from parsed parts already.
func parseOperand(n Node) Node {
	if b, ok := n.(*Block); ok {
		b.Parse()
	}
	return n
}

func operatorIn(n Node, set map[string]bool) (tokenizer.Token, bool) {
	a, ok := n.(*Atomic)
	if !ok || a.Token.Kind != tokenizer.Operator || !set[a.Token.Text] {
		return tokenizer.Token{}, false
	}
	return a.Token, true
}

// isOperand reports whether n can stand next to an operator: a literal or
// identifier atom, a parenthesized expression, or an already folded operation.
func isOperand(n Node) bool {
	switch n := n.(type) {
	case *Atomic:
		switch n.Token.Kind {
		case tokenizer.Integer, tokenizer.Float, tokenizer.String,
			tokenizer.Boolean, tokenizer.Identifier:
			return true
		}
	case *Block:
		return n.Kind() == KindExpression
	case *Operation, *UnaryOperation:
		return true
	}
	return false
}
