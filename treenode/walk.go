package treenode

import (
	"fmt"

	"ntt-parser/tokenizer"
)

// Edge is a named link from a node to one of its children.
type Edge struct {
	Name string
	Node Node
}

// Edges lists the children of n with the names used in the projection.
func Edges(n Node) []Edge {
	switch n := n.(type) {
	case *Block:
		children := n.Children()
		edges := make([]Edge, len(children))
		for i, c := range children {
			edges[i] = Edge{Name: fmt.Sprintf("children[%d]", i), Node: c}
		}
		return edges
	case *Operation:
		return []Edge{{"left", n.Left}, {"right", n.Right}}
	case *UnaryOperation:
		return []Edge{{"operand", n.Operand}}
	case *IfStatement:
		edges := []Edge{{"condition", n.Condition}, {"body", n.Body}}
		if n.Else != nil {
			edges = append(edges, Edge{"else", n.Else})
		}
		return edges
	}
	return nil
}

// WalkFunc is called for every node with its path from the root. Returning
// false skips the node's children.
type WalkFunc func(path string, n Node) bool

// Walk visits the tree depth-first in source order.
func Walk(root Node, fn WalkFunc) {
	walk("", root, fn)
}

func walk(path string, n Node, fn WalkFunc) {
	if !fn(path, n) {
		return
	}
	for _, e := range Edges(n) {
		child := e.Name
		if path != "" {
			child = path + "." + e.Name
		}
		walk(child, e.Node, fn)
	}
}

// Diagnostic describes one invalid node.
type Diagnostic struct {
	Path    string             `json:"path" yaml:"path"`
	Kind    string             `json:"kind" yaml:"kind"`
	Code    Code               `json:"code" yaml:"code"`
	Message string             `json:"message" yaml:"message"`
	Pos     tokenizer.Position `json:"pos" yaml:"pos"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s (%s)", d.Pos, d.Message, d.Path)
}

// Diagnostics collects every invalid node under root. A node without a
// position of its own, such as an Invalid placeholder, reports the position
// of its nearest positioned ancestor.
func Diagnostics(root Node) []Diagnostic {
	var out []Diagnostic
	collect("", root, tokenizer.Position{}, &out)
	return out
}

func collect(path string, n Node, inherited tokenizer.Position, out *[]Diagnostic) {
	pos := n.Pos()
	if pos.Line == 0 {
		pos = inherited
	}
	if !n.Valid() {
		d := Diagnostic{Path: path, Kind: n.Kind().String(), Message: n.Message(), Pos: pos}
		if se, ok := n.Err().(*SyntaxError); ok {
			d.Code = se.Code
		}
		*out = append(*out, d)
	}
	for _, e := range Edges(n) {
		child := e.Name
		if path != "" {
			child = path + "." + e.Name
		}
		collect(child, e.Node, pos, out)
	}
}
