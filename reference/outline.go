package reference

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

const (
	Function    = "function"
	If          = "if"
	Switch      = "switch"
	Case        = "case"
	For         = "for"
	While       = "while"
	DoWhile     = "doWhile"
	Instruction = "instruction"
)

// OutlineNode is one step of a function's control flow. Branch children of
// an if carry Condition "true" or "false".
type OutlineNode struct {
	Type      string        `json:"type" yaml:"type"`
	Data      string        `json:"data" yaml:"data"`
	Condition string        `json:"condition" yaml:"condition"`
	Nodes     []OutlineNode `json:"nodes" yaml:"nodes"`
}

// Outline parses src with the named grammar and returns one node per
// function definition found anywhere in the tree.
func (a *Analyzer) Outline(ctx context.Context, language string, src []byte) ([]OutlineNode, error) {
	tree, err := a.parse(ctx, language, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	o := outliner{src: src, unhandled: map[string]int{}}
	functions := o.functions(tree.RootNode())
	if functions == nil {
		functions = []OutlineNode{}
	}

	a.log.WithField("language", language).
		WithField("functions", len(functions)).
		WithField("unhandled", o.unhandled).
		Debug("outline")
	return functions, nil
}

type outliner struct {
	src       []byte
	unhandled map[string]int
}

func (o *outliner) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(o.src)
}

func (o *outliner) functions(n *sitter.Node) []OutlineNode {
	var out []OutlineNode
	if isFunctionNode(n.Type()) {
		name := n.ChildByFieldName("declarator")
		if name == nil {
			name = n.ChildByFieldName("name")
		}
		out = append(out, OutlineNode{
			Type:  Function,
			Data:  o.text(name),
			Nodes: o.body(n.ChildByFieldName("body")),
		})
	}

	for i := 0; i < int(n.NamedChildCount()); i++ {
		if child := n.NamedChild(i); child != nil {
			out = append(out, o.functions(child)...)
		}
	}
	return out
}

// body flattens nested blocks into one list of outline nodes.
func (o *outliner) body(n *sitter.Node) []OutlineNode {
	nodes := []OutlineNode{}
	if n == nil {
		return nodes
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if child := n.NamedChild(i); child != nil {
			nodes = append(nodes, o.statement(child)...)
		}
	}
	return nodes
}

func (o *outliner) statement(n *sitter.Node) []OutlineNode {
	switch n.Type() {
	case "compound_statement", "block", "statement_block", "else_clause":
		return o.body(n)
	case "return_statement", "expression_statement", "declaration",
		"lexical_declaration", "variable_declaration", "break_statement":
		return []OutlineNode{{Type: Instruction, Data: o.text(n)}}
	case "for_statement":
		return []OutlineNode{{
			Type:      For,
			Condition: o.forClause(n),
			Nodes:     o.body(n.ChildByFieldName("body")),
		}}
	case "while_statement":
		return []OutlineNode{{
			Type:      While,
			Condition: o.condition(n),
			Nodes:     o.body(n.ChildByFieldName("body")),
		}}
	case "do_statement":
		return []OutlineNode{{
			Type:      DoWhile,
			Condition: o.condition(n),
			Nodes:     o.body(n.ChildByFieldName("body")),
		}}
	case "if_statement":
		return []OutlineNode{o.ifNode(n)}
	case "switch_statement":
		return []OutlineNode{{
			Type:  Switch,
			Data:  o.condition(n),
			Nodes: o.body(n.ChildByFieldName("body")),
		}}
	case "case_statement":
		cond := "default"
		if v := n.ChildByFieldName("value"); v != nil {
			cond = o.text(v)
		}
		return []OutlineNode{{
			Type:      Case,
			Condition: cond,
			Nodes:     o.caseBody(n),
		}}
	}
	o.unhandled[n.Type()]++
	return nil
}

func (o *outliner) ifNode(n *sitter.Node) OutlineNode {
	node := OutlineNode{Type: If, Data: o.condition(n), Nodes: []OutlineNode{}}

	if consequence := n.ChildByFieldName("consequence"); consequence != nil {
		for _, c := range o.statement(consequence) {
			c.Condition = "true"
			node.Nodes = append(node.Nodes, c)
		}
	}
	if alternative := n.ChildByFieldName("alternative"); alternative != nil {
		for _, c := range o.statement(alternative) {
			c.Condition = "false"
			node.Nodes = append(node.Nodes, c)
		}
	}
	return node
}

// caseBody skips the case label and outlines the statements after it.
func (o *outliner) caseBody(n *sitter.Node) []OutlineNode {
	value := n.ChildByFieldName("value")
	nodes := []OutlineNode{}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child == nil || (value != nil && sameSpan(child, value)) {
			continue
		}
		nodes = append(nodes, o.statement(child)...)
	}
	return nodes
}

func (o *outliner) condition(n *sitter.Node) string {
	cond := n.ChildByFieldName("condition")
	if cond == nil {
		return ""
	}
	if v := cond.ChildByFieldName("value"); v != nil {
		cond = v
	}
	text := o.text(cond)
	if cond.Type() == "parenthesized_expression" {
		text = strings.TrimSuffix(strings.TrimPrefix(text, "("), ")")
	}
	return strings.TrimSpace(text)
}

func (o *outliner) forClause(n *sitter.Node) string {
	start := n.ChildByFieldName("initializer")
	end := n.ChildByFieldName("update")
	if end == nil {
		end = n.ChildByFieldName("condition")
	}
	if start == nil || end == nil {
		return o.condition(n)
	}
	return string(o.src[start.StartByte():end.EndByte()])
}

func isFunctionNode(nodeType string) bool {
	return nodeType == "function_definition" || nodeType == "function_declaration"
}

func sameSpan(a, b *sitter.Node) bool {
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte()
}
