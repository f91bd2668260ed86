package reference

import (
	"context"

	"github.com/sirupsen/logrus"
	sitter "github.com/smacker/go-tree-sitter"

	"ntt-parser/tokenizer"
)

// Issue is a syntax problem found by the reference grammar.
type Issue struct {
	Kind string             `json:"kind" yaml:"kind"` // "error" or "missing"
	Type string             `json:"type" yaml:"type"`
	Text string             `json:"text" yaml:"text"`
	Pos  tokenizer.Position `json:"pos" yaml:"pos"`
}

// Report is the outcome of Check.
type Report struct {
	Language string  `json:"language" yaml:"language"`
	Issues   []Issue `json:"issues" yaml:"issues"`
}

// Valid reports whether the reference grammar accepted the whole source.
func (r *Report) Valid() bool { return len(r.Issues) == 0 }

// Check parses src with the C grammar and reports its ERROR and MISSING
// nodes in source order.
func (a *Analyzer) Check(ctx context.Context, src []byte) (*Report, error) {
	tree, err := a.parse(ctx, "c", src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	report := &Report{Language: "c", Issues: []Issue{}}
	root := tree.RootNode()
	if root.HasError() {
		collectIssues(root, src, &report.Issues)
	}

	a.log.WithFields(logrus.Fields{
		"language": report.Language,
		"issues":   len(report.Issues),
	}).Debug("reference check")
	return report, nil
}

func collectIssues(n *sitter.Node, src []byte, out *[]Issue) {
	switch {
	case n.IsMissing():
		*out = append(*out, Issue{Kind: "missing", Type: n.Type(), Pos: position(n)})
		return
	case n.IsError():
		*out = append(*out, Issue{Kind: "error", Type: n.Type(), Text: n.Content(src), Pos: position(n)})
		return
	case !n.HasError():
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if child := n.Child(i); child != nil {
			collectIssues(child, src, out)
		}
	}
}

func position(n *sitter.Node) tokenizer.Position {
	p := n.StartPoint()
	return tokenizer.Position{
		Offset: int(n.StartByte()),
		Line:   int(p.Row) + 1,
		Column: int(p.Column) + 1,
	}
}
