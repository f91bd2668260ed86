package treenode

import (
	"fmt"
	"io"
	"strings"
)

// Label is a one-line description of n without its children.
func Label(n Node) string {
	switch n := n.(type) {
	case *Atomic:
		return fmt.Sprintf("Atomic %s %s", n.Token.Kind, n.Token.Text)
	case *Operation:
		return fmt.Sprintf("Operation %s", n.Operator.Text)
	case *UnaryOperation:
		return fmt.Sprintf("UnaryOperation %s", n.Operator.Text)
	}
	return n.Kind().String()
}

// Fprint writes an indented outline of the tree. Invalid nodes are suffixed
// with their message.
func Fprint(w io.Writer, root Node) error {
	var err error
	Walk(root, func(path string, n Node) bool {
		if err != nil {
			return false
		}
		depth := 0
		if path != "" {
			depth = strings.Count(path, ".") + 1
		}
		line := strings.Repeat("  ", depth) + edgeName(path) + Label(n)
		if !n.Valid() {
			line += "  ! " + n.Message()
		}
		_, err = fmt.Fprintln(w, line)
		return true
	})
	return err
}

// Sprint is Fprint into a string.
func Sprint(root Node) string {
	var b strings.Builder
	_ = Fprint(&b, root)
	return b.String()
}

func edgeName(path string) string {
	if path == "" {
		return ""
	}
	name := path[strings.LastIndex(path, ".")+1:]
	if strings.HasPrefix(name, "children[") {
		return ""
	}
	return name + ": "
}
