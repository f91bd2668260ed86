package treenode

import (
	"encoding/json"
	"strconv"
	"testing"

	"ntt-parser/tokenizer"
)

// expect checks one node; path locates it in failure messages.
type expect func(t *testing.T, path string, n Node)

func build(src string) *Block {
	p := NewProgram(src)
	p.Compress()
	p.Parse()
	return p
}

func compressed(src string) *Block {
	p := NewProgram(src)
	p.Compress()
	return p
}

func projection(t *testing.T, n Node) string {
	t.Helper()
	raw, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(raw)
}

func checkError(t *testing.T, path string, n Node, want string) {
	t.Helper()
	if got := n.Message(); got != want {
		t.Fatalf("%s: expected error %q, got %q", path, want, got)
	}
	if n.Valid() != (want == "") {
		t.Fatalf("%s: Valid() = %v disagrees with message %q", path, n.Valid(), want)
	}
}

func atom(kind tokenizer.Kind, text string) expect {
	return func(t *testing.T, path string, n Node) {
		t.Helper()
		a, ok := n.(*Atomic)
		if !ok {
			t.Fatalf("%s: expected Atomic, got %s", path, n.Kind())
		}
		if !a.Token.Is(kind, text) {
			t.Fatalf("%s: expected %s(%s), got %v", path, kind, text, a.Token)
		}
	}
}

func ident(name string) expect { return atom(tokenizer.Identifier, name) }
func num(text string) expect   { return atom(tokenizer.Integer, text) }

func invalid() expect {
	return func(t *testing.T, path string, n Node) {
		t.Helper()
		if _, ok := n.(*Invalid); !ok {
			t.Fatalf("%s: expected Invalid, got %s", path, n.Kind())
		}
	}
}

func op(operator string, left, right expect) expect {
	return opErr(operator, "", left, right)
}

func opErr(operator, errMsg string, left, right expect) expect {
	return func(t *testing.T, path string, n Node) {
		t.Helper()
		o, ok := n.(*Operation)
		if !ok {
			t.Fatalf("%s: expected Operation %s, got %s", path, operator, Label(n))
		}
		if o.Operator.Text != operator {
			t.Fatalf("%s: expected operator %s, got %s", path, operator, o.Operator.Text)
		}
		checkError(t, path, o, errMsg)
		left(t, path+".left", o.Left)
		right(t, path+".right", o.Right)
	}
}

func unary(operator string, operand expect) expect {
	return unaryErr(operator, "", operand)
}

func unaryErr(operator, errMsg string, operand expect) expect {
	return func(t *testing.T, path string, n Node) {
		t.Helper()
		u, ok := n.(*UnaryOperation)
		if !ok {
			t.Fatalf("%s: expected UnaryOperation %s, got %s", path, operator, Label(n))
		}
		if u.Operator.Text != operator {
			t.Fatalf("%s: expected operator %s, got %s", path, operator, u.Operator.Text)
		}
		checkError(t, path, u, errMsg)
		operand(t, path+".operand", u.Operand)
	}
}

func block(kind Kind, errMsg string, children ...expect) expect {
	return func(t *testing.T, path string, n Node) {
		t.Helper()
		if n.Kind() != kind {
			t.Fatalf("%s: expected %s, got %s", path, kind, Label(n))
		}
		checkError(t, path, n, errMsg)
		if n.Len() != len(children) {
			t.Fatalf("%s: expected %d children, got %d:\n%s", path, len(children), n.Len(), Sprint(n))
		}
		for i, c := range children {
			c(t, path+"."+kind.String()+"["+strconv.Itoa(i)+"]", n.Child(i))
		}
	}
}

func program(children ...expect) expect { return block(KindProgram, "", children...) }
func expr(children ...expect) expect    { return block(KindExpression, "", children...) }
func code(children ...expect) expect    { return block(KindBlock, "", children...) }
func stmt(children ...expect) expect    { return block(KindStatement, "", children...) }

func unterminated(children ...expect) expect {
	return block(KindStatement, "Missing semicolon at the end", children...)
}

func ifStmt(errMsg string, condition, body expect) expect {
	return ifElse(errMsg, condition, body, nil)
}

func ifElse(errMsg string, condition, body, otherwise expect) expect {
	return func(t *testing.T, path string, n Node) {
		t.Helper()
		s, ok := n.(*IfStatement)
		if !ok {
			t.Fatalf("%s: expected IfStatement, got %s", path, Label(n))
		}
		checkError(t, path, s, errMsg)
		condition(t, path+".condition", s.Condition)
		body(t, path+".body", s.Body)
		if otherwise == nil {
			if s.Else != nil {
				t.Fatalf("%s: unexpected else branch %s", path, Label(s.Else))
			}
			return
		}
		if s.Else == nil {
			t.Fatalf("%s: expected an else branch", path)
		}
		otherwise(t, path+".else", s.Else)
	}
}

func assertTree(t *testing.T, root Node, want expect) {
	t.Helper()
	want(t, "root", root)
}
