package treenode

import (
	"testing"

	"ntt-parser/tokenizer"
)

// parsed builds src and returns the content of its single statement.
func parsed(t *testing.T, src string) Node {
	t.Helper()
	p := build(src + ";")
	if p.Len() != 1 {
		t.Fatalf("%q: expected one statement, got %d:\n%s", src, p.Len(), Sprint(p))
	}
	s := p.Child(0)
	if s.Kind() != KindStatement || s.Len() != 1 {
		t.Fatalf("%q: expected a one-node statement:\n%s", src, Sprint(p))
	}
	return s.Child(0)
}

func TestPrecedenceMultiplicationBindsTighter(t *testing.T) {
	assertTree(t, parsed(t, "3 + 5 * 10"),
		op("+", num("3"), op("*", num("5"), num("10"))))
}

func TestPrecedenceLeftAssociative(t *testing.T) {
	tests := []struct {
		src  string
		want expect
	}{
		{"3 * 5 / 10", op("/", op("*", num("3"), num("5")), num("10"))},
		{"3+4-2", op("-", op("+", num("3"), num("4")), num("2"))},
		{"a = b = c", op("=", op("=", ident("a"), ident("b")), ident("c"))},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assertTree(t, parsed(t, tt.src), tt.want)
		})
	}
}

func TestPrecedenceLadder(t *testing.T) {
	tests := []struct {
		src  string
		want expect
	}{
		{"3 * 4 ^ 2", op("*", num("3"), op("^", num("4"), num("2")))},
		{"2 ^ 3 * 4", op("*", op("^", num("2"), num("3")), num("4"))},
		{"1 + 2 * 3 - 4", op("-", op("+", num("1"), op("*", num("2"), num("3"))), num("4"))},
		{"a + 1 < b", op("<", op("+", ident("a"), num("1")), ident("b"))},
		{"x == y != z", op("!=", op("==", ident("x"), ident("y")), ident("z"))},
		{"x += y * 2", op("+=", ident("x"), op("*", ident("y"), num("2")))},
		{"ok = a >= b", op("=", ident("ok"), op(">=", ident("a"), ident("b")))},
		{"x = y -= 1", op("=", ident("x"), op("-=", ident("y"), num("1")))},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assertTree(t, parsed(t, tt.src), tt.want)
		})
	}
}

func TestPrecedenceGroupsResolveFirst(t *testing.T) {
	assertTree(t, parsed(t, "(3 + 5) * 10"),
		op("*", expr(op("+", num("3"), num("5"))), num("10")))

	assertTree(t, parsed(t, "3 - (3 + (23 - 5)) * 2"),
		op("-",
			num("3"),
			op("*",
				expr(op("+", num("3"), expr(op("-", num("23"), num("5"))))),
				num("2"),
			),
		))
}

func TestPrecedenceMissingOperands(t *testing.T) {
	tests := []struct {
		src  string
		want expect
	}{
		{"3 + * 10", op("+", num("3"),
			opErr("*", "Left side of operator '*' is invalid", invalid(), num("10")))},
		{"3 + *", op("+", num("3"),
			opErr("*", "Both sides of operator '*' are invalid", invalid(), invalid()))},
		{"3 +", opErr("+", "Right side of operator '+' is invalid", num("3"), invalid())},
		{"* 4", opErr("*", "Left side of operator '*' is invalid", invalid(), num("4"))},
		{"+", opErr("+", "Both sides of operator '+' are invalid", invalid(), invalid())},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assertTree(t, parsed(t, tt.src), tt.want)
		})
	}
}

func TestPrecedenceKeywordIsNotAnOperand(t *testing.T) {
	p := build("int = 3;")
	assertTree(t, p, program(stmt(
		atom(tokenizer.Keyword, "int"),
		opErr("=", "Left side of operator '=' is invalid", invalid(), num("3")),
	)))
}

func TestPrecedenceOperandKinds(t *testing.T) {
	assertTree(t, parsed(t, `s = "hi"`), op("=", ident("s"), atom(tokenizer.String, `"hi"`)))
	assertTree(t, parsed(t, "f = 1.5 * 2"), op("=", ident("f"),
		op("*", atom(tokenizer.Float, "1.5"), num("2"))))
	assertTree(t, parsed(t, "b = true"), op("=", ident("b"), atom(tokenizer.Boolean, "true")))
}

func TestUnaryOperators(t *testing.T) {
	tests := []struct {
		src  string
		want expect
	}{
		{"!true", unary("!", atom(tokenizer.Boolean, "true"))},
		{"!", unaryErr("!", "Operand of operator '!' is invalid", invalid())},
		{"!!test", unary("!", unary("!", ident("test")))},
		{"!(true)", unary("!", expr(atom(tokenizer.Boolean, "true")))},
		{"|x", unary("|", ident("x"))},
		{"!a + b", op("+", unary("!", ident("a")), ident("b"))},
		{"a * !b", op("*", ident("a"), unary("!", ident("b")))},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assertTree(t, parsed(t, tt.src), tt.want)
		})
	}
}

func TestUnaryRejectsBlockOperand(t *testing.T) {
	p := build("!{ }")
	assertTree(t, p, program(
		unterminated(unaryErr("!", "Operand of operator '!' is invalid", invalid())),
		code(),
	))
}

func TestMinusIsBinaryOnly(t *testing.T) {
	assertTree(t, parsed(t, "-5"),
		opErr("-", "Left side of operator '-' is invalid", invalid(), num("5")))
}

func TestFoldOperatorsSettles(t *testing.T) {
	nodes := compressed("1 + 2 + 3 + 4 + 5 * 6 * 7 = x").Children()
	out := foldOperators(nodes)
	if len(out) != 1 {
		t.Fatalf("expected one folded node, got %d", len(out))
	}
	if again := foldOperators(out); len(again) != 1 || again[0] != out[0] {
		t.Fatal("folding a folded sequence must not change it")
	}
}

func TestIndexBlockContentIsFolded(t *testing.T) {
	assertTree(t, build("a[i + 1] = 2;"), program(stmt(
		ident("a"),
		block(KindIndexBlock, "", op("+", ident("i"), num("1"))),
		opErr("=", "Left side of operator '=' is invalid", invalid(), num("2")),
	)))
}
