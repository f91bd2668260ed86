package tokenizer

import (
	"reflect"
	"testing"
)

func single(t *testing.T, src string) Token {
	t.Helper()
	tokens := Tokenize(src)
	if len(tokens) != 1 {
		t.Fatalf("%q: expected 1 token, got %d: %v", src, len(tokens), tokens)
	}
	return tokens[0]
}

func kinds(tokens []Token) []Kind {
	out := make([]Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenizeIntegers(t *testing.T) {
	for _, tc := range []struct {
		src  string
		want int64
	}{
		{"12", 12},
		{"0", 0},
		{"42", 42},
	} {
		tok := single(t, tc.src)
		got, ok := tok.Int()
		if tok.Kind != Integer || !ok || got != tc.want {
			t.Fatalf("%q: expected INTEGER %d, got %v (%v)", tc.src, tc.want, tok, tok.Value)
		}
		if tok.Len != len(tc.src) {
			t.Fatalf("%q: expected length %d, got %d", tc.src, len(tc.src), tok.Len)
		}
	}
}

func TestTokenizeFloats(t *testing.T) {
	for _, tc := range []struct {
		src  string
		want float64
	}{
		{"12.", 12.0},
		{".12", 0.12},
		{"3.12", 3.12},
		{"23.12", 23.12},
		{"0.", 0.0},
		{"3f", 3.0},
		{"2.5f", 2.5},
	} {
		tok := single(t, tc.src)
		got, ok := tok.Float()
		if tok.Kind != Float || !ok || got != tc.want {
			t.Fatalf("%q: expected FLOAT %v, got %v (%v)", tc.src, tc.want, tok, tok.Value)
		}
		if tok.Text != tc.src {
			t.Fatalf("%q: raw text should keep the suffix, got %q", tc.src, tok.Text)
		}
	}
}

func TestTokenizeMixedNumbersOffsets(t *testing.T) {
	tokens := Tokenize("12 0 12. \n .12 3.12 23.12 0.")
	want := []struct {
		kind   Kind
		offset int
		length int
	}{
		{Integer, 0, 2},
		{Integer, 3, 1},
		{Float, 5, 3},
		{Float, 11, 3},
		{Float, 15, 4},
		{Float, 20, 5},
		{Float, 26, 2},
	}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(tokens), tokens)
	}
	for i, w := range want {
		tok := tokens[i]
		if tok.Kind != w.kind || tok.Pos.Offset != w.offset || tok.Len != w.length {
			t.Fatalf("token %d: expected %s@%d len %d, got %s@%d len %d",
				i, w.kind, w.offset, w.length, tok.Kind, tok.Pos.Offset, tok.Len)
		}
	}
	if tokens[3].Pos.Line != 2 || tokens[3].Pos.Column != 2 {
		t.Fatalf("expected .12 at 2:2, got %s", tokens[3].Pos)
	}
}

func TestTokenizeInvalidRecovery(t *testing.T) {
	tok := single(t, "`")
	if tok.Kind != Invalid || tok.Value != "`" {
		t.Fatalf("expected INVALID(`), got %v", tok)
	}

	tokens := Tokenize("12 0 \n ` 3.12 ")
	if got := kinds(tokens); !reflect.DeepEqual(got, []Kind{Integer, Integer, Invalid, Float}) {
		t.Fatalf("unexpected kinds %v", got)
	}
	if tokens[2].Pos.Offset != 7 || tokens[3].Pos.Offset != 9 {
		t.Fatalf("unexpected offsets %d, %d", tokens[2].Pos.Offset, tokens[3].Pos.Offset)
	}

	tokens = Tokenize("x = #oops; y")
	if got := kinds(tokens); !reflect.DeepEqual(got, []Kind{Identifier, Operator, Invalid, Identifier}) {
		t.Fatalf("unexpected kinds %v", got)
	}
	if tokens[2].Text != "#oops;" {
		t.Fatalf("recovery should swallow up to whitespace, got %q", tokens[2].Text)
	}
}

func TestTokenizeMalformedNumbers(t *testing.T) {
	for _, src := range []string{"123abc", "123abc423", "12adn", "0x1F", "3fx"} {
		tok := single(t, src)
		if tok.Kind != Invalid || tok.Value != src {
			t.Fatalf("%q: expected INVALID, got %v", src, tok)
		}
	}

	tok := single(t, "99999999999999999999")
	if tok.Kind != Invalid {
		t.Fatalf("expected overflowing integer to be INVALID, got %v", tok)
	}
}

func TestTokenizeStrings(t *testing.T) {
	for _, src := range []string{`"Hello World"`, `"Hello \" World"`, `""`} {
		tok := single(t, src)
		if tok.Kind != String || tok.Value != src {
			t.Fatalf("%q: expected STRING, got %v", src, tok)
		}
	}

	tokens := Tokenize("\n 0 \"Testing \\\" World\"\"Translate\" \n` 3.12 ")
	wantOffsets := []int{2, 4, 22, 35, 37}
	if got := kinds(tokens); !reflect.DeepEqual(got, []Kind{Integer, String, String, Invalid, Float}) {
		t.Fatalf("unexpected kinds %v", got)
	}
	for i, off := range wantOffsets {
		if tokens[i].Pos.Offset != off {
			t.Fatalf("token %d: expected offset %d, got %d", i, off, tokens[i].Pos.Offset)
		}
	}
}

func TestTokenizeKeywordsShadowIdentifiers(t *testing.T) {
	for _, src := range []string{"if", "else", "while", "for", "int", "float", "func", "return", "const", "let"} {
		if tok := single(t, src); tok.Kind != Keyword || tok.Value != src {
			t.Fatalf("%q: expected KEYWORD, got %v", src, tok)
		}
	}
	for _, src := range []string{"iffy", "integer", "func_", "myVar", "_hidden", "abc123", "number"} {
		if tok := single(t, src); tok.Kind != Identifier || tok.Value != src {
			t.Fatalf("%q: expected IDENTIFIER, got %v", src, tok)
		}
	}
}

func TestTokenizeBooleans(t *testing.T) {
	for _, src := range []string{"true", "false"} {
		if tok := single(t, src); tok.Kind != Boolean || tok.Value != src {
			t.Fatalf("%q: expected BOOLEAN, got %v", src, tok)
		}
	}
	if tok := single(t, "trueish"); tok.Kind != Identifier {
		t.Fatalf("expected IDENTIFIER, got %v", tok)
	}
}

func TestTokenizeBracketsAndDelimiters(t *testing.T) {
	for _, src := range []string{"(", ")", "{", "}", "[", "]"} {
		if tok := single(t, src); tok.Kind != Parenthesis || tok.Value != src {
			t.Fatalf("%q: expected PARENTHESIS, got %v", src, tok)
		}
	}
	for _, src := range []string{";", ","} {
		if tok := single(t, src); tok.Kind != Delimiter || tok.Value != src {
			t.Fatalf("%q: expected DELIMITER, got %v", src, tok)
		}
	}
}

func TestTokenizeOperators(t *testing.T) {
	ops := []string{
		"+", "-", "*", "/", "%", "^", "@", "!", "|", "&", "=",
		"++", "--", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "@=",
		">", "<", "==", "!=", ">=", "<=", "&&", "||",
	}
	for _, src := range ops {
		if tok := single(t, src); tok.Kind != Operator || tok.Value != src {
			t.Fatalf("%q: expected OPERATOR, got %v", src, tok)
		}
	}
}

func TestTokenizeProgram(t *testing.T) {
	src := `
const pi = 3.14;
if (radius > 0) {
    print("Area is: " + area);
}
`
	want := []struct {
		kind Kind
		text string
	}{
		{Keyword, "const"}, {Identifier, "pi"}, {Operator, "="}, {Float, "3.14"}, {Delimiter, ";"},
		{Keyword, "if"}, {Parenthesis, "("}, {Identifier, "radius"}, {Operator, ">"}, {Integer, "0"}, {Parenthesis, ")"},
		{Parenthesis, "{"},
		{Identifier, "print"}, {Parenthesis, "("}, {String, `"Area is: "`}, {Operator, "+"}, {Identifier, "area"}, {Parenthesis, ")"}, {Delimiter, ";"},
		{Parenthesis, "}"},
	}
	tokens := Tokenize(src)
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(tokens), tokens)
	}
	for i, w := range want {
		if !tokens[i].Is(w.kind, w.text) {
			t.Fatalf("token %d: expected %s(%s), got %v", i, w.kind, w.text, tokens[i])
		}
	}
	if p := tokens[5].Pos; p.Line != 3 || p.Column != 1 {
		t.Fatalf("expected 'if' at 3:1, got %s", p)
	}
}

func TestTokenizerPullInterface(t *testing.T) {
	tz := New("  x  ")
	if tz.IsEmpty() {
		t.Fatalf("expected a token to remain")
	}
	if tok := tz.Next(); !tok.Is(Identifier, "x") {
		t.Fatalf("expected IDENTIFIER(x), got %v", tok)
	}
	if !tz.IsEmpty() {
		t.Fatalf("expected tokenizer to be empty")
	}
	if tok := tz.Next(); tok.Kind != None {
		t.Fatalf("expected NONE after end of input, got %v", tok)
	}
}

func FuzzTokenizeMakesProgress(f *testing.F) {
	f.Add("x = 42;")
	f.Add("12adn ` \"unterminated")
	f.Add("if (a) { b[1] += .5f; }")

	f.Fuzz(func(t *testing.T, src string) {
		last := -1
		for _, tok := range Tokenize(src) {
			if tok.Len == 0 {
				t.Fatalf("empty token %v", tok)
			}
			if tok.Pos.Offset <= last {
				t.Fatalf("offsets must increase: %d after %d", tok.Pos.Offset, last)
			}
			last = tok.Pos.Offset
		}
	})
}
