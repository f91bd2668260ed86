package treenode

import "ntt-parser/tokenizer"

// family is one bracket pair and the block kind it produces.
type family struct {
	open, close string
	kind        Kind
}

// families run in this order: a curly block is only recognized after every
// round group has been carved out, an index block after both.
var families = []family{
	{"(", ")", KindExpression},
	{"{", "}", KindBlock},
	{"[", "]", KindIndexBlock},
}

// compress groups matching brackets of one family into blocks. Brackets of
// the same family nested inside a group are grouped recursively. Closers with
// no open group pass through as ordinary atoms; openers that are never
// closed still produce a block, flagged with an error.
func (f family) compress(nodes []Node) []Node {
	var (
		out, buf []Node
		opener   tokenizer.Position
		depth    int
	)

	for _, n := range nodes {
		switch {
		case isToken(n, tokenizer.Parenthesis, f.open):
			if depth == 0 {
				opener = n.Pos()
			} else {
				buf = append(buf, n)
			}
			depth++

		case depth > 0 && isToken(n, tokenizer.Parenthesis, f.close):
			if depth > 1 {
				buf = append(buf, n)
				depth--
				continue
			}
			out = append(out, f.wrap(buf, opener, nil))
			buf = nil
			depth = 0

		case depth > 0:
			buf = append(buf, n)

		default:
			out = append(out, n)
		}
	}

	if depth != 0 {
		out = append(out, f.wrap(buf, opener, errUnclosedBracket(f.open)))
	}
	return out
}

func (f family) wrap(content []Node, opener tokenizer.Position, err *SyntaxError) *Block {
	b := newBlock(f.kind, f.compress(content), err)
	b.open = opener
	return b
}
