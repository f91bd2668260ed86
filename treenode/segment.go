package treenode

import "ntt-parser/tokenizer"

// segment turns the folded children of a Program or Block into if
// statements and semicolon-terminated statements.
func segment(nodes []Node) []Node {
	return splitStatements(extractIfs(nodes))
}

func extractIfs(src []Node) []Node {
	out := make([]Node, 0, len(src))
	for i := 0; i < len(src); i++ {
		if !isToken(src[i], tokenizer.Keyword, "if") {
			out = append(out, src[i])
			continue
		}
		stmt, next := extractIf(src, i)
		out = append(out, stmt)
		i = next - 1
	}
	return out
}

// extractIf builds the if statement whose keyword is src[at] and returns the
// index just past the slots it consumed. Missing parts consume no slot.
func extractIf(src []Node, at int) (*IfStatement, int) {
	kw := src[at].(*Atomic)
	stmt := &IfStatement{Keyword: kw.Token}
	next := at + 1

	if next < len(src) && src[next].Kind() == KindExpression {
		stmt.Condition = src[next]
		next++
	} else {
		stmt.Condition = &Invalid{}
		stmt.err = errMissingCondition()
	}

	if next < len(src) && src[next].Kind() == KindBlock {
		stmt.Body = src[next]
		next++
	} else {
		stmt.Body = newBlock(KindBlock, nil, nil)
		stmt.err = errMissingBody()
		return stmt, next
	}

	if next+1 < len(src) && isToken(src[next], tokenizer.Keyword, "else") {
		switch branch := src[next+1]; {
		case branch.Kind() == KindBlock:
			stmt.Else = branch
			next += 2
		case isToken(branch, tokenizer.Keyword, "if"):
			stmt.Else, next = extractIf(src, next+1)
		}
	}
	return stmt, next
}

// splitStatements groups runs of loose nodes into statements. A run ends at
// `;`, or without one when a block, if statement or statement interrupts it
// or the input ends.
func splitStatements(src []Node) []Node {
	var out, pending []Node
	flush := func(err *SyntaxError) {
		if len(pending) == 0 {
			return
		}
		out = append(out, newBlock(KindStatement, pending, err))
		pending = nil
	}

	for _, n := range src {
		switch {
		case n.Kind() == KindBlock || n.Kind() == KindIfStatement || n.Kind() == KindStatement:
			flush(errMissingSemicolon())
			out = append(out, n)
		case isToken(n, tokenizer.Delimiter, ";"):
			flush(nil)
		default:
			pending = append(pending, n)
		}
	}
	flush(errMissingSemicolon())
	return out
}
