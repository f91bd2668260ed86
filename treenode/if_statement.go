package treenode

import (
	"encoding/json"

	"ntt-parser/tokenizer"
)

// IfStatement is `if (condition) { body }` with an optional else branch,
// which is either a Block or a chained *IfStatement. Only one error is kept;
// a missing body wins over a missing condition.
type IfStatement struct {
	Keyword   tokenizer.Token
	Condition Node
	Body      Node
	Else      Node // nil without an else branch
	status
}

func (s *IfStatement) Kind() Kind { return KindIfStatement }

func (s *IfStatement) Len() int {
	if s.Else != nil {
		return 3
	}
	return 2
}

func (s *IfStatement) Child(i int) Node {
	checkIndex(i, s.Len())
	switch i {
	case 0:
		return s.Condition
	case 1:
		return s.Body
	default:
		return s.Else
	}
}

func (s *IfStatement) Compress() {
	s.Condition.Compress()
	s.Body.Compress()
	if s.Else != nil {
		s.Else.Compress()
	}
}

func (s *IfStatement) Parse() {
	s.Condition.Parse()
	s.Body.Parse()
	if s.Else != nil {
		s.Else.Parse()
	}
}

func (s *IfStatement) Pos() tokenizer.Position { return s.Keyword.Pos }

func (s *IfStatement) Map() map[string]any {
	m := map[string]any{
		"type":      KindIfStatement.String(),
		"condition": s.Condition.Map(),
		"body":      s.Body.Map(),
		"error":     s.errorValue(),
	}
	if s.Else != nil {
		m["else"] = s.Else.Map()
	}
	return m
}

func (s *IfStatement) MarshalJSON() ([]byte, error) { return json.Marshal(s.Map()) }

func (s *IfStatement) node() {}
