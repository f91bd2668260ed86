package treenode

import (
	"encoding/json"
	"fmt"
	"sync"

	"ntt-parser/tokenizer"
)

// Block owns an ordered sequence of children. Passes never edit the sequence
// in place: they build a new one and swap it in under the lock, so a
// concurrent reader sees either the old sequence or the new one.
type Block struct {
	kind Kind
	open tokenizer.Position // opening bracket, zero for Program and Statement

	mu       sync.RWMutex
	children []Node

	status
}

// NewBlock returns a block of a block kind (Program, Expression, Block,
// IndexBlock or Statement). It panics on any other kind.
func NewBlock(kind Kind, children []Node) *Block {
	return newBlock(kind, children, nil)
}

func newBlock(kind Kind, children []Node, err *SyntaxError) *Block {
	if !kind.IsBlock() {
		panic(fmt.Sprintf("treenode: %s is not a block kind", kind))
	}
	b := &Block{kind: kind, children: children}
	b.err = err
	return b
}

// NewProgram tokenizes text into a Program of atoms, ready for Compress.
func NewProgram(text string) *Block {
	return NewProgramFromTokens(tokenizer.Tokenize(text))
}

// NewProgramFromTokens wraps already scanned tokens into a Program.
func NewProgramFromTokens(tokens []tokenizer.Token) *Block {
	children := make([]Node, len(tokens))
	for i, tok := range tokens {
		children[i] = NewAtomic(tok)
	}
	return newBlock(KindProgram, children, nil)
}

func (b *Block) Kind() Kind { return b.kind }

func (b *Block) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.children)
}

func (b *Block) Child(i int) Node {
	b.mu.RLock()
	defer b.mu.RUnlock()
	checkIndex(i, len(b.children))
	return b.children[i]
}

// Children returns a snapshot of the child sequence.
func (b *Block) Children() []Node {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Node, len(b.children))
	copy(out, b.children)
	return out
}

func (b *Block) setChildren(children []Node) {
	b.mu.Lock()
	b.children = children
	b.mu.Unlock()
}

func (b *Block) Compress() {
	nodes := b.Children()
	for _, fam := range families {
		nodes = fam.compress(nodes)
	}
	for _, n := range nodes {
		n.Compress()
	}
	b.setChildren(nodes)
}

func (b *Block) Parse() {
	nodes := b.Children()
	for _, n := range nodes {
		if k := n.Kind(); k == KindBlock || k == KindExpression || k == KindIndexBlock {
			n.Parse()
		}
	}

	nodes = foldOperators(nodes)
	if b.kind == KindProgram || b.kind == KindBlock {
		nodes = segment(nodes)
	}
	b.setChildren(nodes)
}

func (b *Block) Pos() tokenizer.Position {
	if b.open.Line > 0 {
		return b.open
	}
	return firstPos(b.Children()...)
}

func (b *Block) Map() map[string]any {
	return map[string]any{
		"type":     b.kind.String(),
		"children": mapAll(b.Children()),
		"error":    b.errorValue(),
	}
}

func (b *Block) MarshalJSON() ([]byte, error) { return json.Marshal(b.Map()) }

func (b *Block) node() {}
