// Package reference runs tree-sitter grammars next to the ntt parser: Check
// cross-validates a source with the C grammar and Outline extracts a control
// flow outline of functions for several languages.
package reference

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/sirupsen/logrus"
	sitter "github.com/smacker/go-tree-sitter"
	clang "github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
)

var languages = map[string]func() *sitter.Language{
	"c":          clang.GetLanguage,
	"cpp":        cpp.GetLanguage,
	"python":     python.GetLanguage,
	"javascript": javascript.GetLanguage,
}

// Languages lists the grammars Outline accepts.
func Languages() []string {
	out := make([]string, 0, len(languages))
	for name := range languages {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Analyzer wraps tree-sitter parsing. A zero Analyzer is not usable; call New.
type Analyzer struct {
	log logrus.FieldLogger
}

func New(log logrus.FieldLogger) *Analyzer {
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	return &Analyzer{log: log}
}

func (a *Analyzer) parse(ctx context.Context, language string, src []byte) (*sitter.Tree, error) {
	lang, ok := languages[language]
	if !ok {
		return nil, fmt.Errorf("language not available: %s", language)
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter %s: %w", language, err)
	}
	return tree, nil
}
