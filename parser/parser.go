// Package parser drives the tokenizer and the tree passes over one source
// text and gathers everything a caller needs to report on it.
package parser

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"ntt-parser/tokenizer"
	"ntt-parser/treenode"
)

// Parser is safe for concurrent use. Each call to Parse builds its own tree.
type Parser struct {
	log *logrus.Logger
}

type Option func(*Parser)

// WithLogger routes the parser's debug output to log.
func WithLogger(log *logrus.Logger) Option {
	return func(p *Parser) {
		if log != nil {
			p.log = log
		}
	}
}

func New(opts ...Option) *Parser {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	p := &Parser{log: discard}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result is one parsed source text.
type Result struct {
	Source      string
	Tokens      []tokenizer.Token
	Program     *treenode.Block
	Diagnostics []treenode.Diagnostic
	Duration    time.Duration
}

// Parse tokenizes, compresses and parses text. It never fails: problems in
// the source end up in Result.Diagnostics.
func (p *Parser) Parse(text string) *Result {
	start := time.Now()

	tokens := tokenizer.Tokenize(text)
	program := treenode.NewProgramFromTokens(tokens)
	program.Compress()
	program.Parse()

	r := &Result{
		Source:      text,
		Tokens:      tokens,
		Program:     program,
		Diagnostics: treenode.Diagnostics(program),
		Duration:    time.Since(start),
	}

	p.log.WithFields(logrus.Fields{
		"tokens":      len(tokens),
		"statements":  program.Len(),
		"diagnostics": len(r.Diagnostics),
		"duration":    r.Duration,
	}).Debug("parsed source")
	return r
}

// Tokens only runs the tokenizer.
func (p *Parser) Tokens(text string) []tokenizer.Token {
	tokens := tokenizer.Tokenize(text)
	invalid := 0
	for _, t := range tokens {
		if t.Kind == tokenizer.Invalid {
			invalid++
		}
	}
	p.log.WithFields(logrus.Fields{"tokens": len(tokens), "invalid": invalid}).Debug("tokenized source")
	return tokens
}

// Valid reports whether no node in the tree carries an error.
func (r *Result) Valid() bool { return len(r.Diagnostics) == 0 }

// Err returns nil for a clean parse, otherwise a *DiagnosticsError.
func (r *Result) Err() error {
	if r.Valid() {
		return nil
	}
	return &DiagnosticsError{Source: r.Source, Diagnostics: r.Diagnostics}
}

// Map is the response shape shared by the HTTP API and the CLI.
func (r *Result) Map() map[string]any {
	diags := r.Diagnostics
	if diags == nil {
		diags = []treenode.Diagnostic{}
	}
	return map[string]any{
		"program":     r.Program.Map(),
		"diagnostics": diags,
		"valid":       r.Valid(),
	}
}

// DiagnosticsError reports every invalid node of a parse.
type DiagnosticsError struct {
	Source      string
	Diagnostics []treenode.Diagnostic
}

func (e *DiagnosticsError) Error() string {
	if len(e.Diagnostics) == 1 {
		return fmt.Sprintf("syntax error at %s: %s", e.Diagnostics[0].Pos, e.Diagnostics[0].Message)
	}
	return fmt.Sprintf("%d syntax errors, first at %s: %s",
		len(e.Diagnostics), e.Diagnostics[0].Pos, e.Diagnostics[0].Message)
}

// Report renders every diagnostic with a code frame under it.
func (e *DiagnosticsError) Report() string {
	var b strings.Builder
	for i, d := range e.Diagnostics {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatDiagnostic(e.Source, d))
	}
	return b.String()
}
