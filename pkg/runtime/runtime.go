// Package runtime provides the top-level Lox runtime orchestrator.
package runtime

import (
	"io"
	"strings"

	"github.com/keithagy/lox/pkg/diagnostics"
	"github.com/keithagy/lox/pkg/evaluator"
	"github.com/keithagy/lox/pkg/lexer"
	"github.com/keithagy/lox/pkg/parser"
	"github.com/keithagy/lox/pkg/resolver"
)

// Session wires together the scanner, parser, resolver, and
// interpreter for repeated program execution, holding the interpreter's
// global environment fixed across calls so a REPL's later lines can see
// bindings made by earlier ones.
type Session struct {
	interp *evaluator.Interpreter
}

// Option is a functional option for configuring a Session.
type Option func(*Session)

// WithOutput redirects Print statement output, the way a test or an
// embedder that wants to capture program output would.
func WithOutput(w io.Writer) Option {
	return func(s *Session) {
		s.interp.SetOutput(w)
	}
}

// New creates a Session with a fresh global environment.
func New(opts ...Option) *Session {
	s := &Session{interp: evaluator.New()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run scans, parses, resolves, and interprets source against this
// Session's persistent global environment. A compile-time fault (scan,
// parse, or resolve) is returned as a *DiagnosticError without touching
// the interpreter at all; a runtime fault is returned as the
// *diagnostics.RuntimeError the evaluator produced.
func (s *Session) Run(source string) error {
	reporter := diagnostics.NewReporter()
	tokens := lexer.NewScanner(source, reporter).ScanTokens()
	stmts := parser.New(tokens, reporter).Parse()
	if reporter.HadError() {
		return &DiagnosticError{Diagnostics: reporter.Diagnostics()}
	}

	locals := resolver.New(reporter).Resolve(stmts)
	if reporter.HadError() {
		return &DiagnosticError{Diagnostics: reporter.Diagnostics()}
	}

	return s.interp.Interpret(stmts, locals)
}

// DiagnosticError wraps one or more compile-time diagnostics (scanner,
// parser, or resolver errors) as a single error, the wire format
// `FormatCompile` defines, one diagnostic per line.
type DiagnosticError struct {
	Diagnostics []diagnostics.Diagnostic
}

func (e *DiagnosticError) Error() string {
	msgs := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		msgs[i] = diagnostics.FormatCompile(d)
	}
	return strings.Join(msgs, "\n")
}
