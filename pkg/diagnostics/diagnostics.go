// Package diagnostics defines the Lox compile/runtime diagnostic model and
// the stderr wire formats the CLI and REPL rely on.
package diagnostics

import "fmt"

// Diagnostic is a single compile-time (scan/parse/resolve) error report.
type Diagnostic struct {
	Line    int
	Where   string // " at end", " at '<lexeme>'", or "" for scanner errors
	Message string
}

// FormatCompile renders a compile-time diagnostic as
// "[line N] Error<where>: <message>".
func FormatCompile(d Diagnostic) string {
	return fmt.Sprintf("[line %d] Error%s: %s", d.Line, d.Where, d.Message)
}

// RuntimeError is a runtime fault, carrying the line at which it occurred
// so the top-level interpret loop can report it. It implements error so it
// can be propagated with ordinary Go control flow through the tree-walk.
type RuntimeError struct {
	Line    int
	Message string
}

func (e *RuntimeError) Error() string {
	return e.Message
}

// FormatRuntime renders a runtime error as "<message>\n[line N]".
func FormatRuntime(e *RuntimeError) string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Line)
}

// Reporter accumulates compile diagnostics for a single scan/parse/resolve
// pass and exposes the "had error" flag the REPL and script driver branch
// on.
type Reporter struct {
	diags []Diagnostic
}

// NewReporter creates an empty Reporter.
func NewReporter() *Reporter {
	return &Reporter{}
}

// Report records a compile diagnostic at the given line with no token
// context (used by the scanner).
func (r *Reporter) Report(line int, message string) {
	r.diags = append(r.diags, Diagnostic{Line: line, Message: message})
}

// ReportAt records a compile diagnostic with token-location context, the
// form used by the parser and resolver.
func (r *Reporter) ReportAt(line int, where, message string) {
	r.diags = append(r.diags, Diagnostic{Line: line, Where: where, Message: message})
}

// HadError reports whether any diagnostic has been collected.
func (r *Reporter) HadError() bool {
	return len(r.diags) > 0
}

// Diagnostics returns the collected diagnostics in report order.
func (r *Reporter) Diagnostics() []Diagnostic {
	return r.diags
}

// Reset clears accumulated diagnostics so the Reporter can be reused for
// another pass.
func (r *Reporter) Reset() {
	r.diags = nil
}
