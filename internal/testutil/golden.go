// Package testutil provides a small in-process end-to-end test harness for
// running Lox source through the full runtime and asserting on stdout and
// the program's exit behavior, in place of shelling out to a built binary.
package testutil

import (
	"strings"

	"github.com/keithagy/lox/pkg/diagnostics"
	"github.com/keithagy/lox/pkg/runtime"
)

// Case is a single end-to-end scenario: a program plus its expected
// observable behavior.
type Case struct {
	Name       string
	Source     string
	WantStdout string
	WantExit   int
}

// Run executes a Case's source against a fresh Session and returns the
// captured stdout and the exit code the CLI driver would report:
// 0 for success, 65 for a compile-time diagnostic, 70 for a runtime error.
func Run(c Case) (stdout string, exitCode int) {
	var out strings.Builder
	s := runtime.New(runtime.WithOutput(&out))
	err := s.Run(c.Source)
	switch err.(type) {
	case nil:
		return out.String(), 0
	case *runtime.DiagnosticError:
		return out.String(), 65
	case *diagnostics.RuntimeError:
		return out.String(), 70
	default:
		return out.String(), 70
	}
}
