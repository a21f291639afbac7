package evaluator_test

import (
	"strings"
	"testing"

	"github.com/keithagy/lox/pkg/diagnostics"
	"github.com/keithagy/lox/pkg/evaluator"
	"github.com/keithagy/lox/pkg/lexer"
	"github.com/keithagy/lox/pkg/parser"
	"github.com/keithagy/lox/pkg/resolver"
)

func run(t *testing.T, source string) (string, error) {
	t.Helper()
	r := diagnostics.NewReporter()
	tokens := lexer.NewScanner(source, r).ScanTokens()
	stmts := parser.New(tokens, r).Parse()
	if r.HadError() {
		t.Fatalf("unexpected parse diagnostics: %v", r.Diagnostics())
	}
	locals := resolver.New(r).Resolve(stmts)
	if r.HadError() {
		t.Fatalf("unexpected resolve diagnostics: %v", r.Diagnostics())
	}
	var out strings.Builder
	in := evaluator.New()
	in.SetOutput(&out)
	err := in.Interpret(stmts, locals)
	return out.String(), err
}

func TestTruthinessNilAndFalseAreFalsyOnly(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{`if (nil) print "yes"; else print "no";`, "no\n"},
		{`if (false) print "yes"; else print "no";`, "no\n"},
		{`if (0) print "yes"; else print "no";`, "yes\n"},
		{`if ("") print "yes"; else print "no";`, "yes\n"},
		{`if (true) print "yes"; else print "no";`, "yes\n"},
	}
	for _, tt := range tests {
		got, err := run(t, tt.source)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", tt.source, err)
		}
		if got != tt.want {
			t.Errorf("%q: got %q, want %q", tt.source, got, tt.want)
		}
	}
}

func TestEqualityNilOnlyEqualsNil(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{`print nil == nil;`, "true\n"},
		{`print nil == false;`, "false\n"},
		{`print 1 == 1;`, "true\n"},
		{`print 1 == 1.0;`, "true\n"},
		{`print "a" == "a";`, "true\n"},
		{`print "a" == "b";`, "false\n"},
	}
	for _, tt := range tests {
		got, err := run(t, tt.source)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", tt.source, err)
		}
		if got != tt.want {
			t.Errorf("%q: got %q, want %q", tt.source, got, tt.want)
		}
	}
}

func TestStringifyNumbers(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{`print 3;`, "3\n"},
		{`print 3.0;`, "3\n"},
		{`print 3.25;`, "3.25\n"},
		{`print nil;`, "nil\n"},
		{`print true;`, "true\n"},
	}
	for _, tt := range tests {
		got, err := run(t, tt.source)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", tt.source, err)
		}
		if got != tt.want {
			t.Errorf("%q: got %q, want %q", tt.source, got, tt.want)
		}
	}
}

func TestCallableAndInstanceStringify(t *testing.T) {
	got, err := run(t, `
		fun f() {}
		print f;
		class A {}
		print A;
		var a = A();
		print a;
	`)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	want := "<fn f>\nA\nA instance\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
