package lexer_test

import (
	"strings"
	"testing"

	"github.com/keithagy/lox/pkg/diagnostics"
	"github.com/keithagy/lox/pkg/lexer"
	"github.com/keithagy/lox/pkg/token"
)

func scan(t *testing.T, source string) ([]token.Token, *diagnostics.Reporter) {
	t.Helper()
	r := diagnostics.NewReporter()
	tokens := lexer.NewScanner(source, r).ScanTokens()
	return tokens, r
}

func TestEmptyInputProducesOnlyEOF(t *testing.T) {
	tokens, r := scan(t, "")
	if r.HadError() {
		t.Fatalf("unexpected error: %v", r.Diagnostics())
	}
	if len(tokens) != 1 || tokens[0].Type != token.EOF {
		t.Fatalf("expected single EOF token, got %v", tokens)
	}
}

func TestSingleCharTokens(t *testing.T) {
	tests := []struct {
		input string
		want  token.Type
	}{
		{"(", token.LeftParen}, {")", token.RightParen},
		{"{", token.LeftBrace}, {"}", token.RightBrace},
		{",", token.Comma}, {".", token.Dot},
		{"-", token.Minus}, {"+", token.Plus},
		{";", token.Semicolon}, {"*", token.Star}, {"/", token.Slash},
	}
	for _, tt := range tests {
		tokens, r := scan(t, tt.input)
		if r.HadError() {
			t.Fatalf("input %q: unexpected error: %v", tt.input, r.Diagnostics())
		}
		if len(tokens) != 2 || tokens[0].Type != tt.want {
			t.Errorf("input %q: got %v, want first token type %v", tt.input, tokens, tt.want)
		}
	}
}

func TestTwoCharTokens(t *testing.T) {
	tests := []struct {
		input string
		want  token.Type
	}{
		{"!", token.Bang}, {"!=", token.BangEqual},
		{"=", token.Equal}, {"==", token.EqualEqual},
		{"<", token.Less}, {"<=", token.LessEqual},
		{">", token.Greater}, {">=", token.GreaterEqual},
	}
	for _, tt := range tests {
		tokens, _ := scan(t, tt.input)
		if tokens[0].Type != tt.want || tokens[0].Lexeme != tt.input {
			t.Errorf("input %q: got %v(%q), want %v", tt.input, tokens[0].Type, tokens[0].Lexeme, tt.want)
		}
	}
}

func TestLineComment(t *testing.T) {
	tokens, r := scan(t, "1 // a comment\n2")
	if r.HadError() {
		t.Fatalf("unexpected error: %v", r.Diagnostics())
	}
	if len(tokens) != 3 {
		t.Fatalf("expected 2 numbers + EOF, got %v", tokens)
	}
	if tokens[0].Line != 1 || tokens[1].Line != 2 {
		t.Errorf("got lines %d, %d; want 1, 2", tokens[0].Line, tokens[1].Line)
	}
}

func TestStringLiteral(t *testing.T) {
	tokens, r := scan(t, `"hello world"`)
	if r.HadError() {
		t.Fatalf("unexpected error: %v", r.Diagnostics())
	}
	if tokens[0].Type != token.String || tokens[0].Literal != "hello world" {
		t.Errorf("got %v, want String literal %q", tokens[0], "hello world")
	}
}

func TestMultilineString(t *testing.T) {
	tokens, r := scan(t, "\"line1\nline2\"")
	if r.HadError() {
		t.Fatalf("unexpected error: %v", r.Diagnostics())
	}
	if tokens[0].Literal != "line1\nline2" {
		t.Errorf("got %q, want multi-line literal preserved", tokens[0].Literal)
	}
}

func TestUnterminatedString(t *testing.T) {
	_, r := scan(t, `"unterminated`)
	if !r.HadError() {
		t.Fatal("expected an error for unterminated string")
	}
	if msg := r.Diagnostics()[0].Message; msg != "Unterminated string." {
		t.Errorf("got message %q, want %q", msg, "Unterminated string.")
	}
}

func TestNumberLiteral(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"0", 0}, {"42", 42}, {"3.14", 3.14}, {"1234567890", 1234567890},
	}
	for _, tt := range tests {
		tokens, r := scan(t, tt.input)
		if r.HadError() {
			t.Fatalf("input %q: unexpected error: %v", tt.input, r.Diagnostics())
		}
		if tokens[0].Type != token.Number || tokens[0].Literal != tt.want {
			t.Errorf("input %q: got %v, want Number %v", tt.input, tokens[0], tt.want)
		}
	}
}

func TestNumberWithTrailingDotNoDigits(t *testing.T) {
	// "1." should scan "1" as a number and leave "." as its own token,
	// since only a digit-followed dot extends the number.
	tokens, r := scan(t, "1.")
	if r.HadError() {
		t.Fatalf("unexpected error: %v", r.Diagnostics())
	}
	if tokens[0].Type != token.Number || tokens[0].Literal != 1.0 {
		t.Errorf("got %v, want Number 1", tokens[0])
	}
	if tokens[1].Type != token.Dot {
		t.Errorf("got %v, want Dot", tokens[1])
	}
}

func TestIdentifiersAndKeywords(t *testing.T) {
	tests := []struct {
		input string
		want  token.Type
	}{
		{"x", token.Identifier}, {"_private", token.Identifier}, {"camelCase", token.Identifier},
		{"and", token.And}, {"class", token.Class}, {"else", token.Else},
		{"false", token.False}, {"for", token.For}, {"fun", token.Fun},
		{"if", token.If}, {"nil", token.Nil}, {"or", token.Or},
		{"print", token.Print}, {"return", token.Return}, {"super", token.Super},
		{"this", token.This}, {"true", token.True}, {"var", token.Var}, {"while", token.While},
	}
	for _, tt := range tests {
		tokens, _ := scan(t, tt.input)
		if tokens[0].Type != tt.want {
			t.Errorf("input %q: got %v, want %v", tt.input, tokens[0].Type, tt.want)
		}
	}
}

func TestKeywordVsIdentifierDisambiguation(t *testing.T) {
	tests := []struct {
		input string
		want  token.Type
	}{
		{"classroom", token.Identifier},
		{"forest", token.Identifier},
		{"printer", token.Identifier},
		{"thistle", token.Identifier},
	}
	for _, tt := range tests {
		tokens, _ := scan(t, tt.input)
		if tokens[0].Type != tt.want {
			t.Errorf("input %q: got %v, want %v", tt.input, tokens[0].Type, tt.want)
		}
	}
}

func TestUnexpectedCharacterContinuesScanning(t *testing.T) {
	tokens, r := scan(t, "1 @ 2")
	if !r.HadError() {
		t.Fatal("expected an error for '@'")
	}
	// scanning should continue past the bad character
	var numbers int
	for _, tok := range tokens {
		if tok.Type == token.Number {
			numbers++
		}
	}
	if numbers != 2 {
		t.Errorf("expected scanning to continue past bad char, got %d numbers", numbers)
	}
}

func TestEOFAlwaysTerminates(t *testing.T) {
	inputs := []string{"", "1 + 2", "// only a comment", "   \t\n  "}
	for _, in := range inputs {
		tokens, _ := scan(t, in)
		last := tokens[len(tokens)-1]
		if last.Type != token.EOF {
			t.Errorf("input %q: last token is %v, want EOF", in, last.Type)
		}
	}
}

func TestLexemeMatchesSourceSubstring(t *testing.T) {
	source := "var answer = 42;"
	tokens, r := scan(t, source)
	if r.HadError() {
		t.Fatalf("unexpected error: %v", r.Diagnostics())
	}
	pos := 0
	for _, tok := range tokens {
		if tok.Type == token.EOF {
			continue
		}
		if got := tok.Lexeme; got == "" {
			t.Errorf("token %v has empty lexeme", tok)
			continue
		}
		idx := strings.Index(source[pos:], tok.Lexeme)
		if idx < 0 || strings.TrimSpace(source[pos:pos+idx]) != "" {
			t.Errorf("token %v: lexeme %q is not the next source substring after offset %d", tok, tok.Lexeme, pos)
			continue
		}
		pos += idx + len(tok.Lexeme)
	}
}
