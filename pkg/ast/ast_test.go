package ast_test

import (
	"testing"

	"github.com/keithagy/lox/pkg/ast"
	"github.com/keithagy/lox/pkg/token"
)

func TestExprNodesSatisfyInterface(t *testing.T) {
	nodes := []ast.Expr{
		&ast.Literal{Value: 42.0},
		&ast.Grouping{Expression: &ast.Literal{Value: nil}},
		&ast.Unary{Operator: token.Token{Type: token.Minus, Lexeme: "-"}, Right: &ast.Literal{Value: 1.0}},
		&ast.Binary{Left: &ast.Literal{Value: 1.0}, Operator: token.Token{Type: token.Plus, Lexeme: "+"}, Right: &ast.Literal{Value: 2.0}},
		&ast.Variable{Name: token.Token{Type: token.Identifier, Lexeme: "x"}},
		&ast.Assign{Name: token.Token{Type: token.Identifier, Lexeme: "x"}, Value: &ast.Literal{Value: 1.0}},
		&ast.This{Keyword: token.Token{Type: token.This, Lexeme: "this"}},
		&ast.Super{Keyword: token.Token{Type: token.Super, Lexeme: "super"}, Method: token.Token{Type: token.Identifier, Lexeme: "greet"}},
	}
	for i, n := range nodes {
		if n == nil {
			t.Errorf("node %d is nil", i)
		}
	}
}

func TestPrintBinary(t *testing.T) {
	expr := &ast.Binary{
		Left:     &ast.Unary{Operator: token.Token{Type: token.Minus, Lexeme: "-"}, Right: &ast.Literal{Value: 123.0}},
		Operator: token.Token{Type: token.Star, Lexeme: "*"},
		Right:    &ast.Grouping{Expression: &ast.Literal{Value: 45.67}},
	}
	got := ast.PrintExpr(expr)
	want := "(* (- 123) (group 45.67))"
	if got != want {
		t.Errorf("PrintExpr() = %q, want %q", got, want)
	}
}

func TestPrintLiteralNil(t *testing.T) {
	if got := ast.PrintExpr(&ast.Literal{Value: nil}); got != "nil" {
		t.Errorf("PrintExpr(nil literal) = %q, want %q", got, "nil")
	}
}

func TestPrintStmtVar(t *testing.T) {
	stmt := &ast.Var{
		Name:        token.Token{Type: token.Identifier, Lexeme: "a"},
		Initializer: &ast.Literal{Value: "global"},
	}
	got := ast.PrintStmt(stmt)
	want := `(var a "global")`
	if got != want {
		t.Errorf("PrintStmt() = %q, want %q", got, want)
	}
}
