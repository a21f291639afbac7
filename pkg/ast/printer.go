package ast

import (
	"strconv"
	"strings"
)

// PrintExpr renders an expression as a fully-parenthesized Lisp-like string,
// e.g. `(+ 1 (* 2 3))`. Grouping nodes print as `(group expr)` and every
// other operator node prints as `(operator operands...)`. The rendering is
// for display only; it is not Lox source and no parser reads it back.
func PrintExpr(e Expr) string {
	switch expr := e.(type) {
	case *Literal:
		return printLiteral(expr.Value)
	case *Grouping:
		return parenthesize("group", expr.Expression)
	case *Unary:
		return parenthesize(expr.Operator.Lexeme, expr.Right)
	case *Binary:
		return parenthesize(expr.Operator.Lexeme, expr.Left, expr.Right)
	case *Logical:
		return parenthesize(expr.Operator.Lexeme, expr.Left, expr.Right)
	case *Variable:
		return expr.Name.Lexeme
	case *Assign:
		return parenthesizeNamed("=", expr.Name.Lexeme, expr.Value)
	case *Call:
		return parenthesizeCall("call", expr.Callee, expr.Args)
	case *Get:
		return parenthesizeNamed(".", PrintExpr(expr.Object), &Literal{Value: expr.Name.Lexeme})
	case *Set:
		return parenthesizeNamed("set", PrintExpr(expr.Object)+"."+expr.Name.Lexeme, expr.Value)
	case *This:
		return "this"
	case *Super:
		return "(super." + expr.Method.Lexeme + ")"
	case *Function:
		return "(fn " + PrintBlock(expr.Body) + ")"
	}
	return ""
}

// PrintStmt renders a single statement using the same Lisp-like convention
// as PrintExpr, extended to cover the statement grammar (the original printer
// only covered expressions).
func PrintStmt(s Stmt) string {
	switch stmt := s.(type) {
	case *Expression:
		return PrintExpr(stmt.Expression) + ";"
	case *Print:
		return "(print " + PrintExpr(stmt.Expression) + ")"
	case *Var:
		if stmt.Initializer == nil {
			return "(var " + stmt.Name.Lexeme + ")"
		}
		return "(var " + stmt.Name.Lexeme + " " + PrintExpr(stmt.Initializer) + ")"
	case *Block:
		return PrintBlock(stmt.Statements)
	case *If:
		if stmt.Else == nil {
			return "(if " + PrintExpr(stmt.Condition) + " " + PrintStmt(stmt.Then) + ")"
		}
		return "(if " + PrintExpr(stmt.Condition) + " " + PrintStmt(stmt.Then) + " " + PrintStmt(stmt.Else) + ")"
	case *While:
		return "(while " + PrintExpr(stmt.Condition) + " " + PrintStmt(stmt.Body) + ")"
	case *FunctionStmt:
		return "(fun " + stmt.Name.Lexeme + " " + PrintBlock(stmt.Body) + ")"
	case *Return:
		if stmt.Value == nil {
			return "(return)"
		}
		return "(return " + PrintExpr(stmt.Value) + ")"
	case *Class:
		var b strings.Builder
		b.WriteString("(class ")
		b.WriteString(stmt.Name.Lexeme)
		if stmt.Superclass != nil {
			b.WriteString(" < ")
			b.WriteString(stmt.Superclass.Name.Lexeme)
		}
		for _, m := range stmt.Methods {
			b.WriteString(" ")
			b.WriteString(PrintStmt(m))
		}
		b.WriteString(")")
		return b.String()
	}
	return ""
}

// PrintBlock renders a statement list as `(block stmt1 stmt2 ...)`.
func PrintBlock(stmts []Stmt) string {
	var b strings.Builder
	b.WriteString("(block")
	for _, s := range stmts {
		b.WriteString(" ")
		b.WriteString(PrintStmt(s))
	}
	b.WriteString(")")
	return b.String()
}

func printLiteral(v any) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case string:
		return strconv.Quote(val)
	}
	return "nil"
}

func parenthesize(name string, exprs ...Expr) string {
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(name)
	for _, e := range exprs {
		b.WriteString(" ")
		b.WriteString(PrintExpr(e))
	}
	b.WriteString(")")
	return b.String()
}

func parenthesizeNamed(name, lhs string, rhs Expr) string {
	return "(" + name + " " + lhs + " " + PrintExpr(rhs) + ")"
}

func parenthesizeCall(name string, callee Expr, args []Expr) string {
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(name)
	b.WriteString(" ")
	b.WriteString(PrintExpr(callee))
	for _, a := range args {
		b.WriteString(" ")
		b.WriteString(PrintExpr(a))
	}
	b.WriteString(")")
	return b.String()
}
