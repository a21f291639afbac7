// Package evaluator implements the Lox tree-walking interpreter.
package evaluator

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/keithagy/lox/pkg/ast"
	"github.com/keithagy/lox/pkg/diagnostics"
	"github.com/keithagy/lox/pkg/resolver"
	"github.com/keithagy/lox/pkg/token"
)

// returnSignal carries a Lox `return` value up the Go call stack. It is
// recovered only at the boundary of a Function.Call, the same way the
// parser's parseError is recovered only at a declaration boundary.
type returnSignal struct {
	value any
}

// Interpreter walks a resolved AST, evaluating expressions and
// executing statements against a chain of Env scopes.
type Interpreter struct {
	globals *Env
	env     *Env
	locals  resolver.Locals
	stdout  io.Writer
}

// New creates an Interpreter with a fresh global scope and registers
// the native functions every Lox program gets for free.
func New() *Interpreter {
	globals := NewEnv(nil)
	in := &Interpreter{globals: globals, env: globals, stdout: os.Stdout}
	registerNatives(globals)
	return in
}

// SetOutput redirects Print statements, used by tests and embedders
// that want to capture program output instead of writing to stdout.
func (in *Interpreter) SetOutput(w io.Writer) {
	in.stdout = w
}

func registerNatives(globals *Env) {
	globals.Define("clock", &NativeFunction{
		NameStr: "clock",
		ArityN:  0,
		Fn: func(in *Interpreter, args []any) (any, error) {
			return float64(time.Now().UnixNano()) / 1e9, nil
		},
	})
}

// Interpret executes stmts against locals (the resolver's distance
// table) in the global scope, returning the first runtime error so the
// caller (REPL or file runner) can report it and decide on an exit
// code. locals is merged into the table kept from earlier calls, so
// functions declared by an earlier call still resolve their variables.
func (in *Interpreter) Interpret(stmts []ast.Stmt, locals resolver.Locals) error {
	if in.locals == nil {
		in.locals = make(resolver.Locals, len(locals))
	}
	for expr, distance := range locals {
		in.locals[expr] = distance
	}
	for _, s := range stmts {
		if err := in.execute(s); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) execute(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.Block:
		return in.executeBlock(s.Statements, NewEnv(in.env))

	case *ast.Class:
		return in.executeClass(s)

	case *ast.Expression:
		_, err := in.evaluate(s.Expression)
		return err

	case *ast.FunctionStmt:
		fn := &Function{Name: s.Name.Lexeme, Params: s.Params, Body: s.Body, Closure: in.env}
		in.env.Define(s.Name.Lexeme, fn)
		return nil

	case *ast.If:
		cond, err := in.evaluate(s.Condition)
		if err != nil {
			return err
		}
		if isTruthy(cond) {
			return in.execute(s.Then)
		}
		if s.Else != nil {
			return in.execute(s.Else)
		}
		return nil

	case *ast.Print:
		v, err := in.evaluate(s.Expression)
		if err != nil {
			return err
		}
		fmt.Fprintln(in.stdout, stringify(v))
		return nil

	case *ast.Return:
		var value any
		if s.Value != nil {
			v, err := in.evaluate(s.Value)
			if err != nil {
				return err
			}
			value = v
		}
		panic(returnSignal{value: value})

	case *ast.Var:
		var value any
		if s.Initializer != nil {
			v, err := in.evaluate(s.Initializer)
			if err != nil {
				return err
			}
			value = v
		}
		in.env.Define(s.Name.Lexeme, value)
		return nil

	case *ast.While:
		for {
			cond, err := in.evaluate(s.Condition)
			if err != nil {
				return err
			}
			if !isTruthy(cond) {
				return nil
			}
			if err := in.execute(s.Body); err != nil {
				return err
			}
		}

	default:
		panic(fmt.Sprintf("evaluator: unhandled statement type %T", s))
	}
}

// executeBlock runs stmts in env, always restoring the interpreter's
// previous environment on the way out — including when a panic
// (returnSignal, or any unexpected panic) unwinds through it.
func (in *Interpreter) executeBlock(stmts []ast.Stmt, env *Env) error {
	previous := in.env
	in.env = env
	defer func() { in.env = previous }()

	for _, s := range stmts {
		if err := in.execute(s); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) executeClass(s *ast.Class) error {
	var superclass *Class
	if s.Superclass != nil {
		v, err := in.evaluate(s.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*Class)
		if !ok {
			return &diagnostics.RuntimeError{Line: s.Superclass.Name.Line, Message: "Superclass must be a class."}
		}
		superclass = sc
	}

	in.env.Define(s.Name.Lexeme, nil)

	classEnv := in.env
	if superclass != nil {
		classEnv = NewEnv(in.env)
		classEnv.Define("super", superclass)
	}

	methods := make(map[string]*Function, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = &Function{
			Name:          m.Name.Lexeme,
			Params:        m.Params,
			Body:          m.Body,
			Closure:       classEnv,
			IsInitializer: m.Name.Lexeme == "init",
		}
	}

	staticMethods := make(map[string]*Function, len(s.StaticMethods))
	for _, m := range s.StaticMethods {
		staticMethods[m.Name.Lexeme] = &Function{Name: m.Name.Lexeme, Params: m.Params, Body: m.Body, Closure: classEnv}
	}

	class := &Class{Name: s.Name.Lexeme, Superclass: superclass, Methods: methods, StaticMethods: staticMethods}
	return in.env.Assign(s.Name, class)
}

func (in *Interpreter) evaluate(expr ast.Expr) (any, error) {
	switch e := expr.(type) {
	case *ast.Assign:
		v, err := in.evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		if distance, ok := in.locals[e]; ok {
			in.env.AssignAt(distance, e.Name, v)
		} else if err := in.globals.Assign(e.Name, v); err != nil {
			return nil, err
		}
		return v, nil

	case *ast.Binary:
		return in.evalBinary(e)

	case *ast.Call:
		return in.evalCall(e)

	case *ast.Function:
		return &Function{Params: e.Params, Body: e.Body, Closure: in.env}, nil

	case *ast.Get:
		obj, err := in.evaluate(e.Object)
		if err != nil {
			return nil, err
		}
		inst, ok := obj.(*Instance)
		if !ok {
			if class, ok := obj.(*Class); ok {
				if m, ok := class.findStaticMethod(e.Name.Lexeme); ok {
					return m, nil
				}
			}
			return nil, &diagnostics.RuntimeError{Line: e.Name.Line, Message: "Only instances have properties."}
		}
		return inst.Get(e.Name)

	case *ast.Grouping:
		return in.evaluate(e.Expression)

	case *ast.Literal:
		return e.Value, nil

	case *ast.Logical:
		left, err := in.evaluate(e.Left)
		if err != nil {
			return nil, err
		}
		if e.Operator.Type == token.Or {
			if isTruthy(left) {
				return left, nil
			}
		} else if !isTruthy(left) {
			return left, nil
		}
		return in.evaluate(e.Right)

	case *ast.Set:
		obj, err := in.evaluate(e.Object)
		if err != nil {
			return nil, err
		}
		inst, ok := obj.(*Instance)
		if !ok {
			return nil, &diagnostics.RuntimeError{Line: e.Name.Line, Message: "Only instances have fields."}
		}
		v, err := in.evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		inst.Set(e.Name, v)
		return v, nil

	case *ast.Super:
		return in.evalSuper(e)

	case *ast.This:
		return in.lookUpVariable(e.Keyword, e)

	case *ast.Unary:
		return in.evalUnary(e)

	case *ast.Variable:
		return in.lookUpVariable(e.Name, e)

	default:
		panic(fmt.Sprintf("evaluator: unhandled expression type %T", e))
	}
}

func (in *Interpreter) lookUpVariable(name token.Token, expr ast.Expr) (any, error) {
	if distance, ok := in.locals[expr]; ok {
		return in.env.GetAt(distance, name.Lexeme), nil
	}
	return in.globals.Get(name)
}

func (in *Interpreter) evalUnary(e *ast.Unary) (any, error) {
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Operator.Type {
	case token.Minus:
		n, ok := right.(float64)
		if !ok {
			return nil, &diagnostics.RuntimeError{Line: e.Operator.Line, Message: "Operand must be a number."}
		}
		return -n, nil
	case token.Bang:
		return !isTruthy(right), nil
	}
	panic("evaluator: unhandled unary operator")
}

func (in *Interpreter) evalBinary(e *ast.Binary) (any, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	numbers := func() (float64, float64, bool) {
		l, lok := left.(float64)
		r, rok := right.(float64)
		return l, r, lok && rok
	}

	switch e.Operator.Type {
	case token.Minus:
		l, r, ok := numbers()
		if !ok {
			return nil, &diagnostics.RuntimeError{Line: e.Operator.Line, Message: "Operands must be numbers."}
		}
		return l - r, nil
	case token.Slash:
		l, r, ok := numbers()
		if !ok {
			return nil, &diagnostics.RuntimeError{Line: e.Operator.Line, Message: "Operands must be numbers."}
		}
		if r == 0 {
			return nil, &diagnostics.RuntimeError{Line: e.Operator.Line, Message: "Cannot divide by zero."}
		}
		return l / r, nil
	case token.Star:
		l, r, ok := numbers()
		if !ok {
			return nil, &diagnostics.RuntimeError{Line: e.Operator.Line, Message: "Operands must be numbers."}
		}
		return l * r, nil
	case token.Plus:
		if l, r, ok := numbers(); ok {
			return l + r, nil
		}
		if l, ok := left.(string); ok {
			if r, ok := right.(string); ok {
				return l + r, nil
			}
		}
		return nil, &diagnostics.RuntimeError{Line: e.Operator.Line, Message: "Operands must be two numbers or two strings."}
	case token.Greater:
		l, r, ok := numbers()
		if !ok {
			return nil, &diagnostics.RuntimeError{Line: e.Operator.Line, Message: "Operands must be numbers."}
		}
		return l > r, nil
	case token.GreaterEqual:
		l, r, ok := numbers()
		if !ok {
			return nil, &diagnostics.RuntimeError{Line: e.Operator.Line, Message: "Operands must be numbers."}
		}
		return l >= r, nil
	case token.Less:
		l, r, ok := numbers()
		if !ok {
			return nil, &diagnostics.RuntimeError{Line: e.Operator.Line, Message: "Operands must be numbers."}
		}
		return l < r, nil
	case token.LessEqual:
		l, r, ok := numbers()
		if !ok {
			return nil, &diagnostics.RuntimeError{Line: e.Operator.Line, Message: "Operands must be numbers."}
		}
		return l <= r, nil
	case token.BangEqual:
		return !isEqual(left, right), nil
	case token.EqualEqual:
		return isEqual(left, right), nil
	}
	panic("evaluator: unhandled binary operator")
}

func (in *Interpreter) evalCall(e *ast.Call) (any, error) {
	callee, err := in.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]any, 0, len(e.Args))
	for _, a := range e.Args {
		v, err := in.evaluate(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, &diagnostics.RuntimeError{Line: e.Paren.Line, Message: "Can only call functions and classes."}
	}
	if len(args) != callable.Arity() {
		return nil, &diagnostics.RuntimeError{
			Line:    e.Paren.Line,
			Message: fmt.Sprintf("Expected %d arguments but got %d.", callable.Arity(), len(args)),
		}
	}
	return callable.Call(in, args)
}

func (in *Interpreter) evalSuper(e *ast.Super) (any, error) {
	distance := in.locals[e]
	superclass, _ := in.env.GetAt(distance, "super").(*Class)
	instance, _ := in.env.GetAt(distance-1, "this").(*Instance)

	method, ok := superclass.findMethod(e.Method.Lexeme)
	if !ok {
		return nil, &diagnostics.RuntimeError{Line: e.Method.Line, Message: "Undefined property '" + e.Method.Lexeme + "'."}
	}
	return method.Bind(instance), nil
}

// Call invokes f with args, trapping the returnSignal panic that a
// `return` statement raises to unwind out of the function body.
func (f *Function) Call(in *Interpreter, args []any) (result any, err error) {
	env := NewEnv(f.Closure)
	for i, p := range f.Params {
		env.Define(p.Lexeme, args[i])
	}

	defer func() {
		if r := recover(); r != nil {
			sig, ok := r.(returnSignal)
			if !ok {
				panic(r)
			}
			if f.IsInitializer {
				result = f.Closure.GetAt(0, "this")
				return
			}
			result = sig.value
		}
	}()

	if execErr := in.executeBlock(f.Body, env); execErr != nil {
		return nil, execErr
	}

	if f.IsInitializer {
		return f.Closure.GetAt(0, "this"), nil
	}
	return nil, nil
}
