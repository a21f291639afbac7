// Package evaluator implements the Lox tree-walking interpreter.
package evaluator

import (
	"fmt"
	"strconv"

	"github.com/keithagy/lox/pkg/ast"
	"github.com/keithagy/lox/pkg/diagnostics"
	"github.com/keithagy/lox/pkg/token"
)

// Lox values are represented directly as Go values: nil, bool, float64,
// and string cover the primitives; Callable and *Instance cover the
// reference types. There is no wrapper type, so equality and type
// assertions fall out of Go's own any/interface machinery the way they
// do in the original tree-walking implementation's use of Object.

// Callable is implemented by anything invocable with call syntax:
// user-defined functions, classes (as constructors), and natives.
type Callable interface {
	Arity() int
	Call(in *Interpreter, args []any) (any, error)
	String() string
}

// Function is a user-defined function or method, closing over the
// environment active at the point of its declaration.
type Function struct {
	Name          string
	Params        []token.Token
	Body          []ast.Stmt
	Closure       *Env
	IsInitializer bool
}

func (f *Function) Arity() int { return len(f.Params) }

func (f *Function) String() string {
	if f.Name == "" {
		return "<fn>"
	}
	return fmt.Sprintf("<fn %s>", f.Name)
}

// Bind returns a copy of f whose closure has a fresh "this" binding for
// instance, used when a method is looked up on an instance.
func (f *Function) Bind(instance *Instance) *Function {
	env := NewEnv(f.Closure)
	env.Define("this", instance)
	return &Function{
		Name:          f.Name,
		Params:        f.Params,
		Body:          f.Body,
		Closure:       env,
		IsInitializer: f.IsInitializer,
	}
}

// NativeFunction wraps a host-provided function, such as clock(), as a
// Callable.
type NativeFunction struct {
	NameStr string
	ArityN  int
	Fn      func(in *Interpreter, args []any) (any, error)
}

func (n *NativeFunction) Arity() int { return n.ArityN }

func (n *NativeFunction) Call(in *Interpreter, args []any) (any, error) {
	return n.Fn(in, args)
}

func (n *NativeFunction) String() string {
	return fmt.Sprintf("<native fn %s>", n.NameStr)
}

// Class is a Lox class: a constructor Callable carrying its own
// methods, its static methods (looked up directly on the class value),
// and an optional superclass.
type Class struct {
	Name          string
	Superclass    *Class
	Methods       map[string]*Function
	StaticMethods map[string]*Function
}

func (c *Class) String() string { return c.Name }

// Arity is the arity of the class's init method, or 0 if it has none.
func (c *Class) Arity() int {
	if init, ok := c.findMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

// Call constructs a new Instance and, if the class (or one of its
// ancestors) defines init, invokes it and discards its return value.
func (c *Class) Call(in *Interpreter, args []any) (any, error) {
	instance := &Instance{Class: c, Fields: make(map[string]any)}
	if init, ok := c.findMethod("init"); ok {
		if _, err := init.Bind(instance).Call(in, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

func (c *Class) findMethod(name string) (*Function, bool) {
	if m, ok := c.Methods[name]; ok {
		return m, true
	}
	if c.Superclass != nil {
		return c.Superclass.findMethod(name)
	}
	return nil, false
}

// findStaticMethod looks up a static method through the superclass
// chain, the same way findMethod does for instance methods.
func (c *Class) findStaticMethod(name string) (*Function, bool) {
	if m, ok := c.StaticMethods[name]; ok {
		return m, true
	}
	if c.Superclass != nil {
		return c.Superclass.findStaticMethod(name)
	}
	return nil, false
}

// Instance is a runtime object created by calling a Class.
type Instance struct {
	Class  *Class
	Fields map[string]any
}

func (i *Instance) String() string { return i.Class.Name + " instance" }

// Get resolves a property access: fields shadow methods.
func (i *Instance) Get(name token.Token) (any, error) {
	if v, ok := i.Fields[name.Lexeme]; ok {
		return v, nil
	}
	if m, ok := i.Class.findMethod(name.Lexeme); ok {
		return m.Bind(i), nil
	}
	return nil, &diagnostics.RuntimeError{Line: name.Line, Message: "Undefined property '" + name.Lexeme + "'."}
}

func (i *Instance) Set(name token.Token, value any) {
	i.Fields[name.Lexeme] = value
}

// isTruthy implements Lox truthiness: nil and false are falsy,
// everything else — including 0 and "" — is truthy.
func isTruthy(v any) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// isEqual implements Lox equality: nil equals only nil, numbers and
// strings compare structurally (NaN follows IEEE-754, so NaN != NaN),
// and callables/instances compare by identity.
func isEqual(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a == b
}

// stringify renders a Lox value for print.
func stringify(v any) string {
	if v == nil {
		return "nil"
	}
	switch val := v.(type) {
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case string:
		return val
	case Callable:
		return val.String()
	case *Instance:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}
