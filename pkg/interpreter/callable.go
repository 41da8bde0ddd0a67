package interpreter

import (
	"fmt"

	"minilang/pkg/ast"
)

// Variadic is the arity of a callable that accepts any number of arguments.
const Variadic = -1

// Callable is implemented by the four kinds of callable values: user
// functions, bound methods, natives and classes.
type Callable interface {
	Arity() int
	Call(it *Interpreter, args []Value) (Value, error)
	Name() string
	String() string

	callable()
}

// NativeFunc implements a built-in. Plain errors it returns are reported
// as runtime errors on the line of the call.
type NativeFunc func(it *Interpreter, args []Value) (Value, error)

// Function is a user-defined function or method together with the
// environment it closes over.
type Function struct {
	Decl    *ast.Func
	Closure *Environment
	IsInit  bool
}

func (f *Function) Arity() int   { return len(f.Decl.Params) }
func (f *Function) Name() string { return f.Decl.Name }
func (f *Function) String() string {
	return fmt.Sprintf("<function %s>", f.Decl.Name)
}

func (f *Function) Call(it *Interpreter, args []Value) (Value, error) {
	return it.callFunction(f, f.Closure, nil, args)
}

// Bind returns the method with this fixed to receiver.
func (f *Function) Bind(receiver *Object) *BoundMethod {
	env := NewEnvironment(f.Closure)
	env.values["this"] = &binding{value: ObjectValue(receiver)}
	return &BoundMethod{Method: f, Receiver: receiver, closure: env}
}

// BoundMethod is a Function whose this is fixed to Receiver.
type BoundMethod struct {
	Method   *Function
	Receiver *Object

	closure *Environment
}

func (b *BoundMethod) Arity() int   { return b.Method.Arity() }
func (b *BoundMethod) Name() string { return b.Method.Name() }
func (b *BoundMethod) String() string {
	return b.Method.String()
}

func (b *BoundMethod) Call(it *Interpreter, args []Value) (Value, error) {
	return it.callFunction(b.Method, b.closure, b.Receiver, args)
}

type Native struct {
	name  string
	arity int
	fn    NativeFunc
}

func NewNative(name string, arity int, fn NativeFunc) *Native {
	return &Native{name: name, arity: arity, fn: fn}
}

func (n *Native) Arity() int   { return n.arity }
func (n *Native) Name() string { return n.name }
func (n *Native) String() string {
	return fmt.Sprintf("<native function: %s>", n.name)
}

func (n *Native) Call(it *Interpreter, args []Value) (Value, error) {
	return n.fn(it, args)
}

// Class is a callable constructor. Its methods live on Prototype, which
// every instance uses as its parent.
type Class struct {
	ClassName  string
	Superclass *Class
	Prototype  *Object
	Init       *Function // own or inherited initializer, nil when none
}

func NewClass(name string, superclass *Class) *Class {
	var parent *Object
	if superclass != nil {
		parent = superclass.Prototype
	}

	c := &Class{ClassName: name, Superclass: superclass, Prototype: NewObject(parent)}
	c.Prototype.prototypeOf = c
	if superclass != nil {
		c.Init = superclass.Init
	}
	return c
}

func (c *Class) Arity() int {
	if c.Init == nil {
		return 0
	}
	return c.Init.Arity()
}

func (c *Class) Name() string { return c.ClassName }
func (c *Class) String() string {
	return fmt.Sprintf("<class %s>", c.ClassName)
}

// FindMethod resolves a method through the prototype chain.
func (c *Class) FindMethod(name string) (*Function, bool) {
	v, ok := c.Prototype.Get(name)
	if !ok || v.Kind != KindCallable {
		return nil, false
	}
	fn, ok := v.Fn.(*Function)
	return fn, ok
}

// Call constructs an instance and runs the initializer on it.
func (c *Class) Call(it *Interpreter, args []Value) (Value, error) {
	instance := NewObject(c.Prototype)
	instance.Class = c
	if c.Init != nil {
		if _, err := c.Init.Bind(instance).Call(it, args); err != nil {
			return Nil, err
		}
	}
	return ObjectValue(instance), nil
}

func (*Function) callable()    {}
func (*BoundMethod) callable() {}
func (*Native) callable()      {}
func (*Class) callable()       {}
