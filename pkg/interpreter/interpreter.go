package interpreter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"minilang/pkg/ast"
	"minilang/pkg/stack"

	"github.com/charmbracelet/log"
)

// DefaultMaxDepth bounds nested calls before "Stack overflow." is raised.
const DefaultMaxDepth = 2000

// Interpreter walks a parsed program. Globals survive across calls to Run,
// so a REPL can feed it one program per line.
type Interpreter struct {
	globals *Environment
	frames  *stack.Stack[*Frame] // active calls, innermost on top

	out    io.Writer
	in     *bufio.Reader
	logger *log.Logger

	maxDepth  int
	peakDepth int
	started   time.Time
}

type Option func(*Interpreter)

// WithWriter sets the output writer for print statements
func WithWriter(w io.Writer) Option {
	return func(i *Interpreter) { i.out = w }
}

// WithReader sets the source read by input()
func WithReader(r io.Reader) Option {
	return func(i *Interpreter) { i.in = bufio.NewReader(r) }
}

func WithLogger(l *log.Logger) Option {
	return func(i *Interpreter) { i.logger = l }
}

// WithMaxDepth sets the call depth at which "Stack overflow." is raised
func WithMaxDepth(n int) Option {
	return func(i *Interpreter) {
		if n > 0 {
			i.maxDepth = n
		}
	}
}

// NewInterpreter creates a new Interpreter instance with an empty global
// environment. Built-ins are installed separately.
func NewInterpreter(opts ...Option) *Interpreter {
	it := &Interpreter{
		globals:  NewEnvironment(nil),
		frames:   stack.New[*Frame](),
		maxDepth: DefaultMaxDepth,
		started:  time.Now(),
	}

	for _, o := range opts {
		o(it)
	}

	if it.out == nil {
		it.out = os.Stdout
	}
	if it.in == nil {
		it.in = bufio.NewReader(os.Stdin)
	}
	if it.logger == nil {
		it.logger = log.Default()
	}

	return it
}

// Output returns the output writer used for print
func (it *Interpreter) Output() io.Writer {
	return it.out
}

// Input returns the reader used by input()
func (it *Interpreter) Input() *bufio.Reader {
	return it.in
}

// Started is when the interpreter was created; clock() measures from it.
func (it *Interpreter) Started() time.Time {
	return it.started
}

func (it *Interpreter) Globals() *Environment {
	return it.globals
}

// Define binds name in the global environment without a type.
func (it *Interpreter) Define(name string, v Value) {
	_ = it.globals.Define(name, v, ast.TypeNone)
}

// RegisterNative installs a built-in function under name.
func (it *Interpreter) RegisterNative(name string, arity int, fn NativeFunc) {
	it.Define(name, CallableValue(NewNative(name, arity, fn)))
	it.logger.Debug("registered native", "name", name, "arity", arity)
}

// Depth is the number of active calls.
func (it *Interpreter) Depth() int {
	return it.frames.Size()
}

// Run executes prog in the global environment. A thrown value that no try
// statement catches is returned as a *ThrowError.
func (it *Interpreter) Run(prog *ast.Program) error {
	it.frames.Truncate(0)

	for _, stmt := range prog.Stmts {
		sig, err := it.exec(stmt, it.globals)
		if err != nil {
			return err
		}

		switch sig.kind {
		case sigReturn:
			return it.errorf(sig.line, "Cannot return from top-level code.")
		case sigBreak:
			return it.errorf(sig.line, "Cannot 'break' outside of a loop.")
		case sigContinue:
			return it.errorf(sig.line, "Cannot 'continue' outside of a loop.")
		case sigThrow:
			return &ThrowError{Value: sig.val, Line: sig.line}
		}
	}

	return nil
}

// Eval evaluates a single expression in the global environment.
func (it *Interpreter) Eval(expr ast.Expr) (Value, error) {
	it.frames.Truncate(0)
	return it.eval(expr, it.globals)
}

// Call invokes fn with args. Natives such as map and filter use it to call
// back into user code.
func (it *Interpreter) Call(fn Callable, args []Value) (Value, error) {
	return it.invoke(fn, args, it.callLine())
}

// callLine is the call-site line of the innermost active call.
func (it *Interpreter) callLine() int {
	if f := it.frames.Peek(); f != nil {
		return f.Line
	}
	return 0
}

// invoke checks arity and depth, then calls fn inside a new frame.
func (it *Interpreter) invoke(fn Callable, args []Value, line int) (Value, error) {
	if c, ok := fn.(*Class); ok && c.Init == nil && len(args) > 0 {
		return Nil, it.errorf(line, "Class %s has no 'init' method and cannot be called with arguments.", c.ClassName)
	}
	if arity := fn.Arity(); arity != Variadic && arity != len(args) {
		return Nil, it.errorf(line, "Expected %d arguments but got %d.", arity, len(args))
	}

	depth := it.frames.Size()
	if depth >= it.maxDepth {
		err := it.errorf(line, "Stack overflow.")
		err.kind = ErrStackOverflow
		return Nil, err
	}
	if depth > it.peakDepth && depth%256 == 0 {
		it.peakDepth = depth
		it.logger.Debug("call depth", "depth", depth, "func", fn.Name())
	}

	it.frames.Push(&Frame{FuncName: fn.Name(), Line: line})
	v, err := fn.Call(it, args)
	if err != nil {
		err = it.wrapError(err, line)
	}
	it.frames.Pop()

	return v, err
}

// callFunction runs a user function body in a fresh frame enclosing
// closure. receiver is non-nil for bound methods.
func (it *Interpreter) callFunction(fn *Function, closure *Environment, receiver *Object, args []Value) (Value, error) {
	env := NewEnvironment(closure)
	for i, p := range fn.Decl.Params {
		if !CheckType(p.Type, args[i]) {
			return Nil, it.errorf(it.callLine(), "Argument type mismatch for parameter '%s'.", p.Name)
		}
		_ = env.Define(p.Name, args[i], p.Type)
	}

	sig, err := it.execStmts(fn.Decl.Body.Stmts, env)
	if err != nil {
		return Nil, err
	}

	switch sig.kind {
	case sigBreak:
		return Nil, it.errorf(sig.line, "Cannot 'break' from a function.")
	case sigContinue:
		return Nil, it.errorf(sig.line, "Cannot 'continue' from a function.")
	case sigThrow:
		return Nil, &ThrowError{Value: sig.val, Line: sig.line}
	}

	if fn.IsInit && receiver != nil {
		return ObjectValue(receiver), nil
	}
	if sig.kind == sigReturn {
		return sig.val, nil
	}
	return Nil, nil
}

// errorf builds a RuntimeError carrying a snapshot of the active frames.
func (it *Interpreter) errorf(line int, format string, args ...any) *RuntimeError {
	frames := it.frames.Array()
	trace := make([]Frame, len(frames))
	for i, f := range frames {
		trace[i] = *f
	}
	return &RuntimeError{Line: line, Msg: fmt.Sprintf(format, args...), Trace: trace}
}

// wrapError turns a plain error from a native into a RuntimeError on line.
func (it *Interpreter) wrapError(err error, line int) error {
	var re *RuntimeError
	var te *ThrowError
	if errors.As(err, &re) || errors.As(err, &te) {
		return err
	}
	return it.errorf(line, "%s", err.Error())
}
