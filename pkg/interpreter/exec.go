package interpreter

import (
	"errors"

	"minilang/pkg/ast"
)

type signalKind int

const (
	sigNone signalKind = iota
	sigReturn
	sigBreak
	sigContinue
	sigThrow
)

// signal is how a statement tells its enclosing statements to stop early.
// A throw that leaves a function body becomes a *ThrowError.
type signal struct {
	kind signalKind
	val  Value
	line int
}

var normal = signal{}

func (it *Interpreter) execStmts(stmts []ast.Stmt, env *Environment) (signal, error) {
	for _, stmt := range stmts {
		sig, err := it.exec(stmt, env)
		if err != nil || sig.kind != sigNone {
			return sig, err
		}
	}
	return normal, nil
}

func (it *Interpreter) exec(stmt ast.Stmt, env *Environment) (signal, error) {
	switch n := stmt.(type) {
	case nil:
		return normal, nil

	case *ast.ExprStmt:
		_, err := it.eval(n.X, env)
		return normal, err

	case *ast.VarDecl:
		v := DefaultValue(n.Type)
		if n.Init != nil {
			var err error
			if v, err = it.eval(n.Init, env); err != nil {
				return normal, err
			}
		}
		if err := env.Define(n.Name, v, n.Type); err != nil {
			return normal, it.errorf(n.Line(), "%s", err.Error())
		}
		return normal, nil

	case *ast.Block:
		return it.execStmts(n.Stmts, NewEnvironment(env))

	case *ast.If:
		cond, err := it.eval(n.Cond, env)
		if err != nil {
			return normal, err
		}
		if cond.Truthy() {
			return it.exec(n.Then, env)
		}
		return it.exec(n.Else, env)

	case *ast.While:
		return it.execWhile(n, env)

	case *ast.For:
		return it.execFor(n, env)

	case *ast.ForEach:
		return it.execForEach(n, env)

	case *ast.Func:
		fn := &Function{Decl: n, Closure: env}
		_ = env.Define(n.Name, CallableValue(fn), ast.TypeNone)
		return normal, nil

	case *ast.Class:
		return normal, it.execClass(n, env)

	case *ast.Return:
		v := Nil
		if n.Value != nil {
			var err error
			if v, err = it.eval(n.Value, env); err != nil {
				return normal, err
			}
		}
		return signal{kind: sigReturn, val: v, line: n.Line()}, nil

	case *ast.Break:
		return signal{kind: sigBreak, line: n.Line()}, nil

	case *ast.Continue:
		return signal{kind: sigContinue, line: n.Line()}, nil

	case *ast.Throw:
		v, err := it.eval(n.Value, env)
		if err != nil {
			return normal, err
		}
		return signal{kind: sigThrow, val: v, line: n.Line()}, nil

	case *ast.Try:
		return it.execTry(n, env)
	}

	return normal, it.errorf(stmt.Line(), "Unknown statement type.")
}

// loopBody runs one iteration. It reports whether the loop should stop and
// the signal to hand upward when it does.
func (it *Interpreter) loopBody(body ast.Stmt, env *Environment) (bool, signal, error) {
	sig, err := it.exec(body, env)
	if err != nil {
		return true, normal, err
	}
	switch sig.kind {
	case sigBreak:
		return true, normal, nil
	case sigReturn, sigThrow:
		return true, sig, nil
	}
	return false, normal, nil
}

func (it *Interpreter) execWhile(n *ast.While, env *Environment) (signal, error) {
	for {
		cond, err := it.eval(n.Cond, env)
		if err != nil {
			return normal, err
		}
		if !cond.Truthy() {
			return normal, nil
		}
		if stop, sig, err := it.loopBody(n.Body, env); stop {
			return sig, err
		}
	}
}

// execFor keeps the loop variables in one frame shared by every iteration;
// the body gets a fresh frame each time round.
func (it *Interpreter) execFor(n *ast.For, env *Environment) (signal, error) {
	loopEnv := NewEnvironment(env)
	if _, err := it.exec(n.Init, loopEnv); err != nil {
		return normal, err
	}

	for {
		if n.Cond != nil {
			cond, err := it.eval(n.Cond, loopEnv)
			if err != nil {
				return normal, err
			}
			if !cond.Truthy() {
				return normal, nil
			}
		}

		if stop, sig, err := it.loopBody(n.Body, NewEnvironment(loopEnv)); stop {
			return sig, err
		}

		if n.Incr != nil {
			if _, err := it.eval(n.Incr, loopEnv); err != nil {
				return normal, err
			}
		}
	}
}

func (it *Interpreter) execForEach(n *ast.ForEach, env *Environment) (signal, error) {
	iterable, err := it.eval(n.Iterable, env)
	if err != nil {
		return normal, err
	}

	var items []Value
	switch iterable.Kind {
	case KindArray:
		items = append([]Value(nil), iterable.Arr.Elems...)
	case KindString:
		items = make([]Value, len(iterable.Str))
		for i := 0; i < len(iterable.Str); i++ {
			items[i] = StringValue(iterable.Str[i : i+1])
		}
	case KindDict:
		for _, k := range iterable.Dict.Keys() {
			items = append(items, StringValue(k))
		}
	default:
		return normal, it.errorf(n.Line(), "Value is not iterable. Can only iterate over arrays, strings and dicts.")
	}

	for _, item := range items {
		iterEnv := NewEnvironment(env)
		if err := iterEnv.Define(n.Var, item, n.Type); err != nil {
			return normal, it.errorf(n.Line(), "%s", err.Error())
		}
		if stop, sig, err := it.loopBody(n.Body, iterEnv); stop {
			return sig, err
		}
	}
	return normal, nil
}

func (it *Interpreter) execClass(n *ast.Class, env *Environment) error {
	var superclass *Class
	if n.Superclass != nil {
		v, err := it.eval(n.Superclass, env)
		if err != nil {
			return err
		}
		c, ok := v.Fn.(*Class)
		if v.Kind != KindCallable || !ok {
			return it.errorf(n.Superclass.Line(), "Superclass must be a class.")
		}
		superclass = c
	}

	_ = env.Define(n.Name, Nil, ast.TypeNone)

	// super is always bound here so a nested class never sees an outer one
	classEnv := NewEnvironment(env)
	superValue := Nil
	if superclass != nil {
		superValue = CallableValue(superclass)
	}
	_ = classEnv.Define("super", superValue, ast.TypeNone)

	class := NewClass(n.Name, superclass)
	for _, m := range n.Methods {
		fn := &Function{Decl: m, Closure: classEnv, IsInit: m.Name == "init"}
		class.Prototype.Set(m.Name, CallableValue(fn))
		if fn.IsInit {
			class.Init = fn
		}
	}

	_, _ = env.Assign(n.Name, CallableValue(class))
	it.logger.Debug("defined class", "name", n.Name, "methods", len(n.Methods), "line", n.Line())
	return nil
}

// execTry runs the body and hands a thrown value, or the message of a
// runtime error, to the handler.
func (it *Interpreter) execTry(n *ast.Try, env *Environment) (signal, error) {
	depth := it.frames.Size()

	sig, err := it.execStmts(n.Body.Stmts, NewEnvironment(env))

	var caught Value
	switch {
	case err != nil:
		var te *ThrowError
		var re *RuntimeError
		switch {
		case errors.As(err, &te):
			caught = te.Value
		case errors.As(err, &re):
			caught = StringValue(re.Msg)
		default:
			return normal, err
		}
		it.frames.Truncate(depth)
		it.logger.Debug("caught error", "line", n.Line(), "error", err)
	case sig.kind == sigThrow:
		caught = sig.val
	default:
		return sig, nil
	}

	handlerEnv := NewEnvironment(env)
	_ = handlerEnv.Define(n.Name, caught, ast.TypeNone)
	return it.execStmts(n.Handler.Stmts, handlerEnv)
}
