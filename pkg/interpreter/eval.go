package interpreter

import (
	"minilang/pkg/ast"
	"minilang/pkg/lexer"
)

func (it *Interpreter) eval(expr ast.Expr, env *Environment) (Value, error) {
	switch n := expr.(type) {
	case *ast.IntLit:
		return IntValue(n.Value), nil
	case *ast.FloatLit:
		return FloatValue(n.Value), nil
	case *ast.StringLit:
		return StringValue(n.Value), nil
	case *ast.BoolLit:
		return BoolValue(n.Value), nil
	case *ast.NilLit:
		return Nil, nil

	case *ast.Variable:
		if v, ok := env.Get(n.Name); ok {
			return v, nil
		}
		return Nil, it.errorf(n.Line(), "Undefined variable: %s", n.Name)

	case *ast.This:
		if v, ok := env.Get("this"); ok {
			return v, nil
		}
		return Nil, it.errorf(n.Line(), "Cannot use 'this' outside of a class method.")

	case *ast.Super:
		return it.evalSuper(n, env)

	case *ast.Unary:
		right, err := it.eval(n.Right, env)
		if err != nil {
			return Nil, err
		}
		v, err := unaryOp(n.Op, right)
		if err != nil {
			return Nil, it.errorf(n.Line(), "%s", err.Error())
		}
		return v, nil

	case *ast.Binary:
		left, err := it.eval(n.Left, env)
		if err != nil {
			return Nil, err
		}
		right, err := it.eval(n.Right, env)
		if err != nil {
			return Nil, err
		}
		v, err := binaryOp(n.Op, left, right)
		if err != nil {
			return Nil, it.errorf(n.Line(), "%s", err.Error())
		}
		return v, nil

	case *ast.Logical:
		left, err := it.eval(n.Left, env)
		if err != nil {
			return Nil, err
		}
		if n.Op == lexer.OR && left.Truthy() {
			return BoolValue(true), nil
		}
		if n.Op == lexer.AND && !left.Truthy() {
			return BoolValue(false), nil
		}
		right, err := it.eval(n.Right, env)
		if err != nil {
			return Nil, err
		}
		return BoolValue(right.Truthy()), nil

	case *ast.Call:
		return it.evalCall(n, env)

	case *ast.ArrayLit:
		elems := make([]Value, len(n.Elems))
		for i, e := range n.Elems {
			v, err := it.eval(e, env)
			if err != nil {
				return Nil, err
			}
			elems[i] = v
		}
		return ArrayValue(elems), nil

	case *ast.DictLit:
		d := NewDict()
		for i, k := range n.Keys {
			v, err := it.eval(n.Values[i], env)
			if err != nil {
				return Nil, err
			}
			d.Set(k, v)
		}
		return DictValue(d), nil

	case *ast.Index:
		target, err := it.eval(n.Target, env)
		if err != nil {
			return Nil, err
		}
		index, err := it.eval(n.Index, env)
		if err != nil {
			return Nil, err
		}
		return it.index(target, index, n.Line())

	case *ast.Member:
		target, err := it.eval(n.Object, env)
		if err != nil {
			return Nil, err
		}
		return it.member(target, n.Name, n.Line())

	case *ast.Assign:
		v, err := it.eval(n.Value, env)
		if err != nil {
			return Nil, err
		}
		if err := it.assign(n.Target, v, env); err != nil {
			return Nil, err
		}
		return v, nil
	}

	return Nil, it.errorf(expr.Line(), "Unknown expression type.")
}

func (it *Interpreter) evalCall(n *ast.Call, env *Environment) (Value, error) {
	callee, err := it.eval(n.Callee, env)
	if err != nil {
		return Nil, err
	}

	if callee.Kind != KindCallable || callee.Fn == nil {
		return Nil, it.errorf(n.Line(), "Can only call functions and other callables.")
	}

	args := make([]Value, len(n.Args))
	for i, a := range n.Args {
		if args[i], err = it.eval(a, env); err != nil {
			return Nil, err
		}
	}
	return it.invoke(callee.Fn, args, n.Line())
}

// evalSuper resolves a method on the superclass of the class whose body
// lexically encloses the expression, bound to the current this.
func (it *Interpreter) evalSuper(n *ast.Super, env *Environment) (Value, error) {
	sv, ok := env.Get("super")
	if !ok || sv.Kind != KindCallable {
		return Nil, it.errorf(n.Line(), "Cannot use 'super' in a class with no superclass.")
	}
	superclass, ok := sv.Fn.(*Class)
	if !ok {
		return Nil, it.errorf(n.Line(), "Cannot use 'super' in a class with no superclass.")
	}

	this, ok := env.Get("this")
	if !ok || this.Kind != KindObject {
		return Nil, it.errorf(n.Line(), "Cannot use 'this' outside of a class method.")
	}

	v, ok := superclass.Prototype.Get(n.Method)
	if !ok {
		return Nil, it.errorf(n.Line(), "Undefined property '%s' on superclass.", n.Method)
	}
	if v.Kind != KindCallable {
		return Nil, it.errorf(n.Line(), "Property '%s' on superclass is not a function.", n.Method)
	}
	return bindTo(v, this.Obj), nil
}

// bindTo fixes this for user functions found on an object; other values
// pass through unchanged.
func bindTo(v Value, obj *Object) Value {
	if fn, ok := v.Fn.(*Function); ok && v.Kind == KindCallable {
		return CallableValue(fn.Bind(obj))
	}
	return v
}

func (it *Interpreter) member(target Value, name string, line int) (Value, error) {
	switch target.Kind {
	case KindObject:
		v, ok := target.Obj.Get(name)
		if !ok {
			return Nil, it.errorf(line, "Undefined property '%s'.", name)
		}
		return bindTo(v, target.Obj), nil
	case KindDict:
		v, ok := target.Dict.Get(name)
		if !ok {
			return Nil, it.errorf(line, "Undefined property '%s'.", name)
		}
		return v, nil
	}
	return Nil, it.errorf(line, "Can only access properties on objects or dicts.")
}

func (it *Interpreter) index(target, index Value, line int) (Value, error) {
	switch target.Kind {
	case KindArray:
		if index.Kind != KindInt {
			return Nil, it.errorf(line, "Array index must be an integer.")
		}
		i := index.I64
		if i < 0 || i >= int64(len(target.Arr.Elems)) {
			return Nil, it.errorf(line, "Array index out of bounds")
		}
		return target.Arr.Elems[i], nil

	case KindString:
		if index.Kind != KindInt {
			return Nil, it.errorf(line, "String index must be an integer.")
		}
		i := index.I64
		if i < 0 || i >= int64(len(target.Str)) {
			return Nil, it.errorf(line, "String index out of bounds")
		}
		return StringValue(target.Str[i : i+1]), nil

	case KindDict:
		if index.Kind != KindString {
			return Nil, it.errorf(line, "Dict index must be a string.")
		}
		v, ok := target.Dict.Get(index.Str)
		if !ok {
			return Nil, it.errorf(line, "Undefined property '%s'.", index.Str)
		}
		return v, nil

	case KindObject:
		if index.Kind != KindString {
			return Nil, it.errorf(line, "Object index must be a string.")
		}
		return it.member(target, index.Str, line)
	}

	return Nil, it.errorf(line, "Index operation on a non-indexable value (must be array, string, dict, or object).")
}

// assign stores v into the place named by target.
func (it *Interpreter) assign(target ast.Expr, v Value, env *Environment) error {
	switch t := target.(type) {
	case *ast.Variable:
		found, err := env.Assign(t.Name, v)
		if err != nil {
			return it.errorf(t.Line(), "%s", err.Error())
		}
		if !found {
			return it.errorf(t.Line(), "Undefined variable: %s", t.Name)
		}
		return nil

	case *ast.Member:
		obj, err := it.eval(t.Object, env)
		if err != nil {
			return err
		}
		switch obj.Kind {
		case KindObject:
			obj.Obj.Set(t.Name, v)
		case KindDict:
			obj.Dict.Set(t.Name, v)
		default:
			return it.errorf(t.Line(), "Can only set properties on objects or dicts.")
		}
		return nil

	case *ast.Index:
		return it.assignIndex(t, v, env)
	}

	return it.errorf(target.Line(), "Invalid assignment target.")
}

func (it *Interpreter) assignIndex(t *ast.Index, v Value, env *Environment) error {
	container, err := it.eval(t.Target, env)
	if err != nil {
		return err
	}
	index, err := it.eval(t.Index, env)
	if err != nil {
		return err
	}

	switch container.Kind {
	case KindArray:
		if index.Kind != KindInt {
			return it.errorf(t.Line(), "Array index must be an integer.")
		}
		i := index.I64
		if i < 0 || i >= int64(len(container.Arr.Elems)) {
			return it.errorf(t.Line(), "Array index out of bounds for assignment.")
		}
		container.Arr.Elems[i] = v
		return nil

	case KindDict:
		if index.Kind != KindString {
			return it.errorf(t.Line(), "Dict index must be a string.")
		}
		container.Dict.Set(index.Str, v)
		return nil

	case KindObject:
		if index.Kind != KindString {
			return it.errorf(t.Line(), "Object index must be a string.")
		}
		container.Obj.Set(index.Str, v)
		return nil

	case KindString:
		// strings are immutable, so the edited copy is stored back into
		// whatever held the original
		if index.Kind != KindInt {
			return it.errorf(t.Line(), "String index must be an integer.")
		}
		s := container.Str
		i := index.I64
		if i < 0 || i >= int64(len(s)) {
			return it.errorf(t.Line(), "String index out of bounds")
		}
		if v.Kind != KindString || len(v.Str) != 1 {
			return it.errorf(t.Line(), "Can only assign a single-character string to a string index.")
		}
		return it.assign(t.Target, StringValue(s[:i]+v.Str+s[i+1:]), env)
	}

	return it.errorf(t.Line(), "This value type does not support indexed assignment.")
}
