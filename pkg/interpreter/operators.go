package interpreter

import (
	"errors"
	"fmt"
	"math"

	"minilang/pkg/lexer"
)

var (
	errDivisionByZero = errors.New("Division by zero.")
	errModuloByZero   = errors.New("Modulo by zero.")
)

func unaryOp(op lexer.TokenType, v Value) (Value, error) {
	if op == lexer.NOT {
		return BoolValue(!v.Truthy()), nil
	}

	switch v.Kind {
	case KindInt:
		if op == lexer.MINUS {
			return IntValue(-v.I64), nil
		}
		return Nil, errors.New("Invalid unary operator for integer.")
	case KindFloat:
		if op == lexer.MINUS {
			return FloatValue(-v.F64), nil
		}
		return Nil, errors.New("Invalid unary operator for double.")
	}
	return Nil, errors.New("Invalid unary operator for this type.")
}

// binaryOp applies a non-short-circuit binary operator.
// int / int yields a float; any float operand promotes the other.
func binaryOp(op lexer.TokenType, l, r Value) (Value, error) {
	switch op {
	case lexer.EQ:
		return BoolValue(Equal(l, r)), nil
	case lexer.NE:
		return BoolValue(!Equal(l, r)), nil
	}

	switch {
	case l.Kind == KindInt && r.Kind == KindInt:
		return intOp(op, l.I64, r.I64)

	case l.IsNumeric() && r.IsNumeric():
		a, _ := l.AsFloat64()
		b, _ := r.AsFloat64()
		return floatOp(op, a, b)

	case l.Kind == KindString && r.Kind == KindString:
		return stringOp(op, l.Str, r.Str)

	case l.Kind == KindArray && r.Kind == KindArray:
		if op != lexer.PLUS {
			return Nil, fmt.Errorf("Operator '%s' not applicable to arrays.", op)
		}
		elems := make([]Value, 0, len(l.Arr.Elems)+len(r.Arr.Elems))
		elems = append(elems, l.Arr.Elems...)
		elems = append(elems, r.Arr.Elems...)
		return ArrayValue(elems), nil
	}

	return Nil, fmt.Errorf("Invalid operands for binary operator '%s'.", op)
}

func intOp(op lexer.TokenType, a, b int64) (Value, error) {
	switch op {
	case lexer.PLUS:
		return IntValue(a + b), nil
	case lexer.MINUS:
		return IntValue(a - b), nil
	case lexer.MULT:
		return IntValue(a * b), nil
	case lexer.DIV:
		if b == 0 {
			return Nil, errDivisionByZero
		}
		return FloatValue(float64(a) / float64(b)), nil
	case lexer.MOD:
		if b == 0 {
			return Nil, errModuloByZero
		}
		return IntValue(a % b), nil
	case lexer.LT:
		return BoolValue(a < b), nil
	case lexer.LE:
		return BoolValue(a <= b), nil
	case lexer.GT:
		return BoolValue(a > b), nil
	case lexer.GE:
		return BoolValue(a >= b), nil
	}
	return Nil, errors.New("Operator not applicable to integers.")
}

func floatOp(op lexer.TokenType, a, b float64) (Value, error) {
	switch op {
	case lexer.PLUS:
		return FloatValue(a + b), nil
	case lexer.MINUS:
		return FloatValue(a - b), nil
	case lexer.MULT:
		return FloatValue(a * b), nil
	case lexer.DIV:
		if b == 0 {
			return Nil, errDivisionByZero
		}
		return FloatValue(a / b), nil
	case lexer.MOD:
		if b == 0 {
			return Nil, errModuloByZero
		}
		return FloatValue(math.Mod(a, b)), nil
	case lexer.LT:
		return BoolValue(a < b), nil
	case lexer.LE:
		return BoolValue(a <= b), nil
	case lexer.GT:
		return BoolValue(a > b), nil
	case lexer.GE:
		return BoolValue(a >= b), nil
	}
	return Nil, errors.New("Operator not applicable to float types.")
}

func stringOp(op lexer.TokenType, a, b string) (Value, error) {
	switch op {
	case lexer.PLUS:
		return StringValue(a + b), nil
	case lexer.LT:
		return BoolValue(a < b), nil
	case lexer.LE:
		return BoolValue(a <= b), nil
	case lexer.GT:
		return BoolValue(a > b), nil
	case lexer.GE:
		return BoolValue(a >= b), nil
	}
	return Nil, errors.New("Operator not applicable to strings.")
}

type visitPair struct{ a, b any }

// Equal compares values structurally. Numbers compare across int and
// float; callables compare by identity. Cyclic structures are handled by
// assuming a pair already under comparison is equal.
func Equal(a, b Value) bool {
	return equal(a, b, make(map[visitPair]bool))
}

func equal(a, b Value, visiting map[visitPair]bool) bool {
	if a.IsNumeric() && b.IsNumeric() {
		if a.Kind == KindInt && b.Kind == KindInt {
			return a.I64 == b.I64
		}
		x, _ := a.AsFloat64()
		y, _ := b.AsFloat64()
		return x == y
	}
	if a.Kind != b.Kind {
		return false
	}

	switch a.Kind {
	case KindNil:
		return true
	case KindBool:
		return a.Bool == b.Bool
	case KindString:
		return a.Str == b.Str
	case KindCallable:
		if x, ok := a.Fn.(*BoundMethod); ok {
			y, ok := b.Fn.(*BoundMethod)
			return ok && x.Method == y.Method && x.Receiver == y.Receiver
		}
		return a.Fn == b.Fn

	case KindArray:
		if a.Arr == b.Arr {
			return true
		}
		key := visitPair{a.Arr, b.Arr}
		if visiting[key] {
			return true
		}
		if len(a.Arr.Elems) != len(b.Arr.Elems) {
			return false
		}
		visiting[key] = true
		for i := range a.Arr.Elems {
			if !equal(a.Arr.Elems[i], b.Arr.Elems[i], visiting) {
				return false
			}
		}
		return true

	case KindDict:
		if a.Dict == b.Dict {
			return true
		}
		key := visitPair{a.Dict, b.Dict}
		if visiting[key] {
			return true
		}
		if a.Dict.Len() != b.Dict.Len() {
			return false
		}
		visiting[key] = true
		for k, av := range a.Dict.entries {
			bv, ok := b.Dict.entries[k]
			if !ok || !equal(av, bv, visiting) {
				return false
			}
		}
		return true

	case KindObject:
		return equalObjects(a.Obj, b.Obj, visiting)
	}
	return false
}

func equalObjects(a, b *Object, visiting map[visitPair]bool) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.Class != b.Class || a.IsPrototype() || b.IsPrototype() {
		return false
	}
	key := visitPair{a, b}
	if visiting[key] {
		return true
	}
	if len(a.Fields) != len(b.Fields) {
		return false
	}
	visiting[key] = true
	for k, av := range a.Fields {
		bv, ok := b.Fields[k]
		if !ok || !equal(av, bv, visiting) {
			return false
		}
	}
	return equalObjects(a.Parent, b.Parent, visiting)
}
