package builtins

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"minilang/pkg/interpreter"
)

func registerConversionBuiltins(it *interpreter.Interpreter) {
	it.RegisterNative("int", 1, func(_ *interpreter.Interpreter, args []interpreter.Value) (interpreter.Value, error) {
		return toInt(args[0])
	})
	it.RegisterNative("float", 1, func(_ *interpreter.Interpreter, args []interpreter.Value) (interpreter.Value, error) {
		return toFloat(args[0])
	})
	it.RegisterNative("bool", 1, func(_ *interpreter.Interpreter, args []interpreter.Value) (interpreter.Value, error) {
		return interpreter.BoolValue(args[0].Truthy()), nil
	})
}

// toInt truncates floats toward zero and parses strings in base 10.
func toInt(v interpreter.Value) (interpreter.Value, error) {
	switch v.Kind {
	case interpreter.KindInt:
		return v, nil
	case interpreter.KindFloat:
		return interpreter.IntValue(int64(v.F64)), nil
	case interpreter.KindBool:
		if v.Bool {
			return interpreter.IntValue(1), nil
		}
		return interpreter.IntValue(0), nil
	case interpreter.KindString:
		n, err := strconv.ParseInt(strings.TrimSpace(v.Str), 10, 64)
		if err != nil {
			return interpreter.Nil, fmt.Errorf("Cannot convert string '%s' to int.", v.Str)
		}
		return interpreter.IntValue(n), nil
	}
	return interpreter.Nil, errors.New("Cannot convert type to int.")
}

func toFloat(v interpreter.Value) (interpreter.Value, error) {
	switch v.Kind {
	case interpreter.KindInt:
		return interpreter.FloatValue(float64(v.I64)), nil
	case interpreter.KindFloat:
		return v, nil
	case interpreter.KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return interpreter.Nil, fmt.Errorf("Cannot convert string '%s' to float.", v.Str)
		}
		return interpreter.FloatValue(f), nil
	}
	return interpreter.Nil, errors.New("Cannot convert type to float.")
}
