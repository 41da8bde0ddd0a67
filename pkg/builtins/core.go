package builtins

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"minilang/pkg/interpreter"
)

func registerCoreBuiltins(it *interpreter.Interpreter) {
	// print(...) writes its arguments separated by spaces, then a newline.
	it.RegisterNative("print", interpreter.Variadic, func(it *interpreter.Interpreter, args []interpreter.Value) (interpreter.Value, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			s, err := it.ToString(a)
			if err != nil {
				return interpreter.Nil, err
			}
			parts[i] = s
		}
		_, err := fmt.Fprintln(it.Output(), strings.Join(parts, " "))
		return interpreter.Nil, err
	})

	it.RegisterNative("len", 1, func(_ *interpreter.Interpreter, args []interpreter.Value) (interpreter.Value, error) {
		v := args[0]
		switch v.Kind {
		case interpreter.KindString:
			return interpreter.IntValue(int64(len(v.Str))), nil
		case interpreter.KindArray:
			return interpreter.IntValue(int64(len(v.Arr.Elems))), nil
		case interpreter.KindDict:
			return interpreter.IntValue(int64(v.Dict.Len())), nil
		case interpreter.KindObject:
			return interpreter.IntValue(int64(len(v.Obj.Fields))), nil
		}
		return interpreter.Nil, errors.New("Value has no length.")
	})

	it.RegisterNative("type", 1, func(_ *interpreter.Interpreter, args []interpreter.Value) (interpreter.Value, error) {
		return interpreter.StringValue(args[0].TypeName()), nil
	})

	it.RegisterNative("str", 1, func(it *interpreter.Interpreter, args []interpreter.Value) (interpreter.Value, error) {
		s, err := it.ToString(args[0])
		if err != nil {
			return interpreter.Nil, err
		}
		return interpreter.StringValue(s), nil
	})

	// input([prompt]) reads one line without its trailing newline.
	it.RegisterNative("input", interpreter.Variadic, func(it *interpreter.Interpreter, args []interpreter.Value) (interpreter.Value, error) {
		if len(args) > 1 {
			return interpreter.Nil, errors.New("input() takes 0 or 1 argument.")
		}
		if len(args) == 1 {
			prompt, err := it.ToString(args[0])
			if err != nil {
				return interpreter.Nil, err
			}
			if _, err := fmt.Fprint(it.Output(), prompt); err != nil {
				return interpreter.Nil, fmt.Errorf("input() failed: %w", err)
			}
		}

		line, err := it.Input().ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return interpreter.Nil, fmt.Errorf("input() failed: %w", err)
		}
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		return interpreter.StringValue(line), nil
	})

	// clock() is the number of milliseconds since the interpreter started.
	it.RegisterNative("clock", 0, func(it *interpreter.Interpreter, _ []interpreter.Value) (interpreter.Value, error) {
		return interpreter.IntValue(time.Since(it.Started()).Milliseconds()), nil
	})

	it.RegisterNative("assert", interpreter.Variadic, func(it *interpreter.Interpreter, args []interpreter.Value) (interpreter.Value, error) {
		if err := argCount("assert", args, 1, 2); err != nil {
			return interpreter.Nil, err
		}
		if args[0].Truthy() {
			return interpreter.Nil, nil
		}

		msg := "Assertion failed."
		if len(args) == 2 {
			s, err := it.ToString(args[1])
			if err != nil {
				return interpreter.Nil, err
			}
			msg += " " + s
		}
		return interpreter.Nil, errors.New(msg)
	})
}
