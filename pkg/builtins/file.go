package builtins

import (
	"errors"
	"fmt"
	"os"

	"minilang/pkg/interpreter"
)

func registerFileBuiltins(it *interpreter.Interpreter) {
	it.RegisterNative("read_file", 1, func(_ *interpreter.Interpreter, args []interpreter.Value) (interpreter.Value, error) {
		if args[0].Kind != interpreter.KindString {
			return interpreter.Nil, errors.New("Argument to read_file must be a string path.")
		}
		data, err := os.ReadFile(args[0].Str)
		if err != nil {
			return interpreter.Nil, fmt.Errorf("Could not open file: %s", args[0].Str)
		}
		return interpreter.StringValue(string(data)), nil
	})

	it.RegisterNative("write_file", 2, func(_ *interpreter.Interpreter, args []interpreter.Value) (interpreter.Value, error) {
		if args[0].Kind != interpreter.KindString {
			return interpreter.Nil, errors.New("Path for write_file must be a string.")
		}
		if args[1].Kind != interpreter.KindString {
			return interpreter.Nil, errors.New("Content for write_file must be a string.")
		}
		if err := os.WriteFile(args[0].Str, []byte(args[1].Str), 0o644); err != nil {
			return interpreter.Nil, fmt.Errorf("Could not open file for writing: %s", args[0].Str)
		}
		return interpreter.Nil, nil
	})
}
