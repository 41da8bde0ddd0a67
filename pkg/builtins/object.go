package builtins

import (
	"errors"

	"minilang/pkg/interpreter"
)

func registerObjectBuiltins(it *interpreter.Interpreter) {
	// Object([parent]) creates a plain object, optionally inheriting from parent.
	it.RegisterNative("Object", interpreter.Variadic, func(_ *interpreter.Interpreter, args []interpreter.Value) (interpreter.Value, error) {
		switch {
		case len(args) > 1:
			return interpreter.Nil, errors.New("Object() constructor takes 0 or 1 argument.")
		case len(args) == 0:
			return interpreter.ObjectValue(interpreter.NewObject(nil)), nil
		case args[0].Kind != interpreter.KindObject:
			return interpreter.Nil, errors.New("Argument to Object() constructor must be another object to act as a prototype.")
		}
		return interpreter.ObjectValue(interpreter.NewObject(args[0].Obj)), nil
	})

	// dir(x) lists dict keys, or object properties including inherited ones.
	it.RegisterNative("dir", 1, func(_ *interpreter.Interpreter, args []interpreter.Value) (interpreter.Value, error) {
		switch args[0].Kind {
		case interpreter.KindDict:
			return stringArray(args[0].Dict.Keys()), nil
		case interpreter.KindObject:
			return stringArray(args[0].Obj.AllKeys()), nil
		}
		return interpreter.Nil, errors.New("Argument to dir() must be a dict, class instance, or object.")
	})
}
