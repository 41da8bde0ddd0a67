package builtins

import (
	"errors"
	"fmt"

	"minilang/pkg/interpreter"
)

func registerCollectionBuiltins(it *interpreter.Interpreter) {
	// append(arr, v) grows arr in place and returns it. append(s, t)
	// returns a new string; the original is left unchanged.
	it.RegisterNative("append", 2, func(_ *interpreter.Interpreter, args []interpreter.Value) (interpreter.Value, error) {
		container, elem := args[0], args[1]
		switch container.Kind {
		case interpreter.KindArray:
			container.Arr.Elems = append(container.Arr.Elems, elem)
			return container, nil
		case interpreter.KindString:
			if elem.Kind != interpreter.KindString {
				return interpreter.Nil, errors.New("Can only append a string to a string.")
			}
			return interpreter.StringValue(container.Str + elem.Str), nil
		}
		return interpreter.Nil, errors.New("First argument to append must be an array or a string.")
	})

	it.RegisterNative("pop", interpreter.Variadic, func(_ *interpreter.Interpreter, args []interpreter.Value) (interpreter.Value, error) {
		if err := argCount("pop", args, 1, 2); err != nil {
			return interpreter.Nil, err
		}
		if args[0].Kind != interpreter.KindArray {
			return interpreter.Nil, errors.New("First argument to pop must be an array.")
		}

		arr := args[0].Arr
		if len(arr.Elems) == 0 {
			return interpreter.Nil, errors.New("pop from empty array.")
		}

		idx := int64(len(arr.Elems) - 1)
		if len(args) == 2 {
			if args[1].Kind != interpreter.KindInt {
				return interpreter.Nil, errors.New("Index for pop must be an integer.")
			}
			idx = args[1].I64
			if idx < 0 || idx >= int64(len(arr.Elems)) {
				return interpreter.Nil, errors.New("pop index out of range.")
			}
		}

		v := arr.Elems[idx]
		arr.Elems = append(arr.Elems[:idx], arr.Elems[idx+1:]...)
		return v, nil
	})

	// slice(arr, start[, end]) copies arr[start:end] into a new array.
	it.RegisterNative("slice", interpreter.Variadic, func(_ *interpreter.Interpreter, args []interpreter.Value) (interpreter.Value, error) {
		if err := argCount("slice", args, 2, 3); err != nil {
			return interpreter.Nil, err
		}
		if args[0].Kind != interpreter.KindArray {
			return interpreter.Nil, errors.New("First argument to slice must be an array.")
		}
		if args[1].Kind != interpreter.KindInt {
			return interpreter.Nil, errors.New("Slice start index must be an integer.")
		}

		src := args[0].Arr.Elems
		start, end := args[1].I64, int64(len(src))
		if len(args) == 3 {
			if args[2].Kind != interpreter.KindInt {
				return interpreter.Nil, errors.New("Slice end index must be an integer.")
			}
			end = args[2].I64
		}
		if start < 0 || end > int64(len(src)) || start > end {
			return interpreter.Nil, errors.New("Slice indices are out of bounds.")
		}

		return interpreter.ArrayValue(append([]interpreter.Value(nil), src[start:end]...)), nil
	})

	it.RegisterNative("range", interpreter.Variadic, func(_ *interpreter.Interpreter, args []interpreter.Value) (interpreter.Value, error) {
		return rangeOf(args)
	})

	it.RegisterNative("dict", 0, func(_ *interpreter.Interpreter, _ []interpreter.Value) (interpreter.Value, error) {
		return interpreter.DictValue(interpreter.NewDict()), nil
	})

	it.RegisterNative("map", 2, func(it *interpreter.Interpreter, args []interpreter.Value) (interpreter.Value, error) {
		fn, src, err := unaryCallback("map", args)
		if err != nil {
			return interpreter.Nil, err
		}

		out := make([]interpreter.Value, 0, len(src))
		for _, e := range src {
			v, err := it.Call(fn, []interpreter.Value{e})
			if err != nil {
				return interpreter.Nil, err
			}
			out = append(out, v)
		}
		return interpreter.ArrayValue(out), nil
	})

	it.RegisterNative("filter", 2, func(it *interpreter.Interpreter, args []interpreter.Value) (interpreter.Value, error) {
		fn, src, err := unaryCallback("filter", args)
		if err != nil {
			return interpreter.Nil, err
		}

		var out []interpreter.Value
		for _, e := range src {
			keep, err := it.Call(fn, []interpreter.Value{e})
			if err != nil {
				return interpreter.Nil, err
			}
			if keep.Truthy() {
				out = append(out, e)
			}
		}
		return interpreter.ArrayValue(out), nil
	})

	it.RegisterNative("keys", 1, func(_ *interpreter.Interpreter, args []interpreter.Value) (interpreter.Value, error) {
		if args[0].Kind != interpreter.KindDict {
			return interpreter.Nil, errors.New("Argument to keys() must be a dict.")
		}
		return stringArray(args[0].Dict.Keys()), nil
	})

	// has(container, key) checks own keys only.
	it.RegisterNative("has", 2, func(_ *interpreter.Interpreter, args []interpreter.Value) (interpreter.Value, error) {
		key, err := stringKey("has", args[1])
		if err != nil {
			return interpreter.Nil, err
		}
		switch args[0].Kind {
		case interpreter.KindDict:
			_, ok := args[0].Dict.Get(key)
			return interpreter.BoolValue(ok), nil
		case interpreter.KindObject:
			return interpreter.BoolValue(args[0].Obj.Has(key)), nil
		}
		return interpreter.Nil, errors.New("First argument to has() must be a dict or object.")
	})

	it.RegisterNative("del", 2, func(_ *interpreter.Interpreter, args []interpreter.Value) (interpreter.Value, error) {
		key, err := stringKey("del", args[1])
		if err != nil {
			return interpreter.Nil, err
		}
		switch args[0].Kind {
		case interpreter.KindDict:
			args[0].Dict.Delete(key)
			return interpreter.Nil, nil
		case interpreter.KindObject:
			args[0].Obj.Delete(key)
			return interpreter.Nil, nil
		}
		return interpreter.Nil, errors.New("First argument to del() must be a dict or object.")
	})

	it.RegisterNative("deepcopy", 1, func(_ *interpreter.Interpreter, args []interpreter.Value) (interpreter.Value, error) {
		return interpreter.DeepCopy(args[0]), nil
	})
}

func unaryCallback(name string, args []interpreter.Value) (interpreter.Callable, []interpreter.Value, error) {
	if args[0].Kind != interpreter.KindCallable {
		return nil, nil, fmt.Errorf("First argument to %s must be a function.", name)
	}
	if args[1].Kind != interpreter.KindArray {
		return nil, nil, fmt.Errorf("Second argument to %s must be an array.", name)
	}
	if args[0].Fn.Arity() != 1 {
		return nil, nil, fmt.Errorf("Function for %s must take exactly one argument.", name)
	}
	// snapshot so the callback may mutate the source array
	src := append([]interpreter.Value(nil), args[1].Arr.Elems...)
	return args[0].Fn, src, nil
}

// rangeOf builds range(end), range(start, end) or range(start, end, step).
func rangeOf(args []interpreter.Value) (interpreter.Value, error) {
	if err := argCount("range", args, 1, 3); err != nil {
		return interpreter.Nil, err
	}
	for _, a := range args {
		if a.Kind != interpreter.KindInt {
			return interpreter.Nil, errors.New("range() arguments must be integers.")
		}
	}

	var start, end, step int64 = 0, args[0].I64, 1
	if len(args) >= 2 {
		start, end = args[0].I64, args[1].I64
	}
	if len(args) == 3 {
		step = args[2].I64
		if step == 0 {
			return interpreter.Nil, errors.New("range() step cannot be zero.")
		}
	}

	var out []interpreter.Value
	if step > 0 {
		for i := start; i < end; i += step {
			out = append(out, interpreter.IntValue(i))
		}
	} else {
		for i := start; i > end; i += step {
			out = append(out, interpreter.IntValue(i))
		}
	}
	return interpreter.ArrayValue(out), nil
}

func stringArray(keys []string) interpreter.Value {
	out := make([]interpreter.Value, len(keys))
	for i, k := range keys {
		out[i] = interpreter.StringValue(k)
	}
	return interpreter.ArrayValue(out)
}
