// Package builtins installs the native function library into an
// interpreter's global environment.
package builtins

import (
	"fmt"

	"minilang/pkg/interpreter"
)

// Install registers every native function on it.
func Install(it *interpreter.Interpreter) {
	registerCoreBuiltins(it)
	registerConversionBuiltins(it)
	registerCollectionBuiltins(it)
	registerObjectBuiltins(it)
	registerFileBuiltins(it)
}

// Names lists the installed natives in registration order.
var Names = []string{
	"print", "len", "type", "str", "input", "clock", "assert",
	"int", "float", "bool",
	"append", "pop", "slice", "range", "dict", "map", "filter", "keys", "has", "del", "deepcopy",
	"Object", "dir",
	"read_file", "write_file",
}

func argCount(name string, args []interpreter.Value, min, max int) error {
	if n := len(args); n < min || n > max {
		switch {
		case min == max:
			return fmt.Errorf("%s() takes exactly %d arguments.", name, min)
		case max == min+1:
			return fmt.Errorf("%s() takes %d or %d arguments.", name, min, max)
		}
		return fmt.Errorf("%s() takes %d to %d arguments.", name, min, max)
	}
	return nil
}

func stringKey(name string, v interpreter.Value) (string, error) {
	if v.Kind != interpreter.KindString {
		return "", fmt.Errorf("Second argument to %s() must be a string key.", name)
	}
	return v.Str, nil
}
