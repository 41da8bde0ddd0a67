package interpreter

import (
	"fmt"

	"minilang/pkg/ast"
)

type binding struct {
	value Value
	typ   ast.TypeName
}

// Environment is one lexical frame: a name table plus the enclosing frame.
// Closures keep their defining Environment alive.
type Environment struct {
	values map[string]*binding
	parent *Environment
}

func NewEnvironment(parent *Environment) *Environment {
	return &Environment{values: make(map[string]*binding), parent: parent}
}

func (e *Environment) Parent() *Environment {
	return e.parent
}

// Define creates or replaces name in this frame. A typed slot rejects
// values of the wrong type; an int stored in a float slot becomes a float.
func (e *Environment) Define(name string, v Value, typ ast.TypeName) error {
	if !CheckType(typ, v) {
		return fmt.Errorf("Initializer type mismatch for variable '%s'.", name)
	}
	e.values[name] = &binding{value: coerce(typ, v), typ: typ}
	return nil
}

// Get resolves name by walking outward through the enclosing frames.
func (e *Environment) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if b, ok := env.values[name]; ok {
			return b.value, true
		}
	}
	return Nil, false
}

// Assign updates the nearest frame that defines name. It reports false
// when no frame does.
func (e *Environment) Assign(name string, v Value) (bool, error) {
	for env := e; env != nil; env = env.parent {
		b, ok := env.values[name]
		if !ok {
			continue
		}
		if !CheckType(b.typ, v) {
			return true, fmt.Errorf("Type mismatch on assignment to static variable '%s'.", name)
		}
		b.value = coerce(b.typ, v)
		return true, nil
	}
	return false, nil
}

// Names lists the names defined directly in this frame.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.values))
	for k := range e.values {
		names = append(names, k)
	}
	return names
}

// CheckType reports whether v may be stored in a slot declared as typ.
// float accepts int, and object accepts nil.
func CheckType(typ ast.TypeName, v Value) bool {
	switch typ {
	case ast.TypeNone:
		return true
	case ast.TypeInt:
		return v.Kind == KindInt
	case ast.TypeFloat:
		return v.Kind == KindFloat || v.Kind == KindInt
	case ast.TypeBool:
		return v.Kind == KindBool
	case ast.TypeString:
		return v.Kind == KindString
	case ast.TypeArray:
		return v.Kind == KindArray
	case ast.TypeDict:
		return v.Kind == KindDict
	case ast.TypeObject:
		return v.Kind == KindObject || v.Kind == KindNil
	}
	return false
}

func coerce(typ ast.TypeName, v Value) Value {
	if typ == ast.TypeFloat && v.Kind == KindInt {
		return FloatValue(float64(v.I64))
	}
	return v
}

// DefaultValue is the value of a typed declaration without an initializer.
func DefaultValue(typ ast.TypeName) Value {
	switch typ {
	case ast.TypeInt:
		return IntValue(0)
	case ast.TypeFloat:
		return FloatValue(0)
	case ast.TypeBool:
		return BoolValue(false)
	case ast.TypeString:
		return StringValue("")
	case ast.TypeArray:
		return ArrayValue(nil)
	case ast.TypeDict:
		return DictValue(NewDict())
	case ast.TypeObject:
		return ObjectValue(NewObject(nil))
	}
	return Nil
}
