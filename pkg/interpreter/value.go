package interpreter

import (
	"fmt"
	"sort"
)

type ValueKind int

const (
	KindNil ValueKind = iota
	KindInt
	KindFloat
	KindBool
	KindString
	KindArray
	KindDict
	KindCallable
	KindObject
)

var kindNames = [...]string{"nil", "int", "float", "bool", "string", "array", "dict", "function", "object"}

func (k ValueKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Value represents a dynamically-typed value in the interpreter.
// Strings are Go strings and therefore immutable; arrays, dictionaries,
// callables and objects are shared by reference.
type Value struct {
	Kind ValueKind
	I64  int64
	F64  float64
	Bool bool
	Str  string
	Arr  *Array
	Dict *Dict
	Fn   Callable
	Obj  *Object
}

// Nil is the zero Value.
var Nil = Value{}

// Array is a mutable sequence shared by every Value that references it.
type Array struct {
	Elems []Value
}

// Dict is a string-keyed mapping shared by every Value that references it.
type Dict struct {
	entries map[string]Value
}

func NewDict() *Dict {
	return &Dict{entries: make(map[string]Value)}
}

func (d *Dict) Get(key string) (Value, bool) {
	v, ok := d.entries[key]
	return v, ok
}

func (d *Dict) Set(key string, v Value) {
	d.entries[key] = v
}

func (d *Dict) Delete(key string) {
	delete(d.entries, key)
}

func (d *Dict) Len() int {
	return len(d.entries)
}

// Keys returns the keys in sorted order
func (d *Dict) Keys() []string {
	keys := make([]string, 0, len(d.entries))
	for k := range d.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func IntValue(i int64) Value {
	return Value{Kind: KindInt, I64: i}
}

func FloatValue(f float64) Value {
	return Value{Kind: KindFloat, F64: f}
}

func BoolValue(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

func StringValue(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// ArrayValue wraps elems in a new array. The slice is not copied.
func ArrayValue(elems []Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{Kind: KindArray, Arr: &Array{Elems: elems}}
}

func DictValue(d *Dict) Value {
	return Value{Kind: KindDict, Dict: d}
}

func CallableValue(fn Callable) Value {
	return Value{Kind: KindCallable, Fn: fn}
}

func ObjectValue(o *Object) Value {
	return Value{Kind: KindObject, Obj: o}
}

func (v Value) IsNil() bool      { return v.Kind == KindNil }
func (v Value) IsNumeric() bool  { return v.Kind == KindInt || v.Kind == KindFloat }
func (v Value) IsString() bool   { return v.Kind == KindString }
func (v Value) IsArray() bool    { return v.Kind == KindArray }
func (v Value) IsDict() bool     { return v.Kind == KindDict }
func (v Value) IsCallable() bool { return v.Kind == KindCallable }
func (v Value) IsObject() bool   { return v.Kind == KindObject }

// Truthy applies the language's truthiness rule.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindInt:
		return v.I64 != 0
	case KindFloat:
		return v.F64 != 0
	case KindBool:
		return v.Bool
	case KindString:
		return v.Str != ""
	case KindArray:
		return len(v.Arr.Elems) > 0
	case KindDict:
		return v.Dict.Len() > 0
	case KindCallable:
		return v.Fn != nil
	case KindObject:
		return len(v.Obj.Fields) > 0 || v.Obj.Parent != nil
	default:
		return false
	}
}

// AsFloat64 converts a numeric value to float64.
func (v Value) AsFloat64() (float64, error) {
	switch v.Kind {
	case KindFloat:
		return v.F64, nil
	case KindInt:
		return float64(v.I64), nil
	default:
		return 0, fmt.Errorf("cannot convert %v to float", v.Kind)
	}
}

// TypeName is the name reported by type(): the kind, "class" for classes,
// or the class name for instances.
func (v Value) TypeName() string {
	switch v.Kind {
	case KindCallable:
		if _, ok := v.Fn.(*Class); ok {
			return "class"
		}
		return "function"
	case KindObject:
		if v.Obj.Class != nil {
			return v.Obj.Class.ClassName
		}
		return "object"
	default:
		return v.Kind.String()
	}
}

// Class returns the class of an instance, or nil.
func (v Value) Class() *Class {
	if v.Kind == KindObject {
		return v.Obj.Class
	}
	return nil
}
