package interpreter

import (
	"math"
	"strconv"
	"strings"
)

// String renders v the way print does, except that instances are never
// passed to a user toString method.
func (v Value) String() string {
	f := formatter{seen: make(map[any]bool)}
	s, _ := f.format(v)
	return s
}

// ToString renders v for print and str(). Instances whose class defines a
// zero-argument toString returning a string are rendered by that method.
func (it *Interpreter) ToString(v Value) (string, error) {
	f := formatter{it: it, seen: make(map[any]bool)}
	return f.format(v)
}

// FormatFloat prints f with six significant digits.
func FormatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	return strconv.FormatFloat(f, 'g', 6, 64)
}

type formatter struct {
	it   *Interpreter
	seen map[any]bool // containers on the current path
}

func (f *formatter) format(v Value) (string, error) {
	switch v.Kind {
	case KindNil:
		return "nil", nil
	case KindInt:
		return strconv.FormatInt(v.I64, 10), nil
	case KindFloat:
		return FormatFloat(v.F64), nil
	case KindBool:
		return strconv.FormatBool(v.Bool), nil
	case KindString:
		return v.Str, nil
	case KindCallable:
		return v.Fn.String(), nil
	case KindArray:
		return f.array(v.Arr)
	case KindDict:
		return f.dict(v.Dict)
	case KindObject:
		return f.object(v.Obj)
	}
	return "", nil
}

func (f *formatter) array(a *Array) (string, error) {
	if f.seen[a] {
		return "[...]", nil
	}
	f.seen[a] = true
	defer delete(f.seen, a)

	var sb strings.Builder
	sb.WriteByte('[')
	for i, e := range a.Elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		s, err := f.format(e)
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
	}
	sb.WriteByte(']')
	return sb.String(), nil
}

func (f *formatter) dict(d *Dict) (string, error) {
	if f.seen[d] {
		return "{...}", nil
	}
	f.seen[d] = true
	defer delete(f.seen, d)

	return f.entries(d.Keys(), func(k string) Value {
		v, _ := d.Get(k)
		return v
	})
}

func (f *formatter) entries(keys []string, get func(string) Value) (string, error) {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		s, err := f.format(get(k))
		if err != nil {
			return "", err
		}
		sb.WriteString(`"` + k + `": `)
		sb.WriteString(s)
	}
	sb.WriteByte('}')
	return sb.String(), nil
}

func (f *formatter) object(o *Object) (string, error) {
	if o.Class != nil {
		if f.it != nil {
			if m, ok := o.Class.FindMethod("toString"); ok && m.Arity() == 0 {
				res, err := f.it.Call(m.Bind(o), nil)
				if err != nil {
					return "", err
				}
				if res.Kind == KindString {
					return res.Str, nil
				}
			}
		}
		return "<" + o.Class.ClassName + " instance>", nil
	}

	if f.seen[o] {
		return "<object>{...}", nil
	}
	f.seen[o] = true
	defer delete(f.seen, o)

	s, err := f.entries(o.Keys(), func(k string) Value { return o.Fields[k] })
	if err != nil {
		return "", err
	}
	return "<object>" + s, nil
}
