package interpreter

// DeepCopy clones arrays, dicts and objects reachable from v. Shared and
// cyclic references are preserved in the copy. Class method tables and
// callables are shared with the original.
func DeepCopy(v Value) Value {
	c := copier{memo: make(map[any]Value)}
	return c.copy(v)
}

type copier struct {
	memo map[any]Value // original container -> its copy
}

func (c *copier) copy(v Value) Value {
	switch v.Kind {
	case KindArray:
		if dup, ok := c.memo[v.Arr]; ok {
			return dup
		}
		dup := ArrayValue(make([]Value, len(v.Arr.Elems)))
		c.memo[v.Arr] = dup
		for i, e := range v.Arr.Elems {
			dup.Arr.Elems[i] = c.copy(e)
		}
		return dup

	case KindDict:
		if dup, ok := c.memo[v.Dict]; ok {
			return dup
		}
		dup := DictValue(NewDict())
		c.memo[v.Dict] = dup
		for k, e := range v.Dict.entries {
			dup.Dict.entries[k] = c.copy(e)
		}
		return dup

	case KindObject:
		return ObjectValue(c.object(v.Obj))
	}

	return v
}

func (c *copier) object(o *Object) *Object {
	if o == nil || o.IsPrototype() {
		return o
	}
	if dup, ok := c.memo[o]; ok {
		return dup.Obj
	}

	dup := &Object{Fields: make(map[string]Value, len(o.Fields)), Class: o.Class}
	c.memo[o] = ObjectValue(dup)
	dup.Parent = c.object(o.Parent)
	for k, e := range o.Fields {
		dup.Fields[k] = c.copy(e)
	}
	return dup
}
