package interpreter

import "sort"

// Object is a prototype-based object. Property lookup climbs Parent when
// a name is not found in Fields. Instances record the class that built them.
type Object struct {
	Fields map[string]Value
	Parent *Object
	Class  *Class

	prototypeOf *Class // set on a class's method table
}

func NewObject(parent *Object) *Object {
	return &Object{Fields: make(map[string]Value), Parent: parent}
}

// Get looks name up on the object and then along its parent chain.
func (o *Object) Get(name string) (Value, bool) {
	for obj := o; obj != nil; obj = obj.Parent {
		if v, ok := obj.Fields[name]; ok {
			return v, true
		}
	}
	return Nil, false
}

// Has reports whether name is an own field.
func (o *Object) Has(name string) bool {
	_, ok := o.Fields[name]
	return ok
}

func (o *Object) Set(name string, v Value) {
	o.Fields[name] = v
}

// Delete removes an own field. Inherited properties are untouched.
func (o *Object) Delete(name string) bool {
	if _, ok := o.Fields[name]; !ok {
		return false
	}
	delete(o.Fields, name)
	return true
}

// Keys returns the own field names in sorted order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, len(o.Fields))
	for k := range o.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// AllKeys returns own and inherited property names, sorted and deduplicated.
func (o *Object) AllKeys() []string {
	seen := make(map[string]struct{})
	for obj := o; obj != nil; obj = obj.Parent {
		for k := range obj.Fields {
			seen[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsPrototype reports whether o is the method table of a class.
func (o *Object) IsPrototype() bool {
	return o.prototypeOf != nil
}
