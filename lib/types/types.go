package types

import "strings"

// Type is the semantic type of a Carlos value. String returns the
// description used in diagnostics.
type Type interface {
	String() string
	Equals(Type) bool
}

// Primitive types are singletons and compare by identity.
type Primitive struct {
	Name string
}

func (t *Primitive) String() string {
	return t.Name
}

func (t *Primitive) Equals(other Type) bool {
	o, ok := other.(*Primitive)
	return ok && o == t
}

var (
	Int     = &Primitive{Name: "int"}
	Float   = &Primitive{Name: "float"}
	Boolean = &Primitive{Name: "boolean"}
	String  = &Primitive{Name: "string"}
	Void    = &Primitive{Name: "void"}

	// Any is only meaningful as an assignment target: every value is
	// assignable to it.
	Any = &Primitive{Name: "any"}
)

type Array struct {
	Elem Type
}

func (t *Array) String() string {
	return "[" + t.Elem.String() + "]"
}

func (t *Array) Equals(other Type) bool {
	if other, ok := other.(*Array); ok {
		return t.Elem.Equals(other.Elem)
	}
	return false
}

type Optional struct {
	Base Type
}

func (t *Optional) String() string {
	return t.Base.String() + "?"
}

func (t *Optional) Equals(other Type) bool {
	if other, ok := other.(*Optional); ok {
		return t.Base.Equals(other.Base)
	}
	return false
}

type Function struct {
	Params  []Type
	Returns Type
}

func (t *Function) String() string {
	params := make([]string, len(t.Params))
	for i, p := range t.Params {
		params[i] = p.String()
	}
	return "(" + strings.Join(params, ",") + ")->" + t.Returns.String()
}

func (t *Function) Equals(other Type) bool {
	o, ok := other.(*Function)
	if !ok || len(o.Params) != len(t.Params) {
		return false
	}
	for i := range t.Params {
		if !t.Params[i].Equals(o.Params[i]) {
			return false
		}
	}
	return t.Returns.Equals(o.Returns)
}

// Struct is nominal: two struct types are equal only if they are the same
// declaration. Fields is filled after the struct has been registered so that
// a field may refer to its own struct.
type Struct struct {
	Name   string
	Fields []*Field
}

type Field struct {
	Name string
	Type Type
}

func (t *Struct) String() string {
	return t.Name
}

func (t *Struct) Equals(other Type) bool {
	o, ok := other.(*Struct)
	return ok && o == t
}

func (t *Struct) Field(name string) (*Field, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

func Equals(a, b Type) bool {
	return a.Equals(b)
}

// Assignable reports whether a value of type value may be stored in a
// location of type target.
func Assignable(value, target Type) bool {
	return target == Any || value.Equals(target)
}

func IsInteger(t Type) bool {
	return t == Int
}

func IsBoolean(t Type) bool {
	return t == Boolean
}

func IsNumeric(t Type) bool {
	return t == Int || t == Float
}

func IsNumericOrString(t Type) bool {
	return IsNumeric(t) || t == String
}

func IsArray(t Type) bool {
	_, ok := t.(*Array)
	return ok
}

func IsOptional(t Type) bool {
	_, ok := t.(*Optional)
	return ok
}
