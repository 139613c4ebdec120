package types

// The primitive-type set is fixed and registered once, process-wide
// (spec §3.4, §6). Primitives compare by pointer identity; LookupPrimitive
// always resolves one of the same eight singletons.
//
// FunctionType carries the name "function" to avoid colliding with the
// checked-function representation types.Function in functions.go.
var (
	Void         = &Primitive{Name: "void"}
	Bool         = &Primitive{Name: "bool"}
	Int          = &Primitive{Name: "int"}
	Float        = &Primitive{Name: "float"}
	Str          = &Primitive{Name: "str"}
	Ptr          = &Primitive{Name: "ptr"}
	FunctionType = &Primitive{Name: "function"}
	Any          = &Primitive{Name: "any"}
)

var primitivesByName = map[string]*Primitive{
	"void":     Void,
	"bool":     Bool,
	"int":      Int,
	"float":    Float,
	"str":      Str,
	"ptr":      Ptr,
	"function": FunctionType,
	"any":      Any,
}

// LookupPrimitive returns the singleton primitive for name, if any.
func LookupPrimitive(name string) (*Primitive, bool) {
	p, ok := primitivesByName[name]
	return p, ok
}

// IsPtr reports whether t is the bare ptr primitive (as opposed to an
// instantiated pointer-to-T Declared produced by the unary & operator or
// an explicit ptr[T] hint).
func IsPtr(t Type) bool {
	p, ok := t.(*Primitive)
	return ok && p == Ptr
}
