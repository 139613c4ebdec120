// Package types is the elaborated type model: primitives, declared
// struct/union types (and their generic/pointer instantiations), checked
// functions, and the small compatibility relation between them.
//
// Nothing here depends on the checker's module/context machinery — this
// package only represents types and decides whether one may stand in for
// another (spec §4.2, component G).
package types

import (
	"fmt"
	"strings"
)

// Type is the elaborated form of anything that can be assigned to an
// expression, field, or parameter.
type Type interface {
	// TypeName renders the type for diagnostics, e.g. "Point", "Box[int]".
	TypeName() string
	// Equals is structural identity per spec invariant 2: identity of the
	// underlying declaration, plus — for instantiations — the tuple of
	// concrete type arguments. Primitives compare by identity.
	Equals(other Type) bool
}

// Primitive is one of the built-in types registered once, process-wide.
// Primitives compare by pointer identity (there is exactly one *Primitive
// value per name, see LookupPrimitive).
type Primitive struct {
	Name string
}

func (p *Primitive) TypeName() string { return p.Name }

func (p *Primitive) Equals(other Type) bool {
	o, ok := other.(*Primitive)
	return ok && o == p
}

// Kind distinguishes struct from union semantics on a Declared type; the
// expression typer and the union-guard gate both switch on this.
type Kind int

const (
	StructKind Kind = iota
	UnionKind
)

// Field is one (name, type) pair of a declared type's fields, or of a
// function's parameter list.
type Field struct {
	Name string
	Type Type
}

// Declared is a struct or union type: either a direct top-level
// declaration, or the result of instantiating a GenericType (including
// the built-in ptr pseudo-generic). Fields are always fully elaborated —
// never raw hints — per spec invariant 1.
type Declared struct {
	BaseName string
	Args     []Type // nil for a non-generic declaration, non-nil for an instantiation
	Fields   []Field

	// Functions are fully checked associated functions, by name.
	Functions map[string]*AssociatedFunction
	// GenericFunctions are unchecked associated-function stubs declared
	// with their own generic parameters, by name (spec §4.6: registered
	// "as an AssociatedFunction stub on the receiver type, if dotted").
	GenericFunctions map[string]*GenericFunction
	// Monomorphized holds instantiated associated generic functions,
	// keyed by the rendered Subscript(name, concrete_items).
	Monomorphized map[string]*AssociatedFunction

	Kind   Kind
	Module string

	// origin anchors identity for Equals: the *GenericType this was
	// instantiated from, or nil for a direct (non-generic) declaration,
	// in which case the *Declared pointer itself is the identity anchor.
	origin *GenericType
}

// NewDeclared constructs a direct (non-generic) struct/union type.
func NewDeclared(module, name string, kind Kind, fields []Field) *Declared {
	return &Declared{
		BaseName:         name,
		Fields:           fields,
		Functions:        map[string]*AssociatedFunction{},
		GenericFunctions: map[string]*GenericFunction{},
		Monomorphized:    map[string]*AssociatedFunction{},
		Kind:             kind,
		Module:           module,
	}
}

func (d *Declared) TypeName() string {
	if d.Args == nil {
		return d.BaseName
	}
	parts := make([]string, len(d.Args))
	for i, a := range d.Args {
		parts[i] = a.TypeName()
	}
	return fmt.Sprintf("%s[%s]", d.BaseName, strings.Join(parts, ", "))
}

func (d *Declared) Equals(other Type) bool {
	o, ok := other.(*Declared)
	if !ok {
		return false
	}
	if d == o {
		return true
	}
	if d.origin == nil || o.origin == nil || d.origin != o.origin {
		return false
	}
	if len(d.Args) != len(o.Args) {
		return false
	}
	for i := range d.Args {
		if !d.Args[i].Equals(o.Args[i]) {
			return false
		}
	}
	return true
}

// Field looks up a field by name, reporting whether it exists.
func (d *Declared) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
