package types

import "github.com/emberlang/emberc/internal/ast"

// GenericType is an unchecked struct/union declaration plus its
// type-parameter names, stored in a module's type table until a
// Subscript instantiation requests a concrete Declared (spec §4.3).
type GenericType struct {
	Decl   ast.TopLevel // *ast.StructDeclaration or *ast.UnionDeclaration
	Name   string
	Params []string
	Kind   Kind
	Module string

	// GenericFunctions are associated-function stubs declared against
	// this still-generic receiver, carried over verbatim into every
	// instantiation (spec §4.3 step 4: "carry over the generic's
	// existing function table").
	GenericFunctions map[string]*GenericFunction
}

// TypeName and Equals let a *GenericType itself satisfy Type, so it can
// be carried in a GenericFunction's Receiver field before any concrete
// instantiation exists (a struct-generic method stub's receiver, until
// called on an actual instance — see instantiateFunctionOn).
func (g *GenericType) TypeName() string { return g.Name }

func (g *GenericType) Equals(other Type) bool {
	o, ok := other.(*GenericType)
	return ok && o == g
}

// NewInstance produces a fresh *Declared anchored on this GenericType, to
// be populated by the checker's instantiator (§4.3) with rewritten
// fields. The caller fills Fields; NewInstance carries over the
// generic's function table and sets up the identity anchor and
// bookkeeping maps.
func (g *GenericType) NewInstance(args []Type) *Declared {
	return &Declared{
		BaseName:         g.Name,
		Args:             args,
		Functions:        map[string]*AssociatedFunction{},
		GenericFunctions: g.GenericFunctions,
		Monomorphized:    map[string]*AssociatedFunction{},
		Kind:             g.Kind,
		Module:           g.Module,
		origin:           g,
	}
}

// GenericFunction is an unchecked function declaration with parameter
// names; on instantiation it produces a Function (or AssociatedFunction
// when Receiver is set).
type GenericFunction struct {
	Decl     *ast.FunctionDeclaration
	Params   []string
	Receiver Type // nil unless this is an associated-function stub
	Module   string
}
