// Package checker is the semantic analysis core: name resolution, the
// generic instantiator, the expression typer, the statement/body checker,
// and the top-level declaration driver (spec components A-F; the
// compatibility relation G lives in package types).
package checker

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/emberlang/emberc/internal/ast"
	cerrors "github.com/emberlang/emberc/internal/errors"
	"github.com/emberlang/emberc/internal/types"
)

// Module owns one compilation unit's declared types, imported modules,
// declared functions, and monomorphized (anonymous) types/functions
// (spec §3.2). Only its own checker mutates it, and only while that
// module is being checked (spec §5).
type Module struct {
	Name string

	// Types holds declared types by Name: either a fully elaborated
	// *types.Declared or an unchecked *types.GenericType deferred to
	// instantiation (spec invariant 1).
	Types map[string]interface{}
	// AnonTypes caches instantiations, keyed by the rendered
	// Subscript(name, args) (spec invariant 5, P6).
	AnonTypes map[string]*types.Declared

	// Functions holds declared functions by name: either a checked
	// *types.Function/*types.AssociatedFunction or an unchecked
	// *types.GenericFunction.
	Functions map[string]interface{}
	// AnonFunctions caches standalone generic-function instantiations,
	// keyed the same way as AnonTypes.
	AnonFunctions map[string]*types.Function

	// Imports maps the short alias a module was bound under (the
	// rightmost dotted component) to the already-checked Module.
	Imports map[string]*Module

	// LoadID is a process-unique identifier stamped on each Module when it
	// is created, so repeated loads of the same dotted path within one host
	// process can be told apart. Reports do not carry it.
	LoadID uuid.UUID
}

// NewModule creates an empty Module ready to be driven by CheckFile.
func NewModule(name string) *Module {
	return &Module{
		Name:          name,
		Types:         map[string]interface{}{},
		AnonTypes:     map[string]*types.Declared{},
		Functions:     map[string]interface{}{},
		AnonFunctions: map[string]*types.Function{},
		Imports:       map[string]*Module{},
		LoadID:        uuid.New(),
	}
}

// ptrGeneric anchors the identity of every ptr<T> instantiation across a
// process: ptr is "the only built-in generic-like" (spec §6), so one
// shared origin is enough for Equals to treat ptr[int] instantiated twice
// as the same type (spec invariant 2, P6).
var ptrGeneric = &types.GenericType{Name: "ptr", Kind: types.StructKind, Params: []string{"T"}}

// instantiatePtr produces (or reuses) the pointer-to-elem type. Per
// design note in spec §9, a pointer type shares the referent's field and
// function tables rather than copying them.
func (m *Module) instantiatePtr(elem types.Type) *types.Declared {
	key := fmt.Sprintf("ptr[%s]", elem.TypeName())
	if cached, ok := m.AnonTypes[key]; ok {
		return cached
	}
	inst := ptrGeneric.NewInstance([]types.Type{elem})
	if d, ok := elem.(*types.Declared); ok {
		inst.Fields = d.Fields
		inst.Functions = d.Functions
		inst.GenericFunctions = d.GenericFunctions
		inst.Monomorphized = d.Monomorphized
		inst.Kind = d.Kind
	} else {
		inst.Functions = map[string]*types.AssociatedFunction{}
		inst.Monomorphized = map[string]*types.AssociatedFunction{}
	}
	m.AnonTypes[key] = inst
	return inst
}

// lookupTypeEntry resolves node against this module's type table alone,
// returning a *types.Primitive, *types.Declared, or *types.GenericType —
// the raw entry, before a bare generic reference is rejected by
// ImportType. This is the module-level (non-Context) resolver of spec
// §4.1's import_type, used both directly and as the base case recursed
// into from a Context.
func (m *Module) lookupTypeEntry(node ast.Node) (interface{}, error) {
	switch n := node.(type) {
	case *ast.Name:
		if p, ok := types.LookupPrimitive(n.Ident); ok {
			return p, nil
		}
		if e, ok := m.Types[n.Ident]; ok {
			return e, nil
		}
		return nil, resErr(cerrors.RES001, m, n, "%s is not a type of module %s", n.Ident, m.Name)

	case *ast.Attribute:
		left, ok := n.Left.(*ast.Name)
		if !ok {
			return nil, resErr(cerrors.RES006, m, n, "left of %q must be an imported module alias", n.String())
		}
		sub, ok := m.Imports[left.Ident]
		if !ok {
			return nil, resErr(cerrors.RES005, m, n, "%s is not an imported module of %s", left.Ident, m.Name)
		}
		return sub.lookupTypeEntry(&ast.Name{Ident: n.Right, Line: n.Line})

	case *ast.Subscript:
		return m.lookupSubscriptType(n, nil)

	default:
		return nil, bugErr(m, node, "unsupported type-hint node %T", node)
	}
}

// lookupSubscriptType resolves a Subscript type hint, applying subs (the
// generic-instantiation substitution map, nil outside an instantiation)
// to every item before re-resolving (spec §4.3 step 3: "cascades nested
// generics").
func (m *Module) lookupSubscriptType(n *ast.Subscript, subs map[string]types.Type) (*types.Declared, error) {
	headEntry, err := m.lookupTypeEntry(n.Head)
	if err != nil {
		return nil, err
	}

	args := make([]types.Type, len(n.Items))
	for i, item := range n.Items {
		t, err := m.resolveHint(item, subs)
		if err != nil {
			return nil, err
		}
		args[i] = t
	}

	switch h := headEntry.(type) {
	case *types.GenericType:
		return m.instantiateType(h, args)
	case *types.Primitive:
		if h != types.Ptr {
			return nil, kindErr(cerrors.KND002, m, n, "%s is not generic", h.TypeName())
		}
		if len(args) != 1 {
			return nil, ariErr(cerrors.ARI004, m, n, "ptr takes exactly one type argument, got %d", len(args))
		}
		return m.instantiatePtr(args[0]), nil
	case *types.Declared:
		return nil, kindErr(cerrors.KND002, m, n, "%s is not generic", h.TypeName())
	default:
		return nil, bugErr(m, n, "unsupported subscript head %T", headEntry)
	}
}

// resolveHint resolves a type-hint AST node to a concrete types.Type,
// substituting any name present in subs before falling back to ordinary
// module/primitive resolution. Passing a nil/empty subs map makes this
// equivalent to plain (non-generic) hint resolution, which is what
// ImportType uses.
func (m *Module) resolveHint(hint ast.Node, subs map[string]types.Type) (types.Type, error) {
	switch n := hint.(type) {
	case *ast.Name:
		if subs != nil {
			if t, ok := subs[n.Ident]; ok {
				return t, nil
			}
		}
		if p, ok := types.LookupPrimitive(n.Ident); ok {
			return p, nil
		}
		if e, ok := m.Types[n.Ident]; ok {
			switch t := e.(type) {
			case *types.Declared:
				return t, nil
			case *types.GenericType:
				return nil, kindErr(cerrors.KND001, m, n, "%s is generic and requires type arguments", n.Ident)
			}
		}
		return nil, resErr(cerrors.RES001, m, n, "%s is not a type of module %s", n.Ident, m.Name)

	case *ast.Attribute:
		// Dotted type names never carry substitutable parameters: a
		// type parameter is always a bare Name.
		entry, err := m.lookupTypeEntry(n)
		if err != nil {
			return nil, err
		}
		return typeEntryToType(m, n, entry)

	case *ast.Subscript:
		return m.lookupSubscriptType(n, subs)

	default:
		return nil, bugErr(m, hint, "unsupported type-hint node %T", hint)
	}
}

func typeEntryToType(m *Module, node ast.Node, entry interface{}) (types.Type, error) {
	switch e := entry.(type) {
	case *types.Primitive:
		return e, nil
	case *types.Declared:
		return e, nil
	case *types.GenericType:
		return nil, kindErr(cerrors.KND001, m, node, "%s is generic and requires type arguments", e.Name)
	default:
		return nil, bugErr(m, node, "unsupported type entry %T", entry)
	}
}

// ImportType is the module-level import_type of spec §4.1: resolve a
// bare Name, dotted Attribute, or parameterized Subscript to a concrete
// Type, instantiating a generic on demand.
func (m *Module) ImportType(node ast.Node) (types.Type, error) {
	return m.resolveHint(node, nil)
}

// instantiateType instantiates g with the given concrete args, memoizing
// by the rendered key (spec §4.3, invariant 5, P6).
func (m *Module) instantiateType(g *types.GenericType, args []types.Type) (*types.Declared, error) {
	if len(args) != len(g.Params) {
		return nil, kindErr(cerrors.KND004, m, nil, "%s takes %d type argument(s), got %d", g.Name, len(g.Params), len(args))
	}
	key := renderKey(g.Name, args)
	if cached, ok := m.AnonTypes[key]; ok {
		return cached, nil
	}

	instance := g.NewInstance(args)
	// Register before resolving fields so a self-referential field
	// (typically reached through a ptr indirection) resolves to this
	// same cache entry instead of recursing forever.
	m.AnonTypes[key] = instance

	subs := make(map[string]types.Type, len(g.Params))
	for i, p := range g.Params {
		subs[p] = args[i]
	}

	fieldDecls := structFieldsOf(g.Decl)
	fields := make([]types.Field, len(fieldDecls))
	for i, fd := range fieldDecls {
		t, err := m.resolveHint(fd.Hint, subs)
		if err != nil {
			delete(m.AnonTypes, key)
			return nil, err
		}
		fields[i] = types.Field{Name: fd.Name, Type: t}
	}
	instance.Fields = fields
	return instance, nil
}

func structFieldsOf(decl ast.TopLevel) []ast.FieldDecl {
	switch d := decl.(type) {
	case *ast.StructDeclaration:
		return d.Fields
	case *ast.UnionDeclaration:
		return d.Fields
	default:
		return nil
	}
}

// lookupFunctionEntry resolves node against this module's function
// table alone (spec §4.1's import_function, module-level).
func (m *Module) lookupFunctionEntry(node ast.Node) (interface{}, error) {
	switch n := node.(type) {
	case *ast.Name:
		if e, ok := m.Functions[n.Ident]; ok {
			return e, nil
		}
		return nil, resErr(cerrors.RES003, m, n, "%s is not a function of module %s", n.Ident, m.Name)

	case *ast.Attribute:
		if left, ok := n.Left.(*ast.Name); ok {
			if sub, ok := m.Imports[left.Ident]; ok {
				return sub.lookupFunctionEntry(&ast.Name{Ident: n.Right, Line: n.Line})
			}
			if entry, ok := m.Types[left.Ident]; ok {
				switch t := entry.(type) {
				case *types.Declared:
					if fn, ok := t.Functions[n.Right]; ok {
						return fn, nil
					}
					if gf, ok := t.GenericFunctions[n.Right]; ok {
						return gf, nil
					}
					return nil, resErr(cerrors.RES004, m, n, "%s has no function %s", t.TypeName(), n.Right)
				case *types.GenericType:
					if gf, ok := t.GenericFunctions[n.Right]; ok {
						return gf, nil
					}
					return nil, resErr(cerrors.RES004, m, n, "%s has no function %s", t.Name, n.Right)
				}
			}
		}
		return nil, resErr(cerrors.RES006, m, n, "left of %q is neither an imported module nor a declared type", n.String())

	case *ast.Subscript:
		headEntry, err := m.lookupFunctionEntry(n.Head)
		if err != nil {
			return nil, err
		}
		gf, ok := headEntry.(*types.GenericFunction)
		if !ok {
			return nil, kindErr(cerrors.KND002, m, n, "%s is not generic", n.Head.String())
		}
		args := make([]types.Type, len(n.Items))
		for i, item := range n.Items {
			t, err := m.ImportType(item)
			if err != nil {
				return nil, err
			}
			args[i] = t
		}
		return m.instantiateFunction(gf, args)

	default:
		return nil, bugErr(m, node, "unsupported function-name node %T", node)
	}
}

// ImportFunction is the module-level import_function of spec §4.1.
func (m *Module) ImportFunction(node ast.Node) (interface{}, error) {
	return m.lookupFunctionEntry(node)
}

// instantiateFunction instantiates a standalone generic function, or an
// associated generic function declared directly on a non-generic
// receiver (gf.Receiver is nil in the first case and already the
// concrete *types.Declared in the second).
func (m *Module) instantiateFunction(gf *types.GenericFunction, args []types.Type) (interface{}, error) {
	var recv *types.Declared
	if gf.Receiver != nil {
		var ok bool
		recv, ok = gf.Receiver.(*types.Declared)
		if !ok {
			// gf.Receiver is the generic struct's own (uninstantiated)
			// GenericType: this function was carried verbatim into a
			// concrete instance's GenericFunctions table, so the caller
			// must supply that instance via instantiateFunctionOn.
			return nil, bugErr(m, nil, "instantiateFunction called on a struct-generic method without an instance; use instantiateFunctionOn")
		}
	}
	return m.instantiateFunctionFor(gf, args, recv)
}

// instantiateFunctionOn instantiates an associated generic function
// reached through recv's GenericFunctions table, which may have been
// carried over verbatim from a generic struct's own table (spec §9): recv
// is then the concrete instance, distinct from gf.Receiver (the abstract
// GenericType the method was declared against).
func (m *Module) instantiateFunctionOn(gf *types.GenericFunction, args []types.Type, recv *types.Declared) (interface{}, error) {
	return m.instantiateFunctionFor(gf, args, recv)
}

func (m *Module) instantiateFunctionFor(gf *types.GenericFunction, args []types.Type, recv *types.Declared) (interface{}, error) {
	if len(args) != len(gf.Params) {
		return nil, kindErr(cerrors.KND004, m, nil, "%s takes %d type argument(s), got %d", functionHeadName(gf.Decl.Head), len(gf.Params), len(args))
	}

	name := functionHeadName(gf.Decl.Head)
	key := renderKey(name, args)

	if recv != nil {
		if cached, ok := recv.Monomorphized[key]; ok {
			return cached, nil
		}
	} else if cached, ok := m.AnonFunctions[key]; ok {
		return cached, nil
	}

	subs := make(map[string]types.Type, len(gf.Params))
	for i, p := range gf.Params {
		subs[p] = args[i]
	}

	params := make([]types.Field, len(gf.Decl.Head.Parameters))
	for i, p := range gf.Decl.Head.Parameters {
		t, err := m.resolveHint(p.Hint, subs)
		if err != nil {
			return nil, err
		}
		params[i] = types.Field{Name: p.Name, Type: t}
	}
	ret, err := m.resolveReturnHint(gf.Decl.Head.ReturnHint, subs)
	if err != nil {
		return nil, err
	}

	fn := &types.Function{Name: name, Params: params, Return: ret}

	var result interface{} = fn
	if recv != nil {
		assoc := &types.AssociatedFunction{Function: fn, Receiver: recv}
		recv.Monomorphized[key] = assoc
		result = assoc
	} else {
		m.AnonFunctions[key] = fn
	}

	ctx := m.newFunctionContext(fn, recv)
	if err := checkBody(ctx, gf.Decl.Body); err != nil {
		return nil, err
	}
	return result, nil
}

func (m *Module) resolveReturnHint(hint ast.Node, subs map[string]types.Type) (types.Type, error) {
	if hint == nil {
		return types.Void, nil
	}
	return m.resolveHint(hint, subs)
}

// newFunctionContext builds the initial checking context for fn's body.
// recv is non-nil when fn is an associated function; the implicit
// receiver is then bound under the name "self" alongside fn's declared
// parameters, so a dotted function body can refer to self.field without
// self appearing in fn.Params (spec §4.6: fn.Params is exactly the
// function's own parameter list, receiver binding is the checker's job).
func (m *Module) newFunctionContext(fn *types.Function, recv *types.Declared) *Context {
	vars := make(map[string]interface{}, len(fn.Params)+1)
	if recv != nil {
		vars["self"] = types.Type(recv)
	}
	for _, p := range fn.Params {
		vars[p.Name] = p.Type
	}
	return &Context{Module: m, ReturnType: fn.Return, vars: vars}
}

func functionHeadName(head *ast.FunctionHead) string {
	switch n := head.Name.(type) {
	case *ast.Name:
		return n.Ident
	case *ast.Attribute:
		return fmt.Sprintf("%s.%s", n.Left.String(), n.Right)
	default:
		return head.Name.String()
	}
}

func renderKey(base string, args []types.Type) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.TypeName()
	}
	return fmt.Sprintf("%s[%s]", base, strings.Join(parts, ", "))
}

func rightmostComponent(dotted string) string {
	parts := strings.Split(dotted, ".")
	return parts[len(parts)-1]
}
