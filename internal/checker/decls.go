package checker

import (
	"github.com/emberlang/emberc/internal/ast"
	cerrors "github.com/emberlang/emberc/internal/errors"
	"github.com/emberlang/emberc/internal/types"
)

// ModuleLoader resolves a dotted import path to an already-checked
// Module. checker declares the interface (rather than depending on the
// loader package directly) so the loader can depend on checker without a
// cycle: loader.Loader implements this by constructing a Module and
// calling back into CheckFile.
type ModuleLoader interface {
	LoadModule(name string) (*Module, error)
}

// CheckFile drives spec component F over one module's top-level
// declarations in source order: imports first (so module aliases are
// available throughout), then struct/union declarations one at a time —
// each one's stub is registered and, unless it is generic, its fields are
// resolved immediately against only the names registered so far, so a
// non-generic declaration can never forward-reference one later in the
// same file (spec.md §5: "forward references between top-level
// declarations are not supported unless the referenced symbol is an
// already-registered generic whose instantiation happens on use") — then
// functions and externs.
func CheckFile(m *Module, decls []ast.TopLevel, loader ModuleLoader) error {
	for _, d := range decls {
		imp, ok := d.(*ast.Import)
		if !ok {
			continue
		}
		sub, err := loader.LoadModule(imp.ModuleName)
		if err != nil {
			if _, ok := cerrors.AsReport(err); ok {
				return err
			}
			return impErr(cerrors.IMP001, m, imp, "cannot load module %s: %v", imp.ModuleName, err)
		}
		m.Imports[rightmostComponent(imp.ModuleName)] = sub
	}

	for _, d := range decls {
		var name string
		var fields []ast.FieldDecl
		var generic []string
		var kind types.Kind
		switch td := d.(type) {
		case *ast.StructDeclaration:
			name, fields, generic, kind = td.Name, td.Fields, td.Generic, types.StructKind
		case *ast.UnionDeclaration:
			name, fields, generic, kind = td.Name, td.Fields, td.Generic, types.UnionKind
		default:
			continue
		}
		registerTypeStub(m, d, name, kind, generic)
		if len(generic) > 0 {
			continue // fields resolved lazily, on instantiation (spec's lazy-generic exception)
		}
		if err := resolveDeclaredFields(m, name, fields); err != nil {
			return err
		}
	}

	for _, d := range decls {
		switch fd := d.(type) {
		case *ast.Extern:
			if err := registerFunctionLike(m, fd.Head, nil, true); err != nil {
				return err
			}
		case *ast.FunctionDeclaration:
			if err := registerFunctionLike(m, fd.Head, fd.Body, false); err != nil {
				return err
			}
		}
	}
	return nil
}

func registerTypeStub(m *Module, decl ast.TopLevel, name string, kind types.Kind, generic []string) {
	if len(generic) == 0 {
		m.Types[name] = types.NewDeclared(m.Name, name, kind, nil)
		return
	}
	m.Types[name] = &types.GenericType{
		Decl:             decl,
		Name:             name,
		Params:           generic,
		Kind:             kind,
		Module:           m.Name,
		GenericFunctions: map[string]*types.GenericFunction{},
	}
}

func resolveDeclaredFields(m *Module, name string, fieldDecls []ast.FieldDecl) error {
	d := m.Types[name].(*types.Declared)
	fields := make([]types.Field, len(fieldDecls))
	for i, fd := range fieldDecls {
		t, err := m.resolveHint(fd.Hint, nil)
		if err != nil {
			return err
		}
		fields[i] = types.Field{Name: fd.Name, Type: t}
	}
	d.Fields = fields
	return nil
}

// registerFunctionLike registers one FunctionDeclaration (body != nil) or
// Extern (body == nil), dotted or plain, generic or not, and — for a
// non-generic declaration with a body — checks that body immediately.
// Generic declarations are deferred to call-time instantiation, matching
// instantiateFunction/instantiateFunctionOn.
func registerFunctionLike(m *Module, head *ast.FunctionHead, body *ast.Body, extern bool) error {
	var recvEntry interface{}
	var recvName string
	if head.IsDotted() {
		attr := head.Name.(*ast.Attribute)
		leftName, ok := attr.Left.(*ast.Name)
		if !ok {
			return resErr(cerrors.RES006, m, head.Name, "associated function receiver must be a bare type name")
		}
		recvName = attr.Right
		e, ok := m.Types[leftName.Ident]
		if !ok {
			return resErr(cerrors.RES001, m, head.Name, "%s is not a declared type of module %s", leftName.Ident, m.Name)
		}
		recvEntry = e
	}

	var genericType *types.GenericType
	var genericParams []string
	if gt, ok := recvEntry.(*types.GenericType); ok {
		genericType = gt
		genericParams = append(append([]string{}, gt.Params...), head.Generic...)
	} else if len(head.Generic) > 0 {
		genericParams = head.Generic
	}

	if len(genericParams) > 0 {
		if extern {
			return kindErr(cerrors.KND004, m, head.Name, "extern functions cannot be generic")
		}
		decl := &ast.FunctionDeclaration{Head: head, Body: body, Line: head.Line}
		gf := &types.GenericFunction{Decl: decl, Params: genericParams, Module: m.Name}
		switch {
		case genericType != nil:
			gf.Receiver = genericType
			genericType.GenericFunctions[recvName] = gf
		case recvEntry != nil:
			d := recvEntry.(*types.Declared)
			gf.Receiver = d
			d.GenericFunctions[recvName] = gf
		default:
			m.Functions[functionHeadName(head)] = gf
		}
		return nil
	}

	params := make([]types.Field, len(head.Parameters))
	for i, p := range head.Parameters {
		t, err := m.resolveHint(p.Hint, nil)
		if err != nil {
			return err
		}
		params[i] = types.Field{Name: p.Name, Type: t}
	}
	ret, err := m.resolveReturnHint(head.ReturnHint, nil)
	if err != nil {
		return err
	}
	fn := &types.Function{Name: functionHeadName(head), Params: params, Return: ret, Extern: extern}

	var recvDeclared *types.Declared
	if recvEntry != nil {
		recvDeclared = recvEntry.(*types.Declared)
		assoc := &types.AssociatedFunction{Function: fn, Receiver: recvDeclared}
		recvDeclared.Functions[recvName] = assoc
	} else {
		m.Functions[functionHeadName(head)] = fn
	}

	if body == nil {
		return nil
	}
	ctx := m.newFunctionContext(fn, recvDeclared)
	return checkBody(ctx, body)
}
