package checker

import (
	"github.com/emberlang/emberc/internal/ast"
	cerrors "github.com/emberlang/emberc/internal/errors"
	"github.com/emberlang/emberc/internal/types"
)

// checkCall implements spec §4.7's call-checking algorithm: resolve the
// callee (possibly prepending an implicit receiver for an instance-dot
// call), instantiate it if generic, then check arity and argument types.
func checkCall(ctx *Context, c *ast.Call) (*types.Typed, error) {
	entry, receiver, err := resolveCallTarget(ctx, c)
	if err != nil {
		return nil, err
	}

	if gf, ok := entry.(*types.GenericFunction); ok {
		if c.Generic == nil {
			return nil, kindErr(cerrors.KND001, ctx.Module, c, "%s is generic and requires type arguments", c.Name.String())
		}
		args := make([]types.Type, len(c.Generic))
		for i, g := range c.Generic {
			t, err := ctx.Module.ImportType(g)
			if err != nil {
				return nil, err
			}
			args[i] = t
		}
		var inst interface{}
		var err error
		if receiver != nil {
			recvDeclared, ok := receiver.Type.(*types.Declared)
			if !ok {
				return nil, kindErr(cerrors.KND002, ctx.Module, c, "%s is not a struct or union type", receiver.Type.TypeName())
			}
			inst, err = ctx.Module.instantiateFunctionOn(gf, args, recvDeclared)
		} else {
			inst, err = ctx.Module.instantiateFunction(gf, args)
		}
		if err != nil {
			return nil, err
		}
		entry = inst
	} else if c.Generic != nil {
		return nil, kindErr(cerrors.KND002, ctx.Module, c, "%s is not generic", c.Name.String())
	}

	isAssoc, recvType, fn := functionFromEntry(entry)
	if fn == nil {
		return nil, bugErr(ctx.Module, c, "unsupported function entry %T", entry)
	}

	params := fn.Params
	if isAssoc {
		params = append([]types.Field{{Name: "self", Type: recvType}}, fn.Params...)
	}

	argTyped := make([]*types.Typed, 0, len(params))
	if receiver != nil {
		argTyped = append(argTyped, receiver)
	}
	for _, a := range c.Arguments {
		t, err := checkExpression(ctx, a)
		if err != nil {
			return nil, err
		}
		argTyped = append(argTyped, t)
	}

	if len(argTyped) != len(params) {
		return nil, ariErr(cerrors.ARI001, ctx.Module, c, "%s expects %d argument(s), got %d", c.Name.String(), len(params), len(argTyped))
	}
	for i, p := range params {
		if !types.Compatible(p.Type, argTyped[i].Type) {
			return nil, typErr(cerrors.TYP001, ctx.Module, c, "argument %d of %s expects %s, got %s", i+1, c.Name.String(), p.Type.TypeName(), argTyped[i].Type.TypeName())
		}
	}
	return &types.Typed{Node: c, Type: fn.Return}, nil
}

// resolveCallTarget finds the callee entry and, for an instance-dot call
// (receiver.method(...)), the already-typed receiver value to prepend.
//
// A dotted callee whose left side resolves as a value (a bound variable,
// or a nested attribute path) is an instance-dot call: the function table
// comes from the receiver's own declared type, and the receiver is
// prepended to the argument list implicitly. A dotted callee whose left
// side does not resolve as a value (e.g. Type.method, calling an
// associated function without an instance in scope) falls back to the
// module-level resolver, and the receiver must then be supplied
// explicitly as the call's first argument — see checkCall's symmetric
// handling of effective parameters.
func resolveCallTarget(ctx *Context, c *ast.Call) (interface{}, *types.Typed, error) {
	attr, isAttr := c.Name.(*ast.Attribute)
	if !isAttr {
		entry, err := ctx.Module.lookupFunctionEntry(c.Name)
		return entry, nil, err
	}

	if owner, err := resolveAttributeOwner(ctx, attr.Left); err == nil {
		d, ok := owner.Type.(*types.Declared)
		if !ok {
			return nil, nil, kindErr(cerrors.KND002, ctx.Module, attr, "%s is not a struct or union type", owner.Type.TypeName())
		}
		if fn, ok := d.Functions[attr.Right]; ok {
			return fn, owner, nil
		}
		if gf, ok := d.GenericFunctions[attr.Right]; ok {
			return gf, owner, nil
		}
		return nil, nil, resErr(cerrors.RES004, ctx.Module, attr, "%s has no function %s", d.TypeName(), attr.Right)
	}

	entry, err := ctx.Module.lookupFunctionEntry(c.Name)
	return entry, nil, err
}

func functionFromEntry(entry interface{}) (bool, types.Type, *types.Function) {
	switch e := entry.(type) {
	case *types.Function:
		return false, nil, e
	case *types.AssociatedFunction:
		return true, e.Receiver, e.Function
	default:
		return false, nil, nil
	}
}
