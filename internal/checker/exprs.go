package checker

import (
	"github.com/emberlang/emberc/internal/ast"
	cerrors "github.com/emberlang/emberc/internal/errors"
	"github.com/emberlang/emberc/internal/types"
)

var logicalOps = map[string]bool{
	"&&": true, "||": true,
	"==": true, "!=": true,
	"<": true, "<=": true, ">": true, ">=": true,
}

var numericOps = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true,
}

// checkExpression assigns a type to every expression AST node, producing
// an annotated node (spec §4.4, component D).
func checkExpression(ctx *Context, e ast.Expr) (*types.Typed, error) {
	switch n := e.(type) {
	case *ast.Literal:
		return checkLiteral(ctx, n)
	case *ast.Name:
		return checkName(ctx, n)
	case *ast.Attribute:
		return checkAttribute(ctx, n)
	case *ast.Subscript:
		t, err := ctx.Module.ImportType(n)
		if err != nil {
			return nil, err
		}
		return &types.Typed{Node: n, Type: t}, nil
	case *ast.StructLiteral:
		return checkStructLiteral(ctx, n)
	case *ast.Call:
		return checkCall(ctx, n)
	case *ast.UnaryOperator:
		return checkUnary(ctx, n)
	case *ast.BinaryOperator:
		return checkBinary(ctx, n)
	case *ast.TestGuard:
		return checkTestGuard(ctx, n)
	default:
		return nil, bugErr(ctx.Module, e, "unsupported expression node %T", e)
	}
}

func checkLiteral(ctx *Context, l *ast.Literal) (*types.Typed, error) {
	switch l.Kind {
	case ast.IntLiteral:
		return &types.Typed{Node: l, Type: types.Int}, nil
	case ast.FloatLiteral:
		return &types.Typed{Node: l, Type: types.Float}, nil
	case ast.StrLiteral:
		return &types.Typed{Node: l, Type: types.Str}, nil
	default:
		return nil, bugErr(ctx.Module, l, "unsupported literal kind %v", l.Kind)
	}
}

func checkName(ctx *Context, n *ast.Name) (*types.Typed, error) {
	v, ok := ctx.LookupVariable(n.Ident)
	if !ok {
		return nil, resErr(cerrors.RES002, ctx.Module, n, "%s is not a variable in scope", n.Ident)
	}
	t, ok := v.(types.Type)
	if !ok {
		return nil, kindErr(cerrors.KND002, ctx.Module, n, "%s names an imported module, not a value", n.Ident)
	}
	return &types.Typed{Node: n, Type: t}, nil
}

// checkAttribute implements §4.1's Context resolution order for
// Attribute(L, R) together with §4.5's union-guard gate.
func checkAttribute(ctx *Context, a *ast.Attribute) (*types.Typed, error) {
	owner, err := resolveAttributeOwner(ctx, a.Left)
	if err != nil {
		return nil, err
	}
	d, ok := owner.Type.(*types.Declared)
	if !ok {
		return nil, kindErr(cerrors.KND002, ctx.Module, a, "%s is not a struct or union type", owner.Type.TypeName())
	}
	field, ok := d.Field(a.Right)
	if !ok {
		return nil, resErr(cerrors.RES004, ctx.Module, a, "%s has no field %s", d.TypeName(), a.Right)
	}
	if d.Kind == types.UnionKind {
		key := CanonicalKey(a)
		if !ctx.HasGuard(key) {
			return nil, kindErr(cerrors.KND003, ctx.Module, a, "accessing union field %s directly is not allowed", a.String())
		}
	}
	return &types.Typed{Node: a, Type: field.Type}, nil
}

// resolveAttributeOwner resolves the left-hand side of an Attribute as a
// value: a nested Attribute recurses (step 1), a bound variable is read
// directly (step 2). There is no further module-level fallback here: this
// language has no first-class function/module values, so a left side
// that is neither a nested attribute path nor a variable is a resolution
// error, not a module-resolver fallthrough (see DESIGN.md).
func resolveAttributeOwner(ctx *Context, left ast.Node) (*types.Typed, error) {
	switch l := left.(type) {
	case *ast.Attribute:
		return checkAttribute(ctx, l)
	case *ast.Name:
		v, ok := ctx.LookupVariable(l.Ident)
		if !ok {
			return nil, resErr(cerrors.RES002, ctx.Module, l, "%s is not a variable in scope", l.Ident)
		}
		t, ok := v.(types.Type)
		if !ok {
			return nil, resErr(cerrors.RES006, ctx.Module, l, "%s is an imported module, not a value with fields", l.Ident)
		}
		return &types.Typed{Node: l, Type: t}, nil
	default:
		return nil, resErr(cerrors.RES006, ctx.Module, left, "left of %q is neither a variable nor an attribute path", left.String())
	}
}

func checkStructLiteral(ctx *Context, s *ast.StructLiteral) (*types.Typed, error) {
	t, err := ctx.Module.ImportType(s.Name)
	if err != nil {
		return nil, err
	}
	d, ok := t.(*types.Declared)
	if !ok {
		return nil, kindErr(cerrors.KND002, ctx.Module, s, "%s is not a struct or union type", t.TypeName())
	}

	if d.Kind == types.UnionKind {
		if len(s.Arguments) != 1 {
			return nil, ariErr(cerrors.ARI003, ctx.Module, s, "union literal %s takes exactly one argument, got %d", d.TypeName(), len(s.Arguments))
		}
		argTyped, err := checkExpression(ctx, s.Arguments[0])
		if err != nil {
			return nil, err
		}
		for _, f := range d.Fields {
			if types.Compatible(f.Type, argTyped.Type) {
				return &types.Typed{Node: s, Type: d}, nil
			}
		}
		return nil, typErr(cerrors.TYP003, ctx.Module, s, "no arm of union %s is compatible with %s", d.TypeName(), argTyped.Type.TypeName())
	}

	if len(s.Arguments) != len(d.Fields) {
		return nil, ariErr(cerrors.ARI002, ctx.Module, s, "struct literal %s expects %d field(s), got %d", d.TypeName(), len(d.Fields), len(s.Arguments))
	}
	for i, f := range d.Fields {
		argTyped, err := checkExpression(ctx, s.Arguments[i])
		if err != nil {
			return nil, err
		}
		if !types.Compatible(f.Type, argTyped.Type) {
			return nil, typErr(cerrors.TYP001, ctx.Module, s, "field %s of %s expects %s, got %s", f.Name, d.TypeName(), f.Type.TypeName(), argTyped.Type.TypeName())
		}
	}
	return &types.Typed{Node: s, Type: d}, nil
}

func checkUnary(ctx *Context, u *ast.UnaryOperator) (*types.Typed, error) {
	if u.Op != "&" {
		return nil, bugErr(ctx.Module, u, "operator %q not implemented", u.Op)
	}
	inner, err := checkExpression(ctx, u.Expr)
	if err != nil {
		return nil, err
	}
	return &types.Typed{Node: u, Type: ctx.Module.instantiatePtr(inner.Type)}, nil
}

func checkBinary(ctx *Context, b *ast.BinaryOperator) (*types.Typed, error) {
	l, err := checkExpression(ctx, b.Left)
	if err != nil {
		return nil, err
	}
	r, err := checkExpression(ctx, b.Right)
	if err != nil {
		return nil, err
	}
	if !types.Compatible(l.Type, r.Type) {
		return nil, typErr(cerrors.TYP002, ctx.Module, b, "operands of %s are not compatible: %s vs %s", b.Op, l.Type.TypeName(), r.Type.TypeName())
	}
	if logicalOps[b.Op] {
		return &types.Typed{Node: b, Type: types.Bool}, nil
	}
	if numericOps[b.Op] {
		return &types.Typed{Node: b, Type: l.Type}, nil
	}
	return nil, bugErr(ctx.Module, b, "operator %q not implemented", b.Op)
}

func checkTestGuard(ctx *Context, t *ast.TestGuard) (*types.Typed, error) {
	// The wrapped expression is what proves the guard; requiring the
	// guard to already be active here would make it impossible to ever
	// establish. If it is an attribute access, type its owner and field
	// directly, skipping the guard check this once (spec §4.5).
	if attr, ok := t.Expr.(*ast.Attribute); ok {
		if _, err := checkAttributeIgnoringGuard(ctx, attr); err != nil {
			return nil, err
		}
		return &types.Typed{Node: t, Type: types.Bool}, nil
	}
	if _, err := checkExpression(ctx, t.Expr); err != nil {
		return nil, err
	}
	return &types.Typed{Node: t, Type: types.Bool}, nil
}

func checkAttributeIgnoringGuard(ctx *Context, a *ast.Attribute) (*types.Typed, error) {
	owner, err := resolveAttributeOwner(ctx, a.Left)
	if err != nil {
		return nil, err
	}
	d, ok := owner.Type.(*types.Declared)
	if !ok {
		return nil, kindErr(cerrors.KND002, ctx.Module, a, "%s is not a struct or union type", owner.Type.TypeName())
	}
	field, ok := d.Field(a.Right)
	if !ok {
		return nil, resErr(cerrors.RES004, ctx.Module, a, "%s has no field %s", d.TypeName(), a.Right)
	}
	return &types.Typed{Node: a, Type: field.Type}, nil
}
