package checker

import (
	"github.com/emberlang/emberc/internal/ast"
	cerrors "github.com/emberlang/emberc/internal/errors"
	"github.com/emberlang/emberc/internal/types"
)

// checkBody threads ctx sequentially through each statement of body (spec
// §4.6): a VariableDeclaration extends the context with its new binding
// for the remaining statements, an If may extend the true branch with a
// guard that does not leak past the If, and nothing else changes ctx.
func checkBody(ctx *Context, body *ast.Body) error {
	for _, stmt := range body.Lines {
		var err error
		ctx, err = checkStmt(ctx, stmt)
		if err != nil {
			return err
		}
	}
	return nil
}

// checkStmt checks one statement and returns the context under which the
// following statement in the same body should be checked.
func checkStmt(ctx *Context, stmt ast.Stmt) (*Context, error) {
	switch s := stmt.(type) {
	case *ast.VariableDeclaration:
		typed, err := checkExpression(ctx, s.Value)
		if err != nil {
			return nil, err
		}
		return ctx.WithVariable(s.Name, typed.Type), nil

	case *ast.If:
		if err := checkIf(ctx, s); err != nil {
			return nil, err
		}
		return ctx, nil

	case *ast.Return:
		if err := checkReturn(ctx, s); err != nil {
			return nil, err
		}
		return ctx, nil

	case *ast.ExprStmt:
		if _, err := checkExpression(ctx, s.Expr); err != nil {
			return nil, err
		}
		return ctx, nil

	default:
		return nil, bugErr(ctx.Module, stmtPos(stmt), "unsupported statement node %T", stmt)
	}
}

// checkIf checks the condition, checks the true body under a context
// extended with the guard proven by a TestGuard condition (if any), and
// checks the false body (if present) under the unextended context (spec
// §4.5, P8: the guard never leaks past the If it was proven in).
func checkIf(ctx *Context, n *ast.If) error {
	condTyped, err := checkExpression(ctx, n.Condition)
	if err != nil {
		return err
	}
	if condTyped.Type != types.Bool {
		return typErr(cerrors.TYP002, ctx.Module, n, "if condition must be bool, got %s", condTyped.Type.TypeName())
	}

	trueCtx := ctx
	if tg, ok := n.Condition.(*ast.TestGuard); ok {
		if attr, ok := tg.Expr.(*ast.Attribute); ok {
			trueCtx = ctx.WithGuard(CanonicalKey(attr))
		}
	}
	if err := checkBody(trueCtx, n.TrueBody); err != nil {
		return err
	}

	if n.FalseBody != nil {
		if err := checkBody(ctx, n.FalseBody); err != nil {
			return err
		}
	}
	return nil
}

// checkReturn checks that the returned value (or Void, if none) is
// compatible with the enclosing function's declared return type.
func checkReturn(ctx *Context, n *ast.Return) error {
	if n.Value == nil {
		if !types.Compatible(ctx.ReturnType, types.Void) {
			return typErr(cerrors.TYP001, ctx.Module, n, "function must return %s, got void", ctx.ReturnType.TypeName())
		}
		return nil
	}
	typed, err := checkExpression(ctx, n.Value)
	if err != nil {
		return err
	}
	if !types.Compatible(ctx.ReturnType, typed.Type) {
		return typErr(cerrors.TYP001, ctx.Module, n, "function must return %s, got %s", ctx.ReturnType.TypeName(), typed.Type.TypeName())
	}
	return nil
}

// stmtPos extracts a Node to blame in diagnostics from any Stmt shape.
func stmtPos(stmt ast.Stmt) ast.Node {
	if node, ok := stmt.(ast.Node); ok {
		return node
	}
	return nil
}
