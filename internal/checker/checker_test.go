package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberlang/emberc/internal/ast"
	cerrors "github.com/emberlang/emberc/internal/errors"
	"github.com/emberlang/emberc/internal/types"
)

type noImports struct{}

func (noImports) LoadModule(name string) (*Module, error) {
	return nil, assertUnreachable(name)
}

func assertUnreachable(name string) error {
	panic("no imports expected, got request for " + name)
}

func checkCodeOf(t *testing.T, err error) string {
	t.Helper()
	rep, ok := cerrors.AsReport(err)
	require.True(t, ok, "expected a *errors.Report, got %v", err)
	return rep.Code
}

func pointDecl() *ast.StructDeclaration {
	return &ast.StructDeclaration{
		Name: "Point",
		Fields: []ast.FieldDecl{
			{Name: "x", Hint: &ast.Name{Ident: "int"}},
			{Name: "y", Hint: &ast.Name{Ident: "int"}},
		},
	}
}

func TestStructLiteralHappyPath(t *testing.T) {
	decls := []ast.TopLevel{pointDecl()}
	m := NewModule("main")
	require.NoError(t, CheckFile(m, decls, noImports{}))

	ctx := &Context{Module: m}
	lit := &ast.StructLiteral{
		Name: &ast.Name{Ident: "Point"},
		Arguments: []ast.Expr{
			&ast.Literal{Kind: ast.IntLiteral, Value: 1},
			&ast.Literal{Kind: ast.IntLiteral, Value: 2},
		},
	}
	typed, err := checkExpression(ctx, lit)
	require.NoError(t, err)
	assert.Equal(t, "Point", typed.Type.TypeName())
}

func TestStructLiteralArityError(t *testing.T) {
	decls := []ast.TopLevel{pointDecl()}
	m := NewModule("main")
	require.NoError(t, CheckFile(m, decls, noImports{}))

	ctx := &Context{Module: m}
	lit := &ast.StructLiteral{
		Name:      &ast.Name{Ident: "Point"},
		Arguments: []ast.Expr{&ast.Literal{Kind: ast.IntLiteral, Value: 1}},
	}
	_, err := checkExpression(ctx, lit)
	require.Error(t, err)
	assert.Equal(t, cerrors.ARI002, checkCodeOf(t, err))
}

func TestNonGenericForwardReferenceRejected(t *testing.T) {
	declA := &ast.StructDeclaration{
		Name:   "A",
		Fields: []ast.FieldDecl{{Name: "b", Hint: &ast.Name{Ident: "B"}}},
	}
	declB := &ast.StructDeclaration{
		Name:   "B",
		Fields: []ast.FieldDecl{{Name: "x", Hint: &ast.Name{Ident: "int"}}},
	}
	m := NewModule("main")
	err := CheckFile(m, []ast.TopLevel{declA, declB}, noImports{})
	require.Error(t, err)
	assert.Equal(t, cerrors.RES001, checkCodeOf(t, err))
}

func unionDecl() *ast.UnionDeclaration {
	return &ast.UnionDeclaration{
		Name: "Shape",
		Fields: []ast.FieldDecl{
			{Name: "circle", Hint: &ast.Name{Ident: "int"}},
			{Name: "square", Hint: &ast.Name{Ident: "float"}},
		},
	}
}

func TestUnionAccessRequiresGuard(t *testing.T) {
	decls := []ast.TopLevel{unionDecl()}
	m := NewModule("main")
	require.NoError(t, CheckFile(m, decls, noImports{}))

	shape := m.Types["Shape"].(*types.Declared)
	ctx := &Context{Module: m, vars: map[string]interface{}{"s": types.Type(shape)}}

	access := &ast.Attribute{Left: &ast.Name{Ident: "s"}, Right: "circle"}
	_, err := checkExpression(ctx, access)
	require.Error(t, err)
	assert.Equal(t, cerrors.KND003, checkCodeOf(t, err))

	guarded := ctx.WithGuard(CanonicalKey(access))
	typed, err := checkExpression(guarded, access)
	require.NoError(t, err)
	assert.Same(t, types.Int, typed.Type)
}

func TestGuardDoesNotLeakPastIf(t *testing.T) {
	decls := []ast.TopLevel{unionDecl()}
	m := NewModule("main")
	require.NoError(t, CheckFile(m, decls, noImports{}))

	shape := m.Types["Shape"].(*types.Declared)
	access := &ast.Attribute{Left: &ast.Name{Ident: "s"}, Right: "circle"}

	body := &ast.Body{
		Lines: []ast.Stmt{
			&ast.If{
				Condition: &ast.TestGuard{Expr: access},
				TrueBody:  &ast.Body{Lines: []ast.Stmt{&ast.ExprStmt{Expr: access}}},
			},
			&ast.ExprStmt{Expr: access},
		},
	}

	ctx := &Context{Module: m, ReturnType: types.Void, vars: map[string]interface{}{"s": types.Type(shape)}}
	err := checkBody(ctx, body)
	require.Error(t, err)
	assert.Equal(t, cerrors.KND003, checkCodeOf(t, err))
}

func boxGenericDecl() *ast.StructDeclaration {
	return &ast.StructDeclaration{
		Name:    "Box",
		Generic: []string{"T"},
		Fields:  []ast.FieldDecl{{Name: "value", Hint: &ast.Name{Ident: "T"}}},
	}
}

func TestGenericMonomorphizationMemoizes(t *testing.T) {
	decls := []ast.TopLevel{boxGenericDecl()}
	m := NewModule("main")
	require.NoError(t, CheckFile(m, decls, noImports{}))

	hint := &ast.Subscript{Head: &ast.Name{Ident: "Box"}, Items: []ast.Node{&ast.Name{Ident: "int"}}}
	t1, err := m.ImportType(hint)
	require.NoError(t, err)
	t2, err := m.ImportType(hint)
	require.NoError(t, err)

	assert.Same(t, t1, t2, "instantiating Box[int] twice must return the cached instance")

	otherHint := &ast.Subscript{Head: &ast.Name{Ident: "Box"}, Items: []ast.Node{&ast.Name{Ident: "float"}}}
	t3, err := m.ImportType(otherHint)
	require.NoError(t, err)
	assert.False(t, t1.Equals(t3))
}

func TestRecursiveGenericSelfReference(t *testing.T) {
	node := &ast.StructDeclaration{
		Name:    "Node",
		Generic: []string{"T"},
		Fields: []ast.FieldDecl{
			{Name: "value", Hint: &ast.Name{Ident: "T"}},
			{Name: "next", Hint: &ast.Subscript{
				Head:  &ast.Name{Ident: "ptr"},
				Items: []ast.Node{&ast.Subscript{Head: &ast.Name{Ident: "Node"}, Items: []ast.Node{&ast.Name{Ident: "T"}}}},
			}},
		},
	}
	m := NewModule("main")
	require.NoError(t, CheckFile(m, []ast.TopLevel{node}, noImports{}))

	hint := &ast.Subscript{Head: &ast.Name{Ident: "Node"}, Items: []ast.Node{&ast.Name{Ident: "int"}}}
	inst, err := m.ImportType(hint)
	require.NoError(t, err)
	d := inst.(*types.Declared)
	nextField, ok := d.Field("next")
	require.True(t, ok)
	ptrNode := nextField.Type.(*types.Declared)
	assert.Equal(t, "ptr[Node[int]]", ptrNode.TypeName())
}

func TestAssociatedCallInjectsReceiver(t *testing.T) {
	point := pointDecl()
	sumFn := &ast.FunctionDeclaration{
		Head: &ast.FunctionHead{
			Name:       &ast.Attribute{Left: &ast.Name{Ident: "Point"}, Right: "sum"},
			ReturnHint: &ast.Name{Ident: "int"},
		},
		Body: &ast.Body{
			Lines: []ast.Stmt{
				&ast.Return{Value: &ast.BinaryOperator{
					Op:    "+",
					Left:  &ast.Attribute{Left: &ast.Name{Ident: "self"}, Right: "x"},
					Right: &ast.Attribute{Left: &ast.Name{Ident: "self"}, Right: "y"},
				}},
			},
		},
	}
	m := NewModule("main")
	require.NoError(t, CheckFile(m, []ast.TopLevel{point, sumFn}, noImports{}))

	pointType := m.Types["Point"].(*types.Declared)
	ctx := &Context{Module: m, vars: map[string]interface{}{"p": types.Type(pointType)}}

	call := &ast.Call{Name: &ast.Attribute{Left: &ast.Name{Ident: "p"}, Right: "sum"}}
	typed, err := checkExpression(ctx, call)
	require.NoError(t, err)
	assert.Same(t, types.Int, typed.Type)
}

func TestGenericFunctionRequiresExplicitTypeArgs(t *testing.T) {
	m := NewModule("main")
	identity := &ast.FunctionDeclaration{
		Head: &ast.FunctionHead{
			Name:       &ast.Name{Ident: "identity"},
			Generic:    []string{"T"},
			Parameters: []ast.Param{{Name: "v", Hint: &ast.Name{Ident: "T"}}},
			ReturnHint: &ast.Name{Ident: "T"},
		},
		Body: &ast.Body{Lines: []ast.Stmt{&ast.Return{Value: &ast.Name{Ident: "v"}}}},
	}
	require.NoError(t, CheckFile(m, []ast.TopLevel{identity}, noImports{}))

	ctx := &Context{Module: m}
	call := &ast.Call{Name: &ast.Name{Ident: "identity"}, Arguments: []ast.Expr{&ast.Literal{Kind: ast.IntLiteral, Value: 1}}}
	_, err := checkExpression(ctx, call)
	require.Error(t, err)
	assert.Equal(t, cerrors.KND001, checkCodeOf(t, err))

	call.Generic = []ast.Node{&ast.Name{Ident: "int"}}
	typed, err := checkExpression(ctx, call)
	require.NoError(t, err)
	assert.Same(t, types.Int, typed.Type)
}
