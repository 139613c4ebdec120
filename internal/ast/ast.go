// Package ast defines the node kinds consumed by the checker.
//
// These shapes are assumed to be produced by an external lexer/parser; this
// package only names what the checker needs to traverse and re-render for
// diagnostics. Every node carries a source Pos and knows how to render
// itself, matching what upstream diagnostics require.
package ast

import (
	"fmt"
	"strings"
)

// Pos is a source position. Only the line is meaningful to the checker;
// the parser may populate more but the checker only ever reads Line.
type Pos struct {
	Line int
}

// Node is the base interface implemented by every AST shape the checker
// consumes, expression or declaration alike.
type Node interface {
	Position() Pos
	String() string
}

// Expr is implemented by nodes that can appear where a value is expected.
type Expr interface {
	Node
	exprNode()
}

// TopLevel is implemented by the declarations that may appear at module
// scope: Import, StructDeclaration, UnionDeclaration, Extern,
// FunctionDeclaration.
type TopLevel interface {
	Node
	topLevelNode()
}

// Stmt is implemented by the nodes that may appear inside a Body.
type Stmt interface {
	Node
	stmtNode()
}

// Name is a bare identifier. It is used both as an expression (variable
// reference) and as a type hint (reference to a declared or primitive
// type), disambiguated by the position it occurs in.
type Name struct {
	Ident string
	Line  int
}

func (n *Name) Position() Pos  { return Pos{n.Line} }
func (n *Name) String() string { return n.Ident }
func (n *Name) exprNode()      {}

// Attribute is dotted access: Left.Right. Depending on what Left resolves
// to, this doubles as qualified module access, struct/union field access,
// or associated-function lookup.
type Attribute struct {
	Left  Node
	Right string
	Line  int
}

func (a *Attribute) Position() Pos  { return Pos{a.Line} }
func (a *Attribute) String() string { return fmt.Sprintf("%s.%s", a.Left.String(), a.Right) }
func (a *Attribute) exprNode()      {}

// Subscript is a parameterized reference: Head[Items...]. Used for generic
// type instantiation (Box[int]) and generic function calls with explicit
// type arguments (id[int]).
type Subscript struct {
	Head  Node
	Items []Node
	Line  int
}

func (s *Subscript) Position() Pos { return Pos{s.Line} }
func (s *Subscript) String() string {
	items := make([]string, len(s.Items))
	for i, it := range s.Items {
		items[i] = it.String()
	}
	return fmt.Sprintf("%s[%s]", s.Head.String(), strings.Join(items, ", "))
}
func (s *Subscript) exprNode() {}

// LiteralKind discriminates Literal.Value's dynamic type.
type LiteralKind int

const (
	IntLiteral LiteralKind = iota
	FloatLiteral
	StrLiteral
)

// Literal is a constant of primitive type.
type Literal struct {
	Kind  LiteralKind
	Value interface{}
	Line  int
}

func (l *Literal) Position() Pos { return Pos{l.Line} }
func (l *Literal) String() string {
	if l.Kind == StrLiteral {
		return fmt.Sprintf("%q", l.Value)
	}
	return fmt.Sprintf("%v", l.Value)
}
func (l *Literal) exprNode() {}

// StructLiteral constructs a struct or union value: Name{Arguments...}.
type StructLiteral struct {
	Name      Node
	Arguments []Expr
	Line      int
}

func (s *StructLiteral) Position() Pos { return Pos{s.Line} }
func (s *StructLiteral) String() string {
	args := make([]string, len(s.Arguments))
	for i, a := range s.Arguments {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s{%s}", s.Name.String(), strings.Join(args, ", "))
}
func (s *StructLiteral) exprNode() {}

// Call is a function call, optionally with explicit generic type arguments.
// Generic is nil when the call has none.
type Call struct {
	Name      Node
	Arguments []Expr
	Generic   []Node
	Line      int
}

func (c *Call) Position() Pos { return Pos{c.Line} }
func (c *Call) String() string {
	args := make([]string, len(c.Arguments))
	for i, a := range c.Arguments {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Name.String(), strings.Join(args, ", "))
}
func (c *Call) exprNode() {}

// UnaryOperator is a prefix operator applied to a single operand.
type UnaryOperator struct {
	Op   string
	Expr Expr
	Line int
}

func (u *UnaryOperator) Position() Pos  { return Pos{u.Line} }
func (u *UnaryOperator) String() string { return u.Op + u.Expr.String() }
func (u *UnaryOperator) exprNode()      {}

// BinaryOperator is an infix operator applied to two operands.
type BinaryOperator struct {
	Op    string
	Left  Expr
	Right Expr
	Line  int
}

func (b *BinaryOperator) Position() Pos { return Pos{b.Line} }
func (b *BinaryOperator) String() string {
	return fmt.Sprintf("%s %s %s", b.Left.String(), b.Op, b.Right.String())
}
func (b *BinaryOperator) exprNode() {}

// TestGuard wraps an expression that, when used as an If condition, proves
// the wrapped attribute access for the duration of the true branch.
type TestGuard struct {
	Expr Expr
	Line int
}

func (t *TestGuard) Position() Pos  { return Pos{t.Line} }
func (t *TestGuard) String() string { return fmt.Sprintf("test(%s)", t.Expr.String()) }
func (t *TestGuard) exprNode()      {}

// VariableDeclaration introduces a lexically scoped binding.
type VariableDeclaration struct {
	Name  string
	Value Expr
	Line  int
}

func (v *VariableDeclaration) Position() Pos { return Pos{v.Line} }
func (v *VariableDeclaration) String() string {
	return fmt.Sprintf("let %s = %s", v.Name, v.Value.String())
}
func (v *VariableDeclaration) stmtNode() {}

// Body is an ordered sequence of statements.
type Body struct {
	Lines []Stmt
}

func (b *Body) Position() Pos {
	if len(b.Lines) == 0 {
		return Pos{}
	}
	return b.Lines[0].Position()
}
func (b *Body) String() string {
	lines := make([]string, len(b.Lines))
	for i, l := range b.Lines {
		lines[i] = l.String()
	}
	return strings.Join(lines, "\n")
}

// If is a conditional statement. FalseBody is nil when there is no else.
type If struct {
	Condition Expr
	TrueBody  *Body
	FalseBody *Body
	Line      int
}

func (i *If) Position() Pos  { return Pos{i.Line} }
func (i *If) String() string { return fmt.Sprintf("if %s { ... }", i.Condition.String()) }
func (i *If) stmtNode()      {}

// Return exits a function body with a value.
type Return struct {
	Value Expr
	Line  int
}

func (r *Return) Position() Pos  { return Pos{r.Line} }
func (r *Return) String() string { return fmt.Sprintf("return %s", r.Value.String()) }
func (r *Return) stmtNode()      {}

// An expression may itself appear as a statement (e.g. a bare Call for
// side effects).
type ExprStmt struct {
	Expr Expr
}

func (e *ExprStmt) Position() Pos  { return e.Expr.Position() }
func (e *ExprStmt) String() string { return e.Expr.String() }
func (e *ExprStmt) stmtNode()      {}

// Import names another compilation unit by dotted module path.
type Import struct {
	ModuleName string
	Line       int
}

func (i *Import) Position() Pos  { return Pos{i.Line} }
func (i *Import) String() string { return fmt.Sprintf("import %s", i.ModuleName) }
func (i *Import) topLevelNode()  {}

// FieldDecl is one field of a struct/union declaration: name plus
// unresolved type hint.
type FieldDecl struct {
	Name string
	Hint Node
}

// StructDeclaration declares a product type, optionally generic.
type StructDeclaration struct {
	Name    string
	Generic []string
	Fields  []FieldDecl
	Line    int
}

func (s *StructDeclaration) Position() Pos  { return Pos{s.Line} }
func (s *StructDeclaration) String() string { return fmt.Sprintf("struct %s", s.Name) }
func (s *StructDeclaration) topLevelNode()  {}

// UnionDeclaration declares a sum type, optionally generic. Shape mirrors
// StructDeclaration; the union tag changes only the checker's semantics
// (§4.5 guard rule), not the AST shape.
type UnionDeclaration struct {
	Name    string
	Generic []string
	Fields  []FieldDecl
	Line    int
}

func (u *UnionDeclaration) Position() Pos  { return Pos{u.Line} }
func (u *UnionDeclaration) String() string { return fmt.Sprintf("union %s", u.Name) }
func (u *UnionDeclaration) topLevelNode()  {}

// Param is one parameter of a FunctionHead.
type Param struct {
	Name string
	Hint Node
}

// FunctionHead is the signature shared by Extern and FunctionDeclaration.
// Name is a *Name for a plain function or an *Attribute (Receiver.Method)
// for an associated function.
type FunctionHead struct {
	Name       Node
	Parameters []Param
	ReturnHint Node
	Generic    []string
	Line       int
}

func (f *FunctionHead) Position() Pos { return Pos{f.Line} }
func (f *FunctionHead) String() string {
	params := make([]string, len(f.Parameters))
	for i, p := range f.Parameters {
		params[i] = p.Name
	}
	return fmt.Sprintf("fn %s(%s)", f.Name.String(), strings.Join(params, ", "))
}

// IsDotted reports whether the head names a receiver-qualified function.
func (f *FunctionHead) IsDotted() bool {
	_, ok := f.Name.(*Attribute)
	return ok
}

// Extern declares a function with no body, implemented elsewhere.
type Extern struct {
	Head *FunctionHead
	Line int
}

func (e *Extern) Position() Pos  { return Pos{e.Line} }
func (e *Extern) String() string { return fmt.Sprintf("extern %s", e.Head.String()) }
func (e *Extern) topLevelNode()  {}

// FunctionDeclaration declares a full function with a body.
type FunctionDeclaration struct {
	Head *FunctionHead
	Body *Body
	Line int
}

func (f *FunctionDeclaration) Position() Pos  { return Pos{f.Line} }
func (f *FunctionDeclaration) String() string { return f.Head.String() }
func (f *FunctionDeclaration) topLevelNode()  {}
