package types

import "github.com/emberlang/emberc/internal/ast"

// Typed wraps an AST node with its elaborated Type. It is the expression
// typer's output shape (spec §3.2, §6): downstream code generation reads
// Type off of every expression node in the annotated tree.
type Typed struct {
	Node ast.Node
	Type Type
}
