package checker

import (
	"golang.org/x/text/unicode/norm"

	"github.com/emberlang/emberc/internal/ast"
)

// CanonicalKey renders an attribute path to a normalized string key used
// as a guard-set member.
//
// Spec §9 flags that guard tracking keyed by raw AST identity lets two
// syntactically equal but distinct occurrences of the same path (e.g. two
// separate *ast.Attribute nodes both rendering "v.some") fail to guard
// each other. This resolves that open issue: the key is built from the
// textual path, NFC-normalized so that two differently-composed but
// canonically identical identifiers (accented field/variable names) also
// collide as intended, instead of by pointer identity.
func CanonicalKey(node ast.Node) string {
	switch n := node.(type) {
	case *ast.Name:
		return norm.NFC.String(n.Ident)
	case *ast.Attribute:
		return CanonicalKey(n.Left) + "." + norm.NFC.String(n.Right)
	default:
		return norm.NFC.String(node.String())
	}
}
