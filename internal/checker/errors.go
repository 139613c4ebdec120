package checker

import (
	"github.com/emberlang/emberc/internal/ast"
	cerrors "github.com/emberlang/emberc/internal/errors"
)

// These helpers build a *cerrors.Report for each error-kind bucket of
// spec §7, wrapped as an error. node may be nil (a handful of call sites
// — e.g. arity checks against a synthesized Subscript head — have no
// single node to blame); the line is then omitted.

func line(node ast.Node) int {
	if node == nil {
		return 0
	}
	return node.Position().Line
}

func resErr(code string, m *Module, node ast.Node, format string, args ...any) error {
	return cerrors.WrapReport(cerrors.New(code, "resolve", m.Name, line(node), format, args...))
}

func ariErr(code string, m *Module, node ast.Node, format string, args ...any) error {
	return cerrors.WrapReport(cerrors.New(code, "check", m.Name, line(node), format, args...))
}

func typErr(code string, m *Module, node ast.Node, format string, args ...any) error {
	return cerrors.WrapReport(cerrors.New(code, "type", m.Name, line(node), format, args...))
}

func kindErr(code string, m *Module, node ast.Node, format string, args ...any) error {
	return cerrors.WrapReport(cerrors.New(code, "check", m.Name, line(node), format, args...))
}

func impErr(code string, m *Module, node ast.Node, format string, args ...any) error {
	return cerrors.WrapReport(cerrors.New(code, "load", m.Name, line(node), format, args...))
}

func bugErr(m *Module, node ast.Node, format string, args ...any) error {
	rep := cerrors.New(cerrors.BUG001, "check", m.Name, line(node), format, args...)
	rep.Message = "bug(checker): " + rep.Message
	return cerrors.WrapReport(rep)
}
