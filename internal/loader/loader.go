package loader

import (
	"strings"

	"github.com/emberlang/emberc/internal/ast"
	"github.com/emberlang/emberc/internal/checker"
	cerrors "github.com/emberlang/emberc/internal/errors"
)

// ParseFunc parses one source file into its top-level declarations. The
// checker package assumes an external lexer/parser (out of scope for
// this module); callers supply whichever one produces ast.TopLevel
// values.
type ParseFunc func(path string) ([]ast.TopLevel, error)

// Loader implements checker.ModuleLoader: it resolves a dotted import
// name to a file, parses it, and recursively checks it, caching the
// result and detecting import cycles (spec §4.9).
type Loader struct {
	resolver *Resolver
	parse    ParseFunc

	cache       map[string]*checker.Module
	stack       []string
	currentFile string
}

// NewLoader builds a Loader. resolver controls where module names are
// looked up on disk; parse turns a resolved file into declarations.
func NewLoader(resolver *Resolver, parse ParseFunc) *Loader {
	return &Loader{resolver: resolver, parse: parse, cache: map[string]*checker.Module{}}
}

// LoadModule satisfies checker.ModuleLoader.
func (l *Loader) LoadModule(name string) (*checker.Module, error) {
	if mod, ok := l.cache[name]; ok {
		return mod, nil
	}
	for _, s := range l.stack {
		if s == name {
			chain := strings.Join(append(append([]string{}, l.stack...), name), " -> ")
			return nil, cerrors.WrapReport(cerrors.New(cerrors.IMP002, "load", name, 0, "import cycle: %s", chain))
		}
	}

	path, err := l.resolver.Resolve(name, l.currentFile)
	if err != nil {
		return nil, cerrors.WrapReport(cerrors.New(cerrors.IMP001, "load", name, 0, "%v", err))
	}
	decls, err := l.parse(path)
	if err != nil {
		return nil, cerrors.WrapReport(cerrors.New(cerrors.IMP001, "load", name, 0, "parsing %s: %v", path, err))
	}

	l.stack = append(l.stack, name)
	prevFile := l.currentFile
	l.currentFile = path
	defer func() {
		l.stack = l.stack[:len(l.stack)-1]
		l.currentFile = prevFile
	}()

	mod := checker.NewModule(name)
	if err := checker.CheckFile(mod, decls, l); err != nil {
		return nil, err
	}
	l.cache[name] = mod
	return mod, nil
}

// LoadFile checks an already-resolved entry-point file directly (the
// root of a check run, as opposed to a name reached through an Import
// node), under the given module name.
func (l *Loader) LoadFile(path, name string) (*checker.Module, error) {
	decls, err := l.parse(path)
	if err != nil {
		return nil, cerrors.WrapReport(cerrors.New(cerrors.IMP001, "load", name, 0, "parsing %s: %v", path, err))
	}
	l.stack = append(l.stack, name)
	l.currentFile = path
	defer func() {
		l.stack = l.stack[:len(l.stack)-1]
	}()

	mod := checker.NewModule(name)
	if err := checker.CheckFile(mod, decls, l); err != nil {
		return nil, err
	}
	l.cache[name] = mod
	return mod, nil
}
