// Command emberc drives the checker library against a module and prints
// its diagnostics. It is a thin shell: all semantics live in
// internal/checker; this file only wires together config, the loader,
// and colored output (spec.md's "out of scope: output printing" is kept
// entirely out of the checker packages).
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/emberlang/emberc/internal/ast"
	"github.com/emberlang/emberc/internal/checker"
	cerrors "github.com/emberlang/emberc/internal/errors"
	"github.com/emberlang/emberc/internal/loader"
)

func main() {
	cfg, err := loadConfig("emberc.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "emberc: reading config: %v\n", err)
		os.Exit(2)
	}

	printer := newPrinter(isatty.IsTerminal(os.Stdout.Fd()))

	args := os.Args[1:]
	if len(args) == 0 || args[0] == "-demo" {
		runDemo(printer)
		return
	}

	resolver := loader.NewResolver(cfg.StdlibPath, cfg.SearchPaths, cfg.Extension)
	ld := loader.NewLoader(resolver, unavailableParser)
	if _, err := ld.LoadFile(args[0], args[0]); err != nil {
		printer.report(err)
		os.Exit(1)
	}
	printer.ok(args[0])
}

// unavailableParser stands in for the external lexer/parser spec.md
// places out of scope: emberc only demonstrates the checker against a
// built-in fixture (-demo) until a real front end is wired in.
func unavailableParser(path string) ([]ast.TopLevel, error) {
	return nil, fmt.Errorf("no source parser is configured; run emberc with no arguments for the built-in demo")
}

// runDemo builds a small fixture module by hand — a generic Box[T]
// struct, a generic makeBox[T] function returning a Box[T], and a plain
// function that calls makeBox with two different type arguments — and
// checks it, so the checker's behavior can be observed without a real
// front end.
func runDemo(p *printer) {
	decls := demoFixture()
	mod := checker.NewModule("demo")
	if err := checker.CheckFile(mod, decls, noImports{}); err != nil {
		p.report(err)
		os.Exit(1)
	}
	p.ok("demo (built-in fixture)")
}

type noImports struct{}

func (noImports) LoadModule(name string) (*checker.Module, error) {
	return nil, fmt.Errorf("demo fixture declares no imports, but one was requested: %s", name)
}

func demoFixture() []ast.TopLevel {
	boxField := ast.FieldDecl{Name: "value", Hint: &ast.Name{Ident: "T"}}
	boxDecl := &ast.StructDeclaration{
		Name:    "Box",
		Generic: []string{"T"},
		Fields:  []ast.FieldDecl{boxField},
	}

	makeBox := &ast.FunctionDeclaration{
		Head: &ast.FunctionHead{
			Name:       &ast.Name{Ident: "makeBox"},
			Generic:    []string{"T"},
			Parameters: []ast.Param{{Name: "v", Hint: &ast.Name{Ident: "T"}}},
			ReturnHint: &ast.Subscript{
				Head:  &ast.Name{Ident: "Box"},
				Items: []ast.Node{&ast.Name{Ident: "T"}},
			},
		},
		Body: &ast.Body{
			Lines: []ast.Stmt{
				&ast.Return{Value: &ast.StructLiteral{
					Name:      &ast.Subscript{Head: &ast.Name{Ident: "Box"}, Items: []ast.Node{&ast.Name{Ident: "T"}}},
					Arguments: []ast.Expr{&ast.Name{Ident: "v"}},
				}},
			},
		},
	}

	useBoxes := &ast.FunctionDeclaration{
		Head: &ast.FunctionHead{
			Name: &ast.Name{Ident: "useBoxes"},
		},
		Body: &ast.Body{
			Lines: []ast.Stmt{
				&ast.VariableDeclaration{
					Name: "ints",
					Value: &ast.Call{
						Name:      &ast.Name{Ident: "makeBox"},
						Generic:   []ast.Node{&ast.Name{Ident: "int"}},
						Arguments: []ast.Expr{&ast.Literal{Kind: ast.IntLiteral, Value: 1}},
					},
				},
				&ast.VariableDeclaration{
					Name: "strs",
					Value: &ast.Call{
						Name:      &ast.Name{Ident: "makeBox"},
						Generic:   []ast.Node{&ast.Name{Ident: "str"}},
						Arguments: []ast.Expr{&ast.Literal{Kind: ast.StrLiteral, Value: "hi"}},
					},
				},
				&ast.Return{},
			},
		},
	}

	return []ast.TopLevel{boxDecl, makeBox, useBoxes}
}

type printer struct {
	c *color.Color
	d *color.Color
}

func newPrinter(tty bool) *printer {
	c := color.New(color.FgRed, color.Bold)
	d := color.New(color.FgHiBlack)
	c.EnableColor()
	d.EnableColor()
	if !tty {
		c.DisableColor()
		d.DisableColor()
	}
	return &printer{c: c, d: d}
}

func (p *printer) ok(what string) {
	fmt.Printf("%s: no errors\n", what)
}

func (p *printer) report(err error) {
	rep, ok := cerrors.AsReport(err)
	if !ok {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	p.d.Fprintf(os.Stderr, "[%s] ", rep.Code)
	p.c.Fprintf(os.Stderr, "%s", rep.Message)
	fmt.Fprintf(os.Stderr, " (module %s:%d)\n", rep.Module, rep.Line)
}
