package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberlang/emberc/internal/ast"
	cerrors "github.com/emberlang/emberc/internal/errors"
)

// writeFixture creates dir/<name>.ember for each name (content is
// irrelevant: parse is stubbed).
func writeFixture(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n+".ember"), []byte("# fixture\n"), 0o644))
	}
}

func TestResolverFindsStdlibThenSearchPath(t *testing.T) {
	stdlib := t.TempDir()
	extra := t.TempDir()
	writeFixture(t, stdlib, "list")
	writeFixture(t, extra, "util")

	r := NewResolver(stdlib, []string{extra}, ".ember")

	path, err := r.Resolve("list", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(stdlib, "list.ember"), path)

	path, err = r.Resolve("util", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(extra, "util.ember"), path)

	_, err = r.Resolve("missing", "")
	assert.Error(t, err)
}

func TestResolverPrefersRelativeToImportingFile(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "sibling")
	importing := filepath.Join(root, "main.ember")

	r := NewResolver("", nil, ".ember")
	path, err := r.Resolve("sibling", importing)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "sibling.ember"), path)
}

// cyclicParse simulates a pair of modules that import each other: "a"
// imports "b", "b" imports "a".
func cyclicParse(path string) ([]ast.TopLevel, error) {
	base := filepath.Base(path)
	switch base {
	case "a.ember":
		return []ast.TopLevel{&ast.Import{ModuleName: "b"}}, nil
	case "b.ember":
		return []ast.TopLevel{&ast.Import{ModuleName: "a"}}, nil
	default:
		return nil, nil
	}
}

func TestLoadModuleDetectsImportCycle(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "a", "b")

	r := NewResolver(dir, nil, ".ember")
	ld := NewLoader(r, cyclicParse)

	_, err := ld.LoadFile(filepath.Join(dir, "a.ember"), "a")
	require.Error(t, err)
	rep, ok := cerrors.AsReport(err)
	require.True(t, ok)
	assert.Equal(t, cerrors.IMP002, rep.Code)
}

func TestLoadModuleCachesByName(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "leaf")

	calls := 0
	parse := func(path string) ([]ast.TopLevel, error) {
		calls++
		return nil, nil
	}

	r := NewResolver(dir, nil, ".ember")
	ld := NewLoader(r, parse)

	_, err := ld.LoadModule("leaf")
	require.NoError(t, err)
	_, err = ld.LoadModule("leaf")
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "second load of the same module must hit the cache")
}
