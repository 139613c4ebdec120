// Package loader resolves dotted import paths to source files and drives
// checker.CheckFile recursively, detecting import cycles (spec §4.9).
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Resolver turns a dotted module name (e.g. "collections.list") into a
// source file path, searching relative to the importing file's directory
// first, then the configured standard-library path, then any extra
// search paths (spec §4.9).
type Resolver struct {
	StdlibPath  string
	SearchPaths []string
	Extension   string
}

// NewResolver builds a Resolver with the given standard-library root and
// extra search paths. ext is the source file extension, including the
// leading dot (e.g. ".ember").
func NewResolver(stdlibPath string, searchPaths []string, ext string) *Resolver {
	return &Resolver{StdlibPath: stdlibPath, SearchPaths: searchPaths, Extension: ext}
}

// Resolve finds the source file for name, given the absolute path of the
// file containing the importing Import node (may be "" for a root load
// with no relative context).
func (r *Resolver) Resolve(name string, fromFile string) (string, error) {
	rel := filepath.Join(strings.Split(name, ".")...) + r.Extension

	candidates := make([]string, 0, 2+len(r.SearchPaths))
	if fromFile != "" {
		candidates = append(candidates, filepath.Join(filepath.Dir(fromFile), rel))
	}
	if r.StdlibPath != "" {
		candidates = append(candidates, filepath.Join(r.StdlibPath, rel))
	}
	for _, sp := range r.SearchPaths {
		candidates = append(candidates, filepath.Join(sp, rel))
	}

	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, nil
		}
	}
	return "", fmt.Errorf("module %q not found (tried %s)", name, strings.Join(candidates, ", "))
}
