package checker

import "github.com/emberlang/emberc/internal/types"

// Context is the lexical checking scope (spec §3.2): the current module
// (borrowed, never mutated by Context itself), a chain of variable
// bindings, the active union guards, and the enclosing function's
// declared return type.
//
// A Context is an immutable, persistent value: WithVariable and WithGuard
// return a new child linked to the parent via a single pointer, so
// forking a branch (an If's true body, say) is an O(1) allocation and
// never mutates an ancestor's bindings — which is what makes "after
// checking an If, the guard set equals what it was before" (P8) hold for
// free, and what keeps a Context "cheaply copyable" per spec §3.2.
type Context struct {
	Module     *Module
	ReturnType types.Type // nil outside a function body

	parent *Context
	vars   map[string]interface{} // this level's own bindings only
	guards map[string]bool        // this level's own guard additions only
}

// WithVariable returns a child context with name bound to v (a types.Type
// for an ordinary variable, or a *Module for a dotted-import alias
// rebound locally — spec §3.2).
func (c *Context) WithVariable(name string, v interface{}) *Context {
	return &Context{
		Module:     c.Module,
		ReturnType: c.ReturnType,
		parent:     c,
		vars:       map[string]interface{}{name: v},
	}
}

// WithGuard returns a child context whose guard set additionally
// contains key (spec §4.5).
func (c *Context) WithGuard(key string) *Context {
	return &Context{
		Module:     c.Module,
		ReturnType: c.ReturnType,
		parent:     c,
		guards:     map[string]bool{key: true},
	}
}

// LookupVariable walks the context chain outward for name.
func (c *Context) LookupVariable(name string) (interface{}, bool) {
	for cur := c; cur != nil; cur = cur.parent {
		if cur.vars != nil {
			if v, ok := cur.vars[name]; ok {
				return v, true
			}
		}
	}
	return nil, false
}

// HasGuard reports whether key is in the active guard set at this point
// in the chain.
func (c *Context) HasGuard(key string) bool {
	for cur := c; cur != nil; cur = cur.parent {
		if cur.guards[key] {
			return true
		}
	}
	return false
}
