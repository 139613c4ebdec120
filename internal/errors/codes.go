// Package errors provides the checker's structured diagnostic model.
//
// Every checker failure is returned as a *Report rather than a bare error
// string, so a caller (the loader, a CLI, a test) can inspect the code,
// phase, and module without parsing prose.
package errors

// Error code constants grouped by the error-kind taxonomy of the checker
// (resolution, arity, type mismatch, kind, import, internal bug).
const (
	// Resolution errors: unknown type, variable, function, import, field,
	// or module alias.
	RES001 = "RES001" // unknown type
	RES002 = "RES002" // unknown variable
	RES003 = "RES003" // unknown function
	RES004 = "RES004" // unknown field
	RES005 = "RES005" // unknown module alias
	RES006 = "RES006" // left of "." is not a type, variable, or module

	// Arity errors: call, struct literal, union literal, ptr subscript.
	ARI001 = "ARI001" // call argument count mismatch
	ARI002 = "ARI002" // struct literal field count mismatch
	ARI003 = "ARI003" // union literal must have exactly one argument
	ARI004 = "ARI004" // ptr subscript must have exactly one type argument

	// Type mismatch errors: argument/field/return, operator/condition,
	// union-arm.
	TYP001 = "TYP001" // argument, struct-literal field, or return value not compatible with the declared type
	TYP002 = "TYP002" // operand types not compatible, or an if condition that is not bool
	TYP003 = "TYP003" // no union arm compatible with the literal's argument

	// Kind errors: generic used bare, non-generic used with arguments or a
	// value of the wrong kind, unguarded union field access, generic
	// instantiation arity.
	KND001 = "KND001" // generic function/type requires explicit type arguments
	KND002 = "KND002" // non-generic type/function given type arguments, or a value that is not a struct/union
	KND003 = "KND003" // union field accessed without an active guard
	KND004 = "KND004" // instantiation arity does not match type parameters, or a generic extern

	// Import errors.
	IMP001 = "IMP001" // source file not found
	IMP002 = "IMP002" // import cycle detected

	// Internal errors: unimplemented operator or AST shape. These are
	// bugs in the checker, not user errors.
	BUG001 = "BUG001"
)
