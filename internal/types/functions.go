package types

import (
	"fmt"
	"strings"
)

// Function is a checked declaration — extern or with a body already
// checked by the statement checker.
type Function struct {
	Name   string
	Params []Field // parameter (name, type) pairs, in declaration order
	Return Type
	Extern bool
}

func (f *Function) TypeName() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Type.TypeName()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(params, ", "), f.Return.TypeName())
}

// AssociatedFunction is a Function bound to a receiver Type, reached via
// dotted syntax (value.method(...)). The receiver is not one of
// Function.Params: the call checker adds it as an implicit first
// parameter and prepends the receiver argument, and the body sees it as
// self. A declared parameter named self is an extra parameter, not the
// receiver.
type AssociatedFunction struct {
	*Function
	Receiver Type
}
