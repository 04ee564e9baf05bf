// Package ir defines the intermediate representation consumed by package
// check: names, primitive and array types, shapes, expressions, function and
// program declarations. It intentionally has no parser and no evaluator -
// those are the caller's job (see spec.md ss1); this package only gives the
// checker something concrete to recurse over.
package ir

import "fmt"

// Name is a namespaced identifier. VName and FName occupy disjoint
// namespaces so a variable and a function may share spelling without
// colliding.
type Name interface {
	fmt.Stringer
	isName()
}

// VName is a variable name: a base spelling plus a disambiguating tag.
// The tag lets the checker (or a caller synthesizing loop indices or
// built-in parameters) mint fresh names deterministically without risking
// a collision with a source-level name, which always carries Tag 0.
type VName struct {
	Base string
	Tag  int
}

func (VName) isName() {}

func (n VName) String() string {
	if n.Tag == 0 {
		return n.Base
	}
	return fmt.Sprintf("%s_%d", n.Base, n.Tag)
}

// NewVName returns a source-level variable name (Tag 0).
func NewVName(base string) VName { return VName{Base: base} }

// FName is a function name.
type FName struct {
	Base string
}

func (FName) isName() {}

func (n FName) String() string { return n.Base }

func NewFName(base string) FName { return FName{Base: base} }
