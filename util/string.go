package util

import "fmt"

// FreshName deterministically derives a synthetic identifier from tag and
// index, used when a built-in function's parameter needs a name but has
// none in the source (spec.md ss4.8 step 2: "Build an initial function
// table from built-in functions (each parameterized by a synthesized
// fresh parameter name)"). Deterministic rather than random so the same
// program produces the same names across runs - the same motivation as
// the teacher's MangledIdentFrom, which derived a name from an
// ast.Node's fixed byte offsets instead of a counter; this package has
// no surface AST, so it formats the caller-supplied tag and index into
// the name instead.
func FreshName(tag string, index int) string {
	return fmt.Sprintf("_%s_%d", tag, index)
}
