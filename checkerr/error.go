// Package checkerr is the checker's closed error taxonomy (spec.md ss7),
// grounded on the teacher's frontend/ilerr: a small interface implemented
// by one struct per error case, each with its own Code and Error
// rendering, plus a wrapper that attaches the breadcrumb trail active at
// the point the error was raised (spec.md ss4.1, ss4.2).
package checkerr

import (
	"fmt"
	"strings"
)

// Code identifies an error case independently of its payload, for callers
// that want to pattern-match without a type switch.
type Code int

const (
	CodeTypeError Code = iota
	CodeUnify
	CodeUnexpectedType
	CodeReturnType
	CodeDupDefinition
	CodeDupParam
	CodeDupPattern
	CodeInvalidPattern
	CodeUnknownVariable
	CodeUnknownFunction
	CodeParameterMismatch
	CodeUseAfterConsume
	CodeIndexing
	CodeBadAnnotation
	CodeReturnAliased
	CodeUniqueReturnAliased
	CodeNotAnArray
	CodePermutation
)

// TypeError is any of the checker's closed set of error cases.
type TypeError interface {
	error
	Code() Code
}

// WithTrace pairs a TypeError with a snapshot of the breadcrumb stack at
// the point it was raised (spec.md ss4.1: "reverse copy of the current
// breadcrumb stack"). Breadcrumbs are stored outermost-first, which is
// already the reverse of the push order (most-recent-first) recorded by
// check.Context.
type WithTrace struct {
	Breadcrumbs []string
	Case        TypeError
}

func (w *WithTrace) Error() string { return Render(w) }

func (w *WithTrace) Unwrap() error { return w.Case }

func (w *WithTrace) Code() Code { return w.Case.Code() }

// Render interleaves one breadcrumb per line (outermost first) followed
// by the case's canonical rendering (spec.md ss4.1, ss6).
func Render(w *WithTrace) string {
	var sb strings.Builder
	for _, b := range w.Breadcrumbs {
		sb.WriteString("in ")
		sb.WriteString(b)
		sb.WriteString(":\n")
	}
	sb.WriteString(fmt.Sprintf("(E%03d) %s", w.Case.Code(), w.Case.Error()))
	return sb.String()
}
