package checkerr

import (
	"fmt"
	"strings"

	"github.com/arrfunc/unicheck/ir"
)

// TypeMismatch is a general mismatch with a prose explanation, used where
// no more specific case fits.
type TypeMismatch struct {
	Msg string
}

func (e TypeMismatch) Error() string { return e.Msg }
func (TypeMismatch) Code() Code      { return CodeTypeError }

// Unify is raised when two subexpressions required to share a type do
// not.
type Unify struct {
	Type1, Type2 ir.Type
}

func (e Unify) Error() string {
	return fmt.Sprintf("cannot unify '%s' with '%s'", e.Type1, e.Type2)
}
func (Unify) Code() Code { return CodeUnify }

// UnexpectedType reports that an expression had type Got when one of
// Allowed was required. Per spec.md ss9's Open Question, Allowed is never
// constructed empty by this checker - doing so would mean "possibly a
// bug in the type checker" and is treated as an internal invariant, not a
// user-reachable case.
type UnexpectedType struct {
	Got     ir.Type
	Allowed []ir.Type
}

func (e UnexpectedType) Error() string {
	if len(e.Allowed) == 0 {
		return fmt.Sprintf("unexpected type '%s' (possibly a bug in the type checker)", e.Got)
	}
	names := make([]string, len(e.Allowed))
	for i, t := range e.Allowed {
		names[i] = t.String()
	}
	return fmt.Sprintf("unexpected type '%s', expected one of: %s", e.Got, strings.Join(names, ", "))
}
func (UnexpectedType) Code() Code { return CodeUnexpectedType }

// ReturnTypeError is raised when a function's body result type is not a
// subtype of its declared return type.
type ReturnTypeError struct {
	Fn               ir.FName
	Declared, Actual ir.Type
}

func (e ReturnTypeError) Error() string {
	return fmt.Sprintf("function '%s' declares return type '%s' but returns '%s'", e.Fn, e.Declared, e.Actual)
}
func (ReturnTypeError) Code() Code { return CodeReturnType }

// DupDefinition is raised when two functions share a name.
type DupDefinition struct {
	Fn ir.FName
}

func (e DupDefinition) Error() string {
	return fmt.Sprintf("function '%s' is defined more than once", e.Fn)
}
func (DupDefinition) Code() Code { return CodeDupDefinition }

// DupParam is raised when two parameters of a function share a name.
type DupParam struct {
	Fn    ir.FName
	Param ir.VName
}

func (e DupParam) Error() string {
	return fmt.Sprintf("parameter '%s' appears more than once in '%s'", e.Param, e.Fn)
}
func (DupParam) Code() Code { return CodeDupParam }

// DupPattern is raised when a pattern binds the same variable twice.
type DupPattern struct {
	Name ir.VName
}

func (e DupPattern) Error() string {
	return fmt.Sprintf("variable '%s' is bound more than once in this pattern", e.Name)
}
func (DupPattern) Code() Code { return CodeDupPattern }

// InvalidPattern is raised when a pattern does not match the shape of
// the expression's result - Note is free-form detail (e.g. arity
// mismatch, or a name count that disagrees with the value's tuple
// width).
type InvalidPattern struct {
	Names []ir.VName
	Types []ir.Type
	Note  string
}

func (e InvalidPattern) Error() string {
	return fmt.Sprintf("pattern %v does not match result type(s) %v: %s", e.Names, e.Types, e.Note)
}
func (InvalidPattern) Code() Code { return CodeInvalidPattern }

// UnknownVariable is raised on a reference to an unbound variable.
type UnknownVariable struct {
	Name ir.VName
}

func (e UnknownVariable) Error() string {
	return fmt.Sprintf("undefined variable '%s'", e.Name)
}
func (UnknownVariable) Code() Code { return CodeUnknownVariable }

// UnknownFunction is raised on a call to an undeclared function.
type UnknownFunction struct {
	Name ir.FName
}

func (e UnknownFunction) Error() string {
	return fmt.Sprintf("undefined function '%s'", e.Name)
}
func (UnknownFunction) Code() Code { return CodeUnknownFunction }

// ParameterMismatch is raised when an application's arity or argument
// types do not match the callee's declaration.
type ParameterMismatch struct {
	Fn             ir.FName
	Expected, Got []ir.Type
}

func (e ParameterMismatch) Error() string {
	return fmt.Sprintf("call to '%s' expected arguments %v, got %v", e.Fn, e.Expected, e.Got)
}
func (ParameterMismatch) Code() Code { return CodeParameterMismatch }

// UseAfterConsume is raised when a variable, or an alias of it, is used
// after being consumed along the same control-flow path.
type UseAfterConsume struct {
	Name ir.VName
}

func (e UseAfterConsume) Error() string {
	return fmt.Sprintf("variable '%s' referenced after being consumed", e.Name)
}
func (UseAfterConsume) Code() Code { return CodeUseAfterConsume }

// IndexingError is raised when an Index expression supplies more indices
// than the array's rank.
type IndexingError struct {
	Rank, Got int
}

func (e IndexingError) Error() string {
	return fmt.Sprintf("cannot index array of rank %d with %d indices", e.Rank, e.Got)
}
func (IndexingError) Code() Code { return CodeIndexing }

// BadAnnotation is raised when an explicit type annotation disagrees with
// the type the checker derives.
type BadAnnotation struct {
	Desc           string
	Expected, Got ir.Type
}

func (e BadAnnotation) Error() string {
	return fmt.Sprintf("%s: annotation says '%s' but derived type is '%s'", e.Desc, e.Expected, e.Got)
}
func (BadAnnotation) Code() Code { return CodeBadAnnotation }

// ReturnAliased is raised when a unique return value aliases a parameter
// that was not itself consumed.
type ReturnAliased struct {
	Fn   ir.FName
	Name ir.VName
}

func (e ReturnAliased) Error() string {
	return fmt.Sprintf("unique return value of '%s' aliases parameter '%s', which is not consumed", e.Fn, e.Name)
}
func (ReturnAliased) Code() Code { return CodeReturnAliased }

// UniqueReturnAliased is raised when two elements of a unique-tagged
// return tuple alias each other.
type UniqueReturnAliased struct {
	Fn ir.FName
}

func (e UniqueReturnAliased) Error() string {
	return fmt.Sprintf("a unique return value of '%s' aliases another of its return values", e.Fn)
}
func (UniqueReturnAliased) Code() Code { return CodeUniqueReturnAliased }

// NotAnArray is raised when an array-typed operand was required but a
// scalar was found.
type NotAnArray struct {
	Name ir.VName
	Type ir.Type
}

func (e NotAnArray) Error() string {
	return fmt.Sprintf("'%s' has type '%s', which is not an array", e.Name, e.Type)
}
func (NotAnArray) Code() Code { return CodeNotAnArray }

// PermutationError is raised when a Rearrange's Perm is not a bijection
// on [0, Rank).
type PermutationError struct {
	Perm []int
	Rank int
	Arr  ir.VName
}

func (e PermutationError) Error() string {
	return fmt.Sprintf("permutation %v is not a valid rearrangement of '%s' (rank %d)", e.Perm, e.Arr, e.Rank)
}
func (PermutationError) Code() Code { return CodePermutation }
