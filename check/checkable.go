package check

import "github.com/arrfunc/unicheck/ir"

// Checkable is the hook surface an IR flavor ("lore", spec.md GLOSSARY)
// supplies so the same checker can verify multiple IR stages
// (spec.md ss4.7). Every hook has access to the full checker machinery
// via the Context and Checker arguments it is called with.
type Checkable interface {
	// CheckOp checks a lore-specific custom operator (spec.md ss4.5
	// "Op(custom)"), returning its result types, each result's alias set,
	// and its consumption/observation effects.
	CheckOp(ck *Checker, ctx *Context, payload any) ([]ir.Type, []ir.Names, Log, error)

	// CheckExpLore validates any lore-specific annotation carried on an
	// expression node, beyond its structural type.
	CheckExpLore(ctx *Context, exp ir.Exp) error

	// CheckBodyLore validates a lore-specific annotation on a function,
	// lambda, or loop body.
	CheckBodyLore(ctx *Context, body ir.Exp) error

	// CheckLetLore validates a lore-specific annotation on a let
	// binding's Attr field.
	CheckLetLore(ctx *Context, binding ir.LetBinding) error

	// CheckParamLore validates a lore-specific annotation on a
	// parameter's Attr field.
	CheckParamLore(ctx *Context, param ir.Param) error

	// CheckRetTypeLore validates a lore-specific annotation on a
	// function's declared return type.
	CheckRetTypeLore(ctx *Context, ret ir.RetType) error

	// MatchPattern matches a let/apply/if/loop result's pattern names
	// against its derived result types, returning an error if the arity
	// or shape disagrees (spec.md ss7 "InvalidPatternError").
	MatchPattern(names []ir.VName, resultTypes []ir.Type) error

	// MatchReturnType matches a loop or lambda body's derived result
	// types against its declared return types, applying lore-specific
	// subtyping beyond the structural Subtype of ir.Subtype.
	MatchReturnType(declared []ir.Type, actual []ir.Type) bool
}

// NoopCheckable is a Checkable whose lore hooks accept everything and
// whose CheckOp always fails with TypeMismatch. Embed it in a concrete
// Checkable implementation to only override the hooks a given IR flavor
// actually cares about - mirroring the teacher's ir.hm.Expression node
// types, which each implement only the methods their own construct
// needs.
type NoopCheckable struct{}

func (NoopCheckable) CheckOp(_ *Checker, ctx *Context, _ any) ([]ir.Type, []ir.Names, Log, error) {
	return nil, nil, Log{}, ctx.Fail(mismatchf("no Checkable.CheckOp supplied for this IR flavor"))
}

func (NoopCheckable) CheckExpLore(*Context, ir.Exp) error           { return nil }
func (NoopCheckable) CheckBodyLore(*Context, ir.Exp) error          { return nil }
func (NoopCheckable) CheckLetLore(*Context, ir.LetBinding) error    { return nil }
func (NoopCheckable) CheckParamLore(*Context, ir.Param) error       { return nil }
func (NoopCheckable) CheckRetTypeLore(*Context, ir.RetType) error   { return nil }

func (NoopCheckable) MatchPattern(names []ir.VName, resultTypes []ir.Type) error {
	if len(names) != len(resultTypes) {
		return nil // the caller (checkLet, checkMerge) reports the arity mismatch with full context
	}
	return nil
}

func (NoopCheckable) MatchReturnType(declared, actual []ir.Type) bool {
	if len(declared) != len(actual) {
		return false
	}
	for i := range declared {
		if !ir.Subtype(actual[i], declared[i]) {
			return false
		}
	}
	return true
}
