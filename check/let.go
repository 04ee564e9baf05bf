package check

import (
	"github.com/arrfunc/unicheck/checkerr"
	"github.com/arrfunc/unicheck/ir"
	"github.com/hashicorp/go-set/v3"
)

func patternNames(pattern []ir.LetBinding) []ir.VName {
	out := make([]ir.VName, len(pattern))
	for i, b := range pattern {
		out[i] = b.Name
	}
	return out
}

// shadowOrDup is the shadowErr callback passed to Context.WithVars for
// every binding form in this package - spec.md ss3 Invariant 1 treats
// shadowing any already-visible name as an error, and the taxonomy has
// no dedicated case for it distinct from a pattern that binds the same
// name twice, so both are reported as DupPattern.
func shadowOrDup(n ir.VName) checkerr.TypeError { return checkerr.DupPattern{Name: n} }

// checkLet verifies e.Value, binds its result type(s) to e.Pattern via
// BindLet (threading alias-set symmetrization), checks e.Body with those
// names in scope, then unoccurs them from the body's log on scope exit
// (spec.md ss4.5 "Let", ss4.3 "unoccur"). The result aliases are the
// body's own with the let-bound names removed, since those names go out
// of scope here.
func (ck *Checker) checkLet(ctx *Context, e ir.Let) ([]ir.Type, []ir.Names, Log, error) {
	valueTypes, _, valueLog, err := ck.CheckExp(ctx, e.Value)
	if err != nil {
		return nil, nil, Log{}, err
	}
	if err := ck.Capability.MatchPattern(patternNames(e.Pattern), valueTypes); err != nil {
		return nil, nil, Log{}, err
	}
	if len(valueTypes) != len(e.Pattern) {
		return nil, nil, Log{}, ctx.Fail(checkerr.InvalidPattern{
			Names: patternNames(e.Pattern), Types: valueTypes,
			Note: "pattern arity does not match the number of values produced",
		})
	}

	seen := set.New[ir.VName](len(e.Pattern))
	for _, b := range e.Pattern {
		if !seen.Insert(b.Name) {
			return nil, nil, Log{}, ctx.Fail(checkerr.DupPattern{Name: b.Name})
		}
		if err := ck.Capability.CheckLetLore(ctx, b); err != nil {
			return nil, nil, Log{}, err
		}
	}

	names := make([]ir.VName, len(e.Pattern))
	infos := make([]ir.NameInfo, len(e.Pattern))
	for i, b := range e.Pattern {
		names[i] = b.Name
		infos[i] = ctx.BindLet(b.Name, b.Aliases, valueTypes[i], b.Attr)
	}

	var bodyTypes []ir.Type
	var bodyAliases []ir.Names
	var bodyLog Log
	err = ctx.WithVars(names, infos, shadowOrDup, func() error {
		var err error
		bodyTypes, bodyAliases, bodyLog, err = ck.CheckExp(ctx, e.Body)
		return err
	})
	if err != nil {
		return nil, nil, Log{}, err
	}

	bound := ir.NewNames(names...)
	bodyLog.Occs = Unoccur(bound, bodyLog.Occs)
	for i, a := range bodyAliases {
		bodyAliases[i] = a.WithoutSet(bound)
	}
	return bodyTypes, bodyAliases, Seq(valueLog, bodyLog), nil
}

// checkMerge is the shared core of ForLoop and WhileLoop: each merge
// parameter's Init is checked against its declared Param.Type (consuming
// it if the param's Diet says so), the parameters are bound, the body is
// checked, and the body's result types must be a rank-erased subtype of
// the declared merge types - DoLoop bodies may legitimately return a
// differently-sized array across iterations (spec.md ss4.5 "DoLoop").
// The loop's own results are treated as fresh (unaliased) values: once a
// merge parameter goes out of scope at loop exit, nothing outside can
// observe which internal buffer it reused across iterations.
func (ck *Checker) checkMerge(ctx *Context, merge []ir.MergeParam, extra func() (Log, error), body ir.Exp) ([]ir.Type, Log, error) {
	log := Identity()
	names := make([]ir.VName, len(merge))
	infos := make([]ir.NameInfo, len(merge))
	for i, m := range merge {
		initT, initAliases, initLog, err := ck.checkSingleA(ctx, m.Init)
		if err != nil {
			return nil, Log{}, err
		}
		if !ir.Subtype(initT, m.Param.Type) {
			return nil, Log{}, ctx.Fail(checkerr.Unify{Type1: initT, Type2: m.Param.Type})
		}
		log = Seq(log, initLog)
		if m.Param.Diet == ir.ConsumeDiet {
			log = Seq(log, Consume(initAliases))
		}
		names[i] = m.Param.Name
		infos[i] = ir.FParamInfo{TypeVal: m.Param.Type, Diet: m.Param.Diet}
	}

	if err := ck.Capability.CheckBodyLore(ctx, body); err != nil {
		return nil, Log{}, err
	}

	var bodyTypes []ir.Type
	var bodyLog Log
	var extraLog Log
	err := ctx.WithVars(names, infos, shadowOrDup, func() error {
		if extra != nil {
			var err error
			extraLog, err = extra()
			if err != nil {
				return err
			}
		}
		var err error
		bodyTypes, _, bodyLog, err = ck.CheckExp(ctx, body)
		if err != nil {
			return err
		}
		// spec.md ss4.5 "DoLoop": unique merge parameters are the only
		// consumables inside the body.
		params, consumable := ir.NoNames, ir.NoNames
		for _, m := range merge {
			params = params.With(m.Param.Name)
			if m.Param.Diet == ir.ConsumeDiet {
				consumable = consumable.Union(ctx.ExpandAliases(ir.NewNames(m.Param.Name)))
			}
		}
		bodyLog = consumeOnlyParams(params, consumable, bodyLog)
		return nil
	})
	if err != nil {
		return nil, Log{}, err
	}
	bodyLog = Seq(extraLog, bodyLog)
	if err := ck.Capability.MatchPattern(names, bodyTypes); err != nil {
		return nil, Log{}, err
	}
	if len(bodyTypes) != len(merge) {
		return nil, Log{}, ctx.Fail(mismatchf("loop body returns %d value(s), %d merge parameters declared", len(bodyTypes), len(merge)))
	}

	// A loop body may return an array of a different concrete size than
	// the merge parameter's declared shape (spec.md ss4.5 "DoLoop"), so
	// the declared side is rank-erased before delegating to
	// Capability.MatchReturnType: ir.Subtype already treats an erased
	// (DimExt) shape position in the required type as matching any
	// actual dimension, the same relaxation ir.SubtypeRankErased applies
	// directly.
	declaredRankErased := make([]ir.Type, len(merge))
	for i, m := range merge {
		declaredRankErased[i] = ir.RankShape(m.Param.Type)
	}
	if !ck.Capability.MatchReturnType(declaredRankErased, bodyTypes) {
		for i, m := range merge {
			if !ir.SubtypeRankErased(bodyTypes[i], m.Param.Type) {
				return nil, Log{}, ctx.Fail(checkerr.Unify{Type1: bodyTypes[i], Type2: m.Param.Type})
			}
		}
		return nil, Log{}, ctx.Fail(mismatchf("loop body result types do not match declared merge types"))
	}

	bodyLog.Occs = Unoccur(ir.NewNames(names...), bodyLog.Occs)

	results := make([]ir.Type, len(merge))
	for i, m := range merge {
		results[i] = m.Param.Type
	}
	return results, Seq(log, bodyLog), nil
}

func (ck *Checker) checkForLoop(ctx *Context, e ir.ForLoop) ([]ir.Type, []ir.Names, Log, error) {
	boundT, boundLog, err := ck.checkSingle(ctx, e.Bound)
	if err != nil {
		return nil, nil, Log{}, err
	}
	if err := ck.requirePrim(ctx, boundT, ir.I32); err != nil {
		return nil, nil, Log{}, err
	}

	var results []ir.Type
	var mergeLog Log
	err = ctx.WithVars([]ir.VName{e.Index}, []ir.NameInfo{ir.IndexInfo{}}, shadowOrDup, func() error {
		var err error
		results, mergeLog, err = ck.checkMerge(ctx, e.Merge, nil, e.Body)
		return err
	})
	if err != nil {
		return nil, nil, Log{}, err
	}
	mergeLog.Occs = Unoccur(ir.NewNames(e.Index), mergeLog.Occs)
	return results, noAliases(len(results)), Seq(boundLog, mergeLog), nil
}

// checkWhileLoop checks e.Cond - a reference to one of the loop's own
// boolean merge parameters - inside the scope where the merge parameters
// are bound, since Cond names a merge parameter rather than an
// outer-scope variable (ir.WhileLoop: "loops while the named boolean
// merge parameter Cond is true").
func (ck *Checker) checkWhileLoop(ctx *Context, e ir.WhileLoop) ([]ir.Type, []ir.Names, Log, error) {
	checkCond := func() (Log, error) {
		condT, condLog, err := ctx.Observe(e.Cond)
		if err != nil {
			return Log{}, err
		}
		if err := ck.requirePrim(ctx, condT, ir.Bool); err != nil {
			return Log{}, err
		}
		return condLog, nil
	}
	results, log, err := ck.checkMerge(ctx, e.Merge, checkCond, e.Body)
	if err != nil {
		return nil, nil, Log{}, err
	}
	return results, noAliases(len(results)), log, nil
}
