package check

import (
	"fmt"

	"github.com/arrfunc/unicheck/checkerr"
	"github.com/arrfunc/unicheck/ir"
)

// checkApply verifies an application's arity and per-argument subtyping
// against the callee's declared parameters, threads any array arguments'
// Consume diets into the occurrence log, and instantiates the callee's
// declared (possibly existential) return types against the dimension
// bindings observed at this call site (spec.md ss4.5 "Apply" - "compute
// actual argument types; instantiate the return type via applyRetType,
// which binds existentials from argument shapes"). A named dimension
// (DimVar) in a parameter's declared shape binds to whatever concrete
// dimension the argument has there; an unnamed existential (DimExt) in a
// parameter's declared shape binds the same way, keyed by its index, and
// a later argument disagreeing with an earlier one on the same
// existential's bound dimension is a BadAnnotation error.
func (ck *Checker) checkApply(ctx *Context, e ir.Apply) ([]ir.Type, []ir.Names, Log, error) {
	fb, err := ctx.LookupFunc(e.Fn)
	if err != nil {
		return nil, nil, Log{}, err
	}
	if len(e.Args) != len(fb.Params) {
		return nil, nil, Log{}, ctx.Fail(checkerr.ParameterMismatch{Fn: e.Fn, Expected: paramTypes(fb.Params)})
	}

	log := Identity()
	argTypes := make([]ir.Type, len(e.Args))
	subst := make(map[ir.VName]ir.Dim)
	extSubst := make(map[int]ir.Array)

	for i, arg := range e.Args {
		param := fb.Params[i]

		if lam, ok := arg.(ir.Lambda); ok {
			_, lamLog, err := ck.CheckLambda(ctx, lam)
			if err != nil {
				return nil, nil, Log{}, err
			}
			log = Seq(log, lamLog)
			continue
		}

		t, argAliases, argLog, err := ck.checkSingleA(ctx, arg)
		if err != nil {
			return nil, nil, Log{}, err
		}
		bindDims(param.Type, t, subst)
		want := param.Type
		if arr, ok := param.Type.(ir.Array); ok {
			ext := substituteExtType(ir.ExtOf(arr), subst).(ir.ExtArray)
			want = ir.Array{Elem: ext.Elem, Shape: ext.Shape, Uniqueness: ext.Uniqueness}
		}
		if !ir.Subtype(t, want) {
			argTypes[i] = t
			return nil, nil, Log{}, ctx.Fail(checkerr.ParameterMismatch{Fn: e.Fn, Expected: paramTypes(fb.Params), Got: argTypes})
		}
		argTypes[i] = t
		if idx, prev, got, ok := bindExistentials(param.Type, t, extSubst); ok {
			return nil, nil, Log{}, ctx.Fail(checkerr.BadAnnotation{
				Desc:     fmt.Sprintf("%s's existential dimension ?%d", e.Fn, idx),
				Expected: prev,
				Got:      got,
			})
		}
		log = Seq(log, argLog)

		if param.Diet == ir.ConsumeDiet {
			log = Seq(log, Consume(argAliases))
		}
	}

	extDims := make(map[int]ir.Dim, len(extSubst))
	for idx, arr := range extSubst {
		extDims[idx] = arr.Shape[0]
	}

	// A call's results are always fresh as far as the caller's aliasing
	// is concerned: whether the callee's own return values alias one of
	// its unconsumed parameters is checked once, when the callee itself
	// is checked (fun.go's return-aliasing invariant), not re-derived at
	// every call site.
	results := make([]ir.Type, len(fb.RetType))
	for i, rt := range fb.RetType {
		results[i] = applyRetType(rt, subst, extDims)
	}
	return results, noAliases(len(results)), log, nil
}

func paramTypes(params []ir.Param) []ir.Type {
	out := make([]ir.Type, len(params))
	for i, p := range params {
		out[i] = p.Type
	}
	return out
}

// bindDims walks declared (a function parameter's concrete type) and
// actual (the type observed at the call site) in lockstep, recording any
// named dimension variable in declared's shape - typically an earlier
// scalar parameter like `n` in `[n]i32` - as bound to the concrete
// dimension found in the same position of actual.
func bindDims(declared, actual ir.Type, subst map[ir.VName]ir.Dim) {
	switch declared := declared.(type) {
	case ir.Array:
		act, ok := actual.(ir.Array)
		if !ok || len(act.Shape) != len(declared.Shape) {
			return
		}
		for i, d := range declared.Shape {
			if v, ok := d.(ir.DimVar); ok {
				if _, bound := subst[v.Name]; !bound {
					subst[v.Name] = act.Shape[i]
				}
			}
		}
	case ir.Tuple:
		act, ok := actual.(ir.Tuple)
		if !ok || len(act.Elems) != len(declared.Elems) {
			return
		}
		for i := range declared.Elems {
			bindDims(declared.Elems[i], act.Elems[i], subst)
		}
	}
}

// bindExistentials mirrors bindDims for unnamed existentials: a DimExt at
// some position of declared's shape ties that position to the same index
// in the callee's RetType (ir.Type's doc comment on Array explains the
// convention). The first argument to bind a given index wins; any later
// argument disagreeing with it on the concrete dimension is reported back
// to the caller via the four return values (index, previously-bound
// array, conflicting array, true) so checkApply can raise BadAnnotation
// without bindExistentials itself needing a *Context.
func bindExistentials(declared, actual ir.Type, extSubst map[int]ir.Array) (index int, prev, got ir.Type, conflict bool) {
	switch declared := declared.(type) {
	case ir.Array:
		act, ok := actual.(ir.Array)
		if !ok || len(act.Shape) != len(declared.Shape) {
			return 0, nil, nil, false
		}
		for i, d := range declared.Shape {
			ext, ok := d.(ir.DimExt)
			if !ok {
				continue
			}
			single := ir.Array{Elem: act.Elem, Shape: ir.Shape{act.Shape[i]}, Uniqueness: act.Uniqueness}
			if prevArr, bound := extSubst[int(ext)]; bound {
				if !prevArr.Shape[0].Equal(single.Shape[0]) {
					return int(ext), prevArr, single, true
				}
				continue
			}
			extSubst[int(ext)] = single
		}
	case ir.Tuple:
		act, ok := actual.(ir.Tuple)
		if !ok || len(act.Elems) != len(declared.Elems) {
			return 0, nil, nil, false
		}
		for i := range declared.Elems {
			if idx, prevT, gotT, conflict := bindExistentials(declared.Elems[i], act.Elems[i], extSubst); conflict {
				return idx, prevT, gotT, true
			}
		}
	}
	return 0, nil, nil, false
}

// applyRetType resolves rt's declared ExtType against subst (the named
// dimension bindings collected from this call's arguments) and extSubst
// (the unnamed-existential bindings collected the same way by
// bindExistentials) and then instantiates any existential that neither
// map covers via ir.Instantiate's defensive synthesized-DimVar fallback -
// a true existential with no parameter tying it to an argument shape at
// all, which this checker cannot derive a value for.
func applyRetType(rt ir.RetType, subst map[ir.VName]ir.Dim, extSubst map[int]ir.Dim) ir.Type {
	substituted := substituteExtType(rt.Type, subst)
	return ir.Instantiate(substituted, extSubst).WithUniq(rt.Uniqueness)
}

func substituteExtType(t ir.ExtType, subst map[ir.VName]ir.Dim) ir.ExtType {
	switch t := t.(type) {
	case ir.ExtPrim:
		return t
	case ir.ExtArray:
		shape := make(ir.Shape, len(t.Shape))
		for i, d := range t.Shape {
			if v, ok := d.(ir.DimVar); ok {
				if bound, ok := subst[v.Name]; ok {
					shape[i] = bound
					continue
				}
			}
			shape[i] = d
		}
		return ir.ExtArray{Elem: t.Elem, Shape: shape, Uniqueness: t.Uniqueness}
	case ir.ExtTuple:
		elems := make([]ir.ExtType, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = substituteExtType(e, subst)
		}
		return ir.ExtTuple{Elems: elems}
	default:
		return t
	}
}

// CheckLambda checks a SOAC-argument lambda's body in a child scope
// binding its declared parameters, verifies the body's result types are
// subtypes of its declared Ret, and returns the log of any captured
// free-variable occurrences - the lambda's own parameters never escape
// into the caller's log (spec.md ss1: only array arguments to SOACs are
// checked; the lambda body itself is checked like any function body).
func (ck *Checker) CheckLambda(ctx *Context, lam ir.Lambda) ([]ir.Type, Log, error) {
	if err := ck.Capability.CheckBodyLore(ctx, lam.Body); err != nil {
		return nil, Log{}, err
	}

	names := make([]ir.VName, len(lam.Params))
	infos := make([]ir.NameInfo, len(lam.Params))
	for i, p := range lam.Params {
		names[i] = p.Name
		infos[i] = ir.LParamInfo{TypeVal: p.Type, Diet: p.Diet}
	}

	var bodyTypes []ir.Type
	var bodyLog Log
	shadowErr := func(n ir.VName) checkerr.TypeError { return checkerr.DupPattern{Name: n} }
	err := ctx.WithVars(names, infos, shadowErr, func() error {
		var err error
		bodyTypes, _, bodyLog, err = ck.CheckExp(ctx, lam.Body)
		if err != nil {
			return err
		}
		params, consumable := ir.NoNames, ir.NoNames
		for _, p := range lam.Params {
			params = params.With(p.Name)
			if p.Diet == ir.ConsumeDiet {
				consumable = consumable.Union(ctx.ExpandAliases(ir.NewNames(p.Name)))
			}
		}
		bodyLog = consumeOnlyParams(params, consumable, bodyLog)
		return nil
	})
	if err != nil {
		return nil, Log{}, err
	}

	if len(bodyTypes) != len(lam.Ret) {
		return nil, Log{}, ctx.Fail(mismatchf("lambda body returns %d value(s), declared %d", len(bodyTypes), len(lam.Ret)))
	}
	if !ck.Capability.MatchReturnType(lam.Ret, bodyTypes) {
		for i, want := range lam.Ret {
			if !ir.Subtype(bodyTypes[i], want) {
				return nil, Log{}, ctx.Fail(checkerr.Unify{Type1: bodyTypes[i], Type2: want})
			}
		}
		return nil, Log{}, ctx.Fail(mismatchf("lambda body result types do not match declared return types"))
	}

	bodyLog.Occs = Unoccur(ir.NewNames(names...), bodyLog.Occs)
	return lam.Ret, bodyLog, nil
}
