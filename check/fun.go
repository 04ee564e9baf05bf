package check

import (
	"github.com/arrfunc/unicheck/checkerr"
	"github.com/arrfunc/unicheck/ir"
	"github.com/hashicorp/go-set/v3"
)

// CheckFun checks one function declaration in its own Context (spec.md
// ss4.6): rejects duplicate parameter names, binds the parameters,
// checks the body, verifies the body's result types against the
// declared return types, and enforces the unique-return-aliasing
// invariant - a Unique return value may not alias a parameter that was
// not itself consumed, and two Unique return values may not alias each
// other.
func (ck *Checker) CheckFun(ctx *Context, fd ir.FunDecl) error {
	if err := checkDupParams(ctx, fd); err != nil {
		return err
	}
	for _, p := range fd.Params {
		if err := ck.Capability.CheckParamLore(ctx, p); err != nil {
			return err
		}
	}
	for _, rt := range fd.RetType {
		if err := ck.Capability.CheckRetTypeLore(ctx, rt); err != nil {
			return err
		}
	}
	if err := ck.Capability.CheckBodyLore(ctx, fd.Body); err != nil {
		return err
	}

	names := make([]ir.VName, len(fd.Params))
	infos := make([]ir.NameInfo, len(fd.Params))
	for i, p := range fd.Params {
		names[i] = p.Name
		infos[i] = ir.FParamInfo{TypeVal: p.Type, Diet: p.Diet}
	}

	var bodyTypes []ir.Type
	var bodyAliases []ir.Names
	var bodyLog Log
	err := ctx.WithBreadcrumb("function '"+fd.Name.String()+"'", func() error {
		return ctx.WithVars(names, infos, func(n ir.VName) checkerr.TypeError {
			return checkerr.DupParam{Fn: fd.Name, Param: n}
		}, func() error {
			var err error
			bodyTypes, bodyAliases, bodyLog, err = ck.CheckExp(ctx, fd.Body)
			if err != nil {
				return err
			}
			params, consumable := ir.NoNames, ir.NoNames
			for _, p := range fd.Params {
				params = params.With(p.Name)
				if p.Diet == ir.ConsumeDiet {
					consumable = consumable.Union(ctx.ExpandAliases(ir.NewNames(p.Name)))
				}
			}
			bodyLog = consumeOnlyParams(params, consumable, bodyLog)
			return nil
		})
	})
	if err != nil {
		return err
	}

	if _, err := ctx.checkLog(bodyLog); err != nil {
		return err
	}

	if len(bodyTypes) != len(fd.RetType) {
		return ctx.Fail(checkerr.InvalidPattern{
			Types: bodyTypes,
			Note:  "function body returns a different number of values than its declared return types",
		})
	}
	for i, rt := range fd.RetType {
		if !matchesRetType(bodyTypes[i], rt.Type) {
			actual := ir.Instantiate(rt.Type, map[int]ir.Dim{})
			return ctx.Fail(checkerr.ReturnTypeError{Fn: fd.Name, Declared: actual, Actual: bodyTypes[i]})
		}
		if rt.Uniqueness == ir.Unique && bodyTypes[i].Uniq() != ir.Unique {
			return ctx.Fail(checkerr.ReturnTypeError{Fn: fd.Name, Declared: bodyTypes[i].WithUniq(ir.Unique), Actual: bodyTypes[i]})
		}
	}

	return checkReturnAliasing(ctx, fd, bodyAliases)
}

func checkDupParams(ctx *Context, fd ir.FunDecl) error {
	seen := set.New[ir.VName](len(fd.Params))
	for _, p := range fd.Params {
		if !seen.Insert(p.Name) {
			return ctx.Fail(checkerr.DupParam{Fn: fd.Name, Param: p.Name})
		}
	}
	return nil
}

// matchesRetType is Subtype relaxed so that a declared existential
// dimension (DimExt) matches any concrete dimension the body actually
// produced - an existential in a return position is, by construction,
// whatever the body's own computation yields, not a constraint the body
// must additionally satisfy.
func matchesRetType(body ir.Type, declared ir.ExtType) bool {
	switch declared := declared.(type) {
	case ir.ExtPrim:
		p, ok := body.(ir.Prim)
		return ok && p.P == declared.P
	case ir.ExtArray:
		arr, ok := body.(ir.Array)
		if !ok || arr.Elem != declared.Elem || len(arr.Shape) != len(declared.Shape) {
			return false
		}
		if declared.Uniqueness == ir.Unique && arr.Uniqueness != ir.Unique {
			return false
		}
		for i, d := range declared.Shape {
			if _, isExt := d.(ir.DimExt); isExt {
				continue
			}
			if !d.Equal(arr.Shape[i]) {
				return false
			}
		}
		return true
	case ir.ExtTuple:
		tup, ok := body.(ir.Tuple)
		if !ok || len(tup.Elems) != len(declared.Elems) {
			return false
		}
		for i := range declared.Elems {
			if !matchesRetType(tup.Elems[i], declared.Elems[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// checkReturnAliasing implements spec.md ss4.6's uniqueness-safety fold:
// walk the return positions left to right, keeping a running set of
// names tagged unique by every Unique position seen so far. A Unique
// position must not still be aliased to a parameter the function never
// consumed (ReturnAliased), and a position - Unique or not - must not
// alias anything already unique-tagged by an earlier position
// (UniqueReturnAliased): a Nonunique result sharing storage with an
// earlier Unique one is just as unsafe, since consuming the Unique
// result would silently invalidate the Nonunique one the caller still
// expects to read.
func checkReturnAliasing(ctx *Context, fd ir.FunDecl, bodyAliases []ir.Names) error {
	consumed := make(map[ir.VName]bool)
	for _, p := range fd.Params {
		if p.Diet == ir.ConsumeDiet {
			consumed[p.Name] = true
		}
	}

	uniqueTagged := ir.NoNames
	for i, rt := range fd.RetType {
		if uniqueTagged.Intersects(bodyAliases[i]) {
			return ctx.Fail(checkerr.UniqueReturnAliased{Fn: fd.Name})
		}
		if rt.Uniqueness != ir.Unique {
			continue
		}
		for _, alias := range bodyAliases[i].Slice() {
			if isFunParam(fd.Params, alias) && !consumed[alias] {
				return ctx.Fail(checkerr.ReturnAliased{Fn: fd.Name, Name: alias})
			}
		}
		uniqueTagged = uniqueTagged.Union(bodyAliases[i])
	}
	return nil
}

func isFunParam(params []ir.Param, name ir.VName) bool {
	for _, p := range params {
		if p.Name == name {
			return true
		}
	}
	return false
}
