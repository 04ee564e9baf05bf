package check

import (
	"fmt"
	"slices"

	"github.com/arrfunc/unicheck/checkerr"
	"github.com/arrfunc/unicheck/ir"
	"github.com/arrfunc/unicheck/util"
)

// oneA is shorthand for constructing a single-alias-set result list.
func oneA(n ir.Names) []ir.Names { return []ir.Names{n} }

// noAliases builds n fresh (empty) alias sets, for constructs that
// always produce values owned outright by the expression itself -
// literals, newly allocated arrays, and anything explicitly copied.
func noAliases(n int) []ir.Names {
	out := make([]ir.Names, n)
	for i := range out {
		out[i] = ir.NoNames
	}
	return out
}

// CheckExp type-switches over every construct named in spec.md ss4.5,
// verifying operand types and shapes, recording observations and
// consumptions, and returning the construct's statically known result
// type(s) and alias set(s) - plural, since Apply/If/DoLoop may produce a
// tuple of values destructured by the enclosing Let.
func (ck *Checker) CheckExp(ctx *Context, e ir.Exp) ([]ir.Type, []ir.Names, Log, error) {
	if err := ck.Capability.CheckExpLore(ctx, e); err != nil {
		return nil, nil, Log{}, err
	}
	switch e := e.(type) {
	case ir.Literal:
		return one(ir.Prim{P: e.T}), oneA(ir.NoNames), Identity(), nil

	case ir.Var:
		t, l, err := ctx.Observe(e.Name)
		if err != nil {
			return nil, nil, Log{}, err
		}
		aliases := ir.NoNames
		if !IsPrimitive(t) {
			aliases = ctx.ExpandAliases(ir.NewNames(e.Name))
		}
		return one(t), oneA(aliases), l, nil

	case ir.BinOp:
		return ck.checkBinOp(ctx, e)

	case ir.UnOp:
		return ck.checkUnOp(ctx, e)

	case ir.ConvOp:
		return ck.checkConvOp(ctx, e)

	case ir.ArrayLit:
		return ck.checkArrayLit(ctx, e)

	case ir.Index:
		return ck.checkIndex(ctx, e)

	case ir.Iota:
		return ck.checkIota(ctx, e)

	case ir.Replicate:
		return ck.checkReplicate(ctx, e)

	case ir.Scratch:
		return ck.checkScratch(ctx, e)

	case ir.Reshape:
		return ck.checkReshape(ctx, e)

	case ir.Rearrange:
		return ck.checkRearrange(ctx, e)

	case ir.Split:
		return ck.checkSplit(ctx, e)

	case ir.Concat:
		return ck.checkConcat(ctx, e)

	case ir.Copy:
		return ck.checkCopy(ctx, e)

	case ir.Assert:
		return ck.checkAssert(ctx, e)

	case ir.Partition:
		return ck.checkPartition(ctx, e)

	case ir.If:
		return ck.checkIf(ctx, e)

	case ir.Apply:
		return ck.checkApply(ctx, e)

	case ir.TupleLit:
		return ck.checkTupleLit(ctx, e)

	case ir.TupleProject:
		return ck.checkTupleProject(ctx, e)

	case ir.Let:
		return ck.checkLet(ctx, e)

	case ir.ForLoop:
		return ck.checkForLoop(ctx, e)

	case ir.WhileLoop:
		return ck.checkWhileLoop(ctx, e)

	case ir.Op:
		return ck.Capability.CheckOp(ck, ctx, e.Payload)

	default:
		return nil, nil, Log{}, ctx.Fail(mismatchf("unhandled expression construct %T", e))
	}
}

func (ck *Checker) requirePrim(ctx *Context, t ir.Type, want ir.PrimType) error {
	p, ok := t.(ir.Prim)
	if !ok || p.P != want {
		return ctx.Fail(checkerr.UnexpectedType{Got: t, Allowed: []ir.Type{ir.Prim{P: want}}})
	}
	return nil
}

// checkSingle is the common case of checking a sub-expression required
// to produce exactly one value, discarding its alias set - used wherever
// a construct's operand is a scalar or an array consumed/observed by
// name rather than re-aliased onward (e.g. BinOp's operands).
func (ck *Checker) checkSingle(ctx *Context, e ir.Exp) (ir.Type, Log, error) {
	ts, _, l, err := ck.CheckExp(ctx, e)
	if err != nil {
		return nil, Log{}, err
	}
	if len(ts) != 1 {
		return nil, Log{}, ctx.Fail(mismatchf("expected a single-valued expression, got %d values", len(ts)))
	}
	return ts[0], l, nil
}

// checkSingleA is checkSingle but also returns the single result's
// alias set, for callers (Apply arguments, loop merge initializers, tuple
// literals and projections) that need a single sub-expression's aliases.
func (ck *Checker) checkSingleA(ctx *Context, e ir.Exp) (ir.Type, ir.Names, Log, error) {
	ts, as, l, err := ck.CheckExp(ctx, e)
	if err != nil {
		return nil, ir.NoNames, Log{}, err
	}
	if len(ts) != 1 {
		return nil, ir.NoNames, Log{}, ctx.Fail(mismatchf("expected a single-valued expression, got %d values", len(ts)))
	}
	return ts[0], as[0], l, nil
}

func (ck *Checker) checkBinOp(ctx *Context, e ir.BinOp) ([]ir.Type, []ir.Names, Log, error) {
	xt, xl, err := ck.checkSingle(ctx, e.X)
	if err != nil {
		return nil, nil, Log{}, err
	}
	if err := ck.requirePrim(ctx, xt, e.Operand); err != nil {
		return nil, nil, Log{}, err
	}
	yt, yl, err := ck.checkSingle(ctx, e.Y)
	if err != nil {
		return nil, nil, Log{}, err
	}
	if err := ck.requirePrim(ctx, yt, e.Operand); err != nil {
		return nil, nil, Log{}, err
	}
	result := ir.Prim{P: e.Operand}
	if e.IsCompare {
		result = ir.Prim{P: ir.Bool}
	}
	return one(result), oneA(ir.NoNames), Seq(xl, yl), nil
}

func (ck *Checker) checkUnOp(ctx *Context, e ir.UnOp) ([]ir.Type, []ir.Names, Log, error) {
	xt, xl, err := ck.checkSingle(ctx, e.X)
	if err != nil {
		return nil, nil, Log{}, err
	}
	if err := ck.requirePrim(ctx, xt, e.Operand); err != nil {
		return nil, nil, Log{}, err
	}
	return one(ir.Prim{P: e.Operand}), oneA(ir.NoNames), xl, nil
}

func (ck *Checker) checkConvOp(ctx *Context, e ir.ConvOp) ([]ir.Type, []ir.Names, Log, error) {
	xt, xl, err := ck.checkSingle(ctx, e.X)
	if err != nil {
		return nil, nil, Log{}, err
	}
	if err := ck.requirePrim(ctx, xt, e.From); err != nil {
		return nil, nil, Log{}, err
	}
	return one(ir.Prim{P: e.To}), oneA(ir.NoNames), xl, nil
}

func (ck *Checker) checkArrayLit(ctx *Context, e ir.ArrayLit) ([]ir.Type, []ir.Names, Log, error) {
	log := Identity()
	for _, elem := range e.Elems {
		t, l, err := ck.checkSingle(ctx, elem)
		if err != nil {
			return nil, nil, Log{}, err
		}
		if err := ck.requirePrim(ctx, t, e.Elem); err != nil {
			return nil, nil, Log{}, err
		}
		log = Seq(log, l)
	}
	return one(ir.NewArray(e.Elem, ir.Shape{ir.DimConst(len(e.Elems))})), oneA(ir.NoNames), log, nil
}

// dimExprType checks dimExpr is i32-typed and converts it to a Dim: a
// literal integer becomes DimConst, a variable reference becomes DimVar
// (so later shape comparisons can recognise two uses of the same named
// size), and anything else is rejected - spec.md leaves the general case
// of an arbitrary size-computing expression unspecified, and allowing it
// here would mean inventing symbolic dimension arithmetic the spec never
// asks for.
func (ck *Checker) dimExprType(ctx *Context, dimExpr ir.Exp) (ir.Dim, Log, error) {
	t, l, err := ck.checkSingle(ctx, dimExpr)
	if err != nil {
		return nil, Log{}, err
	}
	if err := ck.requirePrim(ctx, t, ir.I32); err != nil {
		return nil, Log{}, err
	}
	switch d := dimExpr.(type) {
	case ir.Var:
		return ir.DimVar{Name: d.Name}, l, nil
	case ir.Literal:
		if n, ok := d.Value.(int64); ok {
			return ir.DimConst(n), l, nil
		}
	}
	return nil, Log{}, ctx.Fail(mismatchf("array dimension must be a literal or a variable reference"))
}

func (ck *Checker) shapeFromDimExprs(ctx *Context, exprs []ir.Exp) (ir.Shape, Log, error) {
	shape := make(ir.Shape, len(exprs))
	l := Identity()
	for i, dimExpr := range exprs {
		d, dl, err := ck.dimExprType(ctx, dimExpr)
		if err != nil {
			return nil, Log{}, err
		}
		shape[i] = d
		l = Seq(l, dl)
	}
	return shape, l, nil
}

func (ck *Checker) checkIndex(ctx *Context, e ir.Index) ([]ir.Type, []ir.Names, Log, error) {
	arrT, arrL, err := ctx.Observe(e.Arr)
	if err != nil {
		return nil, nil, Log{}, err
	}
	arr, ok := ir.IsArray(arrT)
	if !ok {
		return nil, nil, Log{}, ctx.Fail(checkerr.NotAnArray{Name: e.Arr, Type: arrT})
	}
	if len(e.Indices) > arr.Rank() {
		return nil, nil, Log{}, ctx.Fail(checkerr.IndexingError{Rank: arr.Rank(), Got: len(e.Indices)})
	}
	l := arrL
	for _, idx := range e.Indices {
		it, il, err := ck.checkSingle(ctx, idx)
		if err != nil {
			return nil, nil, Log{}, err
		}
		if err := ck.requirePrim(ctx, it, ir.I32); err != nil {
			return nil, nil, Log{}, err
		}
		l = Seq(l, il)
	}
	for _, cert := range e.Certs {
		ct, cl, err := ctx.Observe(cert)
		if err != nil {
			return nil, nil, Log{}, err
		}
		if err := ck.requirePrim(ctx, ct, ir.Cert); err != nil {
			return nil, nil, Log{}, err
		}
		l = Seq(l, cl)
	}
	if len(e.Indices) == arr.Rank() {
		return one(ir.Prim{P: arr.Elem}), oneA(ir.NoNames), l, nil
	}
	resultT := ir.Array{Elem: arr.Elem, Shape: arr.Shape[len(e.Indices):], Uniqueness: arr.Uniqueness}
	return one(resultT), oneA(ctx.ExpandAliases(ir.NewNames(e.Arr))), l, nil
}

func (ck *Checker) checkIota(ctx *Context, e ir.Iota) ([]ir.Type, []ir.Names, Log, error) {
	d, l, err := ck.dimExprType(ctx, e.N)
	if err != nil {
		return nil, nil, Log{}, err
	}
	return one(ir.NewArray(e.T, ir.Shape{d}).WithUniq(ir.Unique)), oneA(ir.NoNames), l, nil
}

func (ck *Checker) checkReplicate(ctx *Context, e ir.Replicate) ([]ir.Type, []ir.Names, Log, error) {
	shape, shapeLog, err := ck.shapeFromDimExprs(ctx, e.Shape)
	if err != nil {
		return nil, nil, Log{}, err
	}
	vt, vl, err := ck.checkSingle(ctx, e.Value)
	if err != nil {
		return nil, nil, Log{}, err
	}
	l := Seq(shapeLog, vl)
	switch vt := vt.(type) {
	case ir.Prim:
		return one(ir.Array{Elem: vt.P, Shape: shape, Uniqueness: ir.Unique}), oneA(ir.NoNames), l, nil
	case ir.Array:
		resultShape := append(append(ir.Shape{}, shape...), vt.Shape...)
		return one(ir.Array{Elem: vt.Elem, Shape: resultShape, Uniqueness: ir.Unique}), oneA(ir.NoNames), l, nil
	default:
		return nil, nil, Log{}, ctx.Fail(mismatchf("cannot replicate a value of type '%s'", vt))
	}
}

func (ck *Checker) checkScratch(ctx *Context, e ir.Scratch) ([]ir.Type, []ir.Names, Log, error) {
	shape, l, err := ck.shapeFromDimExprs(ctx, e.Shape)
	if err != nil {
		return nil, nil, Log{}, err
	}
	return one(ir.Array{Elem: e.Elem, Shape: shape, Uniqueness: ir.Unique}), oneA(ir.NoNames), l, nil
}

// checkReshape's result aliases Arr: reshaping reinterprets the same
// underlying elements under a new shape, it does not copy them.
func (ck *Checker) checkReshape(ctx *Context, e ir.Reshape) ([]ir.Type, []ir.Names, Log, error) {
	arrT, arrL, err := ctx.Observe(e.Arr)
	if err != nil {
		return nil, nil, Log{}, err
	}
	arr, ok := ir.IsArray(arrT)
	if !ok {
		return nil, nil, Log{}, ctx.Fail(checkerr.NotAnArray{Name: e.Arr, Type: arrT})
	}
	shape, shapeLog, err := ck.shapeFromDimExprs(ctx, e.NewShape)
	if err != nil {
		return nil, nil, Log{}, err
	}
	resultT := ir.Array{Elem: arr.Elem, Shape: shape, Uniqueness: arr.Uniqueness}
	return one(resultT), oneA(ctx.ExpandAliases(ir.NewNames(e.Arr))), Seq(arrL, shapeLog), nil
}

// checkRearrange's result aliases Arr for the same reason as Reshape:
// it is a view under a permuted shape, not a new allocation.
func (ck *Checker) checkRearrange(ctx *Context, e ir.Rearrange) ([]ir.Type, []ir.Names, Log, error) {
	arrT, l, err := ctx.Observe(e.Arr)
	if err != nil {
		return nil, nil, Log{}, err
	}
	arr, ok := ir.IsArray(arrT)
	if !ok {
		return nil, nil, Log{}, ctx.Fail(checkerr.NotAnArray{Name: e.Arr, Type: arrT})
	}
	if !isPermutation(e.Perm, arr.Rank()) {
		return nil, nil, Log{}, ctx.Fail(checkerr.PermutationError{Perm: e.Perm, Rank: arr.Rank(), Arr: e.Arr})
	}
	newShape := make(ir.Shape, arr.Rank())
	for i, p := range e.Perm {
		newShape[i] = arr.Shape[p]
	}
	resultT := ir.Array{Elem: arr.Elem, Shape: newShape, Uniqueness: arr.Uniqueness}
	return one(resultT), oneA(ctx.ExpandAliases(ir.NewNames(e.Arr))), l, nil
}

// isPermutation reports whether perm is a bijection on [0, rank) - every
// index in range appears exactly once (spec.md ss8 property 9).
func isPermutation(perm []int, rank int) bool {
	if len(perm) != rank {
		return false
	}
	for _, p := range perm {
		if p < 0 || p >= rank {
			return false
		}
	}
	seen := util.SetFromSeq(slices.Values(perm), rank)
	return seen.Size() == rank
}

// checkSplit's pieces each alias Arr - every piece is a view into the
// same underlying storage, just like Reshape and Rearrange.
func (ck *Checker) checkSplit(ctx *Context, e ir.Split) ([]ir.Type, []ir.Names, Log, error) {
	arrT, arrL, err := ctx.Observe(e.Arr)
	if err != nil {
		return nil, nil, Log{}, err
	}
	arr, ok := ir.IsArray(arrT)
	if !ok || arr.Rank() == 0 {
		return nil, nil, Log{}, ctx.Fail(checkerr.NotAnArray{Name: e.Arr, Type: arrT})
	}
	sizes := make([]ir.Dim, len(e.Sizes))
	l := arrL
	for i, sizeExpr := range e.Sizes {
		d, dl, err := ck.dimExprType(ctx, sizeExpr)
		if err != nil {
			return nil, nil, Log{}, err
		}
		sizes[i] = d
		l = Seq(l, dl)
	}
	// Per spec.md ss9, whether sizes sum to arr's outer dimension is
	// deliberately left unchecked.
	results := make([]ir.Type, len(sizes))
	aliases := make([]ir.Names, len(sizes))
	arrAliases := ctx.ExpandAliases(ir.NewNames(e.Arr))
	for i, d := range sizes {
		shape := append(ir.Shape{d}, arr.Shape[1:]...)
		results[i] = ir.Array{Elem: arr.Elem, Shape: shape, Uniqueness: arr.Uniqueness}
		aliases[i] = arrAliases
	}
	return results, aliases, l, nil
}

func (ck *Checker) checkConcat(ctx *Context, e ir.Concat) ([]ir.Type, []ir.Names, Log, error) {
	if len(e.Arrs) == 0 {
		return nil, nil, Log{}, ctx.Fail(mismatchf("concat requires at least one array"))
	}
	var first ir.Array
	l := Identity()
	for i, name := range e.Arrs {
		t, ol, err := ctx.Observe(name)
		if err != nil {
			return nil, nil, Log{}, err
		}
		arr, ok := ir.IsArray(t)
		if !ok {
			return nil, nil, Log{}, ctx.Fail(checkerr.NotAnArray{Name: name, Type: t})
		}
		if i == 0 {
			first = arr
		} else {
			if arr.Elem != first.Elem || len(arr.Shape) != len(first.Shape) {
				return nil, nil, Log{}, ctx.Fail(checkerr.TypeMismatch{Msg: fmt.Sprintf(
					"concat: '%s' has a different element type or rank than '%s'", name, e.Arrs[0])})
			}
			for d := 1; d < len(arr.Shape); d++ {
				if !arr.Shape[d].Equal(first.Shape[d]) {
					return nil, nil, Log{}, ctx.Fail(checkerr.TypeMismatch{Msg: fmt.Sprintf(
						"concat: inner dimension %d of '%s' disagrees with '%s'", d, name, e.Arrs[0])})
				}
			}
		}
		l = Seq(l, ol)
	}
	resultShape := append(ir.Shape{ck.freshDim()}, first.Shape[1:]...)
	resultT := ir.Array{Elem: first.Elem, Shape: resultShape, Uniqueness: first.Uniqueness}
	return one(resultT), oneA(ir.NoNames), l, nil
}

func (ck *Checker) checkCopy(ctx *Context, e ir.Copy) ([]ir.Type, []ir.Names, Log, error) {
	arrT, l, err := ctx.Observe(e.Arr)
	if err != nil {
		return nil, nil, Log{}, err
	}
	arr, ok := ir.IsArray(arrT)
	if !ok {
		return nil, nil, Log{}, ctx.Fail(checkerr.NotAnArray{Name: e.Arr, Type: arrT})
	}
	return one(arr.WithUniq(ir.Unique)), oneA(ir.NoNames), l, nil
}

func (ck *Checker) checkAssert(ctx *Context, e ir.Assert) ([]ir.Type, []ir.Names, Log, error) {
	t, l, err := ck.checkSingle(ctx, e.Cond)
	if err != nil {
		return nil, nil, Log{}, err
	}
	if err := ck.requirePrim(ctx, t, ir.Bool); err != nil {
		return nil, nil, Log{}, err
	}
	return one(ir.Prim{P: ir.Cert}), oneA(ir.NoNames), l, nil
}

func (ck *Checker) checkPartition(ctx *Context, e ir.Partition) ([]ir.Type, []ir.Names, Log, error) {
	if e.N < 1 {
		return nil, nil, Log{}, ctx.Fail(mismatchf("partition count must be at least 1, got %d", e.N))
	}
	arrT, l, err := ctx.Observe(e.Arr)
	if err != nil {
		return nil, nil, Log{}, err
	}
	arr, ok := ir.IsArray(arrT)
	if !ok {
		return nil, nil, Log{}, ctx.Fail(checkerr.NotAnArray{Name: e.Arr, Type: arrT})
	}
	results := make([]ir.Type, e.N)
	for i := range results {
		shape := append(ir.Shape{ck.freshDim()}, arr.Shape[1:]...)
		results[i] = ir.Array{Elem: arr.Elem, Shape: shape, Uniqueness: arr.Uniqueness}
	}
	return results, noAliases(e.N), l, nil
}

func (ck *Checker) checkIf(ctx *Context, e ir.If) ([]ir.Type, []ir.Names, Log, error) {
	condT, condL, err := ck.checkSingle(ctx, e.Cond)
	if err != nil {
		return nil, nil, Log{}, err
	}
	if err := ck.requirePrim(ctx, condT, ir.Bool); err != nil {
		return nil, nil, Log{}, err
	}
	var thenTypes, elseTypes []ir.Type
	var thenAliases, elseAliases []ir.Names
	var thenLog, elseLog Log
	err = ctx.WithBreadcrumb("if-then branch", func() error {
		thenTypes, thenAliases, thenLog, err = ck.CheckExp(ctx, e.Then)
		return err
	})
	if err != nil {
		return nil, nil, Log{}, err
	}
	err = ctx.WithBreadcrumb("if-else branch", func() error {
		elseTypes, elseAliases, elseLog, err = ck.CheckExp(ctx, e.Else)
		return err
	})
	if err != nil {
		return nil, nil, Log{}, err
	}
	if len(thenTypes) != len(elseTypes) {
		return nil, nil, Log{}, ctx.Fail(mismatchf("if-branches return a different number of values (%d vs %d)", len(thenTypes), len(elseTypes)))
	}
	result := make([]ir.Type, len(thenTypes))
	aliases := make([]ir.Names, len(thenTypes))
	for i := range thenTypes {
		g, ok := ck.generalize(thenTypes[i], elseTypes[i])
		if !ok {
			return nil, nil, Log{}, ctx.Fail(checkerr.Unify{Type1: thenTypes[i], Type2: elseTypes[i]})
		}
		result[i] = g
		aliases[i] = thenAliases[i].Union(elseAliases[i])
	}
	return result, aliases, Seq(condL, Alt(thenLog, elseLog)), nil
}

// generalize computes the pointwise least-upper-bound of two branch
// result types (spec.md GLOSSARY "Generalized ext types"): where
// concrete dimensions disagree, a fresh dimension variable replaces
// both, and uniqueness is the meet (Unique only if both sides agree).
func (ck *Checker) generalize(a, b ir.Type) (ir.Type, bool) {
	switch a := a.(type) {
	case ir.Prim:
		bp, ok := b.(ir.Prim)
		if !ok || bp.P != a.P {
			return nil, false
		}
		return a, true
	case ir.Array:
		ba, ok := b.(ir.Array)
		if !ok || ba.Elem != a.Elem || len(ba.Shape) != len(a.Shape) {
			return nil, false
		}
		shape := make(ir.Shape, len(a.Shape))
		for i := range shape {
			if a.Shape[i].Equal(ba.Shape[i]) {
				shape[i] = a.Shape[i]
			} else {
				shape[i] = ck.freshDim()
			}
		}
		u := ir.Nonunique
		if a.Uniqueness == ir.Unique && ba.Uniqueness == ir.Unique {
			u = ir.Unique
		}
		return ir.Array{Elem: a.Elem, Shape: shape, Uniqueness: u}, true
	case ir.Tuple:
		bt, ok := b.(ir.Tuple)
		if !ok || len(bt.Elems) != len(a.Elems) {
			return nil, false
		}
		elems := make([]ir.Type, len(a.Elems))
		for i := range a.Elems {
			g, ok := ck.generalize(a.Elems[i], bt.Elems[i])
			if !ok {
				return nil, false
			}
			elems[i] = g
		}
		return ir.Tuple{Elems: elems}, true
	default:
		return nil, false
	}
}

// checkTupleElems checks every element of a tuple literal in order,
// threading consumption effects across elements the same way ArrayLit
// does, and returns each element's type and alias set individually.
func (ck *Checker) checkTupleElems(ctx *Context, elems []ir.Exp) ([]ir.Type, []ir.Names, Log, error) {
	types := make([]ir.Type, len(elems))
	aliases := make([]ir.Names, len(elems))
	l := Identity()
	for i, sub := range elems {
		t, a, sl, err := ck.checkSingleA(ctx, sub)
		if err != nil {
			return nil, nil, Log{}, err
		}
		types[i] = t
		aliases[i] = a
		l = Seq(l, sl)
	}
	return types, aliases, l, nil
}

func (ck *Checker) checkTupleLit(ctx *Context, e ir.TupleLit) ([]ir.Type, []ir.Names, Log, error) {
	types, aliases, l, err := ck.checkTupleElems(ctx, e.Elems)
	if err != nil {
		return nil, nil, Log{}, err
	}
	return one(ir.Tuple{Elems: types}), []ir.Names{unionAll(aliases)}, l, nil
}

func unionAll(names []ir.Names) ir.Names {
	u := ir.NoNames
	for _, n := range names {
		u = u.Union(n)
	}
	return u
}

// checkTupleProject's result aliases the projected component's own
// aliases when the operand is a fresh TupleLit we tracked per-element,
// and otherwise falls back to the whole tuple's combined alias set -
// tuple-typed values reaching this point any other way (an Apply
// result, a let-bound name) carry one flat alias set rather than
// per-component ones, matching ir.LetInfo's single Aliases field.
func (ck *Checker) checkTupleProject(ctx *Context, e ir.TupleProject) ([]ir.Type, []ir.Names, Log, error) {
	if lit, ok := e.Tuple.(ir.TupleLit); ok {
		if e.Index < 0 || e.Index >= len(lit.Elems) {
			return nil, nil, Log{}, ctx.Fail(mismatchf("cannot project index %d out of a %d-element tuple literal", e.Index, len(lit.Elems)))
		}
		types, aliases, l, err := ck.checkTupleElems(ctx, lit.Elems)
		if err != nil {
			return nil, nil, Log{}, err
		}
		return one(types[e.Index]), oneA(aliases[e.Index]), l, nil
	}
	t, a, l, err := ck.checkSingleA(ctx, e.Tuple)
	if err != nil {
		return nil, nil, Log{}, err
	}
	tup, ok := t.(ir.Tuple)
	if !ok || e.Index < 0 || e.Index >= len(tup.Elems) {
		return nil, nil, Log{}, ctx.Fail(mismatchf("cannot project index %d out of type '%s'", e.Index, t))
	}
	return one(tup.Elems[e.Index]), oneA(a), l, nil
}
