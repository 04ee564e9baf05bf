package check

import (
	"testing"

	"github.com/arrfunc/unicheck/checkerr"
	"github.com/arrfunc/unicheck/ir"
	"github.com/stretchr/testify/assert"
)

func declareIdentityLike(t *testing.T, ctx *Context, fn string, paramDiet ir.Diet) {
	t.Helper()
	n := ir.NewVName("n")
	binding := ir.FunBinding{
		Params: []ir.Param{{Name: ir.NewVName("xs"), Type: ir.Array{Elem: ir.I32, Shape: ir.Shape{ir.DimVar{Name: n}}, Uniqueness: ir.Unique}, Diet: paramDiet}},
		RetType: []ir.RetType{{
			Type:       ir.ExtArray{Elem: ir.I32, Shape: ir.Shape{ir.DimVar{Name: n}}, Uniqueness: ir.Unique},
			Uniqueness: ir.Unique,
		}},
	}
	assert.NoError(t, ctx.DeclareFunc(ir.NewFName(fn), binding))
}

func TestCheckApplyBindsNamedDimensionFromArgument(t *testing.T) {
	ck := newChecker()
	ctx := NewContext(true, nil)
	declareIdentityLike(t, ctx, "identity", ir.ConsumeDiet)

	xs := ir.NewVName("xs")
	err := ctx.WithVars([]ir.VName{xs}, []ir.NameInfo{ir.FParamInfo{TypeVal: ir.Array{Elem: ir.I32, Shape: ir.Shape{ir.DimConst(7)}, Uniqueness: ir.Unique}}}, shadowOrDup, func() error {
		e := ir.Apply{Fn: ir.NewFName("identity"), Args: []ir.Exp{ir.Var{Name: xs}}}
		types, aliases, _, err := ck.CheckExp(ctx, e)
		assert.NoError(t, err)
		if assert.Len(t, types, 1) {
			arr := types[0].(ir.Array)
			assert.Equal(t, ir.DimConst(7), arr.Shape[0], "the declared DimVar 'n' must resolve to the call site's concrete dimension")
		}
		assert.True(t, aliases[0].IsEmpty(), "a call's results are always fresh to the caller")
		return nil
	})
	assert.NoError(t, err)
}

func TestCheckApplyRejectsArityMismatch(t *testing.T) {
	ck := newChecker()
	ctx := NewContext(true, nil)
	declareIdentityLike(t, ctx, "identity", ir.ConsumeDiet)

	e := ir.Apply{Fn: ir.NewFName("identity"), Args: []ir.Exp{}}
	_, _, _, err := ck.CheckExp(ctx, e)
	if assert.Error(t, err) {
		assert.Equal(t, checkerr.CodeParameterMismatch, err.(*checkerr.WithTrace).Code())
	}
}

func TestCheckApplyConsumesArgumentWithConsumeDiet(t *testing.T) {
	ck := newChecker()
	ctx := NewContext(true, nil)
	declareIdentityLike(t, ctx, "identity", ir.ConsumeDiet)

	xs := ir.NewVName("xs")
	err := ctx.WithVars([]ir.VName{xs}, []ir.NameInfo{ir.FParamInfo{TypeVal: ir.Array{Elem: ir.I32, Shape: ir.Shape{ir.DimConst(7)}, Uniqueness: ir.Unique}}}, shadowOrDup, func() error {
		e := ir.Let{
			Pattern: []ir.LetBinding{{Name: ir.NewVName("ys")}},
			Value:   ir.Apply{Fn: ir.NewFName("identity"), Args: []ir.Exp{ir.Var{Name: xs}}},
			Body:    ir.Var{Name: xs},
		}
		_, _, l, err := ck.CheckExp(ctx, e)
		assert.NoError(t, err)
		_, err = ctx.checkLog(l)
		if assert.Error(t, err) {
			assert.Equal(t, checkerr.CodeUseAfterConsume, err.(*checkerr.WithTrace).Code())
		}
		return nil
	})
	assert.NoError(t, err)
}

func TestCheckApplyConsumesArgumentAliasSetWhenArgumentIsAView(t *testing.T) {
	// A Consume-diet argument need not be a bare variable reference - here
	// it is a Reshape view over xs, whose own checked alias set (per
	// checkReshape) is ExpandAliases({xs}). checkApply must consume that
	// returned alias set rather than only handling the ir.Var case, or
	// this reshape-then-consume would silently fail to invalidate xs.
	ck := newChecker()
	ctx := NewContext(true, nil)
	reshapedType := ir.Array{Elem: ir.I32, Shape: ir.Shape{ir.DimConst(8)}, Uniqueness: ir.Unique}
	binding := ir.FunBinding{
		Params:  []ir.Param{{Name: ir.NewVName("xs"), Type: reshapedType, Diet: ir.ConsumeDiet}},
		RetType: []ir.RetType{{Type: ir.ExtOf(reshapedType), Uniqueness: ir.Unique}},
	}
	assert.NoError(t, ctx.DeclareFunc(ir.NewFName("identity"), binding))

	xs := ir.NewVName("xs")
	xsType := ir.Array{Elem: ir.I32, Shape: ir.Shape{ir.DimConst(4)}, Uniqueness: ir.Unique}
	err := ctx.WithVars([]ir.VName{xs}, []ir.NameInfo{ir.FParamInfo{TypeVal: xsType, Diet: ir.ConsumeDiet}}, shadowOrDup, func() error {
		reshaped := ir.Reshape{Arr: xs, NewShape: []ir.Exp{ir.Literal{T: ir.I32, Value: int64(8)}}}
		e := ir.Let{
			Pattern: []ir.LetBinding{{Name: ir.NewVName("ys")}},
			Value:   ir.Apply{Fn: ir.NewFName("identity"), Args: []ir.Exp{reshaped}},
			Body:    ir.Var{Name: xs},
		}
		_, _, l, err := ck.CheckExp(ctx, e)
		assert.NoError(t, err)
		_, err = ctx.checkLog(l)
		if assert.Error(t, err) {
			assert.Equal(t, checkerr.CodeUseAfterConsume, err.(*checkerr.WithTrace).Code())
		}
		return nil
	})
	assert.NoError(t, err)
}

func TestApplyRetTypeFallsBackForTrulyUnboundExistential(t *testing.T) {
	// No parameter ties Ext(0) to any argument shape, so there is nothing
	// for bindExistentials to have bound it to - ir.Instantiate's
	// synthesized-DimVar fallback is the only thing left to produce.
	rt := ir.RetType{Type: ir.ExtArray{Elem: ir.I32, Shape: ir.Shape{ir.DimExt(0)}}, Uniqueness: ir.Unique}
	got := applyRetType(rt, map[ir.VName]ir.Dim{}, map[int]ir.Dim{})
	arr, ok := got.(ir.Array)
	if !assert.True(t, ok) {
		return
	}
	_, isVar := arr.Shape[0].(ir.DimVar)
	assert.True(t, isVar, "an unbound existential falls back to a synthesized DimVar")
	assert.Equal(t, ir.Unique, arr.Uniqueness)
}

func TestApplyRetTypeResolvesExistentialBoundByArgument(t *testing.T) {
	rt := ir.RetType{Type: ir.ExtArray{Elem: ir.I32, Shape: ir.Shape{ir.DimExt(0)}}, Uniqueness: ir.Unique}
	got := applyRetType(rt, map[ir.VName]ir.Dim{}, map[int]ir.Dim{0: ir.DimConst(7)})
	arr, ok := got.(ir.Array)
	if !assert.True(t, ok) {
		return
	}
	assert.Equal(t, ir.DimConst(7), arr.Shape[0])
}

func declareRankPreservingFn(t *testing.T, ctx *Context, fn string) {
	t.Helper()
	// Both parameters declare their sole dimension as the same unnamed
	// existential Ext(0); the function's own claimed shape is whatever the
	// caller's arguments agree on at that position.
	binding := ir.FunBinding{
		Params: []ir.Param{
			{Name: ir.NewVName("a"), Type: ir.Array{Elem: ir.I32, Shape: ir.Shape{ir.DimExt(0)}}, Diet: ir.ObserveDiet},
			{Name: ir.NewVName("b"), Type: ir.Array{Elem: ir.I32, Shape: ir.Shape{ir.DimExt(0)}}, Diet: ir.ObserveDiet},
		},
		RetType: []ir.RetType{{
			Type:       ir.ExtArray{Elem: ir.I32, Shape: ir.Shape{ir.DimExt(0)}},
			Uniqueness: ir.Nonunique,
		}},
	}
	assert.NoError(t, ctx.DeclareFunc(ir.NewFName(fn), binding))
}

func TestCheckApplyBindsUnnamedExistentialFromArgument(t *testing.T) {
	ck := newChecker()
	ctx := NewContext(true, nil)
	declareRankPreservingFn(t, ctx, "both")

	a, b := ir.NewVName("a"), ir.NewVName("b")
	err := ctx.WithVars(
		[]ir.VName{a, b},
		[]ir.NameInfo{
			ir.FParamInfo{TypeVal: ir.Array{Elem: ir.I32, Shape: ir.Shape{ir.DimConst(5)}}},
			ir.FParamInfo{TypeVal: ir.Array{Elem: ir.I32, Shape: ir.Shape{ir.DimConst(5)}}},
		},
		shadowOrDup,
		func() error {
			e := ir.Apply{Fn: ir.NewFName("both"), Args: []ir.Exp{ir.Var{Name: a}, ir.Var{Name: b}}}
			types, _, _, err := ck.CheckExp(ctx, e)
			assert.NoError(t, err)
			if assert.Len(t, types, 1) {
				arr := types[0].(ir.Array)
				assert.Equal(t, ir.DimConst(5), arr.Shape[0])
			}
			return nil
		},
	)
	assert.NoError(t, err)
}

func TestCheckApplyRejectsConflictingExistentialBindings(t *testing.T) {
	ck := newChecker()
	ctx := NewContext(true, nil)
	declareRankPreservingFn(t, ctx, "both")

	a, b := ir.NewVName("a"), ir.NewVName("b")
	err := ctx.WithVars(
		[]ir.VName{a, b},
		[]ir.NameInfo{
			ir.FParamInfo{TypeVal: ir.Array{Elem: ir.I32, Shape: ir.Shape{ir.DimConst(5)}}},
			ir.FParamInfo{TypeVal: ir.Array{Elem: ir.I32, Shape: ir.Shape{ir.DimConst(9)}}},
		},
		shadowOrDup,
		func() error {
			e := ir.Apply{Fn: ir.NewFName("both"), Args: []ir.Exp{ir.Var{Name: a}, ir.Var{Name: b}}}
			_, _, _, err := ck.CheckExp(ctx, e)
			if assert.Error(t, err) {
				assert.Equal(t, checkerr.CodeBadAnnotation, err.(*checkerr.WithTrace).Code())
			}
			return nil
		},
	)
	assert.NoError(t, err)
}

func TestBindDimsStructurallyZipsTuples(t *testing.T) {
	n, m := ir.NewVName("n"), ir.NewVName("m")
	declared := ir.Tuple{Elems: []ir.Type{
		ir.Array{Elem: ir.I32, Shape: ir.Shape{ir.DimVar{Name: n}}},
		ir.Array{Elem: ir.F32, Shape: ir.Shape{ir.DimVar{Name: m}}},
	}}
	actual := ir.Tuple{Elems: []ir.Type{
		ir.Array{Elem: ir.I32, Shape: ir.Shape{ir.DimConst(3)}},
		ir.Array{Elem: ir.F32, Shape: ir.Shape{ir.DimConst(9)}},
	}}
	subst := make(map[ir.VName]ir.Dim)
	bindDims(declared, actual, subst)
	assert.Equal(t, ir.DimConst(3), subst[n])
	assert.Equal(t, ir.DimConst(9), subst[m])
}

func TestCheckLambdaUnoccursItsOwnParameters(t *testing.T) {
	ck := newChecker()
	ctx := NewContext(true, nil)
	p := ir.NewVName("p")
	lam := ir.Lambda{
		Params: []ir.Param{{Name: p, Type: ir.Array{Elem: ir.I32, Shape: ir.Shape{ir.DimConst(4)}}, Diet: ir.ObserveDiet}},
		Body:   ir.Var{Name: p},
		Ret:    []ir.Type{ir.Array{Elem: ir.I32, Shape: ir.Shape{ir.DimConst(4)}}},
	}
	types, l, err := ck.CheckLambda(ctx, lam)
	assert.NoError(t, err)
	assert.Len(t, types, 1)
	for _, o := range l.Occs {
		assert.False(t, o.Observed.Contains(p), "the lambda's own parameter must not leak into the caller's log")
	}
}
