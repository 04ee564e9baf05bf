package check

import (
	"testing"

	"github.com/arrfunc/unicheck/checkerr"
	"github.com/arrfunc/unicheck/ir"
	"github.com/stretchr/testify/assert"
)

func TestCheckLetStripsBoundNameFromBodyAliases(t *testing.T) {
	ck := newChecker()
	ctx := NewContext(true, nil)
	xs := ir.NewVName("xs")
	err := ctx.WithVars([]ir.VName{xs}, []ir.NameInfo{ir.FParamInfo{TypeVal: arrType(4)}}, shadowOrDup, func() error {
		ys := ir.NewVName("ys")
		e := ir.Let{
			Pattern: []ir.LetBinding{{Name: ys, Aliases: names("xs")}},
			Value:   ir.Var{Name: xs},
			Body:    ir.Var{Name: ys},
		}
		_, aliases, _, err := ck.CheckExp(ctx, e)
		assert.NoError(t, err)
		assert.True(t, aliases[0].Contains(xs))
		assert.False(t, aliases[0].Contains(ys), "ys itself goes out of scope once the let ends")
		return nil
	})
	assert.NoError(t, err)
}

func TestCheckLetRejectsArityMismatch(t *testing.T) {
	ck := newChecker()
	ctx := NewContext(true, nil)
	e := ir.Let{
		Pattern: []ir.LetBinding{{Name: ir.NewVName("a")}, {Name: ir.NewVName("b")}},
		Value:   ir.Literal{T: ir.I32, Value: int64(1)},
		Body:    ir.Literal{T: ir.I32, Value: int64(1)},
	}
	_, _, _, err := ck.CheckExp(ctx, e)
	if assert.Error(t, err) {
		assert.Equal(t, checkerr.CodeInvalidPattern, err.(*checkerr.WithTrace).Code())
	}
}

func TestCheckLetRejectsDuplicatePatternNames(t *testing.T) {
	ck := newChecker()
	ctx := NewContext(true, nil)
	assert.NoError(t, ctx.DeclareFunc(ir.NewFName("pair"), ir.FunBinding{
		RetType: []ir.RetType{
			{Type: ir.ExtPrim{P: ir.I32}},
			{Type: ir.ExtPrim{P: ir.I32}},
		},
	}))

	a := ir.NewVName("a")
	e := ir.Let{
		Pattern: []ir.LetBinding{{Name: a}, {Name: a}},
		Value:   ir.Apply{Fn: ir.NewFName("pair")},
		Body:    ir.Literal{T: ir.I32, Value: int64(1)},
	}
	_, _, _, err := ck.CheckExp(ctx, e)
	if assert.Error(t, err) {
		assert.Equal(t, checkerr.CodeDupPattern, err.(*checkerr.WithTrace).Code())
	}
}

func TestCheckForLoopTreatsResultsAsFreshAndUnoccursIndex(t *testing.T) {
	ck := newChecker()
	ctx := NewContext(true, nil)
	acc := ir.NewVName("acc")
	e := ir.ForLoop{
		Index: ir.NewVName("i"),
		Bound: ir.Literal{T: ir.I32, Value: int64(10)},
		Merge: []ir.MergeParam{{
			Param: ir.Param{Name: acc, Type: ir.Prim{P: ir.I32}, Diet: ir.ObserveDiet},
			Init:  ir.Literal{T: ir.I32, Value: int64(0)},
		}},
		Body: ir.Var{Name: acc},
	}
	types, aliases, l, err := ck.CheckExp(ctx, e)
	assert.NoError(t, err)
	assert.Equal(t, ir.Prim{P: ir.I32}, types[0])
	assert.True(t, aliases[0].IsEmpty())
	for _, o := range l.Occs {
		assert.False(t, o.Observed.Contains(ir.NewVName("i")))
	}
}

func TestCheckForLoopRejectsNonI32Bound(t *testing.T) {
	ck := newChecker()
	ctx := NewContext(true, nil)
	e := ir.ForLoop{
		Index: ir.NewVName("i"),
		Bound: ir.Literal{T: ir.Bool, Value: true},
		Merge: nil,
		Body:  ir.Literal{T: ir.I32, Value: int64(1)},
	}
	_, _, _, err := ck.CheckExp(ctx, e)
	if assert.Error(t, err) {
		assert.Equal(t, checkerr.CodeUnexpectedType, err.(*checkerr.WithTrace).Code())
	}
}

func TestCheckWhileLoopChecksCondAgainstMergeScope(t *testing.T) {
	ck := newChecker()
	ctx := NewContext(true, nil)
	cont := ir.NewVName("cont")
	e := ir.WhileLoop{
		Cond: cont,
		Merge: []ir.MergeParam{{
			Param: ir.Param{Name: cont, Type: ir.Prim{P: ir.Bool}, Diet: ir.ObserveDiet},
			Init:  ir.Literal{T: ir.Bool, Value: true},
		}},
		Body: ir.Literal{T: ir.Bool, Value: false},
	}
	types, aliases, _, err := ck.CheckExp(ctx, e)
	assert.NoError(t, err)
	assert.Equal(t, ir.Prim{P: ir.Bool}, types[0])
	assert.True(t, aliases[0].IsEmpty())
}

func TestCheckWhileLoopRejectsNonBoolCond(t *testing.T) {
	ck := newChecker()
	ctx := NewContext(true, nil)
	cont := ir.NewVName("cont")
	e := ir.WhileLoop{
		Cond: cont,
		Merge: []ir.MergeParam{{
			Param: ir.Param{Name: cont, Type: ir.Prim{P: ir.I32}, Diet: ir.ObserveDiet},
			Init:  ir.Literal{T: ir.I32, Value: int64(1)},
		}},
		Body: ir.Literal{T: ir.I32, Value: int64(0)},
	}
	_, _, _, err := ck.CheckExp(ctx, e)
	assert.Error(t, err)
}

func TestCheckMergeAllowsRankErasedBodyResult(t *testing.T) {
	ck := newChecker()
	ctx := NewContext(true, nil)
	acc := ir.NewVName("acc")
	e := ir.ForLoop{
		Index: ir.NewVName("i"),
		Bound: ir.Literal{T: ir.I32, Value: int64(10)},
		Merge: []ir.MergeParam{{
			Param: ir.Param{Name: acc, Type: arrType(4), Diet: ir.ObserveDiet},
			Init:  ir.Iota{N: ir.Literal{T: ir.I32, Value: int64(4)}, T: ir.I32},
		}},
		// The loop body returns a differently-sized array each
		// iteration; matching against the rank-erased declared type
		// must still accept it.
		Body: ir.Iota{N: ir.Literal{T: ir.I32, Value: int64(9)}, T: ir.I32},
	}
	types, _, _, err := ck.CheckExp(ctx, e)
	assert.NoError(t, err)
	assert.Equal(t, ir.I32, types[0].(ir.Array).Elem)
}
