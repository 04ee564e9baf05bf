package check

import (
	"testing"

	"github.com/arrfunc/unicheck/ir"
	"github.com/stretchr/testify/assert"
)

// recordingCheckable wraps NoopCheckable and counts how many times each
// hook is invoked, so tests can confirm a non-trivial Checkable's lore
// and matching hooks actually run rather than sitting dead behind
// NoopCheckable's no-ops.
type recordingCheckable struct {
	NoopCheckable
	letLore      int
	bodyLore     int
	matchPattern int
	matchReturn  int
}

func (r *recordingCheckable) CheckLetLore(ctx *Context, b ir.LetBinding) error {
	r.letLore++
	return r.NoopCheckable.CheckLetLore(ctx, b)
}

func (r *recordingCheckable) CheckBodyLore(ctx *Context, body ir.Exp) error {
	r.bodyLore++
	return r.NoopCheckable.CheckBodyLore(ctx, body)
}

func (r *recordingCheckable) MatchPattern(names []ir.VName, resultTypes []ir.Type) error {
	r.matchPattern++
	return r.NoopCheckable.MatchPattern(names, resultTypes)
}

func (r *recordingCheckable) MatchReturnType(declared, actual []ir.Type) bool {
	r.matchReturn++
	return r.NoopCheckable.MatchReturnType(declared, actual)
}

func TestCheckLetInvokesLetLoreAndMatchPattern(t *testing.T) {
	rec := &recordingCheckable{}
	ck := NewChecker(rec, nil)
	ctx := NewContext(true, nil)
	e := ir.Let{
		Pattern: []ir.LetBinding{{Name: ir.NewVName("y")}},
		Value:   ir.Literal{T: ir.I32, Value: int64(1)},
		Body:    ir.Var{Name: ir.NewVName("y")},
	}
	_, _, _, err := ck.CheckExp(ctx, e)
	assert.NoError(t, err)
	assert.Equal(t, 1, rec.letLore)
	assert.Equal(t, 1, rec.matchPattern)
}

func TestCheckForLoopInvokesBodyLoreAndMatching(t *testing.T) {
	rec := &recordingCheckable{}
	ck := NewChecker(rec, nil)
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
	_, _, _, err := ck.CheckExp(ctx, e)
	assert.NoError(t, err)
	assert.Equal(t, 1, rec.bodyLore)
	assert.Equal(t, 1, rec.matchPattern)
	assert.Equal(t, 1, rec.matchReturn)
}

func TestCheckLambdaInvokesBodyLoreAndMatchReturnType(t *testing.T) {
	rec := &recordingCheckable{}
	ck := NewChecker(rec, nil)
	ctx := NewContext(true, nil)
	p := ir.NewVName("p")
	lam := ir.Lambda{
		Params: []ir.Param{{Name: p, Type: ir.Prim{P: ir.I32}, Diet: ir.ObserveDiet}},
		Body:   ir.Var{Name: p},
		Ret:    []ir.Type{ir.Prim{P: ir.I32}},
	}
	_, _, err := ck.CheckLambda(ctx, lam)
	assert.NoError(t, err)
	assert.Equal(t, 1, rec.bodyLore)
	assert.Equal(t, 1, rec.matchReturn)
}
