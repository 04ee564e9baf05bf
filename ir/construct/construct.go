// Package construct provides short, fluent constructor functions for
// building ir values by hand, the way frontend/construct built
// hm types for the teacher's parser tests. It exists for tests and for
// the check CLI's fixture loader; the checker itself never imports it.
package construct

import "github.com/arrfunc/unicheck/ir"

// V is shorthand for a source-level variable name.
func V(name string) ir.VName { return ir.NewVName(name) }

// F is shorthand for a function name.
func F(name string) ir.FName { return ir.NewFName(name) }

// Var builds an ir.Var expression.
func Var(name string) ir.Exp { return ir.Var{Name: V(name)} }

// Int builds an i32 literal expression.
func Int(v int64) ir.Exp { return ir.Literal{T: ir.I32, Value: v} }

// Bool builds a boolean literal expression.
func Bool(v bool) ir.Exp { return ir.Literal{T: ir.Bool, Value: v} }

// Arr builds a nonunique array type of the given element type and
// dimensions, each dimension a constant.
func Arr(elem ir.PrimType, dims ...int64) ir.Array {
	shape := make(ir.Shape, len(dims))
	for i, d := range dims {
		shape[i] = ir.DimConst(d)
	}
	return ir.NewArray(elem, shape)
}

// UniqueArr is Arr but with Unique uniqueness.
func UniqueArr(elem ir.PrimType, dims ...int64) ir.Array {
	return Arr(elem, dims...).WithUniq(ir.Unique).(ir.Array)
}

// Param builds a parameter with Observe diet by default.
func Param(name string, t ir.Type) ir.Param {
	diet := ir.ObserveDiet
	if t.Uniq() == ir.Unique {
		diet = ir.ConsumeDiet
	}
	return ir.Param{Name: V(name), Type: t, Diet: diet}
}

// Let builds a single-name Let binding with the given (already-computed)
// alias set.
func Let(name string, aliases ir.Names, value, body ir.Exp) ir.Exp {
	return ir.Let{
		Pattern: []ir.LetBinding{{Name: V(name), Aliases: aliases}},
		Value:   value,
		Body:    body,
	}
}

// LetNoAlias is Let with an empty alias set, for binding expressions with
// no aliasing consequence (e.g. primitive-typed values).
func LetNoAlias(name string, value, body ir.Exp) ir.Exp {
	return Let(name, ir.NoNames, value, body)
}

// Fun builds a FunDecl with fully-concrete return types, each keeping the
// uniqueness of the given type.
func Fun(name string, params []ir.Param, ret []ir.Type, body ir.Exp) ir.FunDecl {
	rets := make([]ir.RetType, len(ret))
	for i, t := range ret {
		rets[i] = ir.RetType{Type: ir.ExtOf(t), Uniqueness: t.Uniq()}
	}
	return ir.FunDecl{Name: F(name), Params: params, RetType: rets, Body: body}
}
