package check

import (
	"github.com/arrfunc/unicheck/ir"
	"github.com/arrfunc/unicheck/util"
)

// builtin describes one built-in function's signature: a single
// parameter type (every built-in wired here is a unary scalar
// intrinsic) and a single return type, both Nonunique.
type builtin struct {
	name  string
	param ir.PrimType
	ret   ir.PrimType
}

// builtins lists the scalar intrinsics available to every program
// without an explicit FunDecl (spec.md ss4.8 step 2). This checker does
// not execute anything, so only the signatures matter; a "32"/"64"
// suffix or "to_" prefix names the float width involved.
var builtins = []builtin{
	{name: "sqrt32", param: ir.F32, ret: ir.F32},
	{name: "sqrt64", param: ir.F64, ret: ir.F64},
	{name: "trunc32", param: ir.F32, ret: ir.I32},
	{name: "trunc64", param: ir.F64, ret: ir.I32},
	{name: "to_f32", param: ir.I32, ret: ir.F32},
	{name: "to_f64", param: ir.I32, ret: ir.F64},
}

// registerBuiltins installs every entry of builtins into ctx's function
// table under a synthesized fresh parameter name, since a FunBinding
// carries full ir.Param values rather than bare types (spec.md ss4.8
// step 2: "each parameterized by a synthesized fresh parameter name").
func registerBuiltins(ctx *Context) error {
	for i, b := range builtins {
		param := ir.Param{
			Name: ir.NewVName(util.FreshName(b.name, i)),
			Type: ir.Prim{P: b.param},
			Diet: ir.ObserveDiet,
		}
		binding := ir.FunBinding{
			Params:  []ir.Param{param},
			RetType: []ir.RetType{{Type: ir.ExtPrim{P: b.ret}, Uniqueness: ir.Nonunique}},
		}
		if err := ctx.DeclareFunc(ir.NewFName(b.name), binding); err != nil {
			return err
		}
	}
	return nil
}
