package cmd

import (
	c "github.com/arrfunc/unicheck/ir/construct"

	"github.com/arrfunc/unicheck/ir"
)

// identityProgram builds a tiny two-function program exercising function
// application, a let-bound array, and a uniqueness-respecting return:
// `scale` takes a uniquely-owned array and returns it unchanged, and
// `main` calls `scale` on a freshly allocated array.
func identityProgram() ir.Prog {
	scale := c.Fun(
		"scale",
		[]ir.Param{c.Param("xs", c.UniqueArr(ir.I32, 4))},
		[]ir.Type{c.UniqueArr(ir.I32, 4)},
		c.Var("xs"),
	)

	mainBody := c.LetNoAlias("ys",
		ir.Iota{N: c.Int(4), T: ir.I32},
		ir.Apply{Fn: c.F("scale"), Args: []ir.Exp{c.Var("ys")}},
	)
	main := c.Fun("main", nil, []ir.Type{c.UniqueArr(ir.I32, 4)}, mainBody)

	return ir.Prog{Funcs: []ir.FunDecl{scale, main}}
}
