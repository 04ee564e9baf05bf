package check

import (
	"testing"

	"github.com/arrfunc/unicheck/checkerr"
	"github.com/arrfunc/unicheck/ir"
	c "github.com/arrfunc/unicheck/ir/construct"
	"github.com/stretchr/testify/assert"
)

func TestCheckProgAcceptsTwoFunctionProgram(t *testing.T) {
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

	prog := ir.Prog{Funcs: []ir.FunDecl{scale, main}}
	err := CheckProg(prog, NoopCheckable{}, true, nil)
	assert.NoError(t, err)
}

func TestCheckProgAllowsForwardReference(t *testing.T) {
	// main is declared before callee, yet calls it - legal because
	// CheckProg declares every function's binding before checking any
	// body (spec.md ss4.8 step 3: declaration order must not matter).
	main := c.Fun("main", nil, []ir.Type{ir.Prim{P: ir.I32}}, ir.Apply{Fn: c.F("callee")})
	callee := c.Fun("callee", nil, []ir.Type{ir.Prim{P: ir.I32}}, c.Int(1))

	prog := ir.Prog{Funcs: []ir.FunDecl{main, callee}}
	err := CheckProg(prog, NoopCheckable{}, true, nil)
	assert.NoError(t, err)
}

func TestCheckProgExposesBuiltinFunctions(t *testing.T) {
	main := c.Fun("main", nil, []ir.Type{ir.Prim{P: ir.F32}},
		ir.Apply{Fn: c.F("sqrt32"), Args: []ir.Exp{ir.Literal{T: ir.F32, Value: float64(4)}}},
	)
	prog := ir.Prog{Funcs: []ir.FunDecl{main}}
	err := CheckProg(prog, NoopCheckable{}, true, nil)
	assert.NoError(t, err)
}

func TestCheckProgRejectsUseAfterConsumeWhenUniquenessEnabled(t *testing.T) {
	// bad consumes xs via scale, then uses xs again - a violation only
	// surfaced when occurrence checking is switched on.
	scale := c.Fun(
		"scale",
		[]ir.Param{c.Param("xs", c.UniqueArr(ir.I32, 4))},
		[]ir.Type{c.UniqueArr(ir.I32, 4)},
		c.Var("xs"),
	)
	badBody := c.LetNoAlias("xs",
		ir.Iota{N: c.Int(4), T: ir.I32},
		ir.Let{
			Pattern: []ir.LetBinding{{Name: ir.NewVName("ys")}},
			Value:   ir.Apply{Fn: c.F("scale"), Args: []ir.Exp{c.Var("xs")}},
			Body:    c.Var("xs"),
		},
	)
	bad := c.Fun("bad", nil, []ir.Type{c.UniqueArr(ir.I32, 4)}, badBody)
	progBad := ir.Prog{Funcs: []ir.FunDecl{scale, bad}}

	err := CheckProg(progBad, NoopCheckable{}, true, nil)
	if assert.Error(t, err) {
		assert.Equal(t, checkerr.CodeUseAfterConsume, err.(*checkerr.WithTrace).Code())
	}
}

func TestCheckProgNoUniquenessSuppressesUseAfterConsume(t *testing.T) {
	scale := c.Fun(
		"scale",
		[]ir.Param{c.Param("xs", c.UniqueArr(ir.I32, 4))},
		[]ir.Type{c.UniqueArr(ir.I32, 4)},
		c.Var("xs"),
	)
	badBody := c.LetNoAlias("xs",
		ir.Iota{N: c.Int(4), T: ir.I32},
		ir.Let{
			Pattern: []ir.LetBinding{{Name: ir.NewVName("ys")}},
			Value:   ir.Apply{Fn: c.F("scale"), Args: []ir.Exp{c.Var("xs")}},
			Body:    c.Var("xs"),
		},
	)
	bad := c.Fun("bad", nil, []ir.Type{c.UniqueArr(ir.I32, 4)}, badBody)
	prog := ir.Prog{Funcs: []ir.FunDecl{scale, bad}}

	err := CheckProgNoUniqueness(prog, NoopCheckable{}, nil)
	assert.NoError(t, err)
}
