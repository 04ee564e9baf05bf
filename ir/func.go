package ir

// RetType is one declared return position of a function: its extended
// type (existentials allowed) and its declared uniqueness.
type RetType struct {
	Type       ExtType
	Uniqueness Uniqueness
	Attr       any // lore-specific attribute on the return annotation
}

// FunDecl is a top-level function definition.
type FunDecl struct {
	Name    FName
	Params  []Param
	RetType []RetType
	Body    Exp
	Attr    any
}

// FunBinding is a function's entry in the function table: just enough to
// type-check a call site (spec.md ss3, "Function binding").
type FunBinding struct {
	RetType []RetType
	Params  []Param
}

func (f FunDecl) Binding() FunBinding {
	return FunBinding{RetType: f.RetType, Params: f.Params}
}

// Prog is a whole checkable program: its user-defined functions, checked
// in declaration order by check.CheckProg.
type Prog struct {
	Funcs []FunDecl
}
