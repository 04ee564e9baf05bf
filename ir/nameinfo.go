package ir

// NameInfo is what the checking context records about an in-scope
// variable (spec.md ss3, "Name-info binding").
type NameInfo interface {
	isNameInfo()
	// Type is the variable's type at the point it was bound.
	Type() Type
}

// LetInfo is a locally let-bound name: its current alias set (already
// expanded and symmetrized by check.Context.BindLet) and a lore-specific
// attribute carried through from the IR annotation.
type LetInfo struct {
	TypeVal Type
	Aliases Names
	Attr    any
}

func (LetInfo) isNameInfo()  {}
func (l LetInfo) Type() Type { return l.TypeVal }

// FParamInfo is a function parameter.
type FParamInfo struct {
	TypeVal Type
	Diet    Diet
}

func (FParamInfo) isNameInfo()  {}
func (p FParamInfo) Type() Type { return p.TypeVal }

// LParamInfo is a lambda parameter.
type LParamInfo struct {
	TypeVal Type
	Diet    Diet
}

func (LParamInfo) isNameInfo()  {}
func (p LParamInfo) Type() Type { return p.TypeVal }

// IndexInfo is a for-loop's induction variable: always a Nonunique i32,
// never aliased to anything and never consumable.
type IndexInfo struct{}

func (IndexInfo) isNameInfo()  {}
func (IndexInfo) Type() Type   { return Prim{P: I32} }
