package ir

// Exp is any checkable expression form. check.CheckExp type-switches over
// concrete Exp implementations; Op is the one extension point delegated to
// the caller's Checkable.CheckOp (spec.md ss4.7).
type Exp interface {
	isExp()
}

// Literal is a scalar constant.
type Literal struct {
	T     PrimType
	Value any // int64, uint64, float64 or bool, matching T
}

func (Literal) isExp() {}

// Var is a reference to an in-scope variable. Checking it observes the
// variable (spec.md ss4.5, "Sub-expression").
type Var struct {
	Name VName
}

func (Var) isExp() {}

// BinOp is a binary primitive operator (arithmetic, comparison, logical).
type BinOp struct {
	Op       string
	X, Y     Exp
	Operand  PrimType // declared type of both operands
	IsCompare bool    // true for comparisons, whose result is always Bool
}

func (BinOp) isExp() {}

// UnOp is a unary primitive operator (negation, logical not, bitwise not).
type UnOp struct {
	Op      string
	X       Exp
	Operand PrimType
}

func (UnOp) isExp() {}

// ConvOp converts a primitive value from one primitive type to another
// (e.g. i32 -> f64).
type ConvOp struct {
	From, To PrimType
	X        Exp
}

func (ConvOp) isExp() {}

// ArrayLit is an array-literal expression; every element must match Elem.
type ArrayLit struct {
	Elems []Exp
	Elem  PrimType
}

func (ArrayLit) isExp() {}

// Index indexes into Arr with Indices (each a 32-bit integer expression),
// discharging Certs (certificate-typed proofs of bounds checks already
// performed, spec.md ss4.5 "Index").
type Index struct {
	Arr     VName
	Indices []Exp
	Certs   []VName
}

func (Index) isExp() {}

// Iota produces the array [0, 1, ..., N-1] of element type T.
type Iota struct {
	N Exp
	T PrimType
}

func (Iota) isExp() {}

// Replicate produces an array of the given Shape where every element is
// Value.
type Replicate struct {
	Shape []Exp
	Value Exp
}

func (Replicate) isExp() {}

// Scratch allocates an uninitialised array of the given Elem type and
// Shape - used as the destination of an in-place update elsewhere in the
// program (outside this checker's scope; Scratch itself is simply
// well-typed if its shape expressions are i32).
type Scratch struct {
	Elem  PrimType
	Shape []Exp
}

func (Scratch) isExp() {}

// Reshape reinterprets Arr under NewShape. The element type and total
// element count are preserved; total-count agreement is not verified here
// (spec.md ss9's Open Question on Split's analogous gap applies equally:
// reshape's element-count identity is assumed established upstream).
type Reshape struct {
	NewShape []Exp
	Arr      VName
}

func (Reshape) isExp() {}

// Rearrange permutes Arr's dimensions according to Perm, which must be a
// permutation of [0, rank).
type Rearrange struct {
	Perm []int
	Arr  VName
}

func (Rearrange) isExp() {}

// Split divides Arr's outer dimension into len(Sizes) consecutive arrays
// of the given Sizes. Per spec.md ss9, whether the sizes sum to Arr's
// outer dimension is intentionally not checked here.
type Split struct {
	Sizes []Exp
	Arr   VName
}

func (Split) isExp() {}

// Concat concatenates Arrs along their outermost dimension; every other
// dimension must agree across all arrays (spec.md ss8, property 8).
type Concat struct {
	Arrs []VName
}

func (Concat) isExp() {}

// Copy produces a fresh, uniquely-owned copy of Arr, breaking aliasing -
// the idiom used to turn a Nonunique argument into a Unique result
// (spec.md S2).
type Copy struct {
	Arr VName
}

func (Copy) isExp() {}

// Assert evaluates Cond and, if it is statically known to hold, produces
// Cert as a witness; Msg is a diagnostic string carried for runtime
// failure, not checked here.
type Assert struct {
	Cond Exp
	Cert VName
	Msg  string
}

func (Assert) isExp() {}

// Partition splits Arr into N buckets according to an external
// classification function (opaque to the checker); only Arr's array-ness
// and N's validity are checked here.
type Partition struct {
	N   int
	Arr VName
}

func (Partition) isExp() {}

// If is a conditional; Then and Else are checked under alternative
// composition (spec.md ss4.3 "alt").
type If struct {
	Cond Exp
	Then Exp
	Else Exp
}

func (If) isExp() {}

// Apply calls Fn with Args in order; the corresponding parameter's Diet
// determines whether each argument's alias set is consumed (spec.md
// ss4.5 "Apply").
type Apply struct {
	Fn   FName
	Args []Exp
}

func (Apply) isExp() {}

// TupleLit constructs a tuple value from its elements.
type TupleLit struct {
	Elems []Exp
}

func (TupleLit) isExp() {}

// TupleProject extracts the Index'th (0-based) element of a tuple-typed
// expression.
type TupleProject struct {
	Tuple Exp
	Index int
}

func (TupleProject) isExp() {}

// LetBinding is one name bound by a Let, together with the alias set a
// prior alias-analysis pass has already computed for it (spec.md ss3,
// "LetInfo") and any lore-specific per-binding attribute.
type LetBinding struct {
	Name    VName
	Aliases Names
	Attr    any
}

// Let binds Pattern (one name, or several for a multi-valued Value) to
// Value, then checks Body with those names in scope. Pattern having more
// than one entry models destructuring the result of an Apply, If, or
// DoLoop that returns a tuple.
type Let struct {
	Pattern []LetBinding
	Value   Exp
	Body    Exp
	Attr    any // lore-specific attribute on the let itself
}

func (Let) isExp() {}

// Param is a function, lambda, or loop-merge parameter.
type Param struct {
	Name VName
	Type Type
	Diet Diet
	Attr any
}

// Diet is whether an application consumes (Consume) or merely reads
// (Observe) the corresponding argument (spec.md GLOSSARY).
type Diet bool

const (
	ObserveDiet Diet = false
	ConsumeDiet Diet = true
)

// MergeParam is one loop-carried variable of a DoLoop: its declared
// parameter (name, type, diet) and the expression computing its initial
// value.
type MergeParam struct {
	Param Param
	Init  Exp
}

// ForLoop is `for Index < Bound do Body`, looping over the merge
// parameters (spec.md ss4.5 "DoLoop").
type ForLoop struct {
	Index VName
	Bound Exp
	Merge []MergeParam
	Body  Exp
}

func (ForLoop) isExp() {}

// WhileLoop loops while the named boolean merge parameter Cond is true.
type WhileLoop struct {
	Cond  VName
	Merge []MergeParam
	Body  Exp
}

func (WhileLoop) isExp() {}

// Lambda is an anonymous function passed as a SOAC argument (spec.md
// GLOSSARY "SOAC"); check.CheckLambda checks its body against its
// declared parameters and Ret.
type Lambda struct {
	Params []Param
	Body   Exp
	Ret    []Type
}

func (Lambda) isExp() {}

// Op wraps a lore-specific custom operator; Payload is opaque to this
// package and dispatched to Checkable.CheckOp (spec.md ss4.5 "Op(custom)").
type Op struct {
	Payload any
}

func (Op) isExp() {}
