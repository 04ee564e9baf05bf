package ir

import "strings"

// PrimType is a scalar primitive type: a boolean, a sized signed or unsigned
// integer, a sized float, or a certificate token (a proof that some bounds
// check has already been discharged - see Index in exp.go).
type PrimType int

const (
	Bool PrimType = iota
	I8
	I16
	I32
	I64
	U8
	U16
	U32
	U64
	F32
	F64
	Cert
)

func (p PrimType) String() string {
	switch p {
	case Bool:
		return "bool"
	case I8:
		return "i8"
	case I16:
		return "i16"
	case I32:
		return "i32"
	case I64:
		return "i64"
	case U8:
		return "u8"
	case U16:
		return "u16"
	case U32:
		return "u32"
	case U64:
		return "u64"
	case F32:
		return "f32"
	case F64:
		return "f64"
	case Cert:
		return "cert"
	default:
		return "<bad prim>"
	}
}

// IsInteger reports whether p is one of the signed or unsigned integer
// primitives (not Cert, which is an integer-sized token but not arithmetic).
func (p PrimType) IsInteger() bool {
	switch p {
	case I8, I16, I32, I64, U8, U16, U32, U64:
		return true
	default:
		return false
	}
}

func (p PrimType) IsFloat() bool { return p == F32 || p == F64 }

// Uniqueness marks a parameter, return, or array type as either consumable
// exactly once (Unique) or freely observable any number of times
// (Nonunique). See spec.md ss3 and ss4.6.
type Uniqueness bool

const (
	Nonunique Uniqueness = false
	Unique    Uniqueness = true
)

func (u Uniqueness) String() string {
	if u == Unique {
		return "*"
	}
	return ""
}

// Type is a fully-instantiated type: either a scalar, an array of fixed
// rank and concrete-or-variable shape, or a tuple. Every dimension of a
// checked value's Array is concrete - existentials (Ext) are ordinarily
// only found in ExtType, at pattern-binding sites, and are resolved to
// Type via ir.Instantiate before being compared. The one exception
// is a function parameter's *declared* Array type, which may place a
// DimExt at a shape position to mark it as the same unnamed existential
// referenced by that index in the function's RetType (check.bindExistentials
// binds it from the argument's actual dimension at that position,
// mirroring how a DimVar position names it instead); Subtype treats
// such a position in the required (super) type as matching any actual
// dimension, the same way matchesRetType treats DimExt in a RetType.
type Type interface {
	isType()
	String() string
	// Uniq reports the type's own uniqueness tag. Prim and Tuple are
	// always Nonunique; only Array carries a meaningful uniqueness.
	Uniq() Uniqueness
	// WithUniq returns a copy of the type with its uniqueness replaced.
	WithUniq(Uniqueness) Type
}

// Prim is a scalar type.
type Prim struct {
	P PrimType
}

func (Prim) isType()             {}
func (p Prim) String() string    { return p.P.String() }
func (Prim) Uniq() Uniqueness    { return Nonunique }
func (p Prim) WithUniq(Uniqueness) Type { return p }

// NewPrim is a convenience constructor for Prim.
func NewPrim(p PrimType) Prim { return Prim{P: p} }

// Array is an array of element type Elem, shape Shape (rank = len(Shape)),
// and uniqueness Uniq.
type Array struct {
	Elem       PrimType
	Shape      Shape
	Uniqueness Uniqueness
}

func (Array) isType() {}

func (a Array) String() string {
	var sb strings.Builder
	sb.WriteString(a.Uniqueness.String())
	for _, d := range a.Shape {
		sb.WriteByte('[')
		sb.WriteString(d.String())
		sb.WriteByte(']')
	}
	sb.WriteString(a.Elem.String())
	return sb.String()
}

func (a Array) Uniq() Uniqueness { return a.Uniqueness }

func (a Array) WithUniq(u Uniqueness) Type {
	a.Uniqueness = u
	return a
}

// Rank is the array's number of dimensions.
func (a Array) Rank() int { return len(a.Shape) }

// NewArray constructs a (nonunique by default) array type.
func NewArray(elem PrimType, shape Shape) Array {
	return Array{Elem: elem, Shape: shape}
}

// Tuple is a fixed-width product of types - used for multi-valued
// expressions: applications, if-branches, and loop merge patterns.
type Tuple struct {
	Elems []Type
}

func (Tuple) isType() {}

func (t Tuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (Tuple) Uniq() Uniqueness     { return Nonunique }
func (t Tuple) WithUniq(Uniqueness) Type { return t }

// IsArray reports whether t is an Array, returning it for convenience.
func IsArray(t Type) (Array, bool) {
	a, ok := t.(Array)
	return a, ok
}

// TypesEqual is structural equality, ignoring uniqueness on non-outermost
// tuple positions only at the caller's discretion - here it compares
// uniqueness exactly, since subtype relaxation (Unique -> Nonunique) is a
// distinct, one-directional relation handled by Subtype.
func TypesEqual(a, b Type) bool {
	switch a := a.(type) {
	case Prim:
		b, ok := b.(Prim)
		return ok && a.P == b.P
	case Array:
		b, ok := b.(Array)
		if !ok || a.Elem != b.Elem || a.Uniqueness != b.Uniqueness || len(a.Shape) != len(b.Shape) {
			return false
		}
		for i := range a.Shape {
			if !a.Shape[i].Equal(b.Shape[i]) {
				return false
			}
		}
		return true
	case Tuple:
		b, ok := b.(Tuple)
		if !ok || len(a.Elems) != len(b.Elems) {
			return false
		}
		for i := range a.Elems {
			if !TypesEqual(a.Elems[i], b.Elems[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Subtype reports whether sub is usable wherever super is required. A
// Unique array may stand in for a Nonunique one (consuming it fewer times
// than allowed is always safe), never the reverse, and a DimExt position
// in super's shape accepts any dimension of sub.
func Subtype(sub, super Type) bool {
	switch super := super.(type) {
	case Array:
		sa, ok := sub.(Array)
		if !ok || sa.Elem != super.Elem || len(sa.Shape) != len(super.Shape) {
			return false
		}
		if super.Uniqueness == Unique && sa.Uniqueness != Unique {
			return false
		}
		for i := range sa.Shape {
			if _, isExt := super.Shape[i].(DimExt); isExt {
				continue
			}
			if !sa.Shape[i].Equal(super.Shape[i]) {
				return false
			}
		}
		return true
	case Tuple:
		st, ok := sub.(Tuple)
		if !ok || len(st.Elems) != len(super.Elems) {
			return false
		}
		for i := range st.Elems {
			if !Subtype(st.Elems[i], super.Elems[i]) {
				return false
			}
		}
		return true
	default:
		return TypesEqual(sub, super)
	}
}

// RankShape erases every concrete dimension to an anonymous Ext, leaving
// only rank and element type; checkMerge matches loop body results
// against the rank-erased merge types.
func RankShape(t Type) Type {
	switch t := t.(type) {
	case Array:
		shape := make(Shape, len(t.Shape))
		for i := range shape {
			shape[i] = DimExt(i)
		}
		return Array{Elem: t.Elem, Shape: shape, Uniqueness: t.Uniqueness}
	case Tuple:
		elems := make([]Type, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = RankShape(e)
		}
		return Tuple{Elems: elems}
	default:
		return t
	}
}

// SubtypeRankErased is like Subtype but, for arrays, only requires equal
// rank rather than equal concrete dimensions. Used at DoLoop boundaries
// (spec.md ss4.5): "the body's extent-rank-shaped type must be a subtype
// of the declared merge types" - the loop body may return an array of a
// different concrete size than the merge parameter's declared shape (for
// instance, shrinking an accumulator array on alternating iterations is
// not otherwise expressible), so only rank and element type are checked.
func SubtypeRankErased(sub, super Type) bool {
	switch super := super.(type) {
	case Array:
		sa, ok := sub.(Array)
		if !ok || sa.Elem != super.Elem || len(sa.Shape) != len(super.Shape) {
			return false
		}
		if super.Uniqueness == Unique && sa.Uniqueness != Unique {
			return false
		}
		return true
	case Tuple:
		st, ok := sub.(Tuple)
		if !ok || len(st.Elems) != len(super.Elems) {
			return false
		}
		for i := range st.Elems {
			if !SubtypeRankErased(st.Elems[i], super.Elems[i]) {
				return false
			}
		}
		return true
	default:
		return TypesEqual(sub, super)
	}
}
