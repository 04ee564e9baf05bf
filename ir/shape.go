package ir

import "strconv"

// Dim is a single array dimension: either concrete (a literal size or a
// variable holding a size, typically a preceding parameter) or existential
// (a placeholder introduced at a pattern-binding site, only legal inside an
// ExtType).
type Dim interface {
	isDim()
	String() string
	Equal(Dim) bool
}

// DimConst is a known-at-typecheck-time constant dimension.
type DimConst int64

func (DimConst) isDim()          {}
func (d DimConst) String() string { return strconv.FormatInt(int64(d), 10) }
func (d DimConst) Equal(o Dim) bool {
	other, ok := o.(DimConst)
	return ok && other == d
}

// DimVar is a dimension bound to a scalar integer variable in scope
// (typically an earlier parameter, e.g. `n: i32` preceding `xs: [n]i32`).
type DimVar struct {
	Name VName
}

func (DimVar) isDim()           {}
func (d DimVar) String() string { return d.Name.String() }
func (d DimVar) Equal(o Dim) bool {
	other, ok := o.(DimVar)
	return ok && other.Name == d.Name
}

// DimExt is an existentially-quantified dimension, legal only inside an
// ExtType. The int is the existential's binding index within the
// enclosing pattern, used to unify repeated occurrences during
// applyRetType (see check.applyRetType).
type DimExt int

func (DimExt) isDim()           {}
func (d DimExt) String() string { return "?" + strconv.Itoa(int(d)) }
func (d DimExt) Equal(o Dim) bool {
	other, ok := o.(DimExt)
	return ok && other == d
}

// Shape is an ordered list of dimensions; len(Shape) is the rank.
type Shape []Dim

func (s Shape) Rank() int { return len(s) }

// ExtType mirrors Type but allows DimExt dimensions inside array shapes,
// used for function return-type annotations before they are instantiated
// against a particular call's actual argument shapes.
type ExtType interface {
	isExtType()
	String() string
}

type ExtPrim struct{ P PrimType }

func (ExtPrim) isExtType()     {}
func (p ExtPrim) String() string { return p.P.String() }

type ExtArray struct {
	Elem       PrimType
	Shape      Shape
	Uniqueness Uniqueness
}

func (ExtArray) isExtType() {}
func (a ExtArray) String() string {
	return Array{Elem: a.Elem, Shape: a.Shape, Uniqueness: a.Uniqueness}.String()
}

type ExtTuple struct{ Elems []ExtType }

func (ExtTuple) isExtType() {}
func (t ExtTuple) String() string {
	s := "("
	for i, e := range t.Elems {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}
	return s + ")"
}

// ExtOf lifts a plain Type to an ExtType with no existentials, for
// declarations whose shape is already fully concrete.
func ExtOf(t Type) ExtType {
	switch t := t.(type) {
	case Prim:
		return ExtPrim{P: t.P}
	case Array:
		return ExtArray{Elem: t.Elem, Shape: t.Shape, Uniqueness: t.Uniqueness}
	case Tuple:
		elems := make([]ExtType, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = ExtOf(e)
		}
		return ExtTuple{Elems: elems}
	default:
		panic("ir: unhandled Type in ExtOf")
	}
}

// Instantiate resolves every DimExt in the ExtType against bindings,
// producing a plain Type. A DimExt with no entry in bindings is left as a
// fresh DimVar named "?i" so the caller sees an obviously-synthetic name
// rather than silently dropping information; check.applyRetType reaches
// this path for a return-type existential that no parameter ties to an
// argument shape.
func (t ExtArray) Instantiate(bindings map[int]Dim) Array {
	shape := make(Shape, len(t.Shape))
	for i, d := range t.Shape {
		if ext, ok := d.(DimExt); ok {
			if bound, ok := bindings[int(ext)]; ok {
				shape[i] = bound
				continue
			}
			shape[i] = DimVar{Name: NewVName("?" + strconv.Itoa(int(ext)))}
			continue
		}
		shape[i] = d
	}
	return Array{Elem: t.Elem, Shape: shape, Uniqueness: t.Uniqueness}
}

func Instantiate(t ExtType, bindings map[int]Dim) Type {
	switch t := t.(type) {
	case ExtPrim:
		return Prim{P: t.P}
	case ExtArray:
		return t.Instantiate(bindings)
	case ExtTuple:
		elems := make([]Type, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = Instantiate(e, bindings)
		}
		return Tuple{Elems: elems}
	default:
		panic("ir: unhandled ExtType in Instantiate")
	}
}
