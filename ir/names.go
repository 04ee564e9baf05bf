package ir

import (
	"sort"
	"strings"

	"github.com/arrfunc/unicheck/util"
)

// Names is a set of variable names, used for alias sets and for the
// observed/consumed fields of an Occurrence (see package check). It is a
// thin wrapper over util.MSet so set construction, union, and membership
// read the same way throughout the checker, matching the teacher's own
// habit of never hand-rolling map[X]struct{} where util.MSet already
// exists for it.
type Names struct {
	set util.MSet[VName]
}

// NoNames is the empty Names value. The zero value of Names is usable
// directly (its methods read a nil set as empty) but NoNames documents
// intent at call sites that build up a set from scratch.
var NoNames = NewNames()

func NewNames(names ...VName) Names {
	return Names{set: util.NewSetOf(names)}
}

// Contains reports set membership. The zero value of Names is the empty
// set: reading from a nil underlying map is legal Go and always misses.
func (n Names) Contains(v VName) bool {
	return n.set.Contains(v)
}

func (n Names) Len() int { return n.set.Len() }

func (n Names) IsEmpty() bool { return n.Len() == 0 }

func (n Names) Slice() []VName {
	s := n.set.AsSlice()
	sort.Slice(s, func(i, j int) bool { return s[i].String() < s[j].String() })
	return s
}

// Union returns a new Names containing every member of n and other.
func (n Names) Union(other Names) Names {
	out := NewNames(n.Slice()...)
	out.set.Add(other.Slice()...)
	return out
}

// With returns a new Names with vs added.
func (n Names) With(vs ...VName) Names {
	out := NewNames(n.Slice()...)
	out.set.Add(vs...)
	return out
}

// Without returns a new Names with vs removed.
func (n Names) Without(vs ...VName) Names {
	out := NewNames(n.Slice()...)
	out.set.Remove(vs...)
	return out
}

// WithoutSet returns a new Names with every member of other removed.
func (n Names) WithoutSet(other Names) Names {
	return n.Without(other.Slice()...)
}

// Intersects reports whether n and other share any member.
func (n Names) Intersects(other Names) bool {
	for _, v := range n.Slice() {
		if other.Contains(v) {
			return true
		}
	}
	return false
}

// Copy returns an independent copy of n. util.MSet is map-backed and
// mutated in place by Add/Remove, so anything that must observe a Names
// value before a later in-place mutation needs this - see
// check.Context.BindLet, which snapshots an alias set before symmetrizing
// it against names already in scope.
func (n Names) Copy() Names { return NewNames(n.Slice()...) }

func (n Names) String() string {
	return "{" + strings.Join(namesToStrings(n.Slice()), ", ") + "}"
}

func namesToStrings(vs []VName) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.String()
	}
	return out
}
