package check

import (
	"github.com/arrfunc/unicheck/checkerr"
	"github.com/arrfunc/unicheck/ir"
	"github.com/arrfunc/unicheck/util"
)

// IsPrimitive reports whether t carries no aliasing (spec.md ss4.4
// "observe": "primitives carry no aliases").
func IsPrimitive(t ir.Type) bool {
	_, ok := t.(ir.Prim)
	return ok
}

// Observe looks up name and, if its type is non-primitive, records an
// occurrence observing its full (transitively-closed) alias set
// (spec.md ss4.4 "observe"). It returns the variable's type alongside
// the produced Log so callers don't need a second lookup.
func (c *Context) Observe(name ir.VName) (ir.Type, Log, error) {
	info, err := c.LookupVar(name)
	if err != nil {
		return nil, Log{}, err
	}
	t := info.Type()
	if IsPrimitive(t) {
		return t, Identity(), nil
	}
	aliases := c.ExpandAliases(ir.NewNames(name))
	return t, FromOccurrence(Occurrence{Observed: aliases}), nil
}

// Consume records an occurrence consuming every name in names
// (spec.md ss4.4 "consume").
func Consume(names ir.Names) Log {
	return FromOccurrence(Occurrence{Consumed: names})
}

// ExpandAliases computes the transitive closure of names' alias sets
// against the current scope (spec.md ss4.4 "expandAliases"): each
// member's own LetInfo.Aliases is pulled in, one level at a time, until
// a fixpoint is reached. The result always contains every name in names
// (Invariant 1 of spec.md ss3 and ss8).
//
// A seen-pairs cache (util.Pair) bounds the BFS the way
// frontend/types/typeCtx.go's ctxCache bounds its own fixpoint search,
// adapted here to a worklist over (already-expanded, candidate) pairs
// rather than a subtype-solving cache.
func (c *Context) ExpandAliases(names ir.Names) ir.Names {
	closure := names.Copy()
	visited := make(map[util.Pair[ir.VName, ir.VName]]bool)
	queue := names.Slice()
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		closure = closure.With(n)
		info, ok := c.vars[n]
		if !ok {
			continue
		}
		let, ok := info.(ir.LetInfo)
		if !ok {
			continue
		}
		for _, a := range let.Aliases.Slice() {
			pair := util.NewPair(n, a)
			if visited[pair] {
				continue
			}
			visited[pair] = true
			if !closure.Contains(a) {
				queue = append(queue, a)
			}
			closure = closure.With(a)
		}
	}
	return closure
}

// BindLet implements spec.md ss4.4's let-binding rule: the alias set
// already computed by the alias-annotation pass for name is expanded
// against the current environment, and every name already in scope that
// is now aliased by name has its own alias set symmetrically updated to
// include name. It returns the NameInfo to install via Context.WithVars.
func (c *Context) BindLet(name ir.VName, rawAliases ir.Names, t ir.Type, attr any) ir.LetInfo {
	expanded := c.ExpandAliases(rawAliases)
	for _, y := range expanded.Slice() {
		if y == name {
			continue
		}
		if info, ok := c.vars[y]; ok {
			if let, ok := info.(ir.LetInfo); ok {
				let.Aliases = let.Aliases.With(name)
				c.vars[y] = let
			}
		}
	}
	return ir.LetInfo{TypeVal: t, Aliases: expanded, Attr: attr}
}

// checkLog turns a completed Log into an error, honoring checkOccurrences
// (spec.md ss4.8: "when false ... consumption errors do not raise").
func (c *Context) checkLog(l Log) (Occurrences, error) {
	if l.Err != nil {
		if !c.checkOccurrences {
			return nil, nil
		}
		return nil, c.Fail(checkerr.UseAfterConsume{Name: l.Err.Name})
	}
	return l.Occs, nil
}
