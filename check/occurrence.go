package check

import (
	"fmt"

	"github.com/arrfunc/unicheck/ir"
)

// Occurrence is a pair of observed/consumed name sets describing the
// effect of an already-checked subterm (spec.md ss3, ss4.3). Either field
// may be empty; the null occurrence (both empty) is never stored in an
// Occurrences list (Invariant 5).
type Occurrence struct {
	Observed ir.Names
	Consumed ir.Names
}

func (o Occurrence) isNull() bool { return o.Observed.IsEmpty() && o.Consumed.IsEmpty() }

// Occurrences is an ordered sequence of occurrences in left-to-right
// control order.
type Occurrences []Occurrence

// ConsumptionError is the terminal state of a Log: a use-after-consume
// violation (spec.md ss3, "Consumption log").
type ConsumptionError struct {
	Name ir.VName
	Msg  string
}

func (e *ConsumptionError) Error() string { return e.Msg }

// Log is the consumption log: either a (possibly empty) Occurrences list
// or a terminal ConsumptionError. It forms the monoid of spec.md ss4.3,
// whose combine operator is Seq.
type Log struct {
	Occs Occurrences
	Err  *ConsumptionError
}

// Identity is the monoid's identity element: no occurrences, no error.
func Identity() Log { return Log{} }

// FromOccurrence builds a single-entry Log, dropping it entirely if the
// occurrence is null (Invariant 5).
func FromOccurrence(o Occurrence) Log {
	if o.isNull() {
		return Identity()
	}
	return Log{Occs: Occurrences{o}}
}

func appendNonNull(out Occurrences, o Occurrence) Occurrences {
	if o.isNull() {
		return out
	}
	return append(out, o)
}

func consumedUnion(occs Occurrences) ir.Names {
	u := ir.NoNames
	for _, o := range occs {
		u = u.Union(o.Consumed)
	}
	return u
}

func referencedUnion(occs Occurrences) ir.Names {
	u := ir.NoNames
	for _, o := range occs {
		u = u.Union(o.Observed).Union(o.Consumed)
	}
	return u
}

// Seq is sequential composition (spec.md ss4.3 "seq"): the effects of a
// followed by the effects of b, in source order. It is the monoid's
// combine operator.
func Seq(a, b Log) Log {
	if a.Err != nil {
		return a
	}
	if b.Err != nil {
		return b
	}

	aConsumed := consumedUnion(a.Occs)
	bReferenced := referencedUnion(b.Occs)
	if aConsumed.Intersects(bReferenced) {
		name := firstCommon(aConsumed, bReferenced)
		return Log{Err: &ConsumptionError{Name: name, Msg: fmt.Sprintf("variable '%s' referenced after being consumed", name)}}
	}

	bConsumed := consumedUnion(b.Occs)
	out := make(Occurrences, 0, len(a.Occs)+len(b.Occs))
	for _, o := range a.Occs {
		o.Observed = o.Observed.WithoutSet(bConsumed)
		out = appendNonNull(out, o)
	}
	for _, o := range b.Occs {
		out = appendNonNull(out, o)
	}
	return Log{Occs: out}
}

// Alt is alternative composition (spec.md ss4.3 "alt"), used to combine
// the two arms of a conditional: the effect of taking branch a OR branch
// b is that either side's consumptions remain visible, but an
// observation from one arm does not survive if the other arm consumed
// the same name.
func Alt(a, b Log) Log {
	if a.Err != nil {
		return a
	}
	if b.Err != nil {
		return b
	}

	bConsumed := consumedUnion(b.Occs)
	out := make(Occurrences, 0, len(a.Occs)+len(b.Occs))
	for _, o := range a.Occs {
		o.Observed = o.Observed.WithoutSet(bConsumed)
		o.Consumed = o.Consumed.WithoutSet(bConsumed)
		out = appendNonNull(out, o)
	}
	for _, o := range b.Occs {
		out = appendNonNull(out, o)
	}
	return Log{Occs: out}
}

// Unoccur removes names from both fields of every occurrence in list,
// dropping any occurrence that becomes null - used when names go out of
// scope at the end of a let-body (spec.md ss4.3 "unoccur").
func Unoccur(names ir.Names, list Occurrences) Occurrences {
	out := make(Occurrences, 0, len(list))
	for _, o := range list {
		o.Observed = o.Observed.WithoutSet(names)
		o.Consumed = o.Consumed.WithoutSet(names)
		out = appendNonNull(out, o)
	}
	return out
}

// consumeOnlyParams enforces spec.md ss4.6 step 3 of checkFun': of a
// callable's own named parameters (params, the function/lambda/loop's
// namedParams), only those in consumable (its Consume-diet parameters,
// or - for a loop - its Unique merge parameters) may ever be consumed by
// its body; consuming any other parameter is a type error. A body is
// always free to consume its own local temporaries - an array it
// created with Iota, Replicate, or any other fresh value - since those
// are not params at all; this only guards against a parameter declared
// Observe being laundered into another function's Consume-diet
// parameter somewhere in the body. consumable must already be expanded
// to its full alias closure (spec.md's "replaced by a consumption of
// the associated alias set") so a consumable parameter later aliased by
// a let-binding inside the body remains consumable under its new name
// too; callers must compute it before the body's own scope closes,
// since a let-bound alias of a parameter only appears in Context once
// its own Let has been checked. A violation is rewritten into the same
// terminal ConsumptionError state Seq produces for a genuine
// use-after-consume, so it surfaces through Context.checkLog as
// checkerr.UseAfterConsume the same way, rather than through a
// dedicated error case the taxonomy of spec.md ss7 does not list.
func consumeOnlyParams(params, consumable ir.Names, log Log) Log {
	if log.Err != nil {
		return log
	}
	for _, o := range log.Occs {
		for _, n := range o.Consumed.Slice() {
			if params.Contains(n) && !consumable.Contains(n) {
				return Log{Err: &ConsumptionError{
					Name: n,
					Msg:  fmt.Sprintf("variable '%s' consumed but not declared consumable here", n),
				}}
			}
		}
	}
	return log
}

func firstCommon(a, b ir.Names) ir.VName {
	for _, n := range a.Slice() {
		if b.Contains(n) {
			return n
		}
	}
	panic("check: firstCommon called with disjoint sets")
}
