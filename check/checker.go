package check

import (
	"log/slog"
	"strconv"

	"github.com/arrfunc/unicheck/internal/log"
	"github.com/arrfunc/unicheck/ir"
)

// Checker bundles the Checkable capability supplied by an IR flavor with
// a logger (spec.md ss4.7, ss4.8); the checker itself writes no log
// records to it. The
// per-traversal consumption/aliasing state lives entirely in Context
// (spec.md ss5: "no shared mutable resources between function checks"):
// a Checker's own freshDims counter is the sole exception, a private
// monotonic tag source for generalized dimension variables shared
// across every function checked with it.
type Checker struct {
	Capability Checkable
	Logger     *slog.Logger

	freshDims int
}

// NewChecker returns a Checker using capability for its lore hooks.
// logger defaults to internal/log.DefaultLogger when nil.
func NewChecker(capability Checkable, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = log.DefaultLogger
	}
	return &Checker{Capability: capability, Logger: logger}
}

// freshDim synthesizes a dimension variable distinct from every
// source-level name, used when If's two branches disagree on a concrete
// dimension and must be generalized to something weaker both sides
// satisfy (spec.md GLOSSARY "Generalized ext types"), and for the outer
// dimension of Concat and Partition results.
func (ck *Checker) freshDim() ir.Dim {
	ck.freshDims++
	return ir.DimVar{Name: ir.NewVName("_gen_" + strconv.Itoa(ck.freshDims))}
}

// one is shorthand for constructing a single-type result list.
func one(t ir.Type) []ir.Type { return []ir.Type{t} }
