// Package check implements the type, shape, uniqueness, and alias checker
// of spec.md: given an ir.Prog, either confirm it is well-typed and
// correctly consuming, or return the first *checkerr.WithTrace violation.
package check

import (
	"log/slog"

	"github.com/arrfunc/unicheck/checkerr"
	"github.com/arrfunc/unicheck/internal/log"
	"github.com/arrfunc/unicheck/ir"
	"github.com/arrfunc/unicheck/util"
)

// Context is the checker's environment (spec.md ss3 "Environment"): the
// variable table, function table, the uniqueness-enforcement toggle, and
// the breadcrumb stack. Unlike the teacher's TypeCtx, which links scopes
// through an immutable parent pointer, Context keeps one flat mutable map
// and relies on WithVars to undo its own insertions on scope exit - the
// checker needs a single view to expand aliases against (Invariant 2/3 of
// spec.md ss3), and scope exit must also run Unoccur over the emitted
// occurrences, which a persistent parent chain has no natural hook for.
type Context struct {
	vars    map[ir.VName]ir.NameInfo
	funcs   map[ir.FName]ir.FunBinding
	checkOccurrences bool
	breadcrumbs      []string // most-recent-first
	logger           *slog.Logger
}

// NewContext returns an empty Context. checkOccurrences toggles whether
// consumption violations actually fail the check (spec.md ss4.8); logger
// defaults to internal/log.DefaultLogger when nil.
func NewContext(checkOccurrences bool, logger *slog.Logger) *Context {
	if logger == nil {
		logger = log.DefaultLogger
	}
	return &Context{
		vars:             make(map[ir.VName]ir.NameInfo),
		funcs:            make(map[ir.FName]ir.FunBinding),
		checkOccurrences: checkOccurrences,
		logger:           logger,
	}
}

// WithBreadcrumb pushes label, runs fn, and pops label again regardless
// of whether fn returned an error - breadcrumb pushing is strictly
// scoped (spec.md ss4.2).
func (c *Context) WithBreadcrumb(label string, fn func() error) error {
	c.breadcrumbs = append([]string{label}, c.breadcrumbs...)
	defer func() {
		c.breadcrumbs = c.breadcrumbs[1:]
	}()
	return fn()
}

// Fail wraps errorCase with a snapshot (reverse copy, outermost first) of
// the current breadcrumb stack (spec.md ss4.1). c.breadcrumbs is kept
// most-recent-first, so the reverse copy is exactly the outermost-first
// order Render wants.
func (c *Context) Fail(errorCase checkerr.TypeError) error {
	var trail []string
	for b := range util.Reverse(c.breadcrumbs) {
		trail = append(trail, b)
	}
	return &checkerr.WithTrace{Breadcrumbs: trail, Case: errorCase}
}

// LookupVar resolves name in the current scope.
func (c *Context) LookupVar(name ir.VName) (ir.NameInfo, error) {
	info, ok := c.vars[name]
	if !ok {
		return nil, c.Fail(checkerr.UnknownVariable{Name: name})
	}
	return info, nil
}

// LookupFunc resolves a function name in the function table.
func (c *Context) LookupFunc(name ir.FName) (ir.FunBinding, error) {
	fb, ok := c.funcs[name]
	if !ok {
		return ir.FunBinding{}, c.Fail(checkerr.UnknownFunction{Name: name})
	}
	return fb, nil
}

// DeclareFunc inserts fn's binding, rejecting a duplicate name (spec.md
// ss4.8 step 3).
func (c *Context) DeclareFunc(name ir.FName, binding ir.FunBinding) error {
	if _, exists := c.funcs[name]; exists {
		return c.Fail(checkerr.DupDefinition{Fn: name})
	}
	c.funcs[name] = binding
	return nil
}

// WithVars binds each (name, info) pair for the duration of fn, rejecting
// any name already visible in scope (spec.md ss3 Invariant 1: "shadowing
// is a type error") via shadowErr, then removes exactly the bindings it
// added, in reverse order, once fn returns - regardless of error.
func (c *Context) WithVars(bindings []ir.VName, infos []ir.NameInfo, shadowErr func(ir.VName) checkerr.TypeError, fn func() error) error {
	if len(bindings) != len(infos) {
		panic("check: WithVars bindings/infos length mismatch")
	}
	added := make([]ir.VName, 0, len(bindings))
	restore := func() {
		for i := len(added) - 1; i >= 0; i-- {
			delete(c.vars, added[i])
		}
	}
	for i, name := range bindings {
		if _, exists := c.vars[name]; exists {
			restore()
			return c.Fail(shadowErr(name))
		}
		c.vars[name] = infos[i]
		added = append(added, name)
	}
	defer restore()
	return fn()
}

// Fork returns a new Context sharing c's function table (already
// populated, read-only from here on) but with an empty variable scope
// and breadcrumb stack - used by CheckProg to isolate each function's
// occurrence state while still letting every function call every other
// (spec.md ss4.8 step 3: "functions may call each other regardless of
// declaration order").
func (c *Context) Fork() *Context {
	return &Context{
		vars:             make(map[ir.VName]ir.NameInfo),
		funcs:            c.funcs,
		checkOccurrences: c.checkOccurrences,
		logger:           c.logger,
	}
}
