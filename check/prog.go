package check

import (
	"log/slog"

	"github.com/arrfunc/unicheck/ir"
)

// CheckProg checks every function of prog in declaration order (spec.md
// ss4.8): builds the function table from the built-in signatures and
// every declared function first, so mutually and forward-referencing
// calls resolve, then checks each function body in its own forked
// Context so one function's occurrence state never leaks into another's
// (spec.md ss5: "no shared mutable resources between function checks").
// checkOccurrences controls whether a use-after-consume violation
// actually fails the check, per spec.md ss4.8's uniqueness toggle.
func CheckProg(prog ir.Prog, capability Checkable, checkOccurrences bool, logger *slog.Logger) error {
	ck := NewChecker(capability, logger)
	root := NewContext(checkOccurrences, ck.Logger)

	if err := registerBuiltins(root); err != nil {
		return err
	}
	for _, fd := range prog.Funcs {
		if err := root.DeclareFunc(fd.Name, fd.Binding()); err != nil {
			return err
		}
	}

	for _, fd := range prog.Funcs {
		fnCtx := root.Fork()
		if err := ck.CheckFun(fnCtx, fd); err != nil {
			return err
		}
	}
	return nil
}

// CheckProgNoUniqueness checks prog with consumption violations disabled
// - used by callers that only want structural type/shape checking
// without uniqueness enforcement (spec.md ss4.8, the `--no-uniqueness`
// mode also exposed by cmd/check.go).
func CheckProgNoUniqueness(prog ir.Prog, capability Checkable, logger *slog.Logger) error {
	return CheckProg(prog, capability, false, logger)
}
