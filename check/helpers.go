package check

import (
	"fmt"

	"github.com/arrfunc/unicheck/checkerr"
)

// mismatchf builds a checkerr.TypeMismatch from a formatted message - the
// generic fallback case used where no more specific taxonomy entry fits
// (spec.md ss7, "TypeError(msg)").
func mismatchf(format string, args ...any) checkerr.TypeMismatch {
	return checkerr.TypeMismatch{Msg: fmt.Sprintf(format, args...)}
}
