package cmd

import (
	"fmt"
	"log/slog"

	"github.com/arrfunc/unicheck/check"
	"github.com/arrfunc/unicheck/checkerr"
	"github.com/arrfunc/unicheck/internal/log"
	"github.com/arrfunc/unicheck/ir"
	"github.com/spf13/cobra"
)

var CheckCmd = &cobra.Command{
	Use:          "check <program>",
	Short:        "Type, shape, and uniqueness-check a built-in example program",
	RunE:         runCheck,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var (
	checkLogLevel     *int
	checkNoUniqueness *bool
)

func init() {
	checkLogLevel = CheckCmd.Flags().IntP("log-level", "l", int(slog.LevelWarn), "log level")
	checkNoUniqueness = CheckCmd.Flags().Bool("no-uniqueness", false, "only check types and shapes, skip consumption tracking")
}

func runCheck(cmd *cobra.Command, args []string) error {
	log.SetLevel(slog.Level(*checkLogLevel))

	prog, ok := examplePrograms[args[0]]
	if !ok {
		return fmt.Errorf("unknown example program %q (known: %v)", args[0], exampleProgramNames())
	}

	err := check.CheckProg(prog, check.NoopCheckable{}, !*checkNoUniqueness, log.DefaultLogger)
	if err != nil {
		if withTrace, ok := err.(*checkerr.WithTrace); ok {
			return fmt.Errorf("%s", checkerr.Render(withTrace))
		}
		return err
	}
	fmt.Println("ok")
	return nil
}

func exampleProgramNames() []string {
	names := make([]string, 0, len(examplePrograms))
	for name := range examplePrograms {
		names = append(names, name)
	}
	return names
}

// examplePrograms are small built-in programs runnable via `unicheck
// check <name>` for demonstration and manual testing. A full frontend would
// parse an on-disk source file into an ir.Prog instead; since this
// checker has no parser (spec.md ss1, Non-goal), these are built
// directly with ir/construct the same way the test suite builds its
// fixtures.
var examplePrograms = map[string]ir.Prog{
	"identity": identityProgram(),
}
