package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func runWithArgs(t *testing.T, args ...string) (string, error) {
	t.Helper()
	CheckCmd.SetArgs(args)
	out := &bytes.Buffer{}
	CheckCmd.SetOut(out)
	CheckCmd.SetErr(out)
	err := CheckCmd.Execute()
	return out.String(), err
}

func TestCheckCmdAcceptsKnownExampleProgram(t *testing.T) {
	_, err := runWithArgs(t, "identity")
	assert.NoError(t, err)
}

func TestCheckCmdRejectsUnknownExampleProgram(t *testing.T) {
	_, err := runWithArgs(t, "no-such-program")
	assert.Error(t, err)
}

func TestCheckCmdNoUniquenessFlagIsAccepted(t *testing.T) {
	_, err := runWithArgs(t, "identity", "--no-uniqueness")
	assert.NoError(t, err)
}

func TestExampleProgramNamesListsIdentity(t *testing.T) {
	names := exampleProgramNames()
	assert.Contains(t, names, "identity")
}
