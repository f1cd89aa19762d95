package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errBuf bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errBuf.String(), err
}

func TestCLIValidateValidPattern(t *testing.T) {
	out, _, err := runCLI(t, "validate", "/a(b|c)+/")
	require.NoError(t, err)
	assert.Contains(t, out, "valid")
}

func TestCLIValidateInvalidPattern(t *testing.T) {
	_, _, err := runCLI(t, "validate", `/\1/`)
	assert.Error(t, err)
}

func TestCLIOptimizeCollapsesDigitClass(t *testing.T) {
	out, _, err := runCLI(t, "optimize", "/[0123456789]/")
	require.NoError(t, err)
	assert.Contains(t, out, `\d`)
}

func TestCLIRedosFlagsCatastrophicBacktracking(t *testing.T) {
	out, _, err := runCLI(t, "redos", "/(a+)+$/")
	require.NoError(t, err)
	assert.Contains(t, out, "high")
}

func TestCLIVersionsListsRegisteredDialects(t *testing.T) {
	out, _, err := runCLI(t, "versions")
	require.NoError(t, err)
	assert.Contains(t, out, "pcre2")
}

func TestCLIUnknownTargetVersionSuggestsClosest(t *testing.T) {
	_, _, err := runCLI(t, "--target-version", "ecm", "validate", "/a/")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "did you mean"))
}

func TestCLISolveEquivalent(t *testing.T) {
	out, _, err := runCLI(t, "solve", "equivalent", "/^a+$/", "/^aa*$/")
	require.NoError(t, err)
	assert.Contains(t, out, "equivalent")
}

func TestCLIConfigShowPrintsEffectiveConfiguration(t *testing.T) {
	out, _, err := runCLI(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "target_version = pcre2")
}

func TestCLIConfigWatchRequiresConfigFlag(t *testing.T) {
	_, _, err := runCLI(t, "config", "watch")
	assert.Error(t, err)
}

func TestCLIBatchReportsPerLineResults(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader("/abc/\n# a comment\n\n/[0-9]+/\n"))
	cmd.SetArgs([]string{"batch"})
	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, out.String(), "/abc/")
	assert.Contains(t, out.String(), "/[0-9]+/")
}
