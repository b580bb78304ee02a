package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fourbit/pkg/cpu"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestRunHexFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "count.hex")
	require.NoError(t, os.WriteFile(path, []byte("0320 60E2 0FD7 409"), 0o644))

	out, err := runCmd(t, "--trace", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Execution trace")
	assert.Contains(t, out, "A=9")
	assert.Contains(t, out, "steps=22")
}

func TestRunWithoutTrace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "count.hex")
	require.NoError(t, os.WriteFile(path, []byte("0320 60E2 0FD7 409\n"), 0o644))

	out, err := runCmd(t, path)
	require.NoError(t, err)
	assert.NotContains(t, out, "Execution trace")
	assert.Contains(t, out, "A=9")
}

func TestRunRejectsBlankPlaceholder(t *testing.T) {
	// goto hw / lit 1 / hw: inc, with the unresolved operand as a space
	path := filepath.Join(t.TempDir(), "shifted.hex")
	require.NoError(t, os.WriteFile(path, []byte("7 01 D"), 0o644))

	_, err := runCmd(t, path)
	assert.ErrorIs(t, err, cpu.ErrBadDigit)
}

func TestRunStepLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spin.hex")
	require.NoError(t, os.WriteFile(path, []byte("70"), 0o644))

	_, err := runCmd(t, "--max-steps", "4", path)
	assert.ErrorIs(t, err, cpu.ErrStepLimit)
}

func TestRunRejectsUnresolvedDigits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fwd.hex")
	require.NoError(t, os.WriteFile(path, []byte("7S4"), 0o644))

	_, err := runCmd(t, path)
	assert.ErrorIs(t, err, cpu.ErrBadDigit)
}

func TestRunMissingFile(t *testing.T) {
	_, err := runCmd(t, filepath.Join(t.TempDir(), "nope.hex"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestHibernateAndResume(t *testing.T) {
	dir := t.TempDir()
	hex := filepath.Join(dir, "count.hex")
	state := filepath.Join(dir, "state.yaml")
	require.NoError(t, os.WriteFile(hex, []byte("0320 60E2 0FD7 409"), 0o644))

	_, err := runCmd(t, "--max-steps", "10", "--hibernate", state, hex)
	require.ErrorIs(t, err, cpu.ErrStepLimit)

	out, err := runCmd(t, "--max-steps", "0", "--resume", state)
	require.NoError(t, err)
	assert.Contains(t, out, "A=9")
	assert.Contains(t, out, "steps=22")
}

func TestNothingToRun(t *testing.T) {
	_, err := runCmd(t)
	assert.Error(t, err)
}
