package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestRun_Args(t *testing.T) {
	_, err := execute(t, "", devNull, devNull)
	require.Error(t, err)
}

func TestRun_Dedupe(t *testing.T) {
	out, err := execute(t, " a \nb\na\ndf6fa1abb58549287111ba8d776733e9 x\nc\n", devNull, devNull, devNull)
	require.NoError(t, err)
	require.Equal(t, "a\nb\nc\n", out)
}

func TestRun_Remove(t *testing.T) {
	remove := filepath.Join(t.TempDir(), "remove.txt")
	require.NoError(t, os.WriteFile(remove, []byte("b\n"), 0o644))

	out, err := execute(t, "a\nb\nc\n", remove, devNull, devNull)
	require.NoError(t, err)
	require.Equal(t, "a\nc\n", out)
}

func TestRun_CarryTable(t *testing.T) {
	for _, compression := range []string{"none", "zstd", "lz4"} {
		t.Run(compression, func(t *testing.T) {
			dir := t.TempDir()
			first := filepath.Join(dir, "first.table")
			second := filepath.Join(dir, "second.table")

			out, err := execute(t, "a\nb\n", devNull, devNull, first, "--compression", compression)
			require.NoError(t, err)
			require.Equal(t, "a\nb\n", out)

			out, err = execute(t, "b\nc\na\nd\n", devNull, first, second, "--compression", compression, "--mmap")
			require.NoError(t, err)
			require.Equal(t, "c\nd\n", out)

			out, err = execute(t, "a\nb\nc\nd\ne\n", devNull, second, devNull, "--compression", compression)
			require.NoError(t, err)
			require.Equal(t, "e\n", out)
		})
	}
}

func TestRun_BadFlags(t *testing.T) {
	_, err := execute(t, "", devNull, devNull, devNull, "--compression", "gzip")
	require.Error(t, err)

	_, err = execute(t, "", devNull, devNull, devNull, "--log-level", "loud")
	require.Error(t, err)
}

func TestRun_MissingFiles(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	_, err := execute(t, "", missing, devNull, devNull)
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = execute(t, "", devNull, missing, devNull)
	require.ErrorIs(t, err, os.ErrNotExist)
}
