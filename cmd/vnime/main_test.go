package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestTypeCommand(t *testing.T) {
	out, err := execute(t, "", "type", "--method", "telex", "--tone", "modern", "Tieengs", "Vieetj")
	require.NoError(t, err)
	assert.Equal(t, "Tiếng Việt\n", out)

	out, err = execute(t, "mo65t\nd9a\n", "type", "--method", "vni")
	require.NoError(t, err)
	assert.Equal(t, "một\nđa\n", out)
}

func TestTypeCommandRejectsUnknownMethod(t *testing.T) {
	_, err := execute(t, "", "type", "--method", "qwerty", "abc")
	assert.Error(t, err)
}

func TestTypeCommandTrace(t *testing.T) {
	out, err := execute(t, "", "type", "--method", "telex", "--trace", "aa")
	require.NoError(t, err)
	assert.Contains(t, out, `replace -1 "â"`)
	assert.True(t, strings.HasSuffix(out, "â\n"))
	_, err = execute(t, "", "type", "--trace=false", "x")
	require.NoError(t, err)
}

func TestSyllableCommand(t *testing.T) {
	out, err := execute(t, "", "syllable", "người", "x2")
	require.NoError(t, err)
	assert.Contains(t, out, "ng|ươ|i valid")
	assert.Contains(t, out, "x2 not a word")
}

func TestShortcutsCheck(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.tsv")
	require.NoError(t, os.WriteFile(good, []byte("vn\tViệt Nam\nko\tkhông\n"), 0o644))
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{"trigger": "x"}]`), 0o644))

	out, err := execute(t, "", "shortcuts", "check", good)
	require.NoError(t, err)
	assert.Contains(t, out, "(2 shortcuts)")

	out, err = execute(t, "", "shortcuts", "check", good, bad)
	assert.Error(t, err)
	assert.Contains(t, out, "invalid:")
}

func TestConfigShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vnime.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine:\n  method: vni\n"), 0o644))

	out, err := execute(t, "", "config", "show", "--config", path, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"method": "vni"`)
}
