package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunReplay(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.toml")
	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(good, []byte("[[step]]\ntext = \"a\"\nsel_start = 1\nsel_end = 1\nexpect_text = \"a\"\n"), 0644))
	require.NoError(t, os.WriteFile(bad, []byte("[[step]]\ntext = \"a\"\nsel_start = 1\nsel_end = 1\nexpect_text = \"b\"\n"), 0644))

	var out bytes.Buffer
	assert.Equal(t, 0, runReplay(&out, []string{good}))
	assert.Contains(t, out.String(), "ok")

	out.Reset()
	assert.Equal(t, 1, runReplay(&out, []string{good, bad}))
	assert.Contains(t, out.String(), "1 of 1 steps failed")

	out.Reset()
	assert.Equal(t, 1, runReplay(&out, []string{filepath.Join(dir, "missing.toml")}))
}

func TestOpenLog(t *testing.T) {
	w, closeLog, err := openLog("", true)
	require.NoError(t, err)
	assert.Nil(t, w)
	closeLog()

	w, closeLog, err = openLog("-", true)
	require.NoError(t, err)
	assert.Equal(t, os.Stderr, w)
	closeLog()

	path := filepath.Join(t.TempDir(), "tide-ime.log")
	w, closeLog, err = openLog(path, false)
	require.NoError(t, err)
	assert.NotNil(t, w)
	closeLog()
	assert.FileExists(t, path)
}
