package venv

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocate(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("posix layout")
	}

	t.Run("prefers .venv over venv", func(t *testing.T) {
		root := t.TempDir()
		assert.Nil(t, os.MkdirAll(filepath.Join(root, ".venv", "bin"), 0o755))
		assert.Nil(t, os.MkdirAll(filepath.Join(root, "venv", "bin"), 0o755))
		v := Locate(root)
		assert.EqualValues(t, filepath.Join(root, ".venv"), v.Root)
	})

	t.Run("falls back to venv", func(t *testing.T) {
		root := t.TempDir()
		assert.Nil(t, os.MkdirAll(filepath.Join(root, "venv", "bin"), 0o755))
		v := Locate(root)
		assert.EqualValues(t, filepath.Join(root, "venv"), v.Root)
	})

	t.Run("defaults to .venv when absent", func(t *testing.T) {
		root := t.TempDir()
		v := Locate(root)
		assert.EqualValues(t, filepath.Join(root, ".venv"), v.Root)
		assert.False(t, v.Exists())
	})
}

func TestVenv_Exists(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("posix layout")
	}
	root := t.TempDir()
	v := Locate(root)
	assert.False(t, v.Exists())

	assert.Nil(t, os.MkdirAll(v.Bin, 0o755))
	assert.False(t, v.Exists())

	assert.Nil(t, os.WriteFile(v.Python(), []byte("#!/bin/sh\n"), 0o755))
	assert.True(t, v.Exists())
	assert.True(t, v.HasTool("python"))
	assert.False(t, v.HasTool("ruff"))
}

func TestVenv_Env(t *testing.T) {
	root := t.TempDir()
	v := Locate(root)
	base := map[string]string{"PATH": "/usr/bin", "HOME": "/home/dev"}

	env := v.Env(base)
	assert.True(t, strings.HasPrefix(env["PATH"], v.Bin))
	assert.EqualValues(t, v.Root, env["VIRTUAL_ENV"])
	assert.EqualValues(t, "/home/dev", env["HOME"])

	// base stays untouched
	assert.EqualValues(t, "/usr/bin", base["PATH"])

	// prepending is idempotent
	again := v.Env(env)
	assert.EqualValues(t, env["PATH"], again["PATH"])
}
