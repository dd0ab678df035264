// Package project inspects a Python project layout: its source directories,
// virtual environment and supporting files that the command services act on.
package project

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/viant/svcrun/internal/venv"
)

// Workspace binds a project root with its (possibly not yet created) virtual
// environment.
type Workspace struct {
	Root        string
	Venv        *venv.Venv
	ensureVenv  bool
	environFunc func() map[string]string
}

// New returns a workspace rooted at the supplied directory. When ensureVenv is
// set, ToolEnv activates the project venv whenever it exists.
func New(root string, ensureVenv bool) *Workspace {
	if root == "" {
		root = "."
	}
	return &Workspace{
		Root:        root,
		Venv:        venv.Locate(root),
		ensureVenv:  ensureVenv,
		environFunc: venv.Environ,
	}
}

// ToolEnv returns the environment tools run with. With venv activation on and
// a venv present, the venv bin directory is prepended to PATH so bare tool
// names resolve inside the environment first.
func (w *Workspace) ToolEnv() map[string]string {
	base := w.environFunc()
	if w.ensureVenv && w.Venv.Exists() {
		return w.Venv.Env(base)
	}
	return base
}

// Python returns the interpreter command to use: the venv interpreter when
// present, the system one otherwise.
func (w *Workspace) Python() string {
	if w.Venv.Exists() {
		return w.Venv.Python()
	}
	return "python3"
}

// CodeTargets returns the directories lint and analysis tools should scan:
// src/ when the project uses a src layout, otherwise top-level packages
// (directories holding an __init__.py) plus tests/ when present. A project
// with no recognisable packages falls back to the root itself.
func (w *Workspace) CodeTargets() []string {
	if w.hasDir("src") {
		targets := []string{"src"}
		if w.hasDir("tests") {
			targets = append(targets, "tests")
		}
		return targets
	}
	var targets []string
	entries, err := os.ReadDir(w.Root)
	if err != nil {
		return []string{"."}
	}
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if _, err := os.Stat(filepath.Join(w.Root, entry.Name(), "__init__.py")); err == nil {
			targets = append(targets, entry.Name())
		}
	}
	sort.Strings(targets)
	if w.hasDir("tests") {
		targets = append(targets, "tests")
	}
	if len(targets) == 0 {
		return []string{"."}
	}
	return targets
}

// HasTests reports whether the project contains any pytest-discoverable test
// files (test_*.py or *_test.py outside hidden and venv directories).
func (w *Workspace) HasTests() bool {
	found := false
	_ = filepath.WalkDir(w.Root, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		name := entry.Name()
		if entry.IsDir() {
			if path != w.Root && (strings.HasPrefix(name, ".") || name == "venv" || name == "node_modules" || name == "__pycache__") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(name, ".py") && (strings.HasPrefix(name, "test_") || strings.HasSuffix(name, "_test.py")) {
			found = true
			return filepath.SkipAll
		}
		return nil
	})
	return found
}

// HasFile reports whether a file exists directly under the project root.
func (w *Workspace) HasFile(name string) bool {
	info, err := os.Stat(filepath.Join(w.Root, name))
	return err == nil && !info.IsDir()
}

// Path resolves a project-relative path.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.Root, name)
}

func (w *Workspace) hasDir(name string) bool {
	info, err := os.Stat(filepath.Join(w.Root, name))
	return err == nil && info.IsDir()
}
