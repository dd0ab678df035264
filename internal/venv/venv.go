// Package venv locates a project's Python virtual environment and derives the
// environment variables needed to run tools from it.  Activation is expressed
// as an explicit environment snapshot returned to the caller rather than
// process-wide mutation, so repeated or concurrent invocations stay
// reproducible.
package venv

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// preferred venv directory names, checked in order.
var preferredNames = []string{".venv", "venv"}

// Venv describes a virtual environment rooted under a project directory.
type Venv struct {
	Root string // venv directory, e.g. <project>/.venv
	Bin  string // bin (Scripts on windows) directory
}

// Locate returns the virtual environment for the given project root. When no
// venv directory exists yet the returned value points at the preferred
// location (<project>/.venv) so that callers can create it there.
func Locate(projectRoot string) *Venv {
	for _, name := range preferredNames {
		candidate := filepath.Join(projectRoot, name)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return newVenv(candidate)
		}
	}
	return newVenv(filepath.Join(projectRoot, preferredNames[0]))
}

func newVenv(root string) *Venv {
	bin := "bin"
	if runtime.GOOS == "windows" {
		bin = "Scripts"
	}
	return &Venv{Root: root, Bin: filepath.Join(root, bin)}
}

// Python returns the venv python executable path.
func (v *Venv) Python() string {
	return v.tool("python")
}

// Pip returns the venv pip executable path.
func (v *Venv) Pip() string {
	return v.tool("pip")
}

// Tool returns the path of a named executable inside the venv bin directory.
func (v *Venv) Tool(name string) string {
	return v.tool(name)
}

func (v *Venv) tool(name string) string {
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return filepath.Join(v.Bin, name)
}

// Exists reports whether the venv directory and its python executable are present.
func (v *Venv) Exists() bool {
	if info, err := os.Stat(v.Root); err != nil || !info.IsDir() {
		return false
	}
	_, err := os.Stat(v.Python())
	return err == nil
}

// HasTool reports whether the named executable exists inside the venv.
func (v *Venv) HasTool(name string) bool {
	_, err := os.Stat(v.tool(name))
	return err == nil
}

// Env returns a copy of base with the venv bin directory prepended to PATH and
// VIRTUAL_ENV set.  The base map is never modified; passing nil starts from
// the current process environment.
func (v *Venv) Env(base map[string]string) map[string]string {
	env := map[string]string{}
	if base == nil {
		base = Environ()
	}
	for k, value := range base {
		env[k] = value
	}
	path := env["PATH"]
	if !strings.Contains(path, v.Bin) {
		sep := string(os.PathListSeparator)
		if path == "" {
			env["PATH"] = v.Bin
		} else {
			env["PATH"] = v.Bin + sep + path
		}
	}
	env["VIRTUAL_ENV"] = v.Root
	return env
}

// Environ returns the current process environment as a map.
func Environ() map[string]string {
	env := map[string]string{}
	for _, pair := range os.Environ() {
		if i := strings.IndexByte(pair, '='); i > 0 {
			env[pair[:i]] = pair[i+1:]
		}
	}
	return env
}
