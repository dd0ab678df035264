package runner

import (
	"os"
	"path/filepath"
	"strings"
)

// lookupExecutable resolves name against the supplied PATH value rather than
// the process environment, so that a virtual-environment PATH threaded through
// the command env is honoured. It returns the resolved path or "".
func lookupExecutable(name, pathValue string) string {
	if strings.ContainsRune(name, os.PathSeparator) || strings.HasPrefix(name, ".") {
		if isExecutable(name) {
			return name
		}
		return ""
	}
	for _, dir := range filepath.SplitList(pathValue) {
		if dir == "" {
			dir = "."
		}
		candidate := filepath.Join(dir, name)
		if isExecutable(candidate) {
			return candidate
		}
	}
	return ""
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Mode()&0o111 != 0
}
