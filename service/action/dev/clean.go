package dev

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/svcrun/model/result"
	"github.com/viant/svcrun/service/action"
)

// artifactDirs are removed from the project root when present.
var artifactDirs = []string{"dist", "build", ".pytest_cache", ".mypy_cache", ".ruff_cache"}

// clean removes build artifacts and tool caches directly, without spawning a
// subprocess. Cache directories are removed at the root, __pycache__
// recursively, *.egg-info by glob.
func (s *Service) clean(ctx context.Context, args []string) (bool, error) {
	var removed []string
	var failures []string

	remove := func(path string) {
		if _, err := os.Stat(path); err != nil {
			return
		}
		if err := os.RemoveAll(path); err != nil {
			failures = append(failures, fmt.Sprintf("%v: %v", path, err))
			return
		}
		if rel, err := filepath.Rel(s.project.Root, path); err == nil {
			removed = append(removed, rel)
		} else {
			removed = append(removed, path)
		}
	}

	for _, name := range artifactDirs {
		remove(s.project.Path(name))
	}
	if matches, err := filepath.Glob(s.project.Path("*.egg-info")); err == nil {
		for _, match := range matches {
			remove(match)
		}
	}
	for _, cache := range s.pycacheDirs() {
		remove(cache)
	}

	aggregate := result.NewAggregate()
	var record *result.Execution
	switch {
	case len(failures) > 0:
		record = result.NewFailure("clean", args, strings.Join(failures, "\n"), 1)
	case len(removed) == 0:
		record = result.NewSuccess("clean", args, "nothing to remove")
	default:
		record = result.NewSuccess("clean", args, "removed: "+strings.Join(removed, ", "))
	}
	if err := action.Record(ctx, aggregate, "clean", record); err != nil {
		return false, err
	}
	return action.Report(s.reporter, "Clean", aggregate)
}

// pycacheDirs lists __pycache__ directories outside the virtual environment.
func (s *Service) pycacheDirs() []string {
	var dirs []string
	_ = filepath.WalkDir(s.project.Root, func(path string, entry os.DirEntry, err error) error {
		if err != nil || !entry.IsDir() {
			return nil
		}
		name := entry.Name()
		if path != s.project.Root && strings.HasPrefix(name, ".") {
			return filepath.SkipDir
		}
		if name == "venv" || path == s.project.Venv.Root {
			return filepath.SkipDir
		}
		if name == "__pycache__" {
			dirs = append(dirs, path)
			return filepath.SkipDir
		}
		return nil
	})
	return dirs
}
