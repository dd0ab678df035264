package quality

import (
	"context"
	"fmt"
	"strings"

	"github.com/sourcegraph/go-diff/diff"
	"github.com/viant/svcrun/model/result"
	"github.com/viant/svcrun/service/action"
)

// cleanup formats sources and applies safe lint fixes. With --check nothing is
// rewritten: formatting drift is detected via a unified diff and summarised,
// and lint issues are reported without fixing.
func (s *Service) cleanup(ctx context.Context, args []string) (bool, error) {
	checkOnly, extra := splitFlag(args, "--check")
	targets := s.project.CodeTargets()
	var checks []*action.Check
	if checkOnly {
		checks = []*action.Check{
			{
				Name:    "ruff-format",
				Command: s.toolCommand("ruff", withExtra(append([]string{"format", "--diff"}, targets...), extra)...),
				Enrich:  summarizeDrift,
			},
			{
				Name:    "ruff-fix",
				Command: s.toolCommand("ruff", withExtra(append([]string{"check"}, targets...), extra)...),
			},
		}
	} else {
		checks = []*action.Check{
			{
				Name:    "ruff-format",
				Command: s.toolCommand("ruff", withExtra(append([]string{"format"}, targets...), extra)...),
			},
			{
				Name:    "ruff-fix",
				Command: s.toolCommand("ruff", withExtra(append([]string{"check", "--fix"}, targets...), extra)...),
			},
		}
	}
	return action.RunAll(ctx, s.runner, s.reporter, "Cleanup", checks)
}

// summarizeDrift prefixes a failing format diff with a per-file change
// summary; passing records and unparseable output are returned untouched.
func summarizeDrift(execution *result.Execution) *result.Execution {
	if execution.Success || execution.Output == "" {
		return execution
	}
	summary := driftSummary(execution.Output)
	if summary == "" {
		return execution
	}
	enriched := *execution
	enriched.Output = summary + "\n\n" + execution.Output
	return &enriched
}

func driftSummary(unified string) string {
	files, err := diff.ParseMultiFileDiff([]byte(unified))
	if err != nil || len(files) == 0 {
		return ""
	}
	var names []string
	var added, deleted int64
	for _, file := range files {
		names = append(names, strings.TrimPrefix(file.NewName, "b/"))
		stat := file.Stat()
		added += int64(stat.Added + stat.Changed)
		deleted += int64(stat.Deleted + stat.Changed)
	}
	return fmt.Sprintf("%v file(s) need formatting (+%v/-%v lines): %v",
		len(files), added, deleted, strings.Join(names, ", "))
}

// splitFlag reports whether flag is present in args and returns args with the
// flag removed.
func splitFlag(args []string, flag string) (bool, []string) {
	found := false
	var rest []string
	for _, arg := range args {
		if arg == flag {
			found = true
			continue
		}
		rest = append(rest, arg)
	}
	return found, rest
}
