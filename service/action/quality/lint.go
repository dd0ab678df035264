package quality

import (
	"context"

	"github.com/viant/svcrun/service/action"
)

// lint runs ruff and mypy sequentially over the project sources; extra
// arguments are passed through to both tools.
func (s *Service) lint(ctx context.Context, args []string) (bool, error) {
	targets := s.project.CodeTargets()
	checks := []*action.Check{
		{
			Name:    "ruff",
			Command: s.toolCommand("ruff", withExtra(append([]string{"check"}, targets...), args)...),
		},
		{
			Name:    "mypy",
			Command: s.toolCommand("mypy", withExtra(targets, args)...),
		},
	}
	return action.RunAll(ctx, s.runner, s.reporter, "Lint", checks)
}
