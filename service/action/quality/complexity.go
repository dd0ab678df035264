package quality

import (
	"context"

	"github.com/viant/svcrun/service/action"
)

// complexity reports cyclomatic complexity and the maintainability index via
// radon. Both reports run even when the first one fails.
func (s *Service) complexity(ctx context.Context, args []string) (bool, error) {
	targets := s.project.CodeTargets()
	checks := []*action.Check{
		{
			Name:    "radon-cc",
			Command: s.toolCommand("radon", withExtra(append([]string{"cc", "-s", "-a"}, targets...), args)...),
		},
		{
			Name:    "radon-mi",
			Command: s.toolCommand("radon", withExtra(append([]string{"mi", "-s"}, targets...), args)...),
		},
	}
	return action.RunAll(ctx, s.runner, s.reporter, "Complexity", checks)
}
