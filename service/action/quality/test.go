package quality

import (
	"context"

	"github.com/viant/svcrun/model/result"
	"github.com/viant/svcrun/service/action"
)

// test runs the pytest suite. A project without any test files reports an
// empty aggregate, which passes vacuously.
func (s *Service) test(ctx context.Context, args []string) (bool, error) {
	if !s.project.HasTests() {
		return action.Report(s.reporter, "Tests (no test files found)", result.NewAggregate())
	}
	checks := []*action.Check{
		{
			Name:    "pytest",
			Command: s.toolCommand("pytest", args...),
		},
	}
	return action.RunAll(ctx, s.runner, s.reporter, "Tests", checks)
}
