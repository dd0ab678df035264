package dev

import (
	"context"

	"github.com/viant/svcrun/service/action"
)

// build builds the distribution packages with the build frontend.
func (s *Service) build(ctx context.Context, args []string) (bool, error) {
	if !s.project.Venv.Exists() {
		return s.reportMissingVenv(ctx, "Build")
	}
	checks := []*action.Check{
		{Name: "build", Command: s.pythonCommand(append([]string{"-m", "build"}, args...)...)},
	}
	return action.RunAll(ctx, s.runner, s.reporter, "Build", checks)
}
