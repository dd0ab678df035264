package dev

import (
	"context"

	"github.com/viant/svcrun/model/result"
	"github.com/viant/svcrun/service/action"
	"github.com/viant/svcrun/service/runner"
)

// venv creates the project virtual environment and upgrades its pip. An
// already present environment is reported as passing without re-creation.
func (s *Service) venv(ctx context.Context, args []string) (bool, error) {
	aggregate := result.NewAggregate()
	env := s.project.Venv
	if env.Exists() {
		record := result.NewSuccess("venv", nil, "virtual environment already present at "+env.Root)
		if err := action.Record(ctx, aggregate, "venv", record); err != nil {
			return false, err
		}
		return action.Report(s.reporter, "Virtualenv", aggregate)
	}

	create, err := s.runner.Run(ctx, &runner.Command{
		Executable: "python3",
		Args:       append([]string{"-m", "venv", env.Root}, args...),
		Dir:        s.project.Root,
	})
	if err != nil {
		return false, err
	}
	if err := action.Record(ctx, aggregate, "create", create); err != nil {
		return false, err
	}
	if create.Success {
		upgrade, err := s.runner.Run(ctx, &runner.Command{
			Executable: env.Python(),
			Args:       []string{"-m", "pip", "install", "--quiet", "--upgrade", "pip"},
			Dir:        s.project.Root,
		})
		if err != nil {
			return false, err
		}
		if err := action.Record(ctx, aggregate, "pip", upgrade); err != nil {
			return false, err
		}
	}
	return action.Report(s.reporter, "Virtualenv", aggregate)
}
