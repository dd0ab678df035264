// Package dev bundles environment and build commands: virtual environment
// creation, dependency installation, artifact cleanup, package builds and
// dependency updates with a lock file diff.
package dev

import (
	"context"

	"github.com/viant/svcrun/internal/project"
	"github.com/viant/svcrun/model/result"
	"github.com/viant/svcrun/model/types"
	"github.com/viant/svcrun/service/action"
	"github.com/viant/svcrun/service/reporter"
	"github.com/viant/svcrun/service/runner"
)

// Name is the service registration name.
const Name = "dev"

// Service implements the dev commands.
type Service struct {
	runner   runner.Runner
	reporter *reporter.Service
	project  *project.Workspace
}

// New creates a dev service operating on the supplied workspace.
func New(toolRunner runner.Runner, reporterSvc *reporter.Service, workspace *project.Workspace) *Service {
	return &Service{runner: toolRunner, reporter: reporterSvc, project: workspace}
}

// Name returns the service name.
func (s *Service) Name() string {
	return Name
}

// Commands returns the command signatures in declaration order.
func (s *Service) Commands() types.Signatures {
	return types.Signatures{
		{Name: "venv", Description: "create the project virtual environment"},
		{Name: "install", Description: "install project dependencies into the virtual environment"},
		{Name: "clean", Description: "remove build artifacts and tool caches"},
		{Name: "build", Description: "build the distribution packages"},
		{Name: "update", Description: "upgrade dependencies and refresh the lock file"},
	}
}

// Command returns the executable for a command name.
func (s *Service) Command(name string) (types.Executable, error) {
	switch name {
	case "venv":
		return s.venv, nil
	case "install":
		return s.install, nil
	case "clean":
		return s.clean, nil
	case "build":
		return s.build, nil
	case "update":
		return s.update, nil
	}
	return nil, types.NewCommandNotFoundError(Name, name)
}

// pythonCommand invokes the project interpreter (the venv one when present)
// with the given arguments.
func (s *Service) pythonCommand(args ...string) *runner.Command {
	return &runner.Command{
		Executable: s.project.Python(),
		Args:       args,
		Dir:        s.project.Root,
		Env:        s.project.ToolEnv(),
	}
}

// reportMissingVenv reports a single failing record telling the user to
// create the environment first.
func (s *Service) reportMissingVenv(ctx context.Context, title string) (bool, error) {
	aggregate := result.NewAggregate()
	failure := result.NewFailure("venv", nil, "virtual environment not found; run `svcrun dev venv` first", 1)
	if err := action.Record(ctx, aggregate, "venv", failure); err != nil {
		return false, err
	}
	return action.Report(s.reporter, title, aggregate)
}
