// Package django wraps the Django management commands of a project that
// carries a manage.py at its root.
package django

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
const Name = "django"

// manageScript is the Django entry point expected at the project root.
const manageScript = "manage.py"

// Service implements the django commands.
type Service struct {
	runner   runner.Runner
	reporter *reporter.Service
	project  *project.Workspace
}

// New creates a django service operating on the supplied workspace.
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
		{Name: "check", Description: "run the Django system checks"},
		{Name: "migrate", Description: "apply database migrations"},
		{Name: "makemigrations", Description: "generate database migrations"},
		{Name: "test", Description: "run the Django test suite"},
		{Name: "run", Description: "start the development server"},
	}
}

// Command returns the executable for a command name.
func (s *Service) Command(name string) (types.Executable, error) {
	switch name {
	case "check":
		return s.manage("Django check", "check"), nil
	case "migrate":
		return s.manage("Django migrate", "migrate"), nil
	case "makemigrations":
		return s.manage("Django makemigrations", "makemigrations"), nil
	case "test":
		return s.manage("Django tests", "test"), nil
	case "run":
		return s.manage("Django server", "runserver"), nil
	}
	return nil, types.NewCommandNotFoundError(Name, name)
}

// manage builds an executable that invokes one manage.py subcommand with the
// caller's extra arguments appended.
func (s *Service) manage(title, subcommand string) types.Executable {
	return func(ctx context.Context, args []string) (bool, error) {
		if !s.project.HasFile(manageScript) {
			aggregate := result.NewAggregate()
			failure := result.NewFailure(manageScript, nil,
				manageScript+" not found; run from a Django project root", 1)
			if err := action.Record(ctx, aggregate, subcommand, failure); err != nil {
				return false, err
			}
			return action.Report(s.reporter, title, aggregate)
		}
		command := &runner.Command{
			Executable: s.project.Python(),
			Args:       append([]string{manageScript, subcommand}, args...),
			Dir:        s.project.Root,
			Env:        s.project.ToolEnv(),
		}
		checks := []*action.Check{{Name: subcommand, Command: command}}
		return action.RunAll(ctx, s.runner, s.reporter, title, checks)
	}
}
