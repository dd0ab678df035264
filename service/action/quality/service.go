// Package quality bundles code quality commands: linting, security scanning,
// tests, complexity analysis and cleanup. Each command fans out to a fixed
// sequence of tools, runs them all and reports one aggregated verdict.
package quality

import (
	"github.com/viant/svcrun/internal/project"
	"github.com/viant/svcrun/model/types"
	"github.com/viant/svcrun/service/reporter"
	"github.com/viant/svcrun/service/runner"
)

// Name is the service registration name.
const Name = "quality"

// Service implements the quality commands.
type Service struct {
	runner   runner.Runner
	reporter *reporter.Service
	project  *project.Workspace
}

// New creates a quality service operating on the supplied workspace.
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
		{Name: "lint", Description: "run ruff and mypy over the project sources"},
		{Name: "security", Description: "run bandit, semgrep and pip-audit"},
		{Name: "test", Description: "run the pytest suite"},
		{Name: "complexity", Description: "report cyclomatic complexity and maintainability"},
		{Name: "cleanup", Description: "format sources and apply safe lint fixes (--check to verify only)"},
	}
}

// Command returns the executable for a command name.
func (s *Service) Command(name string) (types.Executable, error) {
	switch name {
	case "lint":
		return s.lint, nil
	case "security":
		return s.security, nil
	case "test":
		return s.test, nil
	case "complexity":
		return s.complexity, nil
	case "cleanup":
		return s.cleanup, nil
	}
	return nil, types.NewCommandNotFoundError(Name, name)
}

// toolCommand builds an invocation rooted at the project directory with the
// workspace tool environment applied.
func (s *Service) toolCommand(executable string, args ...string) *runner.Command {
	return &runner.Command{
		Executable: executable,
		Args:       args,
		Dir:        s.project.Root,
		Env:        s.project.ToolEnv(),
	}
}

func withExtra(base []string, extra []string) []string {
	ret := make([]string, 0, len(base)+len(extra))
	ret = append(ret, base...)
	ret = append(ret, extra...)
	return ret
}
