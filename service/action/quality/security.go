package quality

import (
	"context"

	"github.com/viant/svcrun/service/action"
)

// semgrepConfig is the project-local ruleset honoured when present.
const semgrepConfig = ".semgrep.yaml"

// security runs bandit, semgrep and pip-audit sequentially and aggregates
// their verdicts.
func (s *Service) security(ctx context.Context, args []string) (bool, error) {
	targets := s.project.CodeTargets()
	checks := []*action.Check{
		{
			Name:    "bandit",
			Command: s.toolCommand("bandit", withExtra(append([]string{"-q", "-r"}, targets...), args)...),
		},
		{
			Name:    "semgrep",
			Command: s.toolCommand("semgrep", withExtra(s.semgrepArgs(targets), args)...),
		},
		{
			Name:    "pip-audit",
			Command: s.toolCommand("pip-audit", withExtra(s.auditArgs(), args)...),
		},
	}
	return action.RunAll(ctx, s.runner, s.reporter, "Security", checks)
}

// semgrepArgs prefers the project-local ruleset over the hosted python packs.
func (s *Service) semgrepArgs(targets []string) []string {
	args := []string{"scan", "--quiet", "--error"}
	if s.project.HasFile(semgrepConfig) {
		args = append(args, "--config", semgrepConfig)
	} else {
		args = append(args, "--config", "p/python", "--config", "p/security-audit")
	}
	return append(args, targets...)
}

// auditArgs audits the pinned requirements when present, the installed
// environment otherwise.
func (s *Service) auditArgs() []string {
	if s.project.HasFile("requirements.txt") {
		return []string{"-r", "requirements.txt"}
	}
	return nil
}
