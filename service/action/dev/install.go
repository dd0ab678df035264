package dev

import (
	"context"

	"github.com/viant/svcrun/service/action"
)

// install installs project dependencies into the virtual environment:
// requirements files when present, an editable install of the project
// otherwise. Requires the environment to exist.
func (s *Service) install(ctx context.Context, args []string) (bool, error) {
	if !s.project.Venv.Exists() {
		return s.reportMissingVenv(ctx, "Install")
	}
	checks := []*action.Check{
		{Name: "pip", Command: s.pythonCommand("-m", "pip", "install", "--quiet", "--upgrade", "pip")},
	}
	installed := false
	for _, name := range []string{"requirements.txt", "requirements-dev.txt"} {
		if !s.project.HasFile(name) {
			continue
		}
		installed = true
		checks = append(checks, &action.Check{
			Name:    name,
			Command: s.pythonCommand(append([]string{"-m", "pip", "install", "-r", name}, args...)...),
		})
	}
	if !installed && s.project.HasFile("pyproject.toml") {
		checks = append(checks, &action.Check{
			Name:    "project",
			Command: s.pythonCommand(append([]string{"-m", "pip", "install", "-e", "."}, args...)...),
		})
	}
	return action.RunAll(ctx, s.runner, s.reporter, "Install", checks)
}
