package publish

import (
	"context"

	"github.com/viant/svcrun/model/result"
	"github.com/viant/svcrun/service/action"
	"github.com/viant/svcrun/service/runner"
)

// build produces the sdist and wheel under dist/.
func (s *Service) build(ctx context.Context, args []string) (bool, error) {
	command := &runner.Command{
		Executable: s.project.Python(),
		Args:       append([]string{"-m", "build"}, args...),
		Dir:        s.project.Root,
		Env:        s.project.ToolEnv(),
	}
	checks := []*action.Check{{Name: "build", Command: command}}
	return action.RunAll(ctx, s.runner, s.reporter, "Package build", checks)
}

// check validates the built artifacts with twine.
func (s *Service) check(ctx context.Context, args []string) (bool, error) {
	artifacts := s.artifacts()
	if len(artifacts) == 0 {
		return s.reportNoArtifacts(ctx, "Package check", "check")
	}
	command := &runner.Command{
		Executable: "twine",
		Args:       append(append([]string{"check"}, artifacts...), args...),
		Dir:        s.project.Root,
		Env:        s.project.ToolEnv(),
	}
	checks := []*action.Check{{Name: "twine-check", Command: command}}
	return action.RunAll(ctx, s.runner, s.reporter, "Package check", checks)
}

// upload pushes the built artifacts to the package index. When a credentials
// secret is configured its basic-auth pair is passed to twine through the
// environment, never on the command line.
func (s *Service) upload(ctx context.Context, args []string) (bool, error) {
	artifacts := s.artifacts()
	if len(artifacts) == 0 {
		return s.reportNoArtifacts(ctx, "Package upload", "upload")
	}
	env := s.project.ToolEnv()
	credentials, err := s.loadCredentials(ctx)
	if err != nil {
		return false, err
	}
	if credentials != nil {
		env["TWINE_USERNAME"] = credentials.Username
		env["TWINE_PASSWORD"] = credentials.Password
	}
	command := &runner.Command{
		Executable: "twine",
		Args:       append(append([]string{"upload", "--non-interactive"}, artifacts...), args...),
		Dir:        s.project.Root,
		Env:        env,
	}
	checks := []*action.Check{{Name: "twine-upload", Command: command}}
	return action.RunAll(ctx, s.runner, s.reporter, "Package upload", checks)
}

func (s *Service) reportNoArtifacts(ctx context.Context, title, command string) (bool, error) {
	aggregate := result.NewAggregate()
	failure := result.NewFailure(command, nil,
		"no distribution artifacts under dist/; run `svcrun publish build` first", 1)
	if err := action.Record(ctx, aggregate, command, failure); err != nil {
		return false, err
	}
	return action.Report(s.reporter, title, aggregate)
}
