package manifest

import (
	"context"
	"embed"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/afs"
	_ "github.com/viant/afs/embed"
	"github.com/viant/svcrun/extension"
	"github.com/viant/svcrun/model/result"
	"github.com/viant/svcrun/model/types"
	"github.com/viant/svcrun/service/meta"
	"github.com/viant/svcrun/service/runner"
)

//go:embed testdata/*
var embedFS embed.FS

type recordingRunner struct {
	commands []*runner.Command
	fail     bool
}

func (r *recordingRunner) Run(ctx context.Context, command *runner.Command) (*result.Execution, error) {
	r.commands = append(r.commands, command)
	if r.fail {
		return result.NewFailure(command.Executable, command.Args, "tool failed", 1), nil
	}
	return result.NewSuccess(command.Executable, command.Args, "ok"), nil
}

func newService(toolRunner runner.Runner) *Service {
	return New(meta.New(afs.New(), "embed:///testdata", &embedFS), toolRunner)
}

func TestService_LoadAndRegister(t *testing.T) {
	toolRunner := &recordingRunner{}
	service := newService(toolRunner)
	ctx := context.Background()

	manifest, err := service.Load(ctx, "services.yaml")
	assert.Nil(t, err)
	assert.EqualValues(t, 2, len(manifest.Services))

	actions := extension.NewActions()
	assert.Nil(t, actions.Register(&staticService{}))
	assert.Nil(t, service.Register(actions, manifest))

	// tool entry runs through the runner with configured and extra args
	executable, err := actions.Resolve("quality", "spell")
	assert.Nil(t, err)
	ok, err := executable(ctx, []string{"docs"})
	assert.Nil(t, err)
	assert.True(t, ok)
	assert.EqualValues(t, 1, len(toolRunner.commands))
	command := toolRunner.commands[0]
	assert.EqualValues(t, "codespell", command.Executable)
	assert.EqualValues(t, []string{"src", "docs"}, command.Args)
	assert.EqualValues(t, map[string]string{"SPELL_MODE": "strict"}, command.Env)
	assert.EqualValues(t, 30000, command.TimeoutMs)

	// target entry aliases an already registered pair
	executable, err = actions.Resolve("ci", "lint")
	assert.Nil(t, err)
	ok, err = executable(ctx, nil)
	assert.Nil(t, err)
	assert.True(t, ok)
}

func TestService_Discover(t *testing.T) {
	toolRunner := &recordingRunner{}
	service := newService(toolRunner)
	actions := extension.NewActions()

	err := service.Discover(context.Background(), actions, "services.d")
	assert.Nil(t, err)

	// both files registered, duplicate pair across files rejected deterministically
	_, err = actions.Resolve("extra", "hello")
	assert.Nil(t, err)
	_, err = actions.Resolve("extra", "bye")
	assert.Nil(t, err)

	err = service.Discover(context.Background(), actions, "services.d")
	assert.True(t, errors.Is(err, extension.ErrDuplicateCommand))
}

func TestService_InvalidEntries(t *testing.T) {
	service := newService(&recordingRunner{})
	actions := extension.NewActions()

	testCases := []struct {
		description string
		entry       *Entry
	}{
		{description: "missing names", entry: &Entry{Tool: "echo"}},
		{description: "target and tool", entry: &Entry{Service: "a", Command: "b", Target: "x.y", Tool: "echo"}},
		{description: "neither target nor tool", entry: &Entry{Service: "a", Command: "b"}},
		{description: "malformed target", entry: &Entry{Service: "a", Command: "b", Target: "nodot"}},
	}
	for _, testCase := range testCases {
		err := service.Register(actions, &Manifest{Services: []*Entry{testCase.entry}})
		assert.NotNil(t, err, testCase.description)
	}
}

type staticService struct{}

func (s *staticService) Name() string {
	return "quality"
}

func (s *staticService) Commands() types.Signatures {
	return types.Signatures{{Name: "lint"}}
}

func (s *staticService) Command(name string) (types.Executable, error) {
	if name != "lint" {
		return nil, types.NewCommandNotFoundError(s.Name(), name)
	}
	return func(ctx context.Context, args []string) (bool, error) {
		return true, nil
	}, nil
}
