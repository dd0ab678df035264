package dispatcher

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/svcrun/extension"
	"github.com/viant/svcrun/model/types"
	"github.com/viant/svcrun/policy"
)

type fakeService struct {
	name     string
	handlers map[string]types.Executable
	order    []string
}

func (s *fakeService) Name() string {
	return s.name
}

func (s *fakeService) Commands() types.Signatures {
	var signatures types.Signatures
	for _, name := range s.order {
		signatures = append(signatures, types.Signature{Name: name})
	}
	return signatures
}

func (s *fakeService) Command(name string) (types.Executable, error) {
	handler, ok := s.handlers[name]
	if !ok {
		return nil, types.NewCommandNotFoundError(s.name, name)
	}
	return handler, nil
}

func newFake(name string, handlers map[string]types.Executable, order ...string) *fakeService {
	return &fakeService{name: name, handlers: handlers, order: order}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newDispatcher(t *testing.T, errWriter io.Writer) *Service {
	actions := extension.NewActions()
	invoked := func(ok bool, err error) types.Executable {
		return func(ctx context.Context, args []string) (bool, error) {
			return ok, err
		}
	}
	assert.Nil(t, actions.Register(newFake("quality", map[string]types.Executable{
		"lint": invoked(true, nil),
		"test": invoked(false, nil),
	}, "lint", "test")))
	assert.Nil(t, actions.Register(newFake("publish", map[string]types.Executable{
		"build":  invoked(true, nil),
		"upload": invoked(true, nil),
		"broken": invoked(false, errors.New("boom")),
		"panics": func(ctx context.Context, args []string) (bool, error) {
			panic("unexpected")
		},
	}, "build", "upload", "broken", "panics")))
	return New(actions, WithErrWriter(errWriter), WithLogger(quietLogger()))
}

func TestService_Dispatch(t *testing.T) {
	ctx := context.Background()
	testCases := []struct {
		description string
		args        []string
		expect      int
	}{
		{description: "handler true maps to 0", args: []string{"quality", "lint"}, expect: ExitSuccess},
		{description: "handler false maps to 1", args: []string{"quality", "test"}, expect: ExitFailure},
		{description: "unknown service maps to 2", args: []string{"nosuch", "lint"}, expect: ExitUnknownCommand},
		{description: "unknown command maps to 2", args: []string{"publish", "badcmd"}, expect: ExitUnknownCommand},
		{description: "missing command maps to 2", args: []string{"quality"}, expect: ExitUnknownCommand},
		{description: "empty argv maps to 2", args: nil, expect: ExitUnknownCommand},
		{description: "handler error maps to 3", args: []string{"publish", "broken"}, expect: ExitInternalError},
		{description: "handler panic maps to 3", args: []string{"publish", "panics"}, expect: ExitInternalError},
	}
	for _, testCase := range testCases {
		buffer := new(bytes.Buffer)
		service := newDispatcher(t, buffer)
		actual := service.Dispatch(ctx, testCase.args)
		assert.EqualValues(t, testCase.expect, actual, testCase.description)
	}
}

func TestService_DispatchListsValidCommands(t *testing.T) {
	buffer := new(bytes.Buffer)
	service := newDispatcher(t, buffer)
	code := service.Dispatch(context.Background(), []string{"publish", "badcmd"})
	assert.EqualValues(t, ExitUnknownCommand, code)
	output := buffer.String()
	assert.Contains(t, output, `unknown command "badcmd" in service "publish"`)
	assert.Contains(t, output, "build")
	assert.Contains(t, output, "upload")
}

func TestService_DispatchListsServices(t *testing.T) {
	buffer := new(bytes.Buffer)
	service := newDispatcher(t, buffer)
	code := service.Dispatch(context.Background(), []string{"nosuch", "x"})
	assert.EqualValues(t, ExitUnknownCommand, code)
	assert.Contains(t, buffer.String(), "available services: publish, quality")
}

func TestService_DispatchPolicyDenied(t *testing.T) {
	buffer := new(bytes.Buffer)
	service := newDispatcher(t, buffer)
	ctx := policy.WithPolicy(context.Background(), &policy.Policy{BlockList: []string{"publish.upload"}})
	code := service.Dispatch(ctx, []string{"publish", "upload"})
	assert.EqualValues(t, ExitFailure, code)
	assert.Contains(t, buffer.String(), "blocked by policy")

	// non-blocked pairs still run
	assert.EqualValues(t, ExitSuccess, service.Dispatch(ctx, []string{"publish", "build"}))
}

func TestService_DispatchNeverInvokesOnUnknown(t *testing.T) {
	invoked := 0
	actions := extension.NewActions()
	assert.Nil(t, actions.Register(newFake("quality", map[string]types.Executable{
		"lint": func(ctx context.Context, args []string) (bool, error) {
			invoked++
			return true, nil
		},
	}, "lint")))
	service := New(actions, WithErrWriter(io.Discard), WithLogger(quietLogger()))
	service.Dispatch(context.Background(), []string{"quality", "nosuch"})
	assert.EqualValues(t, 0, invoked)
}
