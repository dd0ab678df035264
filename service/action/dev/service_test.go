package dev

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/viant/svcrun/internal/project"
	"github.com/viant/svcrun/model/result"
	"github.com/viant/svcrun/service/reporter"
	"github.com/viant/svcrun/service/runner"
)

func init() {
	color.NoColor = true
}

type stubRunner struct {
	commands []*runner.Command
	queue    []*result.Execution
}

func (r *stubRunner) Run(_ context.Context, command *runner.Command) (*result.Execution, error) {
	r.commands = append(r.commands, command)
	if len(r.queue) > 0 {
		next := r.queue[0]
		r.queue = r.queue[1:]
		return next, nil
	}
	return result.NewSuccess(command.Executable, command.Args, ""), nil
}

func newTestService(t *testing.T, root string, queue ...*result.Execution) (*Service, *stubRunner, *bytes.Buffer) {
	t.Helper()
	buffer := new(bytes.Buffer)
	stub := &stubRunner{queue: queue}
	service := New(stub, reporter.New(reporter.WithWriter(buffer)), project.New(root, false))
	return service, stub, buffer
}

func makeVenv(t *testing.T, root string) {
	t.Helper()
	bin := filepath.Join(root, ".venv", "bin")
	assert.Nil(t, os.MkdirAll(bin, 0o755))
	assert.Nil(t, os.WriteFile(filepath.Join(bin, "python"), []byte("#!/bin/sh\n"), 0o755))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	assert.Nil(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestService_Commands(t *testing.T) {
	service := New(nil, nil, nil)
	assert.EqualValues(t, "dev", service.Name())
	assert.EqualValues(t, []string{"venv", "install", "clean", "build", "update"}, service.Commands().Names())
	_, err := service.Command("nope")
	assert.NotNil(t, err)
}

func TestService_VenvAlreadyPresent(t *testing.T) {
	root := t.TempDir()
	makeVenv(t, root)
	service, stub, _ := newTestService(t, root)
	ok, err := service.venv(context.Background(), nil)
	assert.Nil(t, err)
	assert.True(t, ok)
	assert.Empty(t, stub.commands, "existing environment must not be re-created")
}

func TestService_VenvCreate(t *testing.T) {
	root := t.TempDir()
	service, stub, _ := newTestService(t, root)
	ok, err := service.venv(context.Background(), nil)
	assert.Nil(t, err)
	assert.True(t, ok)
	if !assert.Equal(t, 2, len(stub.commands)) {
		return
	}
	assert.EqualValues(t, "python3", stub.commands[0].Executable)
	assert.EqualValues(t, []string{"-m", "venv", filepath.Join(root, ".venv")}, stub.commands[0].Args)
	assert.EqualValues(t, filepath.Join(root, ".venv", "bin", "python"), stub.commands[1].Executable)
}

func TestService_InstallRequiresVenv(t *testing.T) {
	root := t.TempDir()
	service, stub, buffer := newTestService(t, root)
	ok, err := service.install(context.Background(), nil)
	assert.Nil(t, err)
	assert.False(t, ok)
	assert.Empty(t, stub.commands)
	assert.Contains(t, buffer.String(), "svcrun dev venv")
}

func TestService_InstallRequirements(t *testing.T) {
	root := t.TempDir()
	makeVenv(t, root)
	writeFile(t, filepath.Join(root, "requirements.txt"), "requests==2.32.0\n")
	writeFile(t, filepath.Join(root, "requirements-dev.txt"), "pytest==8.0.0\n")
	service, stub, _ := newTestService(t, root)
	ok, err := service.install(context.Background(), nil)
	assert.Nil(t, err)
	assert.True(t, ok)
	if !assert.Equal(t, 3, len(stub.commands)) {
		return
	}
	python := filepath.Join(root, ".venv", "bin", "python")
	assert.EqualValues(t, python, stub.commands[1].Executable)
	assert.EqualValues(t, []string{"-m", "pip", "install", "-r", "requirements.txt"}, stub.commands[1].Args)
	assert.EqualValues(t, []string{"-m", "pip", "install", "-r", "requirements-dev.txt"}, stub.commands[2].Args)
}

func TestService_InstallEditableFallback(t *testing.T) {
	root := t.TempDir()
	makeVenv(t, root)
	writeFile(t, filepath.Join(root, "pyproject.toml"), "[project]\nname = \"app\"\n")
	service, stub, _ := newTestService(t, root)
	ok, err := service.install(context.Background(), nil)
	assert.Nil(t, err)
	assert.True(t, ok)
	if !assert.Equal(t, 2, len(stub.commands)) {
		return
	}
	assert.EqualValues(t, []string{"-m", "pip", "install", "-e", "."}, stub.commands[1].Args)
}

func TestService_Clean(t *testing.T) {
	root := t.TempDir()
	assert.Nil(t, os.MkdirAll(filepath.Join(root, "dist"), 0o755))
	assert.Nil(t, os.MkdirAll(filepath.Join(root, "app", "__pycache__"), 0o755))
	assert.Nil(t, os.MkdirAll(filepath.Join(root, "app.egg-info"), 0o755))
	service, stub, _ := newTestService(t, root)
	ok, err := service.clean(context.Background(), nil)
	assert.Nil(t, err)
	assert.True(t, ok)
	assert.Empty(t, stub.commands, "clean works on the filesystem directly")
	for _, name := range []string{"dist", "app/__pycache__", "app.egg-info"} {
		_, statErr := os.Stat(filepath.Join(root, name))
		assert.True(t, os.IsNotExist(statErr), name)
	}
}

func TestService_CleanNothingToRemove(t *testing.T) {
	root := t.TempDir()
	service, _, _ := newTestService(t, root)
	ok, err := service.clean(context.Background(), nil)
	assert.Nil(t, err)
	assert.True(t, ok)
}

func TestService_UpdateRefreshesLock(t *testing.T) {
	root := t.TempDir()
	makeVenv(t, root)
	writeFile(t, filepath.Join(root, "requirements.txt"), "requests\n")
	writeFile(t, filepath.Join(root, lockFile), "requests==2.31.0\n")
	python := filepath.Join(root, ".venv", "bin", "python")
	service, stub, _ := newTestService(t, root,
		result.NewSuccess(python, nil, ""),
		result.NewSuccess(python, nil, "requests==2.32.0\n"))
	ok, err := service.update(context.Background(), nil)
	assert.Nil(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, len(stub.commands))
	updated, readErr := os.ReadFile(filepath.Join(root, lockFile))
	assert.Nil(t, readErr)
	assert.EqualValues(t, "requests==2.32.0\n", string(updated))
}

func TestService_UpdateWithoutRequirements(t *testing.T) {
	root := t.TempDir()
	makeVenv(t, root)
	service, stub, buffer := newTestService(t, root)
	ok, err := service.update(context.Background(), nil)
	assert.Nil(t, err)
	assert.False(t, ok)
	assert.Empty(t, stub.commands)
	assert.Contains(t, buffer.String(), "requirements.txt not found")
}
