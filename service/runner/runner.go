// Package runner invokes external developer tools as subprocesses and maps
// their outcome onto execution records. A missing executable and a tool that
// ran and failed are distinct outcomes; neither aborts the caller.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/viant/gosh"
	grunner "github.com/viant/gosh/runner"
	"github.com/viant/gosh/runner/local"
	"github.com/viant/svcrun/internal/clock"
	"github.com/viant/svcrun/model/result"
)

// Command describes one tool invocation: executable, arguments, working
// directory and environment snapshot. Zero-value Dir/Env inherit the
// service defaults; TimeoutMs of zero means no implicit deadline.
type Command struct {
	Executable string
	Args       []string
	Dir        string
	Env        map[string]string
	TimeoutMs  int
}

// Runner runs a single command synchronously and reports its outcome. The
// error return is reserved for internal faults (e.g. a cancelled context or a
// session that could not be created); tool failures are encoded in the
// execution record.
type Runner interface {
	Run(ctx context.Context, command *Command) (*result.Execution, error)
}

// Service runs commands through a local shell session.
type Service struct {
	baseDir          string
	baseEnv          map[string]string
	defaultTimeoutMs int
	echo             io.Writer
}

// New creates a runner service rooted at the project directory.
func New(options ...Option) *Service {
	ret := &Service{}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Run launches the tool, waits for completion and returns an execution
// record. A non-zero exit code is recorded, never raised; only a command that
// cannot be started at all surfaces as a not-found outcome.
func (s *Service) Run(ctx context.Context, command *Command) (*result.Execution, error) {
	if command == nil || command.Executable == "" {
		return nil, fmt.Errorf("command executable was empty")
	}
	env := s.environment(command)
	located := lookupExecutable(command.Executable, env["PATH"])
	if located == "" {
		hint := fmt.Sprintf("install %v or adjust PATH", command.Executable)
		return result.NewNotFound(command.Executable, hint), nil
	}
	// lookup ran against the process working directory; the shell will cd
	// into the command dir first, so a relative resolution has to be pinned
	// down before it is handed over.
	if abs, err := filepath.Abs(located); err == nil {
		located = abs
	}

	session, err := gosh.New(ctx, local.New(grunner.WithEnvironment(env)))
	if err != nil {
		return nil, fmt.Errorf("failed to create shell session: %w", err)
	}
	defer session.Close()

	timeoutMs := command.TimeoutMs
	if timeoutMs == 0 {
		timeoutMs = s.defaultTimeoutMs
	}
	started := clock.Now()
	output, status, runErr := s.execute(ctx, session, command, located, timeoutMs)
	elapsed := clock.Since(started)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	execution := &result.Execution{
		Command:   command.Executable,
		Args:      command.Args,
		Output:    output,
		ExitCode:  status,
		StartedAt: started,
		Elapsed:   elapsed,
	}
	switch {
	case timeoutMs > 0 && elapsed >= time.Duration(timeoutMs)*time.Millisecond:
		execution.Outcome = result.OutcomeTimeout
		execution.Error = fmt.Sprintf("timed out after %s", elapsed)
	case status == 0 && runErr == nil:
		execution.Outcome = result.OutcomeSuccess
		execution.Success = true
	default:
		execution.Outcome = result.OutcomeFailed
		if runErr != nil {
			execution.Error = runErr.Error()
		}
	}
	s.echoOutput(execution)
	return execution, nil
}

func (s *Service) execute(ctx context.Context, session *gosh.Service, command *Command, executable string, timeoutMs int) (string, int, error) {
	commandLine := s.commandLine(command, executable)
	var options []grunner.Option
	if timeoutMs > 0 {
		options = append(options, grunner.WithTimeout(timeoutMs))
	}
	output, status, err := session.Run(ctx, commandLine, options...)
	if output == "" && err != nil {
		output = err.Error()
	}
	return output, status, err
}

// commandLine renders the shell invocation using the resolved executable
// path, which stays valid after the leading cd.
func (s *Service) commandLine(command *Command, executable string) string {
	parts := []string{quote(executable)}
	for _, arg := range command.Args {
		parts = append(parts, quote(arg))
	}
	line := strings.Join(parts, " ")
	dir := command.Dir
	if dir == "" {
		dir = s.baseDir
	}
	if dir != "" {
		line = fmt.Sprintf("cd %v && %v", quote(dir), line)
	}
	return line
}

func (s *Service) environment(command *Command) map[string]string {
	env := map[string]string{}
	for k, v := range s.baseEnv {
		env[k] = v
	}
	for k, v := range command.Env {
		env[k] = v
	}
	if env["PATH"] == "" {
		env["PATH"] = os.Getenv("PATH")
	}
	return env
}

func (s *Service) echoOutput(execution *result.Execution) {
	if s.echo == nil || execution.Output == "" {
		return
	}
	fmt.Fprintln(s.echo, execution.Output)
}

// quote wraps a shell argument in single quotes when it contains characters
// the shell would otherwise interpret.
func quote(value string) string {
	if value != "" && !strings.ContainsAny(value, " \t\n\"'\\$&|;<>()*?[]#~`{}!") {
		return value
	}
	return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}
