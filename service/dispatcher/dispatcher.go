// Package dispatcher resolves an invocation (service, command, args) against
// the registration table, executes the handler and maps its outcome onto a
// process exit code. It is the recovery boundary: no internal fault escapes
// as an unhandled crash.
package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/viant/svcrun/extension"
	"github.com/viant/svcrun/internal/idgen"
	"github.com/viant/svcrun/model/types"
	"github.com/viant/svcrun/policy"
	"github.com/viant/svcrun/progress"
	"github.com/viant/svcrun/tracing"
)

// Exit codes of the svcrun process; scripting consumers rely on the
// distinction between "command ran and failed" (1) and "command not found" (2).
const (
	ExitSuccess        = 0
	ExitFailure        = 1
	ExitUnknownCommand = 2
	ExitInternalError  = 3
	ExitInterrupted    = 130
)

// Service dispatches invocations.
type Service struct {
	actions   *extension.Actions
	logger    *slog.Logger
	errWriter io.Writer
}

// Option customises the dispatcher.
type Option func(*Service)

// WithLogger sets the structured logger; defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithErrWriter redirects user-facing error messages; defaults to os.Stderr.
func WithErrWriter(w io.Writer) Option {
	return func(s *Service) { s.errWriter = w }
}

// New creates a dispatcher over the supplied registration table.
func New(actions *extension.Actions, options ...Option) *Service {
	ret := &Service{actions: actions, errWriter: os.Stderr}
	for _, option := range options {
		option(ret)
	}
	if ret.logger == nil {
		ret.logger = slog.Default()
	}
	return ret
}

// Dispatch parses service and command names from args, resolves the handler
// and invokes it with the remaining arguments. Handler booleans map to exit
// codes 0/1; unresolved pairs to 2; internal faults (returned errors or
// panics) are recovered, logged with context and mapped to 3.
func (s *Service) Dispatch(ctx context.Context, args []string) int {
	if len(args) == 0 {
		s.printServices("missing service name")
		return ExitUnknownCommand
	}
	service := args[0]
	if s.actions.Lookup(service) == nil {
		s.printServices(fmt.Sprintf("unknown service %q", service))
		return ExitUnknownCommand
	}
	if len(args) < 2 {
		s.printCommands(service, "missing command name")
		return ExitUnknownCommand
	}
	command, rest := args[1], args[2:]

	executable, err := s.actions.Resolve(service, command)
	if err != nil {
		s.printCommands(service, fmt.Sprintf("unknown command %q in service %q", command, service))
		return ExitUnknownCommand
	}

	action := service + "." + command
	if aPolicy := policy.FromContext(ctx); !aPolicy.Approve(ctx, action, rest) {
		s.logger.Warn("command blocked by policy", "service", service, "command", command)
		fmt.Fprintf(s.errWriter, "%v: blocked by policy\n", action)
		return ExitFailure
	}

	runID := idgen.New()
	ctx, tracker := progress.WithNewTracker(ctx, runID, service, command, nil)
	ctx, span := tracing.StartSpan(ctx, action)
	span.WithAttributes(map[string]string{"run.id": runID, "service": service, "command": command})

	s.logger.Info("dispatching", "run", runID, "service", service, "command", command, "args", rest)
	ok, err := s.invoke(ctx, executable, rest)
	tracing.EndSpan(span, err)

	switch {
	case err != nil && errors.Is(err, context.Canceled):
		// partial results are discarded, not reported as complete
		s.logger.Warn("interrupted", "run", runID, "service", service, "command", command)
		return ExitInterrupted
	case err != nil:
		s.logger.Error("internal dispatch error", "run", runID, "service", service, "command", command, "err", err)
		fmt.Fprintf(s.errWriter, "%v: internal error: %v\n", action, err)
		return ExitInternalError
	case ok:
		s.logger.Info("completed", "run", runID, "service", service, "command", command, "checks", tracker.Snapshot().TotalChecks)
		return ExitSuccess
	default:
		s.logger.Info("failed", "run", runID, "service", service, "command", command, "checks", tracker.Snapshot().TotalChecks)
		return ExitFailure
	}
}

// invoke executes the handler, converting panics into errors so they reach
// the dispatch boundary instead of crashing the process.
func (s *Service) invoke(ctx context.Context, executable types.Executable, args []string) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return executable(ctx, args)
}

func (s *Service) printServices(reason string) {
	fmt.Fprintf(s.errWriter, "%v\n", reason)
	fmt.Fprintf(s.errWriter, "available services: %v\n", strings.Join(s.actions.Services(), ", "))
}

func (s *Service) printCommands(service, reason string) {
	fmt.Fprintf(s.errWriter, "%v\n", reason)
	var lines []string
	for _, signature := range s.actions.Commands(service) {
		line := signature.Name
		if signature.Description != "" {
			line += " - " + signature.Description
		}
		lines = append(lines, "  "+line)
	}
	fmt.Fprintf(s.errWriter, "valid %v commands:\n%v\n", service, strings.Join(lines, "\n"))
}
