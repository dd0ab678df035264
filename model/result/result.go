package result

import (
	"strings"
	"time"
)

// Outcome classifies how a tool run ended.
const (
	OutcomeSuccess  = "success"
	OutcomeFailed   = "failed"    // tool ran and returned non-zero
	OutcomeNotFound = "not-found" // executable missing from the environment
	OutcomeTimeout  = "timeout"   // tool exceeded the configured deadline
	OutcomeDenied   = "denied"    // blocked by policy before it ran
)

// Execution captures the outcome of running one external tool. Values are
// immutable once produced; callers treat them as read-only records.
type Execution struct {
	Command   string        `json:"command"`
	Args      []string      `json:"args,omitempty"`
	Output    string        `json:"output,omitempty"`
	ExitCode  int           `json:"exitCode"`
	Outcome   string        `json:"outcome"`
	Success   bool          `json:"success"`
	Error     string        `json:"error,omitempty"`
	StartedAt time.Time     `json:"startedAt"`
	Elapsed   time.Duration `json:"elapsed"`
}

// CommandLine returns the command with its arguments as a single printable line.
func (e *Execution) CommandLine() string {
	if len(e.Args) == 0 {
		return e.Command
	}
	return e.Command + " " + strings.Join(e.Args, " ")
}

// NewSuccess builds a passing execution record.
func NewSuccess(command string, args []string, output string) *Execution {
	return &Execution{Command: command, Args: args, Output: output, Outcome: OutcomeSuccess, Success: true}
}

// NewFailure builds a failing execution record for a tool that ran and
// returned a non-zero exit code.
func NewFailure(command string, args []string, output string, exitCode int) *Execution {
	return &Execution{Command: command, Args: args, Output: output, ExitCode: exitCode, Outcome: OutcomeFailed}
}

// NewNotFound builds a failing record for a tool missing from the environment.
func NewNotFound(command string, hint string) *Execution {
	return &Execution{Command: command, Output: hint, ExitCode: -1, Outcome: OutcomeNotFound, Error: "executable not found: " + command}
}
