// Package reporter renders aggregate results for the terminal. The table
// format mirrors the order checks were invoked in and never drops a failing
// check's captured output; the json format is meant for scripting consumers.
package reporter

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/viant/svcrun/model/result"
	"github.com/viant/toolbox"
)

// Supported output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

const separatorWidth = 70

// Service renders reports.
type Service struct {
	writer io.Writer
	format string
}

// Option customises the reporter.
type Option func(*Service)

// WithWriter redirects report output; defaults to os.Stdout.
func WithWriter(w io.Writer) Option {
	return func(s *Service) { s.writer = w }
}

// WithFormat selects table or json rendering.
func WithFormat(format string) Option {
	return func(s *Service) { s.format = format }
}

// New creates a reporter service.
func New(options ...Option) *Service {
	ret := &Service{writer: os.Stdout, format: FormatTable}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Report renders the aggregate in the configured format.
func (s *Service) Report(title string, aggregate *result.Aggregate) error {
	if s.format == FormatJSON {
		return s.reportJSON(aggregate)
	}
	s.reportTable(title, aggregate)
	return nil
}

func (s *Service) reportJSON(aggregate *result.Aggregate) error {
	document := map[string]interface{}{
		"success": aggregate.Success(),
		"checks":  aggregate.Entries(),
	}
	text, err := toolbox.AsIndentJSONText(document)
	if err != nil {
		return fmt.Errorf("failed to render json report: %w", err)
	}
	fmt.Fprintln(s.writer, text)
	return nil
}

func (s *Service) reportTable(title string, aggregate *result.Aggregate) {
	if title != "" {
		fmt.Fprintf(s.writer, "\n%v\n", color.New(color.FgCyan).Sprint(title))
		s.separator("=")
	}
	nameWidth := 20
	for _, entry := range aggregate.Entries() {
		if len(entry.Name)+2 > nameWidth {
			nameWidth = len(entry.Name) + 2
		}
	}
	fmt.Fprintf(s.writer, "%-*v %-10v %v\n", nameWidth, "Check", "Status", "Details")
	s.separator("-")
	for _, entry := range aggregate.Entries() {
		fmt.Fprintf(s.writer, "%-*v %-10v %v\n", nameWidth, entry.Name, status(entry.Execution), details(entry.Execution))
	}
	s.printFailureOutput(aggregate)
	s.printSummary(aggregate)
}

// printFailureOutput echoes the captured output of every failing check so
// that nothing is silently dropped from the report.
func (s *Service) printFailureOutput(aggregate *result.Aggregate) {
	for _, entry := range aggregate.Entries() {
		execution := entry.Execution
		if execution.Success || strings.TrimSpace(execution.Output) == "" {
			continue
		}
		fmt.Fprintf(s.writer, "\n%v\n", color.New(color.FgRed).Sprintf("--- %v (%v)", entry.Name, execution.CommandLine()))
		fmt.Fprintln(s.writer, strings.TrimRight(execution.Output, "\n"))
	}
}

func (s *Service) printSummary(aggregate *result.Aggregate) {
	s.separator("=")
	fmt.Fprintf(s.writer, "Total checks: %v\n", aggregate.Len())
	fmt.Fprintln(s.writer, color.New(color.FgGreen).Sprintf("Passed: %v", aggregate.Passed()))
	fmt.Fprintln(s.writer, color.New(color.FgRed).Sprintf("Failed: %v", aggregate.Failed()))
	if aggregate.Len() > 0 {
		rate := float64(aggregate.Passed()) / float64(aggregate.Len()) * 100
		fmt.Fprintf(s.writer, "Success rate: %.1f%%\n", rate)
	}
	verdict := color.New(color.FgGreen).Sprint("PASS")
	if !aggregate.Success() {
		verdict = color.New(color.FgRed).Sprint("FAIL")
	}
	fmt.Fprintf(s.writer, "Overall: %v\n", verdict)
	s.separator("=")
}

func (s *Service) separator(char string) {
	fmt.Fprintln(s.writer, strings.Repeat(char, separatorWidth))
}

func status(execution *result.Execution) string {
	if execution.Success {
		return color.New(color.FgGreen).Sprint("✓ PASS")
	}
	return color.New(color.FgRed).Sprint("✗ FAIL")
}

func details(execution *result.Execution) string {
	switch execution.Outcome {
	case result.OutcomeSuccess:
		if execution.Elapsed > 0 {
			return execution.Elapsed.Round(time.Millisecond).String()
		}
		return ""
	case result.OutcomeNotFound:
		return execution.Output
	case result.OutcomeTimeout:
		return execution.Error
	case result.OutcomeDenied:
		return "blocked by policy"
	default:
		return fmt.Sprintf("exit %v", execution.ExitCode)
	}
}
