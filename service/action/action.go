// Package action hosts the built-in command services (quality, dev, django,
// publish) together with the shared check-running loop they all use.
package action

import (
	"context"

	"github.com/viant/svcrun/model/result"
	"github.com/viant/svcrun/progress"
	"github.com/viant/svcrun/service/reporter"
	"github.com/viant/svcrun/service/runner"
)

// Check pairs a display name with the tool invocation backing it. Enrich,
// when set, may derive a replacement execution record (e.g. to summarise tool
// output) before the outcome is aggregated.
type Check struct {
	Name    string
	Command *runner.Command
	Enrich  func(execution *result.Execution) *result.Execution
}

// RunAll executes checks sequentially in the given order, records every
// outcome into one aggregate and renders the report. It never short-circuits:
// a broken tool does not prevent sibling checks from running and reporting.
// The error return is reserved for internal faults (e.g. cancellation), in
// which case the partial aggregate is discarded rather than reported.
func RunAll(ctx context.Context, toolRunner runner.Runner, reporterSvc *reporter.Service, title string, checks []*Check) (bool, error) {
	aggregate := result.NewAggregate()
	tracker, _ := progress.FromContext(ctx)
	for _, check := range checks {
		tracker.Update(progress.Delta{Total: 1, Running: 1})
		execution, err := toolRunner.Run(ctx, check.Command)
		if err != nil {
			tracker.Update(progress.Delta{Running: -1})
			return false, err
		}
		if check.Enrich != nil {
			execution = check.Enrich(execution)
		}
		delta := progress.Delta{Running: -1}
		if execution.Success {
			delta.Passed = 1
		} else {
			delta.Failed = 1
		}
		tracker.Update(delta)
		if err := aggregate.Add(check.Name, execution); err != nil {
			return false, err
		}
	}
	aggregate.Finalize()
	if err := reporterSvc.Report(title, aggregate); err != nil {
		return false, err
	}
	return aggregate.Success(), nil
}

// Record adds an execution to the aggregate and mirrors its outcome into the
// context progress tracker; used by commands that assemble aggregates by hand.
func Record(ctx context.Context, aggregate *result.Aggregate, name string, execution *result.Execution) error {
	tracker, _ := progress.FromContext(ctx)
	delta := progress.Delta{Total: 1}
	if execution.Success {
		delta.Passed = 1
	} else {
		delta.Failed = 1
	}
	tracker.Update(delta)
	return aggregate.Add(name, execution)
}

// Report renders an already built aggregate and returns its verdict; used by
// commands that synthesise their own execution records.
func Report(reporterSvc *reporter.Service, title string, aggregate *result.Aggregate) (bool, error) {
	aggregate.Finalize()
	if err := reporterSvc.Report(title, aggregate); err != nil {
		return false, err
	}
	return aggregate.Success(), nil
}
