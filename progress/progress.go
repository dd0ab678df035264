// Package progress provides a lightweight tracker that keeps aggregated check
// counters (checks total, passed, failed) for a single invocation.  The
// tracker instance lives in the invocation context - every component that
// receives the context can atomically update the counters via the Delta
// helper without requiring a global registry.

package progress

import (
	"context"
	"sync"
	"time"
)

// Delta represents an incremental counter change emitted as individual checks
// run. The fields are signed and can therefore be either positive (increment)
// or negative (decrement).
type Delta struct {
	Total   int
	Passed  int
	Failed  int
	Running int
}

// Progress keeps aggregated check counters for one dispatch and all the
// sub-checks it spawns. It is safe for concurrent use.
type Progress struct {
	// Identification - informative only, filled when the dispatch starts.
	RunID     string
	Service   string
	Command   string
	StartedAt time.Time

	// Counters - modified via Update().
	TotalChecks   int
	PassedChecks  int
	FailedChecks  int
	RunningChecks int

	sync.Mutex
	onChange func(Progress)
}

// Update applies the supplied delta to the tracker. It is safe to call from
// multiple goroutines. If an onChange callback has been registered it will be
// invoked with a copy of the updated tracker outside the critical section so
// that the callback can perform slow operations (e.g. rendering, I/O) without
// blocking the dispatch.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}

	p.Lock()
	p.TotalChecks += d.Total
	p.PassedChecks += d.Passed
	p.FailedChecks += d.Failed
	p.RunningChecks += d.Running

	snapshot := *p
	cb := p.onChange
	p.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Snapshot returns a copy of the tracker suitable for read-only inspection.
func (p *Progress) Snapshot() Progress {
	if p == nil {
		return Progress{}
	}
	p.Lock()
	defer p.Unlock()
	return *p
}

// SuccessRate returns the percentage of checks that passed so far.
func (p *Progress) SuccessRate() float64 {
	snapshot := p.Snapshot()
	if snapshot.TotalChecks == 0 {
		return 0
	}
	return float64(snapshot.PassedChecks) / float64(snapshot.TotalChecks) * 100
}

// OnChange registers a callback that is invoked after every successful
// Update. Passing nil disables the callback. Only one callback can be active;
// subsequent calls overwrite the previous value.
func (p *Progress) OnChange(cb func(Progress)) {
	if p == nil {
		return
	}
	p.Lock()
	p.onChange = cb
	p.Unlock()
}

type trackerKeyT struct{}

var trackerKey trackerKeyT

// WithNewTracker creates a new Progress tracker, embeds it in a derived
// context and returns both. The caller may optionally pass an onChange
// callback that will be invoked after every counter update.
func WithNewTracker(ctx context.Context, runID, service, command string, onChange func(Progress)) (context.Context, *Progress) {
	if ctx == nil {
		ctx = context.Background()
	}
	tr := &Progress{
		RunID:     runID,
		Service:   service,
		Command:   command,
		StartedAt: time.Now(),
		onChange:  onChange,
	}
	return context.WithValue(ctx, trackerKey, tr), tr
}

// FromContext extracts the Progress tracker from ctx. The second return value
// is false when the context carries no tracker.
func FromContext(ctx context.Context) (*Progress, bool) {
	if ctx == nil {
		return nil, false
	}
	tr, ok := ctx.Value(trackerKey).(*Progress)
	return tr, ok
}
