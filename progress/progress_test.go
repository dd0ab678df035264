package progress

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgress_Update(t *testing.T) {
	ctx, tracker := WithNewTracker(context.Background(), "run-1", "quality", "lint", nil)

	fromCtx, ok := FromContext(ctx)
	assert.True(t, ok)
	assert.Same(t, tracker, fromCtx)

	tracker.Update(Delta{Total: 3, Running: 1})
	tracker.Update(Delta{Passed: 1, Running: -1})
	tracker.Update(Delta{Passed: 1})
	tracker.Update(Delta{Failed: 1})

	snapshot := tracker.Snapshot()
	assert.EqualValues(t, 3, snapshot.TotalChecks)
	assert.EqualValues(t, 2, snapshot.PassedChecks)
	assert.EqualValues(t, 1, snapshot.FailedChecks)
	assert.EqualValues(t, 0, snapshot.RunningChecks)
	assert.InDelta(t, 66.6, tracker.SuccessRate(), 1.0)
}

func TestProgress_OnChange(t *testing.T) {
	_, tracker := WithNewTracker(context.Background(), "run-2", "dev", "install", nil)
	var seen []Progress
	tracker.OnChange(func(p Progress) {
		seen = append(seen, p)
	})
	tracker.Update(Delta{Total: 1})
	tracker.Update(Delta{Passed: 1})
	assert.EqualValues(t, 2, len(seen))
	assert.EqualValues(t, 1, seen[1].PassedChecks)
}

func TestProgress_NilSafe(t *testing.T) {
	var tracker *Progress
	tracker.Update(Delta{Total: 1})
	assert.EqualValues(t, Progress{}, tracker.Snapshot())

	_, ok := FromContext(context.Background())
	assert.False(t, ok)
}
