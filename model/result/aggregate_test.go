package result

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregate_Success(t *testing.T) {
	testCases := []struct {
		description string
		outcomes    []bool
		expect      bool
	}{
		{
			description: "empty aggregate is a vacuous pass",
			outcomes:    nil,
			expect:      true,
		},
		{
			description: "all passing",
			outcomes:    []bool{true, true, true},
			expect:      true,
		},
		{
			description: "single failure fails the aggregate",
			outcomes:    []bool{true, false, true},
			expect:      false,
		},
		{
			description: "all failing",
			outcomes:    []bool{false, false},
			expect:      false,
		},
	}

	for _, testCase := range testCases {
		aggregate := NewAggregate()
		for i, ok := range testCase.outcomes {
			name := fmt.Sprintf("check-%d", i)
			var execution *Execution
			if ok {
				execution = NewSuccess("tool", nil, "")
			} else {
				execution = NewFailure("tool", nil, "boom", 1)
			}
			err := aggregate.Add(name, execution)
			assert.Nil(t, err, testCase.description)
		}
		aggregate.Finalize()
		assert.EqualValues(t, testCase.expect, aggregate.Success(), testCase.description)
	}
}

func TestAggregate_InsertionOrder(t *testing.T) {
	aggregate := NewAggregate()
	names := []string{"lint", "typecheck", "security"}
	for _, name := range names {
		assert.Nil(t, aggregate.Add(name, NewSuccess(name, nil, "")))
	}
	aggregate.Finalize()
	var actual []string
	for _, entry := range aggregate.Entries() {
		actual = append(actual, entry.Name)
	}
	assert.EqualValues(t, names, actual)
}

func TestAggregate_DuplicateName(t *testing.T) {
	aggregate := NewAggregate()
	assert.Nil(t, aggregate.Add("lint", NewSuccess("ruff", nil, "")))
	assert.NotNil(t, aggregate.Add("lint", NewSuccess("ruff", nil, "")))
}

func TestAggregate_AddAfterFinalize(t *testing.T) {
	aggregate := NewAggregate()
	aggregate.Finalize()
	assert.NotNil(t, aggregate.Add("late", NewSuccess("tool", nil, "")))
}

func TestAggregate_Counters(t *testing.T) {
	aggregate := NewAggregate()
	assert.Nil(t, aggregate.Add("a", NewSuccess("a", nil, "")))
	assert.Nil(t, aggregate.Add("b", NewFailure("b", nil, "", 2)))
	assert.Nil(t, aggregate.Add("c", NewNotFound("c", "install c")))
	aggregate.Finalize()
	assert.EqualValues(t, 3, aggregate.Len())
	assert.EqualValues(t, 1, aggregate.Passed())
	assert.EqualValues(t, 2, aggregate.Failed())
	assert.False(t, aggregate.Success())
	failing := aggregate.Lookup("b")
	assert.NotNil(t, failing)
	assert.EqualValues(t, 2, failing.ExitCode)
}
