package result

import "fmt"

// Entry associates a check name with its execution record.
type Entry struct {
	Name      string     `json:"name"`
	Execution *Execution `json:"execution"`
}

// Aggregate combines the results of several named checks run under one
// command. Entries keep insertion order (the order checks were invoked) so a
// report shows results in the sequence they logically ran. Overall success is
// the logical AND across all entries; an empty aggregate is deliberately
// defined as success so that a command with zero applicable tools (e.g. no
// test files found) does not fail the run.
type Aggregate struct {
	entries   []Entry
	index     map[string]int
	finalized bool
}

// NewAggregate returns an empty aggregate.
func NewAggregate() *Aggregate {
	return &Aggregate{index: map[string]int{}}
}

// Add inserts one named execution result. Adding the same name twice or
// adding after Finalize is a programming error.
func (a *Aggregate) Add(name string, execution *Execution) error {
	if a.finalized {
		return fmt.Errorf("aggregate already finalized")
	}
	if execution == nil {
		return fmt.Errorf("execution was nil for %v", name)
	}
	if _, ok := a.index[name]; ok {
		return fmt.Errorf("duplicate check name %v", name)
	}
	a.index[name] = len(a.entries)
	a.entries = append(a.entries, Entry{Name: name, Execution: execution})
	return nil
}

// Finalize seals the aggregate; it is only meaningful once every sub-check has
// run, so callers never short-circuit on the first failure.
func (a *Aggregate) Finalize() *Aggregate {
	a.finalized = true
	return a
}

// Success reports whether every entry succeeded.
func (a *Aggregate) Success() bool {
	for i := range a.entries {
		if !a.entries[i].Execution.Success {
			return false
		}
	}
	return true
}

// Entries returns results in insertion order.
func (a *Aggregate) Entries() []Entry {
	return a.entries
}

// Lookup returns the execution recorded under name, or nil.
func (a *Aggregate) Lookup(name string) *Execution {
	if i, ok := a.index[name]; ok {
		return a.entries[i].Execution
	}
	return nil
}

// Len returns the number of recorded checks.
func (a *Aggregate) Len() int {
	return len(a.entries)
}

// Passed counts entries whose execution succeeded.
func (a *Aggregate) Passed() int {
	passed := 0
	for i := range a.entries {
		if a.entries[i].Execution.Success {
			passed++
		}
	}
	return passed
}

// Failed counts entries whose execution failed.
func (a *Aggregate) Failed() int {
	return len(a.entries) - a.Passed()
}
