// Package model contains the in-memory representation of command
// registrations and execution results used by the svcrun engine.
//
// The `types` sub-package defines the handler contract every service command
// satisfies, while `result` holds the per-tool execution records and their
// per-command aggregation.  The root model package simply groups those
// building blocks so that they can be referenced from other parts of the code
// base with a single import.
package model
