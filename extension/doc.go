// Package extension provides the run-time registration table that maps
// (service, command) pairs onto executable handlers.
//
// The table is built once at startup - compiled-in services register through
// explicit calls, declarative manifests add out-of-tree pairs - and is
// treated as read-only for the rest of the process lifetime. Registration
// conflicts are configuration errors and abort before any dispatch.
package extension
