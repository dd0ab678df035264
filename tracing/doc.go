// Package tracing integrates observability back-ends with the svcrun engine
// to provide per-invocation tracing of dispatches and tool runs.  All
// instrumentation is kept in a separate package so that applications which do
// not require tracing can exclude it from their build.
package tracing
