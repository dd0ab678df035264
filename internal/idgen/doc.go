// Package idgen wraps the UUID generator used for invocation identifiers so
// that it can be stubbed in tests. It lives under `internal` because callers
// should treat identifiers as opaque strings.
package idgen
