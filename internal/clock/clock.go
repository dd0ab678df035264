// Package clock isolates time acquisition so that execution timing can be
// made deterministic in tests.
package clock

import "time"

// NowFunc returns current time. Override in tests for determinism.
var NowFunc = time.Now

// Now is a thin wrapper around NowFunc.
func Now() time.Time { return NowFunc() }

// Since returns the elapsed wall time from started, using NowFunc.
func Since(started time.Time) time.Duration { return Now().Sub(started) }
