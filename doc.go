// Package svcrun provides a command dispatch layer for project automation.
//
// Related developer commands are grouped into named services (for example
// "quality" or "dev"); a (service, command) pair resolves to a handler that
// fans out to external tools, aggregates their outcomes and reports a single
// verdict. The package comes with pluggable layers such as:
//
//   - extension  – the service/command registry
//   - runner     – subprocess execution with timeouts and venv-aware PATH
//   - manifest   – YAML-declared commands layered over the built-ins
//   - dispatcher – argument parsing and exit-code mapping
//
// svcrun is designed to be embedded in host applications as well as driven
// from the bundled CLI. End-users typically interact via the high-level
// Service façade exposed by the root package:
//
//	srv, _ := svcrun.New(ctx, svcrun.WithConfig(config))
//	os.Exit(srv.Dispatch(ctx, os.Args[1:]))
//
// For more details see the README and individual sub-packages.
package svcrun
