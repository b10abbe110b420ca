package domain

import "go.trai.ch/zerr"

// Sentinel error kinds. Call sites wrap these with zerr.Wrap and attach
// structured metadata with zerr.With; errors.Is against the sentinel keeps
// working after wrapping.
var (
	// ErrResolve covers unknown package names, missing dependencies,
	// dependencies that are not libraries, and unknown package types.
	ErrResolve = zerr.New("resolve error")

	// ErrConfig covers config evaluation failures and malformed config
	// shapes.
	ErrConfig = zerr.New("config error")

	// ErrIO covers failures to open/write persistence files or create
	// directories. Callers of persistence adapters degrade to
	// best-effort caching rather than failing the run on ErrIO.
	ErrIO = zerr.New("io error")

	// ErrExec covers a subprocess exiting non-zero.
	ErrExec = zerr.New("exec error")

	// ErrInvocation covers an unknown command-line flag or malformed
	// invocation.
	ErrInvocation = zerr.New("invocation error")
)
