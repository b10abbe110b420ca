package ports

import "context"

//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks

// Executor runs a single shell command, capturing combined stdout/stderr
// unless streaming is requested (verbose mode, or the Run stage which
// always inherits stdio).
type Executor interface {
	// Run executes command as a shell command line in dir. When stream
	// is true, stdout/stderr are inherited from the current process
	// instead of being captured into the returned output.
	Run(ctx context.Context, command string, dir string, stream bool) (output []byte, err error)
}
