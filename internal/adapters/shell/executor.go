// Package shell provides the command executor adapter, grounded on
// traiproject-same/internal/adapters/shell/executor.go, adapted: command
// templates here are opaque shell command-line strings (SPEC_FULL.md §3
// build-command templates), not argv lists, and output is buffered by
// default instead of always streaming to the logger (§4.8/§7: non-Run
// stages capture combined output and surface it only on failure).
package shell

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"runtime"

	"github.com/AndrewAPrice/rebs/internal/core/ports"
	"go.trai.ch/zerr"
)

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{logger: logger}
}

// Run executes command as a shell command line in dir. When stream is
// true (verbose mode, or the Run stage) stdout/stderr are inherited from
// the current process and the returned output is always empty; otherwise
// they are captured into the returned buffer.
func (e *Executor) Run(ctx context.Context, command string, dir string, stream bool) ([]byte, error) {
	shellPath, flag := "/bin/sh", "-c"
	if runtime.GOOS == "windows" {
		shellPath, flag = "cmd", "/C"
	}

	cmd := exec.CommandContext(ctx, shellPath, flag, command) //nolint:gosec // command templates come from the package's own config
	if dir != "" {
		cmd.Dir = dir
	}

	if stream {
		if e.logger != nil {
			e.logger.Debug("running command", "command", command, "stream", true)
		}
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		return nil, wrapExecError(ctx, cmd.Run())
	}

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	err := cmd.Run()
	return buf.Bytes(), wrapExecError(ctx, err)
}

func wrapExecError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return err
	}

	exitCode := -1
	if exitErr, ok := err.(*exec.ExitError); ok {
		exitCode = exitErr.ExitCode()
	}
	return zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode)
}
