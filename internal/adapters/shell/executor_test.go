package shell

import (
	"context"
	"runtime"
	"strings"
	"testing"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(error, ...any)  {}

func TestRunCapturesCombinedOutputWhenNotStreaming(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a /bin/sh command line")
	}
	e := NewExecutor(nopLogger{})
	out, err := e.Run(context.Background(), "echo hello", "", false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := strings.TrimSpace(string(out)); got != "hello" {
		t.Fatalf("output = %q, want %q", got, "hello")
	}
}

func TestRunStreamingReturnsNoOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a /bin/sh command line")
	}
	e := NewExecutor(nopLogger{})
	out, err := e.Run(context.Background(), "echo hello", "", true)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != nil {
		t.Fatalf("streaming output = %v, want nil", out)
	}
}

func TestRunHonorsWorkingDirectory(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a /bin/sh command line")
	}
	dir := t.TempDir()
	e := NewExecutor(nopLogger{})
	out, err := e.Run(context.Background(), "pwd", dir, false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := strings.TrimSpace(string(out)); got != dir {
		t.Fatalf("pwd = %q, want %q", got, dir)
	}
}

func TestRunFailureWrapsExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a /bin/sh command line")
	}
	e := NewExecutor(nopLogger{})
	_, err := e.Run(context.Background(), "exit 3", "", false)
	if err == nil {
		t.Fatal("expected an error for a nonzero exit")
	}
}

func TestRunContextCancellationIsNotWrapped(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a /bin/sh command line")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e := NewExecutor(nopLogger{})
	_, err := e.Run(ctx, "echo hello", "", false)
	if err == nil {
		t.Fatal("expected an error for a cancelled context")
	}
	if err != context.Canceled {
		t.Fatalf("err = %v, want the bare context.Canceled", err)
	}
}
