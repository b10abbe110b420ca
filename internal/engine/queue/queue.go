// Package queue executes a planner.Plan's commands stage by stage,
// grounded on original_source/source/command_queue.cc's ExecuteStage (the
// shared-cursor worker pool, per-worker scratch dependency file, and
// combined-output-on-failure buffer) translated into goroutines, and on
// traiproject-same/internal/engine/scheduler's use of errgroup for the
// worker fan-out idiom.
package queue

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/AndrewAPrice/rebs/internal/core/domain"
	"github.com/AndrewAPrice/rebs/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const depFilePrefix = "deps"

// Queue runs a stage-partitioned set of commands with a hard barrier
// between stages (SPEC_FULL.md §5).
type Queue struct {
	executor      ports.Executor
	copier        ports.FileCopier
	oracle        ports.DependencyOracle
	reporter      ports.ProgressReporter
	logger        ports.Logger
	parseDepsFile func(path string) ([]string, error)

	depsDir       string
	parallelTasks int
	verbose       bool
}

// New creates a Queue. depsDir is the current optimization level's temp
// root, under which each worker's scratch "deps<i>" file lives.
// parseDepsFile reads a compiler-emitted Make-style dependency file back
// into a list of input paths.
func New(
	executor ports.Executor,
	copier ports.FileCopier,
	oracle ports.DependencyOracle,
	reporter ports.ProgressReporter,
	logger ports.Logger,
	parseDepsFile func(path string) ([]string, error),
	depsDir string,
	parallelTasks int,
	verbose bool,
) *Queue {
	if parallelTasks < 1 {
		parallelTasks = 1
	}
	return &Queue{
		executor:      executor,
		copier:        copier,
		oracle:        oracle,
		reporter:      reporter,
		logger:        logger,
		parseDepsFile: parseDepsFile,
		depsDir:       depsDir,
		parallelTasks: parallelTasks,
		verbose:       verbose,
	}
}

// Execute runs every stage in ascending order. Stage k+1 only begins once
// every worker of stage k has joined and no command in it failed.
func (q *Queue) Execute(ctx context.Context, commands map[domain.Stage][]domain.DeferredCommand) error {
	total := 0
	for _, cmds := range commands {
		total += len(cmds)
	}
	if total == 0 {
		return nil
	}

	var completed int
	var completedMu sync.Mutex
	advance := func(label string) {
		completedMu.Lock()
		completed++
		n := completed
		completedMu.Unlock()
		q.reporter.Advance(n, total, label)
	}

	for _, stage := range domain.Stages {
		cmds := commands[stage]
		if len(cmds) == 0 {
			continue
		}

		var err error
		if stage == domain.RunStage || q.verbose {
			err = q.runSequentially(ctx, stage, cmds, advance)
		} else {
			err = q.runConcurrently(ctx, stage, cmds, advance)
		}
		if err != nil {
			q.reporter.Fail(stage.String(), []byte(err.Error()))
			return err
		}
	}

	q.reporter.Done()
	return q.oracle.Flush()
}

// runSequentially is used for the Run stage (foreground, inherited
// stdio) and for every stage in verbose mode, where commands are printed
// before execution and run one at a time to keep output legible
// (SPEC_FULL.md §4.8 "Verbose mode").
func (q *Queue) runSequentially(ctx context.Context, stage domain.Stage, cmds []domain.DeferredCommand, advance func(string)) error {
	recordDeps := stage == domain.Compile
	for _, cmd := range cmds {
		if q.verbose && cmd.Kind == domain.ShellCommand {
			q.logger.Info("running command", "stage", stage.String(), "command", cmd.Command)
		}
		if err := q.runOne(ctx, cmd, 0, true, recordDeps); err != nil {
			return err
		}
		advance(label(cmd))
	}
	return nil
}

// runConcurrently partitions cmds across a worker pool, workers pulling
// from a shared, mutex-protected cursor (first-come-first-served; no
// ordering guarantee within the stage). Every failure is recorded; once
// every worker has drained the remaining commands, one stage error
// carrying all failures' messages is returned, matching the original's
// "let in-flight workers finish naturally" behavior.
func (q *Queue) runConcurrently(ctx context.Context, stage domain.Stage, cmds []domain.DeferredCommand, advance func(string)) error {
	recordDeps := stage == domain.Compile

	workerCount := min(len(cmds), q.parallelTasks)

	var cursorMu sync.Mutex
	next := 0
	nextCommand := func() (domain.DeferredCommand, bool) {
		cursorMu.Lock()
		defer cursorMu.Unlock()
		if next >= len(cmds) {
			return domain.DeferredCommand{}, false
		}
		cmd := cmds[next]
		next++
		return cmd, true
	}

	var outputMu sync.Mutex
	var combinedOutput strings.Builder
	var failed bool

	g, gctx := errgroup.WithContext(ctx)
	for workerIndex := 0; workerIndex < workerCount; workerIndex++ {
		workerIndex := workerIndex
		g.Go(func() error {
			for {
				cmd, ok := nextCommand()
				if !ok {
					return nil
				}

				err := q.runOne(gctx, cmd, workerIndex, false, recordDeps)
				advance(label(cmd))
				if err != nil {
					outputMu.Lock()
					combinedOutput.WriteString(err.Error())
					combinedOutput.WriteByte('\n')
					failed = true
					outputMu.Unlock()
				}
			}
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if failed {
		return zerr.With(zerr.With(zerr.New("stage failed"), "stage", stage.String()), "output", combinedOutput.String())
	}
	return nil
}

// runOne executes a single command, handling both kinds: a plain file
// copy, or a shell command with the ${deps file} token resolved to this
// worker's scratch path when the template asked for it.
func (q *Queue) runOne(ctx context.Context, cmd domain.DeferredCommand, workerIndex int, stream bool, recordDeps bool) error {
	if cmd.Kind == domain.CopyFile {
		if err := q.copier.Copy(cmd.Source, cmd.Destination); err != nil {
			return zerr.With(zerr.With(zerr.Wrap(err, "failed to copy"), "source", cmd.Source), "destination", cmd.Destination)
		}
		return nil
	}

	command := cmd.Command
	depsFilePath := ""
	if recordDeps && cmd.UsesDepsFile {
		depsFilePath = filepath.Join(q.depsDir, fmt.Sprintf("%s%d", depFilePrefix, workerIndex))
		command = strings.ReplaceAll(command, "${deps file}", fmt.Sprintf("%q", depsFilePath))
	}

	output, err := q.executor.Run(ctx, command, "", stream)
	if err != nil {
		return zerr.With(zerr.With(zerr.Wrap(err, "command failed"), "command", command), "output", string(output))
	}

	if !recordDeps {
		return nil
	}

	inputs := []string{cmd.Source}
	if depsFilePath != "" {
		if parsed, err := q.parseDepsFile(depsFilePath); err != nil {
			q.logger.Warn("failed to read dependency file", "path", depsFilePath, "error", err)
		} else {
			inputs = parsed
		}
	}
	q.oracle.SetInputs(cmd.PackageID, cmd.Destination, inputs)
	return nil
}

func label(cmd domain.DeferredCommand) string {
	if cmd.Destination != "" {
		return filepath.Base(cmd.Destination)
	}
	return cmd.Command
}
