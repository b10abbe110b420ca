package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/AndrewAPrice/rebs/internal/adapters/catalog"
	"github.com/AndrewAPrice/rebs/internal/adapters/fs"
	"github.com/AndrewAPrice/rebs/internal/adapters/placeholder"
	"github.com/AndrewAPrice/rebs/internal/core/domain"
	"github.com/AndrewAPrice/rebs/internal/core/ports"
	"github.com/AndrewAPrice/rebs/internal/engine/metadata"
	"github.com/AndrewAPrice/rebs/internal/engine/planner"
)

type fakeBuildExecutor struct {
	mu       sync.Mutex
	commands []string
}

func (e *fakeBuildExecutor) Run(_ context.Context, command, _ string, _ bool) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.commands = append(e.commands, command)
	return nil, nil
}

type fakeBuildCopier struct{}

func (fakeBuildCopier) Copy(string, string) error { return nil }

type fakeReporter struct{}

func (fakeReporter) Advance(int, int, string) {}
func (fakeReporter) Fail(string, []byte)      {}
func (fakeReporter) Done()                    {}

// newTestBuildContextForBuild wires a real planner, over a single on-disk
// application package with one source file, plus a fake executor/copier so
// build() and run() can be driven end-to-end without invoking a real
// compiler.
func newTestBuildContextForBuild(t *testing.T) (*buildContext, *fakeBuildExecutor) {
	t.Helper()

	tempRoot := t.TempDir()
	pkgPath := filepath.Join(tempRoot, "app")
	srcDir := filepath.Join(pkgPath, "src")
	if err := os.MkdirAll(srcDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(srcDir, "main.cc"), []byte("int main() {}"), 0o644); err != nil {
		t.Fatal(err)
	}

	optimizationRoot := filepath.Join(tempRoot, "optimization")
	if err := os.MkdirAll(optimizationRoot, 0o755); err != nil {
		t.Fatal(err)
	}
	tempDirFor := func(domain.PackageID) string {
		dir := filepath.Join(optimizationRoot, "0")
		_ = os.MkdirAll(dir, 0o755)
		return dir
	}

	cat := catalog.New()
	cat.RegisterPath(pkgPath)

	loader := &fakeConfigLoader{byPath: map[string]ports.ConfigValue{
		pkgPath: {
			"package_type":       "application",
			"source_directories": []any{"src"},
			"build_commands":     map[string]any{"cc": "cc ${in} -o ${out}"},
			"linker_command":     "ld ${in} -o ${out}",
		},
	}}

	placeholders := placeholder.New(nopLogger{})
	resolver := metadata.New(cat, loader, newFakeIDStore(), placeholders, tempDirFor, "", "", nopLogger{})
	timestamps := fs.NewTimestampCache()
	oracle := fs.NewDependencyOracle(timestamps, tempDirFor)
	pl := planner.New(resolver, fs.NewWalker(), oracle, timestamps, placeholders, nopLogger{})

	executor := &fakeBuildExecutor{}
	a := &App{
		logger:   nopLogger{},
		executor: executor,
		copier:   fakeBuildCopier{},
	}

	bc := &buildContext{
		app:               a,
		inv:               domain.Invocation{InputPackages: []string{"app"}},
		optimizationRoot:  optimizationRoot,
		catalog:           cat,
		resolver:          resolver,
		planner:           pl,
		oracle:            oracle,
		reporter:          fakeReporter{},
		parallelTasks:     1,
	}
	return bc, executor
}

func TestBuildExecutesCompileAndLinkCommands(t *testing.T) {
	bc, executor := newTestBuildContextForBuild(t)

	if err := bc.build(context.Background()); err != nil {
		t.Fatalf("build: %v", err)
	}

	if len(executor.commands) != 2 {
		t.Fatalf("commands = %v, want a compile and a link", executor.commands)
	}
}

func TestRunExecutesBuildThenRunCommand(t *testing.T) {
	bc, executor := newTestBuildContextForBuild(t)

	if err := bc.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(executor.commands) != 3 {
		t.Fatalf("commands = %v, want compile, link, then run", executor.commands)
	}
	last := executor.commands[len(executor.commands)-1]
	if !strings.Contains(last, "app") {
		t.Fatalf("last command = %q, want it to reference the built application", last)
	}
}
