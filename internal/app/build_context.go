package app

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/AndrewAPrice/rebs/internal/adapters/catalog"
	"github.com/AndrewAPrice/rebs/internal/adapters/config"
	"github.com/AndrewAPrice/rebs/internal/adapters/fs"
	"github.com/AndrewAPrice/rebs/internal/adapters/placeholder"
	"github.com/AndrewAPrice/rebs/internal/adapters/progress"
	"github.com/AndrewAPrice/rebs/internal/core/domain"
	"github.com/AndrewAPrice/rebs/internal/core/ports"
	"github.com/AndrewAPrice/rebs/internal/engine/metadata"
	"github.com/AndrewAPrice/rebs/internal/engine/planner"
	"github.com/AndrewAPrice/rebs/internal/engine/queue"
	"go.trai.ch/zerr"
)

const (
	localTempSubdirectory = ".build"
	tempSubdirectory      = "rebs"
	dynamicLibrarySubdir  = "dynamic_libraries"
	staticLibrarySubdir   = "static_libraries"
	thirdPartySubdir      = "third_party"
)

// buildContext is the per-invocation value object described by
// SPEC_FULL.md's GLOSSARY entry "BuildContext": it owns the catalog,
// metadata resolver, placeholder table, oracle, timestamp cache, and ID
// store for exactly one invocation, so that none of this state leaks
// between runs (and so that two optimization levels never share a temp
// tree).
type buildContext struct {
	app *App
	inv domain.Invocation

	tempRootBase        string
	optimizationRoot    string
	thirdPartyCacheRoot string

	catalog      *catalog.Catalog
	placeholders ports.PlaceholderTable
	idStore      ports.PackageIDStore
	timestamps   ports.TimestampCache
	oracle       ports.DependencyOracle
	resolver     *metadata.Resolver
	planner      *planner.Planner
	reporter     ports.ProgressReporter

	packageDirectories []string
	parallelTasks      int

	scannedDirectories bool
}

// newBuildContext resolves the temp root (honoring "isolated universe"
// mode), loads the global config for package_directories/parallel_tasks,
// and wires every per-invocation collaborator, grounded on
// original_source/source/temp_directory.cc's InitializeTempDirectory and
// packages.cc's InitializePackages.
func newBuildContext(a *App, inv domain.Invocation) (*buildContext, error) {
	isolated := config.IsThereALocalConfig()

	tempRootBase := filepath.Join(os.TempDir(), tempSubdirectory)
	if isolated {
		tempRootBase = localTempSubdirectory
	}

	optimizationRoot := filepath.Join(tempRootBase, inv.OptimizationLevel.String())
	sharedLibraryDir := filepath.Join(optimizationRoot, dynamicLibrarySubdir)
	staticLibraryDir := filepath.Join(optimizationRoot, staticLibrarySubdir)
	thirdPartyCacheRoot := filepath.Join(tempRootBase, thirdPartySubdir)

	for _, dir := range []string{optimizationRoot, sharedLibraryDir, staticLibraryDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrIO, "failed to create temp directory"), "path", dir)
		}
	}

	global, _, err := a.configLoader.LoadGlobal()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load global config")
	}

	placeholders := placeholder.New(a.logger)
	placeholders.Set("temp directory", fmt.Sprintf("%q", optimizationRoot))
	placeholders.Set("shared_library_path", fmt.Sprintf("%q", sharedLibraryDir))

	idStore := fs.NewPackageIDStore(optimizationRoot, a.logger)
	timestamps := fs.NewTimestampCache()
	tempDirFor := func(id domain.PackageID) string {
		dir := fs.PackageTempDir(optimizationRoot, id)
		_ = os.MkdirAll(dir, 0o755)
		return dir
	}
	oracle := fs.NewDependencyOracle(timestamps, tempDirFor)

	cat := catalog.New()
	resolver := metadata.New(cat, a.configLoader, idStore, placeholders, tempDirFor, sharedLibraryDir, staticLibraryDir, a.logger)
	pl := planner.New(resolver, a.scanner, oracle, timestamps, placeholders, a.logger)

	bc := &buildContext{
		app: a,
		inv: inv,

		tempRootBase:        tempRootBase,
		optimizationRoot:    optimizationRoot,
		thirdPartyCacheRoot: thirdPartyCacheRoot,

		catalog:      cat,
		placeholders: placeholders,
		idStore:      idStore,
		timestamps:   timestamps,
		oracle:       oracle,
		resolver:     resolver,
		planner:      pl,
		reporter:     progress.New(inv.Verbose),

		packageDirectories: asStringSlice(global["package_directories"]),
		parallelTasks:      intOrDefault(global["parallel_tasks"], runtime.NumCPU()),
	}
	return bc, nil
}

// scanPackageDirectories registers every package under every configured
// package_directories entry, once per invocation.
func (bc *buildContext) scanPackageDirectories() {
	if bc.scannedDirectories {
		return
	}
	bc.scannedDirectories = true
	for _, dir := range bc.packageDirectories {
		if err := bc.catalog.ScanContainer(dir); err != nil {
			bc.app.logger.Warn("failed to scan package directory", "path", dir, "error", err)
		}
	}
}

// rawInputPackages mirrors packages.cc's ForEachRawInputPackage: an empty
// positional list means "current directory" unless a local config put
// this invocation into isolated-universe mode, in which case it means
// "nothing".
func rawInputPackages(inv domain.Invocation) []string {
	if len(inv.InputPackages) > 0 {
		return inv.InputPackages
	}
	if config.IsThereALocalConfig() {
		return nil
	}
	return []string{""}
}

// resolveInputNames computes the package-name list an action should act
// on: every catalog entry for --all, otherwise the registered name of
// each raw positional argument (a bare name, or a path to register on the
// fly), per packages.cc's InitializePackages.
func (bc *buildContext) resolveInputNames() ([]string, error) {
	if bc.inv.AllKnownPackages {
		bc.scanPackageDirectories()
		names := make([]string, 0, len(bc.catalog.Entries()))
		for name := range bc.catalog.Entries() {
			names = append(names, name)
		}
		sort.Strings(names)
		return names, nil
	}

	raws := rawInputPackages(bc.inv)
	names := make([]string, 0, len(raws))
	for _, raw := range raws {
		path, err := bc.resolvePackagePath(raw)
		if err != nil {
			return nil, err
		}
		bc.catalog.RegisterPath(path)
		names = append(names, bc.catalog.NameOf(path))
	}
	return names, nil
}

// resolvePackagePath turns one raw positional argument into an absolute
// package directory: "" means the working directory, a path-looking
// argument is used (and must exist) directly, and a bare name is looked
// up in the catalog after scanning every configured package directory.
func (bc *buildContext) resolvePackagePath(raw string) (string, error) {
	if raw == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", zerr.Wrap(domain.ErrIO, "cannot determine working directory")
		}
		return cwd, nil
	}

	if catalog.IsPath(raw) {
		abs, err := filepath.Abs(raw)
		if err != nil {
			return "", zerr.With(zerr.Wrap(domain.ErrResolve, "invalid package path"), "path", raw)
		}
		if _, err := os.Stat(abs); err != nil {
			return "", zerr.With(zerr.Wrap(domain.ErrResolve, "package path not found"), "path", abs)
		}
		return abs, nil
	}

	bc.scanPackageDirectories()
	if path := bc.catalog.PathOf(raw); path != "" {
		return path, nil
	}
	return "", zerr.With(zerr.Wrap(domain.ErrResolve, "unknown package"), "name", raw)
}

// newQueue builds the stage executor over this invocation's oracle and
// reporter (SPEC_FULL.md §4.8).
func (bc *buildContext) newQueue() *queue.Queue {
	return queue.New(
		bc.app.executor,
		bc.app.copier,
		bc.oracle,
		bc.reporter,
		bc.app.logger,
		fs.ParseMakeDepsFile,
		bc.optimizationRoot,
		bc.parallelTasks,
		bc.inv.Verbose,
	)
}

// flush persists the ID store and dependency oracle best-effort: per
// SPEC_FULL.md §7, an IOError on cache files is diagnosed but must not
// fail an otherwise-successful invocation.
func (bc *buildContext) flush() {
	if err := bc.idStore.Flush(); err != nil {
		bc.app.logger.Warn("failed to flush package ID cache", "error", err)
	}
	if err := bc.oracle.Flush(); err != nil {
		bc.app.logger.Warn("failed to flush dependency cache", "error", err)
	}
}

func asStringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func intOrDefault(v any, fallback int) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return fallback
	}
}
