// Package metadata implements the two-phase (load, then consolidate)
// package metadata resolver (SPEC_FULL.md §4.6), grounded on
// original_source/source/package_metadata.cc's
// GetUnconsolidatedMetadataForPackage / ConsolidateMetadataForPackage.
package metadata

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/AndrewAPrice/rebs/internal/core/domain"
	"github.com/AndrewAPrice/rebs/internal/core/ports"
	"go.trai.ch/zerr"
)

const defaultIncludePriority = 1000

// Resolver resolves package names into fully consolidated
// domain.Package values, caching by name so that diamond dependency
// graphs only load and consolidate a package once.
type Resolver struct {
	catalog      ports.Catalog
	configLoader ports.ConfigLoader
	idStore      ports.PackageIDStore
	placeholders ports.PlaceholderTable
	logger       ports.Logger

	// tempDir derives a package's scratch directory from its ID.
	tempDir func(domain.PackageID) string
	// sharedLibraryDir and staticLibraryDir are the process-wide
	// directories libraries' shared objects and static archives are
	// named into, mirroring original_source/source/packages.cc's
	// dynamic_library_directory_path / static_library_directory_path.
	sharedLibraryDir string
	staticLibraryDir string

	mu         sync.Mutex
	byName     map[string]*domain.Package
	global     ports.ConfigValue
	globalTS   int64
	haveGlobal bool
}

// New creates a Resolver.
func New(
	catalog ports.Catalog,
	configLoader ports.ConfigLoader,
	idStore ports.PackageIDStore,
	placeholders ports.PlaceholderTable,
	tempDir func(domain.PackageID) string,
	sharedLibraryDir string,
	staticLibraryDir string,
	logger ports.Logger,
) *Resolver {
	return &Resolver{
		catalog:          catalog,
		configLoader:     configLoader,
		idStore:          idStore,
		placeholders:     placeholders,
		logger:           logger,
		tempDir:          tempDir,
		sharedLibraryDir: sharedLibraryDir,
		staticLibraryDir: staticLibraryDir,
		byName:           make(map[string]*domain.Package),
	}
}

// Resolve returns the fully consolidated metadata for name, loading and
// consolidating it if this is the first time it has been seen. The
// resolver's internal state is the single-threaded global maps the
// original tool keeps, so Resolve is guarded end-to-end by one mutex;
// the planner calls it before any concurrent work begins (§4.7, §4.8).
func (r *Resolver) Resolve(name string) (*domain.Package, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pkg, err := r.load(name)
	if err != nil {
		return nil, err
	}
	if !pkg.Consolidated.HasConsolidatedInformation {
		if err := r.consolidate(name, pkg); err != nil {
			return nil, err
		}
	}
	return pkg, nil
}

// load implements Phase A.
func (r *Resolver) load(name string) (*domain.Package, error) {
	if pkg, ok := r.byName[name]; ok {
		return pkg, nil
	}

	r.placeholders.Set("package name", name)

	path := r.catalog.PathOf(name)
	if path == "" {
		return nil, zerr.With(zerr.Wrap(domain.ErrResolve, "unknown package"), "name", name)
	}

	if !r.haveGlobal {
		global, ts, err := r.configLoader.LoadGlobal()
		if err != nil {
			return nil, zerr.Wrap(err, "failed to load global config")
		}
		r.global, r.globalTS, r.haveGlobal = global, ts, true
	}

	value, ts, err := r.configLoader.LoadPackage(path, r.global, r.globalTS)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to load package config"), "package", name)
	}

	pkg := &domain.Package{
		Name: domain.NewInternedString(name),
		Path: path,
	}
	if err := parseConfig(value, path, &pkg.Unconsolidated, r.placeholders); err != nil {
		return nil, zerr.With(err, "package", name)
	}
	pkg.Consolidated.MetadataTimestamp = ts

	pkg.ID = r.idStore.IDOf(path)
	pkg.TempDirectory = r.tempDir(pkg.ID)
	r.computeOutputPaths(pkg)

	r.byName[name] = pkg
	return pkg, nil
}

// computeOutputPaths fills OutputPath, StaticallyLinkedLibraryOutputPath
// and (for libraries) SharedLibraryOutputPath, per §4.6 Phase A.
func (r *Resolver) computeOutputPaths(pkg *domain.Package) {
	base := pkg.TempDirectory
	if pkg.Unconsolidated.DestinationDirectory != "" {
		base = pkg.Unconsolidated.DestinationDirectory
	}

	output := filepath.Join(base, pkg.NameString())
	if pkg.Unconsolidated.OutputExtension != "" {
		output += "." + pkg.Unconsolidated.OutputExtension
	}
	pkg.OutputPath = output

	if pkg.Unconsolidated.Type == domain.Library {
		if r.sharedLibraryDir != "" {
			pkg.SharedLibraryOutputPath = filepath.Join(r.sharedLibraryDir, "lib"+pkg.NameString()+".so")
		}
		if r.staticLibraryDir != "" && pkg.Unconsolidated.StaticLinkerCommand != "" {
			ext := pkg.Unconsolidated.OutputExtension
			if ext == "" {
				ext = "a"
			}
			pkg.StaticallyLinkedLibraryOutputPath = filepath.Join(r.staticLibraryDir, pkg.NameString()+"."+ext)
		}
	}
}

// consolidate implements Phase B: a breadth-first walk of the
// dependency graph, merging each dependency's public surface into
// pkg.Consolidated.
func (r *Resolver) consolidate(name string, pkg *domain.Package) error {
	visited := map[string]bool{name: true}
	queue := append([]string{}, pkg.Unconsolidated.Dependencies...)
	for _, dep := range queue {
		visited[dep] = true
	}

	defines := newOrderedSet()
	undefines := newOrderedSet()
	addDefine := func(define string) {
		if define != "" && define[0] == '-' {
			undefines.add(define[1:])
		} else {
			defines.add(define)
		}
	}
	for _, d := range pkg.Unconsolidated.PrivateDefines {
		addDefine(d)
	}
	for _, d := range pkg.Unconsolidated.PublicDefines {
		addDefine(d)
	}

	includes := newIncludeBuckets()
	for _, dir := range pkg.Unconsolidated.PrivateIncludeDirectories {
		addIncludeDirectory(includes, filepath.Join(pkg.Path, dir), pkg.Unconsolidated.IncludePriority)
	}
	for _, dir := range pkg.Unconsolidated.PublicIncludeDirectories {
		addIncludeDirectory(includes, filepath.Join(pkg.Path, dir), pkg.Unconsolidated.IncludePriority)
	}

	for i := 0; i < len(queue); i++ {
		dep := queue[i]

		child, err := r.load(dep)
		if err != nil {
			return zerr.With(zerr.With(zerr.Wrap(domain.ErrResolve, "dependency not found"), "package", name), "dependency", dep)
		}
		if child.Unconsolidated.Type != domain.Library {
			return zerr.With(zerr.With(zerr.Wrap(domain.ErrResolve, "dependency is not a library"), "package", name), "dependency", dep)
		}

		pkg.Consolidated.ConsolidatedDependencies = append(pkg.Consolidated.ConsolidatedDependencies, dep)

		if pkg.Unconsolidated.Type == domain.Application && !child.Unconsolidated.NoOutputFile {
			pkg.Consolidated.StaticallyLinkedLibraryObjects = append(pkg.Consolidated.StaticallyLinkedLibraryObjects, child.OutputPath)
		}

		for _, d := range child.Unconsolidated.PublicDefines {
			addDefine(d)
		}
		for _, dir := range child.Unconsolidated.PublicIncludeDirectories {
			addIncludeDirectory(includes, filepath.Join(child.Path, dir), child.Unconsolidated.IncludePriority)
		}

		pkg.Consolidated.MetadataTimestamp = max(pkg.Consolidated.MetadataTimestamp, child.Consolidated.MetadataTimestamp)

		for _, sub := range child.Unconsolidated.Dependencies {
			if !visited[sub] {
				visited[sub] = true
				queue = append(queue, sub)
			}
		}
	}

	pkg.Consolidated.ConsolidatedDefines = defines.without(undefines)
	pkg.Consolidated.ConsolidatedIncludes = includes.sorted()
	pkg.Consolidated.HasConsolidatedInformation = true
	return nil
}

// orderedSet preserves first-insertion order, matching the original's
// std::set iteration being replaced by an explicit discovery order
// (SPEC_FULL.md §4.6 step 5 cares about "ordered iteration").
type orderedSet struct {
	seen  map[string]bool
	order []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]bool)}
}

func (s *orderedSet) add(v string) {
	if s.seen[v] {
		return
	}
	s.seen[v] = true
	s.order = append(s.order, v)
}

func (s *orderedSet) without(exclude *orderedSet) []string {
	out := make([]string, 0, len(s.order))
	for _, v := range s.order {
		if !exclude.seen[v] {
			out = append(out, v)
		}
	}
	return out
}

// addIncludeDirectory adds path to includes unless it doesn't exist,
// mirroring package_metadata.cc's add_include_directory: a declared
// include directory that was never created (or was removed) must not
// leak a dead -I flag into the compile command line.
func addIncludeDirectory(includes *includeBuckets, path string, priority int) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	includes.add(path, priority)
}

// includeBuckets groups include paths by priority, preserving discovery
// order within a bucket (SPEC_FULL.md §4.6 step 6).
type includeBuckets struct {
	byPriority map[int][]string
	priorities []int
}

func newIncludeBuckets() *includeBuckets {
	return &includeBuckets{byPriority: make(map[int][]string)}
}

func (b *includeBuckets) add(path string, priority int) {
	if _, exists := b.byPriority[priority]; !exists {
		b.priorities = append(b.priorities, priority)
	}
	b.byPriority[priority] = append(b.byPriority[priority], path)
}

func (b *includeBuckets) sorted() []string {
	sortInts(b.priorities)
	var out []string
	for _, p := range b.priorities {
		out = append(out, b.byPriority[p]...)
	}
	return out
}

func sortInts(s []int) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
