// Package planner turns resolved package metadata into a stage-ordered
// set of deferred commands, grounded on original_source/source/build.cc
// (per-source compile enqueue, link-list construction, set_to_now calls)
// and run.cc (application run-command enqueue).
package planner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AndrewAPrice/rebs/internal/core/domain"
	"github.com/AndrewAPrice/rebs/internal/core/ports"
	"github.com/AndrewAPrice/rebs/internal/engine/metadata"
	"go.trai.ch/zerr"
)

const objectsSubdirectory = "objects"

// Plan is the stage-partitioned output of planning one invocation.
type Plan struct {
	Commands map[domain.Stage][]domain.DeferredCommand
}

func newPlan() *Plan {
	return &Plan{Commands: make(map[domain.Stage][]domain.DeferredCommand)}
}

func (p *Plan) add(cmd domain.DeferredCommand) {
	p.Commands[cmd.Stage] = append(p.Commands[cmd.Stage], cmd)
}

// Planner builds a Plan for a set of input packages.
type Planner struct {
	resolver     *metadata.Resolver
	scanner      ports.SourceScanner
	oracle       ports.DependencyOracle
	timestamps   ports.TimestampCache
	placeholders ports.PlaceholderTable
	logger       ports.Logger
}

// New creates a Planner.
func New(
	resolver *metadata.Resolver,
	scanner ports.SourceScanner,
	oracle ports.DependencyOracle,
	timestamps ports.TimestampCache,
	placeholders ports.PlaceholderTable,
	logger ports.Logger,
) *Planner {
	return &Planner{
		resolver:     resolver,
		scanner:      scanner,
		oracle:       oracle,
		timestamps:   timestamps,
		placeholders: placeholders,
		logger:       logger,
	}
}

// Plan resolves and plans every input package, recursing into an
// application's consolidated dependencies first, short-circuiting
// diamond graphs with a visited set (SPEC_FULL.md §4.7).
func (p *Planner) Plan(inputNames []string) (*Plan, error) {
	plan := newPlan()
	visited := make(map[string]bool)

	for _, name := range inputNames {
		if err := p.planPackage(name, plan, visited); err != nil {
			return nil, err
		}
	}
	return plan, nil
}

func (p *Planner) planPackage(name string, plan *Plan, visited map[string]bool) error {
	if visited[name] {
		return nil
	}
	visited[name] = true

	pkg, err := p.resolver.Resolve(name)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to resolve package"), "package", name)
	}
	if pkg.Unconsolidated.ShouldSkip {
		return nil
	}

	if pkg.Unconsolidated.Type == domain.Application {
		for _, dep := range pkg.Consolidated.ConsolidatedDependencies {
			if err := p.planPackage(dep, plan, visited); err != nil {
				return err
			}
		}
	}

	if pkg.Unconsolidated.DestinationDirectory != "" {
		if err := os.MkdirAll(pkg.Unconsolidated.DestinationDirectory, 0o755); err != nil {
			return zerr.With(zerr.Wrap(domain.ErrIO, "failed to create destination directory"), "path", pkg.Unconsolidated.DestinationDirectory)
		}
		p.timestamps.Invalidate(pkg.Unconsolidated.DestinationDirectory)
	}

	if pkg.Unconsolidated.NoOutputFile {
		p.planAssets(pkg, plan)
		return nil
	}

	p.placeholders.Set("package name", pkg.NameString())
	p.placeholders.Set("temp directory", fmt.Sprintf("%q", pkg.TempDirectory))
	cdefines := joinPrefixed(pkg.Consolidated.ConsolidatedDefines, "-D")
	cincludes := joinQuotedPrefixed(pkg.Consolidated.ConsolidatedIncludes, "-I")
	p.placeholders.Set("cdefines", cdefines)
	p.placeholders.Set("cincludes", cincludes)

	requiresLinking, objectFiles, err := p.planCompiles(pkg, plan)
	if err != nil {
		return err
	}

	// An application's transitive library objects join the link list
	// unconditionally, the same loop that checks their staleness, mirroring
	// build.cc's BuildPackage (StaticallyLinkedLibraryObjects is only ever
	// populated for applications; see resolver.go's consolidate).
	for _, lib := range pkg.Consolidated.StaticallyLinkedLibraryObjects {
		objectFiles = append(objectFiles, lib)
		if !requiresLinking {
			if p.timestamps.TimestampOf(lib) == 0 ||
				(p.timestamps.TimestampOf(lib) > pkg.Consolidated.MetadataTimestamp &&
					p.timestamps.TimestampOf(lib) > p.timestamps.TimestampOf(pkg.OutputPath)) {
				requiresLinking = true
			}
		}
	}

	if !p.timestamps.Exists(pkg.OutputPath) {
		requiresLinking = true
	}
	if pkg.Unconsolidated.Type == domain.Library && pkg.SharedLibraryOutputPath != "" && !p.timestamps.Exists(pkg.SharedLibraryOutputPath) {
		requiresLinking = true
	}

	if requiresLinking {
		p.planLink(pkg, objectFiles, plan)
	}

	p.planAssets(pkg, plan)
	return nil
}

// planCompiles enqueues a Compile command for every source file whose
// object is stale, and returns whether anything was queued together
// with the full link-list of object paths (SPEC_FULL.md §4.7 step 6).
// It creates each object's containing directory up front, mirroring
// build.cc's EnsureDirectoriesAndParentsExist call inside
// ForEachSourceFile: the compile subprocess never creates its own
// output directory.
func (p *Planner) planCompiles(pkg *domain.Package, plan *Plan) (bool, []string, error) {
	ignored := make(map[string]bool, len(pkg.Unconsolidated.FilesToIgnore))
	for _, f := range pkg.Unconsolidated.FilesToIgnore {
		ignored[f] = true
	}

	var objectFiles []string
	requiresLinking := false
	objectsRoot := filepath.Join(pkg.TempDirectory, objectsSubdirectory)

	for _, sourceDir := range pkg.Unconsolidated.SourceDirectories {
		root := filepath.Join(pkg.Path, sourceDir)
		for source := range p.scanner.WalkFiles(root, nil) {
			if ignored[source] {
				continue
			}

			ext := filepath.Ext(source)
			template, ok := pkg.Unconsolidated.BuildCommands[ext]
			if !ok {
				continue
			}

			rel, err := filepath.Rel(root, source)
			if err != nil {
				rel = filepath.Base(source)
			}
			object := filepath.Join(objectsRoot, sourceDir, rel+".o")
			objectFiles = append(objectFiles, object)

			if !p.oracle.IsStale(pkg.ID, pkg.Consolidated.MetadataTimestamp, object) {
				continue
			}

			if err := os.MkdirAll(filepath.Dir(object), 0o755); err != nil {
				return false, nil, zerr.With(zerr.Wrap(domain.ErrIO, "failed to create object directory"), "path", filepath.Dir(object))
			}

			command := pkg.Unconsolidated.BuildCommands[ext]
			command = p.placeholders.Expand(strings.NewReplacer(
				"${out}", fmt.Sprintf("%q", object),
				"${in}", fmt.Sprintf("%q", source),
			).Replace(command))

			plan.add(domain.DeferredCommand{
				Kind:         domain.ShellCommand,
				Command:      command,
				Stage:        domain.Compile,
				Source:       source,
				Destination:  object,
				PackageID:    pkg.ID,
				UsesDepsFile: strings.Contains(template, "${deps file}"),
			})
			p.timestamps.SetToNow(object)
			requiresLinking = true
		}
	}

	return requiresLinking, objectFiles, nil
}

// planLink emits the linker command(s) for pkg, branching on package
// type (SPEC_FULL.md §4.7 step 9).
func (p *Planner) planLink(pkg *domain.Package, objectFiles []string, plan *Plan) {
	quotedInputs := joinQuoted(objectFiles)

	if pkg.Unconsolidated.Type == domain.Application {
		p.placeholders.Set("shared_libraries", quotedInputs)
		p.timestamps.SetToNow(pkg.OutputPath)

		// Applications always link against the full transitive closure
		// of their dependencies' object outputs, matching build.cc's
		// BuildPackage: consolidated_library_objects is appended to the
		// link list unconditionally, with no per-application static
		// vs. dynamic branch.
		command := p.placeholders.Expand(strings.NewReplacer(
			"${out}", fmt.Sprintf("%q", pkg.OutputPath),
			"${in}", quotedInputs,
		).Replace(pkg.Unconsolidated.LinkerCommand))

		plan.add(domain.DeferredCommand{
			Kind:      domain.ShellCommand,
			Command:   command,
			Stage:     domain.LinkApplication,
			PackageID: pkg.ID,
		})
		return
	}

	// Library: shared link, copy into the package's own output
	// filename, and a static archive (SPEC_FULL.md §4.7 step 9,
	// "Shared-library copy-into-output-filename step").
	if pkg.SharedLibraryOutputPath != "" {
		p.timestamps.SetToNow(pkg.SharedLibraryOutputPath)
		p.placeholders.Set("shared_library_path", fmt.Sprintf("%q", pkg.SharedLibraryOutputPath))

		sharedCommand := p.placeholders.Expand(strings.NewReplacer(
			"${out}", fmt.Sprintf("%q", pkg.SharedLibraryOutputPath),
			"${in}", quotedInputs,
		).Replace(pkg.Unconsolidated.LinkerCommand))

		plan.add(domain.DeferredCommand{
			Kind:      domain.ShellCommand,
			Command:   sharedCommand,
			Stage:     domain.LinkLibrary,
			PackageID: pkg.ID,
		})

		plan.add(domain.DeferredCommand{
			Kind:        domain.CopyFile,
			Stage:       domain.CopyAssets,
			Source:      pkg.SharedLibraryOutputPath,
			Destination: pkg.OutputPath,
			PackageID:   pkg.ID,
		})
	}

	if pkg.Unconsolidated.StaticLinkerCommand != "" && pkg.StaticallyLinkedLibraryOutputPath != "" {
		p.timestamps.SetToNow(pkg.StaticallyLinkedLibraryOutputPath)

		staticCommand := p.placeholders.Expand(strings.NewReplacer(
			"${out}", fmt.Sprintf("%q", pkg.StaticallyLinkedLibraryOutputPath),
			"${in}", quotedInputs,
		).Replace(pkg.Unconsolidated.StaticLinkerCommand))

		plan.add(domain.DeferredCommand{
			Kind:      domain.ShellCommand,
			Command:   staticCommand,
			Stage:     domain.LinkLibrary,
			PackageID: pkg.ID,
		})
	}
}

// planAssets enqueues a copy for every asset file newer than its
// destination counterpart (SPEC_FULL.md §4.7 step 10).
func (p *Planner) planAssets(pkg *domain.Package, plan *Plan) {
	if pkg.Unconsolidated.DestinationDirectory == "" {
		return
	}

	for _, assetDir := range pkg.Unconsolidated.AssetDirectories {
		root := filepath.Join(pkg.Path, assetDir)
		for source := range p.scanner.WalkFiles(root, nil) {
			rel, err := filepath.Rel(root, source)
			if err != nil {
				rel = filepath.Base(source)
			}
			dest := filepath.Join(pkg.Unconsolidated.DestinationDirectory, rel)

			if p.timestamps.TimestampOf(source) <= p.timestamps.TimestampOf(dest) {
				continue
			}

			plan.add(domain.DeferredCommand{
				Kind:        domain.CopyFile,
				Stage:       domain.CopyAssets,
				Source:      source,
				Destination: dest,
				PackageID:   pkg.ID,
			})
		}
	}
}

// PlanRun enqueues Run-stage commands for the Run/Test action, mirroring
// run.cc's RunPackages: a single configured global run command takes over
// entirely, otherwise every top-level input package that is an application
// gets its own run command (libraries named as inputs are silently
// skipped). inputNames must already have been resolved by a prior call to
// Plan so the resolver's cache serves them without re-reading config.
func (p *Planner) PlanRun(inputNames []string, globalRunCommand string, plan *Plan) error {
	if globalRunCommand != "" {
		plan.add(domain.DeferredCommand{
			Kind:    domain.ShellCommand,
			Command: p.placeholders.Expand(globalRunCommand),
			Stage:   domain.RunStage,
		})
		return nil
	}

	seen := make(map[string]bool, len(inputNames))
	ran := 0
	for _, name := range inputNames {
		if seen[name] {
			continue
		}
		seen[name] = true

		pkg, err := p.resolver.Resolve(name)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to resolve package"), "package", name)
		}
		if pkg.Unconsolidated.Type != domain.Application {
			continue
		}

		plan.add(domain.DeferredCommand{
			Kind:      domain.ShellCommand,
			Command:   fmt.Sprintf("%q", pkg.OutputPath),
			Stage:     domain.RunStage,
			PackageID: pkg.ID,
		})
		ran++
	}
	if ran == 0 {
		p.logger.Warn("nothing to run")
	}
	return nil
}

func joinPrefixed(items []string, prefix string) string {
	var b strings.Builder
	for _, item := range items {
		b.WriteString(" " + prefix + item)
	}
	return b.String()
}

func joinQuotedPrefixed(items []string, prefix string) string {
	var b strings.Builder
	for _, item := range items {
		b.WriteString(fmt.Sprintf(" %s%q", prefix, item))
	}
	return b.String()
}

func joinQuoted(items []string) string {
	var b strings.Builder
	for _, item := range items {
		b.WriteString(fmt.Sprintf(" %q", item))
	}
	return b.String()
}
