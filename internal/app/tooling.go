package app

import (
	"os"

	"github.com/AndrewAPrice/rebs/internal/core/domain"
	"go.trai.ch/zerr"
)

// generateTooling resolves the invocation's input packages and delegates
// to the tooling-hint emitter to write a single combined .clangd file in
// the working directory (SPEC_FULL.md §4.9 "GenerateTooling"; a
// deliberate combined-file redesign of clangd.cc's per-package files, see
// DESIGN.md).
func (bc *buildContext) generateTooling() error {
	names, err := bc.resolveInputNames()
	if err != nil {
		return err
	}
	bc.scanPackageDirectories()

	packages := make([]*domain.Package, 0, len(names))
	for _, name := range names {
		pkg, err := bc.resolver.Resolve(name)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to resolve package"), "package", name)
		}
		packages = append(packages, pkg)
	}

	root, err := os.Getwd()
	if err != nil {
		return zerr.Wrap(domain.ErrIO, "cannot determine working directory")
	}

	return bc.app.toolingHintEmitter.Emit(root, packages)
}
