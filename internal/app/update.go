package app

import (
	"github.com/AndrewAPrice/rebs/internal/core/domain"
	"go.trai.ch/zerr"
)

// updateThirdParty resolves every third-party repository declared by the
// invocation's input packages and their full consolidated dependency
// closure, cloning or pulling each into the shared cache root
// (SPEC_FULL.md §4.9 "Update", §6).
func (bc *buildContext) updateThirdParty() error {
	names, err := bc.resolveInputNames()
	if err != nil {
		return err
	}
	bc.scanPackageDirectories()

	visited := make(map[string]bool)
	var repos []domain.ThirdPartyRepository

	var visit func(name string) error
	visit = func(name string) error {
		if visited[name] {
			return nil
		}
		visited[name] = true

		pkg, err := bc.resolver.Resolve(name)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to resolve package"), "package", name)
		}
		repos = append(repos, pkg.Unconsolidated.ThirdPartyRepositories...)

		for _, dep := range pkg.Consolidated.ConsolidatedDependencies {
			if err := visit(dep); err != nil {
				return err
			}
		}
		return nil
	}

	for _, name := range names {
		if err := visit(name); err != nil {
			return err
		}
	}

	var firstErr error
	for _, repo := range repos {
		if err := bc.app.thirdPartyFetcher.Update(bc.thirdPartyCacheRoot, repo); err != nil {
			bc.app.logger.Warn("failed to update third-party repository", "name", repo.Name, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
