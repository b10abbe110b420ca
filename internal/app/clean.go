package app

import (
	"os"

	"github.com/AndrewAPrice/rebs/internal/core/domain"
	"go.trai.ch/zerr"
)

// clean deletes the current configuration's temp directory tree
// (original_source/source/temp_directory.cc's
// CleanCurrentConfigurationTempDirectory). deep additionally deletes the
// shared third-party repository cache, which otherwise survives across
// optimization levels (SPEC_FULL.md §4.9 "DeepClean").
func (bc *buildContext) clean(deep bool) error {
	if err := os.RemoveAll(bc.optimizationRoot); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrIO, "failed to clean temp directory"), "path", bc.optimizationRoot)
	}
	bc.app.logger.Info("cleaned temp directory", "path", bc.optimizationRoot)

	if !deep {
		return nil
	}

	if err := os.RemoveAll(bc.thirdPartyCacheRoot); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrIO, "failed to clean third-party cache"), "path", bc.thirdPartyCacheRoot)
	}
	bc.app.logger.Info("cleaned third-party cache", "path", bc.thirdPartyCacheRoot)
	return nil
}
