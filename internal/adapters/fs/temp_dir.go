package fs

import (
	"path/filepath"
	"strconv"

	"github.com/AndrewAPrice/rebs/internal/core/domain"
)

// PackageTempDir returns a package's scratch directory under tempRoot,
// mirroring original_source/source/temp_directory.cc's
// GetTempDirectoryPathForPackageID. Exported so the composition root can
// build the same tempDirFor closure the PackageIDStore and
// DependencyOracle each close over independently.
func PackageTempDir(tempRoot string, id domain.PackageID) string {
	return filepath.Join(tempRoot, strconv.Itoa(int(id)))
}
