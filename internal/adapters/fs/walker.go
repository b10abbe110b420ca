// Package fs provides filesystem adapters: the timestamp cache, package-ID
// store, dependency oracle, and the recursive source/asset directory
// walker they share.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
	"strings"
)

// Walker walks a directory recursively, skipping version-control
// directories and hidden entries (SPEC_FULL.md §4.7 step 6: "recursive
// scan, hidden files skipped").
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields every non-hidden file under root, skipping .git/.jj
// directories and any path present in ignores (absolute paths, per
// SPEC_FULL.md §3 files-to-ignore).
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq[string] {
	ignoreSet := make(map[string]bool, len(ignores))
	for _, ig := range ignores {
		ignoreSet[normalize(ig)] = true
	}

	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if w.shouldSkipDir(path, d, ignoreSet) {
					return filepath.SkipDir
				}
				return nil
			}

			if isHidden(d.Name()) || ignoreSet[normalize(path)] {
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

func (w *Walker) shouldSkipDir(path string, d fs.DirEntry, ignores map[string]bool) bool {
	name := d.Name()
	if name == ".git" || name == ".jj" {
		return true
	}
	if isHidden(name) && path != "." {
		return true
	}
	return ignores[normalize(path)]
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
