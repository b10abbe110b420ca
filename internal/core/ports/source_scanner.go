package ports

import "iter"

//go:generate go run go.uber.org/mock/mockgen -source=source_scanner.go -destination=mocks/mock_source_scanner.go -package=mocks

// SourceScanner recursively walks a directory, yielding file paths while
// skipping version-control directories, hidden entries, and any path
// present in ignores (SPEC_FULL.md §4.7 step 6).
type SourceScanner interface {
	WalkFiles(root string, ignores []string) iter.Seq[string]
}
