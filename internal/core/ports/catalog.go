package ports

//go:generate go run go.uber.org/mock/mockgen -source=catalog.go -destination=mocks/mock_catalog.go -package=mocks

// Catalog discovers packages by directory scan and by name lookup
// (SPEC_FULL.md §4.5).
type Catalog interface {
	// RegisterPath registers a package at the given absolute path,
	// keeping the first registration on a duplicate leaf name.
	RegisterPath(path string)

	// PathOf returns the catalog entry for name, or "" if unknown.
	PathOf(name string) string

	// NameOf returns the leaf component of path.
	NameOf(path string) string

	// Entries returns every registered (name, path) pair, for List.
	Entries() map[string]string
}
