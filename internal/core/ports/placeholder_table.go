package ports

//go:generate go run go.uber.org/mock/mockgen -source=placeholder_table.go -destination=mocks/mock_placeholder_table.go -package=mocks

// PlaceholderTable is a process-wide mapping from token name (without the
// ${…} syntax) to string. Expand rewrites a string in place by scanning
// for ${…} spans and replacing each with the registered value (or empty
// string, with a diagnostic, when unknown). Expand advances past the
// replacement rather than restarting from it, so a value that itself
// contains ${…} is not re-expanded.
type PlaceholderTable interface {
	Set(name, value string)
	Expand(s string) string
}
