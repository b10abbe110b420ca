package ports

//go:generate go run go.uber.org/mock/mockgen -source=file_copier.go -destination=mocks/mock_file_copier.go -package=mocks

// FileCopier copies a single file, creating the destination's parent
// directory if needed. Used for the CopyAssets stage: asset-directory
// copies and a library's shared object copied into its own output
// filename (SPEC_FULL.md §4.7 steps 9-10).
type FileCopier interface {
	Copy(src, dst string) error
}
