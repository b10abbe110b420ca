package domain

// PackageType is either Application or Library.
type PackageType int

const (
	// Application produces an executable and may be run.
	Application PackageType = iota
	// Library produces a static archive and/or a shared library.
	Library
)

func (t PackageType) String() string {
	if t == Application {
		return "application"
	}
	return "library"
}

// PackageID is a stable small integer assigned to a package path on first
// sighting and persisted across runs. It is used as a filesystem directory
// name for per-package scratch space.
type PackageID int

// IncludePath is a single consolidated include directory tagged with the
// include-priority of the package that contributed it, so that buckets can
// be sorted ascending while preserving discovery order within a bucket.
type IncludePath struct {
	Path     string
	Priority int
}

// UnconsolidatedMetadata is parsed directly from a package's configuration,
// before any dependency-closure walk.
type UnconsolidatedMetadata struct {
	Type PackageType

	// BuildCommands maps a file extension (with leading dot, e.g. ".cc")
	// to a command template.
	BuildCommands map[string]string

	LinkerCommand       string
	StaticLinkerCommand string
	OutputExtension     string

	SourceDirectories         []string
	PublicIncludeDirectories  []string
	PrivateIncludeDirectories []string
	PublicDefines             []string
	PrivateDefines            []string
	Dependencies              []string
	FilesToIgnore             []string
	AssetDirectories          []string

	IncludePriority int
	ShouldSkip      bool
	NoOutputFile    bool
	StaticallyLink  bool

	// DestinationDirectory is already placeholder-expanded by the time it
	// lands here (expansion happens at parse time, per SPEC_FULL.md §9).
	DestinationDirectory string

	ThirdPartyRepositories []ThirdPartyRepository
}

// ThirdPartyRepository is a declared third-party dependency resolved by
// `--update` (SPEC_FULL.md §6).
type ThirdPartyRepository struct {
	Name string
	URL  string
}

// ConsolidatedMetadata is computed once per package by walking the
// dependency closure (SPEC_FULL.md §4.6 Phase B).
type ConsolidatedMetadata struct {
	ConsolidatedDefines            []string
	ConsolidatedIncludes           []string
	ConsolidatedDependencies       []string
	StaticallyLinkedLibraryObjects []string
	MetadataTimestamp              int64
	HasConsolidatedInformation     bool
}

// Package is a directory on disk containing an optional package-level
// configuration file, together with the metadata resolved from it.
type Package struct {
	ID   PackageID
	Name InternedString
	Path string

	Unconsolidated UnconsolidatedMetadata
	Consolidated   ConsolidatedMetadata

	// TempDirectory is the per-package scratch path, derived from ID.
	TempDirectory string

	// OutputPath is the package's primary build output (executable for
	// an application; for a library, the file its shared library is
	// copied into).
	OutputPath string

	// StaticallyLinkedLibraryOutputPath is the static archive output
	// path for a library package.
	StaticallyLinkedLibraryOutputPath string

	// SharedLibraryOutputPath is set only for libraries; it is the path
	// inside the process-wide shared-library directory
	// (lib<name>.so).
	SharedLibraryOutputPath string
}

// NameString returns the package's interned name as a string.
func (p *Package) NameString() string {
	return p.Name.String()
}
