package domain

// Action is the top-level operation a single invocation performs,
// grounded on original_source/source/invocation_action.h.
type Action int

const (
	// Run builds then runs the input applications. Default action.
	Run Action = iota
	// Build builds but does not run.
	Build
	// Clean deletes the current configuration's temp directory tree.
	Clean
	// DeepClean additionally deletes the cached-repositories tree.
	DeepClean
	// List prints every catalog entry, then exits.
	List
	// Test builds and runs unit tests for the input packages.
	Test
	// GenerateTooling emits an editor-integration hint file.
	GenerateTooling
	// UpdateThirdParty resolves every declared third-party repository.
	UpdateThirdParty
)

func (a Action) String() string {
	switch a {
	case Run:
		return "run"
	case Build:
		return "build"
	case Clean:
		return "clean"
	case DeepClean:
		return "deep-clean"
	case List:
		return "list"
	case Test:
		return "test"
	case GenerateTooling:
		return "generate-tooling-hint"
	case UpdateThirdParty:
		return "update"
	default:
		return "unknown"
	}
}

// OptimizationLevel selects which compiler flags a build uses and which
// temp-directory subtree its artifacts land in, grounded on
// original_source/source/optimization_level.h.
type OptimizationLevel int

const (
	// Fast is the default: quick to build, some optimizations enabled.
	Fast OptimizationLevel = iota
	// Debug builds with all debug symbols.
	Debug
	// Optimized builds with aggressive, whole-program optimization.
	Optimized
)

// String returns the level's temp-directory subdirectory name.
func (o OptimizationLevel) String() string {
	switch o {
	case Debug:
		return "debug"
	case Optimized:
		return "optimized"
	default:
		return "fast"
	}
}

// Invocation is one fully decoded command-line invocation
// (SPEC_FULL.md §4.9, §6).
type Invocation struct {
	Action            Action
	OptimizationLevel OptimizationLevel
	InputPackages     []string
	AllKnownPackages  bool
	UpdateThirdParty  bool
	Verbose           bool
}
