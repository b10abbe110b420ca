package domain

// Stage is a totally ordered phase of command execution. Every command in
// a stage is independent of every other command in the same stage; stages
// themselves execute in ascending order with a hard barrier between them.
//
// CopyAssets does not exist in the tool this was distilled from, which
// places asset copying in the same slot as the shared-library copy. It is
// inserted here after LinkApplication so that the destination directory's
// final layout includes the freshly linked binary (see SPEC_FULL.md §9).
type Stage int

const (
	Compile Stage = iota
	LinkLibrary
	LinkApplication
	CopyAssets
	RunStage
)

// String returns a human-readable stage name, used in progress output and
// verbose command echoing.
func (s Stage) String() string {
	switch s {
	case Compile:
		return "Compile"
	case LinkLibrary:
		return "LinkLibrary"
	case LinkApplication:
		return "LinkApplication"
	case CopyAssets:
		return "CopyAssets"
	case RunStage:
		return "Run"
	default:
		return "Unknown"
	}
}

// Stages lists every stage in execution order.
var Stages = []Stage{Compile, LinkLibrary, LinkApplication, CopyAssets, RunStage}
