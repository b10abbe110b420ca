package domain

// CommandKind distinguishes a shell subprocess invocation from a plain
// filesystem copy (asset directories, and a library's shared object
// copied into its own output filename, carry no build-command
// template, per SPEC_FULL.md §4.7 steps 9-10).
type CommandKind int

const (
	ShellCommand CommandKind = iota
	CopyFile
)

// DeferredCommand bundles a not-yet-executed unit of work with
// everything the queue and oracle need once it runs: its kind, the
// literal command string for ShellCommand (post-substitution except for
// the deferred ${deps file} token), the stage it belongs to, the
// source/destination paths, and the owning package's ID.
type DeferredCommand struct {
	Kind        CommandKind
	Command     string
	Stage       Stage
	Source      string
	Destination string
	PackageID   PackageID

	// UsesDepsFile records whether the original template contained
	// ${deps file}; if false, the worker falls back to recording only
	// Source as the sole input after a successful compile.
	UsesDepsFile bool
}
