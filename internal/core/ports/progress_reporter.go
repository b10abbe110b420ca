package ports

//go:generate go run go.uber.org/mock/mockgen -source=progress_reporter.go -destination=mocks/mock_progress_reporter.go -package=mocks

// ProgressReporter renders the executor's 1-based completed/total counter
// as a single, repeatedly-rewritten terminal line (SPEC_FULL.md §4.8).
type ProgressReporter interface {
	// Advance reports that completed of total commands have finished, the
	// most recently finished one being named label (the base name of its
	// destination, or its command line when it has none).
	Advance(completed, total int, label string)

	// Fail ends the progress line and dumps output, the captured combined
	// stdout/stderr of the command that failed.
	Fail(label string, output []byte)

	// Done ends the progress line on success with a newline, leaving its
	// last text on the terminal.
	Done()
}
