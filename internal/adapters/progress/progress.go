// Package progress renders the build's single-line progress counter and
// failure-output dump, grounded on
// traiproject-same/cli/internal/ui/output/output.go (termenv color
// profile and TTY setup) and
// traiproject-same/cli/internal/ui/style/style.go (brand colors and
// icons), adapted: a single stateful Reporter replaces the CLI's
// stateless styling helpers, since the build driver needs to repeatedly
// rewrite one terminal line rather than print discrete styled messages.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/AndrewAPrice/rebs/internal/core/ports"
)

// Brand colors, matching the teacher CLI's style package.
var (
	colorSlate  = lipgloss.Color("#667085")
	colorGreen  = lipgloss.Color("#22A06B")
	colorRed    = lipgloss.Color("#D93025")
	colorYellow = lipgloss.Color("#F59E0B")
)

const (
	iconCheck = "✓"
	iconCross = "✗"
)

// colorProfile mirrors output.ColorProfile: Ascii when NO_COLOR is set,
// the terminal's detected profile otherwise.
func colorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// Reporter implements ports.ProgressReporter by rewriting one line of w
// with a carriage return, the same way the teacher's TUI output redraws
// its status line, minus the Bubble Tea program loop: the build driver
// calls Advance synchronously from the executor, not from an event loop.
type Reporter struct {
	mu         sync.Mutex
	w          io.Writer
	verbose    bool
	lineOpen   bool
	labelStyle lipgloss.Style
	countStyle lipgloss.Style
	failStyle  lipgloss.Style
}

// New creates a Reporter writing to os.Stderr. When verbose is true,
// Advance is a no-op: verbose mode streams each command's own output
// instead of a progress line (SPEC_FULL.md §4.8).
func New(verbose bool) *Reporter {
	lipgloss.SetColorProfile(colorProfile())
	return &Reporter{
		w:          os.Stderr,
		verbose:    verbose,
		labelStyle: lipgloss.NewStyle().Bold(true),
		countStyle: lipgloss.NewStyle().Foreground(colorSlate),
		failStyle:  lipgloss.NewStyle().Foreground(colorRed).Bold(true),
	}
}

// Advance rewrites the progress line in place.
func (r *Reporter) Advance(completed, total int, label string) {
	if r.verbose {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	counter := r.countStyle.Render(fmt.Sprintf("[%d/%d]", completed, total))
	line := fmt.Sprintf("%s %s %s", counter, lipgloss.NewStyle().Foreground(colorGreen).Render(iconCheck), r.labelStyle.Render(label))
	r.rewrite(line)
}

// Fail prints the failure banner and the failed command's captured
// output, leaving the terminal on a fresh line.
func (r *Reporter) Fail(label string, output []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	banner := fmt.Sprintf("%s %s", r.failStyle.Render(iconCross), r.labelStyle.Render(label))
	r.rewrite(banner)
	fmt.Fprintln(r.w)
	if trimmed := strings.TrimRight(string(output), "\n"); trimmed != "" {
		fmt.Fprintln(r.w, trimmed)
	}
	r.lineOpen = false
}

// Done ends an open progress line with a newline on success.
func (r *Reporter) Done() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.lineOpen {
		fmt.Fprintln(r.w)
		r.lineOpen = false
	}
}

// rewrite emits a carriage return to the start of the line before
// writing, so the next call overwrites rather than appends, mirroring
// termenv's cursor-control writes in the teacher's TUI output adapter.
func (r *Reporter) rewrite(line string) {
	fmt.Fprint(r.w, "\r\x1b[K", line)
	r.lineOpen = true
}

var _ ports.ProgressReporter = (*Reporter)(nil)
