// Package toolinghint emits the .clangd editor-integration hint file
// for the GenerateTooling action (SPEC_FULL.md §4.9), grounded on
// original_source/source/clangd.cc.
package toolinghint

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/AndrewAPrice/rebs/internal/core/domain"
	"go.trai.ch/zerr"
)

var compileExtensions = []string{".cc", ".cpp", ".cxx", ".c"}

// Emitter implements ports.ToolingHintEmitter by writing a single .clangd
// file under root listing the consolidated -I/-D flags of every package
// passed to Emit, plus any other flags (e.g. -std=) parsed out of each
// package's own compile command template.
type Emitter struct{}

// New creates an Emitter.
func New() *Emitter {
	return &Emitter{}
}

// Emit writes root/.clangd, skipping the write if the file already
// exists and is newer than every package's consolidated metadata
// timestamp (SPEC_FULL.md §4.9).
func (e *Emitter) Emit(root string, packages []*domain.Package) error {
	path := filepath.Join(root, ".clangd")

	var newest int64
	for _, pkg := range packages {
		newest = max(newest, pkg.Consolidated.MetadataTimestamp)
	}

	if info, err := os.Stat(path); err == nil {
		if info.ModTime().UnixMilli() >= newest {
			return nil
		}
	} else if !os.IsNotExist(err) {
		return zerr.With(zerr.Wrap(err, "failed to stat tooling hint file"), "path", path)
	}

	var b strings.Builder
	seenFlags := make(map[string]bool)
	seenIncludes := make(map[string]bool)
	seenDefines := make(map[string]bool)

	var includes, defines, flags []string
	for _, pkg := range packages {
		for _, inc := range pkg.Consolidated.ConsolidatedIncludes {
			if abs, err := filepath.Abs(inc); err == nil {
				inc = abs
			}
			if !seenIncludes[inc] {
				seenIncludes[inc] = true
				includes = append(includes, inc)
			}
		}
		for _, def := range pkg.Consolidated.ConsolidatedDefines {
			if !seenDefines[def] {
				seenDefines[def] = true
				defines = append(defines, def)
			}
		}
		for _, flag := range extractFlags(buildCommandFor(pkg, compileExtensions)) {
			if !seenFlags[flag] {
				seenFlags[flag] = true
				flags = append(flags, flag)
			}
		}
	}

	b.WriteString("CompileFlags:\n  Add: [\n")
	for _, inc := range includes {
		b.WriteString("    \"-I" + inc + "\",\n")
	}
	for _, def := range defines {
		b.WriteString("    -D" + def + ",\n")
	}
	for _, flag := range flags {
		b.WriteString("    " + flag + ",\n")
	}
	b.WriteString("  ]\n")

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil { //nolint:gosec // editor config, not executable
		return zerr.With(zerr.Wrap(err, "failed to write tooling hint file"), "path", path)
	}
	return nil
}

// buildCommandFor returns the first build command template registered
// under any of extensions, mirroring clangd.cc's GetBuildCommand.
func buildCommandFor(pkg *domain.Package, extensions []string) string {
	for _, ext := range extensions {
		if cmd, ok := pkg.Unconsolidated.BuildCommands[ext]; ok {
			return cmd
		}
	}
	return ""
}

// extractFlags pulls compiler flags (tokens starting with "-") out of a
// command template, skipping the leading compiler invocation and any
// unexpanded or partially-expanded ${…} placeholder tokens, mirroring
// clangd.cc's ExtractFlags.
func extractFlags(command string) []string {
	if command == "" {
		return nil
	}

	var flags []string
	for i, segment := range strings.Fields(command) {
		if i == 0 {
			continue
		}
		if strings.Contains(segment, "${") || strings.Contains(segment, "}") {
			continue
		}
		if !strings.HasPrefix(segment, "-") {
			continue
		}
		flags = append(flags, segment)
	}
	return flags
}
