// Package placeholder implements the ${name} substitution machine
// (SPEC_FULL.md §4.3), grounded on
// original_source/source/string_replace.cc.
package placeholder

import (
	"strings"

	"github.com/AndrewAPrice/rebs/internal/core/ports"
)

const depsFileToken = "deps file"

// Table is a process-wide mapping from token name to string. ${deps file}
// is reserved: it is pre-registered to expand to itself so it survives
// global expansion and is resolved per-worker at execution time.
type Table struct {
	values map[string]string
	logger ports.Logger
}

// New creates a Table with ${deps file} pre-registered as a fixed point.
func New(logger ports.Logger) *Table {
	t := &Table{values: make(map[string]string), logger: logger}
	t.values[depsFileToken] = "${" + depsFileToken + "}"
	return t
}

// Set registers name (without ${…}) to value. Setting the reserved
// "deps file" token overrides its fixed-point behavior, which callers
// should not do outside the per-worker resolution step.
func (t *Table) Set(name, value string) {
	t.values[name] = value
}

// Expand rewrites s by scanning for ${…} spans and replacing each with
// its registered value (or an empty string, with a diagnostic, for an
// unknown token). Expand advances past the replacement rather than
// restarting from it, so a value containing ${…} is not re-expanded. A
// literal "${" with no closing "}" terminates scanning.
func (t *Table) Expand(s string) string {
	var b strings.Builder
	pos := 0

	for {
		start := strings.Index(s[pos:], "${")
		if start == -1 {
			b.WriteString(s[pos:])
			break
		}
		start += pos

		end := strings.Index(s[start+2:], "}")
		if end == -1 {
			b.WriteString(s[pos:])
			break
		}
		end += start + 2

		b.WriteString(s[pos:start])

		name := s[start+2 : end]
		value, ok := t.values[name]
		if !ok {
			if t.logger != nil {
				t.logger.Warn("encountered unknown placeholder", "name", name)
			}
			value = ""
		}
		b.WriteString(value)

		pos = end + 1
	}

	return b.String()
}
