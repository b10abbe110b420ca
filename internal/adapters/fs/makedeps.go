package fs

import "os"

// ParseMakeDepsFile reads a Make-style dependency file and returns the
// listed input paths, per SPEC_FULL.md §4.4. Grounded on
// original_source/source/dependencies.cc's ReadDependenciesFromFile:
// everything up to and including the first ':' is skipped; the remainder
// is split on space/tab/newline/CR/backslash, except that a backslash
// immediately followed by a space denotes a literal space inside a path.
func ParseMakeDepsFile(path string) ([]string, error) {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return nil, err
	}
	return ParseMakeDeps(string(data)), nil
}

// ParseMakeDeps parses the contents of a Make-style dependency file.
func ParseMakeDeps(contents string) []string {
	var deps []string

	seenColon := false
	start := 0
	length := 0

	isEscapedSpace := func(i int) bool {
		return i < len(contents) && contents[i] == '\\' && i+1 < len(contents) && contents[i+1] == ' '
	}

	maybeAdd := func() {
		if length <= 0 {
			return
		}
		buf := make([]byte, 0, length)
		nonSpace := false
		idx := start
		for i := 0; i < length; i++ {
			if isEscapedSpace(idx) {
				buf = append(buf, ' ')
				idx += 2
				continue
			}
			buf = append(buf, contents[idx])
			nonSpace = true
			idx++
		}
		if nonSpace {
			deps = append(deps, string(buf))
		}
	}

	i := 0
	for i < len(contents) {
		c := contents[i]

		if !seenColon {
			if c == ':' {
				seenColon = true
				start = i + 1
			}
			i++
			continue
		}

		if isEscapedSpace(i) {
			length++
			i += 2
			continue
		}

		if c == ' ' || c == '\n' || c == '\r' || c == '\t' || c == '\\' {
			maybeAdd()
			start = i + 1
			length = 0
			i++
			continue
		}

		length++
		i++
	}
	maybeAdd()

	return deps
}
