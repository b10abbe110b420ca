package fs

import (
	"bufio"
	"os"
	"path/filepath"
	"sync"

	"github.com/AndrewAPrice/rebs/internal/core/domain"
	"github.com/AndrewAPrice/rebs/internal/core/ports"
	"go.trai.ch/zerr"
)

const dependenciesFile = "dependencies"

// DependencyOracle implements ports.DependencyOracle. Grounded on
// original_source/source/dependencies.cc: a per-package
// artifact→inputs map, lazily loaded from the package's temp directory,
// flushed only for packages whose records actually changed.
type DependencyOracle struct {
	mu      sync.Mutex
	tempDir func(domain.PackageID) string
	cache   ports.TimestampCache

	perPackage map[domain.PackageID]map[string][]string
	dirty      map[domain.PackageID]bool
}

// NewDependencyOracle creates a DependencyOracle. tempDirFor resolves a
// package ID to its scratch directory (SPEC_FULL.md §6).
func NewDependencyOracle(cache ports.TimestampCache, tempDirFor func(domain.PackageID) string) *DependencyOracle {
	return &DependencyOracle{
		tempDir:    tempDirFor,
		cache:      cache,
		perPackage: make(map[domain.PackageID]map[string][]string),
		dirty:      make(map[domain.PackageID]bool),
	}
}

func (o *DependencyOracle) recordsFor(id domain.PackageID) map[string][]string {
	if records, ok := o.perPackage[id]; ok {
		return records
	}

	records := make(map[string][]string)
	o.load(id, records)
	o.perPackage[id] = records
	return records
}

func (o *DependencyOracle) load(id domain.PackageID, into map[string][]string) {
	path := filepath.Join(o.tempDir(id), dependenciesFile)
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return
	}
	defer f.Close() //nolint:errcheck

	scanner := bufio.NewScanner(f)
	var artifact string
	var inputs []string
	flush := func() {
		if artifact != "" {
			into[artifact] = inputs
		}
		artifact = ""
		inputs = nil
	}

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			flush()
			continue
		}
		if artifact == "" {
			artifact = line
		} else {
			inputs = append(inputs, line)
		}
	}
	flush()
}

// IsStale implements the staleness rule of SPEC_FULL.md §4.4.
func (o *DependencyOracle) IsStale(packageID domain.PackageID, thresholdTS int64, artifactPath string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	artifactTS := o.cache.TimestampOf(artifactPath)
	if artifactTS == 0 || artifactTS < thresholdTS {
		return true
	}

	records := o.recordsFor(packageID)
	inputs, ok := records[artifactPath]
	if !ok {
		return true
	}

	for _, input := range inputs {
		inputTS := o.cache.TimestampOf(input)
		if inputTS == 0 || inputTS > artifactTS {
			return true
		}
	}
	return false
}

// SetInputs records inputs as having produced artifactPath, marking the
// package dirty only if the recorded list actually changed.
func (o *DependencyOracle) SetInputs(packageID domain.PackageID, artifactPath string, inputs []string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	records := o.recordsFor(packageID)
	if old, ok := records[artifactPath]; ok && stringsEqual(old, inputs) {
		return
	}

	copied := make([]string, len(inputs))
	copy(copied, inputs)
	records[artifactPath] = copied
	o.dirty[packageID] = true
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Flush persists every package whose records changed during the run.
func (o *DependencyOracle) Flush() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	var firstErr error
	for id := range o.dirty {
		if err := o.write(id); err != nil {
			if firstErr == nil {
				firstErr = err
			}
		} else {
			delete(o.dirty, id)
		}
	}
	return firstErr
}

func (o *DependencyOracle) write(id domain.PackageID) error {
	path := filepath.Join(o.tempDir(id), dependenciesFile)
	f, err := os.Create(path) //nolint:gosec
	if err != nil {
		return zerr.With(zerr.Wrap(err, "cannot write dependency cache"), "path", path)
	}
	defer f.Close() //nolint:errcheck

	w := bufio.NewWriter(f)
	for artifact, inputs := range o.perPackage[id] {
		if _, err := w.WriteString(artifact + "\n"); err != nil {
			return zerr.Wrap(err, "failed to write dependency cache")
		}
		for _, input := range inputs {
			if _, err := w.WriteString(input + "\n"); err != nil {
				return zerr.Wrap(err, "failed to write dependency cache")
			}
		}
		if _, err := w.WriteString("\n"); err != nil {
			return zerr.Wrap(err, "failed to write dependency cache")
		}
	}
	return w.Flush()
}
