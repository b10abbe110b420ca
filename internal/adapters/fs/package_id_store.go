package fs

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/AndrewAPrice/rebs/internal/core/domain"
	"github.com/AndrewAPrice/rebs/internal/core/ports"
	"go.trai.ch/zerr"
)

const packageIDFile = "package_ids"

// PackageIDStore maintains path → id with a monotonically increasing
// counter, persisted as two lines per entry (SPEC_FULL.md §6). Grounded on
// original_source/source/package_id.cc.
type PackageIDStore struct {
	mu          sync.Mutex
	tempRoot    string
	pathToID    map[string]domain.PackageID
	next        domain.PackageID
	invalidated bool
	logger      ports.Logger
}

// NewPackageIDStore loads any persisted entries under tempRoot, dropping
// entries whose path no longer exists and deleting their scratch
// directories.
func NewPackageIDStore(tempRoot string, logger ports.Logger) *PackageIDStore {
	s := &PackageIDStore{
		tempRoot: tempRoot,
		pathToID: make(map[string]domain.PackageID),
		logger:   logger,
	}
	s.load()
	return s
}

func (s *PackageIDStore) filePath() string {
	return filepath.Join(s.tempRoot, packageIDFile)
}

func (s *PackageIDStore) load() {
	f, err := os.Open(s.filePath()) //nolint:gosec // path is builder-controlled
	if err != nil {
		return
	}
	defer f.Close() //nolint:errcheck

	scanner := bufio.NewScanner(f)
	var maxID domain.PackageID
	for {
		if !scanner.Scan() {
			break
		}
		path := scanner.Text()
		if !scanner.Scan() {
			break
		}
		idStr := scanner.Text()

		id, err := strconv.Atoi(idStr)
		if err != nil {
			continue
		}

		if _, statErr := os.Stat(path); statErr == nil {
			s.pathToID[path] = domain.PackageID(id)
			if domain.PackageID(id) > maxID {
				maxID = domain.PackageID(id)
			}
			_ = os.MkdirAll(s.tempDirFor(domain.PackageID(id)), 0o755)
		} else {
			_ = os.RemoveAll(s.tempDirFor(domain.PackageID(id)))
			s.invalidated = true
		}
	}
	s.next = maxID + 1
}

func (s *PackageIDStore) tempDirFor(id domain.PackageID) string {
	return filepath.Join(s.tempRoot, strconv.Itoa(int(id)))
}

// IDOf returns the stable ID for path, assigning a new one on miss.
func (s *PackageIDStore) IDOf(path string) domain.PackageID {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.pathToID[path]; ok {
		return id
	}

	id := s.next
	s.next++
	s.pathToID[path] = id
	s.invalidated = true

	_ = os.MkdirAll(s.tempDirFor(id), 0o755)

	return id
}

// Flush persists the store iff it was mutated since load.
func (s *PackageIDStore) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.invalidated {
		return nil
	}

	f, err := os.Create(s.filePath()) //nolint:gosec
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("cannot write package ID cache", "path", s.filePath())
		}
		return zerr.With(zerr.Wrap(err, "cannot write package ID cache"), "path", s.filePath())
	}
	defer f.Close() //nolint:errcheck

	w := bufio.NewWriter(f)
	for path, id := range s.pathToID {
		if _, err := w.WriteString(path + "\n"); err != nil {
			return zerr.Wrap(err, "failed to write package ID cache")
		}
		if _, err := w.WriteString(strconv.Itoa(int(id)) + "\n"); err != nil {
			return zerr.Wrap(err, "failed to write package ID cache")
		}
	}
	return w.Flush()
}
