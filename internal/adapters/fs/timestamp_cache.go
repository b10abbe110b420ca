package fs

import (
	"os"
	"path/filepath"
	"time"
)

// TimestampCache implements ports.TimestampCache with a plain in-process
// map. It is intentionally not synchronized: SPEC_FULL.md §9 requires the
// cache to be orchestrator-owned and touched only by the single planning
// thread, never by stage workers.
type TimestampCache struct {
	entries map[string]int64
}

// NewTimestampCache creates an empty TimestampCache.
func NewTimestampCache() *TimestampCache {
	return &TimestampCache{entries: make(map[string]int64)}
}

func normalize(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return filepath.Clean(abs)
}

// TimestampOf returns the millisecond-granularity mtime of path, or 0 if
// absent. The result is cached for subsequent calls until invalidated.
func (c *TimestampCache) TimestampOf(path string) int64 {
	key := normalize(path)
	if ts, ok := c.entries[key]; ok {
		return ts
	}

	info, err := os.Stat(key)
	if err != nil {
		c.entries[key] = 0
		return 0
	}

	ts := info.ModTime().UnixNano() / int64(time.Millisecond)
	if ts == 0 {
		// Never return 0 for a file that genuinely exists; 0 is the
		// absent sentinel.
		ts = 1
	}
	c.entries[key] = ts
	return ts
}

// Exists reports whether path has a nonzero timestamp.
func (c *TimestampCache) Exists(path string) bool {
	return c.TimestampOf(path) != 0
}

// SetToNow records a synthetic fresh timestamp for path without touching
// the filesystem, so a just-enqueued artifact does not re-trigger a
// rebuild later in the same run.
func (c *TimestampCache) SetToNow(path string) {
	c.entries[normalize(path)] = time.Now().UnixNano() / int64(time.Millisecond)
}

// Invalidate drops any cached entry for path, forcing the next TimestampOf
// call to re-stat.
func (c *TimestampCache) Invalidate(path string) {
	delete(c.entries, normalize(path))
}
