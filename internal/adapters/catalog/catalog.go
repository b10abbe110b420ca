// Package catalog implements package discovery (SPEC_FULL.md §4.5),
// grounded on original_source/source/packages.cc.
package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Catalog discovers packages by directory scan and by name lookup.
// Duplicate names keep the first registration.
type Catalog struct {
	mu           sync.Mutex
	namesToPaths map[string]string
}

// New creates an empty Catalog.
func New() *Catalog {
	return &Catalog{namesToPaths: make(map[string]string)}
}

// IsPath reports whether nameOrPath looks like a filesystem path rather
// than a bare package name: it starts with "." or "/", or contains ":".
func IsPath(nameOrPath string) bool {
	if nameOrPath == "" {
		return false
	}
	return nameOrPath[0] == '.' || nameOrPath[0] == '/' || strings.Contains(nameOrPath, ":")
}

// RegisterPath registers a package at path, keyed by its leaf name. A
// duplicate name is ignored; the first registration wins.
func (c *Catalog) RegisterPath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	name := c.NameOf(path)
	if _, exists := c.namesToPaths[name]; exists {
		return
	}
	c.namesToPaths[name] = path
}

// NameOf returns the leaf component of path.
func (c *Catalog) NameOf(path string) string {
	return filepath.Base(path)
}

// PathOf returns the catalog entry for name, or "" if unknown.
func (c *Catalog) PathOf(name string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.namesToPaths[name]
}

// Entries returns every registered (name, path) pair.
func (c *Catalog) Entries() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]string, len(c.namesToPaths))
	for k, v := range c.namesToPaths {
		out[k] = v
	}
	return out
}

// ScanContainer registers every non-hidden subdirectory of dir as a
// package (SPEC_FULL.md §4.5 rule 2).
func (c *Catalog) ScanContainer(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if name == "" || name[0] == '.' {
			continue
		}
		c.RegisterPath(filepath.Join(dir, name))
	}
	return nil
}
