package fs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCopyCreatesDestinationDirectoryAndContent(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	if err := os.WriteFile(src, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	dst := filepath.Join(dir, "nested", "dst.txt")
	c := NewCopier()
	if err := c.Copy(src, dst); err != nil {
		t.Fatalf("Copy: %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "hello" {
		t.Fatalf("content = %q, want %q", got, "hello")
	}
}

func TestCopyMissingSourceFails(t *testing.T) {
	dir := t.TempDir()
	c := NewCopier()
	err := c.Copy(filepath.Join(dir, "missing.txt"), filepath.Join(dir, "dst.txt"))
	if err == nil {
		t.Fatal("expected error copying a missing source file")
	}
}
