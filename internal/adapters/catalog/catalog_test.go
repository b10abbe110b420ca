package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsPath(t *testing.T) {
	cases := map[string]bool{
		"":            false,
		"widgets":     false,
		"./widgets":   true,
		"/abs/path":   true,
		"name:suffix": true,
	}
	for in, want := range cases {
		if got := IsPath(in); got != want {
			t.Fatalf("IsPath(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestRegisterPathAndLookup(t *testing.T) {
	c := New()
	c.RegisterPath("/pkgs/widgets")

	if got := c.PathOf("widgets"); got != "/pkgs/widgets" {
		t.Fatalf("PathOf(widgets) = %q, want %q", got, "/pkgs/widgets")
	}
	if got := c.PathOf("unknown"); got != "" {
		t.Fatalf("PathOf(unknown) = %q, want empty", got)
	}
}

func TestRegisterPathFirstRegistrationWins(t *testing.T) {
	c := New()
	c.RegisterPath("/a/widgets")
	c.RegisterPath("/b/widgets")

	if got := c.PathOf("widgets"); got != "/a/widgets" {
		t.Fatalf("PathOf(widgets) = %q, want first registration %q", got, "/a/widgets")
	}
}

func TestScanContainerRegistersVisibleSubdirectoriesOnly(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"widgets", "gadgets", ".hidden"} {
		if err := os.MkdirAll(filepath.Join(dir, name), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New()
	if err := c.ScanContainer(dir); err != nil {
		t.Fatalf("ScanContainer: %v", err)
	}

	entries := c.Entries()
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2: %v", len(entries), entries)
	}
	if _, ok := entries["widgets"]; !ok {
		t.Fatal("expected widgets to be registered")
	}
	if _, ok := entries[".hidden"]; ok {
		t.Fatal("did not expect a hidden directory to be registered")
	}
}

func TestScanContainerMissingDirIsNotAnError(t *testing.T) {
	c := New()
	if err := c.ScanContainer(filepath.Join(t.TempDir(), "does-not-exist")); err != nil {
		t.Fatalf("ScanContainer on missing dir: %v", err)
	}
}
