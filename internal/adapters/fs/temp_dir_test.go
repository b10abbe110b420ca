package fs

import (
	"path/filepath"
	"testing"

	"github.com/AndrewAPrice/rebs/internal/core/domain"
)

func TestPackageTempDir(t *testing.T) {
	got := PackageTempDir("/root/build", domain.PackageID(7))
	want := filepath.Join("/root/build", "7")
	if got != want {
		t.Fatalf("PackageTempDir = %q, want %q", got, want)
	}
}
