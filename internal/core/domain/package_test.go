package domain

import (
	"testing"
)

func TestPackageTypeString(t *testing.T) {
	if Application.String() != "application" {
		t.Fatalf("Application.String() = %q, want %q", Application.String(), "application")
	}
	if Library.String() != "library" {
		t.Fatalf("Library.String() = %q, want %q", Library.String(), "library")
	}
}

func TestPackageNameString(t *testing.T) {
	p := &Package{Name: NewInternedString("widgets")}
	if got := p.NameString(); got != "widgets" {
		t.Fatalf("NameString() = %q, want %q", got, "widgets")
	}
}
