package domain

import "testing"

func TestNewInternedStringRoundTrips(t *testing.T) {
	is := NewInternedString("foo/bar")
	if got := is.String(); got != "foo/bar" {
		t.Fatalf("String() = %q, want %q", got, "foo/bar")
	}
}

func TestInternedStringZeroValue(t *testing.T) {
	var is InternedString
	if got := is.String(); got != "" {
		t.Fatalf("zero value String() = %q, want empty", got)
	}
}

func TestInternedStringEqualStringsShareHandle(t *testing.T) {
	a := NewInternedString("same")
	b := NewInternedString("same")
	if a.Value() != b.Value() {
		t.Fatal("expected interning to produce identical handles for equal strings")
	}
}

func TestInternedStringTextRoundTrip(t *testing.T) {
	is := NewInternedString("round-trip")
	text, err := is.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}

	var out InternedString
	if err := out.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if out.String() != "round-trip" {
		t.Fatalf("round trip = %q, want %q", out.String(), "round-trip")
	}
}
