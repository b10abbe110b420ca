package placeholder

import "testing"

func TestExpandSubstitutesRegisteredValues(t *testing.T) {
	tbl := New(nil)
	tbl.Set("temp directory", `"/tmp/rebs"`)

	got := tbl.Expand("gcc -c ${temp directory}/out.o")
	want := `gcc -c "/tmp/rebs"/out.o`
	if got != want {
		t.Fatalf("Expand() = %q, want %q", got, want)
	}
}

func TestExpandUnknownTokenBecomesEmpty(t *testing.T) {
	tbl := New(nil)
	got := tbl.Expand("x${missing}y")
	if got != "xy" {
		t.Fatalf("Expand() = %q, want %q", got, "xy")
	}
}

func TestExpandDepsFileIsAFixedPoint(t *testing.T) {
	tbl := New(nil)
	got := tbl.Expand("-MF ${deps file}")
	if got != "-MF ${deps file}" {
		t.Fatalf("Expand() = %q, want unchanged fixed point", got)
	}
}

func TestExpandDoesNotReexpandReplacementValue(t *testing.T) {
	tbl := New(nil)
	tbl.Set("a", "${b}")
	tbl.Set("b", "resolved")

	got := tbl.Expand("${a}")
	if got != "${b}" {
		t.Fatalf("Expand() = %q, want %q (no re-expansion)", got, "${b}")
	}
}

func TestExpandUnterminatedPlaceholderStopsScanning(t *testing.T) {
	tbl := New(nil)
	got := tbl.Expand("prefix ${unterminated")
	if got != "prefix ${unterminated" {
		t.Fatalf("Expand() = %q, want input echoed back unchanged", got)
	}
}
