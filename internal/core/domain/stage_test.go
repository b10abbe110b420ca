package domain

import "testing"

func TestStageOrderIsAscendingAndTotal(t *testing.T) {
	want := []Stage{Compile, LinkLibrary, LinkApplication, CopyAssets, RunStage}
	if len(Stages) != len(want) {
		t.Fatalf("len(Stages) = %d, want %d", len(Stages), len(want))
	}
	for i, s := range want {
		if Stages[i] != s {
			t.Fatalf("Stages[%d] = %v, want %v", i, Stages[i], s)
		}
		if int(s) != i {
			t.Fatalf("Stage %v has ordinal %d, want %d", s, s, i)
		}
	}
}

func TestStageStringNames(t *testing.T) {
	cases := map[Stage]string{
		Compile:         "Compile",
		LinkLibrary:     "LinkLibrary",
		LinkApplication: "LinkApplication",
		CopyAssets:      "CopyAssets",
		RunStage:        "Run",
		Stage(99):       "Unknown",
	}
	for stage, want := range cases {
		if got := stage.String(); got != want {
			t.Fatalf("Stage(%d).String() = %q, want %q", stage, got, want)
		}
	}
}
