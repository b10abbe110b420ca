package domain

import "testing"

func TestActionStringNames(t *testing.T) {
	cases := map[Action]string{
		Run:              "run",
		Build:            "build",
		Clean:            "clean",
		DeepClean:        "deep-clean",
		List:             "list",
		Test:             "test",
		GenerateTooling:  "generate-tooling-hint",
		UpdateThirdParty: "update",
		Action(99):       "unknown",
	}
	for action, want := range cases {
		if got := action.String(); got != want {
			t.Fatalf("Action(%d).String() = %q, want %q", action, got, want)
		}
	}
}

func TestOptimizationLevelStringNames(t *testing.T) {
	cases := map[OptimizationLevel]string{
		Fast:                  "fast",
		Debug:                 "debug",
		Optimized:             "optimized",
		OptimizationLevel(99): "fast",
	}
	for level, want := range cases {
		if got := level.String(); got != want {
			t.Fatalf("OptimizationLevel(%d).String() = %q, want %q", level, got, want)
		}
	}
}

func TestOptimizationLevelZeroValueIsFast(t *testing.T) {
	var level OptimizationLevel
	if level != Fast {
		t.Fatalf("zero value OptimizationLevel = %v, want Fast", level)
	}
}

func TestActionZeroValueIsRun(t *testing.T) {
	var action Action
	if action != Run {
		t.Fatalf("zero value Action = %v, want Run", action)
	}
}
