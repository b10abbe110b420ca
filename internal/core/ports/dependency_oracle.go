package ports

import "github.com/AndrewAPrice/rebs/internal/core/domain"

//go:generate go run go.uber.org/mock/mockgen -source=dependency_oracle.go -destination=mocks/mock_dependency_oracle.go -package=mocks

// DependencyOracle is the per-package artifact→inputs persistence and
// staleness decision procedure (SPEC_FULL.md §4.4).
type DependencyOracle interface {
	// IsStale reports whether artifactPath must be (re)built for the
	// given package, given threshold_ts (the package's consolidated
	// metadata timestamp).
	IsStale(packageID domain.PackageID, thresholdTS int64, artifactPath string) bool

	// SetInputs records the ordered list of input paths that produced
	// artifactPath for the given package.
	SetInputs(packageID domain.PackageID, artifactPath string, inputs []string)

	// Flush persists any package whose records changed during the run.
	Flush() error
}
