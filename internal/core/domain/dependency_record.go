package domain

// ArtifactDependencyRecord is a per-package persistent mapping from an
// output-artifact path to the ordered list of input paths that produced it.
// Recorded after a successful compile; consulted before the next one to
// decide staleness (SPEC_FULL.md §4.4).
type ArtifactDependencyRecord struct {
	Artifact string
	Inputs   []string
}
