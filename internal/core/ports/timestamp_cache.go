package ports

//go:generate go run go.uber.org/mock/mockgen -source=timestamp_cache.go -destination=mocks/mock_timestamp_cache.go -package=mocks

// TimestampCache is a normalized-path → mtime write-through cache.
// A zero result from TimestampOf means "absent". SetToNow does not touch
// the filesystem: it records a synthetic fresh timestamp so a just-enqueued
// artifact does not re-trigger a rebuild later in the same run.
//
// Per SPEC_FULL.md §9 design note, the cache is orchestrator-owned and not
// internally synchronized: it must only be touched by the single planning
// thread, never by stage workers.
type TimestampCache interface {
	TimestampOf(path string) int64
	Exists(path string) bool
	SetToNow(path string)
	Invalidate(path string)
}
