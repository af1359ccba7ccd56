package domain

// OutcomeSource tells where the outcome of an orchestrator run came from.
type OutcomeSource string

const (
	// SourceCache means a marker for the exact fingerprint existed and the builder was not invoked.
	SourceCache OutcomeSource = "cache"
	// SourceBuild means the cache was cleaned and the build ran.
	SourceBuild OutcomeSource = "build"
)

// Outcome is reported to the caller of a successful orchestrator run.
type Outcome struct {
	// Source is either SourceCache or SourceBuild.
	Source OutcomeSource
	// Result is the untouched value returned by the builder, nil on a cache hit or a no-op build.
	Result any
	// Fingerprint is the identifier the decision was made on.
	Fingerprint Fingerprint
}

// Cached reports whether the outcome was served from the cache.
func (o Outcome) Cached() bool {
	return o.Source == SourceCache
}
