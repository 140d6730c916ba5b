package action

import "time"

// SpawnResult describes one subprocess launched while executing an
// action.
type SpawnResult struct {
	ExitCode int
	Runner   string
	WallTime time.Duration
}

// Result is the outcome of a successful execution: zero or more spawn
// results. Pure filesystem-metadata actions return an empty result.
type Result struct {
	spawnResults []SpawnResult
}

// EmptyResult returns a result with no spawn outcomes.
func EmptyResult() *Result {
	return &Result{}
}

// NewResult returns a result aggregating the given spawn outcomes.
func NewResult(spawns []SpawnResult) *Result {
	return &Result{spawnResults: spawns}
}

// SpawnResults returns the subprocess outcomes, possibly empty.
func (r *Result) SpawnResults() []SpawnResult {
	return r.spawnResults
}
