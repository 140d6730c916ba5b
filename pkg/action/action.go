package action

import (
	"github.com/masonbuild/mason/pkg/artifact"
	"github.com/masonbuild/mason/pkg/execution"
	"github.com/masonbuild/mason/pkg/keys"
)

// Action is a unit of build work. Implementations declare their inputs
// and outputs at construction and never change them afterwards; the
// declared sets define the action's identity in the dependency graph.
type Action interface {
	// Owner returns the identity of the target that created the action.
	Owner() Owner

	// Inputs returns the declared input artifacts in order.
	Inputs() []artifact.Artifact

	// Outputs returns the declared output artifacts in order.
	Outputs() []artifact.Artifact

	// PrimaryInput returns the first input, or the zero artifact when
	// the action has none.
	PrimaryInput() artifact.Artifact

	// PrimaryOutput returns the first output.
	PrimaryOutput() artifact.Artifact

	// ProgressMessage returns the human-readable message shown while
	// the action runs.
	ProgressMessage() string

	// Mnemonic returns the short variant name used in keys and logs.
	Mnemonic() string

	// Key returns the action's stable fingerprint. Every field that
	// influences the action's behavior must contribute to it.
	Key(kc *keys.Context) (string, error)

	// Execute performs the action's effect. It validates preconditions
	// against the real filesystem, mutates only the declared output
	// paths, and returns a result or a typed error. Blocking and
	// synchronous; never retried internally.
	Execute(ctx *execution.Context) (*Result, error)
}
