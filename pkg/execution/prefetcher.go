package execution

import (
	"context"

	"github.com/masonbuild/mason/pkg/artifact"
)

// Prefetcher stages input artifacts before an action reads them.
// Actions that only stat their inputs, like symlink creation, work
// correctly with the no-op prefetcher.
type Prefetcher interface {
	Prefetch(ctx context.Context, inputs []artifact.Artifact) error
}

// None is a prefetcher that does nothing.
var None Prefetcher = nonePrefetcher{}

type nonePrefetcher struct{}

func (nonePrefetcher) Prefetch(context.Context, []artifact.Artifact) error {
	return nil
}
