package version

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/masonbuild/mason/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/masonbuild/mason/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/masonbuild/mason/internal/version.Date={{.Date}}
)
