package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Scratch builds file trees under a temp root for tests that need a
// real filesystem, e.g. for symlink creation.
type Scratch struct {
	t    *testing.T
	root string
}

// NewScratch creates a scratch tree rooted at t.TempDir().
func NewScratch(t *testing.T) *Scratch {
	t.Helper()
	return &Scratch{t: t, root: t.TempDir()}
}

// Root returns the scratch root directory.
func (s *Scratch) Root() string { return s.root }

// Path returns the absolute path for a scratch-relative path.
func (s *Scratch) Path(rel string) string {
	return filepath.Join(s.root, rel)
}

// Dir creates a directory (and parents) and returns its absolute path.
func (s *Scratch) Dir(rel string) string {
	s.t.Helper()
	path := s.Path(rel)
	require.NoError(s.t, os.MkdirAll(path, 0o755))
	return path
}

// File creates a file with the given content and mode, creating parent
// directories as needed, and returns its absolute path.
func (s *Scratch) File(rel, content string, mode os.FileMode) string {
	s.t.Helper()
	path := s.Path(rel)
	require.NoError(s.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(s.t, os.WriteFile(path, []byte(content), mode))
	// Umask may have stripped bits; force the requested mode.
	require.NoError(s.t, os.Chmod(path, mode))
	return path
}

// ExecutableFile creates an empty executable file.
func (s *Scratch) ExecutableFile(rel string) string {
	s.t.Helper()
	return s.File(rel, "", 0o755)
}
