package filesystem

import (
	"io/fs"
)

// FS is the filesystem interface required for action execution
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Chmod(name string, mode fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	// Other operations
	Remove(name string) error
	RemoveAll(path string) error
	Rename(oldpath, newpath string) error

	// Lstat reports on the link itself rather than its target.
	// Implementations without symlink support may fall back to Stat.
	Lstat(name string) (fs.FileInfo, error)
}

// IsExecutable reports whether the mode carries any execute permission
// bit. On non-POSIX targets the underlying FS implementation is expected
// to synthesize an equivalent flag in the mode it reports.
func IsExecutable(mode fs.FileMode) bool {
	return mode.Perm()&0o111 != 0
}
