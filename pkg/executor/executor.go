package executor

import (
	"github.com/masonbuild/mason/pkg/filesystem"
)

// Local is an executor over a real or injected filesystem anchored at
// an exec root.
type Local struct {
	execRoot string
	fs       filesystem.FS
}

// NewLocal creates a local executor. A nil fs selects the OS
// filesystem.
func NewLocal(execRoot string, fs filesystem.FS) *Local {
	if fs == nil {
		fs = filesystem.NewOS()
	}
	return &Local{execRoot: execRoot, fs: fs}
}

// ExecRoot returns the execution root path.
func (l *Local) ExecRoot() string { return l.execRoot }

// FS returns the filesystem implementation.
func (l *Local) FS() filesystem.FS { return l.fs }
