// Package artifact models file locations inside a build tree. An
// Artifact pairs a Root (a classified subtree) with a root-relative
// path; both are immutable value types compared by equality.
package artifact

import (
	"path/filepath"
	"strings"
)

// Kind classifies a root as a pre-existing source tree or a writable
// derived output tree.
type Kind int

const (
	// Source roots hold pre-existing, read-only inputs.
	Source Kind = iota
	// Derived roots hold build outputs anchored under an exec root.
	Derived
)

func (k Kind) String() string {
	if k == Source {
		return "source"
	}
	return "derived"
}

// Root classifies a filesystem subtree. The zero value is not a valid
// root; use SourceRoot or DerivedRoot.
type Root struct {
	kind     Kind
	execRoot string
	base     string
}

// SourceRoot returns a root for a pre-existing, read-only tree.
func SourceRoot(base string) Root {
	return Root{kind: Source, base: filepath.Clean(base)}
}

// DerivedRoot returns a writable output root anchored under execRoot.
// The base must sit at or below execRoot.
func DerivedRoot(execRoot, base string) Root {
	return Root{
		kind:     Derived,
		execRoot: filepath.Clean(execRoot),
		base:     filepath.Clean(base),
	}
}

// Kind reports whether the root is a source or derived root.
func (r Root) Kind() Kind { return r.kind }

// IsDerived reports whether artifacts under this root are build outputs.
func (r Root) IsDerived() bool { return r.kind == Derived }

// Path returns the absolute base path of the root.
func (r Root) Path() string { return r.base }

// ExecRoot returns the exec root a derived root is anchored under, or
// the empty string for source roots.
func (r Root) ExecRoot() string { return r.execRoot }

// ExecPath returns the root's base path relative to its exec root for
// derived roots, and the base path itself for source roots. This is the
// portable form used by fingerprints and serialization.
func (r Root) ExecPath() string {
	if r.kind != Derived || r.execRoot == "" {
		return r.base
	}
	rel, err := filepath.Rel(r.execRoot, r.base)
	if err != nil {
		return r.base
	}
	return rel
}

// Artifact identifies a file location as a root plus a root-relative
// path. Immutable once constructed; equal iff root and relative path
// are equal.
type Artifact struct {
	root Root
	rel  string
}

// New constructs an artifact from a root and a root-relative path.
func New(root Root, rel string) Artifact {
	return Artifact{root: root, rel: filepath.Clean(rel)}
}

// FromPath constructs an artifact from a root and a path at or below
// the root's base. Paths outside the root keep their absolute form as
// the relative segment, which callers should treat as a construction
// bug.
func FromPath(root Root, path string) Artifact {
	path = filepath.Clean(path)
	rel, err := filepath.Rel(root.base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return Artifact{root: root, rel: path}
	}
	return Artifact{root: root, rel: rel}
}

// Root returns the artifact's root.
func (a Artifact) Root() Root { return a.root }

// RootRelative returns the path relative to the artifact's root.
func (a Artifact) RootRelative() string { return a.rel }

// Abs returns the absolute filesystem path of the artifact.
func (a Artifact) Abs() string {
	return filepath.Join(a.root.base, a.rel)
}

// ExecPath returns the portable path used for fingerprints: the root's
// exec path joined with the root-relative path.
func (a Artifact) ExecPath() string {
	return filepath.Join(a.root.ExecPath(), a.rel)
}

// Filename returns the final path segment, used in user-facing
// diagnostics.
func (a Artifact) Filename() string {
	return filepath.Base(a.rel)
}

func (a Artifact) String() string {
	return a.root.kind.String() + ":" + a.Abs()
}
