// Package testutil provides test scaffolding: a scratch directory
// builder over the real filesystem and an in-memory filesystem with
// symlink support and error injection.
package testutil
