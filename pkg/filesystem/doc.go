// Package filesystem defines the filesystem abstraction used to resolve
// and mutate artifact paths, with implementations backed by the OS and
// by afero for in-memory use.
package filesystem
