// Package executor supplies the execution root and filesystem that
// actions resolve paths against, plus a batch runner that drives a
// slice of actions with logging and dry-run support.
package executor
