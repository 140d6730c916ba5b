package execution

import (
	"io"
	"os"
)

// OutErr bundles the output and error stream sinks an action may write
// user-visible text to during execution.
type OutErr struct {
	Out io.Writer
	Err io.Writer
}

// Stdio returns an OutErr wired to the process streams.
func Stdio() OutErr {
	return OutErr{Out: os.Stdout, Err: os.Stderr}
}

// Discard returns an OutErr that drops everything written to it.
func Discard() OutErr {
	return OutErr{Out: io.Discard, Err: io.Discard}
}
