package action

import (
	"strconv"
	"sync"

	"github.com/masonbuild/mason/pkg/artifact"
	"github.com/masonbuild/mason/pkg/errors"
	"github.com/masonbuild/mason/pkg/execution"
	"github.com/masonbuild/mason/pkg/filesystem"
	"github.com/masonbuild/mason/pkg/keys"
)

// SymlinkAction creates a symbolic link at its output path pointing at
// its single input. Construction never touches the filesystem; all
// validation happens at execution time.
type SymlinkAction struct {
	owner                  Owner
	input                  artifact.Artifact
	output                 artifact.Artifact
	progressMessage        string
	requireExecutableInput bool

	keyOnce sync.Once
	key     string
	keyErr  error
}

// NewSymlink constructs a symlink action with no requirement on the
// input beyond being a regular file.
func NewSymlink(owner Owner, input, output artifact.Artifact, progressMessage string) *SymlinkAction {
	return &SymlinkAction{
		owner:           owner,
		input:           input,
		output:          output,
		progressMessage: progressMessage,
	}
}

// SymlinkToExecutable constructs a symlink action that additionally
// requires the input to be an executable regular file.
func SymlinkToExecutable(owner Owner, input, output artifact.Artifact, progressMessage string) *SymlinkAction {
	a := NewSymlink(owner, input, output, progressMessage)
	a.requireExecutableInput = true
	return a
}

func (a *SymlinkAction) Owner() Owner { return a.owner }

func (a *SymlinkAction) Inputs() []artifact.Artifact { return []artifact.Artifact{a.input} }

func (a *SymlinkAction) Outputs() []artifact.Artifact { return []artifact.Artifact{a.output} }

func (a *SymlinkAction) PrimaryInput() artifact.Artifact { return a.input }

func (a *SymlinkAction) PrimaryOutput() artifact.Artifact { return a.output }

func (a *SymlinkAction) ProgressMessage() string { return a.progressMessage }

func (a *SymlinkAction) Mnemonic() string { return "Symlink" }

// RequireExecutableInput reports whether execution checks the input's
// executable bit.
func (a *SymlinkAction) RequireExecutableInput() bool { return a.requireExecutableInput }

// Key fingerprints the input path, output path, and the executable
// requirement. The owner and progress message do not influence the
// action's effect, so they are not part of the key.
func (a *SymlinkAction) Key(kc *keys.Context) (string, error) {
	a.keyOnce.Do(func() {
		a.key, a.keyErr = kc.ActionKey(
			a.Mnemonic(),
			a.Inputs(),
			a.Outputs(),
			[]string{strconv.FormatBool(a.requireExecutableInput)},
		)
	})
	return a.key, a.keyErr
}

// Execute validates the input and creates (or replaces) the symlink at
// the output path. It launches no subprocess, so the result is empty.
func (a *SymlinkAction) Execute(ctx *execution.Context) (*Result, error) {
	fsys := ctx.Executor().FS()
	inputPath := a.input.Abs()

	info, err := fsys.Stat(inputPath)
	if err != nil || !info.Mode().IsRegular() {
		return nil, errors.Newf(errors.ErrActionExecute, "'%s' is not a file", a.input.Filename())
	}
	if a.requireExecutableInput && !filesystem.IsExecutable(info.Mode()) {
		return nil, errors.Newf(errors.ErrActionExecute, "'%s' is not executable", a.input.Filename())
	}

	outputPath := a.output.Abs()
	if _, err := fsys.Lstat(outputPath); err == nil {
		if err := fsys.Remove(outputPath); err != nil {
			return nil, errors.Wrapf(err, errors.ErrActionExecute,
				"failed to replace existing output '%s'", a.output.Filename())
		}
	}
	if err := fsys.Symlink(inputPath, outputPath); err != nil {
		return nil, errors.Wrapf(err, errors.ErrActionExecute,
			"failed to create symbolic link '%s'", a.output.Filename())
	}

	return EmptyResult(), nil
}
