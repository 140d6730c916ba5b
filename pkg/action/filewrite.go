package action

import (
	"io/fs"
	"strconv"
	"sync"

	"github.com/masonbuild/mason/pkg/artifact"
	"github.com/masonbuild/mason/pkg/errors"
	"github.com/masonbuild/mason/pkg/execution"
	"github.com/masonbuild/mason/pkg/keys"
)

// FileWriteAction writes fixed content to its single output. It has no
// inputs; the content is part of the action itself and therefore part
// of its key.
type FileWriteAction struct {
	owner           Owner
	output          artifact.Artifact
	progressMessage string
	content         []byte
	executable      bool

	keyOnce sync.Once
	key     string
	keyErr  error
}

// NewFileWrite constructs a file write action. When executable is set
// the output is created with execute permission.
func NewFileWrite(owner Owner, output artifact.Artifact, content []byte, executable bool, progressMessage string) *FileWriteAction {
	return &FileWriteAction{
		owner:           owner,
		output:          output,
		progressMessage: progressMessage,
		content:         content,
		executable:      executable,
	}
}

func (a *FileWriteAction) Owner() Owner { return a.owner }

func (a *FileWriteAction) Inputs() []artifact.Artifact { return nil }

func (a *FileWriteAction) Outputs() []artifact.Artifact { return []artifact.Artifact{a.output} }

func (a *FileWriteAction) PrimaryInput() artifact.Artifact { return artifact.Artifact{} }

func (a *FileWriteAction) PrimaryOutput() artifact.Artifact { return a.output }

func (a *FileWriteAction) ProgressMessage() string { return a.progressMessage }

func (a *FileWriteAction) Mnemonic() string { return "FileWrite" }

// Content returns the bytes the action writes.
func (a *FileWriteAction) Content() []byte { return a.content }

// Executable reports whether the output is created with execute
// permission.
func (a *FileWriteAction) Executable() bool { return a.executable }

// Key fingerprints the output path, the content digest, and the
// executable flag.
func (a *FileWriteAction) Key(kc *keys.Context) (string, error) {
	a.keyOnce.Do(func() {
		a.key, a.keyErr = kc.ActionKey(
			a.Mnemonic(),
			nil,
			a.Outputs(),
			[]string{kc.ContentDigest(a.content), strconv.FormatBool(a.executable)},
		)
	})
	return a.key, a.keyErr
}

// Execute writes the content to the output path, replacing any previous
// file. No subprocess is launched.
func (a *FileWriteAction) Execute(ctx *execution.Context) (*Result, error) {
	fsys := ctx.Executor().FS()
	outputPath := a.output.Abs()

	var perm fs.FileMode = 0o644
	if a.executable {
		perm = 0o755
	}
	if err := fsys.WriteFile(outputPath, a.content, perm); err != nil {
		return nil, errors.Wrapf(err, errors.ErrActionExecute,
			"failed to write '%s'", a.output.Filename())
	}
	// WriteFile does not update the mode of a pre-existing file.
	if err := fsys.Chmod(outputPath, perm); err != nil {
		return nil, errors.Wrapf(err, errors.ErrActionExecute,
			"failed to set mode on '%s'", a.output.Filename())
	}

	return EmptyResult(), nil
}
