package codec

import (
	"encoding/json"
	"path/filepath"

	"github.com/masonbuild/mason/pkg/action"
	"github.com/masonbuild/mason/pkg/artifact"
	"github.com/masonbuild/mason/pkg/errors"
)

// Variant tags. Values are part of the wire contract and must never be
// reused for a different variant.
const (
	TagSymlink   byte = 1
	TagFileWrite byte = 2
)

type ownerPayload struct {
	Label         string `json:"label,omitempty"`
	Configuration string `json:"configuration,omitempty"`
}

// rootPayload stores a derived root's path relative to the exec root so
// the encoded form stays portable across processes with different exec
// roots. Source roots are pre-existing trees and keep their path
// verbatim.
type rootPayload struct {
	Kind string `json:"kind"`
	Path string `json:"path"`
}

type artifactPayload struct {
	Root rootPayload `json:"root"`
	Rel  string      `json:"rel"`
}

func encodeArtifact(a artifact.Artifact) artifactPayload {
	root := a.Root()
	rp := rootPayload{Kind: root.Kind().String(), Path: root.ExecPath()}
	return artifactPayload{Root: rp, Rel: a.RootRelative()}
}

func decodeArtifact(p artifactPayload, deps Deps) (artifact.Artifact, error) {
	var root artifact.Root
	switch p.Root.Kind {
	case "source":
		root = artifact.SourceRoot(p.Root.Path)
	case "derived":
		execRoot := deps.ExecRoot()
		root = artifact.DerivedRoot(execRoot, filepath.Join(execRoot, p.Root.Path))
	default:
		return artifact.Artifact{}, errors.Newf(errors.ErrSerializationDecode,
			"unknown root kind %q", p.Root.Kind)
	}
	return artifact.New(root, p.Rel), nil
}

func encodeOwner(o action.Owner) ownerPayload {
	return ownerPayload{Label: o.Label, Configuration: o.Configuration}
}

func decodeOwner(p ownerPayload) action.Owner {
	return action.Owner{Label: p.Label, Configuration: p.Configuration}
}

type symlinkPayload struct {
	Owner             ownerPayload    `json:"owner"`
	Input             artifactPayload `json:"input"`
	Output            artifactPayload `json:"output"`
	ProgressMessage   string          `json:"progress_message"`
	RequireExecutable bool            `json:"require_executable"`
}

type fileWritePayload struct {
	Owner           ownerPayload    `json:"owner"`
	Output          artifactPayload `json:"output"`
	ProgressMessage string          `json:"progress_message"`
	Content         []byte          `json:"content"`
	Executable      bool            `json:"executable"`
}

func init() {
	Register(Variant{
		Tag:      TagSymlink,
		Mnemonic: "Symlink",
		Encode:   encodeSymlink,
		Decode:   decodeSymlink,
	})
	Register(Variant{
		Tag:      TagFileWrite,
		Mnemonic: "FileWrite",
		Encode:   encodeFileWrite,
		Decode:   decodeFileWrite,
	})
}

func encodeSymlink(a action.Action) ([]byte, error) {
	sa, ok := a.(*action.SymlinkAction)
	if !ok {
		return nil, errors.Newf(errors.ErrSerializationEncode, "not a symlink action: %T", a)
	}
	return json.Marshal(symlinkPayload{
		Owner:             encodeOwner(sa.Owner()),
		Input:             encodeArtifact(sa.PrimaryInput()),
		Output:            encodeArtifact(sa.PrimaryOutput()),
		ProgressMessage:   sa.ProgressMessage(),
		RequireExecutable: sa.RequireExecutableInput(),
	})
}

func decodeSymlink(payload []byte, deps Deps) (action.Action, error) {
	var p symlinkPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, errors.Wrap(err, errors.ErrSerializationDecode, "malformed symlink payload")
	}
	input, err := decodeArtifact(p.Input, deps)
	if err != nil {
		return nil, err
	}
	output, err := decodeArtifact(p.Output, deps)
	if err != nil {
		return nil, err
	}
	if p.RequireExecutable {
		return action.SymlinkToExecutable(decodeOwner(p.Owner), input, output, p.ProgressMessage), nil
	}
	return action.NewSymlink(decodeOwner(p.Owner), input, output, p.ProgressMessage), nil
}

func encodeFileWrite(a action.Action) ([]byte, error) {
	fa, ok := a.(*action.FileWriteAction)
	if !ok {
		return nil, errors.Newf(errors.ErrSerializationEncode, "not a file write action: %T", a)
	}
	return json.Marshal(fileWritePayload{
		Owner:           encodeOwner(fa.Owner()),
		Output:          encodeArtifact(fa.PrimaryOutput()),
		ProgressMessage: fa.ProgressMessage(),
		Content:         fa.Content(),
		Executable:      fa.Executable(),
	})
}

func decodeFileWrite(payload []byte, deps Deps) (action.Action, error) {
	var p fileWritePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, errors.Wrap(err, errors.ErrSerializationDecode, "malformed file write payload")
	}
	output, err := decodeArtifact(p.Output, deps)
	if err != nil {
		return nil, err
	}
	return action.NewFileWrite(decodeOwner(p.Owner), output, p.Content, p.Executable, p.ProgressMessage), nil
}
