// Package manifest parses YAML action manifests: declarative lists of
// symlink and file-write actions that the CLI turns into executable
// actions against a build tree.
package manifest

import (
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/masonbuild/mason/pkg/action"
	"github.com/masonbuild/mason/pkg/artifact"
	"github.com/masonbuild/mason/pkg/errors"
	"github.com/masonbuild/mason/pkg/filesystem"
)

// Entry declares one action. Type selects the variant; the remaining
// fields apply per variant.
type Entry struct {
	Type       string `yaml:"type"`
	Label      string `yaml:"label,omitempty"`
	Input      string `yaml:"input,omitempty"`
	Output     string `yaml:"output"`
	Content    string `yaml:"content,omitempty"`
	Executable bool   `yaml:"executable,omitempty"`
	Progress   string `yaml:"progress,omitempty"`
}

// Manifest is a parsed action manifest.
type Manifest struct {
	Actions []Entry `yaml:"actions"`
}

// Load reads and parses a manifest file.
func Load(fsys filesystem.FS, path string) (*Manifest, error) {
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestParse, "failed to read manifest %s", path)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestParse, "failed to parse manifest %s", path)
	}
	return &m, nil
}

// Build converts the manifest entries into actions. Inputs resolve
// under a source root at execRoot; outputs under a derived root at
// execRoot/outputDir.
func (m *Manifest) Build(execRoot, outputDir string) ([]action.Action, error) {
	sourceRoot := artifact.SourceRoot(execRoot)
	derivedRoot := artifact.DerivedRoot(execRoot, filepath.Join(execRoot, outputDir))

	actions := make([]action.Action, 0, len(m.Actions))
	for i, e := range m.Actions {
		if e.Output == "" {
			return nil, errors.Newf(errors.ErrManifestInvalid, "action %d: missing output", i)
		}
		owner := action.Owner{Label: e.Label}
		output := artifact.New(derivedRoot, e.Output)

		switch e.Type {
		case "symlink":
			if e.Input == "" {
				return nil, errors.Newf(errors.ErrManifestInvalid, "action %d: symlink requires an input", i)
			}
			input := artifact.New(sourceRoot, e.Input)
			if e.Executable {
				actions = append(actions, action.SymlinkToExecutable(owner, input, output, e.Progress))
			} else {
				actions = append(actions, action.NewSymlink(owner, input, output, e.Progress))
			}
		case "write":
			actions = append(actions, action.NewFileWrite(owner, output, []byte(e.Content), e.Executable, e.Progress))
		default:
			return nil, errors.Newf(errors.ErrManifestInvalid, "action %d: unknown type %q", i, e.Type)
		}
	}
	return actions, nil
}
