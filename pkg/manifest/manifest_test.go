package manifest_test

import (
	"testing"

	"github.com/masonbuild/mason/pkg/action"
	"github.com/masonbuild/mason/pkg/errors"
	"github.com/masonbuild/mason/pkg/manifest"
	"github.com/masonbuild/mason/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
actions:
  - type: symlink
    label: "//tools:fmt"
    input: tools/fmt.sh
    output: bin/fmt
    executable: true
    progress: "Symlinking fmt"
  - type: write
    output: bin/stamp
    content: "v1"
`

func TestLoadAndBuild(t *testing.T) {
	scratch := testutil.NewScratch(t)
	path := scratch.File("actions.yaml", sample, 0o644)

	m, err := manifest.Load(nil, path)
	require.NoError(t, err)
	require.Len(t, m.Actions, 2)

	actions, err := m.Build("/exec", "out")
	require.NoError(t, err)
	require.Len(t, actions, 2)

	link, ok := actions[0].(*action.SymlinkAction)
	require.True(t, ok)
	assert.Equal(t, "//tools:fmt", link.Owner().Label)
	assert.Equal(t, "/exec/tools/fmt.sh", link.PrimaryInput().Abs())
	assert.Equal(t, "/exec/out/bin/fmt", link.PrimaryOutput().Abs())
	assert.True(t, link.RequireExecutableInput())
	assert.Equal(t, "Symlinking fmt", link.ProgressMessage())

	write, ok := actions[1].(*action.FileWriteAction)
	require.True(t, ok)
	assert.Equal(t, "v1", string(write.Content()))
	assert.False(t, write.Executable())
}

func TestLoadMissingFile(t *testing.T) {
	scratch := testutil.NewScratch(t)
	_, err := manifest.Load(nil, scratch.Path("absent.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrManifestParse))
}

func TestLoadMalformedYAML(t *testing.T) {
	scratch := testutil.NewScratch(t)
	path := scratch.File("bad.yaml", "actions: [:::", 0o644)

	_, err := manifest.Load(nil, path)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrManifestParse))
}

func TestBuildValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"unknown type", "actions:\n  - type: teleport\n    output: x\n", "unknown type"},
		{"missing output", "actions:\n  - type: write\n", "missing output"},
		{"symlink without input", "actions:\n  - type: symlink\n    output: x\n", "requires an input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scratch := testutil.NewScratch(t)
			path := scratch.File("m.yaml", tt.yaml, 0o644)

			m, err := manifest.Load(nil, path)
			require.NoError(t, err)

			_, err = m.Build("/exec", "out")
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrManifestInvalid))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
