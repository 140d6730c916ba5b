package action_test

import (
	"os"
	"testing"

	"github.com/masonbuild/mason/pkg/action"
	"github.com/masonbuild/mason/pkg/artifact"
	"github.com/masonbuild/mason/pkg/keys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWriteExecute(t *testing.T) {
	env := newScratchEnv(t)
	output := artifact.New(env.outputRoot, "generated.sh")

	a := action.NewFileWrite(action.NullOwner, output, []byte("#!/bin/sh\n"), true, "writing script")
	result, err := a.Execute(env.context(t))
	require.NoError(t, err)
	assert.Empty(t, result.SpawnResults())

	path := env.scratch.Path("out/generated.sh")
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\n", string(content))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode().Perm()&0o111)
}

func TestFileWriteNonExecutable(t *testing.T) {
	env := newScratchEnv(t)
	output := artifact.New(env.outputRoot, "notes.txt")

	a := action.NewFileWrite(action.NullOwner, output, []byte("hello"), false, "writing notes")
	_, err := a.Execute(env.context(t))
	require.NoError(t, err)

	info, err := os.Stat(env.scratch.Path("out/notes.txt"))
	require.NoError(t, err)
	assert.Zero(t, info.Mode().Perm()&0o111)
}

func TestFileWriteReplacesExisting(t *testing.T) {
	env := newScratchEnv(t)
	env.scratch.File("out/notes.txt", "old", 0o644)
	output := artifact.New(env.outputRoot, "notes.txt")

	a := action.NewFileWrite(action.NullOwner, output, []byte("new"), false, "writing notes")
	_, err := a.Execute(env.context(t))
	require.NoError(t, err)

	content, err := os.ReadFile(env.scratch.Path("out/notes.txt"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(content))
}

func TestFileWriteDeclaredSets(t *testing.T) {
	outputRoot := artifact.DerivedRoot("/", "/out")
	output := artifact.New(outputRoot, "stamp")

	a := action.NewFileWrite(action.NullOwner, output, []byte("v1"), false, "stamping")
	assert.Empty(t, a.Inputs())
	assert.Equal(t, []artifact.Artifact{output}, a.Outputs())
	assert.Equal(t, output, a.PrimaryOutput())
	assert.Equal(t, "FileWrite", a.Mnemonic())
}

func TestFileWriteKeyContentSensitive(t *testing.T) {
	outputRoot := artifact.DerivedRoot("/", "/out")
	output := artifact.New(outputRoot, "stamp")
	kc := keys.New()

	a := action.NewFileWrite(action.NullOwner, output, []byte("v1"), false, "p")
	b := action.NewFileWrite(action.NullOwner, output, []byte("v2"), false, "p")
	c := action.NewFileWrite(action.NullOwner, output, []byte("v1"), true, "p")

	ka, err := a.Key(kc)
	require.NoError(t, err)
	kb, err := b.Key(kc)
	require.NoError(t, err)
	kc2, err := c.Key(kc)
	require.NoError(t, err)

	assert.NotEqual(t, ka, kb, "content must be part of the key")
	assert.NotEqual(t, ka, kc2, "executable flag must be part of the key")
}
