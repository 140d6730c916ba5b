package codec_test

import (
	"testing"

	"github.com/masonbuild/mason/pkg/action"
	"github.com/masonbuild/mason/pkg/artifact"
	"github.com/masonbuild/mason/pkg/codec"
	"github.com/masonbuild/mason/pkg/errors"
	"github.com/masonbuild/mason/pkg/keys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const execRoot = "/exec"

func deps() codec.Deps {
	return codec.Deps{ExecRoot: func() string { return execRoot }}
}

func symlinkFixture(requireExecutable bool) *action.SymlinkAction {
	inputRoot := artifact.DerivedRoot(execRoot, execRoot+"/in")
	outputRoot := artifact.DerivedRoot(execRoot, execRoot+"/out")
	input := artifact.New(inputRoot, "some-file")
	output := artifact.New(outputRoot, "some-output")
	owner := action.Owner{Label: "//pkg:target", Configuration: "fastbuild"}
	if requireExecutable {
		return action.SymlinkToExecutable(owner, input, output, "progress")
	}
	return action.NewSymlink(owner, input, output, "progress")
}

func TestSymlinkRoundTrip(t *testing.T) {
	original := symlinkFixture(true)

	data, err := codec.Encode(original)
	require.NoError(t, err)

	decoded, err := codec.Decode(data, deps())
	require.NoError(t, err)

	restored, ok := decoded.(*action.SymlinkAction)
	require.True(t, ok)

	assert.Equal(t, original.PrimaryInput().Filename(), restored.PrimaryInput().Filename())
	assert.Equal(t, original.PrimaryOutput().Filename(), restored.PrimaryOutput().Filename())
	assert.Equal(t, original.Owner(), restored.Owner())
	assert.Equal(t, original.ProgressMessage(), restored.ProgressMessage())
	assert.Equal(t, original.RequireExecutableInput(), restored.RequireExecutableInput())

	// Full identity, not just names: roots rebind to the injected exec
	// root, so absolute paths match too.
	assert.Equal(t, original.PrimaryInput(), restored.PrimaryInput())
	assert.Equal(t, original.PrimaryOutput(), restored.PrimaryOutput())
}

func TestRoundTripPreservesKey(t *testing.T) {
	kc := keys.New()
	original := symlinkFixture(true)

	originalKey, err := original.Key(kc)
	require.NoError(t, err)

	data, err := codec.Encode(original)
	require.NoError(t, err)
	decoded, err := codec.Decode(data, deps())
	require.NoError(t, err)

	decodedKey, err := decoded.Key(kc)
	require.NoError(t, err)
	assert.Equal(t, originalKey, decodedKey)
}

func TestRoundTripRebindsExecRoot(t *testing.T) {
	original := symlinkFixture(false)

	data, err := codec.Encode(original)
	require.NoError(t, err)

	other := codec.Deps{ExecRoot: func() string { return "/elsewhere" }}
	decoded, err := codec.Decode(data, other)
	require.NoError(t, err)

	assert.Equal(t, "/elsewhere/in/some-file", decoded.PrimaryInput().Abs())
	assert.Equal(t, "/elsewhere/out/some-output", decoded.PrimaryOutput().Abs())
}

func TestFileWriteRoundTrip(t *testing.T) {
	outputRoot := artifact.DerivedRoot(execRoot, execRoot+"/out")
	output := artifact.New(outputRoot, "generated.sh")
	original := action.NewFileWrite(
		action.Owner{Label: "//gen"}, output, []byte("#!/bin/sh\n"), true, "generating")

	data, err := codec.Encode(original)
	require.NoError(t, err)
	decoded, err := codec.Decode(data, deps())
	require.NoError(t, err)

	restored, ok := decoded.(*action.FileWriteAction)
	require.True(t, ok)
	assert.Equal(t, original.Owner(), restored.Owner())
	assert.Equal(t, original.Content(), restored.Content())
	assert.Equal(t, original.Executable(), restored.Executable())
	assert.Equal(t, original.PrimaryOutput(), restored.PrimaryOutput())
}

func TestSourceRootRoundTrip(t *testing.T) {
	input := artifact.New(artifact.SourceRoot("/workspace/src"), "tool.sh")
	outputRoot := artifact.DerivedRoot(execRoot, execRoot+"/out")
	output := artifact.New(outputRoot, "tool")
	original := action.NewSymlink(action.NullOwner, input, output, "p")

	data, err := codec.Encode(original)
	require.NoError(t, err)
	decoded, err := codec.Decode(data, deps())
	require.NoError(t, err)

	// Source roots are pre-existing trees; they keep their path.
	assert.Equal(t, "/workspace/src/tool.sh", decoded.PrimaryInput().Abs())
}

func TestDecodeMissingDependency(t *testing.T) {
	data, err := codec.Encode(symlinkFixture(true))
	require.NoError(t, err)

	_, err = codec.Decode(data, codec.Deps{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSerializationDecode))
	assert.Contains(t, err.Error(), "missing injected dependency")
}

func TestDecodeTruncated(t *testing.T) {
	data, err := codec.Encode(symlinkFixture(true))
	require.NoError(t, err)

	for _, cut := range []int{0, 3, 9, len(data) - 1} {
		_, err := codec.Decode(data[:cut], deps())
		require.Error(t, err, "cut at %d", cut)
		assert.True(t, errors.IsErrorCode(err, errors.ErrSerializationDecode), "cut at %d", cut)
	}
}

func TestDecodeBadMagic(t *testing.T) {
	data, err := codec.Encode(symlinkFixture(true))
	require.NoError(t, err)
	data[0] = 'X'

	_, err = codec.Decode(data, deps())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad magic")
}

func TestDecodeBadVersion(t *testing.T) {
	data, err := codec.Encode(symlinkFixture(true))
	require.NoError(t, err)
	data[4] = 99

	_, err = codec.Decode(data, deps())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported schema version")
}

func TestDecodeUnknownTag(t *testing.T) {
	data, err := codec.Encode(symlinkFixture(true))
	require.NoError(t, err)
	data[5] = 200

	_, err = codec.Decode(data, deps())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized variant tag")
}

func TestDecodeMalformedPayload(t *testing.T) {
	data, err := codec.Encode(symlinkFixture(true))
	require.NoError(t, err)
	// Corrupt the JSON body while keeping the length consistent.
	data[len(data)-1] = 0x00

	_, err = codec.Decode(data, deps())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSerializationDecode))
}
