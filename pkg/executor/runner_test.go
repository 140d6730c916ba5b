package executor_test

import (
	"os"
	"testing"

	"github.com/masonbuild/mason/pkg/action"
	"github.com/masonbuild/mason/pkg/artifact"
	"github.com/masonbuild/mason/pkg/execution"
	"github.com/masonbuild/mason/pkg/executor"
	"github.com/masonbuild/mason/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalDefaults(t *testing.T) {
	local := executor.NewLocal("/exec", nil)
	assert.Equal(t, "/exec", local.ExecRoot())
	assert.NotNil(t, local.FS())
}

func TestRunExecutesActions(t *testing.T) {
	scratch := testutil.NewScratch(t)
	scratch.Dir("out")
	inputFile := scratch.File("in/some-file", "", 0o755)

	execRoot := scratch.Root()
	inputRoot := artifact.DerivedRoot(execRoot, scratch.Path("in"))
	outputRoot := artifact.DerivedRoot(execRoot, scratch.Path("out"))

	a := action.SymlinkToExecutable(
		action.NullOwner,
		artifact.New(inputRoot, "some-file"),
		artifact.New(outputRoot, "some-output"),
		"linking",
	)

	runner := executor.New(executor.Options{
		Executor: executor.NewLocal(execRoot, nil),
		OutErr:   execution.Discard(),
	})
	results := runner.Run([]action.Action{a})

	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	assert.False(t, results[0].Skipped)
	assert.Empty(t, results[0].Result.SpawnResults())

	target, err := os.Readlink(scratch.Path("out/some-output"))
	require.NoError(t, err)
	assert.Equal(t, inputFile, target)
}

func TestRunDryRunSkips(t *testing.T) {
	scratch := testutil.NewScratch(t)
	scratch.Dir("out")
	scratch.File("in/some-file", "", 0o755)

	execRoot := scratch.Root()
	inputRoot := artifact.DerivedRoot(execRoot, scratch.Path("in"))
	outputRoot := artifact.DerivedRoot(execRoot, scratch.Path("out"))

	a := action.SymlinkToExecutable(
		action.NullOwner,
		artifact.New(inputRoot, "some-file"),
		artifact.New(outputRoot, "some-output"),
		"linking",
	)

	runner := executor.New(executor.Options{
		Executor: executor.NewLocal(execRoot, nil),
		OutErr:   execution.Discard(),
		DryRun:   true,
	})
	results := runner.Run([]action.Action{a})

	require.Len(t, results, 1)
	assert.True(t, results[0].Skipped)
	assert.NoError(t, results[0].Err)

	_, err := os.Lstat(scratch.Path("out/some-output"))
	assert.True(t, os.IsNotExist(err), "dry run must not touch the filesystem")
}

func TestRunReportsFailures(t *testing.T) {
	scratch := testutil.NewScratch(t)
	scratch.Dir("in/some-dir")
	scratch.Dir("out")

	execRoot := scratch.Root()
	inputRoot := artifact.DerivedRoot(execRoot, scratch.Path("in"))
	outputRoot := artifact.DerivedRoot(execRoot, scratch.Path("out"))

	bad := action.SymlinkToExecutable(
		action.NullOwner,
		artifact.New(inputRoot, "some-dir"),
		artifact.New(outputRoot, "a"),
		"linking dir",
	)
	good := action.NewFileWrite(
		action.NullOwner,
		artifact.New(outputRoot, "b"),
		[]byte("ok"), false, "writing b",
	)

	runner := executor.New(executor.Options{
		Executor: executor.NewLocal(execRoot, nil),
		OutErr:   execution.Discard(),
	})
	results := runner.Run([]action.Action{bad, good})

	require.Len(t, results, 2)
	require.Error(t, results[0].Err)
	assert.Contains(t, results[0].Err.Error(), "'some-dir' is not a file")

	// One action's failure does not stop the batch.
	require.NoError(t, results[1].Err)
	content, err := os.ReadFile(scratch.Path("out/b"))
	require.NoError(t, err)
	assert.Equal(t, "ok", string(content))
}
