package executor

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/masonbuild/mason/pkg/action"
	"github.com/masonbuild/mason/pkg/execution"
	"github.com/masonbuild/mason/pkg/filecache"
	"github.com/masonbuild/mason/pkg/keys"
	"github.com/masonbuild/mason/pkg/logging"
)

// Options contains configuration for the runner
type Options struct {
	Executor  execution.Executor
	FileCache *filecache.Cache
	Keys      *keys.Context
	OutErr    execution.OutErr
	Env       map[string]string
	DryRun    bool
	Logger    zerolog.Logger
}

// Runner executes actions one at a time, building a fresh execution
// context per attempt. Ordering across actions is the caller's concern.
type Runner struct {
	executor  execution.Executor
	fileCache *filecache.Cache
	keys      *keys.Context
	outErr    execution.OutErr
	env       map[string]string
	dryRun    bool
	logger    zerolog.Logger
}

// RunResult is the outcome of driving one action.
type RunResult struct {
	Action   action.Action
	Result   *action.Result
	Err      error
	Duration time.Duration
	Skipped  bool
}

// New creates a new runner instance
func New(opts Options) *Runner {
	logger := opts.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = logging.GetLogger("executor")
	}
	k := opts.Keys
	if k == nil {
		k = keys.New()
	}
	return &Runner{
		executor:  opts.Executor,
		fileCache: opts.FileCache,
		keys:      k,
		outErr:    opts.OutErr,
		env:       opts.Env,
		dryRun:    opts.DryRun,
		logger:    logger,
	}
}

// Run executes a slice of actions and returns their results
func (r *Runner) Run(actions []action.Action) []RunResult {
	results := make([]RunResult, 0, len(actions))
	for _, a := range actions {
		results = append(results, r.runAction(a))
	}
	return results
}

func (r *Runner) runAction(a action.Action) RunResult {
	start := time.Now()

	r.logger.Debug().
		Str("mnemonic", a.Mnemonic()).
		Str("progress", a.ProgressMessage()).
		Bool("dry_run", r.dryRun).
		Msg("Executing action")

	if r.dryRun {
		return RunResult{
			Action:   a,
			Skipped:  true,
			Duration: time.Since(start),
		}
	}

	ctx := execution.New(execution.Params{
		Executor:  r.executor,
		FileCache: r.fileCache,
		Keys:      r.keys,
		OutErr:    r.outErr,
		Env:       r.env,
	})

	result, err := a.Execute(ctx)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("mnemonic", a.Mnemonic()).
			Msg("Action execution failed")
		return RunResult{Action: a, Err: err, Duration: time.Since(start)}
	}

	r.logger.Info().
		Str("mnemonic", a.Mnemonic()).
		Str("output", a.PrimaryOutput().Abs()).
		Dur("duration", time.Since(start)).
		Msg("Action completed")

	return RunResult{Action: a, Result: result, Duration: time.Since(start)}
}
