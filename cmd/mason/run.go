package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/masonbuild/mason/pkg/config"
	"github.com/masonbuild/mason/pkg/execution"
	"github.com/masonbuild/mason/pkg/executor"
	"github.com/masonbuild/mason/pkg/filecache"
	"github.com/masonbuild/mason/pkg/keys"
	"github.com/masonbuild/mason/pkg/logging"
	"github.com/masonbuild/mason/pkg/manifest"
)

var runCmd = &cobra.Command{
	Use:   "run <manifest>",
	Short: "Execute the actions declared in a manifest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.GetLogger("run")

		settings, err := config.Load(".")
		if err != nil {
			return err
		}

		m, err := manifest.Load(nil, args[0])
		if err != nil {
			return err
		}
		actions, err := m.Build(settings.Build.ExecRoot, settings.Build.OutputDir)
		if err != nil {
			return err
		}

		local := executor.NewLocal(settings.Build.ExecRoot, nil)
		cache, err := filecache.New(local.FS(), local.ExecRoot(), settings.Cache.Capacity)
		if err != nil {
			return err
		}

		runner := executor.New(executor.Options{
			Executor:  local,
			FileCache: cache,
			Keys:      keys.New(),
			OutErr:    execution.Stdio(),
			DryRun:    dryRun || settings.Build.DryRun,
			Logger:    logger,
		})

		failures := 0
		for _, res := range runner.Run(actions) {
			progress := res.Action.ProgressMessage()
			if progress == "" {
				progress = res.Action.PrimaryOutput().Abs()
			}
			switch {
			case res.Skipped:
				fmt.Printf("%s %s\n", render(skipStyle, "SKIP"), progress)
			case res.Err != nil:
				failures++
				fmt.Printf("%s %s\n     %v\n", render(failStyle, "FAIL"), progress, res.Err)
			default:
				fmt.Printf("%s %s %s\n", render(okStyle, "  OK"), progress,
					render(dimStyle, res.Duration.String()))
			}
		}

		if failures > 0 {
			return fmt.Errorf("%d of %d actions failed", failures, len(actions))
		}
		return nil
	},
}
