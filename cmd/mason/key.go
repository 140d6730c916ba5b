package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/masonbuild/mason/pkg/config"
	"github.com/masonbuild/mason/pkg/keys"
	"github.com/masonbuild/mason/pkg/manifest"
)

var keyCmd = &cobra.Command{
	Use:   "key <manifest>",
	Short: "Print the cache key of each action in a manifest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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

		kc := keys.New()
		for _, a := range actions {
			key, err := a.Key(kc)
			if err != nil {
				return err
			}
			fmt.Printf("%s  %s  %s\n", key, a.Mnemonic(), a.PrimaryOutput().ExecPath())
		}
		return nil
	},
}
