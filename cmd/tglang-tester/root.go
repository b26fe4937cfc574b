package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var modelFlag string
	ctx := newCommandContext(&modelFlag)

	rootCmd := &cobra.Command{
		Use:           "tglang-tester",
		Short:         "Detect the programming language of snippet files",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	rootCmd.PersistentFlags().StringVar(&modelFlag, "model", "", "Model path, overrides CORE_TGLANG_MODEL_PATH")

	rootCmd.AddCommand(newDetectCommand(ctx))
	rootCmd.AddCommand(newMultiCommand(ctx))
	rootCmd.AddCommand(newNormalizeCommand(ctx))
	rootCmd.AddCommand(newLanguagesCommand())
	return rootCmd
}
