package main

import (
	"fmt"
	"strconv"

	"tglang/internal/core/language"

	"github.com/spf13/cobra"
)

func newDetectCommand(ctx *commandContext) *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "detect <file|->",
		Short: "Print the detected language of one snippet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := ctx.resources()
			if err != nil {
				return err
			}
			src, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			r := res.Detect(src)
			if verbose {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.4f\t%s\n", r.Language, r.Probability, r.Outcome)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), r.Language)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Also print probability and outcome")
	return cmd
}

func newNormalizeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <file|->",
		Short: "Print the text the model would see",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := ctx.normalizer()
			if err != nil {
				return err
			}
			src, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n.Normalize(src))
			return nil
		},
	}
}

func newLanguagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the language enumeration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rows := make([][]string, 0, len(language.All()))
			for _, l := range language.All() {
				rows = append(rows, []string{strconv.Itoa(l.Code()), l.String(), l.DisplayName()})
			}
			headers := []string{"CODE", "NAME", "DISPLAY"}
			out := cmd.OutOrStdout()
			if isTerminal(out) {
				fmt.Fprintln(out, renderTable(headers, rows, []columnAlignment{alignRight}))
				return nil
			}
			fmt.Fprint(out, renderTSV(headers, rows))
			return nil
		},
	}
}
