package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"

	"tglang/internal/core/classifier"
	"tglang/internal/core/language"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type multiResult struct {
	path     string
	res      classifier.Result
	expected language.Language
	labelled bool
}

func newMultiCommand(ctx *commandContext) *cobra.Command {
	var (
		jobs      int
		expectDir bool
	)
	cmd := &cobra.Command{
		Use:   "multi <paths...>",
		Short: "Classify many files in parallel",
		Long: "Classify every file under the given paths. With --expect-dir the parent directory\n" +
			"names the expected language, e.g. samples/PYTHON/a.py, and an accuracy line is printed",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := ctx.resources()
			if err != nil {
				return err
			}
			files, err := collectFiles(args)
			if err != nil {
				return err
			}

			out := make([]multiResult, len(files))
			g, gctx := errgroup.WithContext(cmd.Context())
			if jobs <= 0 {
				jobs = runtime.GOMAXPROCS(0)
			}
			g.SetLimit(jobs)
			for i, path := range files {
				g.Go(func() error {
					if err := gctx.Err(); err != nil {
						return err
					}
					b, err := os.ReadFile(path)
					if err != nil {
						return err
					}
					r := multiResult{path: path, res: res.Detect(string(b))}
					if expectDir {
						r.expected, err = language.Parse(filepath.Base(filepath.Dir(path)))
						r.labelled = err == nil
					}
					out[i] = r
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			printMulti(cmd, out, expectDir)
			return nil
		},
	}
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.GOMAXPROCS(0), "Concurrent classifications, <= 0 means GOMAXPROCS")
	cmd.Flags().BoolVar(&expectDir, "expect-dir", false, "Treat parent directory names as expected languages")
	return cmd
}

// collectFiles expands directories to their regular files, sorted
func collectFiles(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.Type().IsRegular() {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

func printMulti(cmd *cobra.Command, results []multiResult, expect bool) {
	headers := []string{"FILE", "LANGUAGE", "PROB", "OUTCOME"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignLeft}
	if expect {
		headers = append(headers, "EXPECTED", "OK")
	}

	var labelled, correct int
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		row := []string{
			r.path,
			r.res.Language.String(),
			strconv.FormatFloat(r.res.Probability, 'f', 3, 64),
			string(r.res.Outcome),
		}
		if expect {
			exp, ok := "", ""
			if r.labelled {
				labelled++
				exp = r.expected.String()
				ok = "no"
				if r.expected == r.res.Language {
					correct++
					ok = "yes"
				}
			}
			row = append(row, exp, ok)
		}
		rows = append(rows, row)
	}

	w := cmd.OutOrStdout()
	if isTerminal(w) {
		fmt.Fprintln(w, renderTable(headers, rows, aligns))
	} else {
		fmt.Fprint(w, renderTSV(headers, rows))
	}
	if expect && labelled > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "accuracy: %d/%d (%.1f%%)\n", correct, labelled, 100*float64(correct)/float64(labelled))
	}
}
