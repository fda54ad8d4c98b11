package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/gnoswap-labs/formulafmt/batch"
)

var (
	renderJsonOutput bool
	renderYamlOutput bool
	outPath          string
	watchMode        bool
	quiet            bool
)

var renderCmd = &cobra.Command{
	Use:   "render [paths...]",
	Short: "Render every formula file under the given paths",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().BoolVar(&renderJsonOutput, "json", false, "Output results in JSON format")
	renderCmd.Flags().BoolVar(&renderYamlOutput, "yaml", false, "Output results in YAML format")
	renderCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON or YAML)")
	renderCmd.Flags().BoolVar(&watchMode, "watch", false, "Keep running and re-render files as they change")
	renderCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Print only the paths of rendered files")
	renderCmd.MarkFlagsMutuallyExclusive("json", "yaml")
}

func runRender(cmd *cobra.Command, paths []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	opts := batch.Options{Extensions: config.Extensions}
	if !quiet {
		opts.Progress = cmd.ErrOrStderr()
	}

	results, err := batch.ProcessFiles(ctx, logger, service, paths, opts, batch.ProcessFile)
	if err != nil {
		logger.Error("Error processing files", zap.Error(err))
		return err
	}
	if err := writeResults(cmd.OutOrStdout(), results); err != nil {
		logger.Error("Error writing results", zap.Error(err))
		return err
	}

	if !watchMode {
		return nil
	}
	return watch(cmd, paths, results)
}

// watch re-renders changed files until the command is interrupted. Text
// output shows each changed file; JSON and YAML output is rewritten with
// every file rendered so far.
func watch(cmd *cobra.Command, paths []string, initial []batch.Result) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var mu sync.Mutex
	latest := make(map[string]batch.Result, len(initial))
	for _, r := range initial {
		latest[r.Path] = r
	}

	out := cmd.OutOrStdout()
	w, err := batch.NewWatcher(logger, service, config.Extensions, func(r batch.Result) {
		mu.Lock()
		defer mu.Unlock()
		latest[r.Path] = r

		changed := []batch.Result{r}
		if renderJsonOutput || renderYamlOutput {
			changed = sortedResults(latest)
		}
		if err := writeResults(out, changed); err != nil {
			logger.Error("Error writing results", zap.String("file", r.Path), zap.Error(err))
		}
	})
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(paths...); err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	logger.Info("Watching for changes", zap.Strings("paths", paths))

	<-ctx.Done()
	return nil
}

// writeResults prints results as text, or encodes them to outPath or out
// when JSON or YAML is requested.
func writeResults(out io.Writer, results []batch.Result) error {
	if results == nil {
		results = []batch.Result{}
	}

	var (
		d   []byte
		err error
	)
	switch {
	case renderJsonOutput:
		d, err = json.MarshalIndent(results, "", "  ")
		d = append(d, '\n')
	case renderYamlOutput:
		d, err = yaml.Marshal(results)
	default:
		printResults(out, results)
		return nil
	}
	if err != nil {
		return err
	}

	if outPath == "" {
		_, err = out.Write(d)
		return err
	}
	return os.WriteFile(outPath, d, 0o644)
}

func sortedResults(byPath map[string]batch.Result) []batch.Result {
	results := make([]batch.Result, 0, len(byPath))
	for _, r := range byPath {
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})
	return results
}

func printResults(out io.Writer, results []batch.Result) {
	header := color.New(color.FgCyan, color.Bold)
	for _, r := range results {
		header.Fprintln(out, r.Path)
		if quiet {
			continue
		}
		fmt.Fprintln(out, r.Formatted)
		fmt.Fprintln(out)
	}
}
