// Package batch renders formula files in bulk: single files, directory
// trees walked concurrently, and directories watched for changes.
package batch

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/formulafmt/scanner"
)

// Renderer produces the renderings stored in a Result.
// *formula.Service implements it.
type Renderer interface {
	Condense(formula string) string
	Format(formula string) string
	Highlight(formula string) string
	FieldRefs(formula string) []string
}

// Result holds every rendering of one formula file.
type Result struct {
	Path        string   `json:"path" yaml:"path"`
	Formula     string   `json:"formula" yaml:"formula"`
	Condensed   string   `json:"condensed" yaml:"condensed"`
	Formatted   string   `json:"formatted" yaml:"formatted"`
	Highlighted string   `json:"highlighted" yaml:"highlighted"`
	Fields      []string `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Processor renders the formula file at path.
type Processor func(r Renderer, path string) (Result, error)

// Options tune directory processing.
type Options struct {
	Extensions []string  // file extensions to render; empty means scanner.DefaultExtension
	Progress   io.Writer // progress bar destination; nil hides it
	Workers    int       // concurrent files; <= 0 means runtime.NumCPU()
}

// ReadFormula returns the formula stored in path without trailing line
// breaks.
func ReadFormula(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(content), "\r\n"), nil
}

// Render computes every rendering of f.
func Render(r Renderer, path, f string) Result {
	return Result{
		Path:        path,
		Formula:     f,
		Condensed:   r.Condense(f),
		Formatted:   r.Format(f),
		Highlighted: r.Highlight(f),
		Fields:      r.FieldRefs(f),
	}
}

func ProcessFile(r Renderer, path string) (Result, error) {
	f, err := ReadFormula(path)
	if err != nil {
		return Result{}, err
	}
	return Render(r, path, f), nil
}

func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	r Renderer,
	paths []string,
	opts Options,
	processor Processor,
) ([]Result, error) {
	var all []Result
	for _, path := range paths {
		results, err := ProcessPath(ctx, logger, r, path, opts, processor)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return all, err
		}
		all = append(all, results...)
	}
	return all, nil
}

// ProcessPath renders path, which may be a single file or a directory. A
// file named explicitly is rendered whatever its extension; files inside a
// directory are filtered by opts.Extensions and rendered concurrently. Files
// that fail are logged and skipped. Results are sorted by path.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	r Renderer,
	path string,
	opts Options,
	processor Processor,
) ([]Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		result, err := processor(r, path)
		if err != nil {
			return nil, err
		}
		return []Result{result}, nil
	}

	extensions := opts.Extensions
	if len(extensions) == 0 {
		extensions = []string{scanner.DefaultExtension}
	}
	files, err := scanner.New(path, extensions...).Scan()
	if err != nil {
		return nil, fmt.Errorf("error walking %s: %w", path, err)
	}

	type fileResult struct {
		result Result
		err    error
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	sem := make(chan struct{}, workers)
	resultChan := make(chan fileResult, len(files))
	bar := newProgressBar(opts.Progress, len(files), path)

	var wg sync.WaitGroup
	var ctxErr error
launch:
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			ctxErr = err
			break
		}
		select {
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break launch
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(fp string) {
			defer wg.Done()
			defer func() { <-sem }()

			result, err := processor(r, fp)
			if err != nil && logger != nil {
				logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
			}
			resultChan <- fileResult{result: result, err: err}
			_ = bar.Add(1)
		}(file.Path)
	}
	wg.Wait()
	close(resultChan)

	results := make([]Result, 0, len(files))
	for fr := range resultChan {
		if fr.err != nil {
			continue
		}
		results = append(results, fr.result)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})

	return results, ctxErr
}

func newProgressBar(w io.Writer, total int, description string) *progressbar.ProgressBar {
	if w == nil {
		return progressbar.DefaultSilent(int64(total))
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(w) }),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
