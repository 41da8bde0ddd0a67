package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"minilang/pkg/color"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of one golden script. Got holds the script output
// followed by any diagnostics, in the order they were written.
type Result struct {
	Name string
	Got  string
	Want string
	Err  error // the script could not be run at all
}

func (res Result) Passed() bool {
	return res.Err == nil && res.Got == res.Want
}

// Diff shows expected against actual output line by line.
func (res Result) Diff() string {
	return cmp.Diff(strings.Split(res.Want, "\n"), strings.Split(res.Got, "\n"))
}

// RunGolden runs every *.ml script in dir, each in its own interpreter,
// at most parallel at a time. Expected output is read from the matching
// *.out file; a *.in file, when present, feeds input().
func (r *Runner) RunGolden(ctx context.Context, dir string, parallel int) ([]Result, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.ml"))
	if err != nil {
		return nil, fmt.Errorf("golden: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("golden: no *.ml scripts in %s", dir)
	}
	sort.Strings(paths)

	results := make([]Result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	if parallel > 0 {
		g.SetLimit(parallel)
	}

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = r.runGolden(path)
			log.Debug("golden script finished", "script", results[i].Name, "passed", results[i].Passed())
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func (r *Runner) runGolden(path string) Result {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	res := Result{Name: filepath.Base(base)}

	want, err := os.ReadFile(base + ".out")
	if err != nil {
		res.Err = fmt.Errorf("missing expected output: %w", err)
		return res
	}
	res.Want = string(want)

	var in io.Reader = strings.NewReader("")
	if data, err := os.ReadFile(base + ".in"); err == nil {
		in = bytes.NewReader(data)
	} else if !errors.Is(err, os.ErrNotExist) {
		res.Err = err
		return res
	}

	var out bytes.Buffer
	sub := *r
	sub.Out, sub.Err, sub.In = &out, &out, in
	sub.Verbose = false

	it, err := sub.NewInterpreter()
	if err != nil {
		res.Err = err
		return res
	}
	if err := sub.ExecFile(it, path); err != nil && errors.Is(err, os.ErrNotExist) {
		res.Err = err
		return res
	}

	res.Got = out.String()
	return res
}

// ReportGolden prints one line per script and the diff of each failure.
// It returns the number of failures.
func (r *Runner) ReportGolden(results []Result) int {
	w := r.stdout()
	failed := 0
	for _, res := range results {
		switch {
		case res.Err != nil:
			failed++
			fmt.Fprintf(w, "%s %s: %v\n", color.RedText("FAIL"), res.Name, res.Err)
		case !res.Passed():
			failed++
			fmt.Fprintf(w, "%s %s (-want +got):\n%s", color.RedText("FAIL"), res.Name, res.Diff())
		default:
			fmt.Fprintf(w, "%s %s\n", color.GreenText("PASS"), res.Name)
		}
	}
	fmt.Fprintf(w, "%d/%d passed\n", len(results)-failed, len(results))
	return failed
}
