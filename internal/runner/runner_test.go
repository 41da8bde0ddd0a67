package runner_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"minilang/internal/config"
	"minilang/internal/runner"
	"minilang/pkg/color"
	"minilang/pkg/interpreter"
)

func init() {
	color.EnableColor(false)
}

func TestGoldenScripts(t *testing.T) {
	r := &runner.Runner{}
	results, err := r.RunGolden(context.Background(), "testdata", 4)
	if err != nil {
		t.Fatalf("golden run: %v", err)
	}

	for _, res := range results {
		if res.Err != nil {
			t.Errorf("%s: %v", res.Name, res.Err)
			continue
		}
		if !res.Passed() {
			t.Errorf("%s output mismatch (-want +got):\n%s", res.Name, res.Diff())
		}
	}
}

func TestGoldenReport(t *testing.T) {
	var out bytes.Buffer
	r := &runner.Runner{Out: &out}

	failed := r.ReportGolden([]runner.Result{
		{Name: "ok", Got: "1\n", Want: "1\n"},
		{Name: "bad", Got: "2\n", Want: "1\n"},
	})

	if failed != 1 {
		t.Errorf("expected 1 failure, got %d", failed)
	}
	if !strings.Contains(out.String(), "PASS ok") || !strings.Contains(out.String(), "FAIL bad") {
		t.Errorf("unexpected report:\n%s", out.String())
	}
	if !strings.HasSuffix(out.String(), "1/2 passed\n") {
		t.Errorf("missing summary:\n%s", out.String())
	}
}

func TestGoldenEmptyDir(t *testing.T) {
	r := &runner.Runner{}
	if _, err := r.RunGolden(context.Background(), t.TempDir(), 1); err == nil {
		t.Error("expected an error for a directory without scripts")
	}
}

func TestRunSourceReportsSyntaxErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := &runner.Runner{Out: &stdout, Err: &stderr}

	err := r.RunSource("print(1;")
	if !errors.Is(err, runner.ErrSyntax) {
		t.Fatalf("expected ErrSyntax, got %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("nothing should run after a syntax error, got %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "Missing closing parenthesis at Line: 1, Column 8") {
		t.Errorf("unexpected diagnostics %q", stderr.String())
	}
}

func TestVerboseTrace(t *testing.T) {
	var stderr bytes.Buffer
	r := &runner.Runner{Out: &bytes.Buffer{}, Err: &stderr, Verbose: true}

	err := r.RunSource("func inner() { return 1 / 0; }\nfunc outer() { return inner(); }\nouter();")
	var re *interpreter.RuntimeError
	if !errors.As(err, &re) {
		t.Fatalf("expected a runtime error, got %v", err)
	}

	want := "Runtime Error: Line 1: Division by zero.\n  at inner (line 2)\n  at outer (line 3)\n"
	if stderr.String() != want {
		t.Errorf("expected %q, got %q", want, stderr.String())
	}
}

func TestPreludeAndConfig(t *testing.T) {
	dir := t.TempDir()
	lib := filepath.Join(dir, "lib.ml")
	if err := os.WriteFile(lib, []byte(`func double(x) { return x * 2; }`), 0o644); err != nil {
		t.Fatal(err)
	}
	main := filepath.Join(dir, "main.ml")
	if err := os.WriteFile(main, []byte(`print(double(21));`), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout bytes.Buffer
	r := &runner.Runner{Out: &stdout, Err: &stdout}
	r.ApplyConfig(&config.Config{Prelude: []string{lib}, MaxCallDepth: 10})

	if err := r.RunFile(main); err != nil {
		t.Fatalf("run: %v", err)
	}
	if stdout.String() != "42\n" {
		t.Errorf("unexpected output %q", stdout.String())
	}
	if r.MaxDepth != 10 {
		t.Errorf("expected depth limit from config, got %d", r.MaxDepth)
	}
}

func TestRunFileMissing(t *testing.T) {
	r := &runner.Runner{Out: &bytes.Buffer{}, Err: &bytes.Buffer{}}
	if err := r.RunFile(filepath.Join(t.TempDir(), "missing.ml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}
